package handler

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"multasapi/internal/service"
)

const exportFileName = "autos_infracao.csv"

// ListInfractions returns one page of infraction records.
//
// @Summary  List infraction records
// @Tags     autos
// @Produce  json
// @Param    infrator  query  string  false  "offender name, partial match"
// @Param    search    query  string  false  "number, description or offender, partial match"
// @Param    page      query  int     false  "page number"      default(1)
// @Param    limit     query  int     false  "records per page" default(10)
// @Success  200  {object}  service.InfractionPage
// @Failure  400  {object}  errorPayload
// @Router   /api/autos [get]
func ListInfractions(svc service.InfractionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := queryInt(c, "page", 1)
		if err != nil {
			return fail(c, err, "")
		}
		limit, err := queryInt(c, "limit", service.DefaultInfractionLimit)
		if err != nil {
			return fail(c, err, "")
		}

		res, err := svc.List(requestCtx(c), service.InfractionListParams{
			Offender: c.Query("infrator"),
			Search:   c.Query("search"),
			Page:     page,
			Limit:    limit,
		})
		if err != nil {
			return fail(c, err, "")
		}
		return c.JSON(res)
	}
}

// ExportInfractions downloads every matching record as a CSV spreadsheet.
//
// @Summary  Export infraction records as CSV
// @Tags     autos
// @Produce  text/csv
// @Param    infrator  query  string  false  "offender name, partial match"
// @Param    search    query  string  false  "number, description or offender, partial match"
// @Success  200  {file}  file
// @Router   /api/autos/export [get]
func ExportInfractions(svc service.InfractionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Buffered so a failure halfway through still yields a clean error response.
		var buf bytes.Buffer
		if _, err := svc.Export(requestCtx(c), c.Query("infrator"), c.Query("search"), &buf); err != nil {
			return fail(c, err, "")
		}

		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, "attachment; filename="+exportFileName)
		return c.Send(buf.Bytes())
	}
}

// GetInfraction returns one record by id.
//
// @Summary  Get an infraction record
// @Tags     autos
// @Produce  json
// @Param    id  path  string  true  "record id"
// @Success  200  {object}  model.InfractionRecord
// @Failure  400  {object}  errorPayload
// @Failure  404  {object}  errorPayload
// @Router   /api/autos/{id} [get]
func GetInfraction(svc service.InfractionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec, err := svc.Get(requestCtx(c), c.Params("id"))
		if err != nil {
			return fail(c, err, "Auto de infração não encontrado")
		}
		return c.JSON(rec)
	}
}

// ListOffenderSummaries returns the distinct offenders found in the records.
//
// @Summary  Distinct offenders
// @Tags     infratores
// @Produce  json
// @Success  200  {array}  model.OffenderSummary
// @Router   /api/infratores [get]
func ListOffenderSummaries(svc service.InfractionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.ListOffenders(requestCtx(c))
		if err != nil {
			return fail(c, err, "")
		}
		return c.JSON(res)
	}
}

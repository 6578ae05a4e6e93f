package handler

import (
	"github.com/gofiber/fiber/v2"

	"multasapi/internal/model"
	"multasapi/internal/service"
)

// ListOffenders pages the offenders registry.
//
// @Summary  List registered offenders
// @Tags     infratores
// @Produce  json
// @Param    search  query  string  false  "name or tax id, partial match"
// @Param    page    query  int     false  "page number"  default(1)
// @Param    limit   query  int     false  "page size"    default(20)
// @Success  200  {object}  successEnvelope{data=service.OffenderPage}
// @Failure  400  {object}  errorPayload
// @Router   /api/infratores/cadastro [get]
func ListOffenders(svc service.OffenderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := queryInt(c, "page", 1)
		if err != nil {
			return fail(c, err, "")
		}
		limit, err := queryInt(c, "limit", service.DefaultOffenderLimit)
		if err != nil {
			return fail(c, err, "")
		}

		res, err := svc.List(requestCtx(c), c.Query("search"), page, limit)
		if err != nil {
			return fail(c, err, "")
		}
		return ok(c, fiber.StatusOK, res)
	}
}

// GetOffender returns one registered offender.
//
// @Summary  Get a registered offender
// @Tags     infratores
// @Produce  json
// @Param    id  path  string  true  "offender id"
// @Success  200  {object}  successEnvelope{data=model.Offender}
// @Failure  400  {object}  errorPayload
// @Failure  404  {object}  errorPayload
// @Router   /api/infratores/cadastro/{id} [get]
func GetOffender(svc service.OffenderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		o, err := svc.Get(requestCtx(c), c.Params("id"))
		if err != nil {
			return fail(c, err, "Infrator não encontrado")
		}
		return ok(c, fiber.StatusOK, o)
	}
}

// CreateOffender registers an offender.
//
// @Summary  Register an offender
// @Tags     infratores
// @Accept   json
// @Produce  json
// @Param    offender  body  model.Offender  true  "offender"
// @Success  201  {object}  successEnvelope{data=model.Offender}
// @Failure  400  {object}  errorPayload
// @Failure  409  {object}  errorPayload
// @Router   /api/infratores/cadastro [post]
func CreateOffender(svc service.OffenderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.Offender
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "corpo da requisição inválido")
		}

		o, err := svc.Create(requestCtx(c), &in)
		if err != nil {
			return fail(c, err, "")
		}
		return ok(c, fiber.StatusCreated, o)
	}
}

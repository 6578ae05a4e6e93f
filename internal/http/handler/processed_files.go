package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"multasapi/internal/repository"
	"multasapi/internal/service"
)

type batchDeleteRequest struct {
	FilePaths []string `json:"filePaths"`
}

// fileDeletionResponse is the single-file delete payload.
type fileDeletionResponse struct {
	DeletedFile       string               `json:"deletedFile"`
	DeletedAutosCount int64                `json:"deletedAutosCount"`
	AutosIDs          []primitive.ObjectID `json:"autosIds"`
	StorageDeleted    bool                 `json:"storageDeleted"`
	ResolvedPath      string               `json:"resolvedPath,omitempty"`
}

// processedFilesResponse echoes the filters next to the listing.
type processedFilesResponse struct {
	Success bool              `json:"success"`
	Data    any               `json:"data"`
	Filters map[string]string `json:"filters"`
}

// ListProcessedFiles lists source files that produced infraction records.
//
// @Summary  List processed files
// @Tags     processed-files
// @Produce  json
// @Param    fileName             query  string  false  "file name or record number, partial match"
// @Param    infrator             query  string  false  "offender name, partial match"
// @Param    dataExpedicaoInicio  query  string  false  "YYYY-MM-DD"
// @Param    dataExpedicaoFim     query  string  false  "YYYY-MM-DD"
// @Param    dataEmissaoInicio    query  string  false  "YYYY-MM-DD"
// @Param    dataEmissaoFim       query  string  false  "YYYY-MM-DD"
// @Success  200  {object}  processedFilesResponse
// @Failure  400  {object}  errorPayload
// @Router   /api/processed-files/list [get]
func ListProcessedFiles(svc service.ProcessedFileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := repository.ProcessedFileFilter{
			FileName:    c.Query("fileName"),
			Offender:    c.Query("infrator"),
			ShippedFrom: c.Query("dataExpedicaoInicio"),
			ShippedTo:   c.Query("dataExpedicaoFim"),
			IssuedFrom:  c.Query("dataEmissaoInicio"),
			IssuedTo:    c.Query("dataEmissaoFim"),
		}

		files, err := svc.List(requestCtx(c), f)
		if err != nil {
			return fail(c, err, "")
		}
		return c.JSON(processedFilesResponse{
			Success: true,
			Data:    files,
			Filters: map[string]string{
				"fileName":            f.FileName,
				"infrator":            f.Offender,
				"dataExpedicaoInicio": f.ShippedFrom,
				"dataExpedicaoFim":    f.ShippedTo,
				"dataEmissaoInicio":   f.IssuedFrom,
				"dataEmissaoFim":      f.IssuedTo,
			},
		})
	}
}

// DeleteProcessedFile removes a file's records and then the file.
//
// @Summary  Delete a processed file
// @Tags     processed-files
// @Produce  json
// @Param    path  path  string  true  "URL-encoded object key"
// @Success  200  {object}  successEnvelope{data=fileDeletionResponse}
// @Failure  400  {object}  errorPayload
// @Failure  404  {object}  errorPayload
// @Router   /api/processed-files/{path} [delete]
func DeleteProcessedFile(svc service.ProcessedFileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filePath, err := wildcardPath(c)
		if err != nil {
			return fail(c, err, "")
		}

		res, err := svc.Delete(requestCtx(c), filePath)
		if err != nil {
			return fail(c, err, "Nenhum Auto de Infração encontrado para este arquivo")
		}
		return ok(c, fiber.StatusOK, fileDeletionResponse{
			DeletedFile:       res.File,
			DeletedAutosCount: res.DeletedAutosCount,
			AutosIDs:          res.AutosIDs,
			StorageDeleted:    res.StorageDeleted,
			ResolvedPath:      res.ResolvedPath,
		})
	}
}

// BatchDeleteProcessedFiles deletes several files sequentially.
// success is false when any file failed.
//
// @Summary  Delete several processed files
// @Tags     processed-files
// @Accept   json
// @Produce  json
// @Param    body  body  batchDeleteRequest  true  "file paths"
// @Success  200  {object}  successEnvelope{data=model.BatchDeletion}
// @Failure  400  {object}  errorPayload
// @Router   /api/processed-files/batch-delete [post]
func BatchDeleteProcessedFiles(svc service.ProcessedFileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in batchDeleteRequest
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "corpo da requisição inválido")
		}

		res, err := svc.BatchDelete(requestCtx(c), in.FilePaths)
		if err != nil {
			return fail(c, err, "")
		}
		return c.JSON(successEnvelope{Success: res.FailureCount == 0, Data: res})
	}
}

// DeletionHistory pages the deletion audit log.
//
// @Summary  Deletion audit log
// @Tags     processed-files
// @Produce  json
// @Param    limit   query  int  false  "page size" default(20)
// @Param    offset  query  int  false  "offset"    default(0)
// @Success  200  {object}  successEnvelope{data=service.DeletionHistory}
// @Failure  400  {object}  errorPayload
// @Failure  503  {object}  errorPayload
// @Router   /api/processed-files/deletions [get]
func DeletionHistory(svc service.ProcessedFileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := queryInt(c, "limit", service.DefaultHistoryLimit)
		if err != nil {
			return fail(c, err, "")
		}
		offset, err := queryInt(c, "offset", 0)
		if err != nil {
			return fail(c, err, "")
		}

		res, err := svc.History(requestCtx(c), limit, offset)
		if err != nil {
			return fail(c, err, "")
		}
		return ok(c, fiber.StatusOK, res)
	}
}

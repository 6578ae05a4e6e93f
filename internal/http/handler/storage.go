package handler

import (
	"io"
	"mime/multipart"
	"path"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"multasapi/internal/service"
)

type pathRequest struct {
	Path string `json:"path"`
}

// ListObjects lists one level of the bucket.
//
// @Summary  List bucket objects
// @Tags     storage
// @Produce  json
// @Param    prefix  query  string  false  "folder to list"
// @Param    page    query  int     false  "page number"      default(1)
// @Param    limit   query  int     false  "entries per page" default(50)
// @Success  200  {object}  successEnvelope{data=model.StorageListing}
// @Failure  400  {object}  errorPayload
// @Router   /api/storage/list [get]
func ListObjects(svc service.StorageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := queryInt(c, "page", 1)
		if err != nil {
			return fail(c, err, "")
		}
		limit, err := queryInt(c, "limit", service.DefaultStorageLimit)
		if err != nil {
			return fail(c, err, "")
		}

		res, err := svc.List(requestCtx(c), c.Query("prefix"), page, limit)
		if err != nil {
			return fail(c, err, "")
		}
		return ok(c, fiber.StatusOK, res)
	}
}

// CreateFolder creates an empty folder marker.
//
// @Summary  Create a folder
// @Tags     storage
// @Accept   json
// @Produce  json
// @Param    body  body  pathRequest  true  "folder path"
// @Success  201  {object}  successEnvelope
// @Failure  400  {object}  errorPayload
// @Failure  409  {object}  errorPayload
// @Router   /api/storage/folder [post]
func CreateFolder(svc service.StorageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in pathRequest
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "corpo da requisição inválido")
		}

		key, err := svc.CreateFolder(requestCtx(c), in.Path)
		if err != nil {
			return fail(c, err, "")
		}
		return ok(c, fiber.StatusCreated, fiber.Map{"path": key, "message": "Pasta criada com sucesso"})
	}
}

// UploadFiles stores the multipart "files" parts under the optional "path" destination.
// Each file succeeds or fails on its own; success is false when any file failed.
//
// @Summary  Upload files
// @Tags     storage
// @Accept   multipart/form-data
// @Produce  json
// @Param    files  formData  file    true   "files to upload"
// @Param    path   formData  string  false  "destination folder"
// @Success  200  {object}  successEnvelope{data=service.UploadResult}
// @Failure  400  {object}  errorPayload
// @Failure  413  {object}  errorPayload
// @Router   /api/storage/upload [post]
func UploadFiles(svc service.StorageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var parts []*multipart.FileHeader
		if form, err := c.MultipartForm(); err == nil {
			parts = form.File["files"]
		}

		files := make([]service.FileUpload, 0, len(parts))
		for _, fh := range parts {
			files = append(files, service.FileUpload{
				Name:        fh.Filename,
				ContentType: fh.Header.Get(fiber.HeaderContentType),
				Size:        fh.Size,
				Open:        openPart(fh),
			})
		}

		res, err := svc.Upload(requestCtx(c), c.FormValue("path"), files)
		if err != nil {
			return fail(c, err, "")
		}
		return c.JSON(successEnvelope{Success: res.FailureCount == 0, Data: res})
	}
}

func openPart(fh *multipart.FileHeader) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) { return fh.Open() }
}

// DeleteObject removes a file, or a folder with everything under it.
//
// @Summary  Delete a file or folder
// @Tags     storage
// @Accept   json
// @Produce  json
// @Param    body  body  pathRequest  true  "object path; folders end with /"
// @Success  200  {object}  successEnvelope
// @Failure  400  {object}  errorPayload
// @Failure  404  {object}  errorPayload
// @Router   /api/storage/object [delete]
func DeleteObject(svc service.StorageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in pathRequest
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "corpo da requisição inválido")
		}

		if err := svc.Delete(requestCtx(c), in.Path); err != nil {
			return fail(c, err, "Arquivo não encontrado")
		}
		return ok(c, fiber.StatusOK, fiber.Map{"path": in.Path, "message": "Item excluído com sucesso"})
	}
}

// DownloadURL returns a time-limited signed URL for a file.
//
// @Summary  Signed download URL
// @Tags     storage
// @Produce  json
// @Param    path     path   string  true   "URL-encoded object key"
// @Param    expires  query  int     false  "minutes, 1 to 1440" default(60)
// @Success  200  {object}  successEnvelope{data=service.DownloadLink}
// @Failure  400  {object}  errorPayload
// @Failure  404  {object}  errorPayload
// @Router   /api/storage/download/{path} [get]
func DownloadURL(svc service.StorageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filePath, err := wildcardPath(c)
		if err != nil {
			return fail(c, err, "")
		}
		expires, err := queryInt(c, "expires", service.DefaultExpiryMinutes)
		if err != nil {
			return fail(c, err, "")
		}

		link, err := svc.DownloadURL(requestCtx(c), filePath, expires)
		if err != nil {
			return fail(c, err, "Arquivo não encontrado")
		}
		return ok(c, fiber.StatusOK, link)
	}
}

// StreamFile proxies a file's content through the API.
//
// @Summary  Stream file content
// @Tags     storage
// @Produce  octet-stream
// @Param    path  path  string  true  "URL-encoded object key"
// @Success  200  {file}  file
// @Failure  404  {object}  errorPayload
// @Router   /api/storage/file/{path} [get]
func StreamFile(svc service.StorageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filePath, err := wildcardPath(c)
		if err != nil {
			return fail(c, err, "")
		}

		rc, info, err := svc.Open(requestCtx(c), filePath)
		if err != nil {
			return fail(c, err, "Arquivo não encontrado")
		}

		c.Set(fiber.HeaderContentType, info.ContentType)
		c.Set(fiber.HeaderContentDisposition, "inline; filename="+strconv.Quote(path.Base(filePath)))
		if !info.LastModified.IsZero() {
			c.Set(fiber.HeaderLastModified, info.LastModified.UTC().Format(time.RFC1123))
		}
		// fasthttp closes rc once the body has been written.
		return c.SendStream(rc, int(info.Size))
	}
}

// StorageHealth checks bucket connectivity.
//
// @Summary  Storage connectivity
// @Tags     storage
// @Produce  json
// @Success  200  {object}  map[string]any
// @Failure  503  {object}  errorPayload
// @Router   /api/storage/health [get]
func StorageHealth(svc service.StorageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Health(requestCtx(c)); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "STORAGE_HEALTH_ERROR", "erro na conexão com o storage")
		}
		return c.JSON(fiber.Map{
			"success":   true,
			"message":   "Conexão com o storage funcionando corretamente",
			"timestamp": time.Now().UTC(),
		})
	}
}

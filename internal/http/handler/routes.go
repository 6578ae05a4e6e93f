package handler

import (
	"github.com/gofiber/fiber/v2"

	"multasapi/internal/http/middleware"
	"multasapi/internal/service"
)

// Services bundles the use cases exposed over HTTP.
type Services struct {
	Infractions    service.InfractionService
	Offenders      service.OffenderService
	Storage        service.StorageService
	ProcessedFiles service.ProcessedFileService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// checks feeds /health; /metrics and /swagger are mounted by the caller.
func RegisterRoutes(app *fiber.App, svc Services, checks map[string]Check) {
	app.Get("/health", HealthCheck(checks))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")
	api.Get("/status", Status())

	autos := api.Group("/autos")
	autos.Get("/", middleware.NoStore(), ListInfractions(svc.Infractions))
	autos.Get("/export", middleware.NoStore(), ExportInfractions(svc.Infractions))
	autos.Get("/:id", GetInfraction(svc.Infractions))

	infratores := api.Group("/infratores")
	infratores.Get("/", ListOffenderSummaries(svc.Infractions))
	infratores.Get("/cadastro", ListOffenders(svc.Offenders))
	infratores.Post("/cadastro", CreateOffender(svc.Offenders))
	infratores.Get("/cadastro/:id", GetOffender(svc.Offenders))

	st := api.Group("/storage")
	st.Get("/list", ListObjects(svc.Storage))
	st.Post("/folder", CreateFolder(svc.Storage))
	st.Post("/upload", UploadFiles(svc.Storage))
	st.Delete("/object", DeleteObject(svc.Storage))
	st.Get("/download/*", DownloadURL(svc.Storage))
	st.Get("/file/*", StreamFile(svc.Storage))
	st.Get("/health", StorageHealth(svc.Storage))

	pf := api.Group("/processed-files", middleware.NoStore())
	pf.Get("/list", ListProcessedFiles(svc.ProcessedFiles))
	pf.Get("/deletions", DeletionHistory(svc.ProcessedFiles))
	pf.Post("/batch-delete", BatchDeleteProcessedFiles(svc.ProcessedFiles))
	pf.Delete("/*", DeleteProcessedFile(svc.ProcessedFiles))
}

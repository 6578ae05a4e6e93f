package main

import (
	"context"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"multasapi/docs"
	"multasapi/internal/config"
	"multasapi/internal/database"
	"multasapi/internal/database/migration"
	"multasapi/internal/events"
	handlers "multasapi/internal/http/handler"
	"multasapi/internal/http/middleware"
	"multasapi/internal/logger"
	"multasapi/internal/otel"
	"multasapi/internal/repository"
	"multasapi/internal/repository/mongodb"
	"multasapi/internal/repository/postgres"
	"multasapi/internal/service"
	"multasapi/internal/storage"
	"multasapi/internal/upload"
)

const shutdownTimeout = 10 * time.Second

// @title Multas API
// @version 1.0
// @description Back office for traffic infraction records, their source documents and the storage bucket.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, cfg.Tracing, zl)
	if err != nil {
		zl.Fatal("failed to initialize tracing", zap.Error(err))
	}

	mongoClient, mongoDB, err := database.NewMongo(ctx, cfg.Mongo)
	if err != nil {
		zl.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	if err := mongodb.EnsureIndexes(ctx, mongoDB, zl); err != nil {
		zl.Fatal("failed to ensure mongodb indexes", zap.Error(err))
	}

	checks := map[string]handlers.Check{
		"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, readpref.Primary()) },
	}

	// The deletion audit log is optional; without DB_HOST the history endpoint answers 503.
	var audit repository.AuditRepository
	if cfg.Database.Enabled() {
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			zl.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := migration.EnsureMigrated(ctx, db, zl, cfg.Database.Host); err != nil {
			zl.Fatal("failed to migrate database", zap.Error(err))
		}
		audit = postgres.NewAuditPostgres(db)
		checks["postgres"] = db.PingContext
	} else {
		zl.Info("deletion audit disabled", zap.String("reason", "DB_HOST not set"))
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		zl.Fatal("failed to initialize object storage", zap.Error(err))
	}
	checks["storage"] = objStore.Ping

	publisher := events.NewPublisher(cfg.Kafka)
	defer publisher.Close()

	loc, err := cfg.Location()
	if err != nil {
		zl.Warn("export time zone unavailable, using UTC", zap.Error(err))
	}

	infractionRepo := mongodb.NewInfractionMongo(mongoDB)
	svcs := handlers.Services{
		Infractions:    service.NewInfractionService(infractionRepo, loc, zl),
		Offenders:      service.NewOffenderService(mongodb.NewOffenderMongo(mongoDB)),
		Storage:        service.NewStorageService(objStore, upload.NewPolicy(cfg.Upload), publisher, zl, cfg.Upload.Concurrency),
		ProcessedFiles: service.NewProcessedFileService(infractionRepo, objStore, audit, publisher, zl, cfg.MinIO.MaxListedKeys),
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		zl.Fatal("failed to register metrics", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(zl),
		BodyLimit:    cfg.BodyLimitBytes,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORSOrigins, ","),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,Cache-Control,Pragma,X-Request-ID",
	}))
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(zl))
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, svcs, checks)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		zl.Info("shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			zl.Error("http shutdown failed", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	zl.Info("server starting", zap.String("addr", addr), zap.String("bucket", cfg.MinIO.Bucket))
	if err := app.Listen(addr); err != nil {
		zl.Error("failed to start server", zap.Error(err))
	}

	cleanupCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownTracing(cleanupCtx); err != nil {
		zl.Warn("tracing shutdown failed", zap.Error(err))
	}
	if err := mongoClient.Disconnect(cleanupCtx); err != nil {
		zl.Warn("mongodb disconnect failed", zap.Error(err))
	}
}

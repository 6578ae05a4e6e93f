// Command multasctl runs maintenance tasks against the same stores as the API.
package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"multasapi/internal/config"
	"multasapi/internal/database"
	"multasapi/internal/events"
	"multasapi/internal/logger"
	"multasapi/internal/repository"
	"multasapi/internal/repository/mongodb"
	"multasapi/internal/repository/postgres"
	"multasapi/internal/service"
	"multasapi/internal/storage"
)

var (
	cfg *config.AppConfig
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "multasctl",
	Short:         "Maintenance commands for the infractions back office",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		if log, err = logger.New(cfg.LogLevel); err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, orphansCmd, purgeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newProcessedFiles wires the processed-files service the same way the API does.
// The returned func releases the connections. Tests replace it.
var newProcessedFiles = func(ctx context.Context) (service.ProcessedFileService, func(), error) {
	client, db, err := database.NewMongo(ctx, cfg.Mongo)
	if err != nil {
		return nil, nil, err
	}
	closers := []func(){func() { _ = client.Disconnect(context.Background()) }}
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	store, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	var audit repository.AuditRepository
	if cfg.Database.Enabled() {
		sqlDB, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, func() { _ = sqlDB.Close() })
		audit = postgres.NewAuditPostgres(sqlDB)
	}

	publisher := events.NewPublisher(cfg.Kafka)
	closers = append(closers, func() { _ = publisher.Close() })

	svc := service.NewProcessedFileService(mongodb.NewInfractionMongo(db), store, audit, publisher, log, cfg.MinIO.MaxListedKeys)
	return svc, cleanup, nil
}

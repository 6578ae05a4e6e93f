package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"multasapi/internal/database"
	"multasapi/internal/database/migration"
	"multasapi/internal/repository/mongodb"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create MongoDB indexes and the deletion audit table",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, db, err := database.NewMongo(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	if err := mongodb.EnsureIndexes(ctx, db, log); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "mongodb indexes ready")

	if !cfg.Database.Enabled() {
		log.Info("audit table skipped", zap.String("reason", "DB_HOST not set"))
		return nil
	}

	sqlDB, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := migration.EnsureMigrated(ctx, sqlDB, log, cfg.Database.Host); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "audit table ready")
	return nil
}

package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_file_deletions",
		SQL: `CREATE TABLE IF NOT EXISTS file_deletions (
  id              UUID        PRIMARY KEY,
  file_path       TEXT        NOT NULL,
  resolved_path   TEXT        NOT NULL DEFAULT '',
  deleted_autos   BIGINT      NOT NULL DEFAULT 0 CHECK (deleted_autos >= 0),
  storage_deleted BOOLEAN     NOT NULL DEFAULT false,
  outcome         TEXT        NOT NULL CHECK (outcome IN ('success', 'failed')),
  error_message   TEXT        NOT NULL DEFAULT '',
  request_id      TEXT        NOT NULL DEFAULT '',
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_file_deletions_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_file_deletions_created_at ON file_deletions (created_at DESC, id DESC);`,
	},
	{
		Name: "create_index_file_deletions_file_path",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_file_deletions_file_path ON file_deletions (file_path);`,
	},
}

// EnsureMigrated creates the deletion audit schema when the file_deletions table is missing.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))

	log.Info("db_migration_check")

	var exists bool
	query := "SELECT to_regclass('public.file_deletions') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("reason", "schema already exists"),
			zap.Duration("duration", time.Since(start)),
		)
		return nil
	}

	log.Info("db_migration_start", zap.Int("steps", len(steps)))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Duration("duration", time.Since(start)),
				zap.Duration("step_duration", time.Since(stepStart)),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("migration_step", step.Name),
			zap.Duration("step_duration", time.Since(stepStart)),
		)
	}

	log.Info("db_migration_success", zap.Duration("duration", time.Since(start)))
	return nil
}

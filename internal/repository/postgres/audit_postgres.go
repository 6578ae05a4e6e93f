package postgres

import (
	"context"
	"database/sql"

	"multasapi/internal/model"
	"multasapi/internal/repository"
)

// AuditPostgres is a PostgreSQL implementation of repository.AuditRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type AuditPostgres struct {
	db *sql.DB
}

// NewAuditPostgres creates a new AuditPostgres repository.
func NewAuditPostgres(db *sql.DB) *AuditPostgres {
	return &AuditPostgres{db: db}
}

var _ repository.AuditRepository = (*AuditPostgres)(nil)

// Record inserts one deletion row. ID and CreatedAt are provided by the caller.
func (r *AuditPostgres) Record(ctx context.Context, e *model.DeletionAudit) error {
	const q = `
		INSERT INTO file_deletions
			(id, file_path, resolved_path, deleted_autos, storage_deleted, outcome, error_message, request_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, q,
		e.ID,
		e.FilePath,
		e.ResolvedPath,
		e.DeletedAutos,
		e.StorageDeleted,
		e.Outcome,
		e.ErrorMessage,
		e.RequestID,
		e.CreatedAt,
	)
	return err
}

// List returns deletion rows newest first using LIMIT/OFFSET pagination and a total count.
func (r *AuditPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.DeletionAudit], error) {
	const qCount = `SELECT COUNT(*) FROM file_deletions`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, file_path, resolved_path, deleted_autos, storage_deleted, outcome, error_message, request_id, created_at
		FROM file_deletions
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DeletionAudit, 0)
	for rows.Next() {
		var e model.DeletionAudit
		if err := rows.Scan(
			&e.ID,
			&e.FilePath,
			&e.ResolvedPath,
			&e.DeletedAutos,
			&e.StorageDeleted,
			&e.Outcome,
			&e.ErrorMessage,
			&e.RequestID,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.DeletionAudit]{
		Items: items,
		Total: total,
	}, nil
}

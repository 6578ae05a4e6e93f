package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"multasapi/internal/model"
	"multasapi/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var auditColumns = []string{"id", "file_path", "resolved_path", "deleted_autos", "storage_deleted", "outcome", "error_message", "request_id", "created_at"}

func TestAuditPostgres_Record(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAuditPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	entry := &model.DeletionAudit{
		ID:             "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		FilePath:       "lote/AI0001.pdf",
		ResolvedPath:   "2024/lote/AI0001.pdf",
		DeletedAutos:   2,
		StorageDeleted: true,
		Outcome:        model.OutcomeSuccess,
		RequestID:      "req-1",
		CreatedAt:      now,
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO file_deletions").
			WithArgs(entry.ID, entry.FilePath, entry.ResolvedPath, entry.DeletedAutos, entry.StorageDeleted,
				entry.Outcome, entry.ErrorMessage, entry.RequestID, entry.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Record(ctx, entry))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO file_deletions").
			WillReturnError(errors.New("relation does not exist"))

		err := repo.Record(ctx, entry)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAuditPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAuditPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM file_deletions").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		rows := sqlmock.NewRows(auditColumns).
			AddRow("id-2", "b.pdf", "", 0, false, model.OutcomeFailed, "storage down", "req-2", time.Now()).
			AddRow("id-1", "a.pdf", "a.pdf", 3, true, model.OutcomeSuccess, "", "req-1", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM file_deletions ORDER BY").
			WithArgs(20, 0).
			WillReturnRows(rows)

		res, err := repo.List(ctx, repository.PageQuery{Limit: 20, Offset: 0})

		assert.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		assert.Len(t, res.Items, 2)
		assert.Equal(t, "storage down", res.Items[0].ErrorMessage)
		assert.Equal(t, int64(3), res.Items[1].DeletedAutos)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("count error", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM file_deletions").
			WillReturnError(fmt.Errorf("connection reset"))

		res, err := repo.List(ctx, repository.PageQuery{Limit: 20})
		assert.Error(t, err)
		assert.Nil(t, res)
	})

	t.Run("scan error", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM file_deletions").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT (.+) FROM file_deletions ORDER BY").
			WithArgs(20, 0).
			WillReturnRows(sqlmock.NewRows(auditColumns).
				AddRow("id-1", "a.pdf", "a.pdf", "not-a-number", true, model.OutcomeSuccess, "", "", time.Now()))

		res, err := repo.List(ctx, repository.PageQuery{Limit: 20})
		assert.Error(t, err)
		assert.Nil(t, res)
	})
}

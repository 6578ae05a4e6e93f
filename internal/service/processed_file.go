package service

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"multasapi/internal/events"
	"multasapi/internal/model"
	"multasapi/internal/repository"
	"multasapi/internal/storage"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// DeletionHistory is one page of the deletion audit log.
type DeletionHistory struct {
	Items  []model.DeletionAudit `json:"items"`
	Total  int                   `json:"total"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}

// ProcessedFileService groups infraction records by source file and removes them together with the file.
type ProcessedFileService interface {
	List(ctx context.Context, f repository.ProcessedFileFilter) ([]model.ProcessedFile, error)
	// Orphans returns processed files whose source object is missing from the bucket.
	// Unlike List, a bucket listing failure is returned as an error.
	Orphans(ctx context.Context, f repository.ProcessedFileFilter) ([]model.ProcessedFile, error)
	Delete(ctx context.Context, filePath string) (*model.FileDeletion, error)
	BatchDelete(ctx context.Context, filePaths []string) (*model.BatchDeletion, error)
	History(ctx context.Context, limit, offset int) (*DeletionHistory, error)
}

type processedFileService struct {
	repo      repository.InfractionRepository
	store     storage.Storage
	audit     repository.AuditRepository
	publisher events.Publisher
	log       *zap.Logger
	maxKeys   int
	now       func() time.Time
}

// NewProcessedFileService constructs a ProcessedFileService. audit may be nil when the audit
// database is not configured. maxKeys bounds the bucket scan used for existsInStorage.
func NewProcessedFileService(
	repo repository.InfractionRepository,
	store storage.Storage,
	audit repository.AuditRepository,
	publisher events.Publisher,
	log *zap.Logger,
	maxKeys int,
) ProcessedFileService {
	if publisher == nil {
		publisher = events.Noop()
	}
	return &processedFileService{
		repo:      repo,
		store:     store,
		audit:     audit,
		publisher: publisher,
		log:       log,
		maxKeys:   maxKeys,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func validateFilter(f repository.ProcessedFileFilter) error {
	dates := []struct{ field, value string }{
		{"dataExpedicaoInicio", f.ShippedFrom},
		{"dataExpedicaoFim", f.ShippedTo},
		{"dataEmissaoInicio", f.IssuedFrom},
		{"dataEmissaoFim", f.IssuedTo},
	}
	for _, d := range dates {
		if d.value == "" {
			continue
		}
		if _, err := time.Parse(time.DateOnly, d.value); err != nil {
			return invalid(d.field, "data deve estar no formato AAAA-MM-DD")
		}
	}
	return nil
}

func (s *processedFileService) List(ctx context.Context, f repository.ProcessedFileFilter) ([]model.ProcessedFile, error) {
	return s.list(ctx, f, false)
}

func (s *processedFileService) Orphans(ctx context.Context, f repository.ProcessedFileFilter) ([]model.ProcessedFile, error) {
	files, err := s.list(ctx, f, true)
	if err != nil {
		return nil, err
	}
	orphans := make([]model.ProcessedFile, 0)
	for _, pf := range files {
		if !pf.ExistsInStorage {
			orphans = append(orphans, pf)
		}
	}
	return orphans, nil
}

func (s *processedFileService) list(ctx context.Context, f repository.ProcessedFileFilter, strict bool) ([]model.ProcessedFile, error) {
	f.FileName = strings.TrimSpace(f.FileName)
	f.Offender = strings.TrimSpace(f.Offender)
	if err := validateFilter(f); err != nil {
		return nil, err
	}

	groups, err := s.repo.GroupBySourceFile(ctx, f)
	if err != nil {
		return nil, err
	}

	keys, truncated, err := s.store.ObjectKeys(ctx, "", s.maxKeys)
	if err != nil {
		if strict {
			return nil, err
		}
		s.log.Warn("bucket listing failed, marking files as missing", zap.Error(err))
		keys = nil
	}
	if truncated {
		s.log.Warn("bucket listing truncated", zap.Int("max_keys", s.maxKeys))
	}

	files := make([]model.ProcessedFile, 0, len(groups))
	for _, g := range groups {
		_, exists := keys[g.Path]
		offenders := g.Offenders
		if offenders == nil {
			offenders = []string{}
		}
		files = append(files, model.ProcessedFile{
			Path:            g.Path,
			Name:            path.Base(g.Path),
			AutosCount:      g.Count,
			ProcessedAt:     g.FirstProcessedAt.Time,
			ExistsInStorage: exists,
			Offenders:       offenders,
		})
	}

	s.log.Debug("processed files listed", zap.Int("files", len(files)), zap.Int("bucket_keys", len(keys)))
	return files, nil
}

func (s *processedFileService) Delete(ctx context.Context, filePath string) (*model.FileDeletion, error) {
	return s.deleteOne(ctx, filePath, true)
}

// deleteOne removes the records linked to filePath, then the file itself. When requireRecords
// is set, a path with no linked records is reported as ErrNotFound and nothing is deleted.
func (s *processedFileService) deleteOne(ctx context.Context, filePath string, requireRecords bool) (*model.FileDeletion, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, invalid("filePath", "caminho do arquivo é obrigatório")
	}
	if storage.IsFolderKey(filePath) {
		return nil, invalid("filePath", "caminho deve apontar para um arquivo")
	}

	records, err := s.repo.FindBySourceFile(ctx, filePath)
	if err != nil {
		s.record(ctx, &model.FileDeletion{File: filePath}, err)
		return nil, err
	}
	if len(records) == 0 && requireRecords {
		return nil, ErrNotFound
	}

	ids := make([]primitive.ObjectID, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}

	deleted, err := s.repo.DeleteBySourceFile(ctx, filePath)
	if err != nil {
		s.record(ctx, &model.FileDeletion{File: filePath}, err)
		return nil, err
	}

	out := &model.FileDeletion{
		File:              filePath,
		Success:           true,
		DeletedAutosCount: deleted,
		AutosIDs:          ids,
	}
	out.StorageDeleted, out.ResolvedPath = s.deleteFile(ctx, filePath)

	s.log.Info("processed file deleted",
		zap.String("file", filePath),
		zap.Int64("deleted_autos", deleted),
		zap.Bool("storage_deleted", out.StorageDeleted),
		zap.String("resolved_path", out.ResolvedPath),
	)

	s.record(ctx, out, nil)
	if err := s.publisher.Publish(ctx, events.New(events.ProcessedFileDeleted, filePath, requestIDFrom(ctx), out)); err != nil {
		s.log.Warn("event publish failed", zap.String("file", filePath), zap.Error(err))
	}
	return out, nil
}

// deleteFile removes the exact key, falling back to the first key with the same base name.
// Failures are logged and reported as not deleted.
func (s *processedFileService) deleteFile(ctx context.Context, filePath string) (bool, string) {
	err := s.store.Delete(ctx, filePath)
	if err == nil {
		return true, filePath
	}
	s.log.Warn("direct file delete failed, searching by name", zap.String("file", filePath), zap.Error(err))

	realPath, err := s.store.FindByBasename(ctx, path.Base(filePath))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			s.log.Warn("file not found anywhere in the bucket", zap.String("file", filePath))
		} else {
			s.log.Error("file search failed", zap.String("file", filePath), zap.Error(err))
		}
		return false, ""
	}

	if err := s.store.Delete(ctx, realPath); err != nil {
		s.log.Error("fallback file delete failed", zap.String("file", filePath), zap.String("resolved_path", realPath), zap.Error(err))
		return false, ""
	}
	return true, realPath
}

func (s *processedFileService) BatchDelete(ctx context.Context, filePaths []string) (*model.BatchDeletion, error) {
	if len(filePaths) == 0 {
		return nil, invalid("filePaths", "lista de arquivos é obrigatória")
	}

	res := &model.BatchDeletion{
		Results:    make([]model.FileDeletion, 0, len(filePaths)),
		TotalFiles: len(filePaths),
	}
	for _, p := range filePaths {
		if ctx.Err() != nil {
			res.Results = append(res.Results, model.FileDeletion{File: p, Error: "requisição cancelada"})
			continue
		}
		out, err := s.deleteOne(ctx, p, false)
		if err != nil {
			s.log.Error("batch delete item failed", zap.String("file", p), zap.Error(err))
			res.Results = append(res.Results, model.FileDeletion{File: p, Error: batchErrorMessage(err)})
			continue
		}
		res.Results = append(res.Results, *out)
	}

	for _, r := range res.Results {
		if r.Success {
			res.SuccessCount++
		} else {
			res.FailureCount++
		}
	}
	s.log.Info("batch delete finished",
		zap.Int("total", res.TotalFiles),
		zap.Int("success", res.SuccessCount),
		zap.Int("failed", res.FailureCount),
	)
	return res, nil
}

func batchErrorMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return "erro ao excluir arquivo processado"
}

// record writes an audit row. A failing audit store is logged and otherwise ignored.
func (s *processedFileService) record(ctx context.Context, d *model.FileDeletion, cause error) {
	if s.audit == nil {
		return
	}
	entry := &model.DeletionAudit{
		ID:             uuid.NewString(),
		FilePath:       d.File,
		ResolvedPath:   d.ResolvedPath,
		DeletedAutos:   d.DeletedAutosCount,
		StorageDeleted: d.StorageDeleted,
		Outcome:        model.OutcomeSuccess,
		RequestID:      requestIDFrom(ctx),
		CreatedAt:      s.now(),
	}
	if cause != nil {
		entry.Outcome = model.OutcomeFailed
		entry.ErrorMessage = cause.Error()
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.log.Warn("deletion audit failed", zap.String("file", d.File), zap.Error(err))
	}
}

func (s *processedFileService) History(ctx context.Context, limit, offset int) (*DeletionHistory, error) {
	if s.audit == nil {
		return nil, ErrUnavailable
	}
	if limit < 1 || limit > MaxHistoryLimit {
		return nil, invalid("limit", "deve estar entre 1 e %d", MaxHistoryLimit)
	}
	if offset < 0 {
		return nil, invalid("offset", "deve ser maior ou igual a 0")
	}

	res, err := s.audit.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DeletionHistory{Items: res.Items, Total: res.Total, Limit: limit, Offset: offset}, nil
}

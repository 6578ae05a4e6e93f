package repository

import (
	"context"
	"errors"

	"multasapi/internal/model"
)

// ErrNotFound is returned when a single-document lookup matches nothing.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique index rejects an insert.
var ErrDuplicate = errors.New("duplicate key")

// InfractionRepository defines data access for infraction records.
// No business logic here, strictly persistence operations.
type InfractionRepository interface {
	// List returns one page of records matching the filter, newest occurrence first, and the total count.
	List(ctx context.Context, f InfractionFilter, pq PageQuery) (*PageResult[model.InfractionRecord], error)

	// FindAll returns every record matching the filter in list order. Used by the CSV export.
	FindAll(ctx context.Context, f InfractionFilter) ([]model.InfractionRecord, error)

	// FindByID returns a record by its hex ObjectID.
	FindByID(ctx context.Context, id string) (*model.InfractionRecord, error)

	// DistinctOffenders returns the distinct (name, tax ID) pairs sorted by name then tax ID.
	DistinctOffenders(ctx context.Context) ([]model.OffenderSummary, error)

	// GroupBySourceFile aggregates records by their inferred source file.
	GroupBySourceFile(ctx context.Context, f ProcessedFileFilter) ([]SourceFileGroup, error)

	// FindBySourceFile returns the records associated with a bucket key.
	FindBySourceFile(ctx context.Context, filePath string) ([]model.InfractionRecord, error)

	// DeleteBySourceFile removes the records associated with a bucket key and returns how many were removed.
	DeleteBySourceFile(ctx context.Context, filePath string) (int64, error)
}

// OffenderRepository defines data access for the registered offenders collection.
type OffenderRepository interface {
	Create(ctx context.Context, o *model.Offender) (*model.Offender, error)
	FindByID(ctx context.Context, id string) (*model.Offender, error)
	List(ctx context.Context, search string, pq PageQuery) (*PageResult[model.Offender], error)
}

// AuditRepository persists the processed-file deletion log.
type AuditRepository interface {
	Record(ctx context.Context, entry *model.DeletionAudit) error
	List(ctx context.Context, pq PageQuery) (*PageResult[model.DeletionAudit], error)
}

// InfractionFilter narrows infraction listings.
// Both terms are partial, case-insensitive matches.
type InfractionFilter struct {
	Offender string
	Search   string
}

// ProcessedFileFilter narrows the processed-files aggregation.
// Date bounds are inclusive YYYY-MM-DD strings.
type ProcessedFileFilter struct {
	FileName    string
	Offender    string
	ShippedFrom string
	ShippedTo   string
	IssuedFrom  string
	IssuedTo    string
}

// SourceFileGroup is one row of the processed-files aggregation.
type SourceFileGroup struct {
	Path             string     `bson:"_id"`
	Count            int64      `bson:"count"`
	FirstProcessedAt model.Date `bson:"firstProcessedAt"`
	Offenders        []string   `bson:"infratores"`
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}

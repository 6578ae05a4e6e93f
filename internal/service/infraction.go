package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"multasapi/internal/model"
	"multasapi/internal/repository"
)

const (
	DefaultInfractionLimit = 10
	MaxInfractionLimit     = 500
)

// InfractionListParams are the query parameters accepted by the infractions listing.
type InfractionListParams struct {
	Offender string
	Search   string
	Page     int
	Limit    int
}

// AppliedFilters echoes the filters used for a listing; absent filters are null.
type AppliedFilters struct {
	Search   *string `json:"search"`
	Offender *string `json:"infrator"`
}

// InfractionPage is the listing payload consumed by the SPA.
type InfractionPage struct {
	Autos   []model.InfractionRecord `json:"autos"`
	Total   int                      `json:"total"`
	Page    int                      `json:"page"`
	Limit   int                      `json:"limit"`
	Filters AppliedFilters           `json:"filtros_aplicados"`
}

// InfractionService defines the read use cases over infraction records.
type InfractionService interface {
	List(ctx context.Context, p InfractionListParams) (*InfractionPage, error)
	// Export writes every matching record as CSV to w and returns the number of rows.
	Export(ctx context.Context, offender, search string, w io.Writer) (int, error)
	Get(ctx context.Context, id string) (*model.InfractionRecord, error)
	ListOffenders(ctx context.Context) ([]model.OffenderSummary, error)
}

type infractionService struct {
	repo repository.InfractionRepository
	loc  *time.Location
	log  *zap.Logger
}

// NewInfractionService constructs an InfractionService. loc is the zone export dates are rendered in.
func NewInfractionService(repo repository.InfractionRepository, loc *time.Location, log *zap.Logger) InfractionService {
	if loc == nil {
		loc = time.UTC
	}
	return &infractionService{repo: repo, loc: loc, log: log}
}

func buildInfractionFilter(offender, search string) repository.InfractionFilter {
	return repository.InfractionFilter{
		Offender: strings.TrimSpace(offender),
		Search:   strings.TrimSpace(search),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *infractionService) List(ctx context.Context, p InfractionListParams) (*InfractionPage, error) {
	if p.Page < 1 {
		return nil, invalid("page", "deve ser um inteiro maior que 0")
	}
	if p.Limit < 1 || p.Limit > MaxInfractionLimit {
		return nil, invalid("limit", "deve estar entre 1 e %d", MaxInfractionLimit)
	}

	f := buildInfractionFilter(p.Offender, p.Search)
	res, err := s.repo.List(ctx, f, repository.PageQuery{Limit: p.Limit, Offset: (p.Page - 1) * p.Limit})
	if err != nil {
		return nil, err
	}

	s.log.Debug("infractions listed",
		zap.String("infrator", f.Offender),
		zap.String("search", f.Search),
		zap.Int("page", p.Page),
		zap.Int("returned", len(res.Items)),
		zap.Int("total", res.Total),
	)

	return &InfractionPage{
		Autos: res.Items,
		Total: res.Total,
		Page:  p.Page,
		Limit: p.Limit,
		Filters: AppliedFilters{
			Search:   optional(p.Search),
			Offender: optional(p.Offender),
		},
	}, nil
}

func (s *infractionService) Export(ctx context.Context, offender, search string, w io.Writer) (int, error) {
	records, err := s.repo.FindAll(ctx, buildInfractionFilter(offender, search))
	if err != nil {
		return 0, err
	}
	if err := writeCSV(w, records, s.loc); err != nil {
		return 0, err
	}
	s.log.Info("infractions exported", zap.Int("rows", len(records)))
	return len(records), nil
}

func (s *infractionService) Get(ctx context.Context, id string) (*model.InfractionRecord, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, ErrInvalidID
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *infractionService) ListOffenders(ctx context.Context) ([]model.OffenderSummary, error) {
	return s.repo.DistinctOffenders(ctx)
}

package mocks

import (
	"context"

	"multasapi/internal/model"
	"multasapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockInfractionRepository struct {
	mock.Mock
}

func (m *MockInfractionRepository) List(ctx context.Context, f repository.InfractionFilter, pq repository.PageQuery) (*repository.PageResult[model.InfractionRecord], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.InfractionRecord]), args.Error(1)
}

func (m *MockInfractionRepository) FindAll(ctx context.Context, f repository.InfractionFilter) ([]model.InfractionRecord, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InfractionRecord), args.Error(1)
}

func (m *MockInfractionRepository) FindByID(ctx context.Context, id string) (*model.InfractionRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InfractionRecord), args.Error(1)
}

func (m *MockInfractionRepository) DistinctOffenders(ctx context.Context) ([]model.OffenderSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OffenderSummary), args.Error(1)
}

func (m *MockInfractionRepository) GroupBySourceFile(ctx context.Context, f repository.ProcessedFileFilter) ([]repository.SourceFileGroup, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.SourceFileGroup), args.Error(1)
}

func (m *MockInfractionRepository) FindBySourceFile(ctx context.Context, filePath string) ([]model.InfractionRecord, error) {
	args := m.Called(ctx, filePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InfractionRecord), args.Error(1)
}

func (m *MockInfractionRepository) DeleteBySourceFile(ctx context.Context, filePath string) (int64, error) {
	args := m.Called(ctx, filePath)
	return args.Get(0).(int64), args.Error(1)
}

type MockOffenderRepository struct {
	mock.Mock
}

func (m *MockOffenderRepository) Create(ctx context.Context, o *model.Offender) (*model.Offender, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Offender), args.Error(1)
}

func (m *MockOffenderRepository) FindByID(ctx context.Context, id string) (*model.Offender, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Offender), args.Error(1)
}

func (m *MockOffenderRepository) List(ctx context.Context, search string, pq repository.PageQuery) (*repository.PageResult[model.Offender], error) {
	args := m.Called(ctx, search, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Offender]), args.Error(1)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Record(ctx context.Context, entry *model.DeletionAudit) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.DeletionAudit], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.DeletionAudit]), args.Error(1)
}

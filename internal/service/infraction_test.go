package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap/zaptest"

	"multasapi/internal/model"
	"multasapi/internal/repository"
	repoMocks "multasapi/internal/repository/mocks"
)

func TestInfractionService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		params     InfractionListParams
		setupMocks func(m *repoMocks.MockInfractionRepository)
		wantErr    bool
		check      func(t *testing.T, got *InfractionPage)
	}{
		{
			name:   "happy path with filters",
			params: InfractionListParams{Offender: " Transportes ", Search: "  AI-1 ", Page: 3, Limit: 20},
			setupMocks: func(m *repoMocks.MockInfractionRepository) {
				m.On("List", ctx,
					repository.InfractionFilter{Offender: "Transportes", Search: "AI-1"},
					repository.PageQuery{Limit: 20, Offset: 40},
				).Return(&repository.PageResult[model.InfractionRecord]{
					Items: []model.InfractionRecord{{InfractionNumber: "AI-123"}},
					Total: 41,
				}, nil)
			},
			check: func(t *testing.T, got *InfractionPage) {
				assert.Equal(t, 41, got.Total)
				assert.Equal(t, 3, got.Page)
				assert.Equal(t, 20, got.Limit)
				require.Len(t, got.Autos, 1)
				require.NotNil(t, got.Filters.Search)
				assert.Equal(t, "  AI-1 ", *got.Filters.Search)
			},
		},
		{
			name:   "no filters echo null",
			params: InfractionListParams{Page: 1, Limit: 10},
			setupMocks: func(m *repoMocks.MockInfractionRepository) {
				m.On("List", ctx, repository.InfractionFilter{}, repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.InfractionRecord]{Items: []model.InfractionRecord{}}, nil)
			},
			check: func(t *testing.T, got *InfractionPage) {
				assert.Nil(t, got.Filters.Search)
				assert.Nil(t, got.Filters.Offender)
				assert.NotNil(t, got.Autos)
			},
		},
		{
			name:       "page zero",
			params:     InfractionListParams{Page: 0, Limit: 10},
			setupMocks: func(m *repoMocks.MockInfractionRepository) {},
			wantErr:    true,
		},
		{
			name:       "limit over cap",
			params:     InfractionListParams{Page: 1, Limit: MaxInfractionLimit + 1},
			setupMocks: func(m *repoMocks.MockInfractionRepository) {},
			wantErr:    true,
		},
		{
			name:   "repository error",
			params: InfractionListParams{Page: 1, Limit: 10},
			setupMocks: func(m *repoMocks.MockInfractionRepository) {
				m.On("List", ctx, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockInfractionRepository)
			tt.setupMocks(mRepo)
			svc := NewInfractionService(mRepo, time.UTC, zaptest.NewLogger(t))

			got, err := svc.List(ctx, tt.params)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				tt.check(t, got)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestInfractionService_ListValidationError(t *testing.T) {
	svc := NewInfractionService(new(repoMocks.MockInfractionRepository), nil, zaptest.NewLogger(t))

	_, err := svc.List(context.Background(), InfractionListParams{Page: 1, Limit: 0})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "limit", ve.Field)
}

func TestInfractionService_Get(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()

	t.Run("invalid id", func(t *testing.T) {
		mRepo := new(repoMocks.MockInfractionRepository)
		svc := NewInfractionService(mRepo, time.UTC, zaptest.NewLogger(t))

		_, err := svc.Get(ctx, "not-an-id")
		assert.ErrorIs(t, err, ErrInvalidID)
		mRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockInfractionRepository)
		mRepo.On("FindByID", ctx, id.Hex()).Return(nil, repository.ErrNotFound)
		svc := NewInfractionService(mRepo, time.UTC, zaptest.NewLogger(t))

		_, err := svc.Get(ctx, id.Hex())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("found", func(t *testing.T) {
		mRepo := new(repoMocks.MockInfractionRepository)
		mRepo.On("FindByID", ctx, id.Hex()).Return(&model.InfractionRecord{ID: id, InfractionNumber: "AI-9"}, nil)
		svc := NewInfractionService(mRepo, time.UTC, zaptest.NewLogger(t))

		got, err := svc.Get(ctx, id.Hex())
		require.NoError(t, err)
		assert.Equal(t, "AI-9", got.InfractionNumber)
	})
}

func TestInfractionService_Export(t *testing.T) {
	ctx := context.Background()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	// 02:00 UTC on the 16th is still the 15th in São Paulo.
	occurred := time.Date(2024, 1, 16, 2, 0, 0, 0, time.UTC)
	days := 30

	mRepo := new(repoMocks.MockInfractionRepository)
	mRepo.On("FindAll", ctx, repository.InfractionFilter{Offender: "ACME"}).Return([]model.InfractionRecord{
		{
			InfractionNumber:   "AI-1",
			OffenderName:       "ACME, Transportes \"Ltda\"",
			OccurredAt:         model.NewDate(occurred),
			DefenseDeadlineDay: &days,
			Situation:          model.SituationPending,
			Meta:               model.InfractionMeta{DocumentShippedOn: "2024-01-10", Source: "ocr"},
		},
	}, nil)

	svc := NewInfractionService(mRepo, loc, zaptest.NewLogger(t))

	var buf bytes.Buffer
	n, err := svc.Export(ctx, "ACME", "", &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "\ufeff"))

	rows, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\ufeff"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 45)
	assert.Equal(t, exportColumns, rows[0])

	row := map[string]string{}
	for i, col := range rows[0] {
		row[col] = rows[1][i]
	}
	assert.Equal(t, "ACME, Transportes \"Ltda\"", row["infrator_nome"])
	assert.Equal(t, "15/01/2024", row["local_data"])
	assert.Equal(t, "30", row["prazo_defesa_dias"])
	assert.Equal(t, "Pendente", row["situacao"])
	assert.Equal(t, "10/01/2024", row["data_expedicao_documento"])
	assert.Equal(t, "", row["data_emissao_documento"])
	assert.Equal(t, "", row["agente_data"])
}

func TestInfractionService_ExportError(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockInfractionRepository)
	mRepo.On("FindAll", ctx, repository.InfractionFilter{}).Return(nil, errors.New("cursor killed"))

	svc := NewInfractionService(mRepo, time.UTC, zaptest.NewLogger(t))
	var buf bytes.Buffer
	_, err := svc.Export(ctx, "", " ", &buf)
	assert.EqualError(t, err, "cursor killed")
	assert.Zero(t, buf.Len())
}

func TestBrDayString(t *testing.T) {
	assert.Equal(t, "31/12/2023", brDayString("2023-12-31"))
	assert.Equal(t, "", brDayString(""))
	assert.Equal(t, "31-12-2023", brDayString("31-12-2023"))
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"multasapi/internal/model"
	"multasapi/internal/repository"
	repoMocks "multasapi/internal/repository/mocks"
)

func TestOffenderService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		input      *model.Offender
		setupMocks func(m *repoMocks.MockOffenderRepository)
		wantErr    error
		wantField  string
	}{
		{
			name:  "trims and creates",
			input: &model.Offender{Name: "  Transportes Rápidos  ", CNPJ: " 12.345.678/0001-90 "},
			setupMocks: func(m *repoMocks.MockOffenderRepository) {
				m.On("Create", ctx, &model.Offender{Name: "Transportes Rápidos", CNPJ: "12.345.678/0001-90"}).
					Return(&model.Offender{ID: primitive.NewObjectID(), Name: "Transportes Rápidos"}, nil)
			},
		},
		{
			name:       "name required",
			input:      &model.Offender{Name: "   "},
			setupMocks: func(m *repoMocks.MockOffenderRepository) {},
			wantField:  "nome",
		},
		{
			name:       "bad email",
			input:      &model.Offender{Name: "ACME", Contact: &model.Contact{Email: "acme.com.br"}},
			setupMocks: func(m *repoMocks.MockOffenderRepository) {},
			wantField:  "contato.email",
		},
		{
			name:  "duplicate name",
			input: &model.Offender{Name: "ACME"},
			setupMocks: func(m *repoMocks.MockOffenderRepository) {
				m.On("Create", ctx, mock.Anything).Return(nil, repository.ErrDuplicate)
			},
			wantErr: ErrDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockOffenderRepository)
			tt.setupMocks(mRepo)
			svc := NewOffenderService(mRepo)

			got, err := svc.Create(ctx, tt.input)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantField != "":
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.wantField, ve.Field)
			default:
				require.NoError(t, err)
				assert.False(t, got.ID.IsZero())
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestOffenderService_List(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockOffenderRepository)
	mRepo.On("List", ctx, "acme", repository.PageQuery{Limit: 20, Offset: 20}).
		Return(&repository.PageResult[model.Offender]{Items: []model.Offender{{Name: "ACME"}}, Total: 21}, nil)

	svc := NewOffenderService(mRepo)
	got, err := svc.List(ctx, " acme ", 2, 20)
	require.NoError(t, err)
	assert.Equal(t, 21, got.Total)
	assert.Equal(t, 2, got.Page)

	_, err = svc.List(ctx, "", 1, MaxOffenderLimit+1)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestOffenderService_Get(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID().Hex()

	mRepo := new(repoMocks.MockOffenderRepository)
	mRepo.On("FindByID", ctx, id).Return(nil, repository.ErrNotFound)
	svc := NewOffenderService(mRepo)

	_, err := svc.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(ctx, "123")
	assert.ErrorIs(t, err, ErrInvalidID)
}

package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"multasapi/internal/model"
	"multasapi/internal/repository"
)

func TestOffenderMongo_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		repo := NewOffenderMongo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		out, err := repo.Create(context.Background(), &model.Offender{Name: "Acme", CNPJ: "1"})
		require.NoError(t, err)
		assert.False(t, out.ID.IsZero())
		assert.False(t, out.CreatedAt.IsZero())
		assert.Equal(t, out.CreatedAt, out.UpdatedAt)
	})

	mt.Run("duplicate", func(mt *mtest.T) {
		repo := NewOffenderMongo(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "E11000 duplicate key error",
		}))

		out, err := repo.Create(context.Background(), &model.Offender{Name: "Acme"})
		assert.ErrorIs(t, err, repository.ErrDuplicate)
		assert.Nil(t, out)
	})
}

func TestOffenderMongo_List(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		repo := NewOffenderMongo(mt.DB)
		ns := mt.DB.Name() + "." + OffendersCollection
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
				{Key: "nome", Value: "Acme"},
				{Key: "endereco", Value: bson.D{{Key: "cidade", Value: "Curitiba"}}},
			}),
		)

		res, err := repo.List(context.Background(), "ac", repository.PageQuery{Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		require.Len(t, res.Items, 1)
		require.NotNil(t, res.Items[0].Address)
		assert.Equal(t, "Curitiba", res.Items[0].Address.City)
	})
}

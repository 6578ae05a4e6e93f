package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestEnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates both collections", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())

		core, logs := observer.New(zap.InfoLevel)
		err := EnsureIndexes(context.Background(), mt.DB, zap.New(core))
		assert.NoError(t, err)
		assert.Equal(t, 2, logs.FilterMessage("mongo_index_ready").Len())
	})

	mt.Run("stops on first failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 86, Name: "IndexKeySpecsConflict", Message: "index already exists with different options",
		}))

		core, logs := observer.New(zap.InfoLevel)
		err := EnsureIndexes(context.Background(), mt.DB, zap.New(core))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "create indexes on autos_infracao")
		assert.Equal(t, 1, logs.FilterMessage("mongo_index_failed").Len())
		assert.Zero(t, logs.FilterMessage("mongo_index_ready").Len())
	})
}

func TestIndexPlan(t *testing.T) {
	var keys []bson.D
	for _, m := range indexPlan[0].Models {
		keys = append(keys, m.Keys.(bson.D))
	}
	assert.Contains(t, keys, bson.D{{Key: "meta.arquivo_origem", Value: 1}})
	assert.Equal(t, OffendersCollection, indexPlan[1].Collection)
}

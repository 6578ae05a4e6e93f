package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type collectionIndexes struct {
	Collection string
	Models     []mongo.IndexModel
}

var indexPlan = []collectionIndexes{
	{
		Collection: InfractionsCollection,
		Models: []mongo.IndexModel{
			{Keys: bson.D{{Key: "numero_auto_infracao", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "infrator_nome", Value: 1}}},
			{Keys: bson.D{{Key: "local_data", Value: -1}}},
			{Keys: bson.D{{Key: "situacao", Value: 1}}},
			{Keys: bson.D{{Key: "meta.arquivo_origem", Value: 1}}},
		},
	},
	{
		Collection: OffendersCollection,
		Models: []mongo.IndexModel{
			{Keys: bson.D{{Key: "nome", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "cnpj", Value: 1}}, Options: options.Index().SetSparse(true)},
			{Keys: bson.D{{Key: "cpf", Value: 1}}, Options: options.Index().SetSparse(true)},
		},
	},
}

// EnsureIndexes creates the indexes both collections are queried by.
// createIndexes is idempotent, so this runs on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	for _, ci := range indexPlan {
		names, err := db.Collection(ci.Collection).Indexes().CreateMany(ctx, ci.Models)
		if err != nil {
			log.Error("mongo_index_failed", zap.String("collection", ci.Collection), zap.Error(err))
			return fmt.Errorf("create indexes on %s: %w", ci.Collection, err)
		}
		log.Info("mongo_index_ready", zap.String("collection", ci.Collection), zap.Strings("indexes", names))
	}
	return nil
}

package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"multasapi/internal/model"
	"multasapi/internal/repository"
)

const (
	// InfractionsCollection holds the "autos de infração" written by the ingestion process.
	InfractionsCollection = "autos_infracao"
	// OffendersCollection holds the registered offenders.
	OffendersCollection = "infratores"
)

var newestFirst = bson.D{{Key: "local_data", Value: -1}}

// InfractionMongo is a MongoDB implementation of repository.InfractionRepository.
type InfractionMongo struct {
	coll *mongo.Collection
}

// NewInfractionMongo creates a repository over the infractions collection of db.
func NewInfractionMongo(db *mongo.Database) *InfractionMongo {
	return &InfractionMongo{coll: db.Collection(InfractionsCollection)}
}

var _ repository.InfractionRepository = (*InfractionMongo)(nil)

// List counts the matching records, then fetches the requested page.
func (r *InfractionMongo) List(ctx context.Context, f repository.InfractionFilter, pq repository.PageQuery) (*repository.PageResult[model.InfractionRecord], error) {
	filter := infractionFilter(f)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count infractions: %w", err)
	}

	opts := options.Find().
		SetSort(newestFirst).
		SetSkip(int64(pq.Offset)).
		SetLimit(int64(pq.Limit))

	items, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	return &repository.PageResult[model.InfractionRecord]{
		Items: items,
		Total: int(total),
	}, nil
}

// FindAll returns every matching record, newest occurrence first.
func (r *InfractionMongo) FindAll(ctx context.Context, f repository.InfractionFilter) ([]model.InfractionRecord, error) {
	return r.find(ctx, infractionFilter(f), options.Find().SetSort(newestFirst))
}

// FindByID fetches a single record by its hex ObjectID.
func (r *InfractionMongo) FindByID(ctx context.Context, id string) (*model.InfractionRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("parse id %q: %w", id, err)
	}

	var rec model.InfractionRecord
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find infraction: %w", err)
	}
	return &rec, nil
}

// DistinctOffenders groups records by offender name and tax ID.
func (r *InfractionMongo) DistinctOffenders(ctx context.Context) ([]model.OffenderSummary, error) {
	cur, err := r.coll.Aggregate(ctx, distinctOffendersPipeline())
	if err != nil {
		return nil, fmt.Errorf("aggregate offenders: %w", err)
	}
	out := make([]model.OffenderSummary, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode offenders: %w", err)
	}
	return out, nil
}

// GroupBySourceFile aggregates records by meta.arquivo_origem, falling back to "<numero>.pdf".
func (r *InfractionMongo) GroupBySourceFile(ctx context.Context, f repository.ProcessedFileFilter) ([]repository.SourceFileGroup, error) {
	cur, err := r.coll.Aggregate(ctx, sourceFilePipeline(f))
	if err != nil {
		return nil, fmt.Errorf("aggregate source files: %w", err)
	}
	out := make([]repository.SourceFileGroup, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode source files: %w", err)
	}
	return out, nil
}

// FindBySourceFile returns the records linked to filePath.
func (r *InfractionMongo) FindBySourceFile(ctx context.Context, filePath string) ([]model.InfractionRecord, error) {
	return r.find(ctx, sourceFileFilter(filePath), options.Find())
}

// DeleteBySourceFile removes the records linked to filePath.
func (r *InfractionMongo) DeleteBySourceFile(ctx context.Context, filePath string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, sourceFileFilter(filePath))
	if err != nil {
		return 0, fmt.Errorf("delete infractions: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *InfractionMongo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]model.InfractionRecord, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find infractions: %w", err)
	}
	items := make([]model.InfractionRecord, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode infractions: %w", err)
	}
	return items, nil
}

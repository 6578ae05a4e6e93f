package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"multasapi/internal/model"
	"multasapi/internal/repository"
)

// OffenderMongo is a MongoDB implementation of repository.OffenderRepository.
type OffenderMongo struct {
	coll *mongo.Collection
}

// NewOffenderMongo creates a repository over the offenders collection of db.
func NewOffenderMongo(db *mongo.Database) *OffenderMongo {
	return &OffenderMongo{coll: db.Collection(OffendersCollection)}
}

var _ repository.OffenderRepository = (*OffenderMongo)(nil)

// Create inserts a new offender and stamps its timestamps.
func (r *OffenderMongo) Create(ctx context.Context, o *model.Offender) (*model.Offender, error) {
	now := time.Now().UTC()
	out := *o
	out.ID = primitive.NilObjectID
	out.CreatedAt = now
	out.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, &out)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, fmt.Errorf("insert offender: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.ID = oid
	}
	return &out, nil
}

// FindByID fetches a single offender by its hex ObjectID.
func (r *OffenderMongo) FindByID(ctx context.Context, id string) (*model.Offender, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("parse id %q: %w", id, err)
	}

	var o model.Offender
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find offender: %w", err)
	}
	return &o, nil
}

// List returns offenders sorted by name, optionally filtered by name or tax ID.
func (r *OffenderMongo) List(ctx context.Context, search string, pq repository.PageQuery) (*repository.PageResult[model.Offender], error) {
	filter := offenderFilter(search)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count offenders: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "nome", Value: 1}}).
		SetSkip(int64(pq.Offset)).
		SetLimit(int64(pq.Limit))
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find offenders: %w", err)
	}
	items := make([]model.Offender, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode offenders: %w", err)
	}

	return &repository.PageResult[model.Offender]{Items: items, Total: int(total)}, nil
}

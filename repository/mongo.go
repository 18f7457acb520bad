package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wanderlust/models"
)

// MongoRepository stores records of one type in a MongoDB collection keyed by "_id".
type MongoRepository[T models.Record] struct {
	coll *mongo.Collection
}

func NewMongoRepository[T models.Record](coll *mongo.Collection) *MongoRepository[T] {
	return &MongoRepository[T]{coll: coll}
}

func (r *MongoRepository[T]) List(ctx context.Context) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", r.coll.Name(), err)
	}
	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.coll.Name(), err)
	}
	return out, nil
}

func (r *MongoRepository[T]) Get(ctx context.Context, id string) (T, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoRepository[T]) findOne(ctx context.Context, filter bson.M) (T, error) {
	var record T
	err := r.coll.FindOne(ctx, filter).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return record, ErrNotFound
	}
	if err != nil {
		return record, fmt.Errorf("find one %s: %w", r.coll.Name(), err)
	}
	return record, nil
}

func (r *MongoRepository[T]) Create(ctx context.Context, record T) error {
	_, err := r.coll.InsertOne(ctx, record)
	if mongo.IsDuplicateKeyError(err) {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("insert %s: %w", r.coll.Name(), err)
	}
	return nil
}

func (r *MongoRepository[T]) Update(ctx context.Context, record T) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": record.GetID()}, record)
	if mongo.IsDuplicateKeyError(err) {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("replace %s: %w", r.coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository[T]) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoUserRepository relies on a unique index on "username".
type MongoUserRepository struct {
	*MongoRepository[models.User]
}

func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// ensureIndexes creates the unique username index.
func (r *MongoUserRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("username_unique"),
	})
	return err
}

// MongoDestinationRepository appends reviews with a single-document update so concurrent appends are all kept.
type MongoDestinationRepository struct {
	*MongoRepository[models.Destination]
}

// AppendReview appends the review, then stores the rating computed from the pushed document.
// The rating write only matches while the review count is unchanged, so the writer of the
// latest review always sets the final rating.
func (r *MongoDestinationRepository) AppendReview(ctx context.Context, id string, review models.Review, at time.Time) (models.Destination, error) {
	var d models.Destination
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	// a destination stored without reviews holds null, which $push rejects
	push := mongo.Pipeline{{{Key: "$set", Value: bson.M{
		"reviews": bson.M{"$concatArrays": bson.A{
			bson.M{"$ifNull": bson.A{"$reviews", bson.A{}}},
			bson.M{"$literal": bson.A{review}},
		}},
		"updatedAt": at,
	}}}}
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, push, opts).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return d, ErrNotFound
	}
	if err != nil {
		return d, fmt.Errorf("push review %s: %w", id, err)
	}

	d.Rating = d.AverageRating()
	_, err = r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "reviews": bson.M{"$size": len(d.Reviews)}},
		bson.M{"$set": bson.M{"rating": d.Rating}})
	if err != nil {
		return d, fmt.Errorf("update rating %s: %w", id, err)
	}
	return d, nil
}

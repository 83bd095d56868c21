package mongostore

import (
	"context"
	"errors"

	"github.com/audiozoom/backend/internal/domain/shared"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// document is a stored aggregate that converts back to its domain type
type document[T any] interface {
	toDomain() T
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc any) error {
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// replaceByID overwrites an existing document; a missing document is ErrNotFound
func replaceByID(ctx context.Context, coll *mongo.Collection, id any, doc any) error {
	result, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id any) error {
	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// findOne decodes the first match into D and maps no-documents to notFound
func findOne[T any, D document[T]](ctx context.Context, coll *mongo.Collection, filter any, notFound error, opts ...*options.FindOneOptions) (T, error) {
	var doc D
	if err := coll.FindOne(ctx, filter, opts...).Decode(&doc); err != nil {
		var zero T
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, notFound
		}
		return zero, err
	}
	return doc.toDomain(), nil
}

func findMany[T any, D document[T]](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var docs []D
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	result := make([]T, len(docs))
	for i, doc := range docs {
		result[i] = doc.toDomain()
	}
	return result, nil
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}

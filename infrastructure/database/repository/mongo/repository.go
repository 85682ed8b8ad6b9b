package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"facegate.io/infrastructure/logger"
)

var ErrCollectionUnavailable = errors.New("mongo collection is not connected")

func (repo *MongoRepository[T]) ready() error {
	if repo == nil || repo.Model == nil {
		return ErrCollectionUnavailable
	}
	return nil
}

func (repo *MongoRepository[T]) CreateOne(ctx context.Context, payload T) (*T, error) {
	if err := repo.ready(); err != nil {
		return nil, err
	}
	parsed := payload.ParseModel().(*T)
	if _, err := repo.Model.InsertOne(ctx, parsed); err != nil {
		logger.Error("mongo error occured while running CreateOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return parsed, nil
}

// FindByID returns nil, nil when no document matches.
func (repo *MongoRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	if err := repo.ready(); err != nil {
		return nil, err
	}
	var result T
	err := repo.Model.FindOne(ctx, bson.M{"_id": id}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.Error("mongo error occured while running FindByID", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "id",
			Data: id,
		})
		return nil, err
	}
	return &result, nil
}

func (repo *MongoRepository[T]) FindMany(ctx context.Context, filter map[string]interface{}, opts *FindOptions) (*[]T, error) {
	if err := repo.ready(); err != nil {
		return nil, err
	}
	findOpts := options.Find()
	if opts != nil {
		if opts.Sort != nil {
			findOpts.SetSort(opts.Sort)
		}
		if opts.Skip != nil {
			findOpts.SetSkip(*opts.Skip)
		}
		if opts.Limit != nil {
			findOpts.SetLimit(*opts.Limit)
		}
	}
	cursor, err := repo.Model.Find(ctx, filter, findOpts)
	if err != nil {
		logger.Error("mongo error occured while running FindMany", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return &results, nil
}

// UpdatePartialByID applies a $set of payload and bumps updatedAt.
func (repo *MongoRepository[T]) UpdatePartialByID(ctx context.Context, id string, payload map[string]interface{}) (int64, error) {
	if err := repo.ready(); err != nil {
		return 0, err
	}
	set := bson.M{"updatedAt": time.Now()}
	for key, value := range payload {
		set[key] = value
	}
	result, err := repo.Model.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		logger.Error("mongo error occured while running UpdatePartialByID", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "id",
			Data: id,
		})
		return 0, err
	}
	return result.ModifiedCount, nil
}

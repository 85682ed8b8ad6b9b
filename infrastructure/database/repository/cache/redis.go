package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	redisClient "facegate.io/infrastructure/database/connection/cache"
	"facegate.io/infrastructure/logger"
)

var ErrCacheUnavailable = errors.New("redis is not connected")

type RedisRepository struct {
	Client *redis.Client
}

var Cache = &RedisRepository{}

// preRequest resolves the client for one call. An unset Client falls back to
// the shared connection and is never written here, so concurrent callers only read.
func (redisRepo *RedisRepository) preRequest() (*redis.Client, error) {
	client := redisRepo.Client
	if client == nil {
		client = redisClient.Client
	}
	if client == nil {
		return nil, ErrCacheUnavailable
	}
	return client, nil
}

func (redisRepo *RedisRepository) CreateEntry(ctx context.Context, key string, payload interface{}, ttl time.Duration) error {
	client, err := redisRepo.preRequest()
	if err != nil {
		return err
	}
	if err := client.Set(ctx, key, payload, ttl).Err(); err != nil {
		logger.Error("redis error occured while running CreateEntry", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return err
	}
	return nil
}

// FindOne returns nil, nil when the key does not exist.
func (redisRepo *RedisRepository) FindOne(ctx context.Context, key string) (*string, error) {
	client, err := redisRepo.preRequest()
	if err != nil {
		return nil, err
	}
	result, err := client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		logger.Error("redis error occured while running FindOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return nil, err
	}
	return &result, nil
}

func (redisRepo *RedisRepository) DeleteOne(ctx context.Context, key string) (bool, error) {
	client, err := redisRepo.preRequest()
	if err != nil {
		return false, err
	}
	result, err := client.Del(ctx, key).Result()
	if err != nil {
		logger.Error("redis error occured while running DeleteOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return false, err
	}
	return result == 1, nil
}

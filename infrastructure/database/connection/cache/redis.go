package cache

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"facegate.io/infrastructure/logger"
)

var ErrCacheNotConfigured = errors.New("REDIS_ADDR is not set")

var Client *redis.Client

func RedisOptions() (*redis.Options, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil, ErrCacheNotConfigured
	}
	return &redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
		PoolSize: 10,
	}, nil
}

// ConnectToCache dials REDIS_ADDR and pings it once.
func ConnectToCache() error {
	opt, err := RedisOptions()
	if err != nil {
		return err
	}
	c := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		return err
	}
	Client = c
	logger.Info("connected to redis successfully")
	return nil
}

func CleanUp() {
	if Client == nil {
		return
	}
	Client.Close()
	Client = nil
}

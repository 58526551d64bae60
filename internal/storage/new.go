package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type implFS struct {
	root string
}

// NewFS creates an ObjectStore that maps keys to files under root.
func NewFS(root string) ObjectStore {
	return &implFS{root: root}
}

// RedisConfig configures the Redis-backed ObjectStore.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

type implRedis struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(ctx context.Context, cfg RedisConfig) (ObjectStore, func() error, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &implRedis{client: client, keyPrefix: cfg.KeyPrefix}, client.Close, nil
}

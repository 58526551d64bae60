package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

func (s *implRedis) Put(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, s.keyPrefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("error writing %s: %w", key, err)
	}
	return nil
}

func (s *implRedis) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", key, err)
	}
	return data, nil
}

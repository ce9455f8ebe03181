package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces slot keys inside a shared Redis instance.
const keyPrefix = "serverlist:"

// RedisSlots keeps slots in Redis. Useful when the directory runs in a
// container without a persistent volume; the store treats failures as
// best-effort either way.
type RedisSlots struct {
	client *redis.Client
}

// NewRedisSlots wraps an already-connected client.
func NewRedisSlots(client *redis.Client) *RedisSlots {
	return &RedisSlots{client: client}
}

// Read returns the slot contents, or ErrNotFound for a missing key.
func (s *RedisSlots) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return data, nil
}

// Write overwrites the slot wholesale. Slots never expire.
func (s *RedisSlots) Write(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, keyPrefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists state documents in Redis, namespaced per device
// so several companion instances can share one server.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ StateStore = &RedisStore{}

// NewRedisStore wraps an existing client. deviceID becomes part of the
// key namespace (companion:<deviceID>:<record>).
func NewRedisStore(client *redis.Client, deviceID string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "companion:" + deviceID + ":",
	}
}

func (s *RedisStore) Save(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

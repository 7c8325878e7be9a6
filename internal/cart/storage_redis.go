package cart

import (
	"context"
	"errors"
	"time"

	"github.com/sincrochat/catalog-backend/pkg/redis"
)

// RedisStorage partitions cart keys per client scope inside the shared Redis
// namespace. A TTL bounds how long abandoned carts linger.
type RedisStorage struct {
	client *redis.Client
	scope  string
	ttl    time.Duration
}

func NewRedisStorage(client *redis.Client, scope string, ttl time.Duration) *RedisStorage {
	return &RedisStorage{client: client, scope: scope, ttl: ttl}
}

func (s *RedisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.client.CartKey(s.scope, key))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (s *RedisStorage) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.client.CartKey(s.scope, key), value, s.ttl)
}

func (s *RedisStorage) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.client.CartKey(s.scope, key))
}

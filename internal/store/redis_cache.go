package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/uni-3/my-url-shortener/internal/shortener"
)

// RedisCache is a Redis implementation of shortener.Cache. It holds a
// derived, expendable copy of code->URL; the registry stays the source of
// truth, so entries may be evicted or lost at any time.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache creates a new Redis-backed resolution cache.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: "url:",
	}
}

func (r *RedisCache) Get(ctx context.Context, code string) (string, error) {
	url, err := r.client.Get(ctx, r.prefix+code).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", shortener.ErrNotFound
		}

		return "", err
	}

	return url, nil
}

func (r *RedisCache) Put(ctx context.Context, code, url string, ttl time.Duration) error {
	return r.client.Set(ctx, r.prefix+code, url, ttl).Err()
}

// Compile-time check.
var _ shortener.Cache = (*RedisCache)(nil)

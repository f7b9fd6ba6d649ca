//go:build integration

package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uni-3/my-url-shortener/internal/shortener"
	"github.com/uni-3/my-url-shortener/internal/store"
)

func getRedisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

func TestRedisCacheIntegration(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr: getRedisAddr(),
	})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	cache := store.NewRedisCache(client)

	t.Run("put and get with the fixed ttl", func(t *testing.T) {
		code := "itestcode1"
		defer client.Del(ctx, "url:"+code)

		err := cache.Put(ctx, code, "https://example.com/", shortener.CacheTTL)
		require.NoError(t, err)

		url, err := cache.Get(ctx, code)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/", url)

		ttl, err := client.TTL(ctx, "url:"+code).Result()
		require.NoError(t, err)
		assert.InDelta(t, (24 * time.Hour).Seconds(), ttl.Seconds(), 5)
	})

	t.Run("put refreshes the ttl", func(t *testing.T) {
		code := "itestcode2"
		defer client.Del(ctx, "url:"+code)

		require.NoError(t, cache.Put(ctx, code, "https://example.com/", time.Minute))
		require.NoError(t, cache.Put(ctx, code, "https://example.com/", shortener.CacheTTL))

		ttl, err := client.TTL(ctx, "url:"+code).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Minute)
	})

	t.Run("get non-existent returns ErrNotFound", func(t *testing.T) {
		url, err := cache.Get(ctx, "itest-nonexistent")

		assert.Empty(t, url)
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})
}

func TestRateLimitRedisStoreIntegration(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr: getRedisAddr(),
	})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	s := store.NewRateLimitRedisStore(client)

	t.Run("counts requests within the window", func(t *testing.T) {
		key := "itest-rl-count"
		defer client.Del(ctx, "ratelimit:"+key)

		for want := int64(1); want <= 3; want++ {
			count, err := s.Record(ctx, key, time.Minute)
			require.NoError(t, err)
			assert.Equal(t, want, count)
		}
	})

	t.Run("prunes entries outside the window", func(t *testing.T) {
		key := "itest-rl-prune"
		defer client.Del(ctx, "ratelimit:"+key)

		_, err := s.Record(ctx, key, 50*time.Millisecond)
		require.NoError(t, err)

		time.Sleep(100 * time.Millisecond)

		count, err := s.Record(ctx, key, 50*time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Store defines the interface for rate limit data storage.
type Store interface {
	// Record records a request and returns the count of requests in the
	// current window. It prunes expired entries.
	Record(ctx context.Context, key string, window time.Duration) (count int64, err error)
}

// LimitConfig is a single windowed limit.
type LimitConfig struct {
	Window time.Duration
	Max    int64
}

// Limiter enforces a set of windowed limits per client key using a sliding
// window over the Store.
type Limiter struct {
	store Store
}

// NewLimiter creates a new sliding window rate limiter.
func NewLimiter(store Store) *Limiter {
	return &Limiter{store: store}
}

// Allow checks every limit for the client key. It returns false and the
// exceeded limit as soon as one is hit.
func (l *Limiter) Allow(ctx context.Context, clientKey string, limits []LimitConfig) (bool, *LimitConfig, error) {
	for _, limit := range limits {
		// Key combines client + window for independent tracking
		key := fmt.Sprintf("%s:%d", clientKey, limit.Window.Milliseconds())

		count, err := l.store.Record(ctx, key, limit.Window)
		if err != nil {
			return false, nil, err
		}

		if count > limit.Max {
			return false, &limit, nil
		}
	}

	return true, nil, nil
}

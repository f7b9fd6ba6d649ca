package shortener

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Resolver resolves short codes to their target URLs, reading through the
// cache into the registry.
type Resolver struct {
	registry Registry
	cache    Cache
	logger   *zap.Logger
}

// NewResolver creates a redirect resolver.
func NewResolver(registry Registry, cache Cache, logger *zap.Logger) *Resolver {
	return &Resolver{
		registry: registry,
		cache:    cache,
		logger:   logger,
	}
}

// Resolve returns the target URL for a short code. A cache hit never touches
// the registry. On a miss the registry is authoritative: a hit populates the
// cache before returning, a miss returns ErrNotFound (and is never cached).
// Cache failures are logged and treated as misses.
func (r *Resolver) Resolve(ctx context.Context, code string) (string, error) {
	target, err := r.cache.Get(ctx, code)
	if err == nil {
		return target, nil
	}

	if !errors.Is(err, ErrNotFound) {
		r.logger.Warn("cache get failed",
			zap.String("code", code),
			zap.Error(err),
		)
	}

	mapping, err := r.registry.FindByShortCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}

		return "", fmt.Errorf("find by short code: %w", err)
	}

	if err := r.cache.Put(ctx, mapping.ShortCode, mapping.CanonicalURL, CacheTTL); err != nil {
		r.logger.Warn("cache put failed",
			zap.String("code", mapping.ShortCode),
			zap.Error(err),
		)
	}

	return mapping.CanonicalURL, nil
}

package shortener

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Result is the outcome of a shorten request.
type Result struct {
	Mapping *Mapping
	// Created is false when the URL had already been shortened and the
	// existing mapping was returned.
	Created bool
}

// Shortener orchestrates the shorten flow: validate, canonicalize, dedup,
// safety-check, persist, populate cache.
type Shortener struct {
	registry Registry
	cache    Cache
	gate     Gate
	logger   *zap.Logger
}

// NewShortener creates a shorten orchestrator.
func NewShortener(registry Registry, cache Cache, gate Gate, logger *zap.Logger) *Shortener {
	return &Shortener{
		registry: registry,
		cache:    cache,
		gate:     gate,
		logger:   logger,
	}
}

// Shorten maps rawURL to a short code, creating a mapping when none exists.
//
// Dedup hits skip the safety gate: the URL was vetted when first persisted,
// and mappings are immutable. The gate is consulted only before creating a
// new row; an unsafe verdict aborts with UnsafeURLError and no row is
// written. Cache writes are best-effort and never change the outcome.
func (s *Shortener) Shorten(ctx context.Context, rawURL string) (*Result, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	canonicalURL := Canonicalize(rawURL)

	existing, err := s.registry.FindByCanonicalURL(ctx, canonicalURL)
	switch {
	case err == nil:
		s.cachePut(ctx, existing)

		return &Result{Mapping: existing, Created: false}, nil
	case !errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("dedup lookup: %w", err)
	}

	if verdict := s.gate.CheckURL(ctx, canonicalURL); !verdict.Safe {
		return nil, &UnsafeURLError{ThreatType: verdict.ThreatType}
	}

	mapping, created, err := s.registry.CreateMapping(ctx, canonicalURL)
	if err != nil {
		return nil, fmt.Errorf("create mapping: %w", err)
	}

	s.cachePut(ctx, mapping)

	return &Result{Mapping: mapping, Created: created}, nil
}

func (s *Shortener) cachePut(ctx context.Context, m *Mapping) {
	if err := s.cache.Put(ctx, m.ShortCode, m.CanonicalURL, CacheTTL); err != nil {
		s.logger.Warn("cache put failed",
			zap.String("code", m.ShortCode),
			zap.Error(err),
		)
	}
}

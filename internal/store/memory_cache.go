package store

import (
	"context"
	"sync"
	"time"

	"github.com/uni-3/my-url-shortener/internal/shortener"
)

type memoryCacheEntry struct {
	url       string
	ttl       time.Duration
	expiresAt time.Time
}

// MemoryCache is an in-memory implementation of shortener.Cache with lazy
// expiry, used in tests and single-process setups.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryCacheEntry
}

// NewMemoryCache creates a new in-memory resolution cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryCacheEntry),
	}
}

func (m *MemoryCache) Get(_ context.Context, code string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[code]
	if !ok || time.Now().After(entry.expiresAt) {
		return "", shortener.ErrNotFound
	}

	return entry.url, nil
}

func (m *MemoryCache) Put(_ context.Context, code, url string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[code] = memoryCacheEntry{
		url:       url,
		ttl:       ttl,
		expiresAt: time.Now().Add(ttl),
	}

	return nil
}

// TTL reports the TTL an entry was written with, for tests.
func (m *MemoryCache) TTL(code string) (time.Duration, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[code]
	if !ok {
		return 0, false
	}

	return entry.ttl, true
}

// Compile-time check.
var _ shortener.Cache = (*MemoryCache)(nil)

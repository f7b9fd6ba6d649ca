package store

import (
	"context"
	"sync"
	"time"

	"github.com/uni-3/my-url-shortener/internal/shortener"
)

// MemoryRegistry is an in-memory implementation of shortener.Registry. It
// models the durable store's auto-incrementing ids and the unique constraint
// on canonical_url, including the lost-insert-race behavior.
type MemoryRegistry struct {
	mu     sync.RWMutex
	nextID int64
	byURL  map[string]*shortener.Mapping
	byCode map[string]*shortener.Mapping
	codec  *shortener.Codec
}

// NewMemoryRegistry creates a new in-memory registry.
func NewMemoryRegistry(codec *shortener.Codec) *MemoryRegistry {
	return &MemoryRegistry{
		byURL:  make(map[string]*shortener.Mapping),
		byCode: make(map[string]*shortener.Mapping),
		codec:  codec,
	}
}

func (m *MemoryRegistry) FindByCanonicalURL(_ context.Context, canonicalURL string) (*shortener.Mapping, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	mapping, ok := m.byURL[canonicalURL]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	return mapping, nil
}

func (m *MemoryRegistry) FindByShortCode(_ context.Context, code string) (*shortener.Mapping, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	mapping, ok := m.byCode[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	return mapping, nil
}

func (m *MemoryRegistry) CreateMapping(_ context.Context, canonicalURL string) (*shortener.Mapping, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Unique constraint: a concurrent create for the same URL returns the
	// winner's row.
	if existing, ok := m.byURL[canonicalURL]; ok {
		return existing, false, nil
	}

	m.nextID++

	code, err := m.codec.Encode(m.nextID)
	if err != nil {
		return nil, false, err
	}

	mapping := &shortener.Mapping{
		ID:           m.nextID,
		CanonicalURL: canonicalURL,
		ShortCode:    code,
		CreatedAt:    time.Now(),
	}

	m.byURL[canonicalURL] = mapping
	m.byCode[code] = mapping

	return mapping, true, nil
}

// Len reports the number of stored mappings.
func (m *MemoryRegistry) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.byURL)
}

// Compile-time check.
var _ shortener.Registry = (*MemoryRegistry)(nil)

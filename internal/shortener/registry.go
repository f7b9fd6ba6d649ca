package shortener

import (
	"context"
	"time"
)

// CacheTTL bounds every resolution cache entry. It is applied on every write
// (including miss-then-populate) and never refreshed by read hits.
const CacheTTL = 24 * time.Hour

// Registry is the durable store of URL mappings. It owns all write access;
// short codes are derived from the store-assigned id.
type Registry interface {
	// FindByCanonicalURL looks up the mapping for a canonical URL.
	// Returns ErrNotFound when no mapping exists.
	FindByCanonicalURL(ctx context.Context, canonicalURL string) (*Mapping, error)

	// FindByShortCode looks up the mapping for a short code.
	// Returns ErrNotFound when no mapping exists.
	FindByShortCode(ctx context.Context, code string) (*Mapping, error)

	// CreateMapping inserts a mapping for canonicalURL and returns it with
	// its final short code. When a concurrent request won the insert race,
	// the existing mapping is returned with created=false.
	CreateMapping(ctx context.Context, canonicalURL string) (m *Mapping, created bool, err error)
}

// Cache is the best-effort code->URL cache in front of the Registry. Absence
// means "unknown, consult the registry", never "does not exist". Callers
// treat every failure as non-fatal.
type Cache interface {
	Get(ctx context.Context, code string) (string, error)
	Put(ctx context.Context, code, url string, ttl time.Duration) error
}

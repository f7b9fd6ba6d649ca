package shortener

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no mapping exists for a lookup key.
var ErrNotFound = errors.New("mapping not found")

// ErrInvalidURL is returned when the submitted URL is not a well-formed
// absolute http or https URL.
var ErrInvalidURL = errors.New("invalid url")

// UnsafeURLError is returned when the safety gate flags a URL.
type UnsafeURLError struct {
	ThreatType string
}

func (e *UnsafeURLError) Error() string {
	return "url flagged as " + e.ThreatType
}

// Mapping is the persistent canonical-URL <-> short-code entity. A mapping is
// immutable once created; the registry never updates or deletes rows.
type Mapping struct {
	ID           int64
	CanonicalURL string
	ShortCode    string
	CreatedAt    time.Time
}

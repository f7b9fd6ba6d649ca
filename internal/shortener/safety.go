package shortener

import "context"

// Verdict is the safety gate's answer for a URL.
type Verdict struct {
	Safe       bool
	ThreatType string
}

// Gate vets URLs before they are persisted. Implementations are fail-open:
// when the check itself cannot complete (unreachable, timeout, bad response),
// they log the failure and return a safe verdict rather than an error.
type Gate interface {
	CheckURL(ctx context.Context, url string) Verdict
}

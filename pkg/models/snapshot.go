package models

import "time"

// ProviderSnapshot is the most recent cached fetch result for a named
// provider. The fetch subsystem writes these; the renderer only reads them.
type ProviderSnapshot struct {
	Provider   string         `json:"provider"`
	FetchedAt  time.Time      `json:"fetched_at"`
	TTLSeconds int            `json:"ttl_seconds"`
	Payload    map[string]any `json:"payload"`
	Error      string         `json:"error,omitempty"`
}

// Age returns how old the snapshot is relative to now.
func (s ProviderSnapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

// Expired reports whether the snapshot has outlived its TTL. TTL is
// advisory: nothing in the render path consults this, it exists for
// callers (API, fetch scheduler) that want to report freshness.
func (s ProviderSnapshot) Expired(now time.Time) bool {
	if s.TTLSeconds <= 0 {
		return false
	}
	return s.Age(now) > time.Duration(s.TTLSeconds)*time.Second
}

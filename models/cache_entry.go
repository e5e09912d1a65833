package models

import (
	"encoding/json"
	"time"
)

// CacheEntry is a cached read result. Entries are not part of the
// durability contract: losing every row is safe, the next read simply goes
// to the network again.
//
// StoredAt and ExpiresAt are Unix milliseconds, like QueuedAction.Timestamp,
// so the by-expires index can compare them as plain integers.
type CacheEntry struct {
	// ID is method+url, the cache key.
	ID string `json:"id"`

	URL    string `json:"url"`
	Method string `json:"method"`

	// Payload is the cached response body.
	Payload json.RawMessage `json:"payload"`

	StoredAt int64 `json:"storedAt"`

	// ExpiresAt is the moment the entry becomes stale. A stale entry is
	// treated as absent and is lazily evicted on read.
	ExpiresAt int64 `json:"expiresAt"`
}

// Expired reports whether the entry is stale at the given instant.
func (e CacheEntry) Expired(now time.Time) bool {
	return now.UnixMilli() > e.ExpiresAt
}

// CacheKey builds the canonical cache entry id for a method/url pair.
func CacheKey(method, url string) string {
	return method + url
}

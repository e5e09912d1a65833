// Package cache implements the TTL response cache layered on the local
// store's cachedResponses collection. The cache is not part of the
// durability contract: losing every entry is safe.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wanderline/synckit/internal/logger"
	"github.com/wanderline/synckit/internal/store"
	"github.com/wanderline/synckit/models"
)

// ResponseCache stores prior read results keyed by method+url with a
// time-to-live. Expired entries are treated as absent and evicted lazily on
// read; EvictExpired sweeps them in bulk but is never required for the
// correctness of Get.
type ResponseCache interface {
	Put(ctx context.Context, url, method string, payload json.RawMessage, ttl time.Duration) error

	// Get returns the cached payload and true while the entry is fresh.
	// Stale or missing entries, and storage failures, all report a miss:
	// the caller's fallback is the network either way.
	Get(ctx context.Context, url, method string) (json.RawMessage, bool)

	// EvictExpired deletes every entry past its expiry and reports how
	// many were removed. Intended for periodic maintenance.
	EvictExpired(ctx context.Context) (int64, error)

	// SizeEstimate reports entry count and a coarse byte estimate, for
	// diagnostics only.
	SizeEstimate(ctx context.Context) (store.CollectionStats, error)
}

type responseCache struct {
	store      store.LocalStore
	logger     *logger.Logger
	defaultTTL time.Duration

	now func() time.Time
}

// NewResponseCache builds a ResponseCache. defaultTTL is applied when Put is
// called with a non-positive ttl.
func NewResponseCache(st store.LocalStore, log *logger.Logger, defaultTTL time.Duration) ResponseCache {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	return &responseCache{
		store:      st,
		logger:     log,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

func (c *responseCache) Put(ctx context.Context, url, method string, payload json.RawMessage, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	now := c.now()
	entry := models.CacheEntry{
		ID:        models.CacheKey(method, url),
		URL:       url,
		Method:    method,
		Payload:   payload,
		StoredAt:  now.UnixMilli(),
		ExpiresAt: now.Add(ttl).UnixMilli(),
	}

	encoded, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err = c.store.Put(ctx, store.CollectionCachedResponses, entry.ID, encoded); err != nil {
		return fmt.Errorf("cache response %s %s: %w", method, url, err)
	}

	return nil
}

func (c *responseCache) Get(ctx context.Context, url, method string) (json.RawMessage, bool) {
	key := models.CacheKey(method, url)

	rec, err := c.store.Get(ctx, store.CollectionCachedResponses, key)
	if err != nil {
		// Misses and storage failures look the same to the caller; the
		// distinction only matters in the logs.
		return nil, false
	}

	var entry models.CacheEntry
	if err = json.Unmarshal(rec.Payload, &entry); err != nil {
		c.logger.Err(err).Str("key", key).Msg("dropping undecodable cache entry")
		_ = c.store.Delete(ctx, store.CollectionCachedResponses, key)
		return nil, false
	}

	if entry.Expired(c.now()) {
		if err = c.store.Delete(ctx, store.CollectionCachedResponses, key); err != nil {
			c.logger.Err(err).Str("key", key).Msg("failed to evict stale cache entry")
		}
		return nil, false
	}

	return entry.Payload, true
}

func (c *responseCache) EvictExpired(ctx context.Context) (int64, error) {
	n, err := c.store.DeleteBelow(ctx, store.CollectionCachedResponses, store.IndexByExpires, c.now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("evict expired cache entries: %w", err)
	}

	if n > 0 {
		c.logger.Debug().Int64("evicted", n).Msg("expired cache entries swept")
	}

	return n, nil
}

func (c *responseCache) SizeEstimate(ctx context.Context) (store.CollectionStats, error) {
	stats, err := c.store.Stats(ctx, store.CollectionCachedResponses)
	if err != nil {
		return store.CollectionStats{}, fmt.Errorf("cache size estimate: %w", err)
	}
	return stats, nil
}

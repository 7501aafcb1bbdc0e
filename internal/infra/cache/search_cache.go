// Package cache memoizes paid search-provider responses.
package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/hashtagwebpage/prospector/internal/entity"
)

// TTL bounds how long a captured search result is served. Expired entries
// are refreshed and overwritten, never merged.
const TTL = 7 * 24 * time.Hour

type cacheEntry struct {
	results    []entity.Lead
	capturedAt time.Time
}

// SearchCache maps a normalized (category, city) key to captured results.
// Growth is unbounded by design; only TTL-on-read eviction.
type SearchCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func NewSearchCache() *SearchCache {
	return &SearchCache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Key normalizes a query into its cache key.
func Key(category, city string) string {
	return strings.ToLower(strings.TrimSpace(category)) + "::" + strings.ToLower(strings.TrimSpace(city))
}

// Get returns the cached results while they are fresh. A miss is distinct
// from a cached empty result.
func (c *SearchCache) Get(key string) ([]entity.Lead, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.capturedAt) >= TTL {
		return nil, false
	}
	out := make([]entity.Lead, len(e.results))
	copy(out, e.results)
	return out, true
}

// Put overwrites the entry for key with a fresh capture.
func (c *SearchCache) Put(key string, results []entity.Lead) {
	stored := make([]entity.Lead, len(results))
	copy(stored, results)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{results: stored, capturedAt: c.now()}
}

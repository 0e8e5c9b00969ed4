package cache

import (
	"sync"
	"time"

	"sarychdb/domain/record"
)

// SearchKey identifies a cached search result: the database path, the
// query text, and the match mode (spec §4.6).
type SearchKey struct {
	Path  string
	Query string
	Mode  string
}

// SearchCache maps SearchKey to a matched-record snapshot, bounded at
// maxSize entries with ttl-then-oldest-inserted eviction.
type SearchCache struct {
	mu      sync.Mutex
	entries map[SearchKey]searchCacheEntry
	ttl     time.Duration
	maxSize int
}

type searchCacheEntry struct {
	records    []record.Record
	expiresAt  time.Time
	insertedAt time.Time
}

// NewSearchCache creates a Search Cache with the given ttl and maximum
// entry count.
func NewSearchCache(ttl time.Duration, maxSize int) *SearchCache {
	return &SearchCache{
		entries: make(map[SearchKey]searchCacheEntry),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get returns the cached records for key if present and unexpired.
func (c *SearchCache) Get(key SearchKey) ([]record.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.records, true
}

// Put stores records for key, evicting expired and then oldest entries
// until the cache size is within maxSize (spec §4.6).
func (c *SearchCache) Put(key SearchKey, records []record.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	c.entries[key] = searchCacheEntry{
		records:    records,
		expiresAt:  now.Add(c.ttl),
		insertedAt: now,
	}

	if len(c.entries) <= c.maxSize {
		return
	}

	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}

	for len(c.entries) > c.maxSize {
		var oldestKey SearchKey
		var oldestTime time.Time
		first := true
		for k, e := range c.entries {
			if first || e.insertedAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertedAt
				first = false
			}
		}
		delete(c.entries, oldestKey)
	}
}

// Invalidate removes every entry whose key's Path equals path.
func (c *SearchCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.Path == path {
			delete(c.entries, k)
		}
	}
}

// Clear drops every entry.
func (c *SearchCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[SearchKey]searchCacheEntry)
}

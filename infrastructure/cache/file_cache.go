// Package cache implements the two process-wide caches the spec
// defines: the File Cache (C3, whole parsed database keyed by path)
// and the Search Cache (C7, matched-record-set keyed by path+query+mode).
// Both follow the teacher's in-memory cache shape: a mutex (sync.RWMutex
// for the File Cache, sync.Mutex for the Search Cache) guarding a map of
// entries carrying their own expiry, with stored
// values treated as immutable snapshots so a lookup can be used after
// the lock is released.
package cache

import (
	"sync"
	"time"

	"sarychdb/domain/record"
)

// FileCache maps an absolute database path to its parsed Records.
// Default ttl is 300s (spec §4.2).
type FileCache struct {
	mu      sync.RWMutex
	entries map[string]fileCacheEntry
	ttl     time.Duration
}

type fileCacheEntry struct {
	records   []record.Record
	sizeBytes int64
	loadedAt  time.Time
}

// NewFileCache creates a File Cache with the given ttl.
func NewFileCache(ttl time.Duration) *FileCache {
	return &FileCache{
		entries: make(map[string]fileCacheEntry),
		ttl:     ttl,
	}
}

// Get returns a snapshot of the cached records for path, its recorded
// size in bytes, and whether the entry was present and unexpired. The
// returned slice is a clone of the cache's backing records — callers
// that mutate elements in place never alias the live cache entry.
func (c *FileCache) Get(path string) ([]record.Record, int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[path]
	if !ok || time.Since(entry.loadedAt) > c.ttl {
		return nil, 0, false
	}
	return record.CloneAll(entry.records), entry.sizeBytes, true
}

// Put stores records and their size in bytes for path, replacing any
// existing entry.
func (c *FileCache) Put(path string, records []record.Record, sizeBytes int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = fileCacheEntry{records: records, sizeBytes: sizeBytes, loadedAt: time.Now()}
}

// Invalidate removes the entry for path, if present.
func (c *FileCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// Clear drops every entry.
func (c *FileCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]fileCacheEntry)
}

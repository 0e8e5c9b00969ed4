// Package crud implements the CRUD Engine (C8): insert, get,
// update-by-query, update-by-id, delete-by-query, and stats, composed
// from the File Cache, Search Cache, Database File Store, and Search
// Executor, with per-path write locks serializing mutations.
package crud

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"sarychdb/domain/record"
	"sarychdb/domain/search"
	"sarychdb/infrastructure/cache"
	"sarychdb/infrastructure/storage"
	apperrors "sarychdb/pkg/errors"
)

// approximateSize returns the JSON-serialized byte size of records,
// used to refresh the File Cache's size hint after a write without a
// second disk read.
func approximateSize(records []record.Record) int64 {
	data, err := json.Marshal(records)
	if err != nil {
		return 0
	}
	return int64(len(data))
}

// Engine is the CRUD Engine. One Engine is shared by every request;
// it owns the path-lock registry plus the two process-wide caches.
type Engine struct {
	store       *storage.Store
	fileCache   *cache.FileCache
	searchCache *cache.SearchCache
	logger      *zap.Logger

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	searchThreshold int
}

// NewEngine creates a CRUD Engine over the given store and caches,
// using the Search Executor's default adaptive-parallelism threshold
// (spec §4.5). Use WithSearchThreshold to override it.
func NewEngine(store *storage.Store, fileCache *cache.FileCache, searchCache *cache.SearchCache, logger *zap.Logger) *Engine {
	return &Engine{
		store:           store,
		fileCache:       fileCache,
		searchCache:     searchCache,
		logger:          logger,
		locks:           make(map[string]*sync.Mutex),
		searchThreshold: search.ParallelThreshold,
	}
}

// WithSearchThreshold overrides the record-count threshold at or above
// which Get shards and searches in parallel (spec §9 "Adaptive parallelism"
// — a deployment-tunable heuristic, not a fixed requirement).
func (e *Engine) WithSearchThreshold(threshold int) *Engine {
	if threshold > 0 {
		e.searchThreshold = threshold
	}
	return e
}

// pathLock returns the exclusive write lock for path, creating it on
// first use. Locks live for the process lifetime (spec §5); with at
// most one path touched per operation, no lock ordering issue arises.
func (e *Engine) pathLock(path string) *sync.Mutex {
	e.locksMu.Lock()
	defer e.locksMu.Unlock()
	lock, ok := e.locks[path]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[path] = lock
	}
	return lock
}

// load returns the current records for path, consulting the File
// Cache first and falling back to the Database File Store on miss.
// cached reports whether the File Cache served the request. The
// returned slice is always a clone distinct from whatever is or
// becomes the cache's own backing records, so callers that mutate
// elements in place (update/delete) never tear a concurrently-read
// cache entry.
func (e *Engine) load(path string) (records []record.Record, readMs int64, sizeBytes int64, cached bool, err error) {
	if cachedRecords, cachedSize, ok := e.fileCache.Get(path); ok {
		return cachedRecords, 0, cachedSize, true, nil
	}

	records, sizeBytes, readMs, err = e.store.Load(path)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			records = []record.Record{}
			sizeBytes = 0
			err = nil
		} else {
			return nil, 0, 0, false, err
		}
	}

	e.fileCache.Put(path, records, sizeBytes)
	return record.CloneAll(records), readMs, sizeBytes, false, nil
}

// Insert appends a new Record built from fields to the database at
// path, assigning _id and _created_at, and invalidates both caches for
// path (spec §4.7 insert).
func (e *Engine) Insert(path string, fields interface{}) (record.Record, error) {
	userFields, err := record.ValidateInsertable(fields)
	if err != nil {
		return nil, err
	}

	lock := e.pathLock(path)
	lock.Lock()
	defer lock.Unlock()

	records, _, _, _, err := e.load(path)
	if err != nil {
		return nil, err
	}

	newRecord := record.New(userFields)
	records = append(records, newRecord)

	if err := e.store.Save(path, records); err != nil {
		return nil, err
	}

	e.fileCache.Invalidate(path)
	e.searchCache.Invalidate(path)
	e.fileCache.Put(path, records, approximateSize(records))

	return newRecord.Clone(), nil
}

// Get resolves query/mode against the database at path, consulting the
// Search Cache before falling back to the Search Executor (spec §4.7
// get).
func (e *Engine) Get(path, query string, mode search.Mode) ([]record.Record, error) {
	key := cache.SearchKey{Path: path, Query: query, Mode: string(mode)}
	if cached, ok := e.searchCache.Get(key); ok {
		return cached, nil
	}

	records, _, _, _, err := e.load(path)
	if err != nil {
		return nil, err
	}

	matched := search.RunWithThreshold(records, query, mode, e.searchThreshold)
	e.searchCache.Put(key, matched)
	return matched, nil
}

// UpdateByQuery applies patch to every record matching query/mode,
// returning the count updated (spec §4.7 update_by_query).
func (e *Engine) UpdateByQuery(path, query string, mode search.Mode, patch map[string]interface{}) (int, error) {
	lock := e.pathLock(path)
	lock.Lock()
	defer lock.Unlock()

	records, _, _, _, err := e.load(path)
	if err != nil {
		return 0, err
	}

	count := 0
	for i, r := range records {
		if search.Match(map[string]interface{}(r), query, mode) {
			updated := r.Clone()
			record.ApplyPatch(updated, patch)
			records[i] = updated
			count++
		}
	}

	if count == 0 {
		return 0, nil
	}

	if err := e.store.Save(path, records); err != nil {
		return 0, err
	}

	e.fileCache.Invalidate(path)
	e.searchCache.Invalidate(path)
	e.fileCache.Put(path, records, approximateSize(records))

	return count, nil
}

// UpdateByID applies patch to the record with the given _id, returning
// 1 if found and updated, 0 otherwise (spec §4.7 update_by_id).
func (e *Engine) UpdateByID(path, id string, patch map[string]interface{}) (int, error) {
	lock := e.pathLock(path)
	lock.Lock()
	defer lock.Unlock()

	records, _, _, _, err := e.load(path)
	if err != nil {
		return 0, err
	}

	found := -1
	for i, r := range records {
		if r.ID() == id {
			found = i
			break
		}
	}
	if found == -1 {
		return 0, nil
	}

	updated := records[found].Clone()
	record.ApplyPatch(updated, patch)
	records[found] = updated

	if err := e.store.Save(path, records); err != nil {
		return 0, err
	}

	e.fileCache.Invalidate(path)
	e.searchCache.Invalidate(path)
	e.fileCache.Put(path, records, approximateSize(records))

	return 1, nil
}

// DeleteByQuery removes every record matching query/mode, preserving
// the order of survivors, and returns the count removed (spec §4.7
// delete_by_query).
func (e *Engine) DeleteByQuery(path, query string, mode search.Mode) (int, error) {
	lock := e.pathLock(path)
	lock.Lock()
	defer lock.Unlock()

	records, _, _, _, err := e.load(path)
	if err != nil {
		return 0, err
	}

	survivors := make([]record.Record, 0, len(records))
	removed := 0
	for _, r := range records {
		if search.Match(map[string]interface{}(r), query, mode) {
			removed++
			continue
		}
		survivors = append(survivors, r)
	}

	if removed == 0 {
		return 0, nil
	}

	if err := e.store.Save(path, survivors); err != nil {
		return 0, err
	}

	e.fileCache.Invalidate(path)
	e.searchCache.Invalidate(path)
	e.fileCache.Put(path, survivors, approximateSize(survivors))

	return removed, nil
}

// Stats reports total_records, size_bytes, read_time_ms, and whether
// the File Cache served this request (spec §4.7 stats).
type Stats struct {
	TotalRecords int
	SizeBytes    int64
	ReadTimeMs   int64
	Cached       bool
}

// Stats returns database statistics for path.
func (e *Engine) Stats(path string) (Stats, error) {
	records, readMs, sizeBytes, cached, err := e.load(path)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		TotalRecords: len(records),
		SizeBytes:    sizeBytes,
		ReadTimeMs:   readMs,
		Cached:       cached,
	}, nil
}

// Load exposes the cache-or-disk record load for callers outside the
// write path, such as the List/Browse Pipeline.
func (e *Engine) Load(path string) ([]record.Record, error) {
	records, _, _, _, err := e.load(path)
	return records, err
}

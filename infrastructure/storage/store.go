// Package storage implements the Database File Store (C2): each
// database is a single UTF-8 file holding one top-level JSON array of
// Records, read and rewritten as a whole per spec §4.1.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"sarychdb/domain/record"
	apperrors "sarychdb/pkg/errors"
)

// Store reads and atomically rewrites database files.
type Store struct{}

// NewStore creates a Database File Store.
func NewStore() *Store {
	return &Store{}
}

// Load reads and parses the whole file at path. It returns NotFound if
// the file does not exist, Corrupt if the content isn't a JSON array of
// objects, and IO for any other read failure.
func (s *Store) Load(path string) ([]record.Record, int64, int64, error) {
	start := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, 0, apperrors.NewNotFound("database file not found")
		}
		return nil, 0, 0, apperrors.NewIO("failed to read database file", err)
	}

	var raw []map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, 0, apperrors.NewCorrupt("database file does not parse as a JSON array of objects")
	}

	records := make([]record.Record, len(raw))
	for i, m := range raw {
		records[i] = record.Record(m)
	}

	readMs := time.Since(start).Milliseconds()
	return records, int64(len(data)), readMs, nil
}

// Save atomically replaces the file at path with records serialized as
// a JSON array: write to a sibling temp file, then rename into place,
// so no partially-written content is ever observable (spec §4.1).
func (s *Store) Save(path string, records []record.Record) error {
	if records == nil {
		records = []record.Record{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return apperrors.NewIO("failed to serialize records", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.NewIO("failed to create database directory", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return apperrors.NewIO("failed to create temp file", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return apperrors.NewIO("failed to write temp file", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return apperrors.NewIO("failed to sync temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return apperrors.NewIO("failed to close temp file", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return apperrors.NewIO("failed to rename temp file into place", err)
	}

	return nil
}

// Size returns the size in bytes of the file at path, or 0 if absent.
func (s *Store) Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, apperrors.NewIO("failed to stat database file", err)
	}
	return info.Size(), nil
}

// Exists reports whether a file exists at path.
func (s *Store) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

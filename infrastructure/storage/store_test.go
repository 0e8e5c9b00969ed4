package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sarychdb/domain/record"
	apperrors "sarychdb/pkg/errors"
)

func TestStore_SaveThenLoad_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db1.json")
	s := NewStore()

	records := []record.Record{
		{"_id": "r1", "name": "Ada"},
		{"_id": "r2", "name": "Grace"},
	}

	require.NoError(t, s.Save(path, records))

	loaded, size, _, err := s.Load(path)
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
	assert.Greater(t, size, int64(0))
}

func TestStore_Load_NotFound(t *testing.T) {
	dir := t.TempDir()
	s := NewStore()

	_, _, _, err := s.Load(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
}

func TestStore_Load_CorruptNonArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"an array"}`), 0o644))

	s := NewStore()
	_, _, _, err := s.Load(path)
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindCorrupt, appErr.Kind)
}

func TestStore_Save_EmptyDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.json")
	s := NewStore()

	require.NoError(t, s.Save(path, nil))

	loaded, _, _, err := s.Load(path)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestStore_Save_NoPartialFileLeftBehindOnSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db1.json")
	s := NewStore()

	require.NoError(t, s.Save(path, []record.Record{{"_id": "r1"}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "db1.json", entries[0].Name())
}

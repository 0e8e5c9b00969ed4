package crud

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sarychdb/domain/search"
	"sarychdb/infrastructure/cache"
	"sarychdb/infrastructure/storage"
)

func newTestEngine(t *testing.T) (*Engine, string) {
	t.Helper()
	store := storage.NewStore()
	fileCache := cache.NewFileCache(300 * time.Second)
	searchCache := cache.NewSearchCache(300*time.Second, 100)
	engine := NewEngine(store, fileCache, searchCache, zap.NewNop())
	return engine, filepath.Join(t.TempDir(), "db1.json")
}

func TestEngine_InsertThenGet(t *testing.T) {
	engine, path := newTestEngine(t)

	inserted, err := engine.Insert(path, map[string]interface{}{"name": "Ada", "age": float64(36)})
	require.NoError(t, err)
	assert.Equal(t, "Ada", inserted["name"])
	assert.NotEmpty(t, inserted.ID())

	results, err := engine.Get(path, "", search.ModeDefault)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Ada", results[0]["name"])
	assert.NotEmpty(t, results[0].CreatedAt())
	_, hasUpdated := results[0].UpdatedAt()
	assert.False(t, hasUpdated)
}

func TestEngine_Insert_RejectsNonObject(t *testing.T) {
	engine, path := newTestEngine(t)

	_, err := engine.Insert(path, []interface{}{1, 2, 3})
	assert.Error(t, err)
}

func TestEngine_UpdateByID_PreservesOtherRecords(t *testing.T) {
	engine, path := newTestEngine(t)

	r1, err := engine.Insert(path, map[string]interface{}{"v": float64(1)})
	require.NoError(t, err)
	r2, err := engine.Insert(path, map[string]interface{}{"v": float64(2)})
	require.NoError(t, err)

	count, err := engine.UpdateByID(path, r1.ID(), map[string]interface{}{"v": float64(9)})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	all, err := engine.Get(path, "", search.ModeDefault)
	require.NoError(t, err)
	require.Len(t, all, 2)

	var updated, untouched map[string]interface{}
	for _, r := range all {
		if r.ID() == r1.ID() {
			updated = r
		}
		if r.ID() == r2.ID() {
			untouched = r
		}
	}

	assert.Equal(t, float64(9), updated["v"])
	_, hasUpdatedAt := untouched["_updated_at"]
	assert.False(t, hasUpdatedAt)
}

func TestEngine_UpdateByID_NotFoundReturnsZero(t *testing.T) {
	engine, path := newTestEngine(t)
	_, err := engine.Insert(path, map[string]interface{}{"v": float64(1)})
	require.NoError(t, err)

	count, err := engine.UpdateByID(path, "nonexistent", map[string]interface{}{"v": float64(2)})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestEngine_UpdateByQuery(t *testing.T) {
	engine, path := newTestEngine(t)
	_, err := engine.Insert(path, map[string]interface{}{"category": "A"})
	require.NoError(t, err)
	_, err = engine.Insert(path, map[string]interface{}{"category": "B"})
	require.NoError(t, err)

	count, err := engine.UpdateByQuery(path, "A", search.ModeDefault, map[string]interface{}{"tagged": true})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestEngine_DeleteByQuery_PreservesSurvivorOrder(t *testing.T) {
	engine, path := newTestEngine(t)
	_, err := engine.Insert(path, map[string]interface{}{"keep": "a"})
	require.NoError(t, err)
	_, err = engine.Insert(path, map[string]interface{}{"drop": "gone"})
	require.NoError(t, err)
	_, err = engine.Insert(path, map[string]interface{}{"keep": "c"})
	require.NoError(t, err)

	// Default mode also searches _id (lowercase hex) and _created_at, so
	// the query uses letters that can never occur in either.
	count, err := engine.DeleteByQuery(path, "gone", search.ModeDefault)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	remaining, err := engine.Get(path, "", search.ModeDefault)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, "a", remaining[0]["keep"])
	assert.Equal(t, "c", remaining[1]["keep"])
}

func TestEngine_Stats(t *testing.T) {
	engine, path := newTestEngine(t)
	_, err := engine.Insert(path, map[string]interface{}{"a": 1})
	require.NoError(t, err)

	stats, err := engine.Stats(path)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalRecords)
	assert.Greater(t, stats.SizeBytes, int64(0))
}

func TestEngine_Get_WriteInvalidatesSearchCache(t *testing.T) {
	engine, path := newTestEngine(t)
	_, err := engine.Insert(path, map[string]interface{}{"v": "first"})
	require.NoError(t, err)

	results, err := engine.Get(path, "first", search.ModeDefault)
	require.NoError(t, err)
	require.Len(t, results, 1)

	_, err = engine.DeleteByQuery(path, "first", search.ModeDefault)
	require.NoError(t, err)

	results, err = engine.Get(path, "first", search.ModeDefault)
	require.NoError(t, err)
	assert.Empty(t, results)
}

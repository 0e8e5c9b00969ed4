package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sarychdb/domain/record"
)

func TestFileCache_PutThenGet(t *testing.T) {
	c := NewFileCache(300 * time.Second)
	records := []record.Record{{"a": 1}}

	c.Put("/db1.json", records, 10)

	got, size, ok := c.Get("/db1.json")
	assert.True(t, ok)
	assert.Equal(t, records, got)
	assert.Equal(t, int64(10), size)
}

func TestFileCache_MissWhenAbsent(t *testing.T) {
	c := NewFileCache(300 * time.Second)
	_, _, ok := c.Get("/missing.json")
	assert.False(t, ok)
}

func TestFileCache_ExpiresAfterTTL(t *testing.T) {
	c := NewFileCache(1 * time.Millisecond)
	c.Put("/db1.json", []record.Record{{"a": 1}}, 1)

	time.Sleep(5 * time.Millisecond)

	_, _, ok := c.Get("/db1.json")
	assert.False(t, ok)
}

func TestFileCache_Invalidate(t *testing.T) {
	c := NewFileCache(300 * time.Second)
	c.Put("/db1.json", []record.Record{{"a": 1}}, 1)

	c.Invalidate("/db1.json")

	_, _, ok := c.Get("/db1.json")
	assert.False(t, ok)
}

func TestFileCache_Clear(t *testing.T) {
	c := NewFileCache(300 * time.Second)
	c.Put("/db1.json", []record.Record{{"a": 1}}, 1)
	c.Put("/db2.json", []record.Record{{"b": 2}}, 1)

	c.Clear()

	_, _, ok1 := c.Get("/db1.json")
	_, _, ok2 := c.Get("/db2.json")
	assert.False(t, ok1)
	assert.False(t, ok2)
}

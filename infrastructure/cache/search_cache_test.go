package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sarychdb/domain/record"
)

func key(path string) SearchKey {
	return SearchKey{Path: path, Query: "q", Mode: "default"}
}

func TestSearchCache_PutThenGet(t *testing.T) {
	c := NewSearchCache(300*time.Second, 100)
	records := []record.Record{{"a": 1}}

	c.Put(key("/db1.json"), records)

	got, ok := c.Get(key("/db1.json"))
	assert.True(t, ok)
	assert.Equal(t, records, got)
}

func TestSearchCache_ExpiresAfterTTL(t *testing.T) {
	c := NewSearchCache(1*time.Millisecond, 100)
	c.Put(key("/db1.json"), []record.Record{{"a": 1}})

	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get(key("/db1.json"))
	assert.False(t, ok)
}

func TestSearchCache_InvalidateByPath(t *testing.T) {
	c := NewSearchCache(300*time.Second, 100)
	c.Put(SearchKey{Path: "/db1.json", Query: "a", Mode: "default"}, []record.Record{{"a": 1}})
	c.Put(SearchKey{Path: "/db1.json", Query: "b", Mode: "key"}, []record.Record{{"b": 2}})
	c.Put(SearchKey{Path: "/db2.json", Query: "a", Mode: "default"}, []record.Record{{"a": 1}})

	c.Invalidate("/db1.json")

	_, ok1 := c.Get(SearchKey{Path: "/db1.json", Query: "a", Mode: "default"})
	_, ok2 := c.Get(SearchKey{Path: "/db1.json", Query: "b", Mode: "key"})
	_, ok3 := c.Get(SearchKey{Path: "/db2.json", Query: "a", Mode: "default"})
	assert.False(t, ok1)
	assert.False(t, ok2)
	assert.True(t, ok3)
}

func TestSearchCache_EvictsWhenOverMaxSize(t *testing.T) {
	c := NewSearchCache(300*time.Second, 5)

	for i := 0; i < 10; i++ {
		c.Put(SearchKey{Path: fmt.Sprintf("/db%d.json", i), Query: "q", Mode: "default"}, []record.Record{{"a": i}})
	}

	count := 0
	for i := 0; i < 10; i++ {
		if _, ok := c.Get(SearchKey{Path: fmt.Sprintf("/db%d.json", i), Query: "q", Mode: "default"}); ok {
			count++
		}
	}
	assert.LessOrEqual(t, count, 5)
}

func TestSearchCache_Clear(t *testing.T) {
	c := NewSearchCache(300*time.Second, 100)
	c.Put(key("/db1.json"), []record.Record{{"a": 1}})

	c.Clear()

	_, ok := c.Get(key("/db1.json"))
	assert.False(t, ok)
}

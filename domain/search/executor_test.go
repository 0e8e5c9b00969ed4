package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"sarychdb/domain/record"
)

func TestRun_SequentialBelowThreshold(t *testing.T) {
	records := []record.Record{
		{"a": float64(1)},
		{"b": float64(2)},
		{"nested": map[string]interface{}{"a": float64(3)}},
	}

	matches := Run(records, "a", ModeKey)
	assert.Len(t, matches, 2)
	assert.Equal(t, records[0], matches[0])
	assert.Equal(t, records[2], matches[1])
}

func TestRun_EmptyQueryReturnsAll(t *testing.T) {
	records := []record.Record{{"a": float64(1)}, {"b": float64(2)}}
	matches := Run(records, "", ModeDefault)
	assert.Len(t, matches, 2)
}

func TestRunWithThreshold_SequentialAndParallelAgree(t *testing.T) {
	records := make([]record.Record, 2500)
	for i := range records {
		records[i] = record.Record{"index": float64(i), "label": fmt.Sprintf("item-%d", i)}
	}

	sequential := RunWithThreshold(records, "item-2499", ModeDefault, 1<<30)
	parallel := RunWithThreshold(records, "item-2499", ModeDefault, 1)

	assert.Equal(t, sequential, parallel)
	assert.Len(t, parallel, 1)
}

func TestRunWithThreshold_PreservesDatabaseOrder(t *testing.T) {
	records := make([]record.Record, 2000)
	for i := range records {
		records[i] = record.Record{"index": float64(i), "group": "x"}
	}

	matches := RunWithThreshold(records, "x", ModeValue, 1)
	require := assert.New(t)
	require.Len(matches, 2000)
	for i, m := range matches {
		require.Equal(float64(i), m["index"])
	}
}

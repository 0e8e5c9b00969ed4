package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit_ContiguousAndOrderPreserving(t *testing.T) {
	shards := Split(10, 3)

	assert.Len(t, shards, 3)

	covered := 0
	prevEnd := 0
	for _, b := range shards {
		assert.Equal(t, prevEnd, b.Start)
		assert.LessOrEqual(t, b.Start, b.End)
		covered += b.End - b.Start
		prevEnd = b.End
	}
	assert.Equal(t, 10, covered)
	assert.Equal(t, 10, prevEnd)
}

func TestSplit_FewerRecordsThanShards(t *testing.T) {
	shards := Split(2, 8)
	assert.LessOrEqual(t, len(shards), 2)

	total := 0
	for _, b := range shards {
		total += b.End - b.Start
	}
	assert.Equal(t, 2, total)
}

func TestSplit_ZeroLength(t *testing.T) {
	shards := Split(0, 4)
	assert.Empty(t, shards)
}

func TestSplit_DetectsHardwareParallelismWhenNZero(t *testing.T) {
	shards := Split(100, 0)
	assert.NotEmpty(t, shards)
}

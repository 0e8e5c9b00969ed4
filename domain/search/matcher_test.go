package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch_DefaultMode_RecursiveSubstring(t *testing.T) {
	value := map[string]interface{}{
		"owner": map[string]interface{}{
			"contact": map[string]interface{}{
				"email": "x@y.z",
			},
		},
	}

	assert.True(t, Match(value, "y.z", ModeDefault))
	assert.False(t, Match(value, "nope", ModeDefault))
}

func TestMatch_DefaultMode_NumberAndBoolLeaves(t *testing.T) {
	value := map[string]interface{}{"age": float64(36), "active": true}

	assert.True(t, Match(value, "36", ModeDefault))
	assert.True(t, Match(value, "true", ModeDefault))
}

func TestMatch_KeyMode(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		query string
		want  bool
	}{
		{"top-level key present", map[string]interface{}{"a": 1}, "a", true},
		{"nested key present", map[string]interface{}{"nested": map[string]interface{}{"a": 3}}, "a", true},
		{"key absent", map[string]interface{}{"b": 2}, "a", false},
		{"key inside array of objects", []interface{}{map[string]interface{}{"a": 1}}, "a", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.value, tt.query, ModeKey))
		})
	}
}

func TestMatch_ValueMode(t *testing.T) {
	value := map[string]interface{}{"name": "Ada", "age": float64(36)}

	assert.True(t, Match(value, "Ada", ModeValue))
	assert.True(t, Match(value, "36", ModeValue))
	assert.False(t, Match(value, "Ad", ModeValue)) // value mode requires equality, not substring
}

func TestMatch_EmptyQueryMatchesAll(t *testing.T) {
	assert.True(t, Match(map[string]interface{}{"a": 1}, "", ModeDefault))
}

func TestMatch_ArrayRecursion(t *testing.T) {
	value := map[string]interface{}{"tags": []interface{}{"blue", "red"}}
	assert.True(t, Match(value, "red", ModeDefault))
	assert.False(t, Match(value, "green", ModeDefault))
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeKey, ParseMode("key"))
	assert.Equal(t, ModeValue, ParseMode("value"))
	assert.Equal(t, ModeDefault, ParseMode(""))
	assert.Equal(t, ModeDefault, ParseMode("unknown"))
}

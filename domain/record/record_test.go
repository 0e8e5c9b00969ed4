package record

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	r := New(map[string]interface{}{"name": "Ada", "age": float64(36)})

	assert.Equal(t, "Ada", r["name"])
	assert.Equal(t, float64(36), r["age"])

	_, err := uuid.Parse(r.ID())
	require.NoError(t, err)

	assert.NotEmpty(t, r.CreatedAt())
	_, ok := r.UpdatedAt()
	assert.False(t, ok)
}

func TestNew_IgnoresSuppliedReservedFields(t *testing.T) {
	r := New(map[string]interface{}{"_id": "attacker-supplied", "_created_at": "bogus"})

	assert.NotEqual(t, "attacker-supplied", r.ID())
	assert.NotEqual(t, "bogus", r.CreatedAt())
}

func TestApplyPatch(t *testing.T) {
	r := New(map[string]interface{}{"v": float64(1)})
	createdAt := r.CreatedAt()

	ApplyPatch(r, map[string]interface{}{"v": float64(9), "_id": "should-be-ignored"})

	assert.Equal(t, float64(9), r["v"])
	assert.Equal(t, createdAt, r.CreatedAt())
	updatedAt, ok := r.UpdatedAt()
	assert.True(t, ok)
	assert.NotEmpty(t, updatedAt)
}

func TestApplyPatch_ShallowMergePreservesUntouchedFields(t *testing.T) {
	r := New(map[string]interface{}{"a": float64(1), "b": float64(2)})

	ApplyPatch(r, map[string]interface{}{"a": float64(100)})

	assert.Equal(t, float64(100), r["a"])
	assert.Equal(t, float64(2), r["b"])
}

func TestClone_DoesNotAliasOriginal(t *testing.T) {
	r := New(map[string]interface{}{"v": float64(1)})
	c := r.Clone()
	c["v"] = float64(2)

	assert.Equal(t, float64(1), r["v"])
	assert.Equal(t, float64(2), c["v"])
}

func TestValidateInsertable(t *testing.T) {
	m, err := ValidateInsertable(map[string]interface{}{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, 1, m["a"])

	_, err = ValidateInsertable([]interface{}{1, 2, 3})
	assert.Error(t, err)

	_, err = ValidateInsertable("not an object")
	assert.Error(t, err)
}

func TestIsReserved(t *testing.T) {
	assert.True(t, IsReserved(FieldID))
	assert.True(t, IsReserved(FieldCreatedAt))
	assert.True(t, IsReserved(FieldUpdatedAt))
	assert.False(t, IsReserved("name"))
}

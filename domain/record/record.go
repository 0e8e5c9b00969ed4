// Package record defines SarychDB's canonical document value: a
// schemaless JSON object plus the three reserved metadata fields the
// engine owns.
package record

import (
	"github.com/google/uuid"

	apperrors "sarychdb/pkg/errors"
	"sarychdb/pkg/utils"
)

// Reserved field names. These keys are owned by the engine; user
// fields may never overwrite them directly (updates shallow-merge
// only non-reserved keys, see ApplyPatch).
const (
	FieldID        = "_id"
	FieldCreatedAt = "_created_at"
	FieldUpdatedAt = "_updated_at"
)

// Record is a JSON object. Unlike the teacher's closed Node entity,
// Record stays an open map so it can hold arbitrary user-supplied
// fields alongside the three reserved keys.
type Record map[string]interface{}

// New assigns a fresh _id and _created_at to fields and returns the
// resulting Record. fields must already have been validated as a JSON
// object by the caller (insert rejects non-objects before reaching
// here).
func New(fields map[string]interface{}) Record {
	r := make(Record, len(fields)+2)
	for k, v := range fields {
		r[k] = v
	}
	r[FieldID] = uuid.New().String()
	r[FieldCreatedAt] = utils.NowISO8601UTC()
	delete(r, FieldUpdatedAt)
	return r
}

// ID returns the record's _id, or "" if absent or not a string.
func (r Record) ID() string {
	v, _ := r[FieldID].(string)
	return v
}

// CreatedAt returns the record's _created_at, or "" if absent.
func (r Record) CreatedAt() string {
	v, _ := r[FieldCreatedAt].(string)
	return v
}

// UpdatedAt returns the record's _updated_at and whether it is present.
func (r Record) UpdatedAt() (string, bool) {
	v, ok := r[FieldUpdatedAt].(string)
	return v, ok
}

// Clone returns a shallow copy of r so callers holding a cached handle
// never observe mutation by another goroutine (spec §4.2).
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// CloneAll returns a shallow copy of each record in rs, and a new
// outer slice, so a cache lookup can hand out a snapshot nothing else
// can mutate.
func CloneAll(rs []Record) []Record {
	out := make([]Record, len(rs))
	for i, r := range rs {
		out[i] = r.Clone()
	}
	return out
}

// IsReserved reports whether key is one of the three engine-owned
// fields.
func IsReserved(key string) bool {
	return key == FieldID || key == FieldCreatedAt || key == FieldUpdatedAt
}

// ApplyPatch shallow-merges patch onto r's user fields (reserved keys
// in patch are ignored, spec §4.7) and refreshes _updated_at. r is
// mutated in place; callers operate on an already-cloned Record.
func ApplyPatch(r Record, patch map[string]interface{}) {
	for k, v := range patch {
		if IsReserved(k) {
			continue
		}
		r[k] = v
	}
	r[FieldUpdatedAt] = utils.NowISO8601UTC()
}

// ValidateInsertable reports a BadRequest error if fields cannot be
// inserted as a Record: it must decode as a JSON object.
func ValidateInsertable(fields interface{}) (map[string]interface{}, error) {
	m, ok := fields.(map[string]interface{})
	if !ok {
		return nil, apperrors.NewBadRequest("record must be a JSON object")
	}
	return m, nil
}

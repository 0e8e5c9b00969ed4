package listing

import (
	"encoding/json"
	"sort"

	"sarychdb/domain/record"
)

// The bucket constants give the total order spec §4.8 fixes:
// missing < null < boolean < number < string < array < object.
const (
	bucketMissing = iota
	bucketNull
	bucketBool
	bucketNumber
	bucketString
	bucketArray
	bucketObject
)

// sortRecords stably sorts a copy of records by the top-level value at
// sortBy, reversing the comparator when sortOrder is "desc" (spec
// §4.8). A record missing the key sorts before null.
func sortRecords(records []record.Record, sortBy, sortOrder string) []record.Record {
	out := make([]record.Record, len(records))
	copy(out, records)

	less := func(i, j int) bool {
		av, aOK := out[i][sortBy]
		bv, bOK := out[j][sortBy]
		return compareValuesFull(av, aOK, bv, bOK) < 0
	}
	if sortOrder == "desc" {
		orig := less
		less = func(i, j int) bool { return orig(j, i) }
	}

	sort.SliceStable(out, less)
	return out
}

func bucketOf(v interface{}, present bool) int {
	if !present {
		return bucketMissing
	}
	switch v.(type) {
	case nil:
		return bucketNull
	case bool:
		return bucketBool
	case float64:
		return bucketNumber
	case string:
		return bucketString
	case []interface{}:
		return bucketArray
	case map[string]interface{}:
		return bucketObject
	default:
		return bucketNull
	}
}

// compareValuesFull returns -1, 0, or 1 comparing a to b under the
// spec's bucketed total order: missing < null < boolean < number <
// string < array < object. aPresent/bPresent come from the two-value
// map form, since a missing key and an explicit JSON null both decode
// to a bare Go nil and are otherwise indistinguishable.
func compareValuesFull(a interface{}, aPresent bool, b interface{}, bPresent bool) int {
	ba, bb := bucketOf(a, aPresent), bucketOf(b, bPresent)
	if ba != bb {
		if ba < bb {
			return -1
		}
		return 1
	}

	switch ba {
	case bucketMissing, bucketNull:
		return 0
	case bucketBool:
		av, bv := a.(bool), b.(bool)
		if av == bv {
			return 0
		}
		if !av {
			return -1
		}
		return 1
	case bucketNumber:
		av, bv := a.(float64), b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case bucketString:
		av, bv := a.(string), b.(string)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	default:
		aj, _ := json.Marshal(a)
		bj, _ := json.Marshal(b)
		as, bs := string(aj), string(bj)
		switch {
		case as < bs:
			return -1
		case as > bs:
			return 1
		default:
			return 0
		}
	}
}

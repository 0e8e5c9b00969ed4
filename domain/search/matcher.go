// Package search implements the Matcher (C4), Shard Planner (C5), and
// Search Executor (C6): the recursive predicate over Record values and
// its adaptive sequential/parallel evaluation strategy.
package search

import (
	"strconv"
	"strings"
)

// Mode selects how a query string is matched against a Record.
type Mode string

const (
	// ModeDefault matches Q anywhere in R as a substring of any string
	// leaf, or the textual form of any number/boolean leaf.
	ModeDefault Mode = "default"
	// ModeKey matches R containing a key named exactly Q at any depth.
	ModeKey Mode = "key"
	// ModeValue matches a leaf value string-equal to Q.
	ModeValue Mode = "value"
)

// ParseMode maps the queryType header value to a Mode, defaulting to
// ModeDefault for an empty or unrecognized value.
func ParseMode(queryType string) Mode {
	switch Mode(queryType) {
	case ModeKey:
		return ModeKey
	case ModeValue:
		return ModeValue
	default:
		return ModeDefault
	}
}

// Match reports whether query matches value under mode, recursively.
// An empty query always matches (spec §4.3). The traversal
// short-circuits on the first hit — every branch returns as soon as a
// match is found rather than continuing to accumulate results.
func Match(value interface{}, query string, mode Mode) bool {
	if query == "" {
		return true
	}
	return matchValue(value, query, mode)
}

func matchValue(value interface{}, query string, mode Mode) bool {
	switch v := value.(type) {
	case map[string]interface{}:
		for k, child := range v {
			if mode == ModeKey && k == query {
				return true
			}
			if matchValue(child, query, mode) {
				return true
			}
		}
		return false
	case []interface{}:
		for _, child := range v {
			if matchValue(child, query, mode) {
				return true
			}
		}
		return false
	default:
		return matchLeaf(value, query, mode)
	}
}

func matchLeaf(value interface{}, query string, mode Mode) bool {
	if mode == ModeKey {
		return false
	}

	text, ok := leafText(value)
	if !ok {
		return false
	}

	if mode == ModeValue {
		return text == query
	}
	return strings.Contains(text, query)
}

// leafText renders a scalar JSON leaf (string, number, boolean) to its
// textual form for substring/equality comparison. null and any other
// value report false and never match.
func leafText(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

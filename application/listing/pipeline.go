// Package listing implements the List/Browse Pipeline (C9): filter,
// sort, and paginate over records loaded through the File Cache. It
// never touches the Search Cache — its queries are structured field
// predicates, not the Matcher's free-text search (spec §4.8).
package listing

import (
	"encoding/json"

	"sarychdb/domain/record"
	"sarychdb/pkg/common"
	apperrors "sarychdb/pkg/errors"
)

// Mode is the browse/list pagination mode reported in the response.
type Mode string

const (
	ModeLimitOnly Mode = "limit_only"
	ModePaginated Mode = "paginated"
	ModeDefault   Mode = "default"
)

// Params bundles the optional request knobs the pipeline consumes.
type Params struct {
	Page      *int
	Limit     *int
	SortBy    string
	SortOrder string // "asc" (default) or "desc"
	Filters   map[string]interface{}
}

// Pagination mirrors the spec §4.8 pagination object. FilteredRecords
// is only populated by List (not Browse), and TotalPages/HasNext/
// HasPrev are only populated in "paginated" mode.
type Pagination struct {
	Mode            Mode  `json:"mode"`
	Page            int   `json:"page,omitempty"`
	Limit           int   `json:"limit,omitempty"`
	Returned        int   `json:"returned"`
	TotalRecords    int   `json:"total_records"`
	FilteredRecords *int  `json:"filtered_records,omitempty"`
	TotalPages      int   `json:"total_pages,omitempty"`
	HasNext         *bool `json:"has_next,omitempty"`
	HasPrev         *bool `json:"has_prev,omitempty"`
}

// Result is the pipeline's output: the page of records plus its
// pagination metadata.
type Result struct {
	Records    []record.Record
	Pagination Pagination
}

// Browse implements spec §4.8 browse: no filtering, no sorting, three
// modes selected by the presence of page/limit.
func Browse(records []record.Record, p Params) (Result, error) {
	total := len(records)

	switch {
	case p.Limit == nil && p.Page == nil:
		limit := 10
		page := 1
		start, end := sliceBounds(total, page, limit)
		page1 := records[start:end]
		return Result{
			Records: record.CloneAll(page1),
			Pagination: Pagination{
				Mode:         ModeDefault,
				Page:         page,
				Limit:        limit,
				Returned:     len(page1),
				TotalRecords: total,
			},
		}, nil

	case p.Limit != nil && p.Page == nil:
		limit := *p.Limit
		start, end := common.Bounds(total, 0, limit)
		page1 := records[start:end]
		return Result{
			Records: record.CloneAll(page1),
			Pagination: Pagination{
				Mode:         ModeLimitOnly,
				Limit:        limit,
				Returned:     len(page1),
				TotalRecords: total,
			},
		}, nil

	case p.Limit != nil && p.Page != nil:
		limit := *p.Limit
		page := *p.Page
		start, end := sliceBounds(total, page, limit)
		slice := records[start:end]
		totalPages := common.TotalPages(total, limit)
		hasNext := page < totalPages
		hasPrev := page > 1
		return Result{
			Records: record.CloneAll(slice),
			Pagination: Pagination{
				Mode:         ModePaginated,
				Page:         page,
				Limit:        limit,
				Returned:     len(slice),
				TotalRecords: total,
				TotalPages:   totalPages,
				HasNext:      &hasNext,
				HasPrev:      &hasPrev,
			},
		}, nil

	default: // page present without limit
		return Result{}, apperrors.NewBadRequest("Cannot use 'page' without 'limit'.")
	}
}

// List implements spec §4.8 list: filter, then sort, then paginate.
func List(records []record.Record, p Params) (Result, error) {
	total := len(records)

	filtered := records
	if len(p.Filters) > 0 {
		filtered = applyFilters(records, p.Filters)
	}

	if p.SortBy != "" {
		filtered = sortRecords(filtered, p.SortBy, p.SortOrder)
	}

	browseParams := Params{Page: p.Page, Limit: p.Limit}
	result, err := Browse(filtered, browseParams)
	if err != nil {
		return Result{}, err
	}

	filteredCount := len(filtered)
	result.Pagination.FilteredRecords = &filteredCount
	result.Pagination.TotalRecords = total
	return result, nil
}

// sliceBounds computes the [start, end) window for page/limit,
// clamped to [0, total].
func sliceBounds(total, page, limit int) (int, int) {
	start := (page - 1) * limit
	end := start + limit
	return common.Bounds(total, start, end)
}

// applyFilters keeps records whose top-level fields match every
// (field, spec) pair in filters (AND). A spec that is a JSON array
// matches if the record's field equals any array entry; a record
// missing the field fails.
func applyFilters(records []record.Record, filters map[string]interface{}) []record.Record {
	out := make([]record.Record, 0, len(records))
	for _, r := range records {
		if matchesFilters(r, filters) {
			out = append(out, r)
		}
	}
	return out
}

func matchesFilters(r record.Record, filters map[string]interface{}) bool {
	for field, spec := range filters {
		value, ok := r[field]
		if !ok {
			return false
		}
		if arr, isArray := spec.([]interface{}); isArray {
			if !valueInArray(value, arr) {
				return false
			}
			continue
		}
		if !jsonEqual(value, spec) {
			return false
		}
	}
	return true
}

func valueInArray(value interface{}, arr []interface{}) bool {
	for _, candidate := range arr {
		if jsonEqual(value, candidate) {
			return true
		}
	}
	return false
}

// jsonEqual compares two decoded JSON values by re-encoding, giving
// value equality that doesn't depend on Go's concrete dynamic types
// lining up (e.g. float64 vs int after decode).
func jsonEqual(a, b interface{}) bool {
	ab, errA := json.Marshal(a)
	bb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return string(ab) == string(bb)
}

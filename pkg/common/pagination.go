package common

// TotalPages returns ceil(total/limit), the spec's total_pages field for
// paginated browse/list results (§4.8). Mirrors the teacher's
// CalculateTotalPages helper, trimmed to the one shape the spec uses.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := total / limit
	if total%limit > 0 {
		pages++
	}
	return pages
}

// Bounds clamps [start, end) to a valid sub-range of a length-n slice so
// a limit/page combination that overruns the record count never panics.
func Bounds(n, start, end int) (int, int) {
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	if end < start {
		end = start
	}
	if end > n {
		end = n
	}
	return start, end
}

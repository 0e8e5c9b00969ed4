package utils

import "time"

// NowISO8601UTC returns the current instant formatted as ISO-8601 UTC,
// the format spec §3 fixes for _created_at/_updated_at.
func NowISO8601UTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// ParseISO8601 parses a timestamp string in the format NowISO8601UTC produces.
func ParseISO8601(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

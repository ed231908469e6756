package model

import "time"

// timestampLayouts are tried in order. Layouts without a zone are parsed in
// local time, matching how the timestamps were written.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses an ISO 8601 date or datetime string. The second
// return value is false when the string is empty or malformed; callers are
// expected to skip the value, never to fail.
func ParseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateOf formats t as its local calendar date (YYYY-MM-DD).
func DateOf(t time.Time) string {
	return t.Format("2006-01-02")
}

// Timestamp formats t the way records store creation and completion times.
func Timestamp(t time.Time) string {
	return t.Format("2006-01-02T15:04:05.000000")
}

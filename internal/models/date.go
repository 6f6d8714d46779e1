// ABOUTME: Date and timestamp helpers shared by the stores and CLI.
// ABOUTME: Dates are calendar-day strings (YYYY-MM-DD); timestamps are fixed-width ISO-8601.
package models

import (
	"regexp"
	"time"
)

// isoLayout is millisecond-precision UTC, fixed width so that string
// comparison of two timestamps matches chronological order.
const isoLayout = "2006-01-02T15:04:05.000Z"

var ymdRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// NowISO returns the current time in the stored timestamp format.
func NowISO() string {
	return time.Now().UTC().Format(isoLayout)
}

// Today returns the current local calendar day.
func Today() string {
	return time.Now().Format("2006-01-02")
}

// IsYMD reports whether s is a YYYY-MM-DD day string.
func IsYMD(s string) bool {
	return ymdRE.MatchString(s)
}

// NormalizeDate coerces a date-ish string to YYYY-MM-DD. Legacy records
// stored full timestamps; anything unparseable falls back to today.
func NormalizeDate(s string) string {
	if IsYMD(s) {
		return s
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	if len(s) >= 10 && IsYMD(s[:10]) {
		return s[:10]
	}
	return Today()
}

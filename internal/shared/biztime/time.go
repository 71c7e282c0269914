// Package biztime centralizes time handling. All storage and transport use
// UTC; anything user-facing formats explicitly.
package biztime

import "time"

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatRFC3339 formats a time for transport and audit output.
func FormatRFC3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatHuman formats a time for server-rendered pages.
func FormatHuman(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}

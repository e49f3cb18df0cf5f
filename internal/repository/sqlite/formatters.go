package sqlite

import (
	"time"
)

// FormatTimeForDB formats a time.Time value as an RFC 3339 string with
// nanoseconds so that stored values round-trip exactly.
func FormatTimeForDB(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// FormatTimePtrForDB formats a *time.Time value, returning nil if the pointer is nil
func FormatTimePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatTimeForDB(*t)
}

// ParseTimeFromDB parses a timestamp written by FormatTimeForDB.
// RFC3339Nano parsing also accepts values without fractional seconds.
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// Package codec holds the wire formats used by schemaobject: the canonical
// date string format and the JSON driver.
package codec

import (
	"errors"
	"time"
)

// DateOnly is the calendar-date layout accepted in addition to RFC3339.
const DateOnly = "2006-01-02"

// ErrInvalidTime is returned when a string is not an RFC3339 timestamp or a
// calendar date.
var ErrInvalidTime = errors.New("codec: invalid RFC3339 time")

// ParseTime parses s as RFC3339Nano, RFC3339 or a bare calendar date (UTC).
// Locale-dependent formats are deliberately rejected so that every accepted
// string round-trips through FormatTime.
func ParseTime(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(DateOnly, s, time.UTC); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidTime
}

// FormatTime renders t in the canonical interchange form.
func FormatTime(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}

// TimeFromMillis converts an epoch offset in milliseconds to a UTC time.
func TimeFromMillis(ms float64) time.Time {
	sec := int64(ms / 1000)
	nsec := int64((ms - float64(sec)*1000) * float64(time.Millisecond))
	return time.Unix(sec, nsec).UTC()
}

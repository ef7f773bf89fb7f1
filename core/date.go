package core

import (
	"time"

	"github.com/pkg/errors"
)

const dateLayout = "2006-01-02"

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05", // no zone: UTC
	"2006-01-02 15:04:05",
}

// ParseDate parses an ISO date ("2025-06-30", midnight UTC) or date-time (RFC 3339).
// Results are in UTC, truncated to microseconds (the database precision).
func ParseDate(s string) (time.Time, error) {
	s = CleanString(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NormalizeTime(t), nil
		}
	}
	return time.Time{}, errors.Errorf("invalid date %q", s)
}

// IsDateOnly reports whether s is a plain ISO date without a time part.
func IsDateOnly(s string) bool {
	_, err := time.Parse(dateLayout, CleanString(s))
	return err == nil
}

// EndOfDay returns the last representable instant of t's day.
func EndOfDay(t time.Time) time.Time {
	return t.Truncate(24 * time.Hour).Add(24*time.Hour - time.Microsecond)
}

// NormalizeTime converts t to UTC with microsecond precision.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

package types

import (
	"time"
)

// DateLayout is the calendar date format accepted and returned by the API
const DateLayout = "2006-01-02"

// TruncateToDay drops the time of day, keeping the calendar date in UTC
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from a to b
func DaysBetween(a, b time.Time) int {
	return int(TruncateToDay(b).Sub(TruncateToDay(a)).Hours() / 24)
}

// SameDay reports whether both times fall on the same calendar date
func SameDay(a, b time.Time) bool {
	return TruncateToDay(a).Equal(TruncateToDay(b))
}

// Today returns the current calendar date in UTC
func Today() time.Time {
	return TruncateToDay(time.Now().UTC())
}

// ParseDate parses a YYYY-MM-DD date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return TruncateToDay(t), nil
}

package core

import (
	"fmt"
	"time"
)

// DateKeyLayout is the calendar-day key format used to group notes.
const DateKeyLayout = "2006-01-02"

// Today returns the date key for the current day.
func Today() string {
	return FormatDateKey(time.Now())
}

// FormatDateKey converts a time to a date key.
func FormatDateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey parses a date key into a time at midnight local time.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DateKeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t, nil
}

// AddDays shifts a date key by the given number of calendar days.
func AddDays(key string, days int) (string, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return "", err
	}
	return FormatDateKey(t.AddDate(0, 0, days)), nil
}

// Timestamp returns the current time in RFC 3339 format, the timestamp
// representation used throughout the persisted data.
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// FormatDateDisplay renders a date key for display, e.g. "December 26, 2025".
func FormatDateDisplay(key string) string {
	t, err := ParseDateKey(key)
	if err != nil {
		return key
	}
	return t.Format("January 2, 2006")
}

// RelativeDay describes a date key relative to today
// (Today, Yesterday, Tomorrow, or the display form).
func RelativeDay(key string) string {
	now := time.Now()
	switch key {
	case FormatDateKey(now):
		return "Today"
	case FormatDateKey(now.AddDate(0, 0, -1)):
		return "Yesterday"
	case FormatDateKey(now.AddDate(0, 0, 1)):
		return "Tomorrow"
	}
	return FormatDateDisplay(key)
}

// IsToday reports whether the key names the current day.
func IsToday(key string) bool {
	return key == Today()
}

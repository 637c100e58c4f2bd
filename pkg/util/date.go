package util

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date key used for daily snapshots.
const DateLayout = "2006-01-02"

// Today returns the local calendar date as YYYY-MM-DD.
func Today() string {
	return DateOf(time.Now())
}

// DateOf formats t as a YYYY-MM-DD calendar date.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseClock parses "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock %q out of range", s)
	}
	return h*60 + m, nil
}

// IsWeekday reports whether t falls on Monday through Friday.
func IsWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd >= time.Monday && wd <= time.Friday
}

// WithinWindow reports whether t's local clock is inside [open, close).
// open and close are minutes since midnight.
func WithinWindow(t time.Time, open, close int) bool {
	mins := t.Hour()*60 + t.Minute()
	return mins >= open && mins < close
}

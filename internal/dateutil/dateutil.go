// Package dateutil handles the fixed YYYY-MM-DD calendar-date format used
// in URLs and storage, and the date-window arithmetic for queries.
package dateutil

import (
	"strings"
	"time"
)

const layout = "2006-01-02"

// Parse converts a YYYY-MM-DD string to a UTC calendar date. The second
// return value is false for any malformed or empty input.
func Parse(s string) (time.Time, bool) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(layout, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Format renders a date as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.UTC().Format(layout)
}

// Truncate drops the time-of-day component, leaving UTC midnight of the
// same calendar day.
func Truncate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayWindow returns the inclusive bounds covering the full calendar day of t,
// regardless of any time-of-day component.
func DayWindow(t time.Time) (from, to time.Time) {
	from = Truncate(t)
	to = from.Add(24*time.Hour - time.Nanosecond)
	return from, to
}

// WeekWindow returns the inclusive bounds covering the seven calendar days
// starting at t.
func WeekWindow(t time.Time) (from, to time.Time) {
	from = Truncate(t)
	to = from.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return from, to
}

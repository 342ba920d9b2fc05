// Package timeutil holds the clock-time and calendar-date arithmetic used by
// the scheduling rules. Clock times are "HH:MM" strings compared in
// minutes-since-midnight; calendar dates are "YYYY-MM-DD".
package timeutil

import (
	"strconv"
	"strings"
	"time"

	"github.com/staffgrid/backend/internal"
)

const DateLayout = "2006-01-02"

// ToMinutes parses an "HH:MM" clock time into minutes since midnight.
func ToMinutes(hhmm string) (int, error) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return 0, internal.NewValidationError("time must be in HH:MM format", internal.ErrCodeMalformedTime)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, internal.NewValidationError("time must be in HH:MM format", internal.ErrCodeMalformedTime)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, internal.NewValidationError("time must be in HH:MM format", internal.ErrCodeMalformedTime)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, internal.NewValidationError("time is out of range", internal.ErrCodeMalformedTime)
	}

	return hour*60 + minute, nil
}

// RangesOverlap reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. Touching endpoints do not overlap.
func RangesOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// ParseDate parses a "YYYY-MM-DD" calendar date, normalized to midnight UTC.
func ParseDate(date string) (time.Time, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, internal.NewValidationError("date must be in YYYY-MM-DD format", internal.ErrCodeMalformedDate)
	}
	return d, nil
}

// Normalize strips the time-of-day portion so two values on the same calendar
// day compare equal regardless of how the store returned them.
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return Normalize(a).Equal(Normalize(b))
}

// WithinDates reports whether d falls inside [start,end], inclusive on both
// ends. A single-day range still covers that day.
func WithinDates(d, start, end time.Time) bool {
	d = Normalize(d)
	return !d.Before(Normalize(start)) && !d.After(Normalize(end))
}

// WeekdayOf returns the calendar weekday of a "YYYY-MM-DD" date, 0=Sunday
// through 6=Saturday.
func WeekdayOf(date string) (int, error) {
	d, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	return int(d.Weekday()), nil
}

// Weekday is WeekdayOf for an already-parsed date.
func Weekday(t time.Time) int {
	return int(t.Weekday())
}

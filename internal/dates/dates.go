package dates

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidDayKey = errors.New("invalid day key")

// DayKey returns the YYYY-M-D key of the calendar day t falls on, using t's own
// location (no UTC normalization, no zero padding).
func DayKey(t time.Time) string {
	return fmt.Sprintf("%d-%d-%d", t.Year(), int(t.Month()), t.Day())
}

// ParseDayKey reconstructs the start of the day described by key in loc.
func ParseDayKey(key string, loc *time.Location) (time.Time, error) {
	var year, month, day int
	var rest string
	n, _ := fmt.Sscanf(key, "%d-%d-%d%s", &year, &month, &day, &rest)
	if n != 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDayKey, key)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDayKey, key)
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), nil
}

func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// DaysBetween is the elapsed time between the calendar days of from and to in
// loc, counted in whole 24h days. DST shifts do not shorten or stretch it.
func DaysBetween(from, to time.Time, loc *time.Location) time.Duration {
	if loc == nil {
		loc = time.UTC
	}
	f := from.In(loc)
	t := to.In(loc)
	fromDay := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return toDay.Sub(fromDay)
}

// ParseDate accepts YYYY-MM-DD and returns the start of that day in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(time.DateOnly, value, loc)
}

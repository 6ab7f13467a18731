package utils

import "time"

const DateLayout = "2006-01-02"

// StartOfDay returns local midnight of t in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// CalendarDate re-reads the year, month and day of a DATE column value
// (delivered as UTC midnight) as midnight in loc.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// ParseDate reads a YYYY-MM-DD label as midnight in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, loc)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateOnly keeps the calendar date of t as UTC midnight, the form DATE
// columns are written and compared in.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

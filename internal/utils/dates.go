package utils

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// ParseDate converts a yyyy-mm-dd string into a UTC midnight time.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd: %q", dateStr)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseMonth converts a yyyy-mm string into the first day of that month.
func ParseMonth(monthStr string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, monthStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month format, expected yyyy-mm: %q", monthStr)
	}
	return t, nil
}

func FormatMonth(t time.Time) string {
	return t.Format(MonthLayout)
}

// Today truncates t to midnight UTC of its calendar day.
func Today(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FirstOfMonth returns midnight UTC on the first day of t's month.
func FirstOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in a given month
func DaysInMonth(year, month int) int {
	if month == 2 {
		if (year%4 == 0 && year%100 != 0) || (year%400 == 0) {
			return 29
		}
		return 28
	}
	if month == 4 || month == 6 || month == 9 || month == 11 {
		return 30
	}
	return 31
}

// AddMonths adds n calendar months to t. The day is clamped to the length of
// the target month, so Jan 31 + 1 month is the last day of February.
func AddMonths(t time.Time, n int) time.Time {
	total := int(t.Month()) - 1 + n
	year := t.Year() + total/12
	month := total % 12
	if month < 0 {
		month += 12
		year--
	}
	day := t.Day()
	if limit := DaysInMonth(year, month+1); day > limit {
		day = limit
	}
	return time.Date(year, time.Month(month+1), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// MonthsBetween counts whole calendar months from start to end.
// It returns 0 when end precedes start.
func MonthsBetween(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	for months > 0 && AddMonths(start, months).After(end) {
		months--
	}
	return months
}

// DaysBetween counts calendar days from start to end, negative if end is earlier.
func DaysBetween(start, end time.Time) int {
	return int(Today(end).Sub(Today(start)).Hours() / 24)
}

package dateutil

import (
	"fmt"
	"time"
)

// LayoutDMY is the day/month/year layout used for host output (en-GB)
const LayoutDMY = "02/01/2006"

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// Date returns a normalized calendar date in the local timezone.
// Out-of-range values are normalized the way time.Date does (month 13 = January next year).
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// FirstOfMonth returns the first day of the month containing date
func FirstOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// LastOfMonth returns the last day of the month containing date
func LastOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month()+1, 0, 0, 0, 0, 0, date.Location())
}

// DaysIn returns the number of days in the given month
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddDays moves date by n calendar days and keeps it at midnight
func AddDays(date time.Time, n int) time.Time {
	return StartOfDay(date).AddDate(0, 0, n)
}

// IsWeekday returns true if the date is Monday-Friday
func IsWeekday(date time.Time) bool {
	return !IsWeekend(date)
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// Compare orders two dates by calendar day only: -1, 0 or +1
func Compare(a, b time.Time) int {
	d := DaysBetween(b, a)
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	}
	return 0
}

// Before reports whether a is on an earlier calendar day than b
func Before(a, b time.Time) bool {
	return Compare(a, b) < 0
}

// DaysBetween returns the signed number of calendar days from a to b.
// Both dates are projected to UTC midnight first, so DST shifts never
// produce 23 or 25 hour days. Counts whole seconds rather than a
// time.Duration, which saturates after about 292 years.
func DaysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int((ub.Unix() - ua.Unix()) / 86400)
}

// FormatDMY formats date as day/month/year, e.g. 05/03/2024
func FormatDMY(date time.Time) string {
	return date.Format(LayoutDMY)
}

// FormatWith formats date using layout, falling back to LayoutDMY
func FormatWith(date time.Time, layout string) string {
	if layout == "" {
		layout = LayoutDMY
	}
	return date.Format(layout)
}

// ParseDate parses date string in various formats
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		"2006-01-02",
		"02/01/2006",
		"02.01.2006",
		"02/01/06",
	}

	for _, format := range formats {
		if t, err := time.ParseInLocation(format, dateStr, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", dateStr)
}

// Today returns today's date (start of day)
func Today() time.Time {
	return StartOfDay(time.Now())
}

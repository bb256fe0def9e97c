package calendar

import (
	"fmt"
	"time"

	"github.com/username/weekday-picker/pkg/dateutil"
)

// DayType represents the type of day
type DayType int

const (
	DayTypeWeekday DayType = iota + 1
	DayTypeWeekend
)

// String returns the label used in reports
func (t DayType) String() string {
	switch t {
	case DayTypeWeekday:
		return "Weekday"
	case DayTypeWeekend:
		return "Weekend"
	}
	return "Unknown"
}

// TypeOf returns the day type of date
func TypeOf(date time.Time) DayType {
	if dateutil.IsWeekend(date) {
		return DayTypeWeekend
	}
	return DayTypeWeekday
}

// DateRange is an ordered pair of calendar dates with Start <= End
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange normalizes both dates to midnight and swaps them if needed
func NewDateRange(a, b time.Time) DateRange {
	a, b = dateutil.StartOfDay(a), dateutil.StartOfDay(b)
	if dateutil.Before(b, a) {
		a, b = b, a
	}
	return DateRange{Start: a, End: b}
}

// Days returns the number of calendar days in the range, inclusive
func (r DateRange) Days() int {
	return dateutil.DaysBetween(r.Start, r.End) + 1
}

// Contains reports whether date falls in the range, inclusive
func (r DateRange) Contains(date time.Time) bool {
	return dateutil.Compare(date, r.Start) >= 0 && dateutil.Compare(date, r.End) <= 0
}

// Equal compares two ranges by calendar day
func (r DateRange) Equal(other DateRange) bool {
	return dateutil.IsSameDay(r.Start, other.Start) && dateutil.IsSameDay(r.End, other.End)
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s – %s", dateutil.FormatDMY(r.Start), dateutil.FormatDMY(r.End))
}

// Summary holds day counts for a range or a month
type Summary struct {
	Days     int
	Weekdays int
	Weekends int
}

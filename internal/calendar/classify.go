package calendar

import (
	"time"

	"github.com/username/weekday-picker/pkg/dateutil"
)

// Classify splits every calendar day in [start, end] into weekdays and
// weekends, both in ascending order. The caller guarantees start <= end;
// an inverted range yields two empty slices.
func Classify(start, end time.Time) (weekdays, weekends []time.Time) {
	weekdays = []time.Time{}
	weekends = []time.Time{}

	// Stepping by day count keeps zones whose DST starts at midnight from
	// dropping the last day.
	n := dateutil.DaysBetween(start, end)
	for i := 0; i <= n; i++ {
		d := dateutil.AddDays(start, i)
		if dateutil.IsWeekend(d) {
			weekends = append(weekends, d)
		} else {
			weekdays = append(weekdays, d)
		}
	}

	return weekdays, weekends
}

// Summarize counts the days of [start, end] without materializing them
func Summarize(start, end time.Time) Summary {
	days := dateutil.DaysBetween(start, end) + 1
	if days <= 0 {
		return Summary{}
	}

	// Full weeks contribute 5 + 2, the remainder is walked.
	s := Summary{Days: days}
	full := days / 7
	s.Weekdays = full * 5
	s.Weekends = full * 2

	d := dateutil.AddDays(start, full*7)
	for i := 0; i < days%7; i++ {
		if dateutil.IsWeekend(d) {
			s.Weekends++
		} else {
			s.Weekdays++
		}
		d = d.AddDate(0, 0, 1)
	}
	return s
}

// FormatDates renders dates with layout (day/month/year when empty)
func FormatDates(dates []time.Time, layout string) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = dateutil.FormatWith(d, layout)
	}
	return out
}

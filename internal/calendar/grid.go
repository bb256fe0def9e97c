package calendar

import (
	"time"

	"github.com/username/weekday-picker/pkg/dateutil"
)

// DaySlot is one cell of a month grid: either a date or leading padding.
// Column is the 0-6 weekday column, Sunday first.
type DaySlot struct {
	Date   time.Time
	Empty  bool
	Column int
}

// GenerateGrid lays out a month for a 7-column, Sunday-first grid. The
// first N slots are padding, N being the weekday index of the first day;
// the rest are the days 1..last in order. No trailing padding is added.
func GenerateGrid(firstDayOfMonth, lastDayOfMonth time.Time) []DaySlot {
	offset := int(firstDayOfMonth.Weekday())
	total := lastDayOfMonth.Day()

	slots := make([]DaySlot, 0, offset+total)
	for i := 0; i < offset; i++ {
		slots = append(slots, DaySlot{Empty: true, Column: i})
	}

	year, month, loc := firstDayOfMonth.Year(), firstDayOfMonth.Month(), firstDayOfMonth.Location()
	for day := 1; day <= total; day++ {
		slots = append(slots, DaySlot{
			Date:   time.Date(year, month, day, 0, 0, 0, 0, loc),
			Column: (offset + day - 1) % 7,
		})
	}

	return slots
}

// MonthGrid generates the grid for a month in the local timezone
func MonthGrid(year int, month time.Month) []DaySlot {
	first := dateutil.Date(year, month, 1)
	return GenerateGrid(first, dateutil.LastOfMonth(first))
}

// Weeks splits a grid into rows of seven; the last row may be shorter
func Weeks(slots []DaySlot) [][]DaySlot {
	rows := make([][]DaySlot, 0, (len(slots)+6)/7)
	for i := 0; i < len(slots); i += 7 {
		end := i + 7
		if end > len(slots) {
			end = len(slots)
		}
		rows = append(rows, slots[i:end])
	}
	return rows
}

// SummarizeMonth counts weekdays and weekends of a month
func SummarizeMonth(year int, month time.Month) Summary {
	first := dateutil.Date(year, month, 1)
	return Summarize(first, dateutil.LastOfMonth(first))
}

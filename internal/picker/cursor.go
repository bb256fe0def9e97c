package picker

import (
	"errors"
	"time"

	"github.com/username/weekday-picker/pkg/dateutil"
)

var (
	// ErrInvalidMonth is returned for month indexes outside 0-11
	ErrInvalidMonth = errors.New("month must be between 0 and 11")
	// ErrYearOutOfWindow is returned for years the pane's selector does not offer
	ErrYearOutOfWindow = errors.New("year is outside the pane's year window")
)

// MonthCursor is the month shown by one pane. Month is 0-based (0 = January).
type MonthCursor struct {
	Month int
	Year  int
}

// CursorFor returns the cursor of the month containing t
func CursorFor(t time.Time) MonthCursor {
	return MonthCursor{Month: int(t.Month()) - 1, Year: t.Year()}
}

// First returns the 1st day of the cursor's month
func (c MonthCursor) First() time.Time {
	return dateutil.Date(c.Year, time.Month(c.Month+1), 1)
}

// Last returns the last day of the cursor's month
func (c MonthCursor) Last() time.Time {
	return dateutil.LastOfMonth(c.First())
}

// Shift moves the cursor by n months, carrying into the year
func (c MonthCursor) Shift(n int) MonthCursor {
	total := c.Year*12 + c.Month + n
	year, month := total/12, total%12
	if month < 0 {
		month += 12
		year--
	}
	return MonthCursor{Month: month, Year: year}
}

// Title is the pane header, e.g. "March 2024"
func (c MonthCursor) Title() string {
	return c.First().Format("January 2006")
}

// YearWindow is the inclusive range of years a pane's year selector offers
type YearWindow struct {
	First int
	Last  int
}

// Contains reports whether year is offered
func (w YearWindow) Contains(year int) bool {
	return year >= w.First && year <= w.Last
}

// Years lists the offered years in ascending order
func (w YearWindow) Years() []int {
	if w.Last < w.First {
		return nil
	}
	years := make([]int, 0, w.Last-w.First+1)
	for y := w.First; y <= w.Last; y++ {
		years = append(years, y)
	}
	return years
}

// Clamp moves year into the window
func (w YearWindow) Clamp(year int) int {
	if year < w.First {
		return w.First
	}
	if year > w.Last {
		return w.Last
	}
	return year
}

func validMonth(month int) error {
	if month < 0 || month > 11 {
		return ErrInvalidMonth
	}
	return nil
}

package picker

import (
	"fmt"
	"time"

	"github.com/username/weekday-picker/internal/calendar"
	"github.com/username/weekday-picker/pkg/dateutil"
)

// Pane identifies one of the two month panes
type Pane int

const (
	CurrentPane Pane = iota
	NextPane
)

func (p Pane) String() string {
	if p == NextPane {
		return "next"
	}
	return "current"
}

// Cell is one grid slot of a pane together with its display flags
type Cell struct {
	Date   time.Time
	Empty  bool
	Column int

	Weekend  bool
	Preview  bool
	Endpoint bool
	InRange  bool
	Today    bool
	// OtherMonth marks next-pane days outside the pane's month, shown dimmed
	OtherMonth bool
}

// PaneView is everything needed to draw one pane
type PaneView struct {
	Pane    Pane
	Cursor  MonthCursor
	Title   string
	Years   []int
	Summary calendar.Summary
	Cells   []Cell
}

// Rows splits the cells into calendar weeks
func (v PaneView) Rows() [][]Cell {
	var rows [][]Cell
	for i := 0; i < len(v.Cells); i += 7 {
		end := i + 7
		if end > len(v.Cells) {
			end = len(v.Cells)
		}
		rows = append(rows, v.Cells[i:end])
	}
	return rows
}

// Cursor returns the month shown by pane p
func (c *Controller) Cursor(p Pane) MonthCursor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.cursorLocked(p)
}

// Window returns the years offered by pane p's year selector
func (c *Controller) Window(p Pane) YearWindow {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.windowLocked(p)
}

func (c *Controller) cursorLocked(p Pane) *MonthCursor {
	if p == NextPane {
		return &c.next
	}
	return &c.current
}

func (c *Controller) windowLocked(p Pane) YearWindow {
	if p == NextPane {
		return c.nextWindow
	}
	return c.currentWindow
}

// SetCurrentMonth selects the current pane's month (0-11)
func (c *Controller) SetCurrentMonth(month int) error {
	return c.setMonth(CurrentPane, month)
}

// SetCurrentYear selects the current pane's year
func (c *Controller) SetCurrentYear(year int) error {
	return c.setYear(CurrentPane, year)
}

// SetNextMonth selects the next pane's month (0-11)
func (c *Controller) SetNextMonth(month int) error {
	return c.setMonth(NextPane, month)
}

// SetNextYear selects the next pane's year
func (c *Controller) SetNextYear(year int) error {
	return c.setYear(NextPane, year)
}

func (c *Controller) setMonth(p Pane, month int) error {
	if err := validMonth(month); err != nil {
		return fmt.Errorf("%s pane: %w", p, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cursorLocked(p).Month = month
	return nil
}

func (c *Controller) setYear(p Pane, year int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if w := c.windowLocked(p); !w.Contains(year) {
		return fmt.Errorf("%s pane year %d not in %d-%d: %w", p, year, w.First, w.Last, ErrYearOutOfWindow)
	}
	c.cursorLocked(p).Year = year
	return nil
}

// ShiftMonth moves pane p by n months. Moving past either end of the pane's
// year window fails and leaves the cursor unchanged.
func (c *Controller) ShiftMonth(p Pane, n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur := c.cursorLocked(p)
	moved := cur.Shift(n)
	if w := c.windowLocked(p); !w.Contains(moved.Year) {
		return fmt.Errorf("%s pane year %d not in %d-%d: %w", p, moved.Year, w.First, w.Last, ErrYearOutOfWindow)
	}
	*cur = moved
	return nil
}

// ShiftYear moves pane p by n years
func (c *Controller) ShiftYear(p Pane, n int) error {
	return c.ShiftMonth(p, 12*n)
}

// Pane projects pane p for rendering
func (c *Controller) Pane(p Pane) PaneView {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur := *c.cursorLocked(p)
	today := c.clock()
	first, last := cur.First(), cur.Last()

	slots := calendar.GenerateGrid(first, last)
	cells := make([]Cell, len(slots))
	for i, s := range slots {
		cell := Cell{Date: s.Date, Empty: s.Empty, Column: s.Column}
		if !s.Empty {
			cell.Weekend = dateutil.IsWeekend(s.Date)
			cell.Preview = c.sel.InPreview(s.Date)
			cell.Endpoint = c.sel.IsEndpoint(s.Date)
			cell.InRange = c.sel.InRange(s.Date)
			cell.Today = dateutil.IsSameDay(s.Date, today)
			cell.OtherMonth = p == NextPane && int(s.Date.Month())-1 != cur.Month
		}
		cells[i] = cell
	}

	return PaneView{
		Pane:    p,
		Cursor:  cur,
		Title:   cur.Title(),
		Years:   c.windowLocked(p).Years(),
		Summary: calendar.Summarize(first, last),
		Cells:   cells,
	}
}

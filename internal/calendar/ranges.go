package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/username/weekday-picker/pkg/dateutil"
)

// Clock returns the current wall-clock time
type Clock func() time.Time

// SystemClock is the default Clock
func SystemClock() time.Time {
	return time.Now()
}

// MergePolicy decides how host-supplied ranges combine with the fixed catalog
type MergePolicy string

const (
	MergeAppend  MergePolicy = "append"
	MergeReplace MergePolicy = "replace"
)

// PredefinedRange is a named shortcut resolved against "now" each time it is used
type PredefinedRange struct {
	Label   string
	resolve func(today time.Time) DateRange
}

// Resolve returns the concrete range for the calendar day of now
func (p PredefinedRange) Resolve(now time.Time) DateRange {
	return p.resolve(dateutil.StartOfDay(now))
}

// ResolvedRange is a predefined range evaluated at a given moment
type ResolvedRange struct {
	Label string
	Range DateRange
}

// FixedRange builds a host-supplied entry that ignores "now".
// An empty label is replaced by the formatted dates.
func FixedRange(label string, start, end time.Time) PredefinedRange {
	r := NewDateRange(start, end)
	if label == "" {
		label = r.String()
	}
	return PredefinedRange{
		Label:   label,
		resolve: func(time.Time) DateRange { return r },
	}
}

func relative(label string, fn func(today time.Time) (time.Time, time.Time)) PredefinedRange {
	return PredefinedRange{
		Label: label,
		resolve: func(today time.Time) DateRange {
			start, end := fn(today)
			return DateRange{Start: start, End: end}
		},
	}
}

// DefaultRanges returns the fixed catalog in display order
func DefaultRanges() []PredefinedRange {
	return []PredefinedRange{
		relative("Today", func(t time.Time) (time.Time, time.Time) {
			return t, t
		}),
		relative("Yesterday", func(t time.Time) (time.Time, time.Time) {
			y := dateutil.AddDays(t, -1)
			return y, y
		}),
		relative("Last 7 Days", func(t time.Time) (time.Time, time.Time) {
			return dateutil.AddDays(t, -7), t
		}),
		relative("Last 30 Days", func(t time.Time) (time.Time, time.Time) {
			return dateutil.AddDays(t, -30), t
		}),
		relative("This Month", func(t time.Time) (time.Time, time.Time) {
			return dateutil.FirstOfMonth(t), dateutil.LastOfMonth(t)
		}),
		relative("Last Month", func(t time.Time) (time.Time, time.Time) {
			first := time.Date(t.Year(), t.Month()-1, 1, 0, 0, 0, 0, t.Location())
			return first, dateutil.LastOfMonth(first)
		}),
		relative("This Year", func(t time.Time) (time.Time, time.Time) {
			return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location()), t
		}),
		relative("Last Year", func(t time.Time) (time.Time, time.Time) {
			return time.Date(t.Year()-1, time.January, 1, 0, 0, 0, 0, t.Location()),
				time.Date(t.Year()-1, time.December, 31, 0, 0, 0, 0, t.Location())
		}),
		relative("All Time", func(t time.Time) (time.Time, time.Time) {
			return time.Date(1970, time.January, 1, 0, 0, 0, 0, t.Location()), t
		}),
	}
}

// Catalog is the list of predefined ranges shown by the picker
type Catalog struct {
	entries []PredefinedRange
	clock   Clock
}

// NewCatalog combines the fixed catalog with host ranges according to policy.
// With no host ranges the fixed catalog is always used.
func NewCatalog(clock Clock, custom []PredefinedRange, policy MergePolicy) *Catalog {
	if clock == nil {
		clock = SystemClock
	}

	var entries []PredefinedRange
	switch {
	case len(custom) == 0:
		entries = DefaultRanges()
	case policy == MergeReplace:
		entries = append(entries, custom...)
	default:
		entries = append(DefaultRanges(), custom...)
	}

	return &Catalog{entries: entries, clock: clock}
}

// Len returns the number of entries
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Labels returns entry labels in display order
func (c *Catalog) Labels() []string {
	labels := make([]string, len(c.entries))
	for i, e := range c.entries {
		labels[i] = e.Label
	}
	return labels
}

// Resolve evaluates every entry against the clock. Calling it on two
// different days yields ranges for each of those days.
func (c *Catalog) Resolve() []ResolvedRange {
	now := c.clock()
	out := make([]ResolvedRange, len(c.entries))
	for i, e := range c.entries {
		out[i] = ResolvedRange{Label: e.Label, Range: e.Resolve(now)}
	}
	return out
}

// At resolves the entry at index i
func (c *Catalog) At(i int) (ResolvedRange, error) {
	if i < 0 || i >= len(c.entries) {
		return ResolvedRange{}, fmt.Errorf("predefined range %d out of bounds (0-%d)", i, len(c.entries)-1)
	}
	e := c.entries[i]
	return ResolvedRange{Label: e.Label, Range: e.Resolve(c.clock())}, nil
}

// Lookup finds an entry by case-insensitive label or by 1-based position
func (c *Catalog) Lookup(key string) (int, error) {
	key = strings.TrimSpace(key)
	for i, e := range c.entries {
		if strings.EqualFold(e.Label, key) {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(c.entries) {
		return n - 1, nil
	}
	return -1, fmt.Errorf("unknown predefined range %q", key)
}

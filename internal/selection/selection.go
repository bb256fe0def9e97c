// Package selection tracks a date-range selection driven by day clicks and
// hovers: Empty, then StartOnly after the first click, then Complete after
// the second. Clicking while Complete starts over.
package selection

import (
	"time"

	"go.uber.org/zap"

	"github.com/username/weekday-picker/internal/calendar"
	"github.com/username/weekday-picker/pkg/dateutil"
)

// Kind is the selection state
type Kind int

const (
	Empty Kind = iota
	StartOnly
	Complete
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case StartOnly:
		return "start-only"
	case Complete:
		return "complete"
	}
	return "unknown"
}

// State is a snapshot of the selection. End is zero unless Kind is Complete.
type State struct {
	Kind  Kind
	Start time.Time
	End   time.Time
}

// DefaultHoverLimitDays bounds the hover preview to about five years either
// side of the start date.
const DefaultHoverLimitDays = 5 * 365

// Machine is the selection state machine plus the transient hover preview.
// It is not safe for concurrent use; the owner serializes calls.
type Machine struct {
	state      State
	hoverLimit int
	logger     *zap.Logger

	previewing bool
	hovered    time.Time
}

// New creates an Empty machine. hoverLimitDays <= 0 selects the default.
func New(hoverLimitDays int, logger *zap.Logger) *Machine {
	if hoverLimitDays <= 0 {
		hoverLimitDays = DefaultHoverLimitDays
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Machine{hoverLimit: hoverLimitDays, logger: logger}
}

// State returns the current state
func (m *Machine) State() State {
	return m.state
}

// Start returns the start date, if one is selected
func (m *Machine) Start() (time.Time, bool) {
	return m.state.Start, m.state.Kind != Empty
}

// End returns the end date of a complete selection
func (m *Machine) End() (time.Time, bool) {
	return m.state.End, m.state.Kind == Complete
}

// Click applies a day click.
//
//	Empty / Complete -> StartOnly(d)
//	StartOnly(s)     -> Complete(min(s, d), max(s, d))
func (m *Machine) Click(d time.Time) State {
	d = dateutil.StartOfDay(d)
	m.clearPreview()

	switch m.state.Kind {
	case StartOnly:
		s := m.state.Start
		if dateutil.Before(d, s) {
			m.state = State{Kind: Complete, Start: d, End: s}
		} else {
			m.state = State{Kind: Complete, Start: s, End: d}
		}
	default:
		m.state = State{Kind: StartOnly, Start: d}
	}

	m.logger.Debug("Selection changed",
		zap.Stringer("state", m.state.Kind),
		zap.Time("start", m.state.Start),
		zap.Time("end", m.state.End))

	return m.state
}

// Set replaces the selection with a complete range, swapping if needed
func (m *Machine) Set(start, end time.Time) State {
	r := calendar.NewDateRange(start, end)
	m.clearPreview()
	m.state = State{Kind: Complete, Start: r.Start, End: r.End}
	return m.state
}

// Reset returns to Empty and clears the preview
func (m *Machine) Reset() {
	m.state = State{}
	m.clearPreview()
}

// Hover previews the span from the start date to h. It only applies in
// StartOnly; candidates further than the hover limit from the start are
// rejected and leave the preview untouched. Reports whether the preview
// was updated.
func (m *Machine) Hover(h time.Time) bool {
	if m.state.Kind != StartOnly {
		return false
	}

	h = dateutil.StartOfDay(h)
	distance := dateutil.DaysBetween(m.state.Start, h)
	if distance > m.hoverLimit || distance < -m.hoverLimit {
		m.logger.Debug("Hovered date is out of the valid range",
			zap.Time("start", m.state.Start),
			zap.Time("hovered", h),
			zap.Int("days", distance))
		return false
	}

	m.previewing = true
	m.hovered = h
	return true
}

// Leave clears the hover preview (pointer left a day cell)
func (m *Machine) Leave() {
	m.clearPreview()
}

func (m *Machine) clearPreview() {
	m.previewing = false
	m.hovered = time.Time{}
}

// Preview returns every day from the start date towards the hovered date,
// both included. It is descending when the hovered date precedes the start.
func (m *Machine) Preview() []time.Time {
	if !m.previewing {
		return nil
	}

	s := m.state.Start
	n := dateutil.DaysBetween(s, m.hovered)
	step := 1
	if n < 0 {
		step, n = -1, -n
	}

	days := make([]time.Time, 0, n+1)
	for i := 0; i <= n; i++ {
		days = append(days, dateutil.AddDays(s, i*step))
	}
	return days
}

// InPreview reports whether d is part of the current hover preview
func (m *Machine) InPreview(d time.Time) bool {
	if !m.previewing {
		return false
	}
	return calendar.NewDateRange(m.state.Start, m.hovered).Contains(d)
}

// Range returns the finalized range when the selection is Complete
func (m *Machine) Range() (calendar.DateRange, bool) {
	if m.state.Kind != Complete {
		return calendar.DateRange{}, false
	}
	return calendar.DateRange{Start: m.state.Start, End: m.state.End}, true
}

// IsEndpoint reports whether d is the selected start or end date
func (m *Machine) IsEndpoint(d time.Time) bool {
	switch m.state.Kind {
	case StartOnly:
		return dateutil.IsSameDay(d, m.state.Start)
	case Complete:
		return dateutil.IsSameDay(d, m.state.Start) || dateutil.IsSameDay(d, m.state.End)
	}
	return false
}

// InRange reports whether d lies strictly between the endpoints of a
// complete selection and is not a weekend.
func (m *Machine) InRange(d time.Time) bool {
	if m.state.Kind != Complete || dateutil.IsWeekend(d) {
		return false
	}
	return dateutil.Before(m.state.Start, d) && dateutil.Before(d, m.state.End)
}

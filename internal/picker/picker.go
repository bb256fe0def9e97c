// Package picker implements the weekday/weekend date-range picker: two month
// panes, a range selection driven by clicks and hovers, predefined ranges and
// host notification with the classified days of the chosen range.
//
// The Controller owns all mutable state. Views are pure projections of it
// (see Pane, StartText, EndText), so any front end (terminal, tray, tests)
// can drive it through the same operations.
package picker

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/username/weekday-picker/internal/calendar"
	"github.com/username/weekday-picker/internal/selection"
	"github.com/username/weekday-picker/pkg/dateutil"
)

const (
	// DefaultDismissDelay is the fade-out time between an outside
	// interaction and the calendar being hidden
	DefaultDismissDelay = 300 * time.Millisecond

	DefaultPastYears     = 10
	DefaultFutureYears   = 1
	DefaultNextPaneYears = 20

	// Placeholder is shown by an input field with no date
	Placeholder = "DD/MM/YY"
)

// Timer is a pending one-shot callback
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. f must not run before AfterFunc returns.
// Front ends with their own event loop supply one that delivers f on that
// loop.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Emission is what the host receives for a confirmed range
type Emission struct {
	Label    string
	Range    calendar.DateRange
	Weekdays []string
	Weekends []string
}

// Options configures a Controller. Zero values select defaults, except
// FutureYears where zero offers no year after the current one.
type Options struct {
	Clock     calendar.Clock
	Catalog   *calendar.Catalog
	Events    *Events
	Scheduler Scheduler

	DismissDelay   time.Duration
	HoverLimitDays int
	PastYears      int
	FutureYears    int
	NextPaneYears  int

	// DateFormat is the Go layout used for emitted dates and the input fields
	DateFormat string

	// OnChange is the host callback: weekday and weekend dates of the range
	OnChange func(weekdays, weekends []string)
	// OnEmit receives the same notification with its label and range
	OnEmit func(Emission)
}

// Controller is the picker state: visibility, both month cursors, the
// range selection and the pending dismissals. It is safe for concurrent use;
// host callbacks are invoked without holding its lock.
type Controller struct {
	mu sync.Mutex

	clock     calendar.Clock
	catalog   *calendar.Catalog
	events    *Events
	scheduler Scheduler
	logger    *zap.Logger

	dismissDelay time.Duration
	dateFormat   string
	onChange     func(weekdays, weekends []string)
	onEmit       func(Emission)

	sel *selection.Machine

	visible    bool
	dismissing bool
	picked     bool
	closed     bool
	release    func()
	pending    map[int]Timer
	nextTimer  int

	anchor        time.Time
	current       MonthCursor
	next          MonthCursor
	currentWindow YearWindow
	nextWindow    YearWindow
}

// New creates a closed picker. The year windows are fixed from the clock at
// construction.
func New(opts Options, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = calendar.SystemClock
	}
	if opts.Catalog == nil {
		opts.Catalog = calendar.NewCatalog(opts.Clock, nil, calendar.MergeAppend)
	}
	if opts.Scheduler == nil {
		opts.Scheduler = systemScheduler{}
	}
	if opts.DismissDelay <= 0 {
		opts.DismissDelay = DefaultDismissDelay
	}
	if opts.PastYears <= 0 {
		opts.PastYears = DefaultPastYears
	}
	if opts.FutureYears < 0 {
		opts.FutureYears = DefaultFutureYears
	}
	if opts.NextPaneYears <= 0 {
		opts.NextPaneYears = DefaultNextPaneYears
	}
	if opts.DateFormat == "" {
		opts.DateFormat = dateutil.LayoutDMY
	}

	now := opts.Clock()
	year := now.Year()

	c := &Controller{
		clock:        opts.Clock,
		catalog:      opts.Catalog,
		events:       opts.Events,
		scheduler:    opts.Scheduler,
		logger:       logger,
		dismissDelay: opts.DismissDelay,
		dateFormat:   opts.DateFormat,
		onChange:     opts.OnChange,
		onEmit:       opts.OnEmit,
		sel:          selection.New(opts.HoverLimitDays, logger),
		pending:      make(map[int]Timer),
		anchor:       dateutil.StartOfDay(now),
		currentWindow: YearWindow{
			First: year - opts.PastYears,
			Last:  year + opts.FutureYears,
		},
		nextWindow: YearWindow{
			First: year,
			Last:  year + opts.NextPaneYears,
		},
	}
	c.resetCursors()

	return c
}

// Visible reports whether the calendar is shown
func (c *Controller) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

// Dismissing reports whether a fade-out is in progress
func (c *Controller) Dismissing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dismissing
}

// Open shows the calendar, as focusing either input field does. Opening
// after a pick starts from a fresh selection.
func (c *Controller) Open() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.visible {
		return
	}
	if c.picked {
		c.resetLocked()
		c.picked = false
	}

	c.visible = true
	if c.events != nil && c.release == nil {
		c.release = c.events.Subscribe(c.OutsideInteraction)
	}
	c.logger.Debug("Picker opened")
}

// OutsideInteraction starts the fade-out. Once the dismissal delay has
// passed the calendar is hidden and the selection reset. Every call
// schedules its own dismissal; pending ones are neither restarted nor
// merged.
func (c *Controller) OutsideInteraction() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.visible {
		return
	}

	c.dismissing = true
	id := c.nextTimer
	c.nextTimer++
	c.pending[id] = c.scheduler.AfterFunc(c.dismissDelay, func() {
		c.dismiss(id)
	})

	c.logger.Debug("Dismissal scheduled",
		zap.Duration("delay", c.dismissDelay),
		zap.Int("pending", len(c.pending)))
}

func (c *Controller) dismiss(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.pending[id]; !ok {
		return
	}
	delete(c.pending, id)
	if c.closed {
		return
	}

	c.hideLocked()
	c.dismissing = false
	c.resetLocked()
	c.logger.Debug("Picker dismissed")
}

// Close tears the controller down: the outside-interaction subscription is
// released and pending dismissals are stopped. No callback fires afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	for id, t := range c.pending {
		t.Stop()
		delete(c.pending, id)
	}
	c.hideLocked()
	c.dismissing = false
}

func (c *Controller) hideLocked() {
	c.visible = false
	if c.release != nil {
		c.release()
		c.release = nil
	}
}

// Click applies a day click to the selection
func (c *Controller) Click(d time.Time) selection.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel.Click(d)
}

// Hover previews the span from the selected start to d.
// Reports whether the preview changed.
func (c *Controller) Hover(d time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel.Hover(d)
}

// Leave clears the hover preview
func (c *Controller) Leave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sel.Leave()
}

// Selection returns a snapshot of the selection
func (c *Controller) Selection() selection.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel.State()
}

// Pick confirms the selection. The host is notified only for a complete
// range; the calendar closes either way. The bool reports whether it emitted.
func (c *Controller) Pick() (Emission, bool) {
	c.mu.Lock()

	var em Emission
	r, complete := c.sel.Range()
	if complete {
		em = c.classify("", r)
	} else {
		c.logger.Debug("Pick without a complete range")
	}
	c.hideLocked()
	c.picked = true

	c.mu.Unlock()

	if !complete {
		return Emission{}, false
	}
	c.notify(em)
	return em, true
}

// SelectPredefined replaces the selection with catalog entry i, moves the
// displayed anchor to the first of its start month and notifies the host
// right away.
func (c *Controller) SelectPredefined(i int) (Emission, error) {
	c.mu.Lock()

	rr, err := c.catalog.At(i)
	if err != nil {
		c.mu.Unlock()
		return Emission{}, fmt.Errorf("failed to select predefined range: %w", err)
	}

	c.sel.Set(rr.Range.Start, rr.Range.End)
	c.anchor = dateutil.FirstOfMonth(rr.Range.Start)
	em := c.classify(rr.Label, rr.Range)

	c.mu.Unlock()

	c.notify(em)
	return em, nil
}

// Reset clears the selection, points both panes at the displayed anchor and
// moves the anchor back to today.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Controller) resetLocked() {
	c.sel.Reset()
	c.resetCursors()
	c.anchor = dateutil.StartOfDay(c.clock())
}

func (c *Controller) resetCursors() {
	cur := CursorFor(c.anchor)
	cur.Year = c.currentWindow.Clamp(cur.Year)
	c.current = cur

	next := cur.Shift(1)
	next.Year = c.nextWindow.Clamp(next.Year)
	c.next = next
}

func (c *Controller) classify(label string, r calendar.DateRange) Emission {
	weekdays, weekends := calendar.Classify(r.Start, r.End)
	em := Emission{
		Label:    label,
		Range:    r,
		Weekdays: calendar.FormatDates(weekdays, c.dateFormat),
		Weekends: calendar.FormatDates(weekends, c.dateFormat),
	}

	c.logger.Info("Range confirmed",
		zap.String("label", label),
		zap.Time("start", r.Start),
		zap.Time("end", r.End),
		zap.Int("weekdays", len(em.Weekdays)),
		zap.Int("weekends", len(em.Weekends)))

	return em
}

func (c *Controller) notify(em Emission) {
	if c.onChange != nil {
		c.onChange(em.Weekdays, em.Weekends)
	}
	if c.onEmit != nil {
		c.onEmit(em)
	}
}

// Today returns the current calendar day
func (c *Controller) Today() time.Time {
	return dateutil.StartOfDay(c.clock())
}

// Lookup finds a predefined range by label or 1-based position
func (c *Controller) Lookup(key string) (int, error) {
	return c.catalog.Lookup(key)
}

// Ranges resolves the predefined ranges against the current date
func (c *Controller) Ranges() []calendar.ResolvedRange {
	return c.catalog.Resolve()
}

// StartText is the content of the Start Date field
func (c *Controller) StartText() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.sel.Start(); ok {
		return dateutil.FormatWith(s, c.dateFormat)
	}
	return Placeholder
}

// EndText is the content of the End Date field
func (c *Controller) EndText() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.sel.End(); ok {
		return dateutil.FormatWith(e, c.dateFormat)
	}
	return Placeholder
}

package picker

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/username/weekday-picker/internal/calendar"
	"github.com/username/weekday-picker/internal/selection"
	"github.com/username/weekday-picker/pkg/dateutil"
)

type fakeTimer struct {
	f       func()
	delay   time.Duration
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	wasPending := !t.stopped && !t.fired
	t.stopped = true
	return wasPending
}

type fakeScheduler struct {
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{f: f, delay: d}
	s.timers = append(s.timers, t)
	return t
}

// fire runs every pending timer in scheduling order
func (s *fakeScheduler) fire() int {
	n := 0
	for _, t := range s.timers {
		if t.stopped || t.fired {
			continue
		}
		t.fired = true
		t.f()
		n++
	}
	return n
}

type recorder struct {
	weekdays [][]string
	weekends [][]string
	emitted  []Emission
}

func (r *recorder) onChange(weekdays, weekends []string) {
	r.weekdays = append(r.weekdays, weekdays)
	r.weekends = append(r.weekends, weekends)
}

func (r *recorder) onEmit(e Emission) {
	r.emitted = append(r.emitted, e)
}

type fixture struct {
	ctrl   *Controller
	sched  *fakeScheduler
	events *Events
	rec    *recorder
	now    *time.Time
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	f := &fixture{
		sched:  &fakeScheduler{},
		events: NewEvents(),
		rec:    &recorder{},
		now:    &now,
	}
	clock := func() time.Time { return *f.now }

	f.ctrl = New(Options{
		Clock:       clock,
		Catalog:     calendar.NewCatalog(clock, nil, calendar.MergeAppend),
		Events:      f.events,
		Scheduler:   f.sched,
		FutureYears: DefaultFutureYears,
		OnChange:    f.rec.onChange,
		OnEmit:      f.rec.onEmit,
	}, zap.NewNop())
	t.Cleanup(f.ctrl.Close)

	return f
}

func TestController_PickEmitsClassifiedRange(t *testing.T) {
	f := newFixture(t, time.Date(2024, 3, 20, 10, 0, 0, 0, time.Local))

	f.ctrl.Open()
	f.ctrl.Click(dateutil.Date(2024, 3, 10)) // Sunday
	f.ctrl.Click(dateutil.Date(2024, 3, 1))  // Friday

	if _, ok := f.ctrl.Pick(); !ok {
		t.Fatal("Pick() ok = false, want emission")
	}
	if f.ctrl.Visible() {
		t.Error("Visible() = true after Pick()")
	}

	if len(f.rec.weekdays) != 1 {
		t.Fatalf("OnChange called %d times, want 1", len(f.rec.weekdays))
	}

	wantWeekdays := []string{"01/03/2024", "04/03/2024", "05/03/2024", "06/03/2024", "07/03/2024", "08/03/2024"}
	wantWeekends := []string{"02/03/2024", "03/03/2024", "09/03/2024", "10/03/2024"}
	if !equalStrings(f.rec.weekdays[0], wantWeekdays) {
		t.Errorf("weekdays = %v, want %v", f.rec.weekdays[0], wantWeekdays)
	}
	if !equalStrings(f.rec.weekends[0], wantWeekends) {
		t.Errorf("weekends = %v, want %v", f.rec.weekends[0], wantWeekends)
	}

	em := f.rec.emitted[0]
	if em.Label != "" || em.Range.Days() != 10 {
		t.Errorf("Emission = %+v, want unlabeled 10-day range", em)
	}
}

func TestController_PickWithoutCompleteRange(t *testing.T) {
	tests := []struct {
		name   string
		clicks []time.Time
	}{
		{"empty", nil},
		{"start only", []time.Time{dateutil.Date(2024, 3, 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, time.Date(2024, 3, 20, 10, 0, 0, 0, time.Local))
			f.ctrl.Open()
			for _, d := range tt.clicks {
				f.ctrl.Click(d)
			}

			if _, ok := f.ctrl.Pick(); ok {
				t.Error("Pick() ok = true, want no emission")
			}
			if f.ctrl.Visible() {
				t.Error("Visible() = true after Pick()")
			}
			if len(f.rec.emitted) != 0 {
				t.Errorf("emitted %d times, want 0", len(f.rec.emitted))
			}
		})
	}
}

func TestController_ReopenAfterPickStartsFresh(t *testing.T) {
	f := newFixture(t, time.Date(2024, 3, 20, 10, 0, 0, 0, time.Local))
	f.ctrl.Open()
	f.ctrl.Click(dateutil.Date(2024, 3, 1))
	f.ctrl.Click(dateutil.Date(2024, 3, 5))
	f.ctrl.Pick()

	if got := f.ctrl.StartText(); got != "01/03/2024" {
		t.Errorf("StartText() after Pick() = %q, want 01/03/2024", got)
	}

	f.ctrl.Open()
	if got := f.ctrl.Selection().Kind; got != selection.Empty {
		t.Errorf("Selection() after reopening = %v, want empty", got)
	}
}

func TestController_SelectPredefinedThisYear(t *testing.T) {
	f := newFixture(t, time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local))
	f.ctrl.Open()

	idx, err := f.ctrl.catalog.Lookup("This Year")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}

	em, err := f.ctrl.SelectPredefined(idx)
	if err != nil {
		t.Fatalf("SelectPredefined() error = %v", err)
	}

	want := calendar.DateRange{Start: dateutil.Date(2025, 1, 1), End: dateutil.Date(2025, 6, 15)}
	if !em.Range.Equal(want) {
		t.Errorf("range = %v, want %v", em.Range, want)
	}
	if em.Label != "This Year" {
		t.Errorf("label = %q, want This Year", em.Label)
	}

	// emitted immediately, no Pick needed
	if len(f.rec.emitted) != 1 {
		t.Fatalf("emitted %d times, want 1", len(f.rec.emitted))
	}
	sum := calendar.Summarize(want.Start, want.End)
	if len(em.Weekdays) != sum.Weekdays || len(em.Weekends) != sum.Weekends {
		t.Errorf("emitted %d/%d, want %d/%d", len(em.Weekdays), len(em.Weekends), sum.Weekdays, sum.Weekends)
	}
	if em.Weekdays[0] != "01/01/2025" || em.Weekends[len(em.Weekends)-1] != "15/06/2025" {
		t.Errorf("first weekday %q, last weekend %q", em.Weekdays[0], em.Weekends[len(em.Weekends)-1])
	}

	st := f.ctrl.Selection()
	if st.Kind != selection.Complete || !st.Start.Equal(want.Start) || !st.End.Equal(want.End) {
		t.Errorf("Selection() = %+v, want complete %v", st, want)
	}
	if !f.ctrl.Visible() {
		t.Error("Visible() = false, predefined selection keeps the calendar open")
	}
}

func TestController_SelectPredefinedOutOfBounds(t *testing.T) {
	f := newFixture(t, time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local))
	if _, err := f.ctrl.SelectPredefined(9); err == nil {
		t.Error("SelectPredefined(9) expected error, got nil")
	}
	if len(f.rec.emitted) != 0 {
		t.Errorf("emitted %d times, want 0", len(f.rec.emitted))
	}
}

func TestController_ResetUsesAnchor(t *testing.T) {
	f := newFixture(t, time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local))

	idx, _ := f.ctrl.catalog.Lookup("Last Year")
	if _, err := f.ctrl.SelectPredefined(idx); err != nil {
		t.Fatalf("SelectPredefined() error = %v", err)
	}

	f.ctrl.Reset()
	if got := f.ctrl.Selection().Kind; got != selection.Empty {
		t.Errorf("Selection() = %v, want empty", got)
	}
	if got, want := f.ctrl.Cursor(CurrentPane), (MonthCursor{Month: 0, Year: 2024}); got != want {
		t.Errorf("current cursor after first Reset() = %+v, want %+v", got, want)
	}
	// next pane cannot go before the mount year
	if got, want := f.ctrl.Cursor(NextPane), (MonthCursor{Month: 1, Year: 2025}); got != want {
		t.Errorf("next cursor after first Reset() = %+v, want %+v", got, want)
	}

	f.ctrl.Reset()
	if got, want := f.ctrl.Cursor(CurrentPane), (MonthCursor{Month: 5, Year: 2025}); got != want {
		t.Errorf("current cursor after second Reset() = %+v, want %+v", got, want)
	}
	if got, want := f.ctrl.Cursor(NextPane), (MonthCursor{Month: 6, Year: 2025}); got != want {
		t.Errorf("next cursor after second Reset() = %+v, want %+v", got, want)
	}
}

func TestController_OutsideInteractionDismisses(t *testing.T) {
	f := newFixture(t, time.Date(2024, 3, 20, 10, 0, 0, 0, time.Local))

	f.ctrl.Open()
	if f.events.Len() != 1 {
		t.Fatalf("subscriptions after Open() = %d, want 1", f.events.Len())
	}
	f.ctrl.Click(dateutil.Date(2024, 3, 4))

	f.events.Publish()
	if !f.ctrl.Dismissing() || !f.ctrl.Visible() {
		t.Fatal("outside interaction should start the fade-out without hiding yet")
	}
	if len(f.sched.timers) != 1 || f.sched.timers[0].delay != DefaultDismissDelay {
		t.Fatalf("scheduled %+v, want one timer of %v", f.sched.timers, DefaultDismissDelay)
	}

	f.sched.fire()

	if f.ctrl.Visible() || f.ctrl.Dismissing() {
		t.Error("calendar still shown after dismissal")
	}
	if got := f.ctrl.Selection().Kind; got != selection.Empty {
		t.Errorf("Selection() after dismissal = %v, want empty", got)
	}
	if f.events.Len() != 0 {
		t.Errorf("subscriptions after dismissal = %d, want 0", f.events.Len())
	}
	if len(f.rec.emitted) != 0 {
		t.Error("dismissal must not notify the host")
	}
}

func TestController_OutsideInteractionWhileClosedIsIgnored(t *testing.T) {
	f := newFixture(t, time.Date(2024, 3, 20, 10, 0, 0, 0, time.Local))
	f.ctrl.OutsideInteraction()
	f.events.Publish()
	if len(f.sched.timers) != 0 {
		t.Errorf("scheduled %d timers while closed, want 0", len(f.sched.timers))
	}
}

func TestController_RepeatedOutsideInteractionsAreNotDebounced(t *testing.T) {
	f := newFixture(t, time.Date(2024, 3, 20, 10, 0, 0, 0, time.Local))
	f.ctrl.Open()

	f.ctrl.OutsideInteraction()
	f.ctrl.OutsideInteraction()
	if len(f.sched.timers) != 2 {
		t.Fatalf("scheduled %d timers, want 2", len(f.sched.timers))
	}
	for _, tm := range f.sched.timers {
		if tm.stopped {
			t.Error("pending dismissal was cancelled by a later one")
		}
	}

	// first dismissal hides; the user reopens and selects before the second lands
	f.sched.timers[0].fired = true
	f.sched.timers[0].f()
	f.ctrl.Open()
	f.ctrl.Click(dateutil.Date(2024, 3, 4))

	f.sched.timers[1].fired = true
	f.sched.timers[1].f()
	if f.ctrl.Visible() {
		t.Error("second dismissal did not hide the calendar")
	}
	if got := f.ctrl.Selection().Kind; got != selection.Empty {
		t.Errorf("Selection() = %v, want empty after the last dismissal", got)
	}
}

func TestController_CloseStopsPendingDismissal(t *testing.T) {
	f := newFixture(t, time.Date(2024, 3, 20, 10, 0, 0, 0, time.Local))
	f.ctrl.Open()
	f.ctrl.Click(dateutil.Date(2024, 3, 4))
	f.ctrl.OutsideInteraction()

	f.ctrl.Close()

	if !f.sched.timers[0].stopped {
		t.Error("pending dismissal not stopped by Close()")
	}
	if f.events.Len() != 0 {
		t.Errorf("subscriptions after Close() = %d, want 0", f.events.Len())
	}

	// a callback that raced past Stop must be a no-op
	f.sched.timers[0].f()
	if got := f.ctrl.Selection().Kind; got != selection.StartOnly {
		t.Errorf("Selection() = %v, callback after Close() must not reset", got)
	}

	f.ctrl.Open()
	if f.ctrl.Visible() {
		t.Error("Open() after Close() showed the calendar")
	}
}

func TestController_InputTexts(t *testing.T) {
	f := newFixture(t, time.Date(2024, 3, 20, 10, 0, 0, 0, time.Local))

	if f.ctrl.StartText() != Placeholder || f.ctrl.EndText() != Placeholder {
		t.Errorf("texts = %q, %q, want placeholders", f.ctrl.StartText(), f.ctrl.EndText())
	}

	f.ctrl.Click(dateutil.Date(2024, 3, 15))
	if f.ctrl.StartText() != "15/03/2024" || f.ctrl.EndText() != Placeholder {
		t.Errorf("texts = %q, %q after first click", f.ctrl.StartText(), f.ctrl.EndText())
	}

	f.ctrl.Click(dateutil.Date(2024, 3, 10))
	if f.ctrl.StartText() != "10/03/2024" || f.ctrl.EndText() != "15/03/2024" {
		t.Errorf("texts = %q, %q after second click", f.ctrl.StartText(), f.ctrl.EndText())
	}
}

func TestController_DateFormat(t *testing.T) {
	rec := &recorder{}
	now := time.Date(2024, 3, 20, 10, 0, 0, 0, time.Local)
	ctrl := New(Options{
		Clock:      func() time.Time { return now },
		Scheduler:  &fakeScheduler{},
		DateFormat: "02/01/06",
		OnChange:   rec.onChange,
	}, nil)
	defer ctrl.Close()

	ctrl.Click(dateutil.Date(2024, 3, 5))
	ctrl.Click(dateutil.Date(2024, 3, 5))
	ctrl.Pick()

	if len(rec.weekdays) != 1 || !equalStrings(rec.weekdays[0], []string{"05/03/24"}) {
		t.Errorf("weekdays = %v, want [05/03/24]", rec.weekdays)
	}
}

func TestController_CursorsAndWindows(t *testing.T) {
	f := newFixture(t, time.Date(2025, 12, 10, 9, 0, 0, 0, time.Local))

	if got, want := f.ctrl.Cursor(CurrentPane), (MonthCursor{Month: 11, Year: 2025}); got != want {
		t.Errorf("current cursor = %+v, want %+v", got, want)
	}
	if got, want := f.ctrl.Cursor(NextPane), (MonthCursor{Month: 0, Year: 2026}); got != want {
		t.Errorf("next cursor = %+v, want %+v (December wraps)", got, want)
	}

	if got, want := f.ctrl.Window(CurrentPane), (YearWindow{First: 2015, Last: 2026}); got != want {
		t.Errorf("current window = %+v, want %+v", got, want)
	}
	if got, want := f.ctrl.Window(NextPane), (YearWindow{First: 2025, Last: 2045}); got != want {
		t.Errorf("next window = %+v, want %+v", got, want)
	}

	tests := []struct {
		name    string
		op      func() error
		wantErr error
	}{
		{"current month ok", func() error { return f.ctrl.SetCurrentMonth(0) }, nil},
		{"current month too big", func() error { return f.ctrl.SetCurrentMonth(12) }, ErrInvalidMonth},
		{"next month negative", func() error { return f.ctrl.SetNextMonth(-1) }, ErrInvalidMonth},
		{"current year ten back", func() error { return f.ctrl.SetCurrentYear(2015) }, nil},
		{"current year eleven back", func() error { return f.ctrl.SetCurrentYear(2014) }, ErrYearOutOfWindow},
		{"next year before now", func() error { return f.ctrl.SetNextYear(2024) }, ErrYearOutOfWindow},
		{"next year twenty ahead", func() error { return f.ctrl.SetNextYear(2045) }, nil},
		{"next year past window", func() error { return f.ctrl.SetNextYear(2046) }, ErrYearOutOfWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op()
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if got, want := f.ctrl.Cursor(CurrentPane), (MonthCursor{Month: 0, Year: 2015}); got != want {
		t.Errorf("current cursor = %+v, want %+v", got, want)
	}
	if got, want := f.ctrl.Cursor(NextPane), (MonthCursor{Month: 0, Year: 2045}); got != want {
		t.Errorf("next cursor = %+v, want %+v", got, want)
	}
}

func TestController_Shift(t *testing.T) {
	f := newFixture(t, time.Date(2025, 6, 15, 9, 0, 0, 0, time.Local))

	if err := f.ctrl.ShiftMonth(CurrentPane, -6); err != nil {
		t.Fatalf("ShiftMonth(-6) error = %v", err)
	}
	if got, want := f.ctrl.Cursor(CurrentPane), (MonthCursor{Month: 11, Year: 2024}); got != want {
		t.Errorf("cursor = %+v, want %+v", got, want)
	}

	if err := f.ctrl.ShiftYear(CurrentPane, -10); !errors.Is(err, ErrYearOutOfWindow) {
		t.Errorf("ShiftYear(-10) error = %v, want %v", err, ErrYearOutOfWindow)
	}
	if got, want := f.ctrl.Cursor(CurrentPane), (MonthCursor{Month: 11, Year: 2024}); got != want {
		t.Errorf("cursor moved on error: %+v, want %+v", got, want)
	}

	if err := f.ctrl.ShiftMonth(NextPane, -7); !errors.Is(err, ErrYearOutOfWindow) {
		t.Errorf("next ShiftMonth(-7) error = %v, want %v", err, ErrYearOutOfWindow)
	}
	if err := f.ctrl.ShiftYear(NextPane, 1); err != nil {
		t.Errorf("next ShiftYear(1) error = %v", err)
	}
	if got, want := f.ctrl.Cursor(NextPane), (MonthCursor{Month: 6, Year: 2026}); got != want {
		t.Errorf("next cursor = %+v, want %+v", got, want)
	}
}

func TestController_PaneFlags(t *testing.T) {
	f := newFixture(t, time.Date(2024, 3, 20, 10, 0, 0, 0, time.Local))
	f.ctrl.Click(dateutil.Date(2024, 3, 1))
	f.ctrl.Click(dateutil.Date(2024, 3, 12))

	v := f.ctrl.Pane(CurrentPane)
	if v.Title != "March 2024" {
		t.Errorf("Title = %q, want March 2024", v.Title)
	}
	if v.Summary != (calendar.Summary{Days: 31, Weekdays: 21, Weekends: 10}) {
		t.Errorf("Summary = %+v", v.Summary)
	}
	if len(v.Cells) != 36 {
		t.Fatalf("len(Cells) = %d, want 36", len(v.Cells))
	}
	if len(v.Years) != 12 {
		t.Errorf("len(Years) = %d, want 12", len(v.Years))
	}

	cell := func(day int) Cell {
		return v.Cells[5+day-1]
	}

	tests := []struct {
		day  int
		want Cell
	}{
		{1, Cell{Endpoint: true}},
		{2, Cell{Weekend: true}},
		{4, Cell{InRange: true}},
		{12, Cell{Endpoint: true}},
		{13, Cell{}},
		{20, Cell{Today: true}},
	}

	for _, tt := range tests {
		c := cell(tt.day)
		got := Cell{Weekend: c.Weekend, Preview: c.Preview, Endpoint: c.Endpoint, InRange: c.InRange, Today: c.Today, OtherMonth: c.OtherMonth}
		if got != tt.want {
			t.Errorf("day %d flags = %+v, want %+v", tt.day, got, tt.want)
		}
	}

	for _, c := range f.ctrl.Pane(NextPane).Cells {
		if c.OtherMonth {
			t.Errorf("next pane cell %v flagged as other month", c.Date)
		}
	}
}

func TestController_PanePreview(t *testing.T) {
	f := newFixture(t, time.Date(2024, 3, 20, 10, 0, 0, 0, time.Local))
	f.ctrl.Click(dateutil.Date(2024, 3, 28))
	if !f.ctrl.Hover(dateutil.Date(2024, 4, 2)) {
		t.Fatal("Hover() rejected")
	}

	count := 0
	for _, p := range []Pane{CurrentPane, NextPane} {
		for _, c := range f.ctrl.Pane(p).Cells {
			if c.Preview {
				count++
			}
		}
	}
	if count != 6 {
		t.Errorf("preview cells across panes = %d, want 6", count)
	}

	f.ctrl.Leave()
	for _, c := range f.ctrl.Pane(CurrentPane).Cells {
		if c.Preview {
			t.Fatalf("cell %v still in preview after Leave()", c.Date)
		}
	}
}

func TestPaneView_Rows(t *testing.T) {
	f := newFixture(t, time.Date(2024, 3, 20, 10, 0, 0, 0, time.Local))
	rows := f.ctrl.Pane(CurrentPane).Rows()
	if len(rows) != 6 || len(rows[5]) != 1 {
		t.Errorf("Rows() = %d rows, last len %d, want 6 and 1", len(rows), len(rows[len(rows)-1]))
	}
}

func TestMonthCursor_Shift(t *testing.T) {
	tests := []struct {
		from MonthCursor
		n    int
		want MonthCursor
	}{
		{MonthCursor{11, 2025}, 1, MonthCursor{0, 2026}},
		{MonthCursor{0, 2025}, -1, MonthCursor{11, 2024}},
		{MonthCursor{5, 2025}, 12, MonthCursor{5, 2026}},
		{MonthCursor{5, 2025}, -18, MonthCursor{11, 2023}},
	}

	for _, tt := range tests {
		if got := tt.from.Shift(tt.n); got != tt.want {
			t.Errorf("%+v.Shift(%d) = %+v, want %+v", tt.from, tt.n, got, tt.want)
		}
	}
}

func TestEvents_SubscribeCancel(t *testing.T) {
	e := NewEvents()
	calls := 0
	cancel := e.Subscribe(func() { calls++ })

	e.Publish()
	cancel()
	cancel()
	e.Publish()

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if e.Len() != 0 {
		t.Errorf("Len() = %d, want 0", e.Len())
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

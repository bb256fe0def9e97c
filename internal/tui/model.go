// Package tui is the terminal front end of the picker: the two read-only
// date fields and, once opened, the two-pane calendar with predefined
// ranges. All state lives in the picker.Controller; the model only maps
// keys and mouse events onto it and renders its panes.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/username/weekday-picker/internal/picker"
	"github.com/username/weekday-picker/pkg/dateutil"
)

// HelperText is shown under the date fields
const HelperText = "Please select your date range and hit pick to make a selection."

// Hit map region IDs
const (
	regionInput  = "input"
	regionPicker = "picker"
	regionDay    = "day"
	regionPreset = "preset"
	regionPick   = "pick"
	regionReset  = "reset"
	regionShift  = "shift"
)

type shift struct {
	pane   picker.Pane
	months int
}

// Model is the Bubble Tea model of the picker
type Model struct {
	ctrl   *picker.Controller
	events *picker.Events
	logger *zap.Logger

	help  help.Model
	hits  *HitMap
	width int

	cursor   time.Time
	hovering bool
	last     *picker.Emission
	status   string
	quitting bool
}

// New creates the model. events is the source the controller subscribes to
// while open; outside clicks and Esc are published there.
func New(ctrl *picker.Controller, events *picker.Events, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Model{
		ctrl:   ctrl,
		events: events,
		logger: logger,
		help:   help.New(),
		hits:   NewHitMap(),
		cursor: ctrl.Today(),
	}
}

// Run starts the program on the terminal and blocks until the user quits.
// sched, when not nil, is bound to the program so dismissal timers are
// delivered as messages.
func Run(m *Model, sched *Scheduler) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if sched != nil {
		sched.bind(p)
	}
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case dismissMsg:
		msg.fire()
		if !m.ctrl.Visible() {
			m.hovering = false
			m.cursor = m.ctrl.Today()
		}
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if !m.ctrl.Visible() {
		if key.Matches(msg, keys.Open, keys.Select) {
			m.open()
		}
		return m, nil
	}

	m.status = ""
	switch {
	case key.Matches(msg, keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, keys.Up):
		m.moveCursor(-7)
	case key.Matches(msg, keys.Down):
		m.moveCursor(7)
	case key.Matches(msg, keys.Select):
		m.ctrl.Click(m.cursor)
	case key.Matches(msg, keys.PrevMonth):
		m.shift(picker.CurrentPane, -1)
	case key.Matches(msg, keys.NextMonth):
		m.shift(picker.CurrentPane, 1)
	case key.Matches(msg, keys.PrevYear):
		m.shift(picker.CurrentPane, -12)
	case key.Matches(msg, keys.NextYear):
		m.shift(picker.CurrentPane, 12)
	case key.Matches(msg, keys.NextPrevM):
		m.shift(picker.NextPane, -1)
	case key.Matches(msg, keys.NextNextM):
		m.shift(picker.NextPane, 1)
	case key.Matches(msg, keys.NextPrevY):
		m.shift(picker.NextPane, -12)
	case key.Matches(msg, keys.NextNextY):
		m.shift(picker.NextPane, 12)
	case key.Matches(msg, keys.Preset):
		if s := msg.String(); len(s) == 1 {
			m.selectPreset(int(s[0] - '1'))
		}
	case key.Matches(msg, keys.Pick):
		m.pick()
	case key.Matches(msg, keys.Reset):
		m.reset()
	case key.Matches(msg, keys.Dismiss):
		m.outside()
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	r := m.hits.Test(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionMotion:
		if r != nil && r.ID == regionDay {
			m.hovering = true
			m.ctrl.Hover(r.Data.(time.Time))
		} else if m.hovering {
			m.hovering = false
			m.ctrl.Leave()
		}

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if r == nil {
			if m.ctrl.Visible() {
				m.outside()
			}
			return m, nil
		}

		m.status = ""
		switch r.ID {
		case regionInput:
			m.open()
		case regionDay:
			d := r.Data.(time.Time)
			m.cursor = d
			m.ctrl.Click(d)
		case regionPreset:
			m.selectPreset(r.Data.(int))
		case regionPick:
			m.pick()
		case regionReset:
			m.reset()
		case regionShift:
			s := r.Data.(shift)
			m.shift(s.pane, s.months)
		}
	}
	return m, nil
}

func (m *Model) open() {
	m.ctrl.Open()
	m.cursor = m.ctrl.Today()
}

func (m *Model) outside() {
	m.logger.Debug("Outside interaction")
	if m.events != nil {
		m.events.Publish()
		return
	}
	m.ctrl.OutsideInteraction()
}

func (m *Model) pick() {
	if em, ok := m.ctrl.Pick(); ok {
		m.last = &em
	} else {
		m.status = "Select a start and an end date first."
	}
}

func (m *Model) reset() {
	m.ctrl.Reset()
	m.hovering = false
	m.cursor = m.ctrl.Today()
}

func (m *Model) selectPreset(i int) {
	em, err := m.ctrl.SelectPredefined(i)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.last = &em
	m.cursor = em.Range.Start
}

func (m *Model) shift(p picker.Pane, months int) {
	if err := m.ctrl.ShiftMonth(p, months); err != nil {
		m.status = err.Error()
	}
}

// moveCursor moves the keyboard cursor by n days and previews the span from
// the selected start. The current pane follows the cursor when it leaves
// both panes.
func (m *Model) moveCursor(n int) {
	target := dateutil.AddDays(m.cursor, n)
	tc := picker.CursorFor(target)

	cur := m.ctrl.Cursor(picker.CurrentPane)
	if tc != cur && tc != m.ctrl.Cursor(picker.NextPane) {
		diff := (tc.Year*12 + tc.Month) - (cur.Year*12 + cur.Month)
		if err := m.ctrl.ShiftMonth(picker.CurrentPane, diff); err != nil {
			m.status = err.Error()
			return
		}
	}

	m.cursor = target
	m.ctrl.Hover(target)
}

// Cursor returns the keyboard cursor day
func (m *Model) Cursor() time.Time {
	return m.cursor
}

// Last returns the most recent emission, if any
func (m *Model) Last() (picker.Emission, bool) {
	if m.last == nil {
		return picker.Emission{}, false
	}
	return *m.last, true
}

// Layout of the open calendar, in terminal cells
const (
	cellWidth  = 3 // two digits and a space
	paneWidth  = 7*cellWidth - 1
	paneGap    = 4
	innerWidth = 2*paneWidth + paneGap
	weekRows   = 6

	boxTop  = 3 // inputs, helper, blank line
	originX = 2 // border and padding
	originY = boxTop + 1
)

// View implements tea.Model. It also rebuilds the hit map for the frame.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	m.hits.Clear()

	var b strings.Builder
	b.WriteString(m.viewInputs())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(HelperText))
	b.WriteString("\n\n")

	if m.ctrl.Visible() {
		b.WriteString(m.viewCalendar())
		b.WriteString("\n")
	}

	if footer := m.viewFooter(); footer != "" {
		b.WriteString(footer)
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(keys))

	return b.String()
}

func (m *Model) viewInputs() string {
	var l line
	l.add("Start Date ", labelStyle)
	x := l.add(" "+m.ctrl.StartText()+" ", inputStyle)
	m.hits.AddRect(regionInput, x, 0, l.col-x, 1, nil)

	l.add("   End Date ", labelStyle)
	x = l.add(" "+m.ctrl.EndText()+" ", inputStyle)
	m.hits.AddRect(regionInput, x, 0, l.col-x, 1, nil)

	return l.String()
}

func (m *Model) viewCalendar() string {
	panes := []picker.PaneView{m.ctrl.Pane(picker.CurrentPane), m.ctrl.Pane(picker.NextPane)}
	offsets := []int{0, paneWidth + paneGap}

	var lines []line

	// titles with month arrows
	var title line
	for i, v := range panes {
		title.pad(offsets[i])
		x := title.add("‹", titleStyle)
		m.hits.AddRect(regionShift, originX+x, originY, 1, 1, shift{pane: v.Pane, months: -1})
		title.add(center(v.Title, paneWidth-2), titleStyle)
		x = title.add("›", titleStyle)
		m.hits.AddRect(regionShift, originX+x, originY, 1, 1, shift{pane: v.Pane, months: 1})
	}
	lines = append(lines, title)

	// selectable years of each pane
	var window line
	for i, v := range panes {
		if len(v.Years) == 0 {
			continue
		}
		window.pad(offsets[i])
		window.add(center(fmt.Sprintf("%d–%d", v.Years[0], v.Years[len(v.Years)-1]), paneWidth), mutedStyle)
	}
	lines = append(lines, window)

	var header line
	for i := range panes {
		header.pad(offsets[i])
		header.add("Su Mo Tu We Th Fr Sa", headerStyle)
	}
	lines = append(lines, header)

	rows := [][][]picker.Cell{panes[0].Rows(), panes[1].Rows()}
	for r := 0; r < weekRows; r++ {
		var l line
		y := originY + len(lines)
		for i := range panes {
			if r >= len(rows[i]) {
				continue
			}
			for _, c := range rows[i][r] {
				x := offsets[i] + c.Column*cellWidth
				l.pad(x)
				if c.Empty {
					continue
				}
				l.add(fmt.Sprintf("%2d", c.Date.Day()), m.cellStyle(c))
				m.hits.AddRect(regionDay, originX+x, y, 2, 1, c.Date)
			}
		}
		lines = append(lines, l)
	}

	var summary line
	for i, v := range panes {
		summary.pad(offsets[i])
		summary.add(fmt.Sprintf("%d wd · %d we", v.Summary.Weekdays, v.Summary.Weekends), mutedStyle)
	}
	lines = append(lines, summary, line{})

	// predefined ranges, wrapped
	var presets line
	for i, rr := range m.ctrl.Ranges() {
		text := " " + rr.Label + " "
		if i < 9 {
			text = fmt.Sprintf(" %d %s ", i+1, rr.Label)
		}
		w := lipgloss.Width(text)
		if presets.col > 0 && presets.col+1+w > innerWidth {
			lines = append(lines, presets)
			presets = line{}
		}
		if presets.col > 0 {
			presets.pad(presets.col + 1)
		}
		x := presets.add(text, buttonStyle)
		m.hits.AddRect(regionPreset, originX+x, originY+len(lines), w, 1, i)
	}
	lines = append(lines, presets, line{})

	var buttons line
	x := buttons.add(" Pick ", primaryButtonStyle)
	m.hits.AddRect(regionPick, originX+x, originY+len(lines), buttons.col-x, 1, nil)
	buttons.pad(buttons.col + 2)
	x = buttons.add(" Reset Dates ", buttonStyle)
	m.hits.AddRect(regionReset, originX+x, originY+len(lines), buttons.col-x, 1, nil)
	lines = append(lines, buttons)

	content := make([]string, len(lines))
	for i := range lines {
		lines[i].pad(innerWidth)
		content[i] = lines[i].String()
	}

	style := boxStyle
	if m.ctrl.Dismissing() {
		style = fadingBoxStyle
	}
	box := style.Render(strings.Join(content, "\n"))

	// the whole box counts as inside the picker
	m.insertBackground(lipgloss.Width(box), lipgloss.Height(box))

	return box
}

// insertBackground puts the picker area below every other region
func (m *Model) insertBackground(w, h int) {
	regions := append([]Region{{ID: regionPicker, Rect: Rect{X: 0, Y: boxTop, W: w, H: h}}}, m.hits.Regions()...)
	m.hits.Clear()
	for _, r := range regions {
		m.hits.AddRect(r.ID, r.Rect.X, r.Rect.Y, r.Rect.W, r.Rect.H, r.Data)
	}
}

func (m *Model) cellStyle(c picker.Cell) lipgloss.Style {
	style := dayStyle
	switch {
	case c.Endpoint:
		style = endpointStyle
	case c.InRange:
		style = inRangeStyle
	case c.Preview:
		style = previewStyle
	case c.OtherMonth:
		style = inactiveStyle
	case c.Weekend:
		style = weekendStyle
	}
	if c.Today {
		style = style.Inherit(todayStyle)
	}
	if dateutil.IsSameDay(c.Date, m.cursor) {
		style = style.Inherit(cursorStyle)
	}
	return style
}

func (m *Model) viewFooter() string {
	var parts []string
	if m.last != nil {
		title := m.last.Label
		if title == "" {
			title = m.last.Range.String()
		} else {
			title = fmt.Sprintf("%s (%s)", title, m.last.Range)
		}
		parts = append(parts, resultStyle.Render(fmt.Sprintf("Picked %s: %d weekdays, %d weekends",
			title, len(m.last.Weekdays), len(m.last.Weekends))))
	}
	if m.status != "" {
		parts = append(parts, errorStyle.Render(m.status))
	}
	return strings.Join(parts, "\n")
}

// line accumulates styled segments while tracking the visible column
type line struct {
	s   string
	col int
}

// add appends s and returns the column it starts at
func (l *line) add(s string, style lipgloss.Style) int {
	start := l.col
	l.s += style.Render(s)
	l.col += lipgloss.Width(s)
	return start
}

// pad fills with spaces up to column x
func (l *line) pad(x int) {
	if x > l.col {
		l.s += strings.Repeat(" ", x-l.col)
		l.col = x
	}
}

func (l *line) String() string {
	return l.s
}

func center(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

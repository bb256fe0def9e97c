package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Open      key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	PrevYear  key.Binding
	NextYear  key.Binding
	NextPrevM key.Binding
	NextNextM key.Binding
	NextPrevY key.Binding
	NextNextY key.Binding
	Preset    key.Binding
	Pick      key.Binding
	Reset     key.Binding
	Dismiss   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Preset, k.Pick, k.Reset, k.Dismiss, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.Select, k.Open},
		{k.PrevMonth, k.NextMonth, k.PrevYear, k.NextYear},
		{k.NextPrevM, k.NextNextM, k.NextPrevY, k.NextNextY},
		{k.Preset, k.Pick, k.Reset, k.Dismiss, k.Help, k.Quit},
	}
}

var keys = keyMap{
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous day"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next day"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "previous week"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next week"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "select day"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open calendar"),
	),
	PrevMonth: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "month back"),
	),
	NextMonth: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "month forward"),
	),
	PrevYear: key.NewBinding(
		key.WithKeys("{"),
		key.WithHelp("{", "year back"),
	),
	NextYear: key.NewBinding(
		key.WithKeys("}"),
		key.WithHelp("}", "year forward"),
	),
	NextPrevM: key.NewBinding(
		key.WithKeys(","),
		key.WithHelp(",", "right pane month back"),
	),
	NextNextM: key.NewBinding(
		key.WithKeys("."),
		key.WithHelp(".", "right pane month forward"),
	),
	NextPrevY: key.NewBinding(
		key.WithKeys("<"),
		key.WithHelp("<", "right pane year back"),
	),
	NextNextY: key.NewBinding(
		key.WithKeys(">"),
		key.WithHelp(">", "right pane year forward"),
	),
	Preset: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("1-9", "predefined range"),
	),
	Pick: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pick"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset dates"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close calendar"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

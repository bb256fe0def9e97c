package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("212")
	mutedColor   = lipgloss.Color("241")
	accentColor  = lipgloss.Color("45")
	rangeColor   = lipgloss.Color("24")
	hoverColor   = lipgloss.Color("238")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	headerStyle = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("236"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	fadingBoxStyle = boxStyle.
			BorderForeground(lipgloss.Color("236")).
			Faint(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238"))

	primaryButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(primaryColor).
				Bold(true)

	resultStyle = lipgloss.NewStyle().Foreground(accentColor)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Day cell styles
var (
	dayStyle      = lipgloss.NewStyle()
	weekendStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	inactiveStyle = lipgloss.NewStyle().Faint(true)
	todayStyle    = lipgloss.NewStyle().Underline(true)
	previewStyle  = lipgloss.NewStyle().Background(hoverColor)
	inRangeStyle  = lipgloss.NewStyle().Background(rangeColor)
	endpointStyle = lipgloss.NewStyle().Background(primaryColor).Foreground(lipgloss.Color("255")).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
)

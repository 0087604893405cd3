package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText     lipgloss.Color = "#cdd6f4"
	colorMuted    lipgloss.Color = "#a6adc8"
	colorBorder   lipgloss.Color = "#585b70"
	colorAccent   lipgloss.Color = "#89b4fa"
	colorSuccess  lipgloss.Color = "#a6e3a1"
	colorError    lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)

	dropZoneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	dropZoneActiveStyle = dropZoneStyle.
				BorderForeground(colorAccent).
				BorderStyle(lipgloss.DoubleBorder())

	statusStyle    = lipgloss.NewStyle().Foreground(colorSuccess)
	statusErrStyle = lipgloss.NewStyle().Foreground(colorError)

	cardTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	cardSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	toggleStyle       = lipgloss.NewStyle().Foreground(colorYellow)
	jsonStyle         = lipgloss.NewStyle().Foreground(colorMuted)

	toastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSuccess).
			Foreground(colorText).
			Padding(0, 1)
	toastErrStyle = toastStyle.BorderForeground(colorError)

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 3)

	footerStyle   = lipgloss.NewStyle().Background(colorMantle)
	keyStyle      = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Background(colorMantle)
	helpDescStyle = lipgloss.NewStyle().Foreground(colorMuted).Background(colorMantle)
	pickerRowSel  = lipgloss.NewStyle().Background(colorSurface0).Foreground(colorAccent)
)

package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText    lipgloss.Color = "#cdd6f4"
	colorMuted   lipgloss.Color = "#a6adc8"
	colorBorder  lipgloss.Color = "#585b70"
	colorMantle  lipgloss.Color = "#181825"
	colorSurface lipgloss.Color = "#313244"
	colorAccent  lipgloss.Color = "#89b4fa"
	colorSuccess lipgloss.Color = "#a6e3a1"
	colorWarn    lipgloss.Color = "#f9e2af"
	colorError   lipgloss.Color = "#f38ba8"
)

var (
	appStyle = lipgloss.NewStyle().Foreground(colorText)

	headerBarStyle = lipgloss.NewStyle().
			Background(colorMantle).
			Foreground(colorText)
	headerAppStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	crumbStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	crumbTopStyle  = lipgloss.NewStyle().Foreground(colorText).Bold(true)

	titleStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).MarginBottom(1)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	valueStyle  = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	incomeStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	spendStyle  = lipgloss.NewStyle().Foreground(colorError)

	cursorStyle = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorAccent).
			Bold(true)

	errorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorError).
			Padding(0, 1)
	errorTitleStyle = lipgloss.NewStyle().Foreground(colorError).Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Background(colorSurface)
	footerStyle   = lipgloss.NewStyle().Background(colorMantle)
	keyStyle      = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	helpDescStyle = lipgloss.NewStyle().Foreground(colorMuted)

	paletteStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Foreground(colorWarn).Width(10)
	barStyle   = lipgloss.NewStyle().Foreground(colorBorder)
)

package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")
	colorWhite  = lipgloss.Color("#f9fafb")

	// TitleStyle renders report headers.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	// SectionStyle renders section headings in the status report.
	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue).
			MarginTop(1)

	// ReadyStyle renders healthy items.
	ReadyStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	// FailedStyle renders unhealthy items.
	FailedStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	// WarningStyle renders degraded or pending items.
	WarningStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	// DimStyle renders secondary detail.
	DimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// Status marks used in report rows and log lines.
const (
	CheckMark = "[OK]"
	CrossMark = "[!!]"
	WarnMark  = "[??]"
	Pending   = "[  ]"
)

// Mark returns the styled mark for a boolean condition.
func Mark(ok bool) string {
	if ok {
		return ReadyStyle.Render(CheckMark)
	}
	return FailedStyle.Render(CrossMark)
}

package formatter

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/health"
	"github.com/alexanderramin/gantt/internal/hierarchy"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StyleCursor = lipgloss.NewStyle().Background(lipgloss.Color("#3c3836"))
)

// HealthStyle returns the style used for a schedule-health bucket.
func HealthStyle(b health.Bucket) lipgloss.Style {
	switch b {
	case health.BucketDone:
		return StyleGreen
	case health.BucketInProgress:
		return StyleBlue
	case health.BucketDelay:
		return StyleRed
	case health.BucketAtRisk:
		return StyleYellow
	default:
		return StyleFg
	}
}

// HealthIndicator returns a colored indicator such as "● AT RISK".
func HealthIndicator(b health.Bucket) string {
	switch b {
	case health.BucketDone:
		return StyleGreen.Render("✔ DONE")
	case health.BucketInProgress:
		return StyleBlue.Render("▶ IN PROGRESS")
	case health.BucketDelay:
		return StyleRed.Render("● DELAY")
	case health.BucketAtRisk:
		return StyleYellow.Render("● AT RISK")
	default:
		return StyleDim.Render("○")
	}
}

// RowStyle picks the bar color of a row: projects and sprints by kind, tasks
// by health.
func RowStyle(kind hierarchy.RowKind, b health.Bucket) lipgloss.Style {
	switch kind {
	case hierarchy.RowProject:
		return StyleHeader
	case hierarchy.RowSprint:
		return StylePurple
	case hierarchy.RowBacklog:
		return StyleDim
	default:
		return HealthStyle(b)
	}
}

// SprintStatusPill returns a colored sprint status label.
func SprintStatusPill(s domain.SprintStatus) string {
	switch s {
	case domain.SprintStarted:
		return StyleGreen.Render("● started")
	case domain.SprintCompleted:
		return StyleDim.Render("✔ completed")
	case domain.SprintNotStarted:
		return StyleBlue.Render("○ not started")
	default:
		return StyleDim.Render(string(s))
	}
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

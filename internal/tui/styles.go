package tui

import (
	"github.com/charmbracelet/lipgloss"

	"potsface/internal/config"
)

// Fixed palette
var (
	alertColor   = lipgloss.Color("#B91C1C") // warning background while alerting
	lowBattColor = lipgloss.Color("#EF4444") // Red
	midBattColor = lipgloss.Color("#F59E0B") // Amber
	okBattColor  = lipgloss.Color("#10B981") // Green
	mutedColor   = lipgloss.Color("#6B7280") // Gray
)

// styles holds the configurable watchface styles. Background and text color
// come from settings; while alerting the background is swapped for the
// warning color.
type styles struct {
	background lipgloss.Color
	text       lipgloss.Color

	timeStyle    lipgloss.Style
	dateStyle    lipgloss.Style
	weatherStyle lipgloss.Style
	hrStyle      lipgloss.Style
	hrAlertStyle lipgloss.Style
	offlineStyle lipgloss.Style

	// Chrome shared by the history and help screens
	cardStyle      lipgloss.Style
	cardTitleStyle lipgloss.Style
	statusStyle    lipgloss.Style
	errorStyle     lipgloss.Style
	helpKeyStyle   lipgloss.Style
	helpDescStyle  lipgloss.Style
}

// newStyles builds the style set from display settings.
func newStyles(display config.DisplayConfig) styles {
	bg := lipgloss.Color(display.BackgroundColor)
	text := lipgloss.Color(display.TextColor)

	return styles{
		background: bg,
		text:       text,

		timeStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(text).
			Background(bg),

		dateStyle: lipgloss.NewStyle().
			Foreground(text).
			Background(bg),

		weatherStyle: lipgloss.NewStyle().
			Foreground(text).
			Background(bg),

		hrStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(text).
			Background(bg),

		hrAlertStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(text).
			Background(alertColor),

		offlineStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lowBattColor),

		cardStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(1, 2),

		cardTitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(text).
			MarginBottom(1),

		statusStyle: lipgloss.NewStyle().
			Foreground(mutedColor),

		errorStyle: lipgloss.NewStyle().
			Foreground(lowBattColor),

		helpKeyStyle: lipgloss.NewStyle().
			Foreground(text).
			Bold(true),

		helpDescStyle: lipgloss.NewStyle().
			Foreground(mutedColor),
	}
}

// renderBatteryBar renders the battery meter: a bordered bar filled and
// colored by charge level (red when nearly empty, amber when low, green
// otherwise).
func renderBatteryBar(level, width int, s styles) string {
	var barColor lipgloss.Color
	switch {
	case level <= 20:
		barColor = lowBattColor
	case level <= 40:
		barColor = midBattColor
	default:
		barColor = okBattColor
	}

	fullStyle := lipgloss.NewStyle().Foreground(barColor)
	emptyStyle := lipgloss.NewStyle().Foreground(mutedColor)

	filled := (level * width) / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += fullStyle.Render("█")
		} else {
			bar += emptyStyle.Render("░")
		}
	}
	return "[" + bar + "]"
}

// renderKeyHelp renders a key binding help item
func renderKeyHelp(key, desc string, s styles) string {
	return s.helpKeyStyle.Render(key) + " " + s.helpDescStyle.Render(desc)
}

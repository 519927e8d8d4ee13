package tui

import "github.com/charmbracelet/lipgloss"

// renderHelp renders the keybinding reference screen.
func (a *App) renderHelp() string {
	s := a.styles

	bindings := [][2]string{
		{"1", "watch face"},
		{"2", "alert history"},
		{"u", "toggle °C / °F"},
		{"d", "toggle date"},
		{"r", "refresh history"},
		{"j/k", "scroll history"},
		{"?", "toggle help"},
		{"esc", "back"},
		{"q", "quit"},
	}

	lines := []string{s.cardTitleStyle.Render("Keys"), ""}
	for _, b := range bindings {
		lines = append(lines, "  "+renderKeyHelp(b[0], b[1], s))
	}

	lines = append(lines, "",
		s.cardTitleStyle.Render("Alerts"),
		"",
		"  The display flashes and the terminal bell rings when heart",
		"  rate swings 30 BPM or more within a minute. The alert clears",
		"  on its own once readings hold steady for a full minute.",
	)

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

package tui

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"potsface/internal/hrm"
	"potsface/internal/weather"
)

// renderFace draws the watchface itself: battery meter, clock, date,
// heart rate, and weather, centered on a full-screen background. While the
// alert is active the whole background switches to the warning color.
func (a *App) renderFace() string {
	s := a.styles

	bg := s.background
	if a.status.Alerting {
		bg = alertColor
	}

	now := time.Now()

	var lines []string

	if a.hasBatt {
		lines = append(lines, renderBatteryBar(a.battLevel, 20, s), "")
	}

	if !a.connected {
		lines = append(lines, s.offlineStyle.Render("⚠ sensor offline"), "")
	}

	lines = append(lines, s.timeStyle.Render("  "+a.formatClock(now)+"  "))

	if !a.cfg.Display.HideDate {
		lines = append(lines, s.dateStyle.Render(now.Format("Mon Jan 02")))
	}

	lines = append(lines, "")

	hr := s.hrStyle
	if a.status.Alerting {
		hr = s.hrAlertStyle
	}
	display := a.status.Display
	if display == "" {
		display = hrm.NoReading
	}
	lines = append(lines, hr.Render(" "+display+" "))

	lines = append(lines, "")
	lines = append(lines, s.weatherStyle.Render(a.weatherLine()))

	if a.statusMsg != "" {
		lines = append(lines, "", s.errorStyle.Render(a.statusMsg))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)

	if a.width == 0 || a.height == 0 {
		return content
	}
	return lipgloss.Place(a.width, a.height,
		lipgloss.Center, lipgloss.Center,
		content,
		lipgloss.WithWhitespaceBackground(bg),
	)
}

// formatClock renders the time per the 24h/12h setting.
func (a *App) formatClock(now time.Time) string {
	if a.cfg.Display.TimeFormat == "12h" {
		return now.Format("03:04")
	}
	return now.Format("15:04")
}

// weatherLine renders the bottom weather text, preferring a live or cached
// observation and falling back to the loading placeholder.
func (a *App) weatherLine() string {
	if a.wx == nil && a.obs == nil {
		return "" // weather not configured, nothing to show
	}
	return weather.Format(a.obs, a.cfg.Display.TemperatureUnit == "fahrenheit")
}

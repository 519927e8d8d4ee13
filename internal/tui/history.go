package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"potsface/internal/store"
)

// historyLimit is how many past episodes the history screen loads.
const historyLimit = 50

// HistoryModel is the alert history screen: a sparkline of the live sample
// window above a scrollable log of past alert episodes.
type HistoryModel struct {
	db       *store.Store
	episodes []store.Episode
	loading  bool
	err      error
	vp       viewport.Model
}

// NewHistoryModel creates a new history model
func NewHistoryModel(db *store.Store) HistoryModel {
	return HistoryModel{
		db:      db,
		loading: true,
	}
}

// Init loads the episode log.
func (m HistoryModel) Init() tea.Cmd {
	return m.loadData
}

func (m HistoryModel) loadData() tea.Msg {
	episodes, err := m.db.RecentEpisodes(historyLimit)
	return episodesMsg{episodes: episodes, err: err}
}

type episodesMsg struct {
	episodes []store.Episode
	err      error
}

// Update handles messages
func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case episodesMsg:
		m.loading = false
		m.err = msg.err
		m.episodes = msg.episodes
		m.vp.SetContent(m.renderEpisodes())

	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width - 4
		m.vp.Height = msg.Height - 16
		if m.vp.Height < 3 {
			m.vp.Height = 3
		}
		m.vp.SetContent(m.renderEpisodes())

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.loadData
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// View renders the history screen. window is the live raw-sample trail from
// the engine.
func (m HistoryModel) View(window []int, s styles) string {
	var sections []string

	sections = append(sections, s.cardTitleStyle.Render("Heart Rate - Last Minute"))
	sections = append(sections, m.renderSparkline(window, s))

	sections = append(sections, s.cardTitleStyle.Render("Alert Episodes"))

	switch {
	case m.loading:
		sections = append(sections, "  Loading history...")
	case m.err != nil:
		sections = append(sections, s.errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
	case len(m.episodes) == 0:
		sections = append(sections, s.statusStyle.Render("  No alerts recorded"))
	default:
		sections = append(sections, m.vp.View())
	}

	sections = append(sections, s.statusStyle.Render("Press 'r' to refresh, j/k to scroll"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderSparkline plots the raw BPM values currently in the sample window.
func (m HistoryModel) renderSparkline(window []int, s styles) string {
	if len(window) < 2 {
		return s.statusStyle.Render("  Waiting for samples...")
	}

	data := make([]float64, len(window))
	for i, v := range window {
		data[i] = float64(v)
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(6),
		asciigraph.Width(60),
		asciigraph.Precision(0),
	)
	return s.cardStyle.Render(graph)
}

// renderEpisodes formats the episode log, newest first.
func (m HistoryModel) renderEpisodes() string {
	if len(m.episodes) == 0 {
		return ""
	}

	header := fmt.Sprintf("%-17s  %-10s  %7s  %9s", "Started", "Duration", "Spread", "Peak")
	rows := []string{header}

	for _, e := range m.episodes {
		duration := "active"
		if e.ClearedAt != nil {
			duration = formatDuration(e.ClearedAt.Sub(e.StartedAt))
		}
		rows = append(rows, fmt.Sprintf("%-17s  %-10s  %7s  %9s",
			e.StartedAt.Local().Format("Jan 02 15:04:05"),
			duration,
			fmt.Sprintf("Δ%d", e.PeakSpread),
			fmt.Sprintf("%d bpm", e.PeakBPM),
		))
	}

	return strings.Join(rows, "\n")
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"potsface/internal/battery"
	"potsface/internal/config"
	"potsface/internal/hrm"
	"potsface/internal/sensor"
	"potsface/internal/store"
	"potsface/internal/weather"
)

// Screen identifiers
type Screen int

const (
	ScreenFace Screen = iota
	ScreenHistory
	ScreenHelp
)

// batteryEvery is how many ticks pass between battery reads.
const batteryEvery = 30

// App is the root Bubble Tea model: the watchface plus its secondary
// screens. It owns the heart-rate engine and drives it from a once-per-
// second tick.
type App struct {
	screen     Screen
	prevScreen Screen

	cfg    *config.Config
	styles styles

	engine *hrm.Engine
	source sensor.Source
	wx     *weather.Client // nil when no API key is configured
	db     *store.Store
	battAt *battery.Reader

	// Per-tick state
	status    hrm.Status
	connected bool
	ticks     int

	battLevel int
	hasBatt   bool

	obs       *weather.Observation
	lastFetch time.Time
	episodeID string
	statusMsg string

	history HistoryModel

	width  int
	height int
}

// NewApp creates the watchface with all dependencies.
func NewApp(cfg *config.Config, src sensor.Source, wx *weather.Client, db *store.Store) *App {
	a := &App{
		cfg:       cfg,
		styles:    newStyles(cfg.Display),
		engine:    hrm.NewEngine(),
		source:    src,
		wx:        wx,
		db:        db,
		battAt:    battery.NewReader(),
		connected: true,
		history:   NewHistoryModel(db),
	}

	// Last-known weather bridges the gap until the first fetch succeeds.
	if cached, err := db.GetWeather(); err == nil {
		a.obs = &weather.Observation{
			TempC:      cached.TempC,
			Conditions: cached.Conditions,
			FetchedAt:  cached.FetchedAt,
		}
	}

	if level, err := a.battAt.Level(); err == nil {
		a.battLevel = level
		a.hasBatt = true
	}

	return a
}

// tickMsg drives one engine cycle per second.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// weatherMsg carries a fetch result back to the UI.
type weatherMsg struct {
	obs *weather.Observation
	err error
}

// Init starts the tick loop and the first weather fetch.
func (a *App) Init() tea.Cmd {
	return tea.Batch(tick(), a.maybeFetchWeather(time.Now()))
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return a, a.handleTick(time.Time(msg))

	case weatherMsg:
		if msg.err != nil {
			a.statusMsg = fmt.Sprintf("weather: %v", msg.err)
			return a, nil
		}
		a.obs = msg.obs
		a.statusMsg = ""
		if err := a.db.SaveWeather(store.Weather{
			TempC:      msg.obs.TempC,
			Conditions: msg.obs.Conditions,
			FetchedAt:  msg.obs.FetchedAt,
		}); err != nil {
			a.statusMsg = fmt.Sprintf("caching weather: %v", err)
		}
		return a, nil

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.history, _ = a.history.Update(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "1":
			a.screen = ScreenFace
			return a, nil
		case "2":
			a.screen = ScreenHistory
			return a, a.history.Init()
		case "?":
			if a.screen != ScreenHelp {
				a.prevScreen = a.screen
				a.screen = ScreenHelp
			}
			return a, nil
		case "esc":
			if a.screen == ScreenHelp {
				a.screen = a.prevScreen
			}
			return a, nil
		case "u":
			a.toggleUnit()
			return a, nil
		case "d":
			a.toggleDate()
			return a, nil
		}
	}

	if a.screen == ScreenHistory {
		var cmd tea.Cmd
		a.history, cmd = a.history.Update(msg)
		return a, cmd
	}

	return a, nil
}

// handleTick runs one engine cycle and schedules the next tick.
func (a *App) handleTick(now time.Time) tea.Cmd {
	a.ticks++
	cmds := []tea.Cmd{tick()}

	reading := a.source.Read()
	a.status = a.engine.Tick(now, reading)

	if a.status.Vibrate {
		cmds = append(cmds, bell(1))
		a.startEpisode(now)
	}
	a.trackEpisode(now)

	// Sensor link state: a double pulse on disconnect, like the watch
	// buzzing when it loses the phone.
	connected := a.source.Connected()
	if a.connected && !connected {
		cmds = append(cmds, bell(2))
	}
	a.connected = connected

	if a.hasBatt && a.ticks%batteryEvery == 0 {
		if level, err := a.battAt.Level(); err == nil {
			a.battLevel = level
		}
	}

	cmds = append(cmds, a.maybeFetchWeather(now))

	return tea.Batch(cmds...)
}

// startEpisode opens a new episode row on the alert entry edge.
func (a *App) startEpisode(now time.Time) {
	id, err := a.db.StartEpisode(now, a.status.Spread, a.status.BPM)
	if err != nil {
		a.statusMsg = fmt.Sprintf("recording episode: %v", err)
		return
	}
	a.episodeID = id
}

// trackEpisode keeps the open episode's peaks current and closes it when
// the alert clears. Store errors are surfaced but never stop the face.
func (a *App) trackEpisode(now time.Time) {
	if a.episodeID == "" {
		return
	}

	if a.status.Alerting {
		err := a.db.UpdateEpisodePeaks(a.episodeID, a.status.Spread, a.status.BPM)
		if err != nil && !errors.Is(err, store.ErrEpisodeNotFound) {
			a.statusMsg = fmt.Sprintf("recording episode: %v", err)
		}
		return
	}

	if err := a.db.ClearEpisode(a.episodeID, now); err != nil && !errors.Is(err, store.ErrEpisodeNotFound) {
		a.statusMsg = fmt.Sprintf("recording episode: %v", err)
	}
	a.episodeID = ""
}

// maybeFetchWeather starts a fetch if weather is configured and the
// refresh interval has passed.
func (a *App) maybeFetchWeather(now time.Time) tea.Cmd {
	if a.wx == nil {
		return nil
	}
	if !a.lastFetch.IsZero() && now.Sub(a.lastFetch) < weather.RefreshInterval {
		return nil
	}
	a.lastFetch = now

	lat, lon := a.cfg.Weather.Latitude, a.cfg.Weather.Longitude
	client := a.wx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		obs, err := client.Current(ctx, lat, lon)
		return weatherMsg{obs: obs, err: err}
	}
}

// toggleUnit flips Celsius/Fahrenheit and persists the setting. The
// observation is stored in Celsius, so no refetch is needed.
func (a *App) toggleUnit() {
	if a.cfg.Display.TemperatureUnit == "fahrenheit" {
		a.cfg.Display.TemperatureUnit = "celsius"
	} else {
		a.cfg.Display.TemperatureUnit = "fahrenheit"
	}
	a.saveConfig()
}

// toggleDate shows or hides the date line and persists the setting.
func (a *App) toggleDate() {
	a.cfg.Display.HideDate = !a.cfg.Display.HideDate
	a.saveConfig()
}

func (a *App) saveConfig() {
	if err := config.Save(a.cfg); err != nil {
		a.statusMsg = fmt.Sprintf("saving settings: %v", err)
	}
}

// View renders the app
func (a *App) View() string {
	switch a.screen {
	case ScreenHistory:
		return a.renderChromed(a.history.View(a.engine.History(), a.styles))
	case ScreenHelp:
		return a.renderChromed(a.renderHelp())
	default:
		return a.renderFace()
	}
}

// renderChromed wraps secondary screens in the shared nav chrome.
func (a *App) renderChromed(content string) string {
	nav := a.styles.statusStyle.Render("[1] Face  [2] History  [?] Help  [q] Quit")

	footer := ""
	if a.statusMsg != "" {
		footer = a.styles.errorStyle.Render(a.statusMsg)
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, nav, footer)
}

// bell writes n terminal bells, the haptic stand-in.
func bell(n int) tea.Cmd {
	return func() tea.Msg {
		for i := 0; i < n; i++ {
			os.Stderr.WriteString("\a")
		}
		return nil
	}
}

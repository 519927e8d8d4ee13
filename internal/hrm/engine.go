package hrm

import "time"

// Reading is one tick's worth of sensor input. A value <= 0 means that
// reading is unavailable this tick. Raw feeds the sample window; Filtered
// feeds the display.
type Reading struct {
	Raw      int
	Filtered int
}

// Status is the engine's output for one tick.
type Status struct {
	Display  string // formatted heart-rate line
	BPM      int    // last known filtered value, 0 if never seen
	Spread   int    // last computed window spread
	Alerting bool   // warning background while true
	Vibrate  bool   // fire the one-shot vibration this tick
}

// Engine ties the sample window, alert state machine, and display formatter
// together behind a single tick entry point. All engine state is owned here
// and mutated only through Tick; the sustain timer inside the Alerter is the
// only asynchronous element.
type Engine struct {
	window  *SampleWindow
	alerter *Alerter

	filtered int // held across ticks with no fresh filtered reading
	spread   int
}

// NewEngine creates an engine with the firmware constants.
func NewEngine() *Engine {
	return &Engine{
		window:  NewDefaultWindow(),
		alerter: NewDefaultAlerter(),
	}
}

// NewEngineWith creates an engine from explicitly constructed parts.
func NewEngineWith(window *SampleWindow, alerter *Alerter) *Engine {
	return &Engine{window: window, alerter: alerter}
}

// Tick runs one engine cycle: record the raw reading (if any), recompute the
// window spread, advance the alert state machine, and format the display.
// An unavailable reading leaves the previous displayed values in place, and
// does not advance the alert machine: an already-active alert still clears
// on its sustain timer when the signal stops, rather than being held open
// by a frozen window.
func (e *Engine) Tick(now time.Time, r Reading) Status {
	var vibrate bool
	if r.Raw > 0 {
		e.window.Record(r.Raw, now)
		e.spread = e.window.Spread()
		vibrate = e.alerter.Observe(e.spread)
	}

	if r.Filtered > 0 {
		e.filtered = r.Filtered
	}

	return Status{
		Display:  FormatReading(e.filtered, e.spread),
		BPM:      e.filtered,
		Spread:   e.spread,
		Alerting: e.alerter.Active(),
		Vibrate:  vibrate,
	}
}

// History returns the raw BPM values currently retained, oldest first.
func (e *Engine) History() []int {
	return e.window.Values()
}

// Alerting reports the current alert state without advancing the engine.
func (e *Engine) Alerting() bool {
	return e.alerter.Active()
}

// Stop cancels any pending sustain timer.
func (e *Engine) Stop() {
	e.alerter.Stop()
}

package hrm

import (
	"errors"
	"sync"
	"time"
)

// ErrScheduleFailed is returned by a Schedule func that could not arm a timer.
var ErrScheduleFailed = errors.New("could not schedule sustain timer")

// Schedule arms a one-shot deferred call of fn after d and returns a cancel
// func. Cancel must be idempotent and safe to call after fn has fired.
type Schedule func(d time.Duration, fn func()) (cancel func(), err error)

// AfterFunc is the default Schedule, backed by time.AfterFunc.
func AfterFunc(d time.Duration, fn func()) (func(), error) {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }, nil
}

// Alerter decides whether the alert condition is active. It is a two-state
// machine (idle / alerting) driven by the window spread each time a raw
// sample is recorded:
//
//   - spread >= threshold while idle enters alerting, fires the one-shot
//     vibration, and arms the sustain timer
//   - spread >= threshold while already alerting re-arms the sustain timer
//     without re-firing vibration
//   - the alert clears when the sustain timer elapses, regardless of what
//     the spread is at that moment
//
// The separate clear timeout keeps borderline readings from flapping the
// alert on and off, while still guaranteeing it self-clears if the signal
// source goes quiet. If the timer cannot be armed the alerter refuses to
// enter the alerting state, so a scheduling failure can never produce an
// alarm that won't clear.
//
// The sustain timer callback runs outside the tick path, so state is guarded
// by a mutex. Everything else should come through Observe on the tick.
type Alerter struct {
	mu        sync.Mutex
	threshold int
	sustain   time.Duration
	schedule  Schedule

	active bool
	gen    uint64 // arms outrun stale timer callbacks
	cancel func()
}

// NewAlerter creates an alerter that triggers at the given spread threshold
// and self-clears after sustain. A nil schedule uses time.AfterFunc.
func NewAlerter(threshold int, sustain time.Duration, schedule Schedule) *Alerter {
	if schedule == nil {
		schedule = AfterFunc
	}
	return &Alerter{
		threshold: threshold,
		sustain:   sustain,
		schedule:  schedule,
	}
}

// NewDefaultAlerter creates an alerter with the firmware constants.
func NewDefaultAlerter() *Alerter {
	return NewAlerter(AlertThreshold, AlertSustain, nil)
}

// Observe feeds the current window spread to the state machine. It reports
// whether the vibration should fire, which happens exactly once per
// idle-to-alerting transition.
func (a *Alerter) Observe(spread int) (vibrate bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if spread < a.threshold {
		return false
	}

	gen := a.gen + 1
	cancel, err := a.schedule(a.sustain, func() { a.clear(gen) })
	if err != nil {
		// Fail closed: without a working clear timer, entering the
		// alerting state would risk a stuck alarm. An already-active
		// alert keeps its previously armed timer.
		return false
	}
	a.gen = gen

	// Re-trigger: replace the pending clear with a fresh one.
	if a.cancel != nil {
		a.cancel()
	}
	a.cancel = cancel

	if a.active {
		return false
	}
	a.active = true
	return true
}

// clear is the sustain timer callback. A stale generation means the timer
// was superseded by a later re-trigger after this callback was already in
// flight, so it must not clear the alert.
func (a *Alerter) clear(gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if gen != a.gen {
		return
	}
	a.active = false
	a.cancel = nil
}

// Active reports whether the alert condition is currently raised.
func (a *Alerter) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

// Stop cancels any pending sustain timer. Safe to call at any time,
// including when no timer is armed or after it has fired.
func (a *Alerter) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

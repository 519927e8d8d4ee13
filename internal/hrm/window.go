package hrm

import "time"

// Engine tuning constants. These mirror the watch firmware: up to 96 raw
// readings retained, none older than a minute, and a 30 BPM swing inside
// that minute raises the alert.
const (
	// WindowCapacity is the maximum number of raw samples retained.
	WindowCapacity = 96

	// WindowAge is the maximum age of a retained sample, measured against
	// the most recently recorded sample's clock.
	WindowAge = 60 * time.Second

	// AlertThreshold is the window spread (max-min BPM) that triggers an alert.
	AlertThreshold = 30

	// AlertSustain is how long an alert stays active after its last
	// qualifying spread before it self-clears.
	AlertSustain = 60 * time.Second
)

// Sample is a single raw heart-rate reading. Immutable once recorded.
type Sample struct {
	Time time.Time
	BPM  int
}

// SampleWindow is a bounded, time-ordered buffer of raw heart-rate samples.
// Samples arrive in timestamp order and are dropped when they age past the
// window duration or when the buffer is full. Pruning is eager: it happens
// only when a new sample is recorded, never on a background timer, so a gap
// in the signal leaves the window frozen until the next reading arrives.
//
// Backed by a ring buffer so eviction is O(1).
type SampleWindow struct {
	samples []Sample
	head    int // index of oldest sample
	count   int
	maxAge  time.Duration
}

// NewSampleWindow creates a window retaining at most capacity samples,
// each no older than maxAge relative to the newest recorded sample.
func NewSampleWindow(capacity int, maxAge time.Duration) *SampleWindow {
	if capacity < 1 {
		capacity = 1
	}
	return &SampleWindow{
		samples: make([]Sample, capacity),
		maxAge:  maxAge,
	}
}

// NewDefaultWindow creates a window with the firmware constants.
func NewDefaultWindow() *SampleWindow {
	return NewSampleWindow(WindowCapacity, WindowAge)
}

// Record adds a raw reading taken at now. A bpm <= 0 means "no reading" and
// is dropped without touching the window. Otherwise samples older than the
// window duration are pruned, the oldest sample is evicted if the buffer is
// full, and the new sample is appended.
func (w *SampleWindow) Record(bpm int, now time.Time) {
	if bpm <= 0 {
		return
	}

	w.prune(now)

	if w.count == len(w.samples) {
		// Full: drop the oldest to make room.
		w.head = (w.head + 1) % len(w.samples)
		w.count--
	}

	tail := (w.head + w.count) % len(w.samples)
	w.samples[tail] = Sample{Time: now, BPM: bpm}
	w.count++
}

// prune drops samples older than maxAge relative to now. Samples are in
// arrival order, so pruning only ever removes from the front.
func (w *SampleWindow) prune(now time.Time) {
	for w.count > 0 {
		oldest := w.samples[w.head]
		if now.Sub(oldest.Time) <= w.maxAge {
			break
		}
		w.head = (w.head + 1) % len(w.samples)
		w.count--
	}
}

// Spread returns max-min BPM over the retained samples, or 0 when fewer
// than two samples are present.
func (w *SampleWindow) Spread() int {
	if w.count < 2 {
		return 0
	}

	min := w.samples[w.head].BPM
	max := min
	for i := 1; i < w.count; i++ {
		bpm := w.samples[(w.head+i)%len(w.samples)].BPM
		if bpm < min {
			min = bpm
		}
		if bpm > max {
			max = bpm
		}
	}
	return max - min
}

// Len returns the number of retained samples.
func (w *SampleWindow) Len() int {
	return w.count
}

// Values returns the retained BPM values, oldest first. The slice is a copy.
func (w *SampleWindow) Values() []int {
	values := make([]int, w.count)
	for i := 0; i < w.count; i++ {
		values[i] = w.samples[(w.head+i)%len(w.samples)].BPM
	}
	return values
}

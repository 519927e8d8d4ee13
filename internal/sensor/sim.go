package sensor

import (
	"math"
	"time"

	"potsface/internal/hrm"
)

// DefaultSimBPM is the simulated sensor's resting heart rate.
const DefaultSimBPM = 72

const (
	simSampleRate = 250 // Hz, synthetic ECG resolution
	simAlpha      = 0.2 // filtered-reading smoothing

	// The simulated heart rate wanders sinusoidally around the base and
	// periodically surges well past the alert threshold, so the alert
	// path can be exercised without real hardware.
	simWanderAmp    = 8
	simWanderPeriod = 180 * time.Second
	simSurgeAmp     = 40
	simSurgePeriod  = 10 * time.Minute
	simSurgeLen     = 90 * time.Second
)

// Sim is a simulated heart-rate sensor. Each Read advances one second of a
// synthetic ECG waveform through a beat detector and reports the detected
// rate, so the raw stream has realistic beat-to-beat jitter rather than
// being a clean function of time.
type Sim struct {
	base     float64
	elapsed  time.Duration
	ecg      ecgWave
	detector beatDetector
	filter   ewma
	lastRaw  int
}

// NewSim creates a simulated sensor resting at base BPM.
func NewSim(base float64) *Sim {
	return &Sim{
		base:     base,
		detector: beatDetector{threshold: 0.6, refractory: 200 * time.Millisecond},
		filter:   ewma{alpha: simAlpha},
	}
}

// Read advances the simulation by one second and returns the latest
// detected raw rate plus its smoothed counterpart. In the rare second with
// no detected beat the previous raw value is reported again.
func (s *Sim) Read() hrm.Reading {
	target := s.targetBPM()

	step := time.Second / simSampleRate
	for i := 0; i < simSampleRate; i++ {
		s.elapsed += step
		v := s.ecg.next(target, simSampleRate)
		if bpm, ok := s.detector.process(v, s.elapsed); ok {
			s.lastRaw = bpm
		}
	}

	if s.lastRaw == 0 {
		return hrm.Reading{}
	}
	return hrm.Reading{
		Raw:      s.lastRaw,
		Filtered: s.filter.update(s.lastRaw),
	}
}

func (s *Sim) Connected() bool { return true }
func (s *Sim) Close() error    { return nil }

// targetBPM is the rate the waveform is generated at for this second:
// base + slow wander + periodic surge.
func (s *Sim) targetBPM() float64 {
	t := s.elapsed.Seconds()

	wander := simWanderAmp * math.Sin(2*math.Pi*t/simWanderPeriod.Seconds())

	surge := 0.0
	if math.Mod(t, simSurgePeriod.Seconds()) < simSurgeLen.Seconds() && t > 0 {
		surge = simSurgeAmp
	}

	return s.base + wander + surge
}

// ecgWave generates a crude ECG-like waveform: a baseline drift plus P, QRS,
// and T bumps modeled as gaussians over the beat cycle. Not clinical, just
// enough shape for a threshold detector to find the R peak.
type ecgWave struct {
	phase float64
}

func (e *ecgWave) next(bpm, sampleRate float64) float64 {
	e.phase += (bpm / 60.0) / sampleRate
	if e.phase >= 1.0 {
		e.phase -= 1.0
	}
	t := e.phase

	baseline := 0.05 * math.Sin(2*math.Pi*0.33*t)
	p := 0.08 * gauss(t, 0.18, 0.03)
	q := -0.12 * gauss(t, 0.30, 0.01)
	r := 1.00 * gauss(t, 0.32, 0.008)
	sWave := -0.25 * gauss(t, 0.35, 0.012)
	tWave := 0.25 * gauss(t, 0.60, 0.06)

	return baseline + p + q + r + sWave + tWave
}

func gauss(x, mu, sigma float64) float64 {
	z := (x - mu) / sigma
	return math.Exp(-0.5 * z * z)
}

// beatDetector finds R peaks by rising threshold crossing with a refractory
// period, and converts the RR interval to BPM.
type beatDetector struct {
	threshold   float64
	refractory  time.Duration
	lastPeak    time.Duration
	lastValue   float64
	initialized bool
}

// process consumes one waveform sample at offset ts from the start of the
// simulation. It returns a BPM and true when a new beat completes an RR
// interval.
func (d *beatDetector) process(value float64, ts time.Duration) (int, bool) {
	if !d.initialized {
		d.initialized = true
		d.lastValue = value
		return 0, false
	}

	crossed := d.lastValue < d.threshold && value >= d.threshold
	d.lastValue = value

	if !crossed || ts-d.lastPeak <= d.refractory {
		return 0, false
	}

	if d.lastPeak == 0 {
		d.lastPeak = ts
		return 0, false
	}

	rr := (ts - d.lastPeak).Seconds()
	d.lastPeak = ts
	return int(60.0 / rr), true
}

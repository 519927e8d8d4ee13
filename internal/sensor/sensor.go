// Package sensor provides heart-rate metric sources for the watchface
// engine. A source is polled once per tick and yields a raw and a filtered
// BPM reading, either of which may be unavailable. The same engine runs
// against a simulated sensor, a remote sensor over MQTT, or no sensor at
// all.
package sensor

import (
	"fmt"

	"potsface/internal/hrm"
)

// Source is a polled heart-rate capability.
type Source interface {
	// Read returns the readings for this tick. A zero value means that
	// reading is unavailable right now.
	Read() hrm.Reading

	// Connected reports whether the underlying sensor link is up. A
	// simulated or absent sensor is always "up"; only transports that can
	// actually drop (e.g. MQTT) report false.
	Connected() bool

	// Close releases the source's resources. Safe to call once.
	Close() error
}

// None is a Source for hosts with no heart-rate hardware. Every reading is
// unavailable; the watchface shows the no-signal placeholder.
type None struct{}

func (None) Read() hrm.Reading { return hrm.Reading{} }
func (None) Connected() bool   { return true }
func (None) Close() error      { return nil }

// New creates the source named by the config sensor setting.
func New(kind string, mqttCfg MQTTConfig) (Source, error) {
	switch kind {
	case "sim":
		return NewSim(DefaultSimBPM), nil
	case "mqtt":
		return NewMQTT(mqttCfg)
	case "none":
		return None{}, nil
	default:
		return nil, fmt.Errorf("unknown sensor %q (want sim, mqtt, or none)", kind)
	}
}

// ewma is the shared smoothing filter for the filtered reading. The raw
// stream stays untouched; only the displayed number is smoothed.
type ewma struct {
	alpha float64
	value float64
}

// update folds a new raw value into the average and returns the rounded
// filtered reading.
func (f *ewma) update(raw int) int {
	if f.value == 0 {
		f.value = float64(raw)
	} else {
		f.value += f.alpha * (float64(raw) - f.value)
	}
	return int(f.value + 0.5)
}

package sensor

import (
	"math"
	"testing"
)

func TestSimProducesPlausibleRates(t *testing.T) {
	s := NewSim(DefaultSimBPM)

	// The very first seconds may not complete an RR interval yet, so scan
	// a short warm-up before asserting.
	var readings []int
	for i := 0; i < 30; i++ {
		r := s.Read()
		if r.Raw > 0 {
			readings = append(readings, r.Raw)
		}
	}

	if len(readings) < 20 {
		t.Fatalf("got %d raw readings in 30s, want at least 20", len(readings))
	}

	// During the initial surge window the simulated rate sits around
	// base+surge; everything should stay in a plausible human band.
	for _, bpm := range readings {
		if bpm < 40 || bpm > 200 {
			t.Errorf("raw reading %d BPM outside plausible range", bpm)
		}
	}
}

func TestSimFilteredTracksRaw(t *testing.T) {
	s := NewSim(DefaultSimBPM)

	var last struct{ raw, filtered int }
	for i := 0; i < 60; i++ {
		r := s.Read()
		if r.Raw > 0 {
			last.raw, last.filtered = r.Raw, r.Filtered
		}
	}

	if last.raw == 0 {
		t.Fatal("no raw readings after 60s of simulation")
	}
	if last.filtered <= 0 {
		t.Fatalf("filtered reading = %d, want > 0", last.filtered)
	}
	// The smoothed value should be near the raw stream, not wildly off.
	if diff := math.Abs(float64(last.filtered - last.raw)); diff > 40 {
		t.Errorf("filtered %d is %v BPM away from raw %d", last.filtered, diff, last.raw)
	}
}

func TestNoneSource(t *testing.T) {
	var s Source = None{}

	r := s.Read()
	if r.Raw != 0 || r.Filtered != 0 {
		t.Errorf("None.Read() = %+v, want zero readings", r)
	}
	if !s.Connected() {
		t.Error("None.Connected() = false, want true")
	}
	if err := s.Close(); err != nil {
		t.Errorf("None.Close() = %v, want nil", err)
	}
}

func TestNewUnknownKind(t *testing.T) {
	if _, err := New("fitbit", MQTTConfig{}); err == nil {
		t.Error("New(\"fitbit\") error = nil, want error")
	}
}

func TestParseReading(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    int
		wantErr bool
	}{
		{
			name:    "valid reading",
			payload: `{"bpm": 72}`,
			want:    72,
		},
		{
			name:    "zero rejected",
			payload: `{"bpm": 0}`,
			wantErr: true,
		},
		{
			name:    "negative rejected",
			payload: `{"bpm": -5}`,
			wantErr: true,
		},
		{
			name:    "implausibly high rejected",
			payload: `{"bpm": 900}`,
			wantErr: true,
		},
		{
			name:    "missing field rejected",
			payload: `{"spo2": 98}`,
			wantErr: true,
		},
		{
			name:    "malformed json rejected",
			payload: `bpm=72`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseReading([]byte(tt.payload))
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseReading(%q) error = nil, want error", tt.payload)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseReading(%q) error = %v", tt.payload, err)
			}
			if got != tt.want {
				t.Errorf("parseReading(%q) = %d, want %d", tt.payload, got, tt.want)
			}
		})
	}
}

func TestEWMA(t *testing.T) {
	f := ewma{alpha: 0.2}

	// First value seeds the average directly.
	if got := f.update(100); got != 100 {
		t.Errorf("first update = %d, want 100", got)
	}

	// 100 + 0.2*(150-100) = 110
	if got := f.update(150); got != 110 {
		t.Errorf("second update = %d, want 110", got)
	}

	// 110 + 0.2*(150-110) = 118
	if got := f.update(150); got != 118 {
		t.Errorf("third update = %d, want 118", got)
	}
}

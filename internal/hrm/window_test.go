package hrm

import (
	"testing"
	"time"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// at returns a timestamp offset seconds after t0.
func at(offset int) time.Time {
	return t0.Add(time.Duration(offset) * time.Second)
}

func TestWindowRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  func(w *SampleWindow)
		wantLen int
	}{
		{
			name:    "empty window",
			record:  func(w *SampleWindow) {},
			wantLen: 0,
		},
		{
			name: "single sample",
			record: func(w *SampleWindow) {
				w.Record(72, at(0))
			},
			wantLen: 1,
		},
		{
			name: "zero value dropped",
			record: func(w *SampleWindow) {
				w.Record(0, at(0))
			},
			wantLen: 0,
		},
		{
			name: "negative value dropped",
			record: func(w *SampleWindow) {
				w.Record(-1, at(0))
			},
			wantLen: 0,
		},
		{
			name: "dropped value does not prune",
			record: func(w *SampleWindow) {
				w.Record(72, at(0))
				// An invalid reading 2 minutes later must not touch the window.
				w.Record(0, at(120))
			},
			wantLen: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewDefaultWindow()
			tt.record(w)
			if got := w.Len(); got != tt.wantLen {
				t.Errorf("Len() = %d, want %d", got, tt.wantLen)
			}
		})
	}
}

func TestWindowCapacity(t *testing.T) {
	w := NewSampleWindow(4, time.Minute)

	// Record capacity+3 samples all inside the window duration.
	for i := 0; i < 7; i++ {
		w.Record(70+i, at(i))
	}

	if got := w.Len(); got != 4 {
		t.Errorf("Len() = %d, want 4 (capacity)", got)
	}

	// Exactly the 4 most recent values remain, oldest first.
	want := []int{73, 74, 75, 76}
	got := w.Values()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Values() = %v, want %v", got, want)
			break
		}
	}
}

func TestWindowPruning(t *testing.T) {
	tests := []struct {
		name       string
		samples    []Sample
		wantValues []int
	}{
		{
			name: "stale samples pruned on record",
			samples: []Sample{
				{at(0), 70},
				{at(10), 75},
				{at(75), 80}, // 0s and 10s are now older than 60s
			},
			wantValues: []int{75, 80},
		},
		{
			name: "sample exactly at window edge retained",
			samples: []Sample{
				{at(0), 70},
				{at(60), 80}, // age == 60s, not > 60s
			},
			wantValues: []int{70, 80},
		},
		{
			name: "sample just past window edge pruned",
			samples: []Sample{
				{at(0), 70},
				{at(61), 80},
			},
			wantValues: []int{80},
		},
		{
			name: "long gap empties all but newest",
			samples: []Sample{
				{at(0), 70},
				{at(5), 72},
				{at(10), 74},
				{at(300), 90},
			},
			wantValues: []int{90},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewDefaultWindow()
			for _, s := range tt.samples {
				w.Record(s.BPM, s.Time)
			}

			got := w.Values()
			if len(got) != len(tt.wantValues) {
				t.Fatalf("Values() = %v, want %v", got, tt.wantValues)
			}
			for i := range got {
				if got[i] != tt.wantValues[i] {
					t.Errorf("Values() = %v, want %v", got, tt.wantValues)
					break
				}
			}
		})
	}
}

func TestWindowSpread(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   int
	}{
		{
			name:   "empty window",
			values: nil,
			want:   0,
		},
		{
			name:   "single sample",
			values: []int{72},
			want:   0,
		},
		{
			name:   "two equal samples",
			values: []int{72, 72},
			want:   0,
		},
		{
			name:   "simple spread",
			values: []int{70, 85},
			want:   15,
		},
		{
			name: "max and min in the middle",
			// 110 and 65 are interior samples; order must not matter.
			values: []int{80, 110, 65, 82},
			want:   45,
		},
		{
			name:   "monotonic rise",
			values: []int{80, 95, 110},
			want:   30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewDefaultWindow()
			for i, v := range tt.values {
				w.Record(v, at(i))
			}
			if got := w.Spread(); got != tt.want {
				t.Errorf("Spread() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWindowSpreadAfterEviction(t *testing.T) {
	w := NewSampleWindow(3, time.Minute)

	// The outlier 120 falls out when capacity evicts it.
	w.Record(120, at(0))
	w.Record(80, at(1))
	w.Record(82, at(2))
	if got := w.Spread(); got != 40 {
		t.Errorf("Spread() before eviction = %d, want 40", got)
	}

	w.Record(84, at(3)) // evicts 120
	if got := w.Spread(); got != 4 {
		t.Errorf("Spread() after eviction = %d, want 4", got)
	}
}

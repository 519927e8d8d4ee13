package hrm

import "testing"

func TestFormatReading(t *testing.T) {
	tests := []struct {
		name     string
		filtered int
		spread   int
		want     string
	}{
		{
			name:     "no reading",
			filtered: 0,
			spread:   0,
			want:     "-- BPM",
		},
		{
			name:     "no reading hides spread",
			filtered: 0,
			spread:   12,
			want:     "-- BPM",
		},
		{
			name:     "negative treated as no reading",
			filtered: -1,
			spread:   3,
			want:     "-- BPM",
		},
		{
			name:     "normal reading",
			filtered: 72,
			spread:   5,
			want:     "72 BPM | Δ5",
		},
		{
			name:     "zero spread still shown",
			filtered: 60,
			spread:   0,
			want:     "60 BPM | Δ0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatReading(tt.filtered, tt.spread); got != tt.want {
				t.Errorf("FormatReading(%d, %d) = %q, want %q",
					tt.filtered, tt.spread, got, tt.want)
			}
		})
	}
}

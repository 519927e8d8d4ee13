package hrm

import "fmt"

// NoReading is shown when no filtered heart-rate value has ever been
// observed. Distinct from a reading of zero, which cannot occur.
const NoReading = "-- BPM"

// FormatReading renders the filtered heart rate and window spread for
// display. A filtered value <= 0 means no signal and yields the fixed
// placeholder with no spread shown. Pure function; callers may safely pass
// stale last-known values.
func FormatReading(filtered, spread int) string {
	if filtered <= 0 {
		return NoReading
	}
	return fmt.Sprintf("%d BPM | Δ%d", filtered, spread)
}

package weather

import "fmt"

// CToF converts Celsius to Fahrenheit using the same integer arithmetic as
// the watch firmware.
func CToF(c int) int {
	return (c * 9 / 5) + 32
}

// Format renders an observation as the watchface weather line, e.g.
// "18°C Clouds" or "64°F Clouds".
func Format(o *Observation, fahrenheit bool) string {
	if o == nil {
		return "Loading..."
	}
	if fahrenheit {
		return fmt.Sprintf("%d°F %s", CToF(o.TempC), o.Conditions)
	}
	return fmt.Sprintf("%d°C %s", o.TempC, o.Conditions)
}

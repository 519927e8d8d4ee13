// Package battery reads the host battery level for the watchface meter.
package battery

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrNoBattery is returned when the host has no readable battery.
var ErrNoBattery = errors.New("no battery found")

const defaultRoot = "/sys/class/power_supply"

// Reader reads battery charge from the kernel power-supply interface.
type Reader struct {
	root string
}

// NewReader creates a Reader for the standard sysfs location.
func NewReader() *Reader {
	return &Reader{root: defaultRoot}
}

// Level returns the charge percent (0-100) of the first battery found.
// Hosts without a battery (desktops, containers) get ErrNoBattery and the
// watchface simply hides the meter.
func (r *Reader) Level() (int, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return 0, ErrNoBattery
	}

	for _, entry := range entries {
		capPath := filepath.Join(r.root, entry.Name(), "capacity")
		data, err := os.ReadFile(capPath)
		if err != nil {
			continue // not a battery (AC adapter, USB port, ...)
		}

		level, err := strconv.Atoi(strings.TrimSpace(string(data)))
		if err != nil {
			continue
		}
		if level < 0 {
			level = 0
		}
		if level > 100 {
			level = 100
		}
		return level, nil
	}

	return 0, ErrNoBattery
}

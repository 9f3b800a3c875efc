//go:build linux

package providers

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// getBatteryState reads the first battery under /sys/class/power_supply on
// Linux. A machine with no battery directories (most servers and VMs)
// reports Present: false.
func getBatteryState() BatteryState {
	const base = "/sys/class/power_supply"
	entries, err := os.ReadDir(base)
	if err != nil {
		return BatteryState{}
	}

	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), "BAT") {
			continue
		}
		dir := filepath.Join(base, entry.Name())

		capacity, err := readSysfsInt(filepath.Join(dir, "capacity"))
		if err != nil {
			continue
		}

		raw, _ := os.ReadFile(filepath.Join(dir, "status"))
		return BatteryState{Present: true, Percent: capacity, Status: normalizeStatus(string(raw))}
	}

	return BatteryState{}
}

func normalizeStatus(raw string) string {
	switch strings.TrimSpace(raw) {
	case "Charging":
		return "Charging"
	case "Discharging":
		return "Discharging"
	case "Full", "Not charging":
		return "Full"
	default:
		return "Unknown"
	}
}

func readSysfsInt(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

package providers

import (
	"context"
	"fmt"
	"time"
)

// BatteryState is the platform-independent reading getBatteryState returns.
// Present is false on desktops, VMs, and any platform getBatteryState could
// not query.
type BatteryState struct {
	Present bool
	Percent int
	Status  string // "Charging", "Discharging", "Full", "Empty", or "Unknown"
}

// BatteryProvider supplies charge percentage, status, and a power symbol.
// Cacheable with a short TTL — battery state changes slowly enough that
// re-reading it on every prompt render is wasted work, but the daemon
// should still catch a plug/unplug within a few renders.
type BatteryProvider struct {
	read func() BatteryState
}

// NewBatteryProvider returns a BatteryProvider backed by the real platform
// reader (linux sysfs, darwin pmset, zero-value elsewhere).
func NewBatteryProvider() *BatteryProvider {
	return &BatteryProvider{read: getBatteryState}
}

func (p *BatteryProvider) Name() string       { return "battery" }
func (p *BatteryProvider) Sections() []string { return []string{"battery"} }

func (p *BatteryProvider) DefaultConfig() Config {
	return Config{"symbol": "⚡"}
}

func (p *BatteryProvider) Cacheable() bool         { return true }
func (p *BatteryProvider) CacheTTL() time.Duration { return 10 * time.Second }

func (p *BatteryProvider) Collect(_ context.Context, cfg Config, _ bool) (map[string]string, error) {
	state := p.read()
	if !state.Present {
		return map[string]string{}, nil
	}

	symbol := cfg.GetString("symbol", "⚡")
	out := map[string]string{
		"battery_percentage": fmt.Sprintf("%d%%", state.Percent),
		"battery_status":     state.Status,
		"battery_power":      symbol,
	}
	switch state.Status {
	case "Charging":
		out["battery_power_charging"] = symbol
	case "Discharging":
		out["battery_power_discharging"] = symbol
	}
	return out, nil
}

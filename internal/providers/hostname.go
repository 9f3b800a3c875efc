package providers

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v4/host"
)

// HostnameProvider supplies the machine's hostname. Cacheable with a long
// TTL — a hostname essentially never changes between prompt renders.
type HostnameProvider struct {
	HostInfo func(ctx context.Context) (*host.InfoStat, error)
}

// NewHostnameProvider returns a HostnameProvider backed by gopsutil.
func NewHostnameProvider() *HostnameProvider {
	return &HostnameProvider{HostInfo: host.InfoWithContext}
}

func (p *HostnameProvider) Name() string       { return "hostname" }
func (p *HostnameProvider) Sections() []string { return []string{"hostname"} }

func (p *HostnameProvider) DefaultConfig() Config {
	return Config{}
}

func (p *HostnameProvider) Cacheable() bool         { return true }
func (p *HostnameProvider) CacheTTL() time.Duration { return 1 * time.Hour }

func (p *HostnameProvider) Collect(ctx context.Context, _ Config, _ bool) (map[string]string, error) {
	info, err := p.HostInfo(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]string{"hostname": info.Hostname}, nil
}

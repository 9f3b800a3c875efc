package providers

import (
	"context"
	"testing"

	"github.com/shirou/gopsutil/v4/host"
)

func TestHostnameProvider_Collect(t *testing.T) {
	p := &HostnameProvider{HostInfo: func(context.Context) (*host.InfoStat, error) {
		return &host.InfoStat{Hostname: "dev-box"}, nil
	}}

	vars, err := p.Collect(context.Background(), Config{}, false)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if vars["hostname"] != "dev-box" {
		t.Fatalf("got %q", vars["hostname"])
	}
}

func TestHostnameProvider_Cacheable(t *testing.T) {
	if !NewHostnameProvider().Cacheable() {
		t.Fatalf("hostname provider should be cacheable")
	}
}

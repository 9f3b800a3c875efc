package providers

import (
	"context"
	"testing"
)

func TestIPProvider_FirstNonLoopback(t *testing.T) {
	p := &IPProvider{list: func() ([]ifaceInfo, error) {
		return []ifaceInfo{
			{Name: "lo", Up: true, Loopback: true, Addrs: []string{"127.0.0.1/8"}},
			{Name: "eth0", Up: true, Addrs: []string{"192.168.1.42/24"}},
		}, nil
	}}

	vars, err := p.Collect(context.Background(), Config{}, false)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if vars["ip_address"] != "192.168.1.42" || vars["ip_interface"] != "eth0" || vars["ip_version"] != "4" {
		t.Fatalf("got %+v", vars)
	}
}

func TestIPProvider_SkipsDownInterfaces(t *testing.T) {
	p := &IPProvider{list: func() ([]ifaceInfo, error) {
		return []ifaceInfo{
			{Name: "eth0", Up: false, Addrs: []string{"10.0.0.5/24"}},
			{Name: "eth1", Up: true, Addrs: []string{"10.0.0.6/24"}},
		}, nil
	}}

	vars, _ := p.Collect(context.Background(), Config{}, false)
	if vars["ip_address"] != "10.0.0.6" {
		t.Fatalf("got %q", vars["ip_address"])
	}
}

func TestIPProvider_ExplicitInterface(t *testing.T) {
	p := &IPProvider{list: func() ([]ifaceInfo, error) {
		return []ifaceInfo{
			{Name: "eth0", Up: true, Addrs: []string{"10.0.0.6/24"}},
			{Name: "eth1", Up: true, Addrs: []string{"10.0.0.7/24"}},
		}, nil
	}}

	vars, _ := p.Collect(context.Background(), Config{"interface": "eth1"}, false)
	if vars["ip_interface"] != "eth1" || vars["ip_address"] != "10.0.0.7" {
		t.Fatalf("got %+v", vars)
	}
}

func TestIPProvider_PreferIPv6(t *testing.T) {
	p := &IPProvider{list: func() ([]ifaceInfo, error) {
		return []ifaceInfo{
			{Name: "eth0", Up: true, Addrs: []string{"10.0.0.6/24", "fe80::1/64"}},
		}, nil
	}}

	vars, _ := p.Collect(context.Background(), Config{"prefer_ipv6": true}, false)
	if vars["ip_version"] != "6" {
		t.Fatalf("got version %q, want 6", vars["ip_version"])
	}
}

func TestIPProvider_NoMatchYieldsNoKeys(t *testing.T) {
	p := &IPProvider{list: func() ([]ifaceInfo, error) {
		return []ifaceInfo{
			{Name: "lo", Up: true, Loopback: true, Addrs: []string{"127.0.0.1/8"}},
		}, nil
	}}

	vars, _ := p.Collect(context.Background(), Config{}, false)
	if len(vars) != 0 {
		t.Fatalf("expected no ip_* keys when nothing matches, got %+v", vars)
	}
}

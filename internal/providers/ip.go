package providers

import (
	"context"
	"net"
	"strings"
	"time"
)

// ifaceInfo is the subset of net.Interface plus its resolved addresses that
// the selection logic needs, decoupled from net.Interface itself so tests
// can supply interfaces without touching the real network stack.
type ifaceInfo struct {
	Name     string
	Up       bool
	Loopback bool
	Addrs    []string
}

// IPProvider supplies the machine's primary local IP address: an explicit
// configured interface if set and present, else the first non-loopback
// interface in enumeration order. Cacheable with a short TTL since it
// rarely changes but DHCP leases do renew.
type IPProvider struct {
	list func() ([]ifaceInfo, error)
}

// NewIPProvider returns an IPProvider backed by the real network stack.
func NewIPProvider() *IPProvider {
	return &IPProvider{list: realInterfaces}
}

func realInterfaces() ([]ifaceInfo, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	out := make([]ifaceInfo, 0, len(ifaces))
	for _, iface := range ifaces {
		info := ifaceInfo{
			Name:     iface.Name,
			Up:       iface.Flags&net.FlagUp != 0,
			Loopback: iface.Flags&net.FlagLoopback != 0,
		}
		if addrs, err := iface.Addrs(); err == nil {
			for _, addr := range addrs {
				info.Addrs = append(info.Addrs, addr.String())
			}
		}
		out = append(out, info)
	}
	return out, nil
}

func (p *IPProvider) Name() string       { return "ip" }
func (p *IPProvider) Sections() []string { return []string{"ip"} }

func (p *IPProvider) DefaultConfig() Config {
	return Config{"prefer_ipv6": false}
}

func (p *IPProvider) Cacheable() bool         { return true }
func (p *IPProvider) CacheTTL() time.Duration { return 30 * time.Second }

func (p *IPProvider) Collect(_ context.Context, cfg Config, validate bool) (map[string]string, error) {
	ifaces, err := p.list()
	if err != nil {
		if validate {
			return nil, err
		}
		return map[string]string{}, nil
	}

	explicit := cfg.GetString("interface", "")
	preferV6 := cfg.GetBool("prefer_ipv6", false)

	var candidates []ifaceInfo
	if explicit != "" {
		for _, iface := range ifaces {
			if iface.Name == explicit {
				candidates = []ifaceInfo{iface}
				break
			}
		}
	}
	if len(candidates) == 0 {
		for _, iface := range ifaces {
			if iface.Loopback {
				continue
			}
			candidates = append(candidates, iface)
		}
	}

	for _, iface := range candidates {
		if !iface.Up {
			continue
		}
		if addr, version := pickAddr(iface.Addrs, preferV6); addr != "" {
			return map[string]string{
				"ip_address":   addr,
				"ip_interface": iface.Name,
				"ip_version":   version,
			}, nil
		}
	}

	return map[string]string{}, nil
}

// pickAddr returns the first address of the preferred family, falling back
// to the other family if the preferred one is absent on this interface.
func pickAddr(addrs []string, preferV6 bool) (addr, version string) {
	var v4, v6 string
	for _, a := range addrs {
		ip, _, err := net.ParseCIDR(a)
		if err != nil {
			continue
		}
		if v4 == "" && ip.To4() != nil {
			v4 = ip.To4().String()
		} else if v6 == "" && ip.To4() == nil {
			v6 = ip.String()
		}
	}

	if preferV6 && v6 != "" {
		return v6, "6"
	}
	if !preferV6 && v4 != "" {
		return v4, "4"
	}
	if v4 != "" {
		return v4, "4"
	}
	if v6 != "" {
		return v6, "6"
	}
	return "", ""
}

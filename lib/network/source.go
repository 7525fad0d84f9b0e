package network

import (
	"context"
	psnet "github.com/shirou/gopsutil/v3/net"
	"net"
)

// Source enumerates the network interfaces of the host.
type Source func(ctx context.Context) ([]Net, error)

// Interfaces is the Source of the running host.
func Interfaces(ctx context.Context) ([]Net, error) {
	stats, err := psnet.InterfacesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	nets := make([]Net, 0, len(stats))
	for _, stat := range stats {
		nets = append(nets, fromStat(stat))
	}
	Sort(nets)
	return nets, nil
}

var flagNames = map[string]net.Flags{
	"up":           net.FlagUp,
	"broadcast":    net.FlagBroadcast,
	"loopback":     net.FlagLoopback,
	"pointtopoint": net.FlagPointToPoint,
	"multicast":    net.FlagMulticast,
	"running":      net.FlagRunning,
}

func fromStat(stat psnet.InterfaceStat) Net {
	n := Net{
		Interface: net.Interface{
			Index: stat.Index,
			MTU:   stat.MTU,
			Name:  stat.Name,
		},
	}
	if hw, err := net.ParseMAC(stat.HardwareAddr); err == nil {
		n.Interface.HardwareAddr = hw
	}
	for _, flag := range stat.Flags {
		n.Interface.Flags |= flagNames[flag]
	}
	for _, addr := range stat.Addrs {
		ip, ipNet, err := net.ParseCIDR(addr.Addr)
		if err != nil {
			// some platforms report addresses without a prefix length
			ip = net.ParseIP(addr.Addr)
			if ip == nil {
				continue
			}
			bits := 8 * net.IPv6len
			if ip.To4() != nil {
				bits = 8 * net.IPv4len
			}
			ipNet = &net.IPNet{Mask: net.CIDRMask(bits, bits)}
		}
		ipNet.IP = ip
		n.Addrs = append(n.Addrs, *ipNet)
	}
	return n
}

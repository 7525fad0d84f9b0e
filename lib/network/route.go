package network

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var ErrNoRoute = errors.New("no default route")

// Documentation addresses. Connecting a UDP socket sends nothing
// but makes the kernel pick the route it would use.
var probeAddrs = []string{
	"192.0.2.1:9",
	"[2001:db8::1]:9",
}

// DefaultRoute returns the local address the host routes outbound traffic from.
func DefaultRoute(ctx context.Context) (net.IP, error) {
	var dialer net.Dialer
	var last error
	for _, addr := range probeAddrs {
		conn, err := dialer.DialContext(ctx, "udp", addr)
		if err != nil {
			last = err
			continue
		}
		local := conn.LocalAddr().(*net.UDPAddr).IP
		_ = conn.Close()
		return local, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrNoRoute, last)
}

// DefaultNet returns the usable net owning ip.
func DefaultNet(nets []Net, ip net.IP) (Net, bool) {
	for _, n := range nets {
		if n.IsUsable() && n.HasIP(ip) {
			return n, true
		}
	}
	return Net{}, false
}

package host

import (
	"net"
	"projekt/connectivity/lib/network"
	"projekt/connectivity/lib/platform"
)

type link struct {
	handle platform.Network
	caps   platform.Capabilities
}

// view is the platform's picture of the host at one point in time.
// Only usable interfaces appear in it.
type view struct {
	links  []link
	active *platform.Network
}

func handleOf(n network.Net) platform.Network {
	return platform.Network{ID: int64(n.Interface.Index), Interface: n.Interface.Name}
}

func capabilitiesOf(n network.Net) platform.Capabilities {
	caps := platform.Capabilities{Transports: network.Transports(n)}
	if n.IsUsable() {
		caps.Capabilities = append(caps.Capabilities, platform.CapabilityInternet)
	}
	if !caps.HasTransport(platform.TransportCellular) {
		caps.Capabilities = append(caps.Capabilities, platform.CapabilityNotMetered)
	}
	return caps
}

// newView builds a view from an interface snapshot. The active network
// is the usable interface owning route, the source address of the default route.
func newView(nets []network.Net, route net.IP) view {
	var v view
	for _, n := range nets {
		if !n.IsUsable() {
			continue
		}
		v.links = append(v.links, link{handleOf(n), capabilitiesOf(n)})
	}
	if route != nil {
		if n, ok := network.DefaultNet(nets, route); ok {
			handle := handleOf(n)
			v.active = &handle
		}
	}
	return v
}

func (v view) find(n platform.Network) *link {
	for i := range v.links {
		if v.links[i].handle == n {
			return &v.links[i]
		}
	}
	return nil
}

func (v view) activeLink() *link {
	if v.active == nil {
		return nil
	}
	return v.find(*v.active)
}

func (v view) equal(other view) bool {
	if !sameNetwork(v.active, other.active) || len(v.links) != len(other.links) {
		return false
	}
	for i := range v.links {
		a, b := v.links[i], other.links[i]
		if a.handle != b.handle || !sameTransports(a.caps.Transports, b.caps.Transports) ||
			len(a.caps.Capabilities) != len(b.caps.Capabilities) {
			return false
		}
	}
	return true
}

func sameNetwork(a, b *platform.Network) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameTransports(a, b []platform.Transport) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

type signalKind int

const (
	signalAvailable signalKind = iota
	signalLost
)

type signal struct {
	kind    signalKind
	network platform.Network
}

func (s signal) deliver(cb platform.NetworkCallback) {
	switch s.kind {
	case signalAvailable:
		cb.OnAvailable(s.network)
	case signalLost:
		cb.OnLost(s.network)
	}
}

// defaultSignals reports a switch of the default network
// as the loss of the old one followed by the availability of the new one.
func defaultSignals(prev, next view) (signals []signal) {
	if sameNetwork(prev.active, next.active) {
		return
	}
	if prev.active != nil {
		signals = append(signals, signal{signalLost, *prev.active})
	}
	if next.active != nil {
		signals = append(signals, signal{signalAvailable, *next.active})
	}
	return
}

// scopedSignals reports networks matching req that appeared or disappeared.
func scopedSignals(req platform.Request, prev, next view) (signals []signal) {
	for _, l := range prev.links {
		if !req.Matches(&l.caps) {
			continue
		}
		if n := next.find(l.handle); n == nil || !req.Matches(&n.caps) {
			signals = append(signals, signal{signalLost, l.handle})
		}
	}
	for _, l := range next.links {
		if !req.Matches(&l.caps) {
			continue
		}
		if p := prev.find(l.handle); p == nil || !req.Matches(&p.caps) {
			signals = append(signals, signal{signalAvailable, l.handle})
		}
	}
	return
}

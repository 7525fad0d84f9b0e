package network

import (
	"bytes"
	"net"
	"sort"
)

// Net is a snapshot of a network interface and its addresses.
type Net struct {
	Interface net.Interface
	Addrs     []net.IPNet
}

func (n *Net) Name() string {
	return n.Interface.Name
}

func (n *Net) IsUp() bool {
	return n.Interface.Flags&net.FlagUp != 0
}

func (n *Net) IsLoopback() bool {
	return n.Interface.Flags&net.FlagLoopback != 0
}

func (n *Net) IsBroadcast() bool {
	return n.Interface.Flags&net.FlagBroadcast != 0
}

func (n *Net) IsPointToPoint() bool {
	return n.Interface.Flags&net.FlagPointToPoint != 0
}

// HasGlobalUnicast reports if the interface has an address
// that can reach beyond the local link. Private ranges count.
func (n *Net) HasGlobalUnicast() bool {
	for _, addr := range n.Addrs {
		if addr.IP.IsGlobalUnicast() {
			return true
		}
	}
	return false
}

// IsUsable reports if traffic can be routed over the interface.
func (n *Net) IsUsable() bool {
	return n.IsUp() && !n.IsLoopback() && n.HasGlobalUnicast()
}

func (n *Net) HasIP(ip net.IP) bool {
	for _, addr := range n.Addrs {
		if addr.IP.Equal(ip) {
			return true
		}
	}
	return false
}

func (n *Net) Equal(other *Net) bool {
	a, b := n.Interface, other.Interface
	if a.Index != b.Index || a.Name != b.Name || a.Flags != b.Flags ||
		a.MTU != b.MTU || !bytes.Equal(a.HardwareAddr, b.HardwareAddr) {
		return false
	}
	if len(n.Addrs) != len(other.Addrs) {
		return false
	}
	for i := range n.Addrs {
		if !n.Addrs[i].IP.Equal(other.Addrs[i].IP) || !bytes.Equal(n.Addrs[i].Mask, other.Addrs[i].Mask) {
			return false
		}
	}
	return true
}

// Sort orders nets by interface index.
func Sort(nets []Net) {
	sort.SliceStable(nets, func(i, j int) bool {
		return nets[i].Interface.Index < nets[j].Interface.Index
	})
}

// Equal compares two sorted snapshots.
func Equal(a, b []Net) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(&b[i]) {
			return false
		}
	}
	return true
}

// Find returns the net with the interface index.
func Find(nets []Net, index int) (Net, bool) {
	for _, n := range nets {
		if n.Interface.Index == index {
			return n, true
		}
	}
	return Net{}, false
}

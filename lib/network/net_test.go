package network

import (
	"context"
	"errors"
	psnet "github.com/shirou/gopsutil/v3/net"
	"github.com/stretchr/testify/assert"
	"golang.org/x/net/nettest"
	"net"
	"projekt/connectivity/lib/platform"
	"testing"
)

func TestFromStat(t *testing.T) {
	n := fromStat(psnet.InterfaceStat{
		Index:        3,
		MTU:          1500,
		Name:         "wlan0",
		HardwareAddr: "aa:bb:cc:dd:ee:ff",
		Flags:        []string{"up", "broadcast", "multicast", "running"},
		Addrs: []psnet.InterfaceAddr{
			{Addr: "192.168.1.10/24"},
			{Addr: "fe80::1/64"},
			{Addr: "10.1.2.3"},
			{Addr: "garbage"},
		},
	})
	assert.Equal(t, "wlan0", n.Name())
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", n.Interface.HardwareAddr.String())
	assert.True(t, n.IsUp())
	assert.True(t, n.IsBroadcast())
	assert.False(t, n.IsLoopback())
	assert.False(t, n.IsPointToPoint())
	assert.Len(t, n.Addrs, 3)
	assert.Equal(t, "192.168.1.10/24", n.Addrs[0].String())
	assert.Equal(t, "10.1.2.3/32", n.Addrs[2].String())
	assert.True(t, n.HasIP(net.ParseIP("192.168.1.10")))
	assert.True(t, n.IsUsable())
}

func TestNet_IsUsable(t *testing.T) {
	linkLocal := testNet(2, "eth0", "169.254.0.5")
	assert.False(t, linkLocal.HasGlobalUnicast())
	assert.False(t, linkLocal.IsUsable())

	down := testNet(2, "eth0", "10.0.0.1")
	down.Interface.Flags &^= net.FlagUp
	assert.False(t, down.IsUsable())

	loopback := testNet(1, "lo", "127.0.0.1")
	loopback.Interface.Flags |= net.FlagLoopback
	assert.False(t, loopback.IsUsable())
}

func TestEqual(t *testing.T) {
	a := []Net{testNet(1, "eth0", "10.0.0.1")}
	b := []Net{testNet(1, "eth0", "10.0.0.1")}
	assert.True(t, Equal(a, b))
	b[0].Addrs[0].IP = net.ParseIP("10.0.0.2")
	assert.False(t, Equal(a, b))
	assert.False(t, Equal(a, nil))
}

func TestDefaultNet(t *testing.T) {
	nets := []Net{testNet(2, "wlan0", "192.168.1.10"), testNet(3, "eth0", "10.0.0.2")}
	n, ok := DefaultNet(nets, net.ParseIP("10.0.0.2"))
	assert.True(t, ok)
	assert.Equal(t, "eth0", n.Name())
	_, ok = DefaultNet(nets, net.ParseIP("8.8.8.8"))
	assert.False(t, ok)
}

func TestNameTransport(t *testing.T) {
	cases := map[string]platform.Transport{
		"wlan0":       platform.TransportWifi,
		"wlp3s0":      platform.TransportWifi,
		"eth0":        platform.TransportEthernet,
		"enp0s31f6":   platform.TransportEthernet,
		"en0":         platform.TransportEthernet,
		"rmnet_data":  platform.TransportCellular,
		"pdp_ip0":     platform.TransportCellular,
		"bnep0":       platform.TransportBluetooth,
		"tun0":        platform.TransportVpn,
		"utun3":       platform.TransportVpn,
		"wg0":         platform.TransportVpn,
		"usb0":        platform.TransportUsb,
		"wpan0":       platform.TransportThread,
		"lowpan0":     platform.TransportLowPan,
		"aware_data0": platform.TransportWifiAware,
	}
	for name, expected := range cases {
		transport, ok := nameTransport(name)
		assert.True(t, ok, name)
		assert.Equal(t, expected, transport, name)
	}
	_, ok := nameTransport("docker0")
	assert.False(t, ok)
}

func TestTransports_Loopback(t *testing.T) {
	lo := testNet(1, "lo", "127.0.0.1")
	lo.Interface.Flags |= net.FlagLoopback
	assert.Empty(t, Transports(lo))
}

func TestDefaultRoute(t *testing.T) {
	if _, err := nettest.RoutedInterface("ip4", net.FlagUp); err != nil {
		t.Skip("no routed interface:", err)
	}
	ip, err := DefaultRoute(context.Background())
	if err != nil {
		assert.True(t, errors.Is(err, ErrNoRoute))
		return
	}
	assert.NotNil(t, ip)
	assert.False(t, ip.IsUnspecified())
}

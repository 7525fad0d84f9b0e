package network

import (
	"projekt/connectivity/lib/platform"
	"strings"
)

// namePrefixes maps conventional interface name prefixes to transports.
// Longer prefixes must come before shorter ones sharing the same start.
var namePrefixes = []struct {
	prefix    string
	transport platform.Transport
}{
	{"aware_data", platform.TransportWifiAware},
	{"nan", platform.TransportWifiAware},
	{"wlan", platform.TransportWifi},
	{"wlp", platform.TransportWifi},
	{"wl", platform.TransportWifi},
	{"ath", platform.TransportWifi},
	{"wwan", platform.TransportCellular},
	{"rmnet", platform.TransportCellular},
	{"ccmni", platform.TransportCellular},
	{"pdp_ip", platform.TransportCellular},
	{"bnep", platform.TransportBluetooth},
	{"bt-pan", platform.TransportBluetooth},
	{"lowpan", platform.TransportLowPan},
	{"wpan", platform.TransportThread},
	{"usb", platform.TransportUsb},
	{"rndis", platform.TransportUsb},
	{"tun", platform.TransportVpn},
	{"tap", platform.TransportVpn},
	{"utun", platform.TransportVpn},
	{"wg", platform.TransportVpn},
	{"ppp", platform.TransportVpn},
	{"ipsec", platform.TransportVpn},
	{"tailscale", platform.TransportVpn},
	{"eth", platform.TransportEthernet},
	{"en", platform.TransportEthernet},
	{"em", platform.TransportEthernet},
}

// Transports classifies the interface of n.
// Interfaces that cannot be classified have no transports.
func Transports(n Net) []platform.Transport {
	if n.IsLoopback() {
		return nil
	}
	if t, ok := deviceTransport(n.Interface.Name); ok {
		return []platform.Transport{t}
	}
	if t, ok := nameTransport(n.Interface.Name); ok {
		return []platform.Transport{t}
	}
	return nil
}

func nameTransport(name string) (platform.Transport, bool) {
	name = strings.ToLower(name)
	for _, p := range namePrefixes {
		if strings.HasPrefix(name, p.prefix) {
			return p.transport, true
		}
	}
	return 0, false
}

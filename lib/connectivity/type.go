package connectivity

import (
	"fmt"
	"github.com/stoewer/go-strcase"
	"projekt/connectivity/lib/platform"
)

// NetworkType is the transport of the network carrying traffic.
// None means there is no active network, Other means the active network
// uses a transport that is not recognized.
type NetworkType uint16

const (
	Other     NetworkType = 0x0000
	None      NetworkType = 0x0001
	Wifi      NetworkType = 0x0002
	Mobile    NetworkType = 0x0003
	Bluetooth NetworkType = 0x0004
	Ethernet  NetworkType = 0x0005
	Vpn       NetworkType = 0x0006

	// Extended types are only reported by platforms with capability queries.

	Thread    NetworkType = 0x0007
	LowPan    NetworkType = 0x0008
	Satellite NetworkType = 0x0009
	Usb       NetworkType = 0x0010
	WifiAware NetworkType = 0x0011
)

var typeNames = map[NetworkType]string{
	Other:     "Other",
	None:      "None",
	Wifi:      "Wifi",
	Mobile:    "Mobile",
	Bluetooth: "Bluetooth",
	Ethernet:  "Ethernet",
	Vpn:       "Vpn",
	Thread:    "Thread",
	LowPan:    "LowPan",
	Satellite: "Satellite",
	Usb:       "Usb",
	WifiAware: "WifiAware",
}

// Types lists all network types.
var Types = []NetworkType{None, Wifi, Mobile, Bluetooth, Ethernet, Vpn,
	Thread, LowPan, Satellite, Usb, WifiAware, Other}

func (t NetworkType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("NetworkType(%#x)", uint16(t))
}

// IsExtended reports if t can only be produced by capability queries.
func (t NetworkType) IsExtended() bool {
	switch t {
	case Thread, LowPan, Satellite, Usb, WifiAware:
		return true
	}
	return false
}

func ParseNetworkType(s string) (NetworkType, error) {
	for t, name := range typeNames {
		if normalize(name) == normalize(s) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown network type %q", s)
}

func (t NetworkType) MarshalText() ([]byte, error) {
	return []byte(strcase.KebabCase(t.String())), nil
}

func (t *NetworkType) UnmarshalText(text []byte) (err error) {
	*t, err = ParseNetworkType(string(text))
	return
}

// transportPriority decides the type of networks with more than one transport.
var transportPriority = []struct {
	transport platform.Transport
	typ       NetworkType
}{
	{platform.TransportWifi, Wifi},
	{platform.TransportCellular, Mobile},
	{platform.TransportEthernet, Ethernet},
	{platform.TransportBluetooth, Bluetooth},
	{platform.TransportVpn, Vpn},
	{platform.TransportThread, Thread},
	{platform.TransportLowPan, LowPan},
	{platform.TransportUsb, Usb},
	{platform.TransportWifiAware, WifiAware},
	{platform.TransportSatellite, Satellite},
}

// TypeOf classifies a network by its capabilities.
// Nil capabilities mean there is no network.
func TypeOf(c *platform.Capabilities) NetworkType {
	if c == nil {
		return None
	}
	for _, p := range transportPriority {
		if c.HasTransport(p.transport) {
			return p.typ
		}
	}
	return Other
}

// TypeOfLegacy classifies a network by its legacy description.
// Only the six basic types and Other are ever returned.
func TypeOfLegacy(info *platform.NetworkInfo) NetworkType {
	if info == nil {
		return None
	}
	switch info.Type {
	case platform.LegacyTypeWifi:
		return Wifi
	case platform.LegacyTypeMobile:
		return Mobile
	case platform.LegacyTypeEthernet:
		return Ethernet
	case platform.LegacyTypeBluetooth:
		return Bluetooth
	case platform.LegacyTypeVpn:
		return Vpn
	default:
		return Other
	}
}

// CurrentType returns the type of the active network.
// Capability queries are used when the platform supports them.
func CurrentType(m platform.Manager) (NetworkType, error) {
	if !m.Level().SupportsCapabilities() {
		info, err := m.ActiveNetworkInfo()
		if err != nil {
			return None, err
		}
		return TypeOfLegacy(info), nil
	}
	n, err := m.ActiveNetwork()
	if err != nil || n == nil {
		return None, err
	}
	c, err := m.NetworkCapabilities(*n)
	if err != nil {
		return None, err
	}
	return TypeOf(c), nil
}

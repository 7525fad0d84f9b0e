package platform

import (
	"fmt"
	"github.com/stoewer/go-strcase"
	"strings"
)

// Level orders the generations of the platform's network API.
// Every level includes the features of the levels below it.
type Level int

const (
	// LevelBroadcast only offers legacy info queries and the connectivity broadcast.
	LevelBroadcast Level = iota + 1
	// LevelScopedCallback adds callbacks scoped to a set of transports.
	LevelScopedCallback
	// LevelCapabilities adds per-network capability and transport queries.
	LevelCapabilities
	// LevelDefaultNetwork adds callbacks that follow the default network.
	LevelDefaultNetwork
)

var levelNames = map[Level]string{
	LevelBroadcast:      "Broadcast",
	LevelScopedCallback: "ScopedCallback",
	LevelCapabilities:   "Capabilities",
	LevelDefaultNetwork: "DefaultNetwork",
}

func (l Level) SupportsScopedCallback() bool  { return l >= LevelScopedCallback }
func (l Level) SupportsCapabilities() bool    { return l >= LevelCapabilities }
func (l Level) SupportsDefaultCallback() bool { return l >= LevelDefaultNetwork }

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

func ParseLevel(s string) (Level, error) {
	for l, name := range levelNames {
		if normalize(name) == normalize(s) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown platform level %q", s)
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(strcase.KebabCase(l.String())), nil
}

func (l *Level) UnmarshalText(text []byte) (err error) {
	*l, err = ParseLevel(string(text))
	return
}

// Transport identifies the medium of a network.
// Values match the transport codes of the platform's capability query.
type Transport int

const (
	TransportCellular  Transport = 0
	TransportWifi      Transport = 1
	TransportBluetooth Transport = 2
	TransportEthernet  Transport = 3
	TransportVpn       Transport = 4
	TransportWifiAware Transport = 5
	TransportLowPan    Transport = 6
	TransportUsb       Transport = 8
	TransportThread    Transport = 9
	TransportSatellite Transport = 10
)

var transportNames = map[Transport]string{
	TransportCellular:  "Cellular",
	TransportWifi:      "Wifi",
	TransportBluetooth: "Bluetooth",
	TransportEthernet:  "Ethernet",
	TransportVpn:       "Vpn",
	TransportWifiAware: "WifiAware",
	TransportLowPan:    "LowPan",
	TransportUsb:       "Usb",
	TransportThread:    "Thread",
	TransportSatellite: "Satellite",
}

func (t Transport) String() string {
	if name, ok := transportNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Transport(%d)", int(t))
}

func ParseTransport(s string) (Transport, error) {
	for t, name := range transportNames {
		if normalize(name) == normalize(s) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown transport %q", s)
}

func (t Transport) MarshalText() ([]byte, error) {
	return []byte(strcase.KebabCase(t.String())), nil
}

func (t *Transport) UnmarshalText(text []byte) (err error) {
	*t, err = ParseTransport(string(text))
	return
}

// Capability is a feature advertised by a network.
type Capability int

const (
	CapabilityInternet   Capability = 12
	CapabilityNotMetered Capability = 11
	CapabilityValidated  Capability = 16
)

// LegacyType is the network type code reported by the legacy info query.
type LegacyType int

const (
	LegacyTypeMobile    LegacyType = 0
	LegacyTypeWifi      LegacyType = 1
	LegacyTypeBluetooth LegacyType = 7
	LegacyTypeDummy     LegacyType = 8
	LegacyTypeEthernet  LegacyType = 9
	LegacyTypeVpn       LegacyType = 17
)

// LegacyTypeOf maps a transport set onto the single legacy type code
// the oldest query reports for it. Transports without a legacy code
// report the dummy type.
func LegacyTypeOf(transports []Transport) LegacyType {
	c := &Capabilities{Transports: transports}
	switch {
	case c.HasTransport(TransportVpn):
		return LegacyTypeVpn
	case c.HasTransport(TransportWifi):
		return LegacyTypeWifi
	case c.HasTransport(TransportEthernet):
		return LegacyTypeEthernet
	case c.HasTransport(TransportCellular):
		return LegacyTypeMobile
	case c.HasTransport(TransportBluetooth):
		return LegacyTypeBluetooth
	default:
		return LegacyTypeDummy
	}
}

func normalize(s string) string {
	return strings.ReplaceAll(strcase.SnakeCase(strings.TrimSpace(s)), "_", "")
}

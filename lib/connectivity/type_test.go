package connectivity

import (
	"github.com/stretchr/testify/assert"
	"projekt/connectivity/lib/platform"
	"projekt/connectivity/lib/platform/sim"
	"testing"
)

func caps(transports ...platform.Transport) *platform.Capabilities {
	return &platform.Capabilities{Transports: transports}
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, None, TypeOf(nil))
	assert.Equal(t, Other, TypeOf(caps()))
	assert.Equal(t, Wifi, TypeOf(caps(platform.TransportWifi)))
	assert.Equal(t, Mobile, TypeOf(caps(platform.TransportCellular)))
	assert.Equal(t, Ethernet, TypeOf(caps(platform.TransportEthernet)))
	assert.Equal(t, Bluetooth, TypeOf(caps(platform.TransportBluetooth)))
	assert.Equal(t, Vpn, TypeOf(caps(platform.TransportVpn)))
	assert.Equal(t, Thread, TypeOf(caps(platform.TransportThread)))
	assert.Equal(t, LowPan, TypeOf(caps(platform.TransportLowPan)))
	assert.Equal(t, Usb, TypeOf(caps(platform.TransportUsb)))
	assert.Equal(t, WifiAware, TypeOf(caps(platform.TransportWifiAware)))
	assert.Equal(t, Satellite, TypeOf(caps(platform.TransportSatellite)))
}

func TestTypeOf_Priority(t *testing.T) {
	// A vpn running on top of wifi is reported as wifi.
	assert.Equal(t, Wifi, TypeOf(caps(platform.TransportVpn, platform.TransportWifi)))
	assert.Equal(t, Mobile, TypeOf(caps(platform.TransportEthernet, platform.TransportCellular)))
	assert.Equal(t, Thread, TypeOf(caps(platform.TransportSatellite, platform.TransportThread)))
}

func TestTypeOf_UnknownTransports(t *testing.T) {
	for _, code := range []platform.Transport{7, 11, 42, -1, 1 << 20} {
		assert.Equal(t, Other, TypeOf(caps(code)), code)
	}
}

func TestTypeOfLegacy(t *testing.T) {
	info := func(typ platform.LegacyType) *platform.NetworkInfo {
		return &platform.NetworkInfo{Type: typ, Connected: true}
	}
	assert.Equal(t, None, TypeOfLegacy(nil))
	assert.Equal(t, Wifi, TypeOfLegacy(info(platform.LegacyTypeWifi)))
	assert.Equal(t, Mobile, TypeOfLegacy(info(platform.LegacyTypeMobile)))
	assert.Equal(t, Ethernet, TypeOfLegacy(info(platform.LegacyTypeEthernet)))
	assert.Equal(t, Bluetooth, TypeOfLegacy(info(platform.LegacyTypeBluetooth)))
	assert.Equal(t, Vpn, TypeOfLegacy(info(platform.LegacyTypeVpn)))
	for _, code := range []platform.LegacyType{platform.LegacyTypeDummy, 4, 5, 99, -7} {
		typ := TypeOfLegacy(info(code))
		assert.Equal(t, Other, typ, code)
		assert.False(t, typ.IsExtended())
	}
}

func TestCurrentType_CollapsesOnLegacyLevels(t *testing.T) {
	for _, level := range levels {
		d := sim.New(sim.WithLevel(level))
		d.Connect("wpan0", platform.TransportThread)
		typ, err := CurrentType(d)
		assert.Nil(t, err)
		if level.SupportsCapabilities() {
			assert.Equal(t, Thread, typ, level)
		} else {
			assert.Equal(t, Other, typ, level)
		}
	}
}

func TestNetworkType_String(t *testing.T) {
	assert.Equal(t, "WifiAware", WifiAware.String())
	assert.Equal(t, "None", None.String())
	assert.Equal(t, "NetworkType(0x99)", NetworkType(0x99).String())

	text, err := LowPan.MarshalText()
	assert.Nil(t, err)
	assert.Equal(t, "low-pan", string(text))
}

func TestParseNetworkType(t *testing.T) {
	for _, typ := range Types {
		parsed, err := ParseNetworkType(typ.String())
		assert.Nil(t, err)
		assert.Equal(t, typ, parsed)
	}
	for _, s := range []string{"wifi-aware", "WIFI_AWARE", "wifi_aware", " WifiAware "} {
		parsed, err := ParseNetworkType(s)
		assert.Nil(t, err, s)
		assert.Equal(t, WifiAware, parsed, s)
	}
	var typ NetworkType
	assert.Nil(t, typ.UnmarshalText([]byte("ethernet")))
	assert.Equal(t, Ethernet, typ)
	_, err := ParseNetworkType("token-ring")
	assert.NotNil(t, err)
}

func TestNetworkState(t *testing.T) {
	for _, state := range States {
		assert.True(t, state.Valid())
		parsed, err := ParseNetworkState(state.String())
		assert.Nil(t, err)
		assert.Equal(t, state, parsed)
	}
	assert.False(t, NetworkState(0).Valid())
	assert.Equal(t, "NetworkState(0x1)", NetworkState(1).String())
	_, err := ParseNetworkState("flaky")
	assert.NotNil(t, err)
}

package connectivity

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"projekt/connectivity/lib/platform"
	"projekt/connectivity/lib/platform/sim"
	"testing"
)

type predicates struct {
	connected, wifi, mobile, ethernet, bluetooth bool
}

func query(t *testing.T, ctx platform.Context) (p predicates) {
	var err error
	p.connected, err = IsConnected(ctx)
	assert.Nil(t, err)
	p.wifi, err = IsWifi(ctx)
	assert.Nil(t, err)
	p.mobile, err = IsMobile(ctx)
	assert.Nil(t, err)
	p.ethernet, err = IsEthernet(ctx)
	assert.Nil(t, err)
	p.bluetooth, err = IsBluetooth(ctx)
	assert.Nil(t, err)
	return
}

func TestPredicates_Wifi(t *testing.T) {
	for _, level := range levels {
		d := sim.New(sim.WithLevel(level))
		d.Connect("wlan0", platform.TransportWifi)
		assert.Equal(t, predicates{connected: true, wifi: true}, query(t, d), level)
	}
}

func TestPredicates_NoActiveNetwork(t *testing.T) {
	for _, level := range levels {
		d := sim.New(sim.WithLevel(level))
		assert.Equal(t, predicates{}, query(t, d), level)

		o, r := newObserver(t, d)
		assert.Nil(t, o.Start())
		assert.Equal(t, []change{{Unavailable, None}}, r.changes)
		assert.Nil(t, o.Stop())
	}
}

func TestPredicates_WithoutService(t *testing.T) {
	assert.Equal(t, predicates{}, query(t, sim.New(sim.WithoutService())))
	assert.Equal(t, predicates{}, query(t, nil))
}

func TestPredicates_Transports(t *testing.T) {
	d := sim.New()
	n := d.Connect("rmnet0", platform.TransportCellular)
	assert.Equal(t, predicates{connected: true, mobile: true}, query(t, d))

	eth := d.Connect("eth0", platform.TransportEthernet)
	d.SetActive(eth)
	assert.Equal(t, predicates{connected: true, ethernet: true}, query(t, d))

	bt := d.Connect("bnep0", platform.TransportBluetooth)
	d.SetActive(bt)
	assert.Equal(t, predicates{connected: true, bluetooth: true}, query(t, d))

	d.SetActive(n)
	d.SetInternet(n, false)
	assert.Equal(t, predicates{mobile: true}, query(t, d))
}

func TestIsBluetooth_Legacy(t *testing.T) {
	for _, level := range []platform.Level{platform.LevelBroadcast, platform.LevelScopedCallback} {
		d := sim.New(sim.WithLevel(level))
		d.Connect("bnep0", platform.TransportBluetooth)
		ok, err := IsBluetooth(d)
		assert.Nil(t, err)
		assert.False(t, ok, level)

		connected, err := IsConnected(d)
		assert.Nil(t, err)
		assert.True(t, connected)
	}
}

func TestPredicates_PermissionDenied(t *testing.T) {
	d := sim.New(sim.WithDeniedPermissions(platform.AccessNetworkState))
	d.Connect("wlan0", platform.TransportWifi)
	for _, predicate := range []func(platform.Context) (bool, error){
		IsConnected, IsWifi, IsMobile, IsEthernet, IsBluetooth,
	} {
		ok, err := predicate(d)
		assert.False(t, ok)
		assert.True(t, errors.Is(err, platform.ErrPermissionDenied))
	}
}

package connectivity

import (
	"errors"
	"projekt/connectivity/lib/platform"
)

// The predicates below are snapshots and do not register for updates.
// They report false if the network management service cannot be resolved
// or there is no active network. Permission failures are returned as is.

// IsConnected reports if there is an active network with internet access.
func IsConnected(ctx platform.Context) (bool, error) {
	m, ok, err := service(ctx)
	if !ok {
		return false, err
	}
	if !m.Level().SupportsCapabilities() {
		info, err := m.ActiveNetworkInfo()
		if err != nil || info == nil {
			return false, err
		}
		return info.Connected, nil
	}
	c, err := activeCapabilities(m)
	if err != nil || c == nil {
		return false, err
	}
	return c.HasCapability(platform.CapabilityInternet), nil
}

func IsWifi(ctx platform.Context) (bool, error) {
	return hasTransport(ctx, platform.TransportWifi, platform.LegacyTypeWifi)
}

func IsMobile(ctx platform.Context) (bool, error) {
	return hasTransport(ctx, platform.TransportCellular, platform.LegacyTypeMobile)
}

func IsEthernet(ctx platform.Context) (bool, error) {
	return hasTransport(ctx, platform.TransportEthernet, platform.LegacyTypeEthernet)
}

// IsBluetooth always reports false on platforms without capability queries.
func IsBluetooth(ctx platform.Context) (bool, error) {
	m, ok, err := service(ctx)
	if !ok || !m.Level().SupportsCapabilities() {
		return false, err
	}
	c, err := activeCapabilities(m)
	if err != nil {
		return false, err
	}
	return c.HasTransport(platform.TransportBluetooth), nil
}

func hasTransport(ctx platform.Context, t platform.Transport, legacy platform.LegacyType) (bool, error) {
	m, ok, err := service(ctx)
	if !ok {
		return false, err
	}
	if !m.Level().SupportsCapabilities() {
		info, err := m.ActiveNetworkInfo()
		if err != nil || info == nil {
			return false, err
		}
		return info.Type == legacy, nil
	}
	c, err := activeCapabilities(m)
	if err != nil {
		return false, err
	}
	return c.HasTransport(t), nil
}

// service resolves the manager. A missing service is not an error here.
func service(ctx platform.Context) (m platform.Manager, ok bool, err error) {
	if ctx == nil {
		return nil, false, nil
	}
	m, err = ctx.Service()
	if errors.Is(err, platform.ErrServiceUnavailable) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return m, m != nil, nil
}

func activeCapabilities(m platform.Manager) (*platform.Capabilities, error) {
	n, err := m.ActiveNetwork()
	if err != nil || n == nil {
		return nil, err
	}
	return m.NetworkCapabilities(*n)
}

package sim

import "projekt/connectivity/lib/platform"

// Connect adds a network with internet access on the interface.
// The network becomes the default network if there is none.
func (d *Device) Connect(iface string, transports ...platform.Transport) platform.Network {
	d.mu.Lock()
	d.nextId++
	nw := &network{
		handle: platform.Network{ID: d.nextId, Interface: iface},
		caps: platform.Capabilities{
			Transports:   append([]platform.Transport(nil), transports...),
			Capabilities: []platform.Capability{platform.CapabilityInternet},
		},
	}
	d.networks = append(d.networks, nw)
	isDefault := d.active == nil
	if isDefault {
		d.active = nw
	}
	targets := d.targets(nw, isDefault)
	d.mu.Unlock()

	for _, cb := range targets {
		cb.OnAvailable(nw.handle)
	}
	d.Broadcast(platform.Intent{Action: platform.ActionConnectivityChange})
	return nw.handle
}

// Disconnect removes the network. If it was the default network
// the first remaining network becomes the new default.
func (d *Device) Disconnect(n platform.Network) {
	d.mu.Lock()
	nw := d.find(n)
	if nw == nil {
		d.mu.Unlock()
		return
	}
	wasDefault := d.active == nw
	lost := d.targets(nw, wasDefault)
	for i, other := range d.networks {
		if other == nw {
			d.networks = append(d.networks[:i:i], d.networks[i+1:]...)
			break
		}
	}
	var next *network
	var available []platform.NetworkCallback
	if wasDefault {
		d.active = nil
		if len(d.networks) > 0 {
			next = d.networks[0]
			d.active = next
			available = d.defaultTargets()
		}
	}
	d.mu.Unlock()

	for _, cb := range lost {
		cb.OnLost(nw.handle)
	}
	for _, cb := range available {
		cb.OnAvailable(next.handle)
	}
	d.Broadcast(platform.Intent{Action: platform.ActionConnectivityChange})
}

// SetActive makes n the default network.
func (d *Device) SetActive(n platform.Network) {
	d.mu.Lock()
	nw := d.find(n)
	if nw == nil || d.active == nw {
		d.mu.Unlock()
		return
	}
	d.active = nw
	targets := d.defaultTargets()
	d.mu.Unlock()

	for _, cb := range targets {
		cb.OnAvailable(nw.handle)
	}
	d.Broadcast(platform.Intent{Action: platform.ActionConnectivityChange})
}

// SetInternet changes whether n advertises internet access.
func (d *Device) SetInternet(n platform.Network, internet bool) {
	d.mu.Lock()
	nw := d.find(n)
	if nw == nil {
		d.mu.Unlock()
		return
	}
	nw.caps.Capabilities = nil
	if internet {
		nw.caps.Capabilities = []platform.Capability{platform.CapabilityInternet}
	}
	d.mu.Unlock()
	d.Broadcast(platform.Intent{Action: platform.ActionConnectivityChange})
}

// Losing announces that n is about to be lost.
func (d *Device) Losing(n platform.Network, maxMsToLive int) {
	d.mu.Lock()
	nw := d.find(n)
	if nw == nil {
		d.mu.Unlock()
		return
	}
	targets := d.targets(nw, d.active == nw)
	d.mu.Unlock()

	for _, cb := range targets {
		cb.OnLosing(nw.handle, maxMsToLive)
	}
}

// Unavailable reports to every callback that no network could be found.
func (d *Device) Unavailable() {
	d.mu.Lock()
	targets := make([]platform.NetworkCallback, 0, len(d.callbacks))
	for _, e := range d.callbacks {
		targets = append(targets, e.callback)
	}
	d.mu.Unlock()

	for _, cb := range targets {
		cb.OnUnavailable()
	}
}

// Broadcast delivers the intent to all receivers with a matching filter.
func (d *Device) Broadcast(intent platform.Intent) {
	d.mu.Lock()
	var targets []platform.Receiver
	if !d.denied[platform.AccessNetworkState] {
		for _, e := range d.receivers {
			if e.filter.Matches(intent) {
				targets = append(targets, e.receiver)
			}
		}
	}
	d.mu.Unlock()

	for _, r := range targets {
		r.OnReceive(intent)
	}
}

// targets returns the callbacks interested in nw.
func (d *Device) targets(nw *network, isDefault bool) (result []platform.NetworkCallback) {
	for _, e := range d.callbacks {
		if e.defaultNetwork {
			if isDefault {
				result = append(result, e.callback)
			}
		} else if e.request.Matches(&nw.caps) {
			result = append(result, e.callback)
		}
	}
	return
}

func (d *Device) defaultTargets() (result []platform.NetworkCallback) {
	for _, e := range d.callbacks {
		if e.defaultNetwork {
			result = append(result, e.callback)
		}
	}
	return
}

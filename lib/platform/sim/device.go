// Package sim provides an in-memory platform whose network signals
// are injected by the caller. Signals are dispatched synchronously
// on the goroutine that injects them.
package sim

import (
	"fmt"
	"projekt/connectivity/lib/platform"
	"sync"
)

type network struct {
	handle platform.Network
	caps   platform.Capabilities
}

type callbackEntry struct {
	callback       platform.NetworkCallback
	defaultNetwork bool
	request        platform.Request
}

type receiverEntry struct {
	receiver platform.Receiver
	filter   platform.Filter
}

// Device is a simulated platform. It implements both
// platform.Context and platform.Manager.
type Device struct {
	mu        sync.Mutex
	level     platform.Level
	service   bool
	denied    map[platform.Permission]bool
	nextId    int64
	networks  []*network
	active    *network
	callbacks []*callbackEntry
	receivers []*receiverEntry
}

type Option func(d *Device)

func WithLevel(level platform.Level) Option {
	return func(d *Device) {
		d.level = level
	}
}

// WithoutService makes the network management service unresolvable.
func WithoutService() Option {
	return func(d *Device) {
		d.service = false
	}
}

func WithDeniedPermissions(permissions ...platform.Permission) Option {
	return func(d *Device) {
		for _, p := range permissions {
			d.denied[p] = true
		}
	}
}

func New(opts ...Option) *Device {
	d := &Device{
		level:   platform.LevelDefaultNetwork,
		service: true,
		denied:  map[platform.Permission]bool{},
		nextId:  100,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Device) Service() (platform.Manager, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.service {
		return nil, platform.ErrServiceUnavailable
	}
	return d, nil
}

func (d *Device) Level() platform.Level {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.level
}

func (d *Device) Grant(p platform.Permission) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.denied, p)
}

func (d *Device) Deny(p platform.Permission) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.denied[p] = true
}

func (d *Device) check(op string, p platform.Permission) error {
	if d.denied[p] {
		return &platform.SecurityError{Op: op, Permission: p}
	}
	return nil
}

func (d *Device) requireLevel(op string, level platform.Level) error {
	if d.level < level {
		return fmt.Errorf("%v requires %v, device is %v: %w", op, level, d.level, platform.ErrUnsupported)
	}
	return nil
}

func (d *Device) ActiveNetwork() (*platform.Network, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.check("ActiveNetwork", platform.AccessNetworkState); err != nil {
		return nil, err
	}
	if d.active == nil {
		return nil, nil
	}
	n := d.active.handle
	return &n, nil
}

func (d *Device) NetworkCapabilities(n platform.Network) (*platform.Capabilities, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireLevel("NetworkCapabilities", platform.LevelCapabilities); err != nil {
		return nil, err
	}
	if err := d.check("NetworkCapabilities", platform.AccessNetworkState); err != nil {
		return nil, err
	}
	nw := d.find(n)
	if nw == nil {
		return nil, nil
	}
	return &platform.Capabilities{
		Transports:   append([]platform.Transport(nil), nw.caps.Transports...),
		Capabilities: append([]platform.Capability(nil), nw.caps.Capabilities...),
	}, nil
}

func (d *Device) ActiveNetworkInfo() (*platform.NetworkInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.check("ActiveNetworkInfo", platform.AccessNetworkState); err != nil {
		return nil, err
	}
	if d.active == nil {
		return nil, nil
	}
	return &platform.NetworkInfo{
		Type:      platform.LegacyTypeOf(d.active.caps.Transports),
		Connected: d.active.caps.HasCapability(platform.CapabilityInternet),
	}, nil
}

func (d *Device) RegisterDefaultNetworkCallback(cb platform.NetworkCallback) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireLevel("RegisterDefaultNetworkCallback", platform.LevelDefaultNetwork); err != nil {
		return err
	}
	return d.addCallback("RegisterDefaultNetworkCallback", &callbackEntry{
		callback:       cb,
		defaultNetwork: true,
	})
}

func (d *Device) RegisterNetworkCallback(req platform.Request, cb platform.NetworkCallback) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireLevel("RegisterNetworkCallback", platform.LevelScopedCallback); err != nil {
		return err
	}
	return d.addCallback("RegisterNetworkCallback", &callbackEntry{
		callback: cb,
		request:  req,
	})
}

func (d *Device) addCallback(op string, e *callbackEntry) error {
	if err := d.check(op, platform.AccessNetworkState); err != nil {
		return err
	}
	for _, other := range d.callbacks {
		if other.callback == e.callback {
			return platform.ErrAlreadyRegistered
		}
	}
	d.callbacks = append(d.callbacks, e)
	return nil
}

func (d *Device) UnregisterNetworkCallback(cb platform.NetworkCallback) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireLevel("UnregisterNetworkCallback", platform.LevelScopedCallback); err != nil {
		return err
	}
	for i, e := range d.callbacks {
		if e.callback == cb {
			d.callbacks = append(d.callbacks[:i:i], d.callbacks[i+1:]...)
			return nil
		}
	}
	return platform.ErrNotRegistered
}

func (d *Device) RegisterReceiver(r platform.Receiver, f platform.Filter) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.check("RegisterReceiver", platform.AccessNetworkState); err != nil {
		return err
	}
	for _, e := range d.receivers {
		if e.receiver == r {
			return platform.ErrAlreadyRegistered
		}
	}
	d.receivers = append(d.receivers, &receiverEntry{r, f})
	return nil
}

func (d *Device) UnregisterReceiver(r platform.Receiver) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, e := range d.receivers {
		if e.receiver == r {
			d.receivers = append(d.receivers[:i:i], d.receivers[i+1:]...)
			return nil
		}
	}
	return platform.ErrNotRegistered
}

// Registrations returns the number of registered callbacks and receivers.
func (d *Device) Registrations() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.callbacks) + len(d.receivers)
}

func (d *Device) find(n platform.Network) *network {
	for _, nw := range d.networks {
		if nw.handle.ID == n.ID {
			return nw
		}
	}
	return nil
}

// Lookup returns the connected network on the interface.
func (d *Device) Lookup(iface string) (platform.Network, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, nw := range d.networks {
		if nw.handle.Interface == iface {
			return nw.handle, true
		}
	}
	return platform.Network{}, false
}

package platform

import (
	"errors"
	"fmt"
)

var (
	ErrServiceUnavailable = errors.New("network management service is not available")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrUnsupported        = errors.New("operation is not supported on this platform level")
	ErrNotRegistered      = errors.New("callback or receiver is not registered")
	ErrAlreadyRegistered  = errors.New("callback or receiver is already registered")
)

// Permission names a capability that the host enforces on calls into the platform.
type Permission string

const (
	AccessNetworkState Permission = "access_network_state"
	AccessWifiState    Permission = "access_wifi_state"
	Internet           Permission = "internet"
)

// RequiredPermissions lists every permission an observer needs to be fully functional.
var RequiredPermissions = []Permission{AccessNetworkState, AccessWifiState, Internet}

// SecurityError is returned by a platform when the caller lacks a permission.
// It is never handled by this module and surfaces to the caller unchanged.
type SecurityError struct {
	Op         string
	Permission Permission
}

func (e *SecurityError) Error() string {
	return fmt.Sprintf("%v: missing permission %v", e.Op, e.Permission)
}

func (e *SecurityError) Is(target error) bool {
	return target == ErrPermissionDenied
}

// Network is a handle to a network known to the platform.
// Handles are only comparable with handles from the same platform instance.
type Network struct {
	ID        int64
	Interface string
}

func (n Network) String() string {
	if n.Interface == "" {
		return fmt.Sprintf("network#%v", n.ID)
	}
	return fmt.Sprintf("network#%v(%v)", n.ID, n.Interface)
}

// Capabilities describes the transports and features of a single network.
type Capabilities struct {
	Transports   []Transport
	Capabilities []Capability
}

func (c *Capabilities) HasTransport(t Transport) bool {
	if c == nil {
		return false
	}
	for _, other := range c.Transports {
		if other == t {
			return true
		}
	}
	return false
}

func (c *Capabilities) HasCapability(capability Capability) bool {
	if c == nil {
		return false
	}
	for _, other := range c.Capabilities {
		if other == capability {
			return true
		}
	}
	return false
}

// NetworkInfo is the legacy single-object description of the active network.
type NetworkInfo struct {
	Type      LegacyType
	Connected bool
}

// Request restricts a scoped callback to networks carrying any of the transports.
// An empty request matches every network.
type Request struct {
	Transports []Transport
}

func NewRequest(transports ...Transport) Request {
	return Request{Transports: transports}
}

func (r Request) Matches(c *Capabilities) bool {
	if c == nil {
		return false
	}
	if len(r.Transports) == 0 {
		return true
	}
	for _, t := range r.Transports {
		if c.HasTransport(t) {
			return true
		}
	}
	return false
}

// NetworkCallback receives change notifications for registered networks.
// Methods are invoked on a goroutine owned by the platform.
// The platform serializes calls into a single callback.
type NetworkCallback interface {
	OnAvailable(n Network)
	OnLosing(n Network, maxMsToLive int)
	OnLost(n Network)
	OnUnavailable()
}

// Manager is the network management service of the host platform.
type Manager interface {
	// Level reports which query and observation mechanisms are available.
	Level() Level

	// ActiveNetwork returns the network that currently carries default traffic
	// or nil if there is none.
	ActiveNetwork() (*Network, error)

	// NetworkCapabilities returns the capabilities of n or nil if n is unknown.
	// Requires LevelCapabilities.
	NetworkCapabilities(n Network) (*Capabilities, error)

	// ActiveNetworkInfo returns the legacy description of the active network
	// or nil if there is none.
	ActiveNetworkInfo() (*NetworkInfo, error)

	// RegisterDefaultNetworkCallback registers cb for changes of the default network.
	// Requires LevelDefaultNetwork.
	RegisterDefaultNetworkCallback(cb NetworkCallback) error

	// RegisterNetworkCallback registers cb for networks matching the request.
	// Requires LevelScopedCallback.
	RegisterNetworkCallback(req Request, cb NetworkCallback) error

	UnregisterNetworkCallback(cb NetworkCallback) error
}

// Context resolves platform services and carries the system broadcast registry.
type Context interface {
	// Service resolves the network management service.
	// It returns an error wrapping ErrServiceUnavailable if there is none.
	Service() (Manager, error)

	RegisterReceiver(r Receiver, f Filter) error
	UnregisterReceiver(r Receiver) error
}

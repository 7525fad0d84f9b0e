package connectivity

import (
	"errors"
	"fmt"
	"projekt/connectivity/lib/platform"
	"sync/atomic"
)

var (
	ErrNoHandler = errors.New("an observer requires a change handler")
)

// Handler receives the changes reported by an Observer.
// OnChange is called on whichever goroutine the platform dispatches on.
type Handler interface {
	OnChange(state NetworkState, typ NetworkType)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(state NetworkState, typ NetworkType)

func (f HandlerFunc) OnChange(state NetworkState, typ NetworkType) {
	f(state, typ)
}

// Mechanism is the native observation mechanism an Observer registered with.
type Mechanism int

const (
	MechanismNone Mechanism = iota
	MechanismDefaultCallback
	MechanismScopedCallback
	MechanismBroadcast
)

func (m Mechanism) String() string {
	switch m {
	case MechanismNone:
		return "None"
	case MechanismDefaultCallback:
		return "DefaultCallback"
	case MechanismScopedCallback:
		return "ScopedCallback"
	case MechanismBroadcast:
		return "Broadcast"
	}
	return fmt.Sprintf("Mechanism(%d)", int(m))
}

// ScopedTransports are the transports a scoped callback is registered for.
var ScopedTransports = []platform.Transport{
	platform.TransportWifi,
	platform.TransportCellular,
	platform.TransportEthernet,
	platform.TransportBluetooth,
}

const (
	idle int32 = iota
	starting
	observing
	stopping
)

// Observer translates the platform's native network signals
// into (NetworkState, NetworkType) pairs for a Handler.
// Start and Stop must not be called concurrently with each other;
// overlapping calls are ignored rather than registering twice.
type Observer struct {
	ctx     platform.Context
	manager platform.Manager
	handler Handler
	onError func(error)

	state   int32
	current atomic.Pointer[registration]
}

type Option func(o *Observer)

// WithErrorHandler receives query errors that occur while dispatching
// a native signal. The signal is dropped in that case.
func WithErrorHandler(f func(err error)) Option {
	return func(o *Observer) {
		o.onError = f
	}
}

// NewObserver creates an idle Observer.
// It fails if the network management service cannot be resolved.
func NewObserver(ctx platform.Context, h Handler, opts ...Option) (*Observer, error) {
	if h == nil {
		return nil, ErrNoHandler
	}
	if ctx == nil {
		return nil, fmt.Errorf("no platform context: %w", platform.ErrServiceUnavailable)
	}
	m, err := ctx.Service()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve network service: %w", err)
	}
	if m == nil {
		return nil, platform.ErrServiceUnavailable
	}
	o := &Observer{
		ctx:     ctx,
		manager: m,
		handler: h,
		onError: func(error) {},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Start registers the newest native mechanism the platform supports
// and immediately reports the current network as Available, or as
// Unavailable with type None if there is no active network.
// Calling Start on an observer that is not idle does nothing.
func (o *Observer) Start() error {
	if !atomic.CompareAndSwapInt32(&o.state, idle, starting) {
		return nil
	}
	reg, err := o.register()
	if err != nil {
		atomic.StoreInt32(&o.state, idle)
		return err
	}
	typ, err := CurrentType(o.manager)
	if err != nil {
		o.current.Store(nil)
		if uerr := o.unregister(reg); uerr != nil {
			err = errors.Join(err, uerr)
		}
		atomic.StoreInt32(&o.state, idle)
		return err
	}
	atomic.StoreInt32(&o.state, observing)

	if typ == None {
		o.handler.OnChange(Unavailable, None)
	} else {
		o.handler.OnChange(Available, typ)
	}
	return nil
}

// Stop unregisters the native mechanism. Signals that are already being
// dispatched are not interrupted, but no new notifications follow.
// If the platform fails to unregister, the observer keeps observing
// and Stop can be retried.
// Calling Stop on an observer that is not observing does nothing.
func (o *Observer) Stop() error {
	if !atomic.CompareAndSwapInt32(&o.state, observing, stopping) {
		return nil
	}
	reg := o.current.Load()
	if err := o.unregister(reg); err != nil {
		atomic.StoreInt32(&o.state, observing)
		return err
	}
	o.current.CompareAndSwap(reg, nil)
	atomic.StoreInt32(&o.state, idle)
	return nil
}

// Observing reports if a native mechanism is registered.
func (o *Observer) Observing() bool {
	return atomic.LoadInt32(&o.state) == observing
}

// Mechanism returns the registered mechanism or MechanismNone.
func (o *Observer) Mechanism() Mechanism {
	reg := o.current.Load()
	if reg == nil {
		return MechanismNone
	}
	return reg.mechanism
}

// registration is one native registration. Each Start creates a new one,
// so signals delivered to an old registration can be told apart.
type registration struct {
	mechanism Mechanism
	callback  *callback
	receiver  *receiver
}

func (o *Observer) register() (reg *registration, err error) {
	level := o.manager.Level()
	reg = &registration{}
	// Published before registering, as platforms may signal synchronously.
	o.current.Store(reg)
	switch {
	case level.SupportsDefaultCallback():
		reg.mechanism = MechanismDefaultCallback
		reg.callback = &callback{o, reg}
		err = o.manager.RegisterDefaultNetworkCallback(reg.callback)
	case level.SupportsScopedCallback():
		reg.mechanism = MechanismScopedCallback
		reg.callback = &callback{o, reg}
		err = o.manager.RegisterNetworkCallback(platform.NewRequest(ScopedTransports...), reg.callback)
	default:
		reg.mechanism = MechanismBroadcast
		reg.receiver = &receiver{o, reg}
		err = o.ctx.RegisterReceiver(reg.receiver, platform.NewFilter(platform.ActionConnectivityChange))
	}
	if err != nil {
		o.current.Store(nil)
		return nil, err
	}
	return
}

func (o *Observer) unregister(reg *registration) error {
	if reg == nil {
		return nil
	}
	if reg.receiver != nil {
		return o.ctx.UnregisterReceiver(reg.receiver)
	}
	return o.manager.UnregisterNetworkCallback(reg.callback)
}

func (o *Observer) isCurrent(reg *registration) bool {
	return o.current.Load() == reg
}

// notify reports state together with the type of the network
// that is active at the time of the call.
func (o *Observer) notify(reg *registration, state NetworkState) {
	if !o.isCurrent(reg) {
		return
	}
	typ, err := CurrentType(o.manager)
	if err != nil {
		o.onError(err)
		return
	}
	o.handler.OnChange(state, typ)
}

// callback adapts both callback based mechanisms.
type callback struct {
	o   *Observer
	reg *registration
}

func (c *callback) OnAvailable(platform.Network) {
	c.o.notify(c.reg, Available)
}

func (c *callback) OnLosing(platform.Network, int) {
	c.o.notify(c.reg, Losing)
}

func (c *callback) OnLost(platform.Network) {
	c.o.notify(c.reg, Lost)
}

func (c *callback) OnUnavailable() {
	c.o.notify(c.reg, Unavailable)
}

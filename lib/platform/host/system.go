// Package host implements the platform on top of the network
// interfaces of the running operating system.
package host

import (
	"context"
	"fmt"
	"golang.org/x/sync/singleflight"
	"net"
	"projekt/connectivity/lib/broadcast"
	"projekt/connectivity/lib/network"
	"projekt/connectivity/lib/platform"
	"projekt/connectivity/lib/util/run"
	"sync"
)

const (
	ExtraInterface      = "interface"
	ExtraNoConnectivity = "no_connectivity"
)

// RouteFunc returns the source address of the default route.
type RouteFunc func(ctx context.Context) (net.IP, error)

type callbackEntry struct {
	callback       platform.NetworkCallback
	defaultNetwork bool
	request        platform.Request
}

func (e *callbackEntry) signals(prev, next view) []signal {
	if e.defaultNetwork {
		return defaultSignals(prev, next)
	}
	return scopedSignals(e.request, prev, next)
}

// System is the platform of the running host.
// It implements both platform.Context and platform.Manager.
// Callbacks are invoked on a single monitor goroutine,
// receivers on the dispatch goroutine of the broadcast bus.
type System struct {
	level   platform.Level
	tracker network.Tracker
	route   RouteFunc
	bus     broadcast.Bus
	queries singleflight.Group
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}

	mu        sync.Mutex
	last      view
	callbacks []*callbackEntry
}

type Option func(s *System)

func WithLevel(level platform.Level) Option {
	return func(s *System) {
		s.level = level
	}
}

func WithTracker(tracker network.Tracker) Option {
	return func(s *System) {
		s.tracker = tracker
	}
}

func WithRoute(route RouteFunc) Option {
	return func(s *System) {
		s.route = route
	}
}

// Open takes a first snapshot of the host and starts monitoring it
// until ctx is done or Close is called.
func Open(ctx context.Context, opts ...Option) (*System, error) {
	ctx, cancel := context.WithCancel(ctx)
	s := &System{
		level:  platform.LevelDefaultNetwork,
		route:  network.DefaultRoute,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracker == nil {
		s.tracker = network.NewTracker()
	}
	present, future, err := s.tracker.Listen(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("host: %w", err)
	}
	s.last = newView(present, s.defaultRoute(ctx))
	s.bus = broadcast.NewBus(ctx)
	go s.monitor(future)
	return s, nil
}

func (s *System) Close() error {
	s.cancel()
	return run.Concurrent(
		func() error {
			<-s.done
			return nil
		},
		s.bus.Close,
	)
}

func (s *System) Service() (platform.Manager, error) {
	if s.ctx.Err() != nil {
		return nil, fmt.Errorf("host closed: %w", platform.ErrServiceUnavailable)
	}
	return s, nil
}

func (s *System) Level() platform.Level {
	return s.level
}

func (s *System) requireLevel(op string, level platform.Level) error {
	if s.level < level {
		return fmt.Errorf("%v requires %v, host is %v: %w", op, level, s.level, platform.ErrUnsupported)
	}
	return nil
}

func (s *System) defaultRoute(ctx context.Context) net.IP {
	ip, err := s.route(ctx)
	if err != nil {
		return nil
	}
	return ip
}

// current queries the host. Concurrent queries share one snapshot.
func (s *System) current() (view, error) {
	v, err, _ := s.queries.Do("view", func() (interface{}, error) {
		nets, err := s.tracker.Snapshot(s.ctx)
		if err != nil {
			return view{}, err
		}
		return newView(nets, s.defaultRoute(s.ctx)), nil
	})
	if err != nil {
		return view{}, err
	}
	return v.(view), nil
}

func (s *System) ActiveNetwork() (*platform.Network, error) {
	v, err := s.current()
	if err != nil || v.active == nil {
		return nil, err
	}
	n := *v.active
	return &n, nil
}

func (s *System) NetworkCapabilities(n platform.Network) (*platform.Capabilities, error) {
	if err := s.requireLevel("NetworkCapabilities", platform.LevelCapabilities); err != nil {
		return nil, err
	}
	v, err := s.current()
	if err != nil {
		return nil, err
	}
	l := v.find(n)
	if l == nil {
		return nil, nil
	}
	return &platform.Capabilities{
		Transports:   append([]platform.Transport(nil), l.caps.Transports...),
		Capabilities: append([]platform.Capability(nil), l.caps.Capabilities...),
	}, nil
}

func (s *System) ActiveNetworkInfo() (*platform.NetworkInfo, error) {
	v, err := s.current()
	if err != nil {
		return nil, err
	}
	l := v.activeLink()
	if l == nil {
		return nil, nil
	}
	return &platform.NetworkInfo{
		Type:      platform.LegacyTypeOf(l.caps.Transports),
		Connected: l.caps.HasCapability(platform.CapabilityInternet),
	}, nil
}

func (s *System) RegisterDefaultNetworkCallback(cb platform.NetworkCallback) error {
	if err := s.requireLevel("RegisterDefaultNetworkCallback", platform.LevelDefaultNetwork); err != nil {
		return err
	}
	return s.addCallback(&callbackEntry{callback: cb, defaultNetwork: true})
}

func (s *System) RegisterNetworkCallback(req platform.Request, cb platform.NetworkCallback) error {
	if err := s.requireLevel("RegisterNetworkCallback", platform.LevelScopedCallback); err != nil {
		return err
	}
	return s.addCallback(&callbackEntry{callback: cb, request: req})
}

func (s *System) addCallback(e *callbackEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.callbacks {
		if other.callback == e.callback {
			return platform.ErrAlreadyRegistered
		}
	}
	s.callbacks = append(s.callbacks, e)
	return nil
}

func (s *System) UnregisterNetworkCallback(cb platform.NetworkCallback) error {
	if err := s.requireLevel("UnregisterNetworkCallback", platform.LevelScopedCallback); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.callbacks {
		if e.callback == cb {
			s.callbacks = append(s.callbacks[:i:i], s.callbacks[i+1:]...)
			return nil
		}
	}
	return platform.ErrNotRegistered
}

func (s *System) RegisterReceiver(r platform.Receiver, f platform.Filter) error {
	return s.bus.Register(r, f)
}

func (s *System) UnregisterReceiver(r platform.Receiver) error {
	return s.bus.Unregister(r)
}

// Registrations returns the number of registered callbacks and receivers.
func (s *System) Registrations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.callbacks) + s.bus.Receivers()
}

func (s *System) monitor(future <-chan []network.Net) {
	defer close(s.done)
	for nets := range future {
		s.apply(newView(nets, s.defaultRoute(s.ctx)))
	}
}

func (s *System) apply(next view) {
	s.mu.Lock()
	prev := s.last
	s.last = next
	entries := append([]*callbackEntry(nil), s.callbacks...)
	s.mu.Unlock()

	if prev.equal(next) {
		return
	}
	for _, e := range entries {
		for _, sig := range e.signals(prev, next) {
			if !s.registered(e) {
				break
			}
			sig.deliver(e.callback)
		}
	}
	_ = s.bus.Send(changeIntent(next))
}

func (s *System) registered(e *callbackEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.callbacks {
		if other == e {
			return true
		}
	}
	return false
}

func changeIntent(v view) platform.Intent {
	intent := platform.Intent{
		Action: platform.ActionConnectivityChange,
		Extras: map[string]string{},
	}
	if v.active == nil {
		intent.Extras[ExtraNoConnectivity] = "true"
	} else {
		intent.Extras[ExtraInterface] = v.active.Interface
	}
	return intent
}

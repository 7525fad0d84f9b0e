package connectivity

import (
	"errors"
	"projekt/connectivity/lib/lifecycle"
	"projekt/connectivity/lib/platform"
	"sync"
)

var (
	ErrBadTarget = errors.New("observation can only be bound to the created, started or resumed state")
	ErrDestroyed = errors.New("lifecycle is already destroyed")
)

// Binding ties an Observer to the lifecycle of a host component.
type Binding struct {
	observer  *Observer
	lifecycle lifecycle.Lifecycle
	target    lifecycle.State
	onError   func(err error)

	mu     sync.Mutex
	closed bool
}

type BindOption func(b *Binding)

// WithBindingErrorHandler receives the errors of Start and Stop calls
// made on behalf of lifecycle events. They are dropped otherwise.
func WithBindingErrorHandler(f func(err error)) BindOption {
	return func(b *Binding) {
		b.onError = f
	}
}

// Bind observes the network while the component behind lc is in target.
// Observation starts on every event that leads to target, stops on pause
// and stop events, and the binding removes itself when the component is destroyed.
func Bind(ctx platform.Context, lc lifecycle.Lifecycle, target lifecycle.State,
	h Handler, opts ...BindOption) (b *Binding, err error) {

	if target != lifecycle.Created && target != lifecycle.Started && target != lifecycle.Resumed {
		return nil, ErrBadTarget
	}
	if lc.CurrentState() == lifecycle.Destroyed {
		return nil, ErrDestroyed
	}
	b = &Binding{
		lifecycle: lc,
		target:    target,
		onError:   func(error) {},
	}
	for _, opt := range opts {
		opt(b)
	}
	b.observer, err = NewObserver(ctx, h, WithErrorHandler(b.report))
	if err != nil {
		return nil, err
	}
	lc.AddObserver(b)
	return b, nil
}

// BindFunc is Bind with a plain function as handler.
func BindFunc(ctx platform.Context, lc lifecycle.Lifecycle, target lifecycle.State,
	f func(state NetworkState, typ NetworkType), opts ...BindOption) (*Binding, error) {
	return Bind(ctx, lc, target, HandlerFunc(f), opts...)
}

func (b *Binding) Observer() *Observer {
	return b.observer
}

// OnEvent and Close are serialized, so no event can restart
// the observer once Close returned. Handlers and error handlers
// must not call Close.
func (b *Binding) OnEvent(e lifecycle.Event) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	switch {
	case e.Target() == b.target:
		b.report(b.observer.Start())
	case e == lifecycle.OnPause || e == lifecycle.OnStop:
		b.report(b.observer.Stop())
	case e == lifecycle.OnDestroy:
		b.report(b.observer.Stop())
		b.closed = true
	}
	closed := b.closed
	b.mu.Unlock()
	if closed {
		b.lifecycle.RemoveObserver(b)
	}
}

// Close stops observing and detaches from the lifecycle before it is destroyed.
func (b *Binding) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	err := b.observer.Stop()
	b.mu.Unlock()
	b.lifecycle.RemoveObserver(b)
	return err
}

func (b *Binding) report(err error) {
	if err != nil {
		b.onError(err)
	}
}

package broadcast

import (
	"context"
	"errors"
	"projekt/connectivity/lib/platform"
	"sync"
)

var (
	ErrClosed = errors.New("broadcast bus closed")
)

const queueSize = 16

// Bus delivers intents to the receivers whose filter matches.
// All receivers are invoked sequentially on a single dispatch goroutine,
// in the order the intents were sent.
type Bus interface {
	Register(receiver platform.Receiver, filter platform.Filter) error
	Unregister(receiver platform.Receiver) error
	Send(intent platform.Intent) error
	// Receivers returns the number of registered receivers.
	Receivers() int
	Close() error
}

type entry struct {
	receiver platform.Receiver
	filter   platform.Filter
}

type bus struct {
	mu      sync.Mutex
	entries []*entry
	queue   chan platform.Intent
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewBus(ctx context.Context) Bus {
	ctx, cancel := context.WithCancel(ctx)
	b := &bus{
		queue:  make(chan platform.Intent, queueSize),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go b.handleIntents()
	return b
}

func (b *bus) Register(receiver platform.Receiver, filter platform.Filter) error {
	if b.ctx.Err() != nil {
		return ErrClosed
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range b.entries {
		if e.receiver == receiver {
			return platform.ErrAlreadyRegistered
		}
	}
	b.entries = append(b.entries, &entry{receiver, filter})
	return nil
}

func (b *bus) Unregister(receiver platform.Receiver) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, e := range b.entries {
		if e.receiver == receiver {
			b.entries = append(b.entries[:i:i], b.entries[i+1:]...)
			return nil
		}
	}
	return platform.ErrNotRegistered
}

func (b *bus) Receivers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Send enqueues the intent for delivery.
// It blocks while the queue is full, so receivers must not send
// more than the queue can hold from within OnReceive.
func (b *bus) Send(intent platform.Intent) error {
	select {
	case <-b.ctx.Done():
		return ErrClosed
	default:
	}
	select {
	case b.queue <- intent:
		return nil
	case <-b.ctx.Done():
		return ErrClosed
	}
}

func (b *bus) handleIntents() {
	defer close(b.done)
	for {
		var intent platform.Intent
		select {
		case intent = <-b.queue:
		case <-b.ctx.Done():
			return
		}
		for _, e := range b.matching(intent) {
			if b.ctx.Err() != nil {
				return
			}
			if b.registered(e) {
				e.receiver.OnReceive(intent)
			}
		}
	}
}

func (b *bus) matching(intent platform.Intent) (result []*entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range b.entries {
		if e.filter.Matches(intent) {
			result = append(result, e)
		}
	}
	return
}

// registered reports if e was not unregistered by an earlier receiver
// of the same intent.
func (b *bus) registered(e *entry) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, other := range b.entries {
		if other == e {
			return true
		}
	}
	return false
}

// Close stops dispatching. Intents still queued are dropped.
// It must not be called from within OnReceive.
func (b *bus) Close() error {
	b.cancel()
	<-b.done
	return nil
}

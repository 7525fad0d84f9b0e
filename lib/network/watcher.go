package network

import (
	"context"
	"time"
)

const DefaultPollInterval = 2 * time.Second

// Watcher signals whenever the network interfaces of the host may have changed.
// Watch blocks until ctx is done or the watcher fails.
// Signals are sent without blocking, a full channel drops them.
type Watcher interface {
	Watch(ctx context.Context, changed chan<- struct{}) error
}

// NewWatcher returns the native Watcher of the running platform.
// Platforms without one are polled.
func NewWatcher() Watcher {
	return nativeWatcher()
}

type PollWatcher struct {
	Interval time.Duration
}

func (w PollWatcher) Watch(ctx context.Context, changed chan<- struct{}) error {
	interval := w.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			notify(changed)
		}
	}
}

func notify(changed chan<- struct{}) {
	select {
	case changed <- struct{}{}:
	default:
	}
}

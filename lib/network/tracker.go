package network

import (
	"context"
	"log"
)

// Tracker tracks which networks this device is currently connected to.
// One can request to get updates whenever the set of networks changes.
// While there are open requests, the tracker waits on its Watcher
// and takes a new snapshot every time it signals.
type Tracker interface {
	Snapshot(ctx context.Context) ([]Net, error)
	Listen(ctx context.Context) (present []Net, future <-chan []Net, err error)
}

func NewTracker() Tracker {
	return NewTrackerWith(Interfaces, NewWatcher())
}

func NewTrackerWith(source Source, watcher Watcher) Tracker {
	return &tracker{
		source:  source,
		watcher: watcher,
	}
}

type tracker struct {
	source  Source
	watcher Watcher
}

func (t *tracker) Snapshot(ctx context.Context) ([]Net, error) {
	nets, err := t.source(ctx)
	if err != nil {
		return nil, err
	}
	Sort(nets)
	return nets, nil
}

// Listen returns the present networks and a channel which receives
// every differing snapshot until ctx is done. The channel is closed then.
func (t *tracker) Listen(ctx context.Context) (present []Net, future <-chan []Net, err error) {
	present, err = t.Snapshot(ctx)
	if err != nil {
		return
	}
	signals := make(chan struct{}, 1)
	go t.watch(ctx, signals)
	updates := make(chan []Net)
	go func() {
		defer close(updates)
		last := present
		for {
			select {
			case <-ctx.Done():
				return
			case <-signals:
			}
			current, err := t.Snapshot(ctx)
			if err != nil {
				if ctx.Err() == nil {
					log.Printf("network snapshot failed: %v\n", err)
				}
				continue
			}
			if Equal(last, current) {
				continue
			}
			last = current
			select {
			case updates <- current:
			case <-ctx.Done():
				return
			}
		}
	}()
	future = updates
	return
}

func (t *tracker) watch(ctx context.Context, signals chan<- struct{}) {
	err := t.watcher.Watch(ctx, signals)
	if err == nil || ctx.Err() != nil {
		return
	}
	if _, ok := t.watcher.(PollWatcher); ok {
		return
	}
	log.Printf("network watcher failed, polling instead: %v\n", err)
	_ = PollWatcher{Interval: DefaultPollInterval}.Watch(ctx, signals)
}

package lifecycle

import (
	"fmt"
	"sync"
)

type entry struct {
	observer Observer
	state    State
	removed  bool
}

// Registry is a Lifecycle driven by its owner through HandleEvent or MoveTo.
// Events must be handled on one goroutine at a time.
// Observers may add and remove observers from within OnEvent.
type Registry struct {
	mu      sync.Mutex
	state   State
	entries []*entry
}

func NewRegistry() *Registry {
	return &Registry{state: Initialized}
}

func (r *Registry) CurrentState() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Registry) AddObserver(o Observer) {
	r.mu.Lock()
	for _, e := range r.entries {
		if e.observer == o {
			r.mu.Unlock()
			return
		}
	}
	// A destroyed lifecycle never dispatches again.
	if r.state == Destroyed {
		r.mu.Unlock()
		return
	}
	e := &entry{observer: o, state: Initialized}
	r.entries = append(r.entries, e)
	r.mu.Unlock()

	// Catch up with the current state.
	for {
		r.mu.Lock()
		if e.removed || e.state >= r.state {
			r.mu.Unlock()
			return
		}
		ev, ok := upFrom(e.state)
		if !ok {
			r.mu.Unlock()
			return
		}
		e.state = ev.Target()
		r.mu.Unlock()
		o.OnEvent(ev)
	}
}

func (r *Registry) RemoveObserver(o Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.observer == o {
			e.removed = true
			r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
			return
		}
	}
}

// Observers returns the number of registered observers.
func (r *Registry) Observers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// HandleEvent moves the component along ev and dispatches it to all observers.
func (r *Registry) HandleEvent(ev Event) error {
	r.mu.Lock()
	t, ok := transitions[ev]
	if !ok || t.At != r.state {
		state := r.state
		r.mu.Unlock()
		return fmt.Errorf("%w: %v in %v", ErrBadTransition, ev, state)
	}
	r.state = t.To
	entries := make([]*entry, len(r.entries))
	copy(entries, r.entries)
	r.mu.Unlock()

	for _, e := range entries {
		r.mu.Lock()
		if e.removed || e.state != t.At {
			r.mu.Unlock()
			continue
		}
		e.state = t.To
		r.mu.Unlock()
		e.observer.OnEvent(ev)
	}
	return nil
}

// MoveTo dispatches every event between the current state and target.
// Moving to Destroyed from Resumed dispatches OnPause, OnStop and OnDestroy.
func (r *Registry) MoveTo(target State) error {
	if _, ok := stateNames[target]; !ok || target == Initialized {
		return fmt.Errorf("%w: cannot move to %v", ErrBadTransition, target)
	}
	for {
		current := r.CurrentState()
		if current == target {
			return nil
		}
		var ev Event
		var ok bool
		if target > current {
			ev, ok = upFrom(current)
		} else {
			ev, ok = downFrom(current)
		}
		if !ok {
			return fmt.Errorf("%w: cannot move from %v to %v", ErrBadTransition, current, target)
		}
		if err := r.HandleEvent(ev); err != nil {
			return err
		}
	}
}

package main

import (
	"projekt/connectivity/lib/connectivity"
	"sync"
)

const unknown = "-"

// Holder keeps the latest network change as display strings
// and wakes up a waiting reader on every change.
type Holder struct {
	mu      sync.Mutex
	state   string
	typ     string
	err     string
	changes int
	updates chan struct{}
}

func NewHolder() *Holder {
	return &Holder{
		state:   unknown,
		typ:     unknown,
		updates: make(chan struct{}, 1),
	}
}

func (h *Holder) OnChange(state connectivity.NetworkState, typ connectivity.NetworkType) {
	h.mu.Lock()
	h.state = state.String()
	h.typ = typ.String()
	h.err = ""
	h.changes++
	h.mu.Unlock()
	h.wake()
}

func (h *Holder) OnError(err error) {
	if err == nil {
		return
	}
	h.mu.Lock()
	h.err = err.Error()
	h.mu.Unlock()
	h.wake()
}

func (h *Holder) wake() {
	select {
	case h.updates <- struct{}{}:
	default:
	}
}

// Updates is signalled after the held values changed.
func (h *Holder) Updates() <-chan struct{} {
	return h.updates
}

type snapshot struct {
	State   string
	Type    string
	Err     string
	Changes int
}

func (h *Holder) Snapshot() snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return snapshot{h.state, h.typ, h.err, h.changes}
}

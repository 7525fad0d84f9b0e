package lifecycle

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"testing"
)

type recorder struct {
	events  []Event
	onEvent func(e Event)
}

func (r *recorder) OnEvent(e Event) {
	r.events = append(r.events, e)
	if r.onEvent != nil {
		r.onEvent(e)
	}
}

func TestRegistry_HandleEvent(t *testing.T) {
	reg := NewRegistry()
	r := &recorder{}
	reg.AddObserver(r)
	assert.Equal(t, Initialized, reg.CurrentState())

	for _, e := range []Event{OnCreate, OnStart, OnResume, OnPause, OnStop, OnDestroy} {
		assert.Nil(t, reg.HandleEvent(e))
		assert.Equal(t, e.Target(), reg.CurrentState())
	}
	assert.Equal(t, []Event{OnCreate, OnStart, OnResume, OnPause, OnStop, OnDestroy}, r.events)
}

func TestRegistry_BadTransition(t *testing.T) {
	reg := NewRegistry()
	err := reg.HandleEvent(OnResume)
	assert.True(t, errors.Is(err, ErrBadTransition))
	assert.Equal(t, Initialized, reg.CurrentState())

	assert.True(t, errors.Is(reg.HandleEvent(Event(42)), ErrBadTransition))
	assert.True(t, errors.Is(reg.MoveTo(Initialized), ErrBadTransition))

	assert.Nil(t, reg.MoveTo(Created))
	assert.Nil(t, reg.MoveTo(Destroyed))
	assert.True(t, errors.Is(reg.MoveTo(Resumed), ErrBadTransition))
}

func TestRegistry_MoveTo(t *testing.T) {
	reg := NewRegistry()
	r := &recorder{}
	reg.AddObserver(r)

	assert.Nil(t, reg.MoveTo(Resumed))
	assert.Equal(t, []Event{OnCreate, OnStart, OnResume}, r.events)

	r.events = nil
	assert.Nil(t, reg.MoveTo(Created))
	assert.Equal(t, []Event{OnPause, OnStop}, r.events)

	r.events = nil
	assert.Nil(t, reg.MoveTo(Created))
	assert.Empty(t, r.events)
}

func TestRegistry_LateObserverCatchesUp(t *testing.T) {
	reg := NewRegistry()
	assert.Nil(t, reg.MoveTo(Started))

	r := &recorder{}
	reg.AddObserver(r)
	assert.Equal(t, []Event{OnCreate, OnStart}, r.events)

	// Adding the same observer again is ignored.
	reg.AddObserver(r)
	assert.Equal(t, 1, reg.Observers())
	assert.Len(t, r.events, 2)
}

func TestRegistry_ObserverAfterDestroy(t *testing.T) {
	reg := NewRegistry()
	assert.Nil(t, reg.MoveTo(Created))
	assert.Nil(t, reg.MoveTo(Destroyed))
	r := &recorder{}
	reg.AddObserver(r)
	assert.Empty(t, r.events)
	assert.Equal(t, 0, reg.Observers())
}

func TestRegistry_RemoveDuringDispatch(t *testing.T) {
	reg := NewRegistry()
	first := &recorder{}
	second := &recorder{}
	first.onEvent = func(e Event) {
		if e == OnStart {
			reg.RemoveObserver(first)
			reg.RemoveObserver(second)
		}
	}
	reg.AddObserver(first)
	reg.AddObserver(second)

	assert.Nil(t, reg.MoveTo(Resumed))
	assert.Equal(t, []Event{OnCreate, OnStart}, first.events)
	assert.Equal(t, []Event{OnCreate}, second.events)
	assert.Equal(t, 0, reg.Observers())
}

func TestParseState(t *testing.T) {
	for _, s := range []string{"resumed", "RESUMED", "Resumed", " resumed "} {
		state, err := ParseState(s)
		assert.Nil(t, err, s)
		assert.Equal(t, Resumed, state)
	}
	_, err := ParseState("frozen")
	assert.True(t, errors.Is(err, ErrUnknownState))

	var state State
	assert.Nil(t, state.UnmarshalText([]byte("started")))
	assert.Equal(t, Started, state)
	assert.True(t, Resumed.AtLeast(Started))
	assert.False(t, Created.AtLeast(Started))
	assert.Equal(t, "OnPause", OnPause.String())
}

package lifecycle

import (
	"errors"
	"fmt"
	"github.com/stoewer/go-strcase"
	"strings"
)

var (
	ErrBadTransition = errors.New("event is not allowed in the current lifecycle state")
	ErrUnknownState  = errors.New("unknown lifecycle state")
)

// State is the stage of a host component.
// States are ordered, a component in Resumed is also Started and Created.
// The zero value is reserved for an unset state.
type State int

const (
	Destroyed State = iota + 1
	Initialized
	Created
	Started
	Resumed
)

var stateNames = map[State]string{
	Destroyed:   "Destroyed",
	Initialized: "Initialized",
	Created:     "Created",
	Started:     "Started",
	Resumed:     "Resumed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) AtLeast(other State) bool {
	return s >= other
}

func ParseState(s string) (State, error) {
	for state, name := range stateNames {
		if strings.EqualFold(name, strcase.UpperCamelCase(strings.TrimSpace(s))) {
			return state, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownState, s)
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(strcase.KebabCase(s.String())), nil
}

func (s *State) UnmarshalText(text []byte) (err error) {
	*s, err = ParseState(string(text))
	return
}

// Event is a transition between two adjacent states.
type Event int

const (
	OnCreate Event = iota + 1
	OnStart
	OnResume
	OnPause
	OnStop
	OnDestroy
)

type transition struct {
	At State
	To State
}

var transitions = map[Event]transition{
	OnCreate:  {At: Initialized, To: Created},
	OnStart:   {At: Created, To: Started},
	OnResume:  {At: Started, To: Resumed},
	OnPause:   {At: Resumed, To: Started},
	OnStop:    {At: Started, To: Created},
	OnDestroy: {At: Created, To: Destroyed},
}

var eventNames = map[Event]string{
	OnCreate:  "OnCreate",
	OnStart:   "OnStart",
	OnResume:  "OnResume",
	OnPause:   "OnPause",
	OnStop:    "OnStop",
	OnDestroy: "OnDestroy",
}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

// Target is the state a component is in after the event was dispatched.
func (e Event) Target() State {
	return transitions[e].To
}

// upFrom returns the event that moves a component one state up from s.
func upFrom(s State) (Event, bool) {
	for _, e := range []Event{OnCreate, OnStart, OnResume} {
		if transitions[e].At == s {
			return e, true
		}
	}
	return 0, false
}

// downFrom returns the event that moves a component one state down from s.
func downFrom(s State) (Event, bool) {
	for _, e := range []Event{OnPause, OnStop, OnDestroy} {
		if transitions[e].At == s {
			return e, true
		}
	}
	return 0, false
}

// Observer is notified of every lifecycle event of a component.
// Observers are compared by identity, so implementations must be comparable.
type Observer interface {
	OnEvent(e Event)
}

// Lifecycle is the lifecycle of a host component.
type Lifecycle interface {
	// AddObserver adds o and brings it up to the current state
	// by dispatching the events it missed.
	AddObserver(o Observer)
	// RemoveObserver removes o. It may be called from within OnEvent.
	RemoveObserver(o Observer)
	CurrentState() State
}

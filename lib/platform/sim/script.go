package sim

import (
	"context"
	"errors"
	"fmt"
	"gopkg.in/yaml.v3"
	"projekt/connectivity/lib/platform"
	"time"
)

var (
	ErrUnknownAction    = errors.New("unknown simulation action")
	ErrUnknownInterface = errors.New("no network is connected on the interface")
)

// Script actions.
const (
	ActionConnect     = "connect"
	ActionDisconnect  = "disconnect"
	ActionActivate    = "activate"
	ActionLosing      = "losing"
	ActionUnavailable = "unavailable"
	ActionInternet    = "internet"
	ActionBroadcast   = "broadcast"
)

// Step is one signal injected into a Device after a delay.
type Step struct {
	After      time.Duration        `yaml:"after"`
	Action     string               `yaml:"action"`
	Interface  string               `yaml:"interface,omitempty"`
	Transports []platform.Transport `yaml:"transports,omitempty"`
	Internet   bool                 `yaml:"internet,omitempty"`
	TTL        time.Duration        `yaml:"ttl,omitempty"`
}

// Script is a sequence of steps, optionally repeated until cancelled.
type Script struct {
	Steps []Step `yaml:"steps"`
	Loop  bool   `yaml:"loop"`
}

func LoadScript(data []byte) (s Script, err error) {
	err = yaml.Unmarshal(data, &s)
	if err != nil {
		return
	}
	err = s.Validate()
	return
}

func (s Script) Validate() error {
	for i, step := range s.Steps {
		switch step.Action {
		case ActionUnavailable, ActionBroadcast:
		case ActionConnect, ActionDisconnect, ActionActivate, ActionLosing, ActionInternet:
			if step.Interface == "" {
				return fmt.Errorf("step %v: %v needs an interface", i, step.Action)
			}
		default:
			return fmt.Errorf("step %v: %w %q", i, ErrUnknownAction, step.Action)
		}
	}
	return nil
}

// Play applies the steps to d until all steps ran or ctx is done.
func (s Script) Play(ctx context.Context, d *Device) error {
	for {
		for _, step := range s.Steps {
			timer := time.NewTimer(step.After)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
			if err := step.Apply(d); err != nil {
				return err
			}
		}
		if !s.Loop || len(s.Steps) == 0 {
			return nil
		}
	}
}

func (step Step) Apply(d *Device) error {
	switch step.Action {
	case ActionConnect:
		d.Connect(step.Interface, step.Transports...)
		return nil
	case ActionUnavailable:
		d.Unavailable()
		return nil
	case ActionBroadcast:
		d.Broadcast(platform.Intent{Action: platform.ActionConnectivityChange})
		return nil
	}
	n, ok := d.Lookup(step.Interface)
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownInterface, step.Interface)
	}
	switch step.Action {
	case ActionDisconnect:
		d.Disconnect(n)
	case ActionActivate:
		d.SetActive(n)
	case ActionLosing:
		d.Losing(n, int(step.TTL/time.Millisecond))
	case ActionInternet:
		d.SetInternet(n, step.Internet)
	default:
		return fmt.Errorf("%w %q", ErrUnknownAction, step.Action)
	}
	return nil
}

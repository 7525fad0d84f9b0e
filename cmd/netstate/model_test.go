package main

import (
	"context"
	"errors"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"projekt/connectivity/lib/connectivity"
	"projekt/connectivity/lib/lifecycle"
	"projekt/connectivity/lib/platform"
	"projekt/connectivity/lib/platform/sim"
	"strings"
	"testing"
)

func setup(t *testing.T, target lifecycle.State) (Model, *sim.Device, *lifecycle.Registry) {
	device := sim.New()
	device.Connect("wlan0", platform.TransportWifi)
	registry := lifecycle.NewRegistry()
	holder := NewHolder()
	_, err := connectivity.Bind(device, registry, target, holder,
		connectivity.WithBindingErrorHandler(holder.OnError))
	require.Nil(t, err)
	return NewModel(context.Background(), registry, holder, target), device, registry
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// step feeds msg to the model and then the message of the returned command.
func step(m Model, msg tea.Msg) Model {
	m, cmd := update(m, msg)
	if cmd != nil {
		m, _ = update(m, cmd())
	}
	return m
}

func TestModel_Lifecycle(t *testing.T) {
	m, device, registry := setup(t, lifecycle.Resumed)
	assert.Equal(t, unknown, m.current.State)

	m = step(m, m.driver.moveTo(lifecycle.Resumed)())
	assert.Equal(t, lifecycle.Resumed, m.state)
	assert.Equal(t, 1, device.Registrations())

	m, _ = update(m, m.waitForChange()())
	assert.Equal(t, "Available", m.current.State)
	assert.Equal(t, "Wifi", m.current.Type)

	m = step(m, tea.BlurMsg{})
	assert.Equal(t, lifecycle.Started, registry.CurrentState())
	assert.Equal(t, 0, device.Registrations())

	m = step(m, tea.FocusMsg{})
	assert.Equal(t, lifecycle.Resumed, registry.CurrentState())
	assert.Equal(t, 1, device.Registrations())

	pause := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")}
	m = step(m, pause)
	assert.True(t, m.paused)
	assert.Equal(t, lifecycle.Started, m.state)
	assert.Equal(t, 0, device.Registrations())

	// focus does not resume a paused component
	m = step(m, tea.FocusMsg{})
	assert.Equal(t, lifecycle.Started, registry.CurrentState())

	m = step(m, pause)
	assert.False(t, m.paused)
	assert.Equal(t, lifecycle.Resumed, registry.CurrentState())
}

func TestModel_ObserveWhileStarted(t *testing.T) {
	m, device, registry := setup(t, lifecycle.Started)
	m = step(m, m.driver.moveTo(lifecycle.Resumed)())
	assert.Equal(t, 1, device.Registrations())

	m = step(m, tea.BlurMsg{})
	assert.Equal(t, lifecycle.Started, registry.CurrentState())
	assert.Equal(t, 1, device.Registrations())
}

func TestModel_Quit(t *testing.T) {
	m, device, registry := setup(t, lifecycle.Resumed)
	m = step(m, m.driver.moveTo(lifecycle.Resumed)())

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)

	m = step(m, m.driver.moveTo(lifecycle.Destroyed)())
	assert.Equal(t, lifecycle.Destroyed, registry.CurrentState())
	assert.Equal(t, 0, device.Registrations())
	assert.Equal(t, 0, registry.Observers())

	// further input is ignored once quitting
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	assert.Nil(t, cmd)
	assert.Nil(t, m.settle())
}

func TestModel_View(t *testing.T) {
	m, _, _ := setup(t, lifecycle.Resumed)
	m = step(m, m.driver.moveTo(lifecycle.Resumed)())
	m, _ = update(m, m.waitForChange()())
	view := m.View()
	assert.True(t, strings.Contains(view, "Available"))
	assert.True(t, strings.Contains(view, "Wifi"))
	assert.True(t, strings.Contains(view, "Resumed"))
	assert.True(t, strings.Contains(view, "pause/resume"))
}

func TestHolder(t *testing.T) {
	h := NewHolder()
	h.OnChange(connectivity.Lost, connectivity.None)
	h.OnChange(connectivity.Available, connectivity.Ethernet)
	<-h.Updates()
	s := h.Snapshot()
	assert.Equal(t, "Available", s.State)
	assert.Equal(t, "Ethernet", s.Type)
	assert.Equal(t, 2, s.Changes)

	h.OnError(nil)
	h.OnError(errors.New("query failed"))
	assert.Equal(t, "query failed", h.Snapshot().Err)
	h.OnChange(connectivity.Losing, connectivity.Ethernet)
	assert.Empty(t, h.Snapshot().Err)
}

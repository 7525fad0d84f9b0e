package main

import (
	"context"
	"fmt"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"projekt/connectivity/lib/lifecycle"
	"strings"
	"sync"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3b82f6"))
	labelStyle   = lipgloss.NewStyle().Width(11).Foreground(lipgloss.Color("#9ca3af"))
	valueStyle   = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4b5563"))
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	pausedColor  = lipgloss.Color("#d97706")
	runningColor = lipgloss.Color("#16a34a")
)

type changeMsg snapshot

type lifecycleMsg struct {
	state lifecycle.State
	err   error
}

// driver serializes lifecycle transitions, which run as commands.
type driver struct {
	mu       sync.Mutex
	registry *lifecycle.Registry
}

func (d *driver) moveTo(target lifecycle.State) tea.Cmd {
	return func() tea.Msg {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.registry.CurrentState() == lifecycle.Destroyed {
			return lifecycleMsg{state: lifecycle.Destroyed}
		}
		err := d.registry.MoveTo(target)
		return lifecycleMsg{d.registry.CurrentState(), err}
	}
}

// Model shows the connectivity held by a Holder. The terminal plays
// the host component: focus resumes it, losing focus or pausing
// moves it back to started and quitting destroys it.
type Model struct {
	ctx      context.Context
	driver   *driver
	holder   *Holder
	keys     KeyMap
	target   lifecycle.State
	current  snapshot
	state    lifecycle.State
	paused   bool
	focused  bool
	quitting bool
	err      error
}

func NewModel(ctx context.Context, registry *lifecycle.Registry, holder *Holder, target lifecycle.State) Model {
	return Model{
		ctx:     ctx,
		driver:  &driver{registry: registry},
		holder:  holder,
		keys:    DefaultKeyMap(),
		target:  target,
		current: holder.Snapshot(),
		state:   registry.CurrentState(),
		focused: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.driver.moveTo(lifecycle.Resumed), m.waitForChange())
}

func (m Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.holder.Updates():
			return changeMsg(m.holder.Snapshot())
		case <-m.ctx.Done():
			return tea.Quit()
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.FocusMsg:
		m.focused = true
		return m, m.settle()

	case tea.BlurMsg:
		m.focused = false
		return m, m.settle()

	case changeMsg:
		m.current = snapshot(msg)
		return m, m.waitForChange()

	case lifecycleMsg:
		m.state = msg.state
		if msg.err != nil {
			m.err = msg.err
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Sequence(m.driver.moveTo(lifecycle.Destroyed), tea.Quit)

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		return m, m.settle()
	}
	return m, nil
}

// settle moves the lifecycle to the state matching focus and pause.
func (m Model) settle() tea.Cmd {
	if m.quitting {
		return nil
	}
	if m.paused || !m.focused {
		return m.driver.moveTo(lifecycle.Started)
	}
	return m.driver.moveTo(lifecycle.Resumed)
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Network connectivity"))
	b.WriteString("\n\n")
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}
	row("state", m.current.State)
	row("type", m.current.Type)
	row("changes", fmt.Sprint(m.current.Changes))

	lifecycleColor := runningColor
	if m.state != lifecycle.Resumed {
		lifecycleColor = pausedColor
	}
	b.WriteString(labelStyle.Render("lifecycle"))
	b.WriteString(valueStyle.Foreground(lifecycleColor).Render(m.state.String()))
	b.WriteString(helpStyle.Render(fmt.Sprintf(" (observing while %v)", m.target)))
	b.WriteString("\n")

	if m.current.Err != "" {
		b.WriteString(errorStyle.Render(m.current.Err))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	help := make([]string, 0, 2)
	for _, binding := range m.keys.Bindings() {
		h := binding.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	return boxStyle.Render(b.String()) + "\n" + helpStyle.Render(strings.Join(help, " • ")) + "\n"
}

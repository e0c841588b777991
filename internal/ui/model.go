package ui

import (
	"time"

	"github.com/atomicstack/playctl/internal/event"
	"github.com/atomicstack/playctl/internal/key"
	"github.com/atomicstack/playctl/internal/logging/events"
	"github.com/atomicstack/playctl/internal/state"
	"github.com/atomicstack/playctl/internal/theme"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	tickInterval = 250 * time.Millisecond
	// redrawDelay gives the pipeline time to apply an input event before
	// the follow-up redraw.
	redrawDelay = 20 * time.Millisecond
)

type tickMsg time.Time

type redrawMsg struct{}

// Model implements the Bubble Tea model for the player.
type Model struct {
	state  *state.Shared
	source *event.ChannelSource
	now    func() time.Time

	width  int
	height int

	themeName string
	styles    *theme.Styles
	bar       progress.Model
}

// NewModel creates the model. Input events are pushed onto source.
func NewModel(s *state.Shared, source *event.ChannelSource) *Model {
	m := &Model{
		state:  s,
		source: source,
		now:    time.Now,
		width:  80,
		height: 24,
	}
	s.UI.RLock()
	active := s.UI.Theme
	s.UI.RUnlock()
	m.applyTheme(active)
	return m
}

func (m *Model) applyTheme(t theme.Theme) {
	if m.styles != nil && t.Name == m.themeName {
		return
	}
	m.themeName = t.Name
	m.styles = t.Styles()
	m.bar = progress.New(progress.WithSolidFill(m.styles.ProgressColor), progress.WithoutPercentage())
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func redraw() tea.Cmd {
	return tea.Tick(redrawDelay, func(time.Time) tea.Msg { return redrawMsg{} })
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		k, ok := key.FromTea(msg)
		if !ok {
			return m, nil
		}
		return m, m.forward(event.KeyEvent(k))
	case tea.MouseMsg:
		mouse, ok := mouseFromTea(msg)
		if !ok {
			return m, nil
		}
		return m, m.forward(event.MouseEvent(mouse))
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		events.UI.Event("resize", map[string]int{"width": msg.Width, "height": msg.Height})
		m.source.Push(event.ResizeEvent(msg.Width, msg.Height))
		return m, nil
	case tickMsg:
		if !m.running() {
			return m, tea.Quit
		}
		return m, tick()
	case redrawMsg:
		if !m.running() {
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) forward(ev event.Event) tea.Cmd {
	if !m.source.Push(ev) {
		return tea.Quit
	}
	return redraw()
}

func (m *Model) running() bool {
	m.state.UI.RLock()
	defer m.state.UI.RUnlock()
	return m.state.UI.IsRunning
}

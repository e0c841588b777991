package ui

import (
	"github.com/atomicstack/playctl/internal/event"
	tea "github.com/charmbracelet/bubbletea"
)

// mouseFromTea converts a Bubble Tea mouse message. Wheel events and
// unknown buttons are dropped.
func mouseFromTea(msg tea.MouseMsg) (event.Mouse, bool) {
	m := event.Mouse{Column: msg.X, Row: msg.Y}
	switch msg.Button {
	case tea.MouseButtonLeft:
		m.Button = event.MouseLeft
	case tea.MouseButtonMiddle:
		m.Button = event.MouseMiddle
	case tea.MouseButtonRight:
		m.Button = event.MouseRight
	case tea.MouseButtonNone:
		m.Button = event.MouseNone
	default:
		return event.Mouse{}, false
	}
	switch msg.Action {
	case tea.MouseActionPress:
		m.Action = event.MousePress
	case tea.MouseActionRelease:
		m.Action = event.MouseRelease
	case tea.MouseActionMotion:
		m.Action = event.MouseMotion
	default:
		return event.Mouse{}, false
	}
	return m, true
}

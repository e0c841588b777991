package ui

import (
	"context"
	"testing"
	"time"

	"github.com/atomicstack/playctl/internal/event"
	"github.com/atomicstack/playctl/internal/key"
	tea "github.com/charmbracelet/bubbletea"
)

func mustKey(t *testing.T, s string) key.Key {
	t.Helper()
	k, err := key.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return k
}

func nextEvent(t *testing.T, src *event.ChannelSource) event.Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	ev, err := src.Next(ctx)
	if err != nil {
		t.Fatalf("expected event, got %v", err)
	}
	return ev
}

func TestKeyMessageIsForwarded(t *testing.T) {
	m, _, src := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if cmd == nil {
		t.Fatalf("expected redraw command")
	}
	ev := nextEvent(t, src)
	if ev.Kind != event.KindKey || ev.Key != mustKey(t, "n") {
		t.Fatalf("expected key n, got %+v", ev)
	}
}

func TestResizeUpdatesDimensions(t *testing.T) {
	m, _, src := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.width != 120 || m.height != 40 {
		t.Fatalf("expected 120x40, got %dx%d", m.width, m.height)
	}
	ev := nextEvent(t, src)
	if ev.Kind != event.KindResize || ev.Width != 120 || ev.Height != 40 {
		t.Fatalf("expected resize event, got %+v", ev)
	}
}

func TestTickQuitsOnceStopped(t *testing.T) {
	m, s, _ := newTestModel(t)
	if _, cmd := m.Update(tickMsg(time.Now())); cmd == nil {
		t.Fatalf("expected next tick while running")
	}

	s.UI.Lock()
	s.UI.IsRunning = false
	s.UI.Unlock()
	_, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestForwardQuitsWhenSourceClosed(t *testing.T) {
	m, _, src := newTestModel(t)
	src.Close()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestThemeChangeRebuildsStyles(t *testing.T) {
	m, s, _ := newTestModel(t)
	before := m.styles
	s.UI.Lock()
	s.UI.Theme = s.Themes[len(s.Themes)-1]
	s.UI.Unlock()
	m.View()
	if len(s.Themes) > 1 && m.styles == before {
		t.Fatalf("expected styles to be rebuilt for %q", m.themeName)
	}
}

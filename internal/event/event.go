package event

import (
	"context"
	"errors"
	"sync"

	"github.com/atomicstack/playctl/internal/key"
)

// ErrSourceClosed is returned by a Source once it will deliver no more
// events.
var ErrSourceClosed = errors.New("event: source closed")

type Kind int

const (
	KindKey Kind = iota
	KindMouse
	KindResize
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindKey:
		return "key"
	case KindMouse:
		return "mouse"
	case KindResize:
		return "resize"
	}
	return "other"
}

type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheel
)

type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMotion
)

// Mouse is a mouse event in terminal cells, zero based.
type Mouse struct {
	Button MouseButton
	Action MouseAction
	Column int
	Row    int
}

// Event is one terminal input event.
type Event struct {
	Kind   Kind
	Key    key.Key
	Mouse  Mouse
	Width  int
	Height int
}

func KeyEvent(k key.Key) Event {
	return Event{Kind: KindKey, Key: k}
}

func MouseEvent(m Mouse) Event {
	return Event{Kind: KindMouse, Mouse: m}
}

func ResizeEvent(width, height int) Event {
	return Event{Kind: KindResize, Width: width, Height: height}
}

// Source delivers terminal events in order. Next blocks until an event is
// available, ctx ends, or the source closes (ErrSourceClosed).
type Source interface {
	Next(ctx context.Context) (Event, error)
}

// ChannelSource is a Source fed by Push, used by the renderer to forward
// the terminal events it receives.
type ChannelSource struct {
	events chan Event
	done   chan struct{}
	once   sync.Once
}

func NewChannelSource(buffer int) *ChannelSource {
	return &ChannelSource{
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
}

// Push forwards ev, blocking while the buffer is full. It reports false
// once the source is closed.
func (c *ChannelSource) Push(ev Event) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.events <- ev:
		return true
	case <-c.done:
		return false
	}
}

// Close stops the source. Buffered events are dropped.
func (c *ChannelSource) Close() {
	c.once.Do(func() { close(c.done) })
}

func (c *ChannelSource) Next(ctx context.Context) (Event, error) {
	select {
	case ev := <-c.events:
		return ev, nil
	case <-c.done:
		return Event{}, ErrSourceClosed
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}
}

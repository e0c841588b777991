package event

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/atomicstack/playctl/internal/data/dispatcher"
	"github.com/atomicstack/playctl/internal/key"
	"github.com/atomicstack/playctl/internal/logging"
	"github.com/atomicstack/playctl/internal/logging/events"
	"github.com/atomicstack/playctl/internal/request"
	"github.com/atomicstack/playctl/internal/state"
)

// Pipeline turns terminal events into state mutations and client requests.
// Key events are accumulated into a sequence, resolved against the keymap
// and handed to exactly one of the popup or page window handlers; whatever
// those leave unhandled goes to the global command handler.
type Pipeline struct {
	state  *state.Shared
	submit dispatcher.Submitter
	intn   func(n int) int
}

// Option tweaks a Pipeline.
type Option func(*Pipeline)

// WithRandom overrides the source used by PlayRandom. intn must return a
// value in [0, n).
func WithRandom(intn func(n int) int) Option {
	return func(p *Pipeline) {
		if intn != nil {
			p.intn = intn
		}
	}
}

func New(s *state.Shared, submit dispatcher.Submitter, opts ...Option) *Pipeline {
	p := &Pipeline{state: s, submit: submit, intn: rand.IntN}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run consumes src until ctx ends, the source closes, the application stops
// running, or a submission is refused. Only the last case is an error.
func (p *Pipeline) Run(ctx context.Context, src Source) error {
	for {
		ev, err := src.Next(ctx)
		if err != nil {
			if errors.Is(err, ErrSourceClosed) || ctx.Err() != nil {
				return nil
			}
			logging.Error(fmt.Errorf("read terminal event: %w", err))
			continue
		}
		if err := p.HandleEvent(ev); err != nil {
			if errors.Is(err, dispatcher.ErrClosed) {
				return err
			}
			logging.Error(err)
		}
		if !p.running() {
			return nil
		}
	}
}

// HandleEvent processes a single terminal event.
func (p *Pipeline) HandleEvent(ev Event) error {
	switch ev.Kind {
	case KindKey:
		return p.handleKey(ev.Key)
	case KindMouse:
		return p.handleMouse(ev.Mouse)
	default:
		events.UI.Event(ev.Kind.String(), nil)
		return nil
	}
}

func (p *Pipeline) running() bool {
	ui := p.state.UI
	ui.RLock()
	defer ui.RUnlock()
	return ui.IsRunning
}

func (p *Pipeline) handleKey(k key.Key) error {
	ui := p.state.UI
	km := p.state.Keymap

	ui.Lock()
	seq := ui.InputKeySequence.Append(k)
	if !km.IsPrefix(seq) {
		if len(ui.InputKeySequence) > 0 {
			events.Key.Restart(ui.InputKeySequence.String(), k.String())
		}
		seq = key.Sequence{k}
	}
	ui.InputKeySequence = seq
	popup := ui.Popup
	page := ui.CurrentPage()
	ui.Unlock()

	var (
		handled bool
		scope   string
		err     error
	)
	switch {
	case popup != nil:
		scope = "popup"
		handled, err = p.handlePopup(seq)
	case page.Kind() == state.PageRecommendations:
		scope = "recommendations"
		handled, err = p.handleRecommendationsWindow(seq)
	case page.Kind() == state.PageSearching:
		scope = "search"
		handled, err = p.handleSearchWindow(seq)
	default:
		scope = "context"
		handled, err = p.handleContextWindow(seq)
	}
	if err != nil {
		return err
	}
	if !handled {
		if cmd, ok := km.Command(seq); ok {
			scope = "global"
			if handled, err = p.HandleGlobalCommand(cmd); err != nil {
				return err
			}
		}
	}

	ui.Lock()
	defer ui.Unlock()
	// A sequence is only kept while it can still grow into a binding.
	if handled || !km.IsPrefix(seq) {
		if handled {
			events.Key.Handled(seq.String(), scope)
		}
		ui.InputKeySequence = nil
		return nil
	}
	events.Key.Pending(seq.String())
	return nil
}

func (p *Pipeline) handleMouse(m Mouse) error {
	if m.Button != MouseLeft || m.Action != MousePress {
		return nil
	}

	ui := p.state.UI
	ui.RLock()
	rect := ui.ProgressBarRect
	ui.RUnlock()
	if rect.Width <= 0 || m.Row != rect.Y {
		return nil
	}
	column := m.Column - rect.X
	if column < 0 || column >= rect.Width {
		return nil
	}

	player := p.state.Player
	player.RLock()
	track := player.CurrentPlayingTrack()
	var duration time.Duration
	if track != nil {
		duration = track.Duration
	}
	player.RUnlock()
	if track == nil {
		return nil
	}

	positionMS := duration.Milliseconds() * int64(column) / int64(rect.Width)
	events.UI.Seek(column, rect.Width, positionMS)
	return p.submitPlayer(request.SeekTrack{Position: time.Duration(positionMS) * time.Millisecond})
}

func (p *Pipeline) submitPlayer(r request.PlayerRequest) error {
	return p.submit.Submit(request.NewPlayer(r))
}

package backend

import (
	"context"
	"errors"
	"time"

	"github.com/atomicstack/playctl/internal/data/dispatcher"
	"github.com/atomicstack/playctl/internal/logging"
	"github.com/atomicstack/playctl/internal/logging/events"
	"github.com/atomicstack/playctl/internal/request"
	"github.com/atomicstack/playctl/internal/state"
	"golang.org/x/sync/errgroup"
)

// DefaultInterval is the period of the main player watcher loop.
const DefaultInterval = time.Second

// Watcher polls the shared player state and submits the requests needed to
// keep it fresh: an optional periodic playback refresh, plus the main loop
// that connects an idle device and refetches playback when a track ends.
type Watcher struct {
	state    *state.Shared
	submit   dispatcher.Submitter
	refresh  time.Duration
	interval time.Duration
	now      func() time.Time
}

// Option tweaks a Watcher.
type Option func(*Watcher)

// WithInterval overrides the main loop period.
func WithInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithClock overrides the time source used for progress extrapolation.
func WithClock(now func() time.Time) Option {
	return func(w *Watcher) {
		if now != nil {
			w.now = now
		}
	}
}

// NewWatcher creates a watcher. A refresh of zero or less disables the
// periodic playback refresh.
func NewWatcher(s *state.Shared, submit dispatcher.Submitter, refresh time.Duration, opts ...Option) *Watcher {
	w := &Watcher{
		state:    s,
		submit:   submit,
		refresh:  refresh,
		interval: DefaultInterval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// RefreshEnabled reports whether the periodic playback refresh runs.
func (w *Watcher) RefreshEnabled() bool {
	return w.refresh > 0
}

// Run drives the loops until ctx ends (nil) or the dispatcher refuses a
// submission (the error is returned).
func (w *Watcher) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	if w.RefreshEnabled() {
		g.Go(func() error {
			return w.poll(ctx, w.refresh, w.refreshPlayback)
		})
	}
	g.Go(func() error {
		return w.poll(ctx, w.interval, w.watchPlayerEvents)
	})
	return g.Wait()
}

func (w *Watcher) poll(ctx context.Context, interval time.Duration, tick func() error) error {
	emit := func() error {
		err := tick()
		if err == nil {
			return nil
		}
		if errors.Is(err, dispatcher.ErrClosed) {
			return err
		}
		logging.Error(err)
		return nil
	}

	if err := emit(); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := emit(); err != nil {
				return err
			}
		}
	}
}

func (w *Watcher) refreshPlayback() error {
	events.Watcher.Refresh()
	return w.submit.Submit(request.GetCurrentPlayback{})
}

// watchPlayerEvents runs one iteration of the main loop.
func (w *Watcher) watchPlayerEvents() error {
	req := w.nextRequest()
	if req == nil {
		return nil
	}
	return w.submit.Submit(req)
}

func (w *Watcher) nextRequest() request.ClientRequest {
	p := w.state.Player
	p.RLock()
	defer p.RUnlock()

	if p.Playback == nil {
		if len(p.Devices) == 0 {
			return nil
		}
		device := p.Devices[0]
		events.Watcher.NoPlayback(device.ID, device.Name)
		return request.NewPlayer(request.TransferPlayback{DeviceID: device.ID, ForcePlay: false})
	}

	track := p.CurrentPlayingTrack()
	if track == nil || !p.Playback.IsPlaying || track.Duration <= 0 {
		return nil
	}
	progress, ok := p.PlaybackProgress(w.now())
	if !ok || progress < track.Duration {
		return nil
	}
	events.Watcher.TrackEnded(track.ID, progress.Milliseconds(), track.Duration.Milliseconds())
	return request.GetCurrentPlayback{}
}

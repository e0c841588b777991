package app

import (
	"context"
	"errors"
	"time"

	"github.com/atomicstack/playctl/internal/backend"
	"github.com/atomicstack/playctl/internal/data/dispatcher"
	"github.com/atomicstack/playctl/internal/event"
	"github.com/atomicstack/playctl/internal/keymap"
	"github.com/atomicstack/playctl/internal/logging/events"
	"github.com/atomicstack/playctl/internal/request"
	"github.com/atomicstack/playctl/internal/spotify"
	"github.com/atomicstack/playctl/internal/state"
	"github.com/atomicstack/playctl/internal/theme"
	"github.com/atomicstack/playctl/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

// eventBuffer bounds how many terminal events may wait for the pipeline.
const eventBuffer = 64

// Config describes user-provided application options.
type Config struct {
	AccessToken     string
	Market          string
	RefreshInterval time.Duration
	Mouse           bool
	Keymap          *keymap.Keymap
	Themes          []theme.Theme
	ThemeName       string

	// BaseURL overrides the Web API endpoint. Empty means the public API.
	BaseURL string
}

// ActiveTheme resolves ThemeName against Themes, falling back to the
// built-in themes when none are configured.
func (c Config) ActiveTheme() (theme.Theme, bool) {
	themes := c.Themes
	if len(themes) == 0 {
		themes = theme.Builtins()
	}
	if c.ThemeName == "" {
		return themes[0], true
	}
	return theme.Find(themes, c.ThemeName)
}

// runtime is the wired set of components behind one program run.
type runtime struct {
	state    *state.Shared
	dispatch *dispatcher.Dispatcher
	watcher  *backend.Watcher
	pipeline *event.Pipeline
	source   *event.ChannelSource
	model    *ui.Model
}

func newRuntime(cfg Config) (*runtime, error) {
	active, ok := cfg.ActiveTheme()
	if !ok {
		active = theme.Default()
	}
	themes := cfg.Themes
	if len(themes) == 0 {
		themes = theme.Builtins()
	}
	shared := state.New(cfg.Keymap, theme.MoveToFront(themes, active.Name), active)

	opts := []spotify.Option{spotify.WithMarket(cfg.Market)}
	if cfg.BaseURL != "" {
		opts = append(opts, spotify.WithBaseURL(cfg.BaseURL))
	}
	client := spotify.New(cfg.AccessToken, opts...)

	rt := &runtime{
		state:    shared,
		dispatch: dispatcher.New(shared, client),
		source:   event.NewChannelSource(eventBuffer),
	}
	rt.watcher = backend.NewWatcher(shared, rt.dispatch, cfg.RefreshInterval)
	rt.pipeline = event.New(shared, rt.dispatch)
	rt.model = ui.NewModel(shared, rt.source)

	for _, req := range initialRequests() {
		if err := rt.dispatch.Submit(req); err != nil {
			return nil, err
		}
	}
	return rt, nil
}

// initialRequests fetch what the first frame needs.
func initialRequests() []request.ClientRequest {
	return []request.ClientRequest{
		request.GetCurrentUser{},
		request.GetDevices{},
		request.GetCurrentPlayback{},
		request.GetUserPlaylists{},
	}
}

// close stops intake and waits for started requests, so none of them
// logs after the log file is closed.
func (rt *runtime) close() {
	rt.source.Close()
	rt.dispatch.Close()
	rt.dispatch.Wait()
}

// runPipeline closes the source when the pipeline stops, so a renderer
// blocked on a full buffer sees the close instead of hanging.
func (rt *runtime) runPipeline(ctx context.Context) error {
	defer rt.source.Close()
	return rt.pipeline.Run(ctx, rt.source)
}

// Run bootstraps the components and blocks until the user quits or ctx
// ends.
func Run(ctx context.Context, cfg Config) error {
	rt, err := newRuntime(cfg)
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(rt.model, opts...)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return rt.dispatch.Run(gctx)
	})
	g.Go(func() error {
		return rt.watcher.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		return rt.runPipeline(gctx)
	})
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		return err
	})

	err = g.Wait()
	switch {
	case err == nil, errors.Is(err, context.Canceled), errors.Is(err, tea.ErrProgramKilled):
		events.App.Stop("quit")
		return nil
	}
	events.App.Stop(err.Error())
	return err
}

package event

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/atomicstack/playctl/internal/command"
	"github.com/atomicstack/playctl/internal/data/dispatcher"
	"github.com/atomicstack/playctl/internal/key"
	"github.com/atomicstack/playctl/internal/request"
	"github.com/atomicstack/playctl/internal/state"
	"github.com/atomicstack/playctl/internal/theme"
)

type fakeSubmitter struct {
	mu   sync.Mutex
	reqs []request.ClientRequest
	err  error
}

func (f *fakeSubmitter) Submit(req request.ClientRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.reqs = append(f.reqs, req)
	return nil
}

func (f *fakeSubmitter) requests() []request.ClientRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]request.ClientRequest(nil), f.reqs...)
}

func (f *fakeSubmitter) last(t *testing.T) request.ClientRequest {
	t.Helper()
	reqs := f.requests()
	if len(reqs) == 0 {
		t.Fatal("expected a submitted request")
	}
	return reqs[len(reqs)-1]
}

func newPipeline(opts ...Option) (*Pipeline, *state.Shared, *fakeSubmitter) {
	s := state.New(nil, nil, theme.Default())
	sub := &fakeSubmitter{}
	return New(s, sub, opts...), s, sub
}

func press(t *testing.T, p *Pipeline, keys ...string) {
	t.Helper()
	for _, code := range keys {
		k, err := key.Parse(code)
		if err != nil {
			t.Fatalf("parse %q: %v", code, err)
		}
		if err := p.HandleEvent(KeyEvent(k)); err != nil {
			t.Fatalf("key %q: %v", code, err)
		}
	}
}

func pendingSequence(s *state.Shared) string {
	s.UI.RLock()
	defer s.UI.RUnlock()
	return s.UI.InputKeySequence.String()
}

func volume(v int) *int { return &v }

func sampleContext(s *state.Shared) state.ContextID {
	id := state.ContextID{Kind: state.ContextAlbum, ID: "alb"}
	s.Data.Contexts[id.URI()] = &state.Context{
		ID:   id,
		Name: "Album",
		Tracks: []state.Track{
			{ID: "t1", Name: "One", Album: &state.Album{ID: "alb", Name: "Album"}},
			{ID: "t2", Name: "Two", Album: &state.Album{ID: "alb", Name: "Album"}},
			{ID: "t3", Name: "Three", Album: &state.Album{ID: "alb", Name: "Album"}},
		},
	}
	return id
}

func TestPrefixBreakRestartsWithNewKey(t *testing.T) {
	p, s, sub := newPipeline()

	press(t, p, "g")
	if got := pendingSequence(s); got != "g" {
		t.Fatalf("expected pending g, got %q", got)
	}
	if len(sub.requests()) != 0 {
		t.Fatalf("expected nothing submitted for a prefix, got %v", sub.requests())
	}

	press(t, p, "n")
	if got := sub.last(t); got != request.NewPlayer(request.NextTrack{}) {
		t.Fatalf("expected NextTrack after restart, got %v", got)
	}
	if got := pendingSequence(s); got != "" {
		t.Fatalf("expected sequence cleared, got %q", got)
	}
}

func TestUnboundKeyIsNotRetained(t *testing.T) {
	p, s, sub := newPipeline()
	press(t, p, "x")
	if got := pendingSequence(s); got != "" {
		t.Fatalf("expected unbound key dropped, got %q", got)
	}
	if len(sub.requests()) != 0 {
		t.Fatalf("expected no requests, got %v", sub.requests())
	}
}

func TestMultiKeySequenceSelectsFirst(t *testing.T) {
	p, s, _ := newPipeline()
	id := sampleContext(s)
	s.UI.CreateNewPage(&state.BrowsingPage{Context: id})
	s.UI.Window.List.Selected = 2

	press(t, p, "g", "g")
	if s.UI.Window.List.Selected != 0 {
		t.Fatalf("expected first row selected, got %d", s.UI.Window.List.Selected)
	}
	press(t, p, "G")
	if s.UI.Window.List.Selected != 2 {
		t.Fatalf("expected last row selected, got %d", s.UI.Window.List.Selected)
	}
}

func TestVolumeClamps(t *testing.T) {
	cases := []struct {
		name string
		from int
		cmd  command.Command
		want uint8
	}{
		{name: "up clamps", from: 98, cmd: command.VolumeUp, want: 100},
		{name: "down clamps", from: 2, cmd: command.VolumeDown, want: 0},
		{name: "up", from: 40, cmd: command.VolumeUp, want: 45},
		{name: "down", from: 40, cmd: command.VolumeDown, want: 35},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, s, sub := newPipeline()
			s.Player.Playback = &state.Playback{Device: state.Device{ID: "d", VolumePercent: volume(tc.from)}}
			handled, err := p.HandleGlobalCommand(tc.cmd)
			if err != nil || !handled {
				t.Fatalf("expected handled, got %v %v", handled, err)
			}
			want := request.NewPlayer(request.Volume{Percent: tc.want})
			if got := sub.last(t); got != want {
				t.Fatalf("expected %v, got %v", want, got)
			}
		})
	}
}

func TestVolumeWithoutPlaybackSubmitsNothing(t *testing.T) {
	p, _, sub := newPipeline()
	if handled, _ := p.HandleGlobalCommand(command.VolumeUp); !handled {
		t.Fatal("expected VolumeUp to be recognised")
	}
	if len(sub.requests()) != 0 {
		t.Fatalf("expected no requests, got %v", sub.requests())
	}
}

func TestPreviousPage(t *testing.T) {
	p, s, _ := newPipeline()

	handled, _ := p.HandleGlobalCommand(command.PreviousPage)
	if !handled {
		t.Fatal("expected PreviousPage handled")
	}
	if len(s.UI.History) != 1 {
		t.Fatalf("expected base page kept, got %d pages", len(s.UI.History))
	}

	s.UI.CreateNewPage(&state.SearchingPage{})
	s.UI.Popup = &state.CommandHelpPopup{}
	s.UI.Window.List.Selected = 4
	p.HandleGlobalCommand(command.PreviousPage)
	if len(s.UI.History) != 1 || s.UI.CurrentPage().Kind() != state.PageCurrentPlaying {
		t.Fatalf("expected to return to base page, got %d pages", len(s.UI.History))
	}
	if s.UI.Popup != nil || s.UI.Window.List.Selected != 0 {
		t.Fatal("expected popup and window reset")
	}
}

func TestSwitchThemeListsActiveFirst(t *testing.T) {
	p, s, _ := newPipeline()
	gruvbox, _ := theme.Find(s.Themes, "gruvbox")
	s.UI.Theme = gruvbox

	p.HandleGlobalCommand(command.SwitchTheme)
	popup, ok := s.UI.Popup.(*state.ThemeListPopup)
	if !ok {
		t.Fatalf("expected theme popup, got %T", s.UI.Popup)
	}
	var names []string
	for _, th := range popup.Themes {
		names = append(names, th.Name)
	}
	want := []string{"gruvbox", "default", "dracula"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	if s.Themes[0].Name != "default" {
		t.Fatal("expected configured theme order untouched")
	}
}

func TestThemePopupPreviewsAndRestores(t *testing.T) {
	p, s, _ := newPipeline()
	p.HandleGlobalCommand(command.SwitchTheme)

	press(t, p, "j")
	if s.UI.Theme.Name != "dracula" {
		t.Fatalf("expected preview of dracula, got %q", s.UI.Theme.Name)
	}
	press(t, p, "esc")
	if s.UI.Theme.Name != "default" || s.UI.Popup != nil {
		t.Fatalf("expected original theme restored, got %q", s.UI.Theme.Name)
	}

	p.HandleGlobalCommand(command.SwitchTheme)
	press(t, p, "j", "enter")
	if s.UI.Theme.Name != "dracula" || s.UI.Popup != nil {
		t.Fatalf("expected dracula chosen, got %q", s.UI.Theme.Name)
	}
}

func TestMouseSeek(t *testing.T) {
	cases := []struct {
		name     string
		duration time.Duration
		rect     state.Rect
		mouse    Mouse
		want     time.Duration
		submit   bool
	}{
		{
			name:     "third of the bar",
			duration: 200 * time.Second,
			rect:     state.Rect{Y: 10, Width: 100, Height: 1},
			mouse:    Mouse{Button: MouseLeft, Action: MousePress, Column: 33, Row: 10},
			want:     66 * time.Second,
			submit:   true,
		},
		{
			name:     "floor division",
			duration: 1001 * time.Millisecond,
			rect:     state.Rect{Y: 0, Width: 3, Height: 1},
			mouse:    Mouse{Button: MouseLeft, Action: MousePress, Column: 1, Row: 0},
			want:     333 * time.Millisecond,
			submit:   true,
		},
		{
			name:     "other row",
			duration: time.Minute,
			rect:     state.Rect{Y: 10, Width: 100},
			mouse:    Mouse{Button: MouseLeft, Action: MousePress, Column: 5, Row: 9},
		},
		{
			name:     "right button",
			duration: time.Minute,
			rect:     state.Rect{Y: 10, Width: 100},
			mouse:    Mouse{Button: MouseRight, Action: MousePress, Column: 5, Row: 10},
		},
		{
			name:     "release",
			duration: time.Minute,
			rect:     state.Rect{Y: 10, Width: 100},
			mouse:    Mouse{Button: MouseLeft, Action: MouseRelease, Column: 5, Row: 10},
		},
		{
			name:     "zero width",
			duration: time.Minute,
			rect:     state.Rect{Y: 10},
			mouse:    Mouse{Button: MouseLeft, Action: MousePress, Column: 0, Row: 10},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, s, sub := newPipeline()
			s.Player.Playback = &state.Playback{Item: &state.Track{ID: "t", Duration: tc.duration}, IsPlaying: true}
			s.UI.ProgressBarRect = tc.rect
			if err := p.HandleEvent(MouseEvent(tc.mouse)); err != nil {
				t.Fatalf("mouse: %v", err)
			}
			reqs := sub.requests()
			if !tc.submit {
				if len(reqs) != 0 {
					t.Fatalf("expected no seek, got %v", reqs)
				}
				return
			}
			want := request.NewPlayer(request.SeekTrack{Position: tc.want})
			if len(reqs) != 1 || reqs[0] != want {
				t.Fatalf("expected %v, got %v", want, reqs)
			}
		})
	}
}

func TestMouseSeekWithoutTrack(t *testing.T) {
	p, s, sub := newPipeline()
	s.UI.ProgressBarRect = state.Rect{Y: 1, Width: 10}
	_ = p.HandleEvent(MouseEvent(Mouse{Button: MouseLeft, Action: MousePress, Column: 3, Row: 1}))
	if len(sub.requests()) != 0 {
		t.Fatalf("expected no seek without a track, got %v", sub.requests())
	}
}

func TestPopupTakesPrecedenceOverPage(t *testing.T) {
	p, s, sub := newPipeline()
	s.Player.Devices = []state.Device{{ID: "d1"}, {ID: "d2"}}
	id := sampleContext(s)
	s.UI.CreateNewPage(&state.BrowsingPage{Context: id})

	p.HandleGlobalCommand(command.SwitchDevice)
	if got := sub.last(t); got != (request.GetDevices{}) {
		t.Fatalf("expected GetDevices, got %v", got)
	}
	press(t, p, "j")
	if s.UI.Window.List.Selected != 0 {
		t.Fatal("expected page selection untouched while popup open")
	}
	press(t, p, "enter")
	want := request.NewPlayer(request.TransferPlayback{DeviceID: "d2", ForcePlay: true})
	if got := sub.last(t); got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if s.UI.Popup != nil {
		t.Fatal("expected popup closed after choosing a device")
	}
}

func TestGlobalCommandsReachableFromPopup(t *testing.T) {
	p, s, sub := newPipeline()
	s.UI.Popup = &state.CommandHelpPopup{}
	press(t, p, "n")
	if got := sub.last(t); got != request.NewPlayer(request.NextTrack{}) {
		t.Fatalf("expected NextTrack, got %v", got)
	}
	press(t, p, "j", "j", "k")
	if got := s.UI.Popup.(*state.CommandHelpPopup).Offset; got != 1 {
		t.Fatalf("expected help offset 1, got %d", got)
	}
}

func TestContextWindowPlaysSelectedTrack(t *testing.T) {
	p, s, sub := newPipeline()
	id := sampleContext(s)
	s.UI.CreateNewPage(&state.BrowsingPage{Context: id})

	press(t, p, "j", "enter")
	got, ok := sub.last(t).(request.Player)
	if !ok {
		t.Fatalf("expected player request, got %v", sub.last(t))
	}
	want := request.StartPlayback{Context: &id, OffsetURI: "spotify:track:t2"}
	if !reflect.DeepEqual(got.Request, want) {
		t.Fatalf("expected %+v, got %+v", want, got.Request)
	}
}

func TestContextWindowPlayRandom(t *testing.T) {
	p, s, sub := newPipeline(WithRandom(func(n int) int { return n - 1 }))
	id := sampleContext(s)
	s.UI.CreateNewPage(&state.BrowsingPage{Context: id})

	press(t, p, ".")
	got := sub.last(t).(request.Player)
	want := request.StartPlayback{Context: &id, OffsetURI: "spotify:track:t3"}
	if !reflect.DeepEqual(got.Request, want) {
		t.Fatalf("expected %+v, got %+v", want, got.Request)
	}
}

func TestContextWindowFilter(t *testing.T) {
	p, s, sub := newPipeline()
	id := sampleContext(s)
	s.UI.CreateNewPage(&state.BrowsingPage{Context: id})

	press(t, p, "/", "t", "h", "r")
	if !s.UI.Window.Filtering || s.UI.Window.Filter != "thr" {
		t.Fatalf("expected filter thr, got %+v", s.UI.Window)
	}
	press(t, p, "enter")
	got := sub.last(t).(request.Player)
	if sp := got.Request.(request.StartPlayback); sp.OffsetURI != "spotify:track:t3" {
		t.Fatalf("expected filtered track played, got %+v", sp)
	}
	press(t, p, "esc")
	if s.UI.Window.Filtering || s.UI.Window.Filter != "" {
		t.Fatalf("expected filter cleared, got %+v", s.UI.Window)
	}
}

func TestBrowsePlayingContext(t *testing.T) {
	p, s, sub := newPipeline()
	id := state.ContextID{Kind: state.ContextPlaylist, ID: "pl"}
	s.Player.Playback = &state.Playback{Context: &id}

	p.HandleGlobalCommand(command.BrowsePlayingContext)
	if len(s.UI.History) != 2 || s.UI.CurrentPage().Kind() != state.PageCurrentPlaying {
		t.Fatalf("expected current playing page pushed, got %d pages", len(s.UI.History))
	}
	if got := sub.last(t); got != (request.GetContext{Context: id}) {
		t.Fatalf("expected GetContext, got %v", got)
	}
}

func TestSearchWindow(t *testing.T) {
	p, s, sub := newPipeline()
	p.HandleGlobalCommand(command.SearchPage)

	press(t, p, "q", "x", "backspace", "space", "j", "enter")
	if got := sub.last(t); got != (request.Search{Query: "q j"}) {
		t.Fatalf("expected search for %q, got %v", "q j", got)
	}
	if !s.UI.IsRunning {
		t.Fatal("typing q in the search box must not quit")
	}

	s.Data.SearchResults["q j"] = state.SearchResults{Tracks: []state.Track{{ID: "a"}, {ID: "b"}}}
	press(t, p, "down", "enter")
	got := sub.last(t).(request.Player)
	want := request.StartPlayback{URIs: []string{"spotify:track:a", "spotify:track:b"}, OffsetIndex: 1}
	if !reflect.DeepEqual(got.Request, want) {
		t.Fatalf("expected %+v, got %+v", want, got.Request)
	}

	page := s.UI.CurrentPage().(*state.SearchingPage)
	page.Input = ""
	press(t, p, "backspace")
	if s.UI.CurrentPage().Kind() != state.PageCurrentPlaying {
		t.Fatal("expected backspace on an empty query to go back")
	}
}

func TestActionListAddToPlaylist(t *testing.T) {
	p, s, sub := newPipeline()
	s.Data.UserData.Playlists = []state.Playlist{{ID: "p1", Name: "Mix"}}
	track := state.Track{ID: "t1", Name: "One"}
	s.Player.Playback = &state.Playback{Item: &track}

	p.HandleGlobalCommand(command.ShowActionsOnCurrentTrack)
	popup := s.UI.Popup.(*state.ActionListPopup)
	for i, a := range popup.Actions {
		if a == state.ActionAddToPlaylist {
			popup.List.Selected = i
		}
	}
	press(t, p, "enter")
	if _, ok := s.UI.Popup.(*state.UserPlaylistListPopup); !ok {
		t.Fatalf("expected playlist popup, got %T", s.UI.Popup)
	}
	press(t, p, "enter")
	if got := sub.last(t); got != (request.AddTrackToPlaylist{PlaylistID: "p1", TrackID: "t1"}) {
		t.Fatalf("expected AddTrackToPlaylist, got %v", got)
	}
	if s.UI.Popup != nil {
		t.Fatal("expected popup closed")
	}
}

func TestUnknownGlobalCommandNotHandled(t *testing.T) {
	p, _, _ := newPipeline()
	if handled, err := p.HandleGlobalCommand(command.SelectNext); handled || err != nil {
		t.Fatalf("expected SelectNext unhandled globally, got %v %v", handled, err)
	}
}

func TestRunStopsOnQuit(t *testing.T) {
	p, _, _ := newPipeline()
	src := NewChannelSource(4)
	src.Push(ResizeEvent(80, 24))
	src.Push(KeyEvent(key.New("q")))

	done := make(chan error, 1)
	go func() { done <- p.Run(context.Background(), src) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean stop, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("pipeline did not stop after quit")
	}
}

func TestRunStopsWhenSubmissionRefused(t *testing.T) {
	p, _, sub := newPipeline()
	sub.err = dispatcher.ErrClosed
	src := NewChannelSource(1)
	src.Push(KeyEvent(key.New("n")))
	if err := p.Run(context.Background(), src); !errors.Is(err, dispatcher.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestRunReturnsWhenSourceCloses(t *testing.T) {
	p, _, _ := newPipeline()
	src := NewChannelSource(0)
	src.Close()
	if err := p.Run(context.Background(), src); err != nil {
		t.Fatalf("expected nil on closed source, got %v", err)
	}
	if src.Push(KeyEvent(key.New("n"))) {
		t.Fatal("expected push to fail after close")
	}
}

func TestGlobalCommandTable(t *testing.T) {
	ctxID := state.ContextID{Kind: state.ContextPlaylist, ID: "pl"}
	track := state.Track{ID: "t1", Name: "One"}

	cases := []struct {
		cmd   command.Command
		seed  func(s *state.Shared)
		want  []request.ClientRequest
		check func(t *testing.T, p *Pipeline, s *state.Shared)
	}{
		{
			cmd: command.Quit,
			check: func(t *testing.T, _ *Pipeline, s *state.Shared) {
				if s.UI.IsRunning {
					t.Fatal("expected quit to stop the app")
				}
			},
		},
		{cmd: command.NextTrack, want: []request.ClientRequest{request.NewPlayer(request.NextTrack{})}},
		{cmd: command.PreviousTrack, want: []request.ClientRequest{request.NewPlayer(request.PreviousTrack{})}},
		{cmd: command.ResumePause, want: []request.ClientRequest{request.NewPlayer(request.ResumePause{})}},
		{cmd: command.Repeat, want: []request.ClientRequest{request.NewPlayer(request.Repeat{})}},
		{cmd: command.Shuffle, want: []request.ClientRequest{request.NewPlayer(request.Shuffle{})}},
		{
			cmd: command.VolumeUp,
			seed: func(s *state.Shared) {
				s.Player.Playback = &state.Playback{Device: state.Device{ID: "d", VolumePercent: volume(40)}}
			},
			want: []request.ClientRequest{request.NewPlayer(request.Volume{Percent: 45})},
		},
		{
			cmd: command.VolumeDown,
			seed: func(s *state.Shared) {
				s.Player.Playback = &state.Playback{Device: state.Device{ID: "d", VolumePercent: volume(40)}}
			},
			want: []request.ClientRequest{request.NewPlayer(request.Volume{Percent: 35})},
		},
		{
			cmd: command.OpenCommandHelp,
			check: func(t *testing.T, _ *Pipeline, s *state.Shared) {
				help, ok := s.UI.Popup.(*state.CommandHelpPopup)
				if !ok || help.Offset != 0 {
					t.Fatalf("expected help popup at offset 0, got %#v", s.UI.Popup)
				}
			},
		},
		{cmd: command.RefreshPlayback, want: []request.ClientRequest{request.GetCurrentPlayback{}}},
		{
			cmd:  command.ShowActionsOnCurrentTrack,
			seed: func(s *state.Shared) { s.Player.Playback = &state.Playback{Item: &track} },
			check: func(t *testing.T, _ *Pipeline, s *state.Shared) {
				popup, ok := s.UI.Popup.(*state.ActionListPopup)
				if !ok || popup.Item.Track == nil || popup.Item.Track.ID != "t1" {
					t.Fatalf("expected actions on t1, got %#v", s.UI.Popup)
				}
			},
		},
		{
			cmd:  command.BrowsePlayingContext,
			seed: func(s *state.Shared) { s.Player.Playback = &state.Playback{Context: &ctxID} },
			want: []request.ClientRequest{request.GetContext{Context: ctxID}},
			check: func(t *testing.T, _ *Pipeline, s *state.Shared) {
				if s.UI.CurrentPage().Kind() != state.PageCurrentPlaying || len(s.UI.History) != 2 {
					t.Fatalf("expected current playing page pushed, got %d pages", len(s.UI.History))
				}
			},
		},
		{
			cmd:  command.BrowseUserPlaylists,
			seed: func(s *state.Shared) { s.Data.UserData.Playlists = []state.Playlist{{ID: "p1", Name: "Mix"}} },
			want: []request.ClientRequest{request.GetUserPlaylists{}},
			check: func(t *testing.T, p *Pipeline, s *state.Shared) {
				popup, ok := s.UI.Popup.(*state.UserPlaylistListPopup)
				if !ok {
					t.Fatalf("expected playlist popup, got %T", s.UI.Popup)
				}
				if got := p.popupPlaylists(popup); len(got) != 1 || got[0].ID != "p1" {
					t.Fatalf("expected cached playlist listed, got %+v", got)
				}
			},
		},
		{
			cmd:  command.BrowseUserFollowedArtists,
			seed: func(s *state.Shared) { s.Data.UserData.FollowedArtists = []state.Artist{{ID: "a1", Name: "Band"}} },
			want: []request.ClientRequest{request.GetUserFollowedArtists{}},
			check: func(t *testing.T, p *Pipeline, s *state.Shared) {
				if _, ok := s.UI.Popup.(*state.UserFollowedArtistListPopup); !ok {
					t.Fatalf("expected followed artist popup, got %T", s.UI.Popup)
				}
				if n := p.popupLen(s.UI.Popup); n != 1 {
					t.Fatalf("expected the cached artist listed, got %d rows", n)
				}
			},
		},
		{
			cmd:  command.BrowseUserSavedAlbums,
			seed: func(s *state.Shared) { s.Data.UserData.SavedAlbums = []state.Album{{ID: "al1", Name: "Record"}} },
			want: []request.ClientRequest{request.GetUserSavedAlbums{}},
			check: func(t *testing.T, p *Pipeline, s *state.Shared) {
				if _, ok := s.UI.Popup.(*state.UserSavedAlbumListPopup); !ok {
					t.Fatalf("expected saved album popup, got %T", s.UI.Popup)
				}
				if n := p.popupLen(s.UI.Popup); n != 1 {
					t.Fatalf("expected the cached album listed, got %d rows", n)
				}
			},
		},
		{
			cmd: command.SearchPage,
			check: func(t *testing.T, _ *Pipeline, s *state.Shared) {
				if s.UI.CurrentPage().Kind() != state.PageSearching {
					t.Fatalf("expected search page, got %v", s.UI.CurrentPage().Kind())
				}
			},
		},
		{
			cmd:  command.PreviousPage,
			seed: func(s *state.Shared) { s.UI.CreateNewPage(&state.SearchingPage{}) },
			check: func(t *testing.T, _ *Pipeline, s *state.Shared) {
				if len(s.UI.History) != 1 || s.UI.CurrentPage().Kind() != state.PageCurrentPlaying {
					t.Fatalf("expected base page, got %d pages", len(s.UI.History))
				}
			},
		},
		{
			cmd:  command.SwitchDevice,
			want: []request.ClientRequest{request.GetDevices{}},
			check: func(t *testing.T, _ *Pipeline, s *state.Shared) {
				if _, ok := s.UI.Popup.(*state.DeviceListPopup); !ok {
					t.Fatalf("expected device popup, got %T", s.UI.Popup)
				}
			},
		},
		{
			cmd: command.SwitchTheme,
			check: func(t *testing.T, _ *Pipeline, s *state.Shared) {
				popup, ok := s.UI.Popup.(*state.ThemeListPopup)
				if !ok || len(popup.Themes) != len(s.Themes) {
					t.Fatalf("expected theme popup listing every theme, got %#v", s.UI.Popup)
				}
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.cmd.String(), func(t *testing.T) {
			p, s, sub := newPipeline()
			if tc.seed != nil {
				tc.seed(s)
			}
			handled, err := p.HandleGlobalCommand(tc.cmd)
			if err != nil || !handled {
				t.Fatalf("expected handled, got %v %v", handled, err)
			}
			if got := sub.requests(); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected requests %v, got %v", tc.want, got)
			}
			if tc.check != nil {
				tc.check(t, p, s)
			}
		})
	}
}

func TestCommandHelpOffsetStopsAtLastBinding(t *testing.T) {
	p, s, _ := newPipeline()
	last := len(s.Keymap.Bindings()) - 1
	s.UI.Popup = &state.CommandHelpPopup{Offset: last - 1}

	press(t, p, "j", "j", "j")
	if got := s.UI.Popup.(*state.CommandHelpPopup).Offset; got != last {
		t.Fatalf("expected offset clamped to %d, got %d", last, got)
	}
	press(t, p, "k")
	if got := s.UI.Popup.(*state.CommandHelpPopup).Offset; got != last-1 {
		t.Fatalf("expected one step back to %d, got %d", last-1, got)
	}
}

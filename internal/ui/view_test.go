package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/playctl/internal/event"
	"github.com/atomicstack/playctl/internal/state"
	"github.com/atomicstack/playctl/internal/testutil"
	"github.com/atomicstack/playctl/internal/theme"
)

func newTestModel(t *testing.T) (*Model, *state.Shared, *event.ChannelSource) {
	t.Helper()
	s := state.New(nil, nil, theme.Default())
	src := event.NewChannelSource(16)
	t.Cleanup(src.Close)
	m := NewModel(s, src)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	return m, s, src
}

func setPlayback(s *state.Shared, playing bool) {
	vol := 40
	s.Player.Lock()
	s.Player.Playback = &state.Playback{
		Device:      state.Device{ID: "d1", Name: "Kitchen", VolumePercent: &vol},
		Item:        &state.Track{ID: "t1", Name: "Song A", Artists: []state.Artist{{Name: "Band"}}, Duration: 3 * time.Minute},
		Progress:    time.Minute,
		IsPlaying:   playing,
		RepeatState: state.RepeatOff,
	}
	s.Player.PlaybackLastUpdated = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.Player.Unlock()
}

func TestViewShowsPlaybackAndPublishesProgressBar(t *testing.T) {
	m, s, _ := newTestModel(t)
	setPlayback(s, false)

	view := m.View()
	for _, want := range []string{"Song A - Band", "1:00 / 3:00", "Kitchen", "vol 40%"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, view)
		}
	}

	s.UI.RLock()
	rect := s.UI.ProgressBarRect
	s.UI.RUnlock()
	want := state.Rect{X: 0, Y: 3, Width: 80, Height: 1}
	if rect != want {
		t.Fatalf("expected progress bar rect %+v, got %+v", want, rect)
	}
	lines := strings.Split(view, "\n")
	if len(lines) <= rect.Y || strings.Contains(lines[rect.Y], "Song A") {
		t.Fatalf("expected progress bar on row %d, got:\n%s", rect.Y, view)
	}
}

func TestViewWithoutPlaybackHintsAtDevice(t *testing.T) {
	m, s, _ := newTestModel(t)
	s.Player.Lock()
	s.Player.Devices = []state.Device{{ID: "d1", Name: "Laptop"}}
	s.Player.Unlock()

	view := m.View()
	if !strings.Contains(view, "No active playback (connecting to Laptop)") {
		t.Fatalf("expected device hint, got:\n%s", view)
	}
}

func TestViewListsBrowsedContextWithFilter(t *testing.T) {
	m, s, _ := newTestModel(t)
	id := state.ContextID{Kind: state.ContextAlbum, ID: "alb"}
	s.Data.Lock()
	s.Data.Contexts[id.URI()] = &state.Context{
		ID:   id,
		Name: "Blue Record",
		Tracks: []state.Track{
			{ID: "t1", Name: "Morning"},
			{ID: "t2", Name: "Evening"},
		},
	}
	s.Data.Unlock()
	s.UI.Lock()
	s.UI.CreateNewPage(&state.BrowsingPage{Context: id})
	s.UI.Window.Filter = "eve"
	s.UI.Unlock()

	view := m.View()
	if !strings.Contains(view, "Album: Blue Record") {
		t.Fatalf("expected context title, got:\n%s", view)
	}
	if !strings.Contains(view, "/eve") {
		t.Fatalf("expected filter line, got:\n%s", view)
	}
	if !strings.Contains(view, "> 0:00  Evening") {
		t.Fatalf("expected filtered track selected, got:\n%s", view)
	}
	if strings.Contains(view, "Morning") {
		t.Fatalf("expected filtered-out track to be hidden, got:\n%s", view)
	}
}

func TestViewShowsLoadingForUnfetchedContext(t *testing.T) {
	m, s, _ := newTestModel(t)
	s.UI.Lock()
	s.UI.CreateNewPage(&state.BrowsingPage{Context: state.ContextID{Kind: state.ContextPlaylist, ID: "p1"}})
	s.UI.Unlock()

	if view := m.View(); !strings.Contains(view, "Loading playlist...") {
		t.Fatalf("expected loading title, got:\n%s", view)
	}
}

func TestViewRendersCommandHelp(t *testing.T) {
	m, s, _ := newTestModel(t)
	s.UI.Lock()
	s.UI.Popup = &state.CommandHelpPopup{}
	s.UI.Unlock()

	view := m.View()
	if !strings.Contains(view, "Commands") || !strings.Contains(view, "NextTrack") {
		t.Fatalf("expected command help, got:\n%s", view)
	}

	s.UI.Lock()
	s.UI.Popup = &state.CommandHelpPopup{Offset: 1}
	s.UI.Unlock()
	if view := m.View(); strings.Contains(view, "NextTrack") {
		t.Fatalf("expected offset to scroll past the first binding, got:\n%s", view)
	}
}

func TestViewRendersDevicePopup(t *testing.T) {
	m, s, _ := newTestModel(t)
	s.Player.Lock()
	s.Player.Devices = []state.Device{
		{ID: "d1", Name: "Laptop", Type: "Computer", IsActive: true},
		{ID: "d2", Name: "Phone", Type: "Smartphone"},
	}
	s.Player.Unlock()
	s.UI.Lock()
	s.UI.Popup = &state.DeviceListPopup{List: state.ListState{Selected: 1}}
	s.UI.Unlock()

	view := m.View()
	if !strings.Contains(view, "Laptop (Computer) *") {
		t.Fatalf("expected active device marker, got:\n%s", view)
	}
	if !strings.Contains(view, "> Phone (Smartphone)") {
		t.Fatalf("expected selected device, got:\n%s", view)
	}
}

func TestViewShowsPendingKeySequence(t *testing.T) {
	m, s, _ := newTestModel(t)
	s.UI.Lock()
	s.UI.InputKeySequence = s.UI.InputKeySequence.Append(mustKey(t, "g"))
	s.UI.Unlock()

	if view := m.View(); !strings.Contains(view, "g …") {
		t.Fatalf("expected pending sequence in footer, got:\n%s", view)
	}
}

func TestListKeepsSelectionVisible(t *testing.T) {
	m, _, _ := newTestModel(t)
	labels := []string{"a", "b", "c", "d", "e"}
	rows := m.list(labels, 4, 2)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if !strings.Contains(rows[1], "> e") {
		t.Fatalf("expected selected row last, got %q", rows)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[time.Duration]string{
		0:                             "0:00",
		-time.Second:                  "0:00",
		59 * time.Second:              "0:59",
		3*time.Minute + 5*time.Second: "3:05",
		75 * time.Minute:              "75:00",
	}
	for in, want := range cases {
		if got := formatDuration(in); got != want {
			t.Fatalf("formatDuration(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestHelpLinesMatchGolden(t *testing.T) {
	m, _, _ := newTestModel(t)
	testutil.AssertGolden(t, "help_popup.golden", strings.Join(m.helpLines(0, 0), "\n"))
}

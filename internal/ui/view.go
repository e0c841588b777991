package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/playctl/internal/state"
	"github.com/atomicstack/playctl/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

const minBarWidth = 10

// snapshot is a copy of everything View draws, taken one lock at a time.
type snapshot struct {
	theme    theme.Theme
	page     state.Page
	depth    int
	popup    state.Popup
	window   state.WindowState
	pending  string
	playback *state.Playback
	progress time.Duration
	devices  []state.Device
	user     state.UserData
	title    string
	tracks   []state.Track
}

func (m *Model) snapshot() snapshot {
	var snap snapshot

	ui := m.state.UI
	ui.RLock()
	snap.theme = ui.Theme
	snap.page = ui.CurrentPage()
	snap.depth = len(ui.History)
	snap.popup = copyPopup(ui.Popup)
	snap.window = ui.Window
	snap.pending = ui.InputKeySequence.String()
	var query string
	if sp, ok := snap.page.(*state.SearchingPage); ok {
		query = strings.TrimSpace(sp.CurrentQuery)
		snap.title = "Search: " + sp.Input
	}
	ui.RUnlock()

	player := m.state.Player
	player.RLock()
	if player.Playback != nil {
		pb := *player.Playback
		snap.playback = &pb
		snap.progress, _ = player.PlaybackProgress(m.now())
	}
	snap.devices = player.Devices
	player.RUnlock()

	data := m.state.Data
	data.RLock()
	snap.user = data.UserData
	switch pg := snap.page.(type) {
	case *state.CurrentPlayingPage:
		snap.title = "Nothing playing"
		if snap.playback != nil && snap.playback.Context != nil {
			snap.title, snap.tracks = contextTitle(data, *snap.playback.Context)
		}
	case *state.BrowsingPage:
		snap.title, snap.tracks = contextTitle(data, pg.Context)
	case *state.RecommendationsPage:
		snap.title = "Recommendations for " + pg.Seed.Name
		snap.tracks = data.Recommendations[pg.Seed.Key()]
	case *state.SearchingPage:
		snap.tracks = data.SearchResults[query].Tracks
	}
	data.RUnlock()
	return snap
}

var kindTitles = map[state.ContextKind]string{
	state.ContextPlaylist: "Playlist",
	state.ContextAlbum:    "Album",
	state.ContextArtist:   "Artist",
}

func contextTitle(data *state.DataState, id state.ContextID) (string, []state.Track) {
	c, ok := data.Context(id)
	if !ok {
		return fmt.Sprintf("Loading %s...", id.Kind), nil
	}
	return fmt.Sprintf("%s: %s", kindTitles[id.Kind], c.Name), c.Tracks
}

// View implements tea.Model.
func (m *Model) View() string {
	snap := m.snapshot()
	m.applyTheme(snap.theme)

	lines := []string{m.header(snap)}
	lines = append(lines, m.playbackLines(snap)...)

	barWidth := m.width
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	barRow := len(lines)
	lines = append(lines, m.progressBar(snap, barWidth))
	m.publishProgressBar(state.Rect{X: 0, Y: barRow, Width: barWidth, Height: 1})
	lines = append(lines, "")

	footer := m.footer(snap)
	rows := m.height - len(lines) - 1
	if rows < 3 {
		rows = 3
	}
	if snap.popup != nil {
		lines = append(lines, m.popupLines(snap, rows)...)
	} else {
		lines = append(lines, m.pageLines(snap, rows)...)
	}
	lines = append(lines, footer)

	for i, line := range lines {
		lines[i] = ansi.Truncate(line, m.width, "…")
	}
	return strings.Join(lines, "\n")
}

func (m *Model) publishProgressBar(rect state.Rect) {
	ui := m.state.UI
	ui.Lock()
	ui.ProgressBarRect = rect
	ui.Unlock()
}

func (m *Model) header(snap snapshot) string {
	user := snap.user.DisplayName
	if user == "" {
		user = snap.user.UserID
	}
	title := "playctl"
	if user != "" {
		title += " · " + user
	}
	return m.styles.Header.Render(title)
}

func (m *Model) playbackLines(snap snapshot) []string {
	pb := snap.playback
	if pb == nil || pb.Item == nil {
		hint := "No active playback"
		if len(snap.devices) > 0 {
			hint += fmt.Sprintf(" (connecting to %s)", snap.devices[0].Name)
		}
		return []string{m.styles.PlaybackMeta.Render(hint), ""}
	}
	status := "▶"
	if !pb.IsPlaying {
		status = "⏸"
	}
	track := m.styles.Playback.Render(fmt.Sprintf("%s %s", status, pb.Item.Label()))

	meta := []string{
		fmt.Sprintf("%s / %s", formatDuration(snap.progress), formatDuration(pb.Item.Duration)),
	}
	if pb.Device.Name != "" {
		meta = append(meta, pb.Device.Name)
	}
	if pb.Device.VolumePercent != nil {
		meta = append(meta, fmt.Sprintf("vol %d%%", *pb.Device.VolumePercent))
	}
	meta = append(meta, "repeat "+string(pb.RepeatState))
	if pb.ShuffleState {
		meta = append(meta, "shuffle")
	}
	return []string{track, m.styles.PlaybackMeta.Render(strings.Join(meta, " | "))}
}

func (m *Model) progressBar(snap snapshot, width int) string {
	ratio := 0.0
	if pb := snap.playback; pb != nil && pb.Item != nil && pb.Item.Duration > 0 {
		ratio = float64(snap.progress) / float64(pb.Item.Duration)
	}
	if ratio > 1 {
		ratio = 1
	}
	m.bar.Width = width
	return m.bar.ViewAs(ratio)
}

func (m *Model) pageLines(snap snapshot, rows int) []string {
	lines := []string{m.styles.PopupTitle.Render(snap.title)}
	if snap.window.Filtering || snap.window.Filter != "" {
		lines = append(lines, m.styles.Filter.Render("/"+snap.window.Filter))
	}
	tracks := snap.window.VisibleTracks(snap.tracks)
	labels := make([]string, len(tracks))
	for i, t := range tracks {
		labels[i] = trackRow(t)
	}
	return append(lines, m.list(labels, snap.window.List.Selected, rows-len(lines))...)
}

func trackRow(t state.Track) string {
	row := fmt.Sprintf("%s  %s", formatDuration(t.Duration), t.Label())
	if t.Album != nil && t.Album.Name != "" {
		row += "  [" + t.Album.Name + "]"
	}
	return row
}

// list renders labels scrolled so the selected row stays visible.
func (m *Model) list(labels []string, selected, rows int) []string {
	if len(labels) == 0 {
		return []string{m.styles.PlaybackMeta.Render("(empty)")}
	}
	if rows < 1 {
		rows = 1
	}
	start := 0
	if selected >= rows {
		start = selected - rows + 1
	}
	end := start + rows
	if end > len(labels) {
		end = len(labels)
	}
	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		if i == selected {
			out = append(out, m.styles.SelectedItem.Render("> "+labels[i]))
			continue
		}
		out = append(out, m.styles.Item.Render("  "+labels[i]))
	}
	return out
}

func (m *Model) footer(snap snapshot) string {
	parts := []string{"? help", "q quit"}
	if snap.depth > 1 {
		parts = append(parts, "backspace back")
	}
	footer := m.styles.Footer.Render(strings.Join(parts, "  "))
	if snap.pending != "" {
		footer += "  " + m.styles.KeySequence.Render(snap.pending+" …")
	}
	return footer
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/playctl/internal/format/table"
	"github.com/atomicstack/playctl/internal/state"
)

// copyPopup returns a shallow copy so the popup can be drawn after the UI
// lock is released.
func copyPopup(p state.Popup) state.Popup {
	switch p := p.(type) {
	case *state.CommandHelpPopup:
		c := *p
		return &c
	case *state.ActionListPopup:
		c := *p
		return &c
	case *state.UserPlaylistListPopup:
		c := *p
		return &c
	case *state.UserFollowedArtistListPopup:
		c := *p
		return &c
	case *state.UserSavedAlbumListPopup:
		c := *p
		return &c
	case *state.DeviceListPopup:
		c := *p
		return &c
	case *state.ThemeListPopup:
		c := *p
		return &c
	}
	return nil
}

// popupLines draws the popup as a bordered box below its title. The title
// and the two border rows come out of rows.
func (m *Model) popupLines(snap snapshot, rows int) []string {
	title, lines := m.popupBody(snap, rows-3)
	box := m.styles.Popup.Render(strings.Join(lines, "\n"))
	return append([]string{m.styles.PopupTitle.Render(title)}, strings.Split(box, "\n")...)
}

func (m *Model) popupBody(snap snapshot, rows int) (string, []string) {
	switch p := snap.popup.(type) {
	case *state.CommandHelpPopup:
		return "Commands", m.helpLines(p.Offset, rows)
	case *state.ActionListPopup:
		labels := make([]string, len(p.Actions))
		for i, a := range p.Actions {
			labels[i] = a.String()
		}
		return "Actions on " + p.Item.Name(), m.list(labels, p.List.Selected, rows)
	case *state.UserPlaylistListPopup:
		playlists := p.Playlists
		if playlists == nil {
			playlists = snap.user.Playlists
		}
		labels := make([]string, len(playlists))
		for i, pl := range playlists {
			labels[i] = pl.Name
		}
		title := "Playlists"
		if p.Action.AddTrack != nil {
			title = fmt.Sprintf("Add %q to playlist", p.Action.AddTrack.Name)
		}
		return title, m.list(labels, p.List.Selected, rows)
	case *state.UserFollowedArtistListPopup:
		labels := make([]string, len(snap.user.FollowedArtists))
		for i, a := range snap.user.FollowedArtists {
			labels[i] = a.Name
		}
		return "Followed artists", m.list(labels, p.List.Selected, rows)
	case *state.UserSavedAlbumListPopup:
		labels := make([]string, len(snap.user.SavedAlbums))
		for i, a := range snap.user.SavedAlbums {
			labels[i] = a.Name
			if len(a.Artists) > 0 {
				labels[i] += " - " + a.Artists[0].Name
			}
		}
		return "Saved albums", m.list(labels, p.List.Selected, rows)
	case *state.DeviceListPopup:
		labels := make([]string, len(snap.devices))
		for i, d := range snap.devices {
			labels[i] = fmt.Sprintf("%s (%s)", d.Name, d.Type)
			if d.IsActive {
				labels[i] += " *"
			}
		}
		return "Devices", m.list(labels, p.List.Selected, rows)
	case *state.ThemeListPopup:
		labels := make([]string, len(p.Themes))
		for i, t := range p.Themes {
			labels[i] = t.Name
		}
		return "Themes", m.list(labels, p.List.Selected, rows)
	}
	return "", nil
}

// helpLines renders the keymap as an aligned table starting at offset.
func (m *Model) helpLines(offset, rows int) []string {
	bindings := m.state.Keymap.Bindings()
	if offset >= len(bindings) {
		offset = len(bindings) - 1
	}
	if offset < 0 {
		offset = 0
	}
	tableRows := make([][]string, 0, len(bindings))
	for _, b := range bindings[offset:] {
		tableRows = append(tableRows, []string{b.Sequence.String(), b.Command.String(), b.Command.Description()})
	}
	lines := table.Format(tableRows, []table.Alignment{table.AlignRight, table.AlignLeft, table.AlignLeft})
	if rows > 0 && len(lines) > rows {
		lines = lines[:rows]
	}
	return lines
}

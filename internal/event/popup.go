package event

import (
	"github.com/atomicstack/playctl/internal/command"
	"github.com/atomicstack/playctl/internal/key"
	"github.com/atomicstack/playctl/internal/logging/events"
	"github.com/atomicstack/playctl/internal/request"
	"github.com/atomicstack/playctl/internal/state"
)

// handlePopup handles seq while a popup is open. Commands the popup does
// not understand fall through to the global handler.
func (p *Pipeline) handlePopup(seq key.Sequence) (bool, error) {
	cmd, ok := p.state.Keymap.Command(seq)
	if !ok {
		return false, nil
	}

	p.state.UI.RLock()
	popup := p.state.UI.Popup
	p.state.UI.RUnlock()
	if popup == nil {
		return false, nil
	}

	if cmd == command.ClosePopup {
		p.withUI(func(ui *state.UIState) {
			// Closing the theme list discards the preview.
			if tp, ok := popup.(*state.ThemeListPopup); ok && len(tp.Themes) > 0 {
				ui.Theme = tp.Themes[0]
			}
			ui.Popup = nil
		})
		events.Command.Run(cmd.String(), "popup")
		events.UI.Popup("")
		return true, nil
	}

	if help, ok := popup.(*state.CommandHelpPopup); ok {
		handled := true
		p.withUI(func(*state.UIState) {
			switch cmd {
			case command.SelectNext:
				if help.Offset < len(p.state.Keymap.Bindings())-1 {
					help.Offset++
				}
			case command.SelectPrevious:
				if help.Offset > 0 {
					help.Offset--
				}
			case command.SelectFirst:
				help.Offset = 0
			default:
				handled = false
			}
		})
		return handled, nil
	}

	list := popupList(popup)
	if list == nil {
		return false, nil
	}
	n := p.popupLen(popup)

	if cmd == command.ChooseSelected {
		p.state.UI.RLock()
		selected := list.Selected
		p.state.UI.RUnlock()
		if selected < 0 || selected >= n {
			return true, nil
		}
		events.Command.Run(cmd.String(), "popup")
		return true, p.choosePopupItem(popup, selected)
	}

	moved := false
	p.withUI(func(ui *state.UIState) {
		if !moveSelection(list, cmd, n) {
			return
		}
		moved = true
		if tp, ok := popup.(*state.ThemeListPopup); ok && list.Selected < len(tp.Themes) {
			ui.Theme = tp.Themes[list.Selected]
		}
	})
	if moved {
		events.Command.Run(cmd.String(), "popup")
	}
	return moved, nil
}

func popupList(popup state.Popup) *state.ListState {
	switch pp := popup.(type) {
	case *state.ActionListPopup:
		return &pp.List
	case *state.UserPlaylistListPopup:
		return &pp.List
	case *state.UserFollowedArtistListPopup:
		return &pp.List
	case *state.UserSavedAlbumListPopup:
		return &pp.List
	case *state.DeviceListPopup:
		return &pp.List
	case *state.ThemeListPopup:
		return &pp.List
	}
	return nil
}

func (p *Pipeline) popupLen(popup state.Popup) int {
	switch pp := popup.(type) {
	case *state.ActionListPopup:
		return len(pp.Actions)
	case *state.UserPlaylistListPopup:
		return len(p.popupPlaylists(pp))
	case *state.UserFollowedArtistListPopup:
		p.state.Data.RLock()
		defer p.state.Data.RUnlock()
		return len(p.state.Data.UserData.FollowedArtists)
	case *state.UserSavedAlbumListPopup:
		p.state.Data.RLock()
		defer p.state.Data.RUnlock()
		return len(p.state.Data.UserData.SavedAlbums)
	case *state.DeviceListPopup:
		p.state.Player.RLock()
		defer p.state.Player.RUnlock()
		return len(p.state.Player.Devices)
	case *state.ThemeListPopup:
		return len(pp.Themes)
	}
	return 0
}

func (p *Pipeline) popupPlaylists(pp *state.UserPlaylistListPopup) []state.Playlist {
	if pp.Playlists != nil {
		return pp.Playlists
	}
	p.state.Data.RLock()
	defer p.state.Data.RUnlock()
	return p.state.Data.UserData.Playlists
}

func (p *Pipeline) choosePopupItem(popup state.Popup, selected int) error {
	switch pp := popup.(type) {
	case *state.ActionListPopup:
		return p.runAction(pp.Item, pp.Actions[selected])
	case *state.UserPlaylistListPopup:
		playlists := p.popupPlaylists(pp)
		if selected >= len(playlists) {
			return nil
		}
		playlist := playlists[selected]
		if track := pp.Action.AddTrack; track != nil {
			p.closePopup()
			return p.submit.Submit(request.AddTrackToPlaylist{PlaylistID: playlist.ID, TrackID: track.ID})
		}
		return p.browseContext(state.ContextID{Kind: state.ContextPlaylist, ID: playlist.ID})
	case *state.UserFollowedArtistListPopup:
		p.state.Data.RLock()
		artists := p.state.Data.UserData.FollowedArtists
		p.state.Data.RUnlock()
		if selected >= len(artists) {
			return nil
		}
		artist := artists[selected]
		return p.browseContext(state.ContextID{Kind: state.ContextArtist, ID: artist.ID})
	case *state.UserSavedAlbumListPopup:
		p.state.Data.RLock()
		albums := p.state.Data.UserData.SavedAlbums
		p.state.Data.RUnlock()
		if selected >= len(albums) {
			return nil
		}
		album := albums[selected]
		return p.browseContext(state.ContextID{Kind: state.ContextAlbum, ID: album.ID})
	case *state.DeviceListPopup:
		p.state.Player.RLock()
		devices := p.state.Player.Devices
		p.state.Player.RUnlock()
		if selected >= len(devices) {
			return nil
		}
		device := devices[selected]
		p.closePopup()
		return p.submitPlayer(request.TransferPlayback{DeviceID: device.ID, ForcePlay: true})
	case *state.ThemeListPopup:
		p.withUI(func(ui *state.UIState) {
			ui.Theme = pp.Themes[selected]
			ui.Popup = nil
		})
		events.UI.Popup("")
	}
	return nil
}

// runAction performs an action list entry on item.
func (p *Pipeline) runAction(item state.Item, action state.Action) error {
	switch action {
	case state.ActionBrowseAlbum:
		if album := itemAlbum(item); album != nil {
			return p.browseContext(state.ContextID{Kind: state.ContextAlbum, ID: album.ID})
		}
	case state.ActionBrowseArtist:
		if artists := itemArtists(item); len(artists) > 0 {
			return p.browseContext(state.ContextID{Kind: state.ContextArtist, ID: artists[0].ID})
		}
	case state.ActionAddToPlaylist:
		if item.Track != nil {
			p.openPopup(&state.UserPlaylistListPopup{Action: state.PlaylistAction{AddTrack: item.Track}})
			return p.submit.Submit(request.GetUserPlaylists{})
		}
	case state.ActionSaveToLibrary:
		p.closePopup()
		return p.submit.Submit(request.SaveToLibrary{Item: item})
	case state.ActionBrowseRecommendations:
		seed, ok := seedFor(item)
		if !ok {
			return nil
		}
		p.pushPage(&state.RecommendationsPage{Seed: seed})
		return p.submit.Submit(request.GetRecommendations{Seed: seed})
	}
	return nil
}

func itemAlbum(item state.Item) *state.Album {
	if item.Track != nil {
		return item.Track.Album
	}
	return item.Album
}

func itemArtists(item state.Item) []state.Artist {
	switch {
	case item.Track != nil:
		return item.Track.Artists
	case item.Album != nil:
		return item.Album.Artists
	}
	return nil
}

func seedFor(item state.Item) (state.SeedItem, bool) {
	switch {
	case item.Track != nil:
		return state.SeedItem{Kind: state.SeedTrack, ID: item.Track.ID, Name: item.Track.Name}, true
	case item.Artist != nil:
		return state.SeedItem{Kind: state.SeedArtist, ID: item.Artist.ID, Name: item.Artist.Name}, true
	}
	return state.SeedItem{}, false
}

// moveSelection applies a navigation command to a list of n entries.
func moveSelection(l *state.ListState, cmd command.Command, n int) bool {
	switch cmd {
	case command.SelectNext:
		l.Next(n)
	case command.SelectPrevious:
		l.Previous()
	case command.SelectFirst:
		l.Selected = 0
	case command.SelectLast:
		if n > 0 {
			l.Selected = n - 1
		}
	default:
		return false
	}
	return true
}

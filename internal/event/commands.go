package event

import (
	"github.com/atomicstack/playctl/internal/command"
	"github.com/atomicstack/playctl/internal/logging/events"
	"github.com/atomicstack/playctl/internal/request"
	"github.com/atomicstack/playctl/internal/state"
	"github.com/atomicstack/playctl/internal/theme"
)

const volumeStep = 5

// HandleGlobalCommand applies cmd in the application-wide scope. It reports
// whether cmd is a global command; the error is a refused submission.
func (p *Pipeline) HandleGlobalCommand(cmd command.Command) (bool, error) {
	var err error
	switch cmd {
	case command.Quit:
		p.withUI(func(ui *state.UIState) { ui.IsRunning = false })
	case command.NextTrack:
		err = p.submitPlayer(request.NextTrack{})
	case command.PreviousTrack:
		err = p.submitPlayer(request.PreviousTrack{})
	case command.ResumePause:
		err = p.submitPlayer(request.ResumePause{})
	case command.Repeat:
		err = p.submitPlayer(request.Repeat{})
	case command.Shuffle:
		err = p.submitPlayer(request.Shuffle{})
	case command.VolumeUp:
		err = p.changeVolume(volumeStep)
	case command.VolumeDown:
		err = p.changeVolume(-volumeStep)
	case command.OpenCommandHelp:
		p.openPopup(&state.CommandHelpPopup{Offset: 0})
	case command.RefreshPlayback:
		err = p.submit.Submit(request.GetCurrentPlayback{})
	case command.ShowActionsOnCurrentTrack:
		p.state.Player.RLock()
		track := p.state.Player.CurrentPlayingTrack()
		var item state.Item
		if track != nil {
			dup := *track
			item = state.Item{Track: &dup}
		}
		p.state.Player.RUnlock()
		if item.Track != nil {
			p.openPopup(&state.ActionListPopup{Item: item, Actions: state.ActionsFor(item)})
		}
	case command.BrowsePlayingContext:
		err = p.browsePlayingContext()
	case command.BrowseUserPlaylists:
		err = p.submit.Submit(request.GetUserPlaylists{})
		p.openPopup(&state.UserPlaylistListPopup{})
	case command.BrowseUserFollowedArtists:
		err = p.submit.Submit(request.GetUserFollowedArtists{})
		p.openPopup(&state.UserFollowedArtistListPopup{})
	case command.BrowseUserSavedAlbums:
		err = p.submit.Submit(request.GetUserSavedAlbums{})
		p.openPopup(&state.UserSavedAlbumListPopup{})
	case command.SearchPage:
		p.pushPage(&state.SearchingPage{})
	case command.PreviousPage:
		p.withUI(func(ui *state.UIState) {
			if ui.PopPage() {
				events.UI.Page(pageName(ui.CurrentPage()), len(ui.History))
			}
		})
	case command.SwitchDevice:
		p.openPopup(&state.DeviceListPopup{})
		err = p.submit.Submit(request.GetDevices{})
	case command.SwitchTheme:
		p.withUI(func(ui *state.UIState) {
			themes := theme.MoveToFront(p.state.Themes, ui.Theme.Name)
			ui.Popup = &state.ThemeListPopup{Themes: themes}
			events.UI.Popup(popupName(ui.Popup))
		})
	default:
		events.Command.Ignored(cmd.String(), "global")
		return false, nil
	}
	events.Command.Run(cmd.String(), "global")
	return true, err
}

// changeVolume moves the playback device volume by delta, clamped to
// [0, 100]. Nothing is sent while the volume is unknown.
func (p *Pipeline) changeVolume(delta int) error {
	p.state.Player.RLock()
	volume, ok := p.state.Player.DeviceVolume()
	p.state.Player.RUnlock()
	if !ok {
		return nil
	}
	return p.submitPlayer(request.Volume{Percent: uint8(clampVolume(volume + delta))})
}

func clampVolume(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

func (p *Pipeline) browsePlayingContext() error {
	p.state.Player.RLock()
	var ctx *state.ContextID
	if pb := p.state.Player.Playback; pb != nil && pb.Context != nil {
		id := *pb.Context
		ctx = &id
	}
	p.state.Player.RUnlock()

	p.pushPage(&state.CurrentPlayingPage{})
	if ctx == nil {
		return nil
	}
	return p.submit.Submit(request.GetContext{Context: *ctx})
}

func (p *Pipeline) withUI(fn func(ui *state.UIState)) {
	ui := p.state.UI
	ui.Lock()
	defer ui.Unlock()
	fn(ui)
}

func (p *Pipeline) openPopup(popup state.Popup) {
	p.withUI(func(ui *state.UIState) {
		ui.Popup = popup
	})
	events.UI.Popup(popupName(popup))
}

func (p *Pipeline) closePopup() {
	p.withUI(func(ui *state.UIState) {
		ui.Popup = nil
	})
	events.UI.Popup("")
}

func (p *Pipeline) pushPage(page state.Page) {
	p.withUI(func(ui *state.UIState) {
		ui.CreateNewPage(page)
		events.UI.Page(pageName(page), len(ui.History))
	})
}

// browseContext opens a page for id and fetches its tracks.
func (p *Pipeline) browseContext(id state.ContextID) error {
	p.pushPage(&state.BrowsingPage{Context: id})
	return p.submit.Submit(request.GetContext{Context: id})
}

func pageName(page state.Page) string {
	switch page.(type) {
	case *state.RecommendationsPage:
		return "recommendations"
	case *state.BrowsingPage:
		return "browsing"
	case *state.CurrentPlayingPage:
		return "current-playing"
	case *state.SearchingPage:
		return "searching"
	}
	return "unknown"
}

func popupName(popup state.Popup) string {
	switch popup.(type) {
	case *state.CommandHelpPopup:
		return "command-help"
	case *state.ActionListPopup:
		return "action-list"
	case *state.UserPlaylistListPopup:
		return "user-playlists"
	case *state.UserFollowedArtistListPopup:
		return "followed-artists"
	case *state.UserSavedAlbumListPopup:
		return "saved-albums"
	case *state.DeviceListPopup:
		return "devices"
	case *state.ThemeListPopup:
		return "themes"
	}
	return ""
}

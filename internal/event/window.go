package event

import (
	"strings"

	"github.com/atomicstack/playctl/internal/command"
	"github.com/atomicstack/playctl/internal/key"
	"github.com/atomicstack/playctl/internal/logging/events"
	"github.com/atomicstack/playctl/internal/request"
	"github.com/atomicstack/playctl/internal/state"
)

var (
	keyEnter     = key.New("enter")
	keyEsc       = key.New("esc")
	keyBackspace = key.New("backspace")
)

// playFunc builds the request that starts playback at visible[i].
type playFunc func(visible []state.Track, i int) request.PlayerRequest

func playURIs(visible []state.Track, i int) request.PlayerRequest {
	return request.StartPlayback{URIs: state.TrackURIs(visible), OffsetIndex: i}
}

// handleContextWindow serves the browsing and current-playing pages, which
// list the tracks of a playlist, album or artist.
func (p *Pipeline) handleContextWindow(seq key.Sequence) (bool, error) {
	p.state.UI.RLock()
	page := p.state.UI.CurrentPage()
	p.state.UI.RUnlock()

	id, tracks := p.contextTracks(page)
	var play playFunc
	if id != nil {
		play = func(visible []state.Track, i int) request.PlayerRequest {
			return request.StartPlayback{Context: id, OffsetURI: visible[i].URI()}
		}
	}
	return p.handleTrackWindow(seq, "context", tracks, play)
}

func (p *Pipeline) contextTracks(page state.Page) (*state.ContextID, []state.Track) {
	var id *state.ContextID
	switch pg := page.(type) {
	case *state.BrowsingPage:
		c := pg.Context
		id = &c
	case *state.CurrentPlayingPage:
		p.state.Player.RLock()
		if pb := p.state.Player.Playback; pb != nil && pb.Context != nil {
			c := *pb.Context
			id = &c
		}
		p.state.Player.RUnlock()
	}
	if id == nil {
		return nil, nil
	}
	p.state.Data.RLock()
	defer p.state.Data.RUnlock()
	if c, ok := p.state.Data.Context(*id); ok {
		return id, c.Tracks
	}
	return id, nil
}

func (p *Pipeline) handleRecommendationsWindow(seq key.Sequence) (bool, error) {
	p.state.UI.RLock()
	page, ok := p.state.UI.CurrentPage().(*state.RecommendationsPage)
	p.state.UI.RUnlock()
	if !ok {
		return false, nil
	}
	p.state.Data.RLock()
	tracks := p.state.Data.Recommendations[page.Seed.Key()]
	p.state.Data.RUnlock()
	return p.handleTrackWindow(seq, "recommendations", tracks, playURIs)
}

// handleSearchWindow edits the query with printable keys; enter runs a
// changed query and otherwise plays the selected result.
func (p *Pipeline) handleSearchWindow(seq key.Sequence) (bool, error) {
	ui := p.state.UI
	ui.Lock()
	page, ok := ui.CurrentPage().(*state.SearchingPage)
	if !ok {
		ui.Unlock()
		return false, nil
	}
	if len(seq) == 1 {
		k := seq[0]
		switch {
		case k.IsPrintable():
			page.Input += k.Char()
			ui.Unlock()
			return true, nil
		case k == keyBackspace && page.Input != "":
			runes := []rune(page.Input)
			page.Input = string(runes[:len(runes)-1])
			ui.Unlock()
			return true, nil
		case k == keyEnter && strings.TrimSpace(page.Input) != "" && page.Input != page.CurrentQuery:
			page.CurrentQuery = page.Input
			ui.Window = state.WindowState{}
			query := strings.TrimSpace(page.Input)
			ui.Unlock()
			events.Command.Run("Search", "search")
			return true, p.submit.Submit(request.Search{Query: query})
		}
	}
	query := strings.TrimSpace(page.CurrentQuery)
	ui.Unlock()

	p.state.Data.RLock()
	tracks := p.state.Data.SearchResults[query].Tracks
	p.state.Data.RUnlock()
	return p.handleTrackWindow(seq, "search", tracks, playURIs)
}

// handleTrackWindow applies the commands shared by every track list window.
// A nil play disables playback from the window.
func (p *Pipeline) handleTrackWindow(seq key.Sequence, scope string, tracks []state.Track, play playFunc) (bool, error) {
	ui := p.state.UI
	ui.RLock()
	window := ui.Window
	ui.RUnlock()

	if window.Filtering && len(seq) == 1 && p.editFilter(seq[0]) {
		return true, nil
	}

	cmd, ok := p.state.Keymap.Command(seq)
	if !ok {
		return false, nil
	}
	visible := window.VisibleTracks(tracks)
	selected := window.List.Selected
	hasSelection := selected >= 0 && selected < len(visible)

	var err error
	switch cmd {
	case command.SelectNext, command.SelectPrevious, command.SelectFirst, command.SelectLast:
		p.withUI(func(ui *state.UIState) {
			moveSelection(&ui.Window.List, cmd, len(visible))
		})
	case command.ChooseSelected:
		if play == nil || !hasSelection {
			break
		}
		err = p.submitPlayer(play(visible, selected))
	case command.PlayRandom:
		if play == nil || len(tracks) == 0 {
			break
		}
		err = p.submitPlayer(play(tracks, p.intn(len(tracks))))
	case command.SearchContext:
		p.withUI(func(ui *state.UIState) {
			ui.Window = state.WindowState{Filtering: true}
		})
	case command.ShowActionsOnSelectedItem:
		if !hasSelection {
			break
		}
		track := visible[selected]
		item := state.Item{Track: &track}
		p.openPopup(&state.ActionListPopup{Item: item, Actions: state.ActionsFor(item)})
	case command.BrowseSelectedItem:
		if !hasSelection || visible[selected].Album == nil {
			break
		}
		err = p.browseContext(state.ContextID{Kind: state.ContextAlbum, ID: visible[selected].Album.ID})
	default:
		return false, nil
	}
	events.Command.Run(cmd.String(), scope)
	return true, err
}

// editFilter applies k to the window filter. Enter and navigation keys are
// left to the keymap.
func (p *Pipeline) editFilter(k key.Key) bool {
	handled := true
	p.withUI(func(ui *state.UIState) {
		w := &ui.Window
		switch {
		case k == keyEsc:
			*w = state.WindowState{}
		case k == keyBackspace:
			if w.Filter == "" {
				w.Filtering = false
				return
			}
			runes := []rune(w.Filter)
			w.Filter = string(runes[:len(runes)-1])
			w.List.Selected = 0
		case k.IsPrintable():
			w.Filter += k.Char()
			w.List.Selected = 0
		default:
			handled = false
		}
	})
	return handled
}

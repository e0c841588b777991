package state

import (
	"sync"

	"github.com/atomicstack/playctl/internal/key"
	"github.com/atomicstack/playctl/internal/theme"
)

// Rect is a screen rectangle in cells, published by the renderer for
// hit-testing.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

type PageKind int

const (
	PageRecommendations PageKind = iota
	PageBrowsing
	PageCurrentPlaying
	PageSearching
)

// Page is a navigable top-level view. Pages form the history stack.
type Page interface {
	Kind() PageKind
}

type RecommendationsPage struct {
	Seed SeedItem
}

type BrowsingPage struct {
	Context ContextID
}

type CurrentPlayingPage struct{}

type SearchingPage struct {
	Input        string
	CurrentQuery string
}

func (*RecommendationsPage) Kind() PageKind { return PageRecommendations }
func (*BrowsingPage) Kind() PageKind        { return PageBrowsing }
func (*CurrentPlayingPage) Kind() PageKind  { return PageCurrentPlaying }
func (*SearchingPage) Kind() PageKind       { return PageSearching }

// ListState tracks the selected row of a list.
type ListState struct {
	Selected int
}

// Next moves the selection down within n items.
func (l *ListState) Next(n int) bool {
	if l.Selected+1 >= n {
		return false
	}
	l.Selected++
	return true
}

// Previous moves the selection up.
func (l *ListState) Previous() bool {
	if l.Selected <= 0 {
		return false
	}
	l.Selected--
	return true
}

// Clamp keeps the selection inside a list of n items.
func (l *ListState) Clamp(n int) {
	if l.Selected >= n {
		l.Selected = n - 1
	}
	if l.Selected < 0 {
		l.Selected = 0
	}
}

// Action is an entry of the action list popup.
type Action int

const (
	ActionBrowseAlbum Action = iota
	ActionBrowseArtist
	ActionAddToPlaylist
	ActionSaveToLibrary
	ActionBrowseRecommendations
)

func (a Action) String() string {
	switch a {
	case ActionBrowseAlbum:
		return "Browse album"
	case ActionBrowseArtist:
		return "Browse artist"
	case ActionAddToPlaylist:
		return "Add to playlist"
	case ActionSaveToLibrary:
		return "Save to library"
	case ActionBrowseRecommendations:
		return "Browse recommendations"
	}
	return "Unknown action"
}

// ActionsFor lists the actions offered for item.
func ActionsFor(item Item) []Action {
	switch {
	case item.Track != nil:
		actions := make([]Action, 0, 5)
		if item.Track.Album != nil {
			actions = append(actions, ActionBrowseAlbum)
		}
		if len(item.Track.Artists) > 0 {
			actions = append(actions, ActionBrowseArtist)
		}
		return append(actions, ActionAddToPlaylist, ActionSaveToLibrary, ActionBrowseRecommendations)
	case item.Album != nil:
		if len(item.Album.Artists) > 0 {
			return []Action{ActionBrowseArtist, ActionSaveToLibrary}
		}
		return []Action{ActionSaveToLibrary}
	case item.Artist != nil:
		return []Action{ActionSaveToLibrary, ActionBrowseRecommendations}
	case item.Playlist != nil:
		return []Action{ActionSaveToLibrary}
	}
	return nil
}

// Popup is a transient overlay. At most one is active at a time.
type Popup interface {
	popup()
}

type CommandHelpPopup struct {
	Offset int
}

type ActionListPopup struct {
	Item    Item
	Actions []Action
	List    ListState
}

// PlaylistAction says what choosing a playlist in the playlist popup does.
// A nil AddTrack browses the playlist.
type PlaylistAction struct {
	AddTrack *Track
}

// UserPlaylistListPopup lists Playlists, or the user's cached playlists
// when Playlists is nil.
type UserPlaylistListPopup struct {
	Action    PlaylistAction
	Playlists []Playlist
	List      ListState
}

type UserFollowedArtistListPopup struct {
	List ListState
}

type UserSavedAlbumListPopup struct {
	List ListState
}

type DeviceListPopup struct {
	List ListState
}

// ThemeListPopup lists themes with the theme active when it opened first.
type ThemeListPopup struct {
	Themes []theme.Theme
	List   ListState
}

func (*CommandHelpPopup) popup()            {}
func (*ActionListPopup) popup()             {}
func (*UserPlaylistListPopup) popup()       {}
func (*UserFollowedArtistListPopup) popup() {}
func (*UserSavedAlbumListPopup) popup()     {}
func (*DeviceListPopup) popup()             {}
func (*ThemeListPopup) popup()              {}

// WindowState is the selection/filter state of the current page's window.
type WindowState struct {
	List      ListState
	Filter    string
	Filtering bool
}

// UIState is everything the renderer draws that is not service data.
// Callers take the embedded lock; the helper methods assume it is held.
type UIState struct {
	sync.RWMutex

	IsRunning        bool
	Theme            theme.Theme
	InputKeySequence key.Sequence
	History          []Page
	Popup            Popup
	Window           WindowState
	ProgressBarRect  Rect
}

// CurrentPage returns the top of the history stack.
func (u *UIState) CurrentPage() Page {
	return u.History[len(u.History)-1]
}

// CreateNewPage pushes page, closing any popup and resetting the window.
func (u *UIState) CreateNewPage(page Page) {
	u.History = append(u.History, page)
	u.Popup = nil
	u.Window = WindowState{}
}

// PopPage drops the current page unless it is the base page.
func (u *UIState) PopPage() bool {
	if len(u.History) <= 1 {
		return false
	}
	u.History[len(u.History)-1] = nil
	u.History = u.History[:len(u.History)-1]
	u.Popup = nil
	u.Window = WindowState{}
	return true
}

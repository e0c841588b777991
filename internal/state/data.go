package state

import "sync"

// UserData caches the current user's library.
type UserData struct {
	UserID          string
	DisplayName     string
	Playlists       []Playlist
	SavedAlbums     []Album
	FollowedArtists []Artist
}

// DataState caches results of fetch requests. Entries are written by the
// remote client when a request completes.
type DataState struct {
	sync.RWMutex

	UserData        UserData
	Contexts        map[string]*Context
	Recommendations map[string][]Track
	SearchResults   map[string]SearchResults
}

func newDataState() *DataState {
	return &DataState{
		Contexts:        make(map[string]*Context),
		Recommendations: make(map[string][]Track),
		SearchResults:   make(map[string]SearchResults),
	}
}

// Context returns the cached context for id, if fetched.
func (d *DataState) Context(id ContextID) (*Context, bool) {
	c, ok := d.Contexts[id.URI()]
	return c, ok
}

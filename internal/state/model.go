package state

import (
	"fmt"
	"strings"
	"time"
)

// ContextKind identifies what a playback context refers to.
type ContextKind int

const (
	ContextPlaylist ContextKind = iota
	ContextAlbum
	ContextArtist
)

func (k ContextKind) String() string {
	switch k {
	case ContextAlbum:
		return "album"
	case ContextArtist:
		return "artist"
	default:
		return "playlist"
	}
}

// ContextID names a playlist, album or artist on the remote service.
type ContextID struct {
	Kind ContextKind
	ID   string
}

// URI returns the service URI, e.g. "spotify:album:4aawyAB9vmqN3uQ7FjRGTy".
func (c ContextID) URI() string {
	return fmt.Sprintf("spotify:%s:%s", c.Kind, c.ID)
}

// ParseContextURI is the inverse of ContextID.URI.
func ParseContextURI(uri string) (ContextID, bool) {
	parts := strings.Split(uri, ":")
	if len(parts) != 3 || parts[0] != "spotify" || parts[2] == "" {
		return ContextID{}, false
	}
	switch parts[1] {
	case "playlist":
		return ContextID{Kind: ContextPlaylist, ID: parts[2]}, true
	case "album":
		return ContextID{Kind: ContextAlbum, ID: parts[2]}, true
	case "artist":
		return ContextID{Kind: ContextArtist, ID: parts[2]}, true
	}
	return ContextID{}, false
}

type Artist struct {
	ID   string
	Name string
}

type Album struct {
	ID      string
	Name    string
	Artists []Artist
}

type Playlist struct {
	ID    string
	Name  string
	Owner string
}

type Track struct {
	ID       string
	Name     string
	Artists  []Artist
	Album    *Album
	Duration time.Duration
}

// URI returns the track's service URI.
func (t Track) URI() string {
	return "spotify:track:" + t.ID
}

// ArtistNames joins the track's artist names for display.
func (t Track) ArtistNames() string {
	names := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

// Label is the text used for display and fuzzy filtering.
func (t Track) Label() string {
	if len(t.Artists) == 0 {
		return t.Name
	}
	return t.Name + " - " + t.ArtistNames()
}

type Device struct {
	ID            string
	Name          string
	Type          string
	IsActive      bool
	VolumePercent *int
}

type RepeatState string

const (
	RepeatOff     RepeatState = "off"
	RepeatTrack   RepeatState = "track"
	RepeatContext RepeatState = "context"
)

// Next cycles off -> context -> track -> off.
func (r RepeatState) Next() RepeatState {
	switch r {
	case RepeatContext:
		return RepeatTrack
	case RepeatTrack:
		return RepeatOff
	default:
		return RepeatContext
	}
}

// Playback is the last known playback snapshot reported by the service.
type Playback struct {
	Device       Device
	Item         *Track
	Progress     time.Duration
	IsPlaying    bool
	ShuffleState bool
	RepeatState  RepeatState
	Context      *ContextID
}

// Context is a fetched playlist, album or artist with its tracks.
type Context struct {
	ID     ContextID
	Name   string
	Tracks []Track
}

type SeedKind int

const (
	SeedTrack SeedKind = iota
	SeedArtist
)

// SeedItem is the starting point of a recommendation request.
type SeedItem struct {
	Kind SeedKind
	ID   string
	Name string
}

// Key identifies the seed in the recommendation cache.
func (s SeedItem) Key() string {
	if s.Kind == SeedArtist {
		return "artist:" + s.ID
	}
	return "track:" + s.ID
}

// Item is exactly one of a track, album, artist or playlist.
type Item struct {
	Track    *Track
	Album    *Album
	Artist   *Artist
	Playlist *Playlist
}

// Name returns the display name of whichever value is set.
func (i Item) Name() string {
	switch {
	case i.Track != nil:
		return i.Track.Name
	case i.Album != nil:
		return i.Album.Name
	case i.Artist != nil:
		return i.Artist.Name
	case i.Playlist != nil:
		return i.Playlist.Name
	}
	return ""
}

type SearchResults struct {
	Tracks []Track
}

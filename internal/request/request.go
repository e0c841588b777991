package request

import (
	"fmt"
	"time"

	"github.com/atomicstack/playctl/internal/state"
)

// ClientRequest describes one action to perform against the remote service.
// Requests are values: ownership passes from the producer to the dispatcher
// queue and then to the goroutine executing it.
type ClientRequest interface {
	Name() string
	isClientRequest()
}

// PlayerRequest is the subset of requests that change playback.
type PlayerRequest interface {
	Name() string
	isPlayerRequest()
}

type (
	GetCurrentUser         struct{}
	GetDevices             struct{}
	GetUserPlaylists       struct{}
	GetUserSavedAlbums     struct{}
	GetUserFollowedArtists struct{}
	GetCurrentPlayback     struct{}
	GetContext             struct{ Context state.ContextID }
	GetRecommendations     struct{ Seed state.SeedItem }
	Search                 struct{ Query string }
	AddTrackToPlaylist     struct{ PlaylistID, TrackID string }
	SaveToLibrary          struct{ Item state.Item }
	// Player wraps a PlayerRequest.
	Player struct{ Request PlayerRequest }
)

type (
	NextTrack     struct{}
	PreviousTrack struct{}
	ResumePause   struct{}
	Repeat        struct{}
	Shuffle       struct{}
	SeekTrack     struct{ Position time.Duration }
	Volume        struct{ Percent uint8 }
	// TransferPlayback moves playback to a device. ForcePlay false only
	// connects the device without starting playback.
	TransferPlayback struct {
		DeviceID  string
		ForcePlay bool
	}
	// StartPlayback plays either a context (optionally from OffsetURI) or an
	// explicit list of track URIs starting at OffsetIndex.
	StartPlayback struct {
		Context     *state.ContextID
		OffsetURI   string
		URIs        []string
		OffsetIndex int
	}
)

func (GetCurrentUser) Name() string         { return "GetCurrentUser" }
func (GetDevices) Name() string             { return "GetDevices" }
func (GetUserPlaylists) Name() string       { return "GetUserPlaylists" }
func (GetUserSavedAlbums) Name() string     { return "GetUserSavedAlbums" }
func (GetUserFollowedArtists) Name() string { return "GetUserFollowedArtists" }
func (GetCurrentPlayback) Name() string     { return "GetCurrentPlayback" }
func (GetContext) Name() string             { return "GetContext" }
func (GetRecommendations) Name() string     { return "GetRecommendations" }
func (Search) Name() string                 { return "Search" }
func (AddTrackToPlaylist) Name() string     { return "AddTrackToPlaylist" }
func (SaveToLibrary) Name() string          { return "SaveToLibrary" }
func (p Player) Name() string {
	if p.Request == nil {
		return "Player"
	}
	return "Player." + p.Request.Name()
}

func (GetCurrentUser) isClientRequest()         {}
func (GetDevices) isClientRequest()             {}
func (GetUserPlaylists) isClientRequest()       {}
func (GetUserSavedAlbums) isClientRequest()     {}
func (GetUserFollowedArtists) isClientRequest() {}
func (GetCurrentPlayback) isClientRequest()     {}
func (GetContext) isClientRequest()             {}
func (GetRecommendations) isClientRequest()     {}
func (Search) isClientRequest()                 {}
func (AddTrackToPlaylist) isClientRequest()     {}
func (SaveToLibrary) isClientRequest()          {}
func (Player) isClientRequest()                 {}

func (NextTrack) Name() string        { return "NextTrack" }
func (PreviousTrack) Name() string    { return "PreviousTrack" }
func (ResumePause) Name() string      { return "ResumePause" }
func (Repeat) Name() string           { return "Repeat" }
func (Shuffle) Name() string          { return "Shuffle" }
func (SeekTrack) Name() string        { return "SeekTrack" }
func (Volume) Name() string           { return "Volume" }
func (TransferPlayback) Name() string { return "TransferPlayback" }
func (StartPlayback) Name() string    { return "StartPlayback" }

func (NextTrack) isPlayerRequest()        {}
func (PreviousTrack) isPlayerRequest()    {}
func (ResumePause) isPlayerRequest()      {}
func (Repeat) isPlayerRequest()           {}
func (Shuffle) isPlayerRequest()          {}
func (SeekTrack) isPlayerRequest()        {}
func (Volume) isPlayerRequest()           {}
func (TransferPlayback) isPlayerRequest() {}
func (StartPlayback) isPlayerRequest()    {}

// NewPlayer wraps a player request.
func NewPlayer(r PlayerRequest) ClientRequest {
	return Player{Request: r}
}

// ResourceKey names the cached resource a request writes, so that two
// requests refreshing the same cache entry do not interleave. Requests
// that only change remote playback return "".
func ResourceKey(r ClientRequest) string {
	switch r := r.(type) {
	case GetCurrentUser:
		return "user"
	case GetDevices:
		return "devices"
	case GetUserPlaylists:
		return "user.playlists"
	case GetUserSavedAlbums:
		return "user.albums"
	case GetUserFollowedArtists:
		return "user.artists"
	case GetCurrentPlayback:
		return "playback"
	case GetContext:
		return "context:" + r.Context.URI()
	case GetRecommendations:
		return "recommendations:" + r.Seed.Key()
	case Search:
		return "search:" + r.Query
	}
	return ""
}

// Describe renders a request with its arguments for logs.
func Describe(r ClientRequest) string {
	switch r := r.(type) {
	case GetContext:
		return fmt.Sprintf("%s(%s)", r.Name(), r.Context.URI())
	case GetRecommendations:
		return fmt.Sprintf("%s(%s)", r.Name(), r.Seed.Key())
	case Search:
		return fmt.Sprintf("%s(%q)", r.Name(), r.Query)
	case AddTrackToPlaylist:
		return fmt.Sprintf("%s(%s, %s)", r.Name(), r.PlaylistID, r.TrackID)
	case SaveToLibrary:
		return fmt.Sprintf("%s(%s)", r.Name(), r.Item.Name())
	case Player:
		switch p := r.Request.(type) {
		case SeekTrack:
			return fmt.Sprintf("%s(%d)", r.Name(), p.Position.Milliseconds())
		case Volume:
			return fmt.Sprintf("%s(%d)", r.Name(), p.Percent)
		case TransferPlayback:
			return fmt.Sprintf("%s(%s, %t)", r.Name(), p.DeviceID, p.ForcePlay)
		}
	}
	if r == nil {
		return "<nil>"
	}
	return r.Name()
}

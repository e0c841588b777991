package spotify

import (
	"time"

	"github.com/atomicstack/playctl/internal/state"
)

type apiUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type apiArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type apiAlbum struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Artists []apiArtist `json:"artists"`
	Tracks  struct {
		Items []apiTrack `json:"items"`
	} `json:"tracks"`
}

type apiTrack struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	DurationMS int64       `json:"duration_ms"`
	Artists    []apiArtist `json:"artists"`
	Album      *apiAlbum   `json:"album"`
}

type apiPlaylist struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Owner apiUser `json:"owner"`
}

type apiPlaylistDetail struct {
	apiPlaylist
	Tracks struct {
		Items []struct {
			Track *apiTrack `json:"track"`
		} `json:"items"`
	} `json:"tracks"`
}

type apiDevice struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	IsActive      bool   `json:"is_active"`
	VolumePercent *int   `json:"volume_percent"`
}

type apiContext struct {
	URI string `json:"uri"`
}

type apiPlayback struct {
	Device       apiDevice   `json:"device"`
	Item         *apiTrack   `json:"item"`
	ProgressMS   int64       `json:"progress_ms"`
	IsPlaying    bool        `json:"is_playing"`
	ShuffleState bool        `json:"shuffle_state"`
	RepeatState  string      `json:"repeat_state"`
	Context      *apiContext `json:"context"`
}

type page[T any] struct {
	Items []T     `json:"items"`
	Next  *string `json:"next"`
}

func (a apiArtist) toState() state.Artist {
	return state.Artist{ID: a.ID, Name: a.Name}
}

func artists(in []apiArtist) []state.Artist {
	out := make([]state.Artist, 0, len(in))
	for _, a := range in {
		out = append(out, a.toState())
	}
	return out
}

func (a apiAlbum) toState() state.Album {
	return state.Album{ID: a.ID, Name: a.Name, Artists: artists(a.Artists)}
}

func (t apiTrack) toState() state.Track {
	track := state.Track{
		ID:       t.ID,
		Name:     t.Name,
		Artists:  artists(t.Artists),
		Duration: time.Duration(t.DurationMS) * time.Millisecond,
	}
	if t.Album != nil {
		album := t.Album.toState()
		track.Album = &album
	}
	return track
}

// tracks converts tracks, skipping local files and removed entries that
// have no id.
func tracks(in []apiTrack) []state.Track {
	out := make([]state.Track, 0, len(in))
	for _, t := range in {
		if t.ID == "" {
			continue
		}
		out = append(out, t.toState())
	}
	return out
}

func (p apiPlaylist) toState() state.Playlist {
	owner := p.Owner.DisplayName
	if owner == "" {
		owner = p.Owner.ID
	}
	return state.Playlist{ID: p.ID, Name: p.Name, Owner: owner}
}

func (d apiDevice) toState() state.Device {
	return state.Device{
		ID:            d.ID,
		Name:          d.Name,
		Type:          d.Type,
		IsActive:      d.IsActive,
		VolumePercent: d.VolumePercent,
	}
}

func (p apiPlayback) toState() *state.Playback {
	pb := &state.Playback{
		Device:       p.Device.toState(),
		Progress:     time.Duration(p.ProgressMS) * time.Millisecond,
		IsPlaying:    p.IsPlaying,
		ShuffleState: p.ShuffleState,
		RepeatState:  state.RepeatState(p.RepeatState),
	}
	if pb.RepeatState == "" {
		pb.RepeatState = state.RepeatOff
	}
	if p.Item != nil && p.Item.ID != "" {
		track := p.Item.toState()
		pb.Item = &track
	}
	if p.Context != nil {
		if id, ok := state.ParseContextURI(p.Context.URI); ok {
			pb.Context = &id
		}
	}
	return pb
}

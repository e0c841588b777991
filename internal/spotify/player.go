package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/atomicstack/playctl/internal/request"
	"github.com/atomicstack/playctl/internal/state"
)

type transferPayload struct {
	DeviceIDs []string `json:"device_ids"`
	Play      bool     `json:"play"`
}

type playOffset struct {
	URI      string `json:"uri,omitempty"`
	Position *int   `json:"position,omitempty"`
}

type playPayload struct {
	ContextURI string      `json:"context_uri,omitempty"`
	URIs       []string    `json:"uris,omitempty"`
	Offset     *playOffset `json:"offset,omitempty"`
}

// handlePlayer sends a playback control call. Toggles read the last known
// playback to decide the new value.
func (c *Client) handlePlayer(ctx context.Context, s *state.Shared, r request.PlayerRequest) error {
	switch r := r.(type) {
	case request.NextTrack:
		return c.send(ctx, http.MethodPost, "/me/player/next", nil, nil)
	case request.PreviousTrack:
		return c.send(ctx, http.MethodPost, "/me/player/previous", nil, nil)
	case request.ResumePause:
		pb, err := lastPlayback(s)
		if err != nil {
			return err
		}
		if pb.IsPlaying {
			return c.send(ctx, http.MethodPut, "/me/player/pause", nil, nil)
		}
		return c.send(ctx, http.MethodPut, "/me/player/play", nil, nil)
	case request.Repeat:
		pb, err := lastPlayback(s)
		if err != nil {
			return err
		}
		q := url.Values{"state": {string(pb.RepeatState.Next())}}
		return c.send(ctx, http.MethodPut, "/me/player/repeat", q, nil)
	case request.Shuffle:
		pb, err := lastPlayback(s)
		if err != nil {
			return err
		}
		q := url.Values{"state": {strconv.FormatBool(!pb.ShuffleState)}}
		return c.send(ctx, http.MethodPut, "/me/player/shuffle", q, nil)
	case request.SeekTrack:
		q := url.Values{"position_ms": {strconv.FormatInt(r.Position.Milliseconds(), 10)}}
		return c.send(ctx, http.MethodPut, "/me/player/seek", q, nil)
	case request.Volume:
		q := url.Values{"volume_percent": {strconv.Itoa(int(r.Percent))}}
		return c.send(ctx, http.MethodPut, "/me/player/volume", q, nil)
	case request.TransferPlayback:
		payload := transferPayload{DeviceIDs: []string{r.DeviceID}, Play: r.ForcePlay}
		return c.send(ctx, http.MethodPut, "/me/player", nil, payload)
	case request.StartPlayback:
		return c.send(ctx, http.MethodPut, "/me/player/play", nil, startPayload(r))
	}
	if r == nil {
		return fmt.Errorf("spotify: nil player request")
	}
	return fmt.Errorf("spotify: unsupported player request %s", r.Name())
}

func startPayload(r request.StartPlayback) playPayload {
	if r.Context != nil {
		p := playPayload{ContextURI: r.Context.URI()}
		if r.OffsetURI != "" {
			p.Offset = &playOffset{URI: r.OffsetURI}
		}
		return p
	}
	pos := r.OffsetIndex
	return playPayload{URIs: r.URIs, Offset: &playOffset{Position: &pos}}
}

func lastPlayback(s *state.Shared) (state.Playback, error) {
	s.Player.RLock()
	defer s.Player.RUnlock()
	if s.Player.Playback == nil {
		return state.Playback{}, ErrNoPlayback
	}
	return *s.Player.Playback, nil
}

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

// maxPages bounds library pagination.
const maxPages = 20

// HandleRequest executes req and applies the result to s. Results replace
// whole cache entries so readers may keep slices after unlocking.
func (c *Client) HandleRequest(ctx context.Context, s *state.Shared, req request.ClientRequest) error {
	switch r := req.(type) {
	case request.GetCurrentUser:
		return c.fetchUser(ctx, s)
	case request.GetDevices:
		return c.fetchDevices(ctx, s)
	case request.GetUserPlaylists:
		return c.fetchPlaylists(ctx, s)
	case request.GetUserSavedAlbums:
		return c.fetchSavedAlbums(ctx, s)
	case request.GetUserFollowedArtists:
		return c.fetchFollowedArtists(ctx, s)
	case request.GetCurrentPlayback:
		return c.fetchPlayback(ctx, s)
	case request.GetContext:
		return c.fetchContext(ctx, s, r.Context)
	case request.GetRecommendations:
		return c.fetchRecommendations(ctx, s, r.Seed)
	case request.Search:
		return c.search(ctx, s, r.Query)
	case request.AddTrackToPlaylist:
		return c.addTrackToPlaylist(ctx, s, r.PlaylistID, r.TrackID)
	case request.SaveToLibrary:
		return c.saveToLibrary(ctx, s, r.Item)
	case request.Player:
		if err := c.handlePlayer(ctx, s, r.Request); err != nil {
			return err
		}
		return c.fetchPlayback(ctx, s)
	}
	if req == nil {
		return fmt.Errorf("spotify: nil request")
	}
	return fmt.Errorf("spotify: unsupported request %s", req.Name())
}

func (c *Client) fetchUser(ctx context.Context, s *state.Shared) error {
	var user apiUser
	if _, err := c.get(ctx, "/me", nil, &user); err != nil {
		return err
	}
	s.Data.Lock()
	s.Data.UserData.UserID = user.ID
	s.Data.UserData.DisplayName = user.DisplayName
	s.Data.Unlock()
	return nil
}

func (c *Client) fetchDevices(ctx context.Context, s *state.Shared) error {
	var resp struct {
		Devices []apiDevice `json:"devices"`
	}
	if _, err := c.get(ctx, "/me/player/devices", nil, &resp); err != nil {
		return err
	}
	devices := make([]state.Device, 0, len(resp.Devices))
	for _, d := range resp.Devices {
		if d.ID == "" {
			continue
		}
		devices = append(devices, d.toState())
	}
	s.Player.Lock()
	s.Player.Devices = devices
	s.Player.Unlock()
	return nil
}

func (c *Client) fetchPlayback(ctx context.Context, s *state.Shared) error {
	var resp apiPlayback
	ok, err := c.get(ctx, "/me/player", nil, &resp)
	if err != nil {
		return err
	}
	var pb *state.Playback
	if ok {
		pb = resp.toState()
	}
	s.Player.Lock()
	s.Player.SetPlayback(pb, c.now())
	s.Player.Unlock()
	return nil
}

// getPages follows offset pagination of path until the last page.
func getPages[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	var out []T
	for i := 0; i < maxPages; i++ {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		q.Set("limit", strconv.Itoa(pageLimit))
		q.Set("offset", strconv.Itoa(i*pageLimit))
		var p page[T]
		if _, err := c.get(ctx, path, q, &p); err != nil {
			return nil, err
		}
		out = append(out, p.Items...)
		if p.Next == nil || len(p.Items) == 0 {
			break
		}
	}
	return out, nil
}

func (c *Client) fetchPlaylists(ctx context.Context, s *state.Shared) error {
	items, err := getPages[apiPlaylist](ctx, c, "/me/playlists", nil)
	if err != nil {
		return err
	}
	playlists := make([]state.Playlist, 0, len(items))
	for _, p := range items {
		playlists = append(playlists, p.toState())
	}
	s.Data.Lock()
	s.Data.UserData.Playlists = playlists
	s.Data.Unlock()
	return nil
}

func (c *Client) fetchSavedAlbums(ctx context.Context, s *state.Shared) error {
	type savedAlbum struct {
		Album apiAlbum `json:"album"`
	}
	items, err := getPages[savedAlbum](ctx, c, "/me/albums", nil)
	if err != nil {
		return err
	}
	albums := make([]state.Album, 0, len(items))
	for _, item := range items {
		albums = append(albums, item.Album.toState())
	}
	s.Data.Lock()
	s.Data.UserData.SavedAlbums = albums
	s.Data.Unlock()
	return nil
}

// fetchFollowedArtists follows the cursor pagination of the following
// endpoint.
func (c *Client) fetchFollowedArtists(ctx context.Context, s *state.Shared) error {
	var out []state.Artist
	after := ""
	for i := 0; i < maxPages; i++ {
		q := url.Values{"type": {"artist"}, "limit": {strconv.Itoa(pageLimit)}}
		if after != "" {
			q.Set("after", after)
		}
		var resp struct {
			Artists struct {
				Items   []apiArtist `json:"items"`
				Cursors struct {
					After string `json:"after"`
				} `json:"cursors"`
			} `json:"artists"`
		}
		if _, err := c.get(ctx, "/me/following", q, &resp); err != nil {
			return err
		}
		out = append(out, artists(resp.Artists.Items)...)
		after = resp.Artists.Cursors.After
		if after == "" || len(resp.Artists.Items) == 0 {
			break
		}
	}
	s.Data.Lock()
	s.Data.UserData.FollowedArtists = out
	s.Data.Unlock()
	return nil
}

func (c *Client) fetchContext(ctx context.Context, s *state.Shared, id state.ContextID) error {
	var (
		result *state.Context
		err    error
	)
	switch id.Kind {
	case state.ContextPlaylist:
		result, err = c.playlistContext(ctx, id)
	case state.ContextAlbum:
		result, err = c.albumContext(ctx, id)
	case state.ContextArtist:
		result, err = c.artistContext(ctx, id)
	default:
		err = fmt.Errorf("spotify: unknown context kind %v", id.Kind)
	}
	if err != nil {
		return fmt.Errorf("fetch %s: %w", id.URI(), err)
	}
	s.Data.Lock()
	s.Data.Contexts[id.URI()] = result
	s.Data.Unlock()
	return nil
}

func (c *Client) playlistContext(ctx context.Context, id state.ContextID) (*state.Context, error) {
	var resp apiPlaylistDetail
	if _, err := c.get(ctx, "/playlists/"+url.PathEscape(id.ID), nil, &resp); err != nil {
		return nil, err
	}
	items := make([]apiTrack, 0, len(resp.Tracks.Items))
	for _, item := range resp.Tracks.Items {
		if item.Track != nil {
			items = append(items, *item.Track)
		}
	}
	return &state.Context{ID: id, Name: resp.Name, Tracks: tracks(items)}, nil
}

func (c *Client) albumContext(ctx context.Context, id state.ContextID) (*state.Context, error) {
	var resp apiAlbum
	if _, err := c.get(ctx, "/albums/"+url.PathEscape(id.ID), nil, &resp); err != nil {
		return nil, err
	}
	album := resp.toState()
	list := tracks(resp.Tracks.Items)
	for i := range list {
		if list[i].Album == nil {
			list[i].Album = &album
		}
	}
	return &state.Context{ID: id, Name: resp.Name, Tracks: list}, nil
}

func (c *Client) artistContext(ctx context.Context, id state.ContextID) (*state.Context, error) {
	var artist apiArtist
	if _, err := c.get(ctx, "/artists/"+url.PathEscape(id.ID), nil, &artist); err != nil {
		return nil, err
	}
	var top struct {
		Tracks []apiTrack `json:"tracks"`
	}
	q := url.Values{"market": {c.market}}
	if _, err := c.get(ctx, "/artists/"+url.PathEscape(id.ID)+"/top-tracks", q, &top); err != nil {
		return nil, err
	}
	return &state.Context{ID: id, Name: artist.Name, Tracks: tracks(top.Tracks)}, nil
}

func (c *Client) fetchRecommendations(ctx context.Context, s *state.Shared, seed state.SeedItem) error {
	q := url.Values{"limit": {strconv.Itoa(pageLimit)}}
	if seed.Kind == state.SeedArtist {
		q.Set("seed_artists", seed.ID)
	} else {
		q.Set("seed_tracks", seed.ID)
	}
	var resp struct {
		Tracks []apiTrack `json:"tracks"`
	}
	if _, err := c.get(ctx, "/recommendations", q, &resp); err != nil {
		return err
	}
	s.Data.Lock()
	s.Data.Recommendations[seed.Key()] = tracks(resp.Tracks)
	s.Data.Unlock()
	return nil
}

func (c *Client) search(ctx context.Context, s *state.Shared, query string) error {
	q := url.Values{
		"q":      {query},
		"type":   {"track"},
		"limit":  {strconv.Itoa(pageLimit)},
		"market": {c.market},
	}
	var resp struct {
		Tracks page[apiTrack] `json:"tracks"`
	}
	if _, err := c.get(ctx, "/search", q, &resp); err != nil {
		return err
	}
	s.Data.Lock()
	s.Data.SearchResults[query] = state.SearchResults{Tracks: tracks(resp.Tracks.Items)}
	s.Data.Unlock()
	return nil
}

func (c *Client) addTrackToPlaylist(ctx context.Context, s *state.Shared, playlistID, trackID string) error {
	payload := map[string][]string{"uris": {state.Track{ID: trackID}.URI()}}
	if err := c.send(ctx, http.MethodPost, "/playlists/"+url.PathEscape(playlistID)+"/tracks", nil, payload); err != nil {
		return err
	}
	id := state.ContextID{Kind: state.ContextPlaylist, ID: playlistID}
	s.Data.RLock()
	_, cached := s.Data.Context(id)
	s.Data.RUnlock()
	if !cached {
		return nil
	}
	return c.fetchContext(ctx, s, id)
}

func (c *Client) saveToLibrary(ctx context.Context, s *state.Shared, item state.Item) error {
	switch {
	case item.Track != nil:
		return c.send(ctx, http.MethodPut, "/me/tracks", url.Values{"ids": {item.Track.ID}}, nil)
	case item.Album != nil:
		if err := c.send(ctx, http.MethodPut, "/me/albums", url.Values{"ids": {item.Album.ID}}, nil); err != nil {
			return err
		}
		return c.fetchSavedAlbums(ctx, s)
	case item.Artist != nil:
		if err := c.send(ctx, http.MethodPut, "/me/following", url.Values{"type": {"artist"}, "ids": {item.Artist.ID}}, nil); err != nil {
			return err
		}
		return c.fetchFollowedArtists(ctx, s)
	case item.Playlist != nil:
		if err := c.send(ctx, http.MethodPut, "/playlists/"+url.PathEscape(item.Playlist.ID)+"/followers", nil, nil); err != nil {
			return err
		}
		return c.fetchPlaylists(ctx, s)
	}
	return fmt.Errorf("spotify: nothing to save")
}

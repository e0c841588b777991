package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	// DefaultBaseURL is the Spotify Web API root.
	DefaultBaseURL = "https://api.spotify.com/v1"
	// DefaultSpacing is the minimum gap between two API calls.
	DefaultSpacing = 100 * time.Millisecond

	pageLimit = 50
)

// ErrNoPlayback is returned by player requests that need an active
// playback when the service reports none.
var ErrNoPlayback = errors.New("spotify: no active playback")

// APIError is a non-2xx response from the service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("spotify: HTTP %d", e.Status)
	}
	return fmt.Sprintf("spotify: HTTP %d: %s", e.Status, e.Message)
}

// Client talks to the Spotify Web API and implements the request handler
// used by the dispatcher.
type Client struct {
	baseURL  string
	http     *http.Client
	throttle *throttle
	market   string
	now      func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root (tests).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient replaces the transport. The caller is responsible for
// authentication.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithSpacing sets the minimum gap between API calls; zero disables it.
func WithSpacing(d time.Duration) Option {
	return func(c *Client) {
		c.throttle = newThrottle(d)
	}
}

// WithMarket sets the market used for artist top tracks and search.
func WithMarket(market string) Option {
	return func(c *Client) {
		c.market = market
	}
}

// WithClock overrides the clock used to stamp playback snapshots.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// New returns a client authenticating with a static bearer token.
func New(accessToken string, opts ...Option) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	c := &Client{
		baseURL:  DefaultBaseURL,
		http:     oauth2.NewClient(context.Background(), src),
		throttle: newThrottle(DefaultSpacing),
		market:   "from_token",
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get decodes the JSON body of a GET into out. It reports false when the
// service answered 204 No Content.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) (bool, error) {
	body, status, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return false, err
	}
	if status == http.StatusNoContent || len(body) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}

// send issues a write call with an optional JSON payload.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload interface{}) error {
	_, _, err := c.do(ctx, method, path, query, payload)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload interface{}) ([]byte, int, error) {
	if err := c.throttle.wait(ctx); err != nil {
		return nil, 0, err
	}

	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("encode %s: %w", path, err)
		}
		reader = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading %s: %w", path, err)
	}
	if resp.StatusCode >= 400 {
		return nil, resp.StatusCode, apiError(resp.StatusCode, body)
	}
	return body, resp.StatusCode, nil
}

func apiError(status int, body []byte) error {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	msg := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
		msg = payload.Error.Message
	}
	if len(msg) > 400 {
		msg = msg[:400]
	}
	return &APIError{Status: status, Message: msg}
}

// Package testutil holds helpers shared by package tests: golden files and
// a fake Web API server.
package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Call is one request received by a FakeWebAPI.
type Call struct {
	Method string
	Path   string
	Query  string
	Body   string
	Auth   string
}

// FakeWebAPI records every request and answers from routes keyed by
// "METHOD /path". Unrouted requests get 204 No Content, which is how the
// real API answers player commands.
type FakeWebAPI struct {
	URL string

	mu     sync.Mutex
	calls  []Call
	routes map[string]http.HandlerFunc
}

// NewFakeWebAPI starts a server that is closed when the test ends.
func NewFakeWebAPI(t *testing.T) *FakeWebAPI {
	t.Helper()
	api := &FakeWebAPI{routes: make(map[string]http.HandlerFunc)}
	srv := httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(srv.Close)
	api.URL = srv.URL
	return api
}

// Handle routes pattern ("GET /me") to fn.
func (a *FakeWebAPI) Handle(pattern string, fn http.HandlerFunc) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.routes[pattern] = fn
}

// JSON answers pattern with a fixed JSON body.
func (a *FakeWebAPI) JSON(pattern, body string) {
	a.Handle(pattern, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	})
}

// Calls returns a copy of the requests received so far.
func (a *FakeWebAPI) Calls() []Call {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Call(nil), a.calls...)
}

func (a *FakeWebAPI) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	a.mu.Lock()
	a.calls = append(a.calls, Call{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Body:   string(body),
		Auth:   r.Header.Get("Authorization"),
	})
	fn, ok := a.routes[r.Method+" "+r.URL.Path]
	a.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	fn(w, r)
}

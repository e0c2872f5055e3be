package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"

	"github.com/preston-bernstein/nba-stats-proxy/internal/providers"
)

// StubFetcher returns a canned body or error and records every request.
type StubFetcher struct {
	Body json.RawMessage
	Err  error

	mu       sync.Mutex
	requests []providers.Request
}

func (s *StubFetcher) Fetch(ctx context.Context, req providers.Request) (json.RawMessage, error) {
	_ = ctx
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()
	return s.Body, s.Err
}

// Requests returns a copy of the requests seen so far.
func (s *StubFetcher) Requests() []providers.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]providers.Request(nil), s.requests...)
}

// UpstreamCall is one request observed by an UpstreamServer.
type UpstreamCall struct {
	Path   string
	Query  url.Values
	Header http.Header
}

// UpstreamServer is an httptest server standing in for stats.nba.com and cdn.nba.com.
// Responses are chosen by path; unknown paths get 404.
type UpstreamServer struct {
	*httptest.Server

	mu        sync.Mutex
	calls     []UpstreamCall
	responses map[string]UpstreamResponse
}

// UpstreamResponse is the canned reply for one upstream path.
type UpstreamResponse struct {
	Status int
	Body   string
}

// NewUpstreamServer starts a fake upstream. Callers must Close it.
func NewUpstreamServer(responses map[string]UpstreamResponse) *UpstreamServer {
	u := &UpstreamServer{responses: responses}
	u.Server = httptest.NewServer(http.HandlerFunc(u.serve))
	return u
}

func (u *UpstreamServer) serve(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	u.calls = append(u.calls, UpstreamCall{Path: r.URL.Path, Query: r.URL.Query(), Header: r.Header.Clone()})
	resp, ok := u.responses[r.URL.Path]
	u.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(resp.Body))
}

// Calls returns a copy of the observed upstream requests.
func (u *UpstreamServer) Calls() []UpstreamCall {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]UpstreamCall(nil), u.calls...)
}

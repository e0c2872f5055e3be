package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/preston-bernstein/nba-stats-proxy/internal/http/handlers"
	"github.com/preston-bernstein/nba-stats-proxy/internal/providers/nbastats"
	"github.com/preston-bernstein/nba-stats-proxy/internal/testutil"
)

const (
	scoreboardBody = `{"scoreboard":{"gameDate":"2024-12-25","games":[{"gameId":"0022400406"}]}}`
	rosterBody     = `{"resultSets":[{"name":"CommonTeamRoster"}]}`
	playersBody    = `{"resultSets":[{"name":"CommonAllPlayers"}]}`
)

func newUpstream() *testutil.UpstreamServer {
	return testutil.NewUpstreamServer(map[string]testutil.UpstreamResponse{
		"/static/json/liveData/scoreboard/todaysScoreboard_00.json": {Body: scoreboardBody},
		"/stats/commonteamroster":                                   {Body: rosterBody},
		"/stats/commonallplayers":                                   {Body: playersBody},
	})
}

func newRouterFor(upstream *testutil.UpstreamServer) *http.ServeMux {
	cfg := nbastats.Config{StatsBaseURL: upstream.URL + "/stats", CDNBaseURL: upstream.URL}
	h := handlers.NewHandler(nbastats.NewClient(cfg), nbastats.NewEndpoints(cfg), nil, nil)
	return NewRouter(h)
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	upstream := newUpstream()
	defer upstream.Close()
	router := newRouterFor(upstream)

	cases := map[string]string{
		"/api/scoreboard":                     scoreboardBody,
		"/api/scoreboard?gameDate=2023-01-01": scoreboardBody,
		"/api/team/roster/1610612747":         rosterBody,
		"/api/players":                        playersBody,
	}

	for path, want := range cases {
		rr := testutil.Serve(router, http.MethodGet, path, nil)
		testutil.AssertStatus(t, rr, http.StatusOK)
		if rr.Body.String() != want {
			t.Fatalf("%s: expected upstream body verbatim, got %s", path, rr.Body.String())
		}
	}
}

func TestRouterRosterForwardsTeamIDAndHeaders(t *testing.T) {
	upstream := newUpstream()
	defer upstream.Close()
	router := newRouterFor(upstream)

	rr := testutil.Serve(router, http.MethodGet, "/api/team/roster/not-a-team", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	calls := upstream.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected exactly one upstream call, got %d", len(calls))
	}
	if got := calls[0].Query.Get("TeamID"); got != "not-a-team" {
		t.Fatalf("expected unvalidated team id forwarded, got %s", got)
	}
	if got := calls[0].Query.Get("Season"); got != "2024-25" {
		t.Fatalf("expected Season=2024-25, got %s", got)
	}
	if got := calls[0].Header.Get("x-nba-stats-token"); got != "true" {
		t.Fatalf("expected upstream auth header, got %q", got)
	}
	if got := calls[0].Header.Get("Referer"); got != "https://stats.nba.com/" {
		t.Fatalf("expected referer header, got %q", got)
	}
}

func TestRouterInformationalRoutesSkipUpstream(t *testing.T) {
	upstream := newUpstream()
	defer upstream.Close()
	router := newRouterFor(upstream)

	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/", nil), http.StatusOK)
	rr := testutil.Serve(router, http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if rr.Body.String() != "{\"service\":\"NBA API Proxy\",\"status\":\"healthy\"}\n" {
		t.Fatalf("unexpected health body %q", rr.Body.String())
	}

	if calls := upstream.Calls(); len(calls) != 0 {
		t.Fatalf("expected no upstream calls, got %d", len(calls))
	}
}

func TestRouterRejectsOtherMethodsAndPaths(t *testing.T) {
	upstream := newUpstream()
	defer upstream.Close()
	router := newRouterFor(upstream)

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		rr := testutil.Serve(router, method, "/api/players", nil)
		testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
	}
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/api/unknown", nil), http.StatusNotFound)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/api/team/roster/1/extra", nil), http.StatusNotFound)

	if calls := upstream.Calls(); len(calls) != 0 {
		t.Fatalf("expected rejected requests to skip upstream, got %d", len(calls))
	}
}

func TestRouterUpstreamStatusBecomes500(t *testing.T) {
	upstream := testutil.NewUpstreamServer(map[string]testutil.UpstreamResponse{
		"/stats/commonallplayers": {Status: http.StatusServiceUnavailable, Body: `{"message":"busy"}`},
	})
	defer upstream.Close()
	router := newRouterFor(upstream)

	rr := testutil.Serve(router, http.MethodGet, "/api/players", nil)
	testutil.AssertErrorEnvelope(t, rr)
	if calls := upstream.Calls(); len(calls) != 1 {
		t.Fatalf("expected a single upstream attempt, got %d", len(calls))
	}
}

func TestRouterConcurrentRoutesAreIndependent(t *testing.T) {
	upstream := newUpstream()
	defer upstream.Close()
	srv := httptest.NewServer(newRouterFor(upstream))
	defer srv.Close()

	expected := map[string]string{
		"/api/players":                playersBody,
		"/api/scoreboard":             scoreboardBody,
		"/api/team/roster/1610612738": rosterBody,
	}

	var wg sync.WaitGroup
	errs := make(chan string, 30)
	for i := 0; i < 10; i++ {
		for path, want := range expected {
			wg.Add(1)
			go func(path, want string) {
				defer wg.Done()
				resp, err := http.Get(srv.URL + path)
				if err != nil {
					errs <- err.Error()
					return
				}
				defer resp.Body.Close()
				body, _ := io.ReadAll(resp.Body)
				if resp.StatusCode != http.StatusOK || string(body) != want {
					errs <- path + ": unexpected response " + string(body)
				}
			}(path, want)
		}
	}
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Fatal(msg)
	}
	if calls := upstream.Calls(); len(calls) != 30 {
		t.Fatalf("expected one upstream call per request, got %d", len(calls))
	}
}

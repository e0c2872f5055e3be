package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preston-bernstein/nba-stats-proxy/internal/providers"
	"github.com/preston-bernstein/nba-stats-proxy/internal/providers/nbastats"
	"github.com/preston-bernstein/nba-stats-proxy/internal/testutil"
)

func newTestHandler(fetcher providers.Fetcher, formatter ErrorFormatter) *Handler {
	return NewHandler(fetcher, nbastats.NewEndpoints(nbastats.Config{}), formatter, nil)
}

func TestHealth(t *testing.T) {
	fetcher := &testutil.StubFetcher{}
	h := newTestHandler(fetcher, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Health), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.AssertHeader(t, rr, "Content-Type", "application/json")

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "healthy" || resp["service"] != "NBA API Proxy" {
		t.Fatalf("unexpected health body %v", resp)
	}
	if len(fetcher.Requests()) != 0 {
		t.Fatalf("expected health to skip the upstream")
	}
}

func TestIndexListsEndpoints(t *testing.T) {
	fetcher := &testutil.StubFetcher{}
	h := newTestHandler(fetcher, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Index), http.MethodGet, "/", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp IndexResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Service != "NBA API Proxy" || resp.Status == "" {
		t.Fatalf("unexpected index %+v", resp)
	}
	for _, path := range []string{"/api/scoreboard", "/api/team/roster/<team_id>", "/api/players", "/health"} {
		if resp.Endpoints[path] == "" {
			t.Fatalf("expected description for %s", path)
		}
	}
	if len(fetcher.Requests()) != 0 {
		t.Fatalf("expected index to skip the upstream")
	}
}

func TestTeamRosterRelaysBodyVerbatim(t *testing.T) {
	upstreamBody := `{"resultSets":[{"name":"CommonTeamRoster","rowSet":[[1610612747,"2024"]]}]}`
	fetcher := &testutil.StubFetcher{Body: json.RawMessage(upstreamBody)}
	h := newTestHandler(fetcher, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/team/roster/1610612747", nil)
	req.SetPathValue("team_id", "1610612747")
	rr := testutil.ServeRequest(http.HandlerFunc(h.TeamRoster), req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.AssertHeader(t, rr, "Content-Type", "application/json")
	if rr.Body.String() != upstreamBody {
		t.Fatalf("expected body verbatim, got %s", rr.Body.String())
	}

	reqs := fetcher.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected exactly one upstream request, got %d", len(reqs))
	}
	if reqs[0].Query.Get("TeamID") != "1610612747" || reqs[0].Query.Get("Season") != "2024-25" {
		t.Fatalf("unexpected upstream query %v", reqs[0].Query)
	}
}

func TestPlayersUsesFixedParameters(t *testing.T) {
	fetcher := &testutil.StubFetcher{Body: json.RawMessage(`{}`)}
	h := newTestHandler(fetcher, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Players), http.MethodGet, "/api/players?Season=1999-00&LeagueID=10", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	reqs := fetcher.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected one upstream request, got %d", len(reqs))
	}
	q := reqs[0].Query
	if q.Get("LeagueID") != "00" || q.Get("Season") != "2024-25" || q.Get("IsOnlyCurrentSeason") != "1" {
		t.Fatalf("expected fixed params regardless of input, got %v", q)
	}
}

func TestScoreboardIgnoresGameDate(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	fetcher := &testutil.StubFetcher{Body: json.RawMessage(`{"scoreboard":{"games":[]}}`)}
	h := NewHandler(fetcher, nbastats.NewEndpoints(nbastats.Config{}), nil, logger)

	for _, path := range []string{"/api/scoreboard", "/api/scoreboard?gameDate=2024-12-25", "/api/scoreboard?gameDate=garbage", "/api/scoreboard?gameDate=2999-01-01"} {
		rr := testutil.Serve(http.HandlerFunc(h.Scoreboard), http.MethodGet, path, nil)
		testutil.AssertStatus(t, rr, http.StatusOK)
	}

	reqs := fetcher.Requests()
	if len(reqs) != 4 {
		t.Fatalf("expected a fresh upstream call per request, got %d", len(reqs))
	}
	for _, r := range reqs {
		if r.Target() != reqs[0].Target() {
			t.Fatalf("gameDate changed upstream target: %s vs %s", r.Target(), reqs[0].Target())
		}
	}
	if !strings.HasSuffix(reqs[0].Target(), "/static/json/liveData/scoreboard/todaysScoreboard_00.json") {
		t.Fatalf("unexpected scoreboard target %s", reqs[0].Target())
	}
	if !strings.Contains(buf.String(), "game_date=2024-12-25") {
		t.Fatalf("expected ignored gameDate to be logged, got %q", buf.String())
	}
}

func TestUpstreamFailureReturnsErrorEnvelope(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"connection refused", &providers.UpstreamError{Route: providers.RoutePlayers, Err: errors.New(`Get "https://stats.nba.com": dial tcp: connection refused`)}},
		{"timeout", &providers.UpstreamError{Route: providers.RoutePlayers, Err: context.DeadlineExceeded}},
		{"4xx", &providers.UpstreamError{Route: providers.RoutePlayers, URL: "https://stats.nba.com/stats/commonallplayers", StatusCode: 403}},
		{"5xx", &providers.UpstreamError{Route: providers.RoutePlayers, URL: "https://stats.nba.com/stats/commonallplayers", StatusCode: 500}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := &testutil.StubFetcher{Err: tc.err}
			h := newTestHandler(fetcher, nil)

			rr := testutil.Serve(http.HandlerFunc(h.Players), http.MethodGet, "/api/players", nil)
			msg := testutil.AssertErrorEnvelope(t, rr)
			if msg != tc.err.Error() {
				t.Fatalf("expected raw message %q, got %q", tc.err.Error(), msg)
			}
			if len(fetcher.Requests()) != 1 {
				t.Fatalf("expected no retries, got %d calls", len(fetcher.Requests()))
			}
		})
	}
}

func TestRedactedErrorsHideDetails(t *testing.T) {
	err := &providers.UpstreamError{URL: "https://stats.nba.com/stats/commonteamroster?TeamID=1", StatusCode: 403}
	fetcher := &testutil.StubFetcher{Err: err}
	h := newTestHandler(fetcher, RedactedErrors)

	req := httptest.NewRequest(http.MethodGet, "/api/team/roster/1", nil)
	req.SetPathValue("team_id", "1")
	rr := testutil.ServeRequest(http.HandlerFunc(h.TeamRoster), req)

	msg := testutil.AssertErrorEnvelope(t, rr)
	if strings.Contains(msg, "stats.nba.com") {
		t.Fatalf("expected url redacted, got %q", msg)
	}
	if msg != "Forbidden from upstream" {
		t.Fatalf("unexpected redacted message %q", msg)
	}
}

func TestErrorFormatters(t *testing.T) {
	if got := PassThroughErrors(nil); got == "" {
		t.Fatalf("expected fallback message for nil error")
	}
	if got := RedactedErrors(errors.New("dial tcp 10.0.0.1:443")); got != "upstream request failed" {
		t.Fatalf("expected generic message for transport errors, got %q", got)
	}
}

func TestEmptyFormatterMessageFallsBack(t *testing.T) {
	fetcher := &testutil.StubFetcher{Err: errors.New("boom")}
	h := newTestHandler(fetcher, func(error) string { return "" })

	rr := testutil.Serve(http.HandlerFunc(h.Players), http.MethodGet, "/api/players", nil)
	if msg := testutil.AssertErrorEnvelope(t, rr); msg == "" {
		t.Fatalf("expected non-empty message")
	}
}

type ctxCapturingFetcher struct {
	ctxErr error
}

func (f *ctxCapturingFetcher) Fetch(ctx context.Context, req providers.Request) (json.RawMessage, error) {
	_ = req
	f.ctxErr = ctx.Err()
	return json.RawMessage(`{}`), nil
}

func TestUpstreamCallIgnoresClientCancellation(t *testing.T) {
	fetcher := &ctxCapturingFetcher{}
	h := newTestHandler(fetcher, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/players", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	rr := testutil.ServeRequest(http.HandlerFunc(h.Players), req.WithContext(ctx))

	testutil.AssertStatus(t, rr, http.StatusOK)
	if fetcher.ctxErr != nil {
		t.Fatalf("expected upstream context detached from client, got %v", fetcher.ctxErr)
	}
}

package providers

import (
	"context"
	"encoding/json"
	"net/url"
)

// Route labels used in logs and metrics for each proxied endpoint.
const (
	RouteScoreboard = "scoreboard"
	RouteRoster     = "roster"
	RoutePlayers    = "players"
)

// Request describes exactly one upstream GET. It is built fresh for every inbound request.
type Request struct {
	Route string
	URL   string
	Query url.Values
}

// Target returns the full upstream URL including the encoded query.
func (r Request) Target() string {
	if len(r.Query) == 0 {
		return r.URL
	}
	return r.URL + "?" + r.Query.Encode()
}

// Fetcher performs a single upstream request and returns the JSON body untouched.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (json.RawMessage, error)
}

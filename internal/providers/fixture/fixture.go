package fixture

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/preston-bernstein/nba-stats-proxy/internal/providers"
)

//go:embed data/*.json
var payloads embed.FS

// Fetcher serves canned NBA payloads so the proxy can run without reaching nba.com.
type Fetcher struct{}

// New creates a fixture fetcher.
func New() *Fetcher {
	return &Fetcher{}
}

// Fetch returns the sample body for the request's route. Unknown routes fail like an upstream 404.
func (f *Fetcher) Fetch(ctx context.Context, req providers.Request) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, &providers.UpstreamError{Route: req.Route, URL: req.Target(), Err: err}
	}

	body, err := payloads.ReadFile(fmt.Sprintf("data/%s.json", req.Route))
	if err != nil {
		return nil, &providers.UpstreamError{Route: req.Route, URL: req.Target(), StatusCode: 404}
	}
	return json.RawMessage(body), nil
}

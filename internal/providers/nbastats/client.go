package nbastats

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/preston-bernstein/nba-stats-proxy/internal/providers"
)

// Config controls how the client reaches stats.nba.com and cdn.nba.com.
type Config struct {
	StatsBaseURL string
	CDNBaseURL   string
	Season       string
	HTTPClient   *http.Client
}

// Client issues single GETs against the NBA hosts with the browser-like header set they require.
type Client struct {
	httpClient httpDoer
	timeout    time.Duration
}

// NewClient constructs a client. A nil HTTPClient gets a default client with the request timeout.
func NewClient(cfg Config) *Client {
	return &Client{
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		timeout:    requestTimeout,
	}
}

// Fetch performs exactly one GET and returns the raw JSON body. Every failure is an *providers.UpstreamError.
func (c *Client) Fetch(ctx context.Context, req providers.Request) (json.RawMessage, error) {
	target := req.Target()
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &providers.UpstreamError{Route: req.Route, URL: target, Err: err}
	}
	applyHeaders(httpReq.Header)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &providers.UpstreamError{Route: req.Route, URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		return nil, &providers.UpstreamError{Route: req.Route, URL: target, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &providers.UpstreamError{Route: req.Route, URL: target, Err: err}
	}
	if !json.Valid(body) {
		return nil, &providers.UpstreamError{Route: req.Route, URL: target, Err: providers.ErrInvalidPayload}
	}
	return json.RawMessage(body), nil
}

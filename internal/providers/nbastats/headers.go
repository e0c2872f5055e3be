package nbastats

import "net/http"

// stats.nba.com rejects requests that do not look like they came from its own site.
var upstreamHeaders = map[string]string{
	"User-Agent":         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
	"Accept":             "application/json",
	"x-nba-stats-origin": "stats.nba.com",
	"x-nba-stats-token":  "true",
	"Referer":            "https://stats.nba.com/",
}

func applyHeaders(h http.Header) {
	for k, v := range upstreamHeaders {
		h.Set(k, v)
	}
}

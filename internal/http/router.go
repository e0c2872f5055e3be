package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/nba-stats-proxy/internal/http/handlers"
)

// NewRouter registers the proxy routes. Only GET (and HEAD) are routed; other methods get 405.
func NewRouter(handler *handlers.Handler) *nethttp.ServeMux {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("GET /{$}", handler.Index)
	mux.HandleFunc("GET /health", handler.Health)
	mux.HandleFunc("GET /api/scoreboard", handler.Scoreboard)
	mux.HandleFunc("GET /api/team/roster/{team_id}", handler.TeamRoster)
	mux.HandleFunc("GET /api/players", handler.Players)
	return mux
}

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nba-stats-proxy/internal/logging"
	"github.com/preston-bernstein/nba-stats-proxy/internal/providers"
)

const serviceName = "NBA API Proxy"

// RequestBuilder maps inbound parameters to exactly one upstream request.
type RequestBuilder interface {
	Scoreboard(gameDate string) providers.Request
	TeamRoster(teamID string) providers.Request
	AllPlayers() providers.Request
}

// Handler serves the proxy routes.
type Handler struct {
	fetcher  providers.Fetcher
	builder  RequestBuilder
	errorMsg ErrorFormatter
	logger   *slog.Logger
}

// NewHandler constructs a Handler. A nil formatter passes upstream error text through.
func NewHandler(fetcher providers.Fetcher, builder RequestBuilder, formatter ErrorFormatter, logger *slog.Logger) *Handler {
	if formatter == nil {
		formatter = PassThroughErrors
	}
	return &Handler{
		fetcher:  fetcher,
		builder:  builder,
		errorMsg: formatter,
		logger:   logger,
	}
}

// IndexResponse describes the service and its routes.
type IndexResponse struct {
	Service   string            `json:"service"`
	Status    string            `json:"status"`
	Endpoints map[string]string `json:"endpoints"`
}

var index = IndexResponse{
	Service: serviceName,
	Status:  "running",
	Endpoints: map[string]string{
		"/api/scoreboard":            "Today's NBA scoreboard (gameDate=YYYY-MM-DD is accepted but today's games are always returned)",
		"/api/team/roster/<team_id>": "Roster for a specific NBA team",
		"/api/players":               "All active NBA players for the current season",
		"/health":                    "Health check",
	},
}

// Index lists the available endpoints.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, index, h.logger)
}

// Health reports liveness without touching the upstream.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": serviceName}, h.logger)
}

// Scoreboard proxies today's scoreboard from the CDN.
func (h *Handler) Scoreboard(w http.ResponseWriter, r *http.Request) {
	gameDate := r.URL.Query().Get("gameDate")
	if gameDate != "" {
		logging.Debug(loggerFromContext(r, h.logger), "gameDate does not select a scoreboard; serving today's",
			slog.String(logging.FieldGameDate, gameDate))
	}
	h.proxy(w, r, h.builder.Scoreboard(gameDate))
}

// TeamRoster proxies commonteamroster for the team in the path.
func (h *Handler) TeamRoster(w http.ResponseWriter, r *http.Request) {
	h.proxy(w, r, h.builder.TeamRoster(r.PathValue("team_id")))
}

// Players proxies commonallplayers for the current season.
func (h *Handler) Players(w http.ResponseWriter, r *http.Request) {
	h.proxy(w, r, h.builder.AllPlayers())
}

// proxy issues the single upstream call. The upstream request outlives a disconnecting client;
// the fetcher's own timeout bounds it.
func (h *Handler) proxy(w http.ResponseWriter, r *http.Request, req providers.Request) {
	logger := loggerFromContext(r, h.logger)
	ctx := context.WithoutCancel(r.Context())

	body, err := h.fetcher.Fetch(ctx, req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: h.errorMessage(err)}, logger)
		return
	}
	writeRawJSON(w, http.StatusOK, body, logger)
}

func (h *Handler) errorMessage(err error) string {
	if msg := h.errorMsg(err); msg != "" {
		return msg
	}
	return PassThroughErrors(nil)
}

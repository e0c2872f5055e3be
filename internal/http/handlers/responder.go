package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nba-stats-proxy/internal/logging"
	"github.com/preston-bernstein/nba-stats-proxy/internal/providers"
)

// ErrorResponse is the single-field envelope returned for every upstream failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorFormatter decides what message an upstream failure exposes to callers.
// It is the only place that policy lives.
type ErrorFormatter func(err error) string

// PassThroughErrors exposes the upstream error text unchanged.
func PassThroughErrors(err error) string {
	if err == nil {
		return "upstream request failed"
	}
	return err.Error()
}

// RedactedErrors hides upstream URLs and transport details, keeping only the status when there is one.
func RedactedErrors(err error) string {
	if upErr, ok := providers.AsUpstreamError(err); ok && upErr.StatusCode > 0 {
		return http.StatusText(upErr.StatusCode) + " from upstream"
	}
	return "upstream request failed"
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

// writeRawJSON relays an already-encoded JSON body byte for byte.
func writeRawJSON(w http.ResponseWriter, status int, body json.RawMessage, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logging.Error(logger, "failed to write response", err)
	}
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}

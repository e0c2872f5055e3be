package providers

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/nba-stats-proxy/internal/logging"
)

// logWithUpstream emits a log entry on the request-scoped logger (or fallback) tagged with the route.
func logWithUpstream(ctx context.Context, fallback *slog.Logger, level slog.Level, route string, msg string, args ...any) {
	logger := logging.FromContext(ctx, fallback)
	if logger == nil {
		return
	}
	args = append(args, slog.String(logging.FieldUpstream, route))
	logger.Log(ctx, level, msg, args...)
}

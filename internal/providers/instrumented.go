package providers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/nba-stats-proxy/internal/logging"
	"github.com/preston-bernstein/nba-stats-proxy/internal/metrics"
)

// instrumentedFetcher records metrics and logs around a Fetcher. It never retries.
type instrumentedFetcher struct {
	inner    Fetcher
	logger   *slog.Logger
	recorder *metrics.Recorder
	now      func() time.Time
}

// NewInstrumentedFetcher wraps inner with per-attempt metrics and logging.
func NewInstrumentedFetcher(inner Fetcher, logger *slog.Logger, recorder *metrics.Recorder) Fetcher {
	return &instrumentedFetcher{
		inner:    inner,
		logger:   logger,
		recorder: recorder,
		now:      time.Now,
	}
}

func (f *instrumentedFetcher) Fetch(ctx context.Context, req Request) (json.RawMessage, error) {
	start := f.now()
	body, err := f.inner.Fetch(ctx, req)
	elapsed := f.now().Sub(start)

	status := 0
	if err == nil {
		status = http.StatusOK
	} else if upErr, ok := AsUpstreamError(err); ok {
		status = upErr.StatusCode
	}
	f.recorder.RecordUpstreamAttempt(req.Route, status, elapsed, err)

	if err != nil {
		logWithUpstream(ctx, f.logger, slog.LevelWarn, req.Route, "upstream request failed",
			slog.String(logging.FieldURL, req.Target()),
			slog.Int(logging.FieldStatusCode, status),
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	logWithUpstream(ctx, f.logger, slog.LevelDebug, req.Route, "upstream request complete",
		slog.String(logging.FieldURL, req.Target()),
		slog.Int(logging.FieldBytes, len(body)),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)
	return body, nil
}

package server

import (
	"log/slog"

	"github.com/preston-bernstein/nba-stats-proxy/internal/config"
	"github.com/preston-bernstein/nba-stats-proxy/internal/metrics"
	"github.com/preston-bernstein/nba-stats-proxy/internal/providers"
	"github.com/preston-bernstein/nba-stats-proxy/internal/providers/fixture"
	"github.com/preston-bernstein/nba-stats-proxy/internal/providers/nbastats"
)

const (
	sourceNBAStats = "nbastats"
	sourceFixture  = "fixture"
)

func nbastatsConfig(cfg config.Config) nbastats.Config {
	return nbastats.Config{
		StatsBaseURL: cfg.Upstream.StatsBaseURL,
		CDNBaseURL:   cfg.Upstream.CDNBaseURL,
		Season:       cfg.Upstream.Season,
	}
}

// selectFetcher picks the upstream implementation named by config.
func selectFetcher(cfg config.Config, logger *slog.Logger) providers.Fetcher {
	switch cfg.Upstream.Source {
	case sourceNBAStats, "":
		return nbastats.NewClient(nbastatsConfig(cfg))
	case sourceFixture:
		if logger != nil {
			logger.Warn("serving embedded fixture payloads instead of nba.com")
		}
		return fixture.New()
	default:
		if logger != nil {
			logger.Warn("unknown upstream source, using nbastats", slog.String("source", cfg.Upstream.Source))
		}
		return nbastats.NewClient(nbastatsConfig(cfg))
	}
}

// buildFetcher wraps the selected fetcher with metrics and logging. Nothing retries.
func buildFetcher(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) providers.Fetcher {
	return providers.NewInstrumentedFetcher(selectFetcher(cfg, logger), logger, recorder)
}

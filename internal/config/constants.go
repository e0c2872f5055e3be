package config

const (
	envPort         = "PORT"
	envStatsBaseURL = "NBA_STATS_BASE_URL"
	envCDNBaseURL   = "NBA_CDN_BASE_URL"
	envSeason       = "NBA_SEASON"
	envSource       = "UPSTREAM_SOURCE"
	envErrorRedact  = "ERROR_REDACT"
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel     = "LOG_LEVEL"
	envLogFormat    = "LOG_FORMAT"

	defaultPort         = "5000"
	defaultStatsBaseURL = "https://stats.nba.com/stats"
	defaultCDNBaseURL   = "https://cdn.nba.com"
	defaultMetricsPort  = "9090"
	defaultServiceName  = "nba-stats-proxy"
	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
	defaultSource       = "nbastats"

	// Season the roster and player lookups are pinned to.
	defaultSeason = "2024-25"
)

package config

// Config holds runtime configuration for the proxy. It is built once at startup and never mutated.
type Config struct {
	Port        string
	Upstream    UpstreamConfig
	ErrorRedact bool
	Metrics     MetricsConfig
	Log         LogConfig
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with defaults matching the public proxy.
func Load() Config {
	return Config{
		Port:        envOrDefault(envPort, defaultPort),
		Upstream:    loadUpstream(),
		ErrorRedact: boolEnvOrDefault(envErrorRedact, false),
		Metrics:     loadMetrics(),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
	}
}

// Addr returns the listen address on all interfaces.
func (c Config) Addr() string {
	return ":" + c.Port
}

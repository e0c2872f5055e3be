package config

import "strings"

// UpstreamConfig controls where the proxy sends its requests.
type UpstreamConfig struct {
	// Source is "nbastats" for the live API or "fixture" for embedded sample payloads.
	Source       string
	StatsBaseURL string
	CDNBaseURL   string
	Season       string
}

func loadUpstream() UpstreamConfig {
	return UpstreamConfig{
		Source:       strings.ToLower(strings.TrimSpace(envOrDefault(envSource, defaultSource))),
		StatsBaseURL: strings.TrimSuffix(envOrDefault(envStatsBaseURL, defaultStatsBaseURL), "/"),
		CDNBaseURL:   strings.TrimSuffix(envOrDefault(envCDNBaseURL, defaultCDNBaseURL), "/"),
		Season:       envOrDefault(envSeason, defaultSeason),
	}
}

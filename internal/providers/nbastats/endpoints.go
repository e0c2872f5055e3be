package nbastats

import (
	"net/url"

	"github.com/preston-bernstein/nba-stats-proxy/internal/providers"
)

// Endpoints builds upstream requests for each proxied route. It holds no mutable state.
type Endpoints struct {
	statsBase string
	cdnBase   string
	season    string
}

// NewEndpoints resolves base URLs and season, falling back to the public NBA hosts.
func NewEndpoints(cfg Config) Endpoints {
	return Endpoints{
		statsBase: normalizeBaseURL(cfg.StatsBaseURL, defaultStatsBaseURL),
		cdnBase:   normalizeBaseURL(cfg.CDNBaseURL, defaultCDNBaseURL),
		season:    resolveSeason(cfg.Season),
	}
}

// Scoreboard targets the CDN's "today" scoreboard. gameDate does not select a different day:
// the CDN only publishes today's file under this path.
func (e Endpoints) Scoreboard(gameDate string) providers.Request {
	_ = gameDate
	return providers.Request{
		Route: providers.RouteScoreboard,
		URL:   e.cdnBase + scoreboardPath,
	}
}

// TeamRoster targets commonteamroster. teamID is forwarded as-is.
func (e Endpoints) TeamRoster(teamID string) providers.Request {
	return providers.Request{
		Route: providers.RouteRoster,
		URL:   e.statsBase + rosterPath,
		Query: url.Values{
			"Season": {e.season},
			"TeamID": {teamID},
		},
	}
}

// AllPlayers targets commonallplayers for the current season.
func (e Endpoints) AllPlayers() providers.Request {
	return providers.Request{
		Route: providers.RoutePlayers,
		URL:   e.statsBase + playersPath,
		Query: url.Values{
			"LeagueID":            {leagueID},
			"Season":              {e.season},
			"IsOnlyCurrentSeason": {"1"},
		},
	}
}

package nbastats

import "time"

const (
	defaultStatsBaseURL = "https://stats.nba.com/stats"
	defaultCDNBaseURL   = "https://cdn.nba.com"
	defaultSeason       = "2024-25"
	leagueID            = "00"

	scoreboardPath = "/static/json/liveData/scoreboard/todaysScoreboard_00.json"
	rosterPath     = "/commonteamroster"
	playersPath    = "/commonallplayers"

	// Hard bound on every upstream call, including reading the body.
	requestTimeout = 10 * time.Second
)

package store

import (
	"time"
)

// Game identifies one contest as reported by a provider.
type Game struct {
	GameID    string    `json:"game_id" db:"game_id"`
	GameDate  time.Time `json:"game_date" db:"game_date"`
	AwayTeam  string    `json:"away_team" db:"away_team"`
	HomeTeam  string    `json:"home_team" db:"home_team"`
	AwayAbbr  string    `json:"away_abbr" db:"away_abbr"`
	HomeAbbr  string    `json:"home_abbr" db:"home_abbr"`
	AwayScore int       `json:"away_score" db:"away_score"`
	HomeScore int       `json:"home_score" db:"home_score"`
	Status    string    `json:"status" db:"status"`
}

// PlayByPlayEvent is one row of a game's play-by-play log. Clock is the
// time remaining in the period as reported ("MM:SS" or "MM:SS.t");
// scores are cumulative over the full game.
type PlayByPlayEvent struct {
	Period    int    `json:"period"`
	Clock     string `json:"clock"`
	AwayScore int    `json:"away_score"`
	HomeScore int    `json:"home_score"`
}

// ShotAttempt is one field-goal attempt with raw provider coordinates.
// RawX/RawY may carry a trailing unit suffix (e.g. "22.5 ft"); numeric
// coercion is left to the narrative engine.
type ShotAttempt struct {
	Team   string `json:"team"`
	Player string `json:"player,omitempty"`
	RawX   string `json:"raw_x"`
	RawY   string `json:"raw_y"`
	Value  int    `json:"value"`
	Made   bool   `json:"made"`
}

// Player availability per the box score minutes column.
const (
	StatusPlayed     = "played"
	StatusDidNotPlay = "did_not_play"
	StatusSuspended  = "suspended"
)

// PlayerGameLine is one player's box score row (or a team-totals row).
type PlayerGameLine struct {
	Player string `json:"player"`
	Team   string `json:"team"`
	Status string `json:"status"`

	Points                 int `json:"points"`
	Rebounds               int `json:"rebounds"`
	OffensiveRebounds      int `json:"offensive_rebounds"`
	DefensiveRebounds      int `json:"defensive_rebounds"`
	Assists                int `json:"assists"`
	Steals                 int `json:"steals"`
	Blocks                 int `json:"blocks"`
	Turnovers              int `json:"turnovers"`
	PersonalFouls          int `json:"personal_fouls"`
	FieldGoalsMade         int `json:"field_goals_made"`
	FieldGoalsAttempted    int `json:"field_goals_attempted"`
	ThreePointersMade      int `json:"three_pointers_made"`
	ThreePointersAttempted int `json:"three_pointers_attempted"`
	FreeThrowsMade         int `json:"free_throws_made"`
	FreeThrowsAttempted    int `json:"free_throws_attempted"`
}

// Played reports whether the line counts toward leaderboards and totals.
func (l PlayerGameLine) Played() bool {
	return l.Status == "" || l.Status == StatusPlayed
}

// BoxScore is one team's box score: individual lines plus the totals row.
type BoxScore struct {
	Team    string           `json:"team"`
	Players []PlayerGameLine `json:"players"`
	Totals  PlayerGameLine   `json:"totals"`
}

// InjuryEntry is one row of the league injury report.
type InjuryEntry struct {
	Team        string    `json:"team"`
	Player      string    `json:"player"`
	Status      string    `json:"status"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

// PostedThread records one narrative thread that was posted, for
// cross-run idempotence and the read API.
type PostedThread struct {
	ID        int       `json:"id" db:"id"`
	GameID    string    `json:"game_id" db:"game_id"`
	GameDate  time.Time `json:"game_date" db:"game_date"`
	Header    string    `json:"header" db:"header"`
	Segments  []string  `json:"segments" db:"segments"`
	PostIDs   []string  `json:"post_ids" db:"post_ids"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

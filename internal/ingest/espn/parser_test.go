package espn

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/courtside/internal/store"
)

func mapFromJSON(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

const scoreboardJSON = `{
  "events": [
    {
      "id": "401307777",
      "status": {"type": {"completed": true, "state": "post"}},
      "competitions": [{
        "competitors": [
          {"homeAway": "home", "score": "112",
           "team": {"abbreviation": "lal", "displayName": "Los Angeles Lakers"}},
          {"homeAway": "away", "score": "108",
           "team": {"abbreviation": "BOS", "displayName": "Boston Celtics"}}
        ]
      }]
    },
    {
      "id": "401307778",
      "status": {"type": {"completed": false, "state": "in"}},
      "competitions": [{
        "competitors": [
          {"homeAway": "home", "score": "55", "team": {"abbreviation": "PHX", "displayName": "Phoenix Suns"}},
          {"homeAway": "away", "score": "60", "team": {"abbreviation": "DEN", "displayName": "Denver Nuggets"}}
        ]
      }]
    },
    {
      "id": "401307779",
      "status": {"type": {"completed": true}},
      "competitions": [{"competitors": []}]
    }
  ]
}`

func TestParseScoreboardGames(t *testing.T) {
	date := time.Date(2021, 5, 22, 0, 0, 0, 0, time.UTC)
	games := ParseScoreboardGames(mapFromJSON(t, scoreboardJSON), date)

	// The in-progress game and the malformed event are dropped.
	require.Len(t, games, 1)

	game := games[0]
	assert.Equal(t, "401307777", game.GameID)
	assert.Equal(t, "final", game.Status)
	assert.Equal(t, "Boston Celtics", game.AwayTeam)
	assert.Equal(t, "BOS", game.AwayAbbr)
	assert.Equal(t, "LAL", game.HomeAbbr)
	assert.Equal(t, 108, game.AwayScore)
	assert.Equal(t, 112, game.HomeScore)
	assert.Equal(t, date, game.GameDate)
}

const playsJSON = `{
  "plays": [
    {"period": {"number": 1}, "clock": {"displayValue": "12:00"},
     "awayScore": 0, "homeScore": 0},
    {"period": {"number": 1}, "clock": {"displayValue": "11:42"},
     "awayScore": 2, "homeScore": 0},
    {"period": {"number": 2}, "awayScore": 30, "homeScore": 28},
    {"period": {"number": 2}, "clock": {"displayValue": "5:30"},
     "awayScore": 40, "homeScore": 44}
  ]
}`

func TestParsePlays(t *testing.T) {
	events := ParsePlays(mapFromJSON(t, playsJSON))

	// The clockless play is dropped.
	require.Len(t, events, 3)
	assert.Equal(t, store.PlayByPlayEvent{Period: 1, Clock: "12:00", AwayScore: 0, HomeScore: 0}, events[0])
	assert.Equal(t, store.PlayByPlayEvent{Period: 1, Clock: "11:42", AwayScore: 2, HomeScore: 0}, events[1])
	assert.Equal(t, store.PlayByPlayEvent{Period: 2, Clock: "5:30", AwayScore: 40, HomeScore: 44}, events[2])
}

const boxScoreJSON = `{
  "boxscore": {
    "players": [
      {
        "team": {"abbreviation": "BOS"},
        "statistics": [{
          "names": ["MIN", "FG", "3PT", "FT", "OREB", "DREB", "REB", "AST", "STL", "BLK", "TO", "PF", "PTS"],
          "athletes": [
            {
              "athlete": {"displayName": "Jayson Tatum"},
              "stats": ["41", "12-24", "4-9", "8-8", "1", "8", "9", "5", "2", "1", "3", "2", "36"]
            },
            {
              "athlete": {"displayName": "Marcus Smart"},
              "stats": ["38", "5-12", "2-6", "1-2", "0", "4", "4", "7", "3", "0", "2", "4", "13"]
            },
            {
              "athlete": {"displayName": "Romeo Langford"},
              "didNotPlay": true
            }
          ]
        }]
      }
    ]
  }
}`

func TestParseBoxScores(t *testing.T) {
	boxes := ParseBoxScores(mapFromJSON(t, boxScoreJSON))
	require.Contains(t, boxes, "BOS")

	box := boxes["BOS"]
	require.Len(t, box.Players, 3)

	tatum := box.Players[0]
	assert.Equal(t, "Jayson Tatum", tatum.Player)
	assert.Equal(t, 36, tatum.Points)
	assert.Equal(t, 9, tatum.Rebounds)
	assert.Equal(t, 12, tatum.FieldGoalsMade)
	assert.Equal(t, 24, tatum.FieldGoalsAttempted)
	assert.Equal(t, 4, tatum.ThreePointersMade)
	assert.Equal(t, 8, tatum.FreeThrowsMade)

	assert.Equal(t, store.StatusDidNotPlay, box.Players[2].Status)

	// Totals are summed from the lines that played.
	assert.Equal(t, 49, box.Totals.Points)
	assert.Equal(t, 13, box.Totals.Rebounds)
	assert.Equal(t, 17, box.Totals.FieldGoalsMade)
	assert.Equal(t, 36, box.Totals.FieldGoalsAttempted)
	assert.Equal(t, 12, box.Totals.Assists)
}

func TestParseShotFormat(t *testing.T) {
	assert.Equal(t, [2]int{12, 24}, parseShotFormat("12-24"))
	assert.Equal(t, [2]int{0, 0}, parseShotFormat(""))
	assert.Equal(t, [2]int{0, 0}, parseShotFormat("12"))
}

func TestParseIntMixedTypes(t *testing.T) {
	assert.Equal(t, 42, parseInt(float64(42)))
	assert.Equal(t, 42, parseInt("42"))
	assert.Equal(t, 0, parseInt("n/a"))
	assert.Equal(t, 0, parseInt(nil))
}

package narrative

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/courtside/internal/store"
)

func TestBuildFullNarrative(t *testing.T) {
	game := testGame()
	data := GameData{
		Game: game,
		PlayByPlay: []store.PlayByPlayEvent{
			{Period: 1, Clock: "12:00", AwayScore: 0, HomeScore: 0},
			{Period: 1, Clock: "6:00", AwayScore: 10, HomeScore: 12},
			{Period: 1, Clock: "0:00", AwayScore: 25, HomeScore: 25},
			{Period: 2, Clock: "12:00", AwayScore: 25, HomeScore: 25},
			{Period: 2, Clock: "0:00", AwayScore: 50, HomeScore: 48},
		},
		AwayBox: &store.BoxScore{
			Team:    "BOS",
			Players: []store.PlayerGameLine{{Player: "Jayson Tatum", Points: 30}},
			Totals:  store.PlayerGameLine{FieldGoalsMade: 40, FieldGoalsAttempted: 85},
		},
		HomeBox: &store.BoxScore{
			Team:    "LAL",
			Players: []store.PlayerGameLine{{Player: "LeBron James", Points: 28}},
			Totals:  store.PlayerGameLine{FieldGoalsMade: 41, FieldGoalsAttempted: 88},
		},
		Shots: []store.ShotAttempt{
			{Team: "BOS", RawX: "20 ft", RawY: "10 ft", Value: 2, Made: true},
		},
		SourceURL: "https://www.basketball-reference.com/boxscores/pbp/202105220LAL.html",
	}

	narrative, err := Build(data)
	require.NoError(t, err)

	assert.InDelta(t, 24.0, narrative.TotalMinutes(), 1e-9)
	assert.Equal(t, []float64{12}, narrative.PeriodPauses)
	assert.Equal(t, 1, narrative.Lead.Ties) // the 25:25 state
	assert.NotNil(t, narrative.Splits)
	require.Len(t, narrative.Leaders, 5)
	assert.Equal(t, "J. Tatum", narrative.Leaders[0].Leaders[0].Player)
	assert.Len(t, narrative.Shots, 1)
	require.GreaterOrEqual(t, len(narrative.Segments), 3)
	assert.Contains(t, narrative.Segments[0], "#BOSvsLAL")
}

func TestBuildMissingBoxScoresDegrades(t *testing.T) {
	data := GameData{
		Game: testGame(),
		PlayByPlay: []store.PlayByPlayEvent{
			{Period: 1, Clock: "12:00"},
			{Period: 1, Clock: "0:00", AwayScore: 20, HomeScore: 18},
		},
	}

	narrative, err := Build(data)
	require.NoError(t, err)
	assert.Nil(t, narrative.Splits)
	assert.Empty(t, narrative.Leaders)
	require.Len(t, narrative.Segments, 2)
	assert.Contains(t, narrative.Segments[1], "no box scores")
}

func TestBuildEmptyInputFails(t *testing.T) {
	_, err := Build(GameData{Game: testGame()})
	assert.ErrorIs(t, err, ErrNoData)
}

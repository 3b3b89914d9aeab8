package narrative

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/courtside/internal/store"
)

func line(player string, points, rebounds int) store.PlayerGameLine {
	return store.PlayerGameLine{
		Player:   player,
		Points:   points,
		Rebounds: rebounds,
	}
}

func findBoard(t *testing.T, boards []CategoryLeaders, category string) CategoryLeaders {
	t.Helper()
	for _, board := range boards {
		if board.Category == category {
			return board
		}
	}
	t.Fatalf("no board for category %s", category)
	return CategoryLeaders{}
}

func TestTopPerformersRanksDescending(t *testing.T) {
	boards := TopPerformers([]store.PlayerGameLine{
		line("Jayson Tatum", 18, 5),
		line("LeBron James", 31, 8),
		line("Anthony Davis", 24, 12),
		line("Jaylen Brown", 27, 6),
	})

	points := findBoard(t, boards, "PTS")
	require.Len(t, points.Leaders, 3)
	assert.Equal(t, LeaderEntry{Player: "L. James", Value: 31}, points.Leaders[0])
	assert.Equal(t, LeaderEntry{Player: "J. Brown", Value: 27}, points.Leaders[1])
	assert.Equal(t, LeaderEntry{Player: "A. Davis", Value: 24}, points.Leaders[2])
}

func TestTopPerformersStableOnTies(t *testing.T) {
	boards := TopPerformers([]store.PlayerGameLine{
		line("First Player", 20, 0),
		line("Second Player", 20, 0),
		line("Third Player", 20, 0),
		line("Fourth Player", 20, 0),
	})

	points := findBoard(t, boards, "PTS")
	require.Len(t, points.Leaders, 3)
	assert.Equal(t, "F. Player", points.Leaders[0].Player)
	// Input order decides ties, so the fourth player never displaces the
	// first three.
	for _, entry := range points.Leaders {
		assert.NotEqual(t, "Fourth Player", entry.Player)
	}
}

func TestTopPerformersExcludesInactivePlayers(t *testing.T) {
	lines := []store.PlayerGameLine{
		line("Active Player", 10, 4),
		{Player: "Benched Player", Points: 99, Status: store.StatusDidNotPlay},
		{Player: "Suspended Player", Points: 99, Status: store.StatusSuspended},
	}

	for _, board := range TopPerformers(lines) {
		for _, entry := range board.Leaders {
			assert.NotContains(t, entry.Player, "Benched")
			assert.NotContains(t, entry.Player, "Suspended")
		}
	}
}

func TestTopPerformersAllCategoriesPresent(t *testing.T) {
	boards := TopPerformers([]store.PlayerGameLine{line("Solo Player", 10, 4)})
	require.Len(t, boards, 5)
	want := []string{"PTS", "TRB", "AST", "STL", "BLK"}
	for i, board := range boards {
		assert.Equal(t, want[i], board.Category)
		assert.Len(t, board.Leaders, 1)
	}
}

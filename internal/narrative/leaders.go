package narrative

import (
	"sort"

	"github.com/fortuna/courtside/internal/store"
)

// Leaderboard categories, in the order they are reported.
var leaderCategories = []string{"PTS", "TRB", "AST", "STL", "BLK"}

// LeaderEntry is one (player, value) pair of a category leaderboard.
type LeaderEntry struct {
	Player string `json:"player"`
	Value  int    `json:"value"`
}

// CategoryLeaders is the top-of-category ranking for one counting stat.
type CategoryLeaders struct {
	Category string        `json:"category"`
	Leaders  []LeaderEntry `json:"leaders"`
}

const leadersPerCategory = 3

// TopPerformers ranks the top three players per category across both
// teams. Players flagged did-not-play or suspended are excluded. Equal
// values keep their input order; there is no secondary sort key.
func TopPerformers(lines []store.PlayerGameLine) []CategoryLeaders {
	active := make([]store.PlayerGameLine, 0, len(lines))
	for _, line := range lines {
		if line.Played() {
			active = append(active, line)
		}
	}

	boards := make([]CategoryLeaders, 0, len(leaderCategories))
	for _, category := range leaderCategories {
		ranked := make([]store.PlayerGameLine, len(active))
		copy(ranked, active)
		sort.SliceStable(ranked, func(i, j int) bool {
			return statValue(ranked[i], category) > statValue(ranked[j], category)
		})

		n := leadersPerCategory
		if len(ranked) < n {
			n = len(ranked)
		}
		entries := make([]LeaderEntry, 0, n)
		for _, line := range ranked[:n] {
			entries = append(entries, LeaderEntry{
				Player: ShortenName(line.Player),
				Value:  statValue(line, category),
			})
		}
		boards = append(boards, CategoryLeaders{Category: category, Leaders: entries})
	}

	return boards
}

func statValue(line store.PlayerGameLine, category string) int {
	switch category {
	case "PTS":
		return line.Points
	case "TRB":
		return line.Rebounds
	case "AST":
		return line.Assists
	case "STL":
		return line.Steals
	case "BLK":
		return line.Blocks
	}
	return 0
}

// TeamSplits are the away/home aggregate lines reported in the team-stats
// segment.
type TeamSplits struct {
	Away store.PlayerGameLine `json:"away"`
	Home store.PlayerGameLine `json:"home"`
}

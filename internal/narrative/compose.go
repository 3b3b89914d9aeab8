package narrative

import (
	"fmt"
	"strings"

	"github.com/fortuna/courtside/internal/store"
)

// SegmentLimit is the posting medium's per-message character limit, in
// runes. Segments are hard-truncated to it with no word-boundary logic.
const SegmentLimit = 279

// ComposeInput carries everything the composer assembles into segments.
type ComposeInput struct {
	Game      store.Game
	Lead      LeadStats
	Splits    *TeamSplits // nil when no box score is available
	Leaders   []CategoryLeaders
	Injuries  []store.InjuryEntry
	SourceURL string
}

// Header is the first line of the narrative and the thread's identity for
// duplicate detection: "#BOSvsLAL 110:105 on 2021-05-22".
func Header(game store.Game) string {
	return fmt.Sprintf("#%svs%s %d:%d on %s",
		game.AwayAbbr, game.HomeAbbr,
		game.AwayScore, game.HomeScore,
		game.GameDate.Format("2006-01-02"))
}

// Compose assembles the narrative segments in their fixed order: the
// header with the lead statistics, the team splits with the source link,
// the per-category leaderboards, and finally the injury report(s). Each
// segment is truncated to SegmentLimit runes.
func Compose(in ComposeInput) []string {
	segments := []string{composeHeader(in.Game, in.Lead)}

	if in.Splits != nil {
		segments = append(segments,
			composeSplits(*in.Splits, in.SourceURL),
			composeLeaders(in.Leaders),
		)
	} else {
		notice := "Sorry, no box scores for this game 🤷"
		if in.SourceURL != "" {
			notice += "\nSource & more data: " + in.SourceURL
		}
		segments = append(segments, notice)
	}

	segments = append(segments, composeInjuries(in.Game, in.Injuries)...)

	for i := range segments {
		segments[i] = Truncate(segments[i], SegmentLimit)
	}
	return segments
}

func composeHeader(game store.Game, lead LeadStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Header(game))
	fmt.Fprintf(&b, "Ties: %d\n", lead.Ties)
	fmt.Fprintf(&b, "Lead changes: %d\n", lead.LeadChanges)
	fmt.Fprintf(&b, "Largest lead: %d\n", lead.LargestLead)
	fmt.Fprintf(&b, "%s led: ~%s\n", game.AwayAbbr, formatLeading(lead.AwayLeading))
	fmt.Fprintf(&b, "%s led: ~%s", game.HomeAbbr, formatLeading(lead.HomeLeading))
	return b.String()
}

func composeSplits(splits TeamSplits, sourceURL string) string {
	away, home := splits.Away, splits.Home

	var b strings.Builder
	fmt.Fprintf(&b, "FG: %d of %d / %d of %d\n",
		away.FieldGoalsMade, away.FieldGoalsAttempted,
		home.FieldGoalsMade, home.FieldGoalsAttempted)
	fmt.Fprintf(&b, "3P: %d of %d / %d of %d\n",
		away.ThreePointersMade, away.ThreePointersAttempted,
		home.ThreePointersMade, home.ThreePointersAttempted)
	fmt.Fprintf(&b, "FT: %d of %d / %d of %d\n",
		away.FreeThrowsMade, away.FreeThrowsAttempted,
		home.FreeThrowsMade, home.FreeThrowsAttempted)
	fmt.Fprintf(&b, "DRB: %d of %d / %d of %d\n",
		away.DefensiveRebounds, away.DefensiveRebounds+away.OffensiveRebounds,
		home.DefensiveRebounds, home.DefensiveRebounds+home.OffensiveRebounds)
	fmt.Fprintf(&b, "AST: %d / %d\n", away.Assists, home.Assists)
	fmt.Fprintf(&b, "STL: %d / %d\n", away.Steals, home.Steals)
	fmt.Fprintf(&b, "BLK: %d / %d\n", away.Blocks, home.Blocks)
	fmt.Fprintf(&b, "TOV: %d / %d\n", away.Turnovers, home.Turnovers)
	fmt.Fprintf(&b, "PF: %d / %d", away.PersonalFouls, home.PersonalFouls)
	if sourceURL != "" {
		fmt.Fprintf(&b, "\nSource & more data: %s", sourceURL)
	}
	return b.String()
}

func composeLeaders(boards []CategoryLeaders) string {
	lines := make([]string, 0, len(boards))
	for _, board := range boards {
		entries := make([]string, 0, len(board.Leaders))
		for _, entry := range board.Leaders {
			entries = append(entries, fmt.Sprintf("%s %d", entry.Player, entry.Value))
		}
		lines = append(lines, fmt.Sprintf("%s: %s", board.Category, strings.Join(entries, ", ")))
	}
	return strings.Join(lines, "\n")
}

// composeInjuries builds one segment per team, merged into one when both
// fit a single segment together.
func composeInjuries(game store.Game, injuries []store.InjuryEntry) []string {
	var segments []string
	for _, team := range []string{game.AwayAbbr, game.HomeAbbr} {
		var lines []string
		for _, injury := range injuries {
			if injury.Team != team {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s %s %s %s",
				ShortenName(FoldAccents(injury.Player)),
				injury.Status,
				injury.Date.Format("2006-01-02"),
				injury.Description))
		}
		if len(lines) > 0 {
			segments = append(segments, team+":\n"+strings.Join(lines, "\n"))
		}
	}

	if len(segments) == 2 && len([]rune(segments[0]))+len([]rune(segments[1])) <= SegmentLimit-1 {
		segments = []string{segments[0] + "\n" + segments[1]}
	}
	return segments
}

// Truncate hard-truncates s to at most limit runes.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func formatMinSec(totalSeconds int) string {
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}

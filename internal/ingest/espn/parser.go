package espn

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fortuna/courtside/internal/store"
)

// ESPN stat labels for dynamic parsing (more robust than hardcoded indices)
const (
	statLabelPoints = "PTS"
	statLabelOffReb = "OREB"
	statLabelDefReb = "DREB"
	statLabelReb    = "REB"
	statLabelAst    = "AST"
	statLabelStl    = "STL"
	statLabelBlk    = "BLK"
	statLabelTO     = "TO"
	statLabelFG     = "FG"  // Format: "X-Y"
	statLabel3PT    = "3PT" // Format: "X-Y"
	statLabelFT     = "FT"  // Format: "X-Y"
	statLabelPF     = "PF"
)

// ParseScoreboardGames extracts the completed games from a scoreboard
// response.
func ParseScoreboardGames(scoreboardData map[string]interface{}, date time.Time) []store.Game {
	events := extractArray(scoreboardData, "events")

	var games []store.Game
	for _, eventInterface := range events {
		event, ok := eventInterface.(map[string]interface{})
		if !ok {
			continue
		}
		game, err := parseGameFromEvent(event, date)
		if err != nil {
			fmt.Printf("[espn-parser] Warning: Skipping game %s: %v\n", extractString(event, "id"), err)
			continue
		}
		if game.Status != "final" {
			continue
		}
		games = append(games, *game)
	}

	return games
}

func parseGameFromEvent(event map[string]interface{}, date time.Time) (*store.Game, error) {
	game := &store.Game{
		GameID:   extractString(event, "id"),
		GameDate: date,
	}

	status := extractMap(event, "status")
	statusType := extractMap(status, "type")
	if completed, ok := statusType["completed"].(bool); ok && completed {
		game.Status = "final"
	} else {
		game.Status = extractString(statusType, "state")
	}

	competitions := extractArray(event, "competitions")
	if len(competitions) == 0 {
		return nil, fmt.Errorf("no competitions found")
	}
	comp, _ := competitions[0].(map[string]interface{})
	competitors := extractArray(comp, "competitors")
	if len(competitors) < 2 {
		return nil, fmt.Errorf("insufficient competitors")
	}

	for _, compInterface := range competitors {
		competitor, ok := compInterface.(map[string]interface{})
		if !ok {
			continue
		}
		team := extractMap(competitor, "team")
		abbr := strings.ToUpper(extractString(team, "abbreviation"))
		name := extractString(team, "displayName")
		score := extractInt(competitor, "score")

		switch extractString(competitor, "homeAway") {
		case "home":
			game.HomeTeam, game.HomeAbbr, game.HomeScore = name, abbr, score
		case "away":
			game.AwayTeam, game.AwayAbbr, game.AwayScore = name, abbr, score
		}
	}

	if game.HomeAbbr == "" || game.AwayAbbr == "" {
		return nil, fmt.Errorf("missing home/away competitor")
	}
	return game, nil
}

// ParsePlays extracts the play-by-play rows from a game summary.
func ParsePlays(summaryData map[string]interface{}) []store.PlayByPlayEvent {
	plays := extractArray(summaryData, "plays")

	events := make([]store.PlayByPlayEvent, 0, len(plays))
	for _, playInterface := range plays {
		play, ok := playInterface.(map[string]interface{})
		if !ok {
			continue
		}
		event := store.PlayByPlayEvent{
			Period:    extractInt(extractMap(play, "period"), "number"),
			Clock:     extractString(extractMap(play, "clock"), "displayValue"),
			AwayScore: extractInt(play, "awayScore"),
			HomeScore: extractInt(play, "homeScore"),
		}
		if event.Clock == "" {
			continue
		}
		events = append(events, event)
	}

	return events
}

// ParseBoxScores extracts both teams' box scores from a game summary.
// ESPN does not report a totals row, so totals are summed from the
// individual lines.
func ParseBoxScores(summaryData map[string]interface{}) map[string]*store.BoxScore {
	boxscore := extractMap(summaryData, "boxscore")
	playersData := extractArray(boxscore, "players")
	if len(playersData) == 0 {
		playersData = extractArray(boxscore, "teams")
	}

	boxes := make(map[string]*store.BoxScore)
	for _, teamDataInterface := range playersData {
		teamData, ok := teamDataInterface.(map[string]interface{})
		if !ok {
			continue
		}
		team := extractMap(teamData, "team")
		teamAbbr := strings.ToUpper(extractString(team, "abbreviation"))

		statistics := extractArray(teamData, "statistics")
		if len(statistics) == 0 {
			continue
		}
		statGroup, _ := statistics[0].(map[string]interface{})

		// Build stat name -> index mapping for dynamic parsing
		statIndexMap := make(map[string]int)
		for i, nameInterface := range extractArray(statGroup, "names") {
			if name, ok := nameInterface.(string); ok {
				statIndexMap[name] = i
			}
		}

		box := &store.BoxScore{Team: teamAbbr}
		box.Totals = store.PlayerGameLine{Player: "Team Totals", Team: teamAbbr}

		for _, athleteInterface := range extractArray(statGroup, "athletes") {
			athleteData, ok := athleteInterface.(map[string]interface{})
			if !ok {
				continue
			}
			line := parsePlayerLine(athleteData, teamAbbr, statIndexMap)
			if line == nil {
				continue
			}
			box.Players = append(box.Players, *line)
			if line.Played() {
				addToTotals(&box.Totals, *line)
			}
		}

		boxes[teamAbbr] = box
	}

	return boxes
}

func parsePlayerLine(athleteData map[string]interface{}, teamAbbr string, statIndexMap map[string]int) *store.PlayerGameLine {
	athlete := extractMap(athleteData, "athlete")
	name := extractString(athlete, "displayName")
	if name == "" {
		name = extractString(athlete, "shortName")
	}
	if name == "" {
		return nil
	}

	line := &store.PlayerGameLine{Player: name, Team: teamAbbr}

	if didNotPlay, ok := athleteData["didNotPlay"].(bool); ok && didNotPlay {
		line.Status = store.StatusDidNotPlay
		return line
	}
	line.Status = store.StatusPlayed

	stats := extractArray(athleteData, "stats")
	getStat := func(label string) string {
		if idx, ok := statIndexMap[label]; ok && idx < len(stats) {
			return fmt.Sprint(stats[idx])
		}
		return ""
	}

	line.Points = atoiStat(getStat(statLabelPoints))
	line.Rebounds = atoiStat(getStat(statLabelReb))
	line.OffensiveRebounds = atoiStat(getStat(statLabelOffReb))
	line.DefensiveRebounds = atoiStat(getStat(statLabelDefReb))
	line.Assists = atoiStat(getStat(statLabelAst))
	line.Steals = atoiStat(getStat(statLabelStl))
	line.Blocks = atoiStat(getStat(statLabelBlk))
	line.Turnovers = atoiStat(getStat(statLabelTO))
	line.PersonalFouls = atoiStat(getStat(statLabelPF))

	fg := parseShotFormat(getStat(statLabelFG))
	line.FieldGoalsMade, line.FieldGoalsAttempted = fg[0], fg[1]
	tp := parseShotFormat(getStat(statLabel3PT))
	line.ThreePointersMade, line.ThreePointersAttempted = tp[0], tp[1]
	ft := parseShotFormat(getStat(statLabelFT))
	line.FreeThrowsMade, line.FreeThrowsAttempted = ft[0], ft[1]

	return line
}

func addToTotals(totals *store.PlayerGameLine, line store.PlayerGameLine) {
	totals.Points += line.Points
	totals.Rebounds += line.Rebounds
	totals.OffensiveRebounds += line.OffensiveRebounds
	totals.DefensiveRebounds += line.DefensiveRebounds
	totals.Assists += line.Assists
	totals.Steals += line.Steals
	totals.Blocks += line.Blocks
	totals.Turnovers += line.Turnovers
	totals.PersonalFouls += line.PersonalFouls
	totals.FieldGoalsMade += line.FieldGoalsMade
	totals.FieldGoalsAttempted += line.FieldGoalsAttempted
	totals.ThreePointersMade += line.ThreePointersMade
	totals.ThreePointersAttempted += line.ThreePointersAttempted
	totals.FreeThrowsMade += line.FreeThrowsMade
	totals.FreeThrowsAttempted += line.FreeThrowsAttempted
}

func extractString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

func extractInt(m map[string]interface{}, key string) int {
	if v, ok := m[key]; ok {
		return parseInt(v)
	}
	return 0
}

func extractMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key]; ok {
		if mapVal, ok := v.(map[string]interface{}); ok {
			return mapVal
		}
	}
	return map[string]interface{}{}
}

func extractArray(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key]; ok {
		if arrVal, ok := v.([]interface{}); ok {
			return arrVal
		}
	}
	return []interface{}{}
}

// parseInt handles the mix of float64 and string numbers the ESPN API
// serves.
func parseInt(v interface{}) int {
	switch value := v.(type) {
	case float64:
		return int(value)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return 0
}

func atoiStat(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

// parseShotFormat splits "X-Y" made-attempted strings.
func parseShotFormat(shotStr string) [2]int {
	parts := strings.Split(shotStr, "-")
	if len(parts) != 2 {
		return [2]int{}
	}
	made, _ := strconv.Atoi(strings.TrimSpace(parts[0]))
	attempted, _ := strconv.Atoi(strings.TrimSpace(parts[1]))
	return [2]int{made, attempted}
}

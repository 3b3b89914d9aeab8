package bref

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/fortuna/courtside/internal/store"
)

// ParseScoreboard extracts the finished games from a daily scores page.
// The home side is identified by the abbreviation baked into the box
// score link (".../202105220LAL.html"), not by row order.
func ParseScoreboard(doc *goquery.Document, date time.Time) []store.Game {
	var games []store.Game

	doc.Find("div.game_summary").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Find("td.gamelink a").First().Attr("href")
		gameID := gameIDFromHref(href)
		if gameID == "" {
			return
		}

		type teamRow struct {
			name  string
			abbr  string
			score int
		}
		var rows []teamRow
		s.Find("table.teams tbody tr").Each(func(_ int, tr *goquery.Selection) {
			link := tr.Find("td a").First()
			name := strings.TrimSpace(link.Text())
			if name == "" {
				return
			}
			abbr := abbrFromTeamHref(link.AttrOr("href", ""))
			if abbr == "" {
				abbr = AbbrFor(name)
			}
			score, _ := strconv.Atoi(strings.TrimSpace(tr.Find("td.right").First().Text()))
			rows = append(rows, teamRow{name: name, abbr: abbr, score: score})
		})
		if len(rows) != 2 {
			return
		}

		home, away := rows[1], rows[0]
		if homeAbbr := homeAbbrFromGameID(gameID); rows[0].abbr == homeAbbr {
			home, away = rows[0], rows[1]
		}

		games = append(games, store.Game{
			GameID:    gameID,
			GameDate:  date,
			AwayTeam:  away.name,
			HomeTeam:  home.name,
			AwayAbbr:  away.abbr,
			HomeAbbr:  home.abbr,
			AwayScore: away.score,
			HomeScore: home.score,
			Status:    "final",
		})
	})

	return games
}

var scoreCellRe = regexp.MustCompile(`^(\d+)-(\d+)$`)

// ParsePlayByPlay extracts the play-by-play rows. Period headers ("Start
// of 2nd quarter", "Start of 1st overtime") advance the period counter;
// rows without a score cell carry the previous cumulative score forward.
func ParsePlayByPlay(doc *goquery.Document) []store.PlayByPlayEvent {
	var events []store.PlayByPlayEvent
	period := 0
	lastAway, lastHome := 0, 0

	doc.Find("table#pbp tr").Each(func(_ int, tr *goquery.Selection) {
		if th := tr.Find("th"); th.Length() > 0 {
			if strings.Contains(strings.ToLower(th.First().Text()), "start of") {
				period++
			}
			return
		}

		cells := tr.Find("td")
		if cells.Length() < 2 {
			return
		}
		clock := strings.TrimSpace(cells.Eq(0).Text())
		if !strings.Contains(clock, ":") {
			return
		}

		cells.EachWithBreak(func(_ int, cell *goquery.Selection) bool {
			m := scoreCellRe.FindStringSubmatch(strings.TrimSpace(cell.Text()))
			if m == nil {
				return true
			}
			lastAway, _ = strconv.Atoi(m[1])
			lastHome, _ = strconv.Atoi(m[2])
			return false
		})

		p := period
		if p == 0 {
			p = 1
		}
		events = append(events, store.PlayByPlayEvent{
			Period:    p,
			Clock:     clock,
			AwayScore: lastAway,
			HomeScore: lastHome,
		})
	})

	return events
}

// ParseBoxScore extracts one team's basic box score table, individual
// lines plus the totals row.
func ParseBoxScore(doc *goquery.Document, abbr string) (*store.BoxScore, error) {
	table := doc.Find("table#box-" + abbr + "-game-basic")
	if table.Length() == 0 {
		return nil, fmt.Errorf("no box score table for %s", abbr)
	}

	box := &store.BoxScore{Team: abbr}

	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.HasClass("thead") {
			// "Reserves" separator row
			return
		}
		name := strings.TrimSpace(tr.Find("th[data-stat=player]").Text())
		if name == "" || name == "Team Totals" {
			return
		}

		line := store.PlayerGameLine{Player: name, Team: abbr}
		if reason := tr.Find("td[data-stat=reason]"); reason.Length() > 0 {
			line.Status = statusFromReason(reason.Text())
			box.Players = append(box.Players, line)
			return
		}

		line.Status = store.StatusPlayed
		fillStatLine(&line, tr)
		box.Players = append(box.Players, line)
	})

	totalsRow := table.Find("tfoot tr").First()
	if totalsRow.Length() > 0 {
		box.Totals = store.PlayerGameLine{Player: "Team Totals", Team: abbr}
		fillStatLine(&box.Totals, totalsRow)
	}

	return box, nil
}

func fillStatLine(line *store.PlayerGameLine, tr *goquery.Selection) {
	line.Points = statInt(tr, "pts")
	line.Rebounds = statInt(tr, "trb")
	line.OffensiveRebounds = statInt(tr, "orb")
	line.DefensiveRebounds = statInt(tr, "drb")
	line.Assists = statInt(tr, "ast")
	line.Steals = statInt(tr, "stl")
	line.Blocks = statInt(tr, "blk")
	line.Turnovers = statInt(tr, "tov")
	line.PersonalFouls = statInt(tr, "pf")
	line.FieldGoalsMade = statInt(tr, "fg")
	line.FieldGoalsAttempted = statInt(tr, "fga")
	line.ThreePointersMade = statInt(tr, "fg3")
	line.ThreePointersAttempted = statInt(tr, "fg3a")
	line.FreeThrowsMade = statInt(tr, "ft")
	line.FreeThrowsAttempted = statInt(tr, "fta")
}

func statInt(tr *goquery.Selection, stat string) int {
	value, _ := strconv.Atoi(strings.TrimSpace(tr.Find("td[data-stat=" + stat + "]").Text()))
	return value
}

func statusFromReason(reason string) string {
	if strings.Contains(strings.ToLower(reason), "suspen") {
		return store.StatusSuspended
	}
	return store.StatusDidNotPlay
}

var shotStyleRe = regexp.MustCompile(`top:\s*(-?\d+)px;\s*left:\s*(-?\d+)px`)

// ParseShotChart extracts both teams' shot attempts from the shot-chart
// page. The widget positions shots in tenths of feet: left runs across
// the 50ft baseline, top runs downcourt from the baseline. Coordinates
// stay as feet strings; the narrative engine owns coercion and
// calibration.
func ParseShotChart(doc *goquery.Document, abbrs ...string) []store.ShotAttempt {
	var shots []store.ShotAttempt

	for _, abbr := range abbrs {
		doc.Find("div#shots-" + abbr + " div.tooltip").Each(func(_ int, s *goquery.Selection) {
			m := shotStyleRe.FindStringSubmatch(s.AttrOr("style", ""))
			if m == nil {
				return
			}
			top, _ := strconv.Atoi(m[1])
			left, _ := strconv.Atoi(m[2])

			value := 2
			if strings.Contains(s.AttrOr("tip", ""), "3-pointer") {
				value = 3
			}

			shots = append(shots, store.ShotAttempt{
				Team:  abbr,
				RawX:  fmt.Sprintf("%.1f ft", float64(left)/10),
				RawY:  fmt.Sprintf("%.1f ft", float64(top)/10),
				Value: value,
				Made:  s.HasClass("make"),
			})
		})
	}

	return shots
}

var injuryNoteRe = regexp.MustCompile(`^([^(]+)\(([^)]*)\)`)

// ParseInjuries extracts the league injury report.
func ParseInjuries(doc *goquery.Document) []store.InjuryEntry {
	var injuries []store.InjuryEntry

	doc.Find("table#injuries tbody tr").Each(func(_ int, tr *goquery.Selection) {
		player := strings.TrimSpace(tr.Find("th[data-stat=player]").Text())
		if player == "" {
			return
		}

		entry := store.InjuryEntry{
			Player: player,
			Team:   AbbrFor(tr.Find("td[data-stat=team_name]").Text()),
		}
		if date, err := time.Parse("Mon, Jan 2, 2006", strings.TrimSpace(tr.Find("td[data-stat=date_update]").Text())); err == nil {
			entry.Date = date
		}

		note := strings.TrimSpace(tr.Find("td[data-stat=note]").Text())
		if m := injuryNoteRe.FindStringSubmatch(note); m != nil {
			entry.Status = strings.TrimSpace(m[1])
			entry.Description = strings.TrimSpace(m[2])
		} else {
			entry.Description = note
		}

		injuries = append(injuries, entry)
	})

	return injuries
}

func gameIDFromHref(href string) string {
	if href == "" {
		return ""
	}
	parts := strings.Split(strings.TrimSuffix(href, ".html"), "/")
	return parts[len(parts)-1]
}

// homeAbbrFromGameID pulls the home abbreviation out of an id like
// "202105220LAL".
func homeAbbrFromGameID(gameID string) string {
	if len(gameID) < 12 {
		return ""
	}
	return gameID[9:]
}

// abbrFromTeamHref extracts an abbreviation from "/teams/BOS/2021.html".
func abbrFromTeamHref(href string) string {
	parts := strings.Split(href, "/")
	for i, part := range parts {
		if part == "teams" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

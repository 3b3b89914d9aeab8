package bref

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/courtside/internal/store"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

const scoreboardHTML = `
<div class="game_summary expanded final">
  <table class="teams">
    <tbody>
      <tr class="loser">
        <td><a href="/teams/BOS/2021.html">Boston Celtics</a></td>
        <td class="right">108</td>
      </tr>
      <tr class="winner">
        <td><a href="/teams/LAL/2021.html">Los Angeles Lakers</a></td>
        <td class="right">112</td>
      </tr>
    </tbody>
  </table>
  <table class="stats_table"><tbody><tr>
    <td class="gamelink"><a href="/boxscores/202105220LAL.html">Final</a></td>
  </tr></tbody></table>
</div>
<div class="game_summary">
  <table class="teams"><tbody>
    <tr><td><a href="/teams/PHO/2021.html">Phoenix Suns</a></td><td class="right">99</td></tr>
  </tbody></table>
</div>`

func TestParseScoreboard(t *testing.T) {
	date := time.Date(2021, 5, 22, 0, 0, 0, 0, time.UTC)
	games := ParseScoreboard(docFromHTML(t, scoreboardHTML), date)

	// The summary without a box score link is dropped.
	require.Len(t, games, 1)

	game := games[0]
	assert.Equal(t, "202105220LAL", game.GameID)
	assert.Equal(t, "Boston Celtics", game.AwayTeam)
	assert.Equal(t, "Los Angeles Lakers", game.HomeTeam)
	assert.Equal(t, "BOS", game.AwayAbbr)
	assert.Equal(t, "LAL", game.HomeAbbr)
	assert.Equal(t, 108, game.AwayScore)
	assert.Equal(t, 112, game.HomeScore)
	assert.Equal(t, "final", game.Status)
	assert.Equal(t, date, game.GameDate)
}

func TestParseScoreboardHomeListedFirst(t *testing.T) {
	// Row order does not decide home court, the game id suffix does.
	html := strings.Replace(scoreboardHTML,
		`<tr class="loser">
        <td><a href="/teams/BOS/2021.html">Boston Celtics</a></td>
        <td class="right">108</td>
      </tr>
      <tr class="winner">
        <td><a href="/teams/LAL/2021.html">Los Angeles Lakers</a></td>
        <td class="right">112</td>
      </tr>`,
		`<tr class="winner">
        <td><a href="/teams/LAL/2021.html">Los Angeles Lakers</a></td>
        <td class="right">112</td>
      </tr>
      <tr class="loser">
        <td><a href="/teams/BOS/2021.html">Boston Celtics</a></td>
        <td class="right">108</td>
      </tr>`, 1)

	games := ParseScoreboard(docFromHTML(t, html), time.Now())
	require.Len(t, games, 1)
	assert.Equal(t, "LAL", games[0].HomeAbbr)
	assert.Equal(t, "BOS", games[0].AwayAbbr)
}

const pbpHTML = `
<table id="pbp">
  <tr><th colspan="6">1st Q</th></tr>
  <tr><th colspan="6">Start of 1st quarter</th></tr>
  <tr><td>12:00.0</td><td>Jump ball</td></tr>
  <tr><td>11:42.0</td><td>J. Tatum makes 2-pt shot</td><td>+2</td><td>2-0</td><td></td><td></td></tr>
  <tr><td>11:20.0</td><td>Timeout</td></tr>
  <tr><th colspan="6">Start of 2nd quarter</th></tr>
  <tr><td>12:00.0</td><td></td><td></td><td>2-0</td><td></td><td></td></tr>
  <tr><td>11:30.0</td><td></td><td></td><td>2-3</td><td></td><td></td></tr>
</table>`

func TestParsePlayByPlay(t *testing.T) {
	events := ParsePlayByPlay(docFromHTML(t, pbpHTML))
	require.Len(t, events, 5)

	// Scoreless rows carry the running score forward.
	assert.Equal(t, store.PlayByPlayEvent{Period: 1, Clock: "12:00.0", AwayScore: 0, HomeScore: 0}, events[0])
	assert.Equal(t, store.PlayByPlayEvent{Period: 1, Clock: "11:42.0", AwayScore: 2, HomeScore: 0}, events[1])
	assert.Equal(t, store.PlayByPlayEvent{Period: 1, Clock: "11:20.0", AwayScore: 2, HomeScore: 0}, events[2])

	// The "Start of 2nd quarter" header advances the period.
	assert.Equal(t, 2, events[3].Period)
	assert.Equal(t, store.PlayByPlayEvent{Period: 2, Clock: "11:30.0", AwayScore: 2, HomeScore: 3}, events[4])
}

const boxHTML = `
<table id="box-BOS-game-basic">
  <tbody>
    <tr><th data-stat="player">Jayson Tatum</th>
      <td data-stat="pts">36</td><td data-stat="trb">9</td><td data-stat="orb">1</td>
      <td data-stat="drb">8</td><td data-stat="ast">5</td><td data-stat="stl">2</td>
      <td data-stat="blk">1</td><td data-stat="tov">3</td><td data-stat="pf">2</td>
      <td data-stat="fg">12</td><td data-stat="fga">24</td><td data-stat="fg3">4</td>
      <td data-stat="fg3a">9</td><td data-stat="ft">8</td><td data-stat="fta">8</td></tr>
    <tr class="thead"><th data-stat="player">Reserves</th></tr>
    <tr><th data-stat="player">Romeo Langford</th>
      <td data-stat="reason" colspan="15">Did Not Play</td></tr>
  </tbody>
  <tfoot>
    <tr><th data-stat="player">Team Totals</th>
      <td data-stat="pts">108</td><td data-stat="trb">44</td><td data-stat="orb">10</td>
      <td data-stat="drb">34</td><td data-stat="ast">21</td><td data-stat="stl">7</td>
      <td data-stat="blk">4</td><td data-stat="tov">12</td><td data-stat="pf">19</td>
      <td data-stat="fg">40</td><td data-stat="fga">88</td><td data-stat="fg3">12</td>
      <td data-stat="fg3a">35</td><td data-stat="ft">16</td><td data-stat="fta">20</td></tr>
  </tfoot>
</table>`

func TestParseBoxScore(t *testing.T) {
	box, err := ParseBoxScore(docFromHTML(t, boxHTML), "BOS")
	require.NoError(t, err)

	require.Len(t, box.Players, 2)

	tatum := box.Players[0]
	assert.Equal(t, "Jayson Tatum", tatum.Player)
	assert.Equal(t, store.StatusPlayed, tatum.Status)
	assert.Equal(t, 36, tatum.Points)
	assert.Equal(t, 9, tatum.Rebounds)
	assert.Equal(t, 1, tatum.OffensiveRebounds)
	assert.Equal(t, 4, tatum.ThreePointersMade)
	assert.True(t, tatum.Played())

	langford := box.Players[1]
	assert.Equal(t, store.StatusDidNotPlay, langford.Status)
	assert.False(t, langford.Played())

	assert.Equal(t, 108, box.Totals.Points)
	assert.Equal(t, 34, box.Totals.DefensiveRebounds)
	assert.Equal(t, 40, box.Totals.FieldGoalsMade)
}

func TestParseBoxScoreMissingTable(t *testing.T) {
	_, err := ParseBoxScore(docFromHTML(t, boxHTML), "LAL")
	assert.Error(t, err)
}

func TestParseBoxScoreSuspension(t *testing.T) {
	html := strings.Replace(boxHTML, "Did Not Play", "Player Suspended", 1)
	box, err := ParseBoxScore(docFromHTML(t, html), "BOS")
	require.NoError(t, err)
	assert.Equal(t, store.StatusSuspended, box.Players[1].Status)
}

const shotChartHTML = `
<div id="shots-BOS">
  <div class="tooltip make" style="top: 52px; left: 250px;" tip="Jayson Tatum makes 3-pointer from 25 ft"></div>
  <div class="tooltip miss" style="top: 30px; left: 248px;" tip="Marcus Smart misses 2-pointer from 1 ft"></div>
  <div class="tooltip miss" tip="no position data"></div>
</div>
<div id="shots-LAL">
  <div class="tooltip make" style="top: 239px; left: 30px;" tip="LeBron James makes 3-pointer from 24 ft"></div>
</div>`

func TestParseShotChart(t *testing.T) {
	shots := ParseShotChart(docFromHTML(t, shotChartHTML), "BOS", "LAL")
	require.Len(t, shots, 3)

	assert.Equal(t, store.ShotAttempt{
		Team: "BOS", RawX: "25.0 ft", RawY: "5.2 ft", Value: 3, Made: true,
	}, shots[0])
	assert.Equal(t, store.ShotAttempt{
		Team: "BOS", RawX: "24.8 ft", RawY: "3.0 ft", Value: 2, Made: false,
	}, shots[1])
	assert.Equal(t, store.ShotAttempt{
		Team: "LAL", RawX: "3.0 ft", RawY: "23.9 ft", Value: 3, Made: true,
	}, shots[2])
}

const injuriesHTML = `
<table id="injuries">
  <tbody>
    <tr>
      <th data-stat="player">Jaylen Brown</th>
      <td data-stat="team_name">Boston Celtics</td>
      <td data-stat="date_update">Sat, May 22, 2021</td>
      <td data-stat="note">Out (Wrist) - Underwent surgery</td>
    </tr>
    <tr>
      <th data-stat="player">Anthony Davis</th>
      <td data-stat="team_name">Los Angeles Lakers</td>
      <td data-stat="date_update">not a date</td>
      <td data-stat="note">Day to day</td>
    </tr>
  </tbody>
</table>`

func TestParseInjuries(t *testing.T) {
	injuries := ParseInjuries(docFromHTML(t, injuriesHTML))
	require.Len(t, injuries, 2)

	brown := injuries[0]
	assert.Equal(t, "Jaylen Brown", brown.Player)
	assert.Equal(t, "BOS", brown.Team)
	assert.Equal(t, "Out", brown.Status)
	assert.Equal(t, "Wrist", brown.Description)
	assert.Equal(t, time.Date(2021, 5, 22, 0, 0, 0, 0, time.UTC), brown.Date)

	// Notes without a parenthesized status land in the description.
	davis := injuries[1]
	assert.Equal(t, "", davis.Status)
	assert.Equal(t, "Day to day", davis.Description)
	assert.True(t, davis.Date.IsZero())
}

func TestHomeAbbrFromGameID(t *testing.T) {
	assert.Equal(t, "LAL", homeAbbrFromGameID("202105220LAL"))
	assert.Equal(t, "", homeAbbrFromGameID("short"))
}

func TestAbbrFromTeamHref(t *testing.T) {
	assert.Equal(t, "BOS", abbrFromTeamHref("/teams/BOS/2021.html"))
	assert.Equal(t, "", abbrFromTeamHref("/players/t/tatumja01.html"))
}

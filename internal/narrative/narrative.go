// Package narrative derives a compact post-game narrative from one
// finished game's raw event records: a score-over-time series, lead
// statistics, a calibrated shot chart and per-category leaderboards,
// composed into bounded text segments. The whole package is a pure,
// stateless transformation; fetching and posting live elsewhere.
package narrative

import (
	"errors"

	"github.com/fortuna/courtside/internal/store"
)

// ErrNoData means the input set was completely empty and no narrative
// can be derived at all. Partially missing inputs degrade instead.
var ErrNoData = errors.New("narrative: no game data")

// GameData is the normalized input bundle a provider hands the engine.
// Any field but Game may be absent.
type GameData struct {
	Game       store.Game
	PlayByPlay []store.PlayByPlayEvent
	AwayBox    *store.BoxScore
	HomeBox    *store.BoxScore
	Shots      []store.ShotAttempt
	Injuries   []store.InjuryEntry
	SourceURL  string
}

// GameNarrative is the derived summary for one game.
type GameNarrative struct {
	Game         store.Game        `json:"game"`
	Timeline     []TimedEvent      `json:"timeline"`
	PeriodPauses []float64         `json:"period_pauses"`
	Lead         LeadStats         `json:"lead"`
	Splits       *TeamSplits       `json:"splits,omitempty"`
	Leaders      []CategoryLeaders `json:"leaders,omitempty"`
	Shots        []NormalizedShot  `json:"shots,omitempty"`
	Segments     []string          `json:"segments"`
}

// TotalMinutes is the game's full elapsed duration on the normalized axis.
func (n *GameNarrative) TotalMinutes() float64 {
	if len(n.Timeline) == 0 {
		return 0
	}
	return n.Timeline[len(n.Timeline)-1].ElapsedMinutes
}

// Build derives the full narrative for one game. A missing box score or
// shot set degrades the affected segments; only a completely empty input
// bundle returns ErrNoData.
func Build(data GameData) (*GameNarrative, error) {
	if len(data.PlayByPlay) == 0 && data.AwayBox == nil && data.HomeBox == nil && len(data.Shots) == 0 {
		return nil, ErrNoData
	}

	timeline := NormalizeTimeline(data.PlayByPlay)
	lead := AnalyzeLead(timeline)
	shots := NormalizeShots(data.Shots)

	var splits *TeamSplits
	var leaders []CategoryLeaders
	if data.AwayBox != nil && data.HomeBox != nil {
		splits = &TeamSplits{Away: data.AwayBox.Totals, Home: data.HomeBox.Totals}
		lines := make([]store.PlayerGameLine, 0, len(data.AwayBox.Players)+len(data.HomeBox.Players))
		lines = append(lines, data.AwayBox.Players...)
		lines = append(lines, data.HomeBox.Players...)
		leaders = TopPerformers(lines)
	}

	result := &GameNarrative{
		Game:     data.Game,
		Timeline: timeline,
		Lead:     lead,
		Splits:   splits,
		Leaders:  leaders,
		Shots:    shots,
	}
	result.PeriodPauses = PeriodPauses(result.TotalMinutes())
	result.Segments = Compose(ComposeInput{
		Game:      data.Game,
		Lead:      lead,
		Splits:    splits,
		Leaders:   leaders,
		Injuries:  data.Injuries,
		SourceURL: data.SourceURL,
	})

	return result, nil
}

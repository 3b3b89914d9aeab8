package narrative

import (
	"strconv"
	"strings"

	"github.com/fortuna/courtside/internal/store"
)

// TimedEvent is one play-by-play row placed on a single elapsed-game-time
// axis spanning all periods and overtimes.
type TimedEvent struct {
	ElapsedMinutes float64 `json:"elapsed_minutes"`
	AwayScore      int     `json:"away_score"`
	HomeScore      int     `json:"home_score"`
}

// NormalizeTimeline converts per-period countdown clocks into a monotonic
// elapsed-time axis. Within a period the clock counts down; an upward jump
// means a period rolled over and contributes zero elapsed time. Only the
// decrease between consecutive clocks advances the axis, so the fold works
// for any number of overtimes without period-length constants. Rows whose
// clock fails to parse are dropped.
func NormalizeTimeline(events []store.PlayByPlayEvent) []TimedEvent {
	timed := make([]TimedEvent, 0, len(events))

	var prevRemaining, elapsed float64
	first := true
	for _, ev := range events {
		remaining, err := parseClock(ev.Clock)
		if err != nil {
			continue
		}

		if first {
			first = false
		} else if delta := remaining - prevRemaining; delta < 0 {
			elapsed -= delta / 60.0
		}
		prevRemaining = remaining

		timed = append(timed, TimedEvent{
			ElapsedMinutes: elapsed,
			AwayScore:      ev.AwayScore,
			HomeScore:      ev.HomeScore,
		})
	}

	return timed
}

// parseClock converts "MM:SS" or "MM:SS.t" to seconds remaining. ESPN
// serves sub-minute clocks as bare seconds ("44.9"); anything colonless
// at or above a minute is treated as garbage.
func parseClock(clock string) (float64, error) {
	clock = strings.TrimSpace(clock)
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) == 1 {
		seconds, err := strconv.ParseFloat(clock, 64)
		if err != nil {
			return 0, err
		}
		if seconds >= 60 {
			return 0, strconv.ErrRange
		}
		return seconds, nil
	}
	minutes, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	seconds, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, err
	}
	return float64(minutes)*60 + seconds, nil
}

// Regulation quarters end at 12/24/36/48 minutes; each overtime adds five.
var periodPauses = []float64{12, 24, 36, 48, 53, 58, 63, 68, 73, 78, 83}

// PeriodPauses returns the period-break marks that fall inside a game of
// the given total length, for annotating a score chart.
func PeriodPauses(totalMinutes float64) []float64 {
	var pauses []float64
	for _, pause := range periodPauses {
		if pause < totalMinutes {
			pauses = append(pauses, pause)
		}
	}
	return pauses
}

package narrative

import (
	"math"
	"strconv"
	"strings"

	"github.com/fortuna/courtside/internal/store"
)

// Canonical shot-space geometry. Shots live on one half court: x runs
// across the 50-unit baseline, y runs from the baseline toward half court.
const (
	CourtWidth       = 50.0
	HalfCourtLength  = 47.0
	HoopX            = 25.0  // center of the baseline
	HoopY            = 5.25  // hoop distance from the baseline
	ThreePointRadius = 23.75 // arc radius above the corners
	cornerMaxY       = 14.0  // corner threes sit below this y
	cornerOffsetX    = 3.0   // true corner-line distance from the sideline
	cornerSpanX      = 44.0  // true corner-to-corner distance
)

// NormalizedShot is a shot attempt rescaled into the canonical half-court
// system.
type NormalizedShot struct {
	Team   string  `json:"team"`
	Player string  `json:"player,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Value  int     `json:"value"`
	Made   bool    `json:"made"`
}

// NormalizeShots coerces raw provider coordinates and corrects their drift
// using court geometry: corner threes anchor where the corner three-point
// line really sits in the raw data, and the closest above-corner three
// anchors the arc radius, since no three-point attempt can be closer to
// the hoop than the line itself. Shots whose coordinates fail coercion are
// dropped. With no corner anchors the x pass is skipped; with no arc
// attempts the y pass is skipped.
func NormalizeShots(attempts []store.ShotAttempt) []NormalizedShot {
	shots := make([]NormalizedShot, 0, len(attempts))
	for _, att := range attempts {
		x, errX := coerceFeet(att.RawX)
		y, errY := coerceFeet(att.RawY)
		if errX != nil || errY != nil {
			continue
		}
		shots = append(shots, NormalizedShot{
			Team:   att.Team,
			Player: att.Player,
			X:      x,
			Y:      y,
			Value:  att.Value,
			Made:   att.Made,
		})
	}

	// Corner anchors: rightmost left-corner three and leftmost
	// right-corner three.
	leftCorner := math.Inf(-1)
	rightCorner := math.Inf(1)
	for _, s := range shots {
		if s.Value != 3 || s.Y >= cornerMaxY {
			continue
		}
		if s.X < HoopX && s.X > leftCorner {
			leftCorner = s.X
		}
		if s.X > HoopX && s.X < rightCorner {
			rightCorner = s.X
		}
	}
	if !math.IsInf(leftCorner, -1) && !math.IsInf(rightCorner, 1) && rightCorner > leftCorner {
		scale := cornerSpanX / (rightCorner - leftCorner)
		for i := range shots {
			shots[i].X = (shots[i].X-leftCorner)*scale + cornerOffsetX
		}
	}

	// Arc anchor: the minimum hoop distance among above-corner threes is,
	// by the geometry, at least the true radius.
	minDist := math.Inf(1)
	for _, s := range shots {
		if s.Value != 3 || s.Y <= cornerMaxY {
			continue
		}
		dist := math.Hypot(s.X-HoopX, s.Y-HoopY)
		if dist < minDist {
			minDist = dist
		}
	}
	if !math.IsInf(minDist, 1) && minDist > 0 {
		scale := ThreePointRadius / minDist
		for i := range shots {
			shots[i].Y *= scale
		}
	}

	return shots
}

// coerceFeet parses a coordinate that may carry a trailing unit suffix,
// e.g. "22.5 ft".
func coerceFeet(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "ft")
	s = strings.TrimSpace(s)
	return strconv.ParseFloat(s, 64)
}

package chart

import (
	"bytes"
	"fmt"
	"image/png"
	"math"

	"github.com/fogleman/gg"

	"github.com/fortuna/courtside/internal/narrative"
	"github.com/fortuna/courtside/internal/store"
)

// Court drawing uses feet for coordinates and scales up when rasterizing.
const (
	courtLength = 2 * narrative.HalfCourtLength
	pixelsPerFt = 10

	markerRadius = 4.0
)

// RenderShotChart draws both teams' calibrated shots on a full court as
// a PNG. The away team attacks the left basket, the home team the right.
// Makes are circles, misses are crosses.
func RenderShotChart(game store.Game, shots []narrative.NormalizedShot) ([]byte, error) {
	dc := gg.NewContext(courtLength*pixelsPerFt, narrative.CourtWidth*pixelsPerFt)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.Scale(pixelsPerFt, pixelsPerFt)

	drawCourt(dc)

	for _, shot := range shots {
		// Shot y runs from the baseline toward half court, x across the
		// court width. The home team's shots mirror onto the right half.
		var cx, cy float64
		var color string
		if shot.Team == game.AwayAbbr {
			cx, cy = shot.Y, shot.X
			color = "#1d428a"
		} else {
			cx, cy = courtLength-shot.Y, narrative.CourtWidth-shot.X
			color = "#c8102e"
		}

		dc.SetHexColor(color)
		dc.SetLineWidth(0.15)
		r := markerRadius / pixelsPerFt
		if shot.Made {
			dc.DrawCircle(cx, cy, r)
			dc.Stroke()
		} else {
			dc.DrawLine(cx-r, cy-r, cx+r, cy+r)
			dc.DrawLine(cx-r, cy+r, cx+r, cy-r)
			dc.Stroke()
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("encoding shot chart: %w", err)
	}

	return buf.Bytes(), nil
}

// drawCourt strokes the court markings for both halves
func drawCourt(dc *gg.Context) {
	dc.SetRGB(0.2, 0.2, 0.2)
	dc.SetLineWidth(0.2)

	// Boundary and half-court line
	dc.DrawRectangle(0, 0, courtLength, narrative.CourtWidth)
	dc.DrawLine(narrative.HalfCourtLength, 0, narrative.HalfCourtLength, narrative.CourtWidth)
	dc.Stroke()

	// Center circle
	dc.DrawCircle(narrative.HalfCourtLength, narrative.CourtWidth/2, 6)
	dc.Stroke()

	for _, left := range []bool{true, false} {
		drawHalf(dc, left)
	}
}

// drawHalf strokes the hoop, key and three-point line for one half
func drawHalf(dc *gg.Context, left bool) {
	hoopX := narrative.HoopY
	keyX := 0.0
	if !left {
		hoopX = courtLength - narrative.HoopY
		keyX = courtLength - 19
	}
	hoopY := float64(narrative.HoopX)

	// Hoop
	dc.DrawCircle(hoopX, hoopY, 1.5)
	dc.Stroke()

	// Key
	dc.DrawRectangle(keyX, hoopY-8, 19, 16)
	dc.Stroke()

	// Corner three lines, 3 ft in from each sideline
	lineEnd := 14.0
	x0, x1 := 0.0, lineEnd
	if !left {
		x0, x1 = courtLength-lineEnd, courtLength
	}
	dc.DrawLine(x0, hoopY-22, x1, hoopY-22)
	dc.DrawLine(x0, hoopY+22, x1, hoopY+22)
	dc.Stroke()

	// Arc between the corner lines
	r := narrative.ThreePointRadius
	halfSpan := 22.0
	a := math.Atan2(halfSpan, math.Sqrt(r*r-halfSpan*halfSpan))
	if left {
		dc.DrawArc(hoopX, hoopY, r, -a, a)
	} else {
		dc.DrawArc(hoopX, hoopY, r, math.Pi-a, math.Pi+a)
	}
	dc.Stroke()
}

// Package chart renders narrative images: the running score plot and
// the combined shot chart.
package chart

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/fortuna/courtside/internal/narrative"
	"github.com/fortuna/courtside/internal/store"
)

var (
	awayColor = drawing.Color{R: 0x1d, G: 0x42, B: 0x8a, A: 0xff}
	homeColor = drawing.Color{R: 0xc8, G: 0x10, B: 0x2e, A: 0xff}
)

// RenderScorePlot draws the running score of both teams over game time
// as a PNG. Vertical gridlines mark period breaks.
func RenderScorePlot(game store.Game, timeline []narrative.TimedEvent, pauses []float64) ([]byte, error) {
	if len(timeline) == 0 {
		return nil, fmt.Errorf("rendering score plot: empty timeline")
	}

	xs := make([]float64, len(timeline))
	away := make([]float64, len(timeline))
	home := make([]float64, len(timeline))
	for i, ev := range timeline {
		xs[i] = ev.ElapsedMinutes
		away[i] = float64(ev.AwayScore)
		home[i] = float64(ev.HomeScore)
	}

	gridlines := make([]chart.GridLine, len(pauses))
	for i, p := range pauses {
		gridlines[i] = chart.GridLine{Value: p}
	}

	graph := chart.Chart{
		Width:  900,
		Height: 500,
		XAxis: chart.XAxis{
			Name:           "Minutes played",
			GridLines:      gridlines,
			GridMajorStyle: chart.Style{StrokeColor: chart.ColorLightGray, StrokeWidth: 1.0},
		},
		YAxis: chart.YAxis{
			Name: "Points",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    fmt.Sprintf("%s, %d", game.AwayTeam, game.AwayScore),
				XValues: xs,
				YValues: away,
				Style:   chart.Style{StrokeColor: awayColor, StrokeWidth: 2.0},
			},
			chart.ContinuousSeries{
				Name:    fmt.Sprintf("%s, %d", game.HomeTeam, game.HomeScore),
				XValues: xs,
				YValues: home,
				Style:   chart.Style{StrokeColor: homeColor, StrokeWidth: 2.0},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering score plot: %w", err)
	}

	return buf.Bytes(), nil
}

package charts

import (
	"fmt"
	"io"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/models"
)

// KpSparklinePNG renders the recent Kp series as a small PNG sparkline
// with the storm threshold marked. At least two parseable samples are
// required.
func KpSparklinePNG(samples []models.Sample, w io.Writer) error {
	var xValues []time.Time
	var yValues []float64

	for _, s := range samples {
		t, err := s.Time()
		if err != nil {
			continue
		}
		xValues = append(xValues, t)
		yValues = append(yValues, s.Value)
	}

	if len(xValues) < 2 {
		return fmt.Errorf("need at least 2 samples for a sparkline, have %d", len(xValues))
	}

	mainSeries := chart.TimeSeries{
		Name: "Kp",
		Style: chart.Style{
			StrokeColor: drawing.Color{R: 51, G: 102, B: 204, A: 255},
			StrokeWidth: 2,
		},
		XValues: xValues,
		YValues: yValues,
	}

	// Storm threshold at Kp 5 (G1)
	stormLine := chart.TimeSeries{
		Name: "G1 threshold",
		Style: chart.Style{
			StrokeColor:     drawing.Color{R: 220, G: 53, B: 69, A: 200},
			StrokeWidth:     1,
			StrokeDashArray: []float64{4, 4},
		},
		XValues: []time.Time{xValues[0], xValues[len(xValues)-1]},
		YValues: []float64{5, 5},
	}

	graph := chart.Chart{
		Height: 120,
		Width:  420,
		Background: chart.Style{
			Padding: chart.Box{Top: 10, Left: 10, Right: 10, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Style: chart.Style{FontSize: 8},
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(time.Time); ok {
					return t.Format("15:04")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Style: chart.Style{FontSize: 8},
			Range: &chart.ContinuousRange{Min: 0, Max: 9},
		},
		Series: []chart.Series{mainSeries, stormLine},
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render Kp sparkline: %w", err)
	}
	return nil
}

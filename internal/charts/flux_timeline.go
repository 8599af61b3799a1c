package charts

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/models"
)

// FluxTimeline renders the GOES proton and X-ray flux series as an
// interactive line chart for the space detail page.
func FluxTimeline(visuals *models.SpaceVisuals) (string, error) {
	if visuals == nil {
		return "", fmt.Errorf("visuals cannot be nil")
	}
	if len(visuals.Protons) == 0 && len(visuals.Xray) == 0 {
		return "", fmt.Errorf("no flux series available")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "800px",
			Height: "360px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "GOES Particle and X-ray Flux",
			Subtitle: "Proton flux (PFU) and X-ray flux, recent window",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Time (UTC)",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Flux",
			Type: "log",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: true,
		}),
	)

	// The two series share the proton time axis; X-ray samples are
	// aligned by index upstream.
	axis := make([]string, 0, len(visuals.Protons))
	protonData := make([]opts.LineData, 0, len(visuals.Protons))
	for _, s := range visuals.Protons {
		label := s.TimeTag
		if t, err := s.Time(); err == nil {
			label = t.Format("15:04")
		}
		axis = append(axis, label)
		protonData = append(protonData, opts.LineData{Value: s.Value})
	}

	xrayData := make([]opts.LineData, 0, len(visuals.Xray))
	for _, s := range visuals.Xray {
		xrayData = append(xrayData, opts.LineData{Value: s.Value})
	}

	line.SetXAxis(axis)
	if len(protonData) > 0 {
		line.AddSeries("Proton flux", protonData)
	}
	if len(xrayData) > 0 {
		line.AddSeries("X-ray flux", xrayData)
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: true}))

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", fmt.Errorf("failed to render flux timeline: %w", err)
	}
	return buf.String(), nil
}

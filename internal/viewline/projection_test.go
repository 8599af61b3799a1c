package viewline

import (
	"math"
	"strings"
	"testing"

	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/models"
)

func TestProjectPoleMapsToCenter(t *testing.T) {
	proj := Projection{CenterX: 200, CenterY: 200, Radius: 190}

	x, y := proj.Project(0, 90)
	if math.Abs(x-200) > 1e-9 || math.Abs(y-200) > 1e-9 {
		t.Errorf("lon=0 lat=90 projected to (%v, %v), want center (200, 200)", x, y)
	}
}

func TestProjectCardinalDirections(t *testing.T) {
	proj := Projection{CenterX: 200, CenterY: 200, Radius: 190}

	// lon=0 lat=0 sits on the rim straight up from center
	x, y := proj.Project(0, 0)
	if math.Abs(x-200) > 1e-9 || math.Abs(y-10) > 1e-9 {
		t.Errorf("lon=0 lat=0 projected to (%v, %v), want (200, 10)", x, y)
	}

	// lon=90 lat=0 sits on the rim to the right
	x, y = proj.Project(90, 0)
	if math.Abs(x-390) > 1e-9 || math.Abs(y-200) > 1e-9 {
		t.Errorf("lon=90 lat=0 projected to (%v, %v), want (390, 200)", x, y)
	}

	// lat=45 lands halfway between center and rim
	x, y = proj.Project(0, 45)
	if math.Abs(x-200) > 1e-9 || math.Abs(y-105) > 1e-9 {
		t.Errorf("lon=0 lat=45 projected to (%v, %v), want (200, 105)", x, y)
	}
}

func TestPathData(t *testing.T) {
	proj := Projection{CenterX: 200, CenterY: 200, Radius: 190}

	points := []models.ViewlinePoint{
		{Lon: 0, Lat: 60},
		{Lon: 30, Lat: 58},
		{Lon: 60, Lat: 55},
	}

	d := proj.PathData(points)
	if !strings.HasPrefix(d, "M ") {
		t.Errorf("path data must start with a move command, got %q", d)
	}
	if strings.Count(d, " L ") != 2 {
		t.Errorf("expected 2 line commands, got %q", d)
	}
}

func TestPathDataTooFewPoints(t *testing.T) {
	proj := Projection{CenterX: 200, CenterY: 200, Radius: 190}

	if d := proj.PathData(nil); d != "" {
		t.Errorf("nil points should produce empty path, got %q", d)
	}
	if d := proj.PathData([]models.ViewlinePoint{{Lon: 0, Lat: 60}}); d != "" {
		t.Errorf("single point should produce empty path, got %q", d)
	}
}

func TestRenderSVG(t *testing.T) {
	vl := &models.Viewline{
		Night: "tonight",
		Points: []models.ViewlinePoint{
			{Lon: -120, Lat: 52},
			{Lon: -90, Lat: 48},
			{Lon: -60, Lat: 50},
		},
	}

	svg := RenderSVG(vl)
	if !strings.Contains(svg, "<path d=\"M ") {
		t.Error("rendered SVG missing viewline path")
	}
	if !strings.Contains(svg, "</svg>") {
		t.Error("rendered SVG not closed")
	}

	// Empty viewline still renders the graticule, never broken markup
	empty := RenderSVG(nil)
	if !strings.Contains(empty, "<circle") {
		t.Error("empty render missing graticule")
	}
	if strings.Contains(empty, "<path") {
		t.Error("empty render must not contain a viewline path")
	}
}

// Package viewline converts aurora viewline lon/lat samples into SVG
// coordinates using a fixed-radius polar projection looking down on the
// pole, and renders the viewline widget SVG.
package viewline

import (
	"fmt"
	"math"
	"strings"

	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/models"
)

// Projection maps geographic coordinates onto an SVG viewport. The pole
// sits at (CenterX, CenterY) and Radius is the distance to the equator.
type Projection struct {
	CenterX float64
	CenterY float64
	Radius  float64
}

// Project converts a lon/lat pair (degrees) into SVG coordinates. The
// radial distance grows linearly with colatitude, so lat=90 lands exactly
// on the center and lat=0 on the rim. Longitude 0 points straight up.
func (p Projection) Project(lonDeg, latDeg float64) (float64, float64) {
	colat := 90 - latDeg
	rho := p.Radius * colat / 90
	theta := lonDeg * math.Pi / 180

	x := p.CenterX + rho*math.Sin(theta)
	y := p.CenterY - rho*math.Cos(theta)
	return x, y
}

// PathData builds SVG path data ("M x,y L x,y ...") from an ordered run of
// viewline points. Returns the empty string for fewer than two points.
func (p Projection) PathData(points []models.ViewlinePoint) string {
	if len(points) < 2 {
		return ""
	}

	var b strings.Builder
	for i, pt := range points {
		x, y := p.Project(pt.Lon, pt.Lat)
		if i == 0 {
			fmt.Fprintf(&b, "M %.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&b, " L %.1f,%.1f", x, y)
		}
	}
	return b.String()
}

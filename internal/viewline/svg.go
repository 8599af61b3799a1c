package viewline

import (
	"fmt"
	"strings"

	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/models"
)

const (
	svgSize   = 400
	svgCenter = 200
	svgRadius = 190
)

// RenderSVG draws the viewline widget: latitude graticule rings plus the
// viewline path, on a square polar viewport. A nil or empty viewline
// renders the graticule alone so the widget never flashes broken markup.
func RenderSVG(vl *models.Viewline) string {
	proj := Projection{CenterX: svgCenter, CenterY: svgCenter, Radius: svgRadius}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" class="ge-viewline">`, svgSize, svgSize)
	b.WriteString(`<rect width="100%" height="100%" fill="#0b1026"/>`)

	// Graticule rings every 15 degrees of latitude down to 45
	for _, lat := range []float64{75, 60, 45} {
		_, y := proj.Project(0, lat)
		ringRadius := svgCenter - y
		fmt.Fprintf(&b, `<circle cx="%d" cy="%d" r="%.1f" fill="none" stroke="#2a3155" stroke-width="1"/>`,
			svgCenter, svgCenter, ringRadius)
		fmt.Fprintf(&b, `<text x="%d" y="%.1f" fill="#5a6494" font-size="10" text-anchor="middle">%.0f&#176;</text>`,
			svgCenter, y-3, lat)
	}
	fmt.Fprintf(&b, `<circle cx="%d" cy="%d" r="2" fill="#5a6494"/>`, svgCenter, svgCenter)

	if vl != nil {
		if d := proj.PathData(vl.Points); d != "" {
			fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="#3ddc84" stroke-width="2.5" stroke-linejoin="round"/>`, d)
		}
	}

	b.WriteString(`</svg>`)
	return b.String()
}

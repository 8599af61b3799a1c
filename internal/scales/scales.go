// Package scales implements the NOAA severity scale classifications and the
// staleness rules used by every badge and gauge renderer.
package scales

import (
	"fmt"
	"time"

	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/models"
)

// SScale maps a ≥10 MeV proton flux value (PFU) to the NOAA S-scale (0-5)
func SScale(pfu float64) int {
	switch {
	case pfu >= 100000:
		return 5
	case pfu >= 10000:
		return 4
	case pfu >= 1000:
		return 3
	case pfu >= 100:
		return 2
	case pfu >= 10:
		return 1
	default:
		return 0
	}
}

// GScale maps a Kp index value to the NOAA G-scale (0-5)
func GScale(kp float64) int {
	switch {
	case kp >= 9:
		return 5
	case kp >= 8:
		return 4
	case kp >= 7:
		return 3
	case kp >= 6:
		return 2
	case kp >= 5:
		return 1
	default:
		return 0
	}
}

// SLabel formats an S-scale level as "S0".."S5"
func SLabel(level int) string {
	return fmt.Sprintf("S%d", level)
}

// GLabel formats a G-scale level as "G0".."G5"
func GLabel(level int) string {
	return fmt.Sprintf("G%d", level)
}

// KpTone returns the badge tone for a Kp value. Boundaries follow the
// geomagnetic activity bands: quiet up to 2, unsettled up to 3, active up
// to 4, storm above.
func KpTone(kp float64) string {
	switch {
	case kp <= 2:
		return "quiet"
	case kp <= 3:
		return "unsettled"
	case kp <= 4:
		return "active"
	default:
		return "storm"
	}
}

// ToneColor maps a badge tone to its display color
func ToneColor(tone string) string {
	switch tone {
	case "quiet":
		return "#28a745"
	case "unsettled":
		return "#ffc107"
	case "active":
		return "#fd7e14"
	case "storm":
		return "#dc3545"
	default:
		return "#6c757d"
	}
}

// Fresh reports whether a timestamp is within maxAge of now. Zero
// timestamps are never fresh.
func Fresh(ts time.Time, maxAge time.Duration, now time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return now.Sub(ts) <= maxAge
}

// LatestFresh returns the newest sample in the series that is still within
// maxAge of now. Samples with unparseable timestamps are skipped. The
// boolean is false when nothing in the series qualifies, in which case the
// caller must render the absent state, never a stale value.
func LatestFresh(samples []models.Sample, maxAge time.Duration, now time.Time) (models.Sample, bool) {
	var best models.Sample
	var bestTime time.Time
	found := false

	for _, s := range samples {
		t, err := s.Time()
		if err != nil {
			continue
		}
		if !Fresh(t, maxAge, now) {
			continue
		}
		if !found || t.After(bestTime) {
			best = s
			bestTime = t
			found = true
		}
	}

	return best, found
}

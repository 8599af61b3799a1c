package charts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/models"
)

func TestKpGaugeSnippet(t *testing.T) {
	snippet, err := KpGaugeSnippet(4.3, false)
	if err != nil {
		t.Fatalf("KpGaugeSnippet failed: %v", err)
	}

	if snippet.ID != "ge-gauge-kp" {
		t.Errorf("unexpected snippet ID: %s", snippet.ID)
	}
	if !strings.Contains(snippet.Script, `"value":4.3`) {
		t.Error("gauge script missing Kp value")
	}
	if !strings.Contains(snippet.Script, "Kp 4.3") {
		t.Error("gauge detail missing formatted Kp")
	}
	if !strings.Contains(snippet.HTML, snippet.Div) {
		t.Error("complete HTML missing target div")
	}
}

func TestKpGaugeSnippetReusesChartInstance(t *testing.T) {
	snippet, err := KpGaugeSnippet(3.0, false)
	if err != nil {
		t.Fatalf("KpGaugeSnippet failed: %v", err)
	}

	// Fragments are re-inserted on every poll; the init script must bind
	// to an existing instance instead of creating a second one.
	if !strings.Contains(snippet.Script, "echarts.getInstanceByDom(el)||echarts.init(el)") {
		t.Error("gauge init must reuse the instance bound to its container")
	}
}

func TestKpGaugeSnippetStale(t *testing.T) {
	snippet, err := KpGaugeSnippet(6.7, true)
	if err != nil {
		t.Fatalf("KpGaugeSnippet failed: %v", err)
	}

	// A stale reading must render the absent state, not the old value
	if !strings.Contains(snippet.Script, "Kp —") {
		t.Error("stale gauge must show the placeholder")
	}
	if strings.Contains(snippet.Script, "Kp 6.7") {
		t.Error("stale gauge must not show a live-looking value")
	}
	if !strings.Contains(snippet.Script, `"value":0`) {
		t.Error("stale gauge needle should park at zero")
	}
}

func TestFluxTimeline(t *testing.T) {
	visuals := &models.SpaceVisuals{
		Protons: []models.Sample{
			{TimeTag: "2025-03-01T10:00:00", Value: 12.5},
			{TimeTag: "2025-03-01T11:00:00", Value: 45.0},
			{TimeTag: "2025-03-01T12:00:00", Value: 110.0},
		},
		Xray: []models.Sample{
			{TimeTag: "2025-03-01T10:00:00", Value: 1.2e-6},
			{TimeTag: "2025-03-01T11:00:00", Value: 3.4e-6},
			{TimeTag: "2025-03-01T12:00:00", Value: 8.9e-6},
		},
	}

	html, err := FluxTimeline(visuals)
	if err != nil {
		t.Fatalf("FluxTimeline failed: %v", err)
	}
	if !strings.Contains(html, "Proton flux") {
		t.Error("timeline missing proton series")
	}
	if !strings.Contains(html, "X-ray flux") {
		t.Error("timeline missing x-ray series")
	}
}

func TestFluxTimelineEmpty(t *testing.T) {
	if _, err := FluxTimeline(nil); err == nil {
		t.Error("expected error for nil visuals")
	}
	if _, err := FluxTimeline(&models.SpaceVisuals{}); err == nil {
		t.Error("expected error for empty series")
	}
}

func TestKpSparklinePNG(t *testing.T) {
	samples := []models.Sample{
		{TimeTag: "2025-03-01T09:00:00", Value: 2.3},
		{TimeTag: "2025-03-01T12:00:00", Value: 3.7},
		{TimeTag: "2025-03-01T15:00:00", Value: 5.3},
	}

	var buf bytes.Buffer
	if err := KpSparklinePNG(samples, &buf); err != nil {
		t.Fatalf("KpSparklinePNG failed: %v", err)
	}

	// PNG magic header
	if buf.Len() < 8 || !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestKpSparklinePNGTooFewSamples(t *testing.T) {
	samples := []models.Sample{
		{TimeTag: "2025-03-01T09:00:00", Value: 2.3},
		{TimeTag: "garbage", Value: 3.7},
	}

	var buf bytes.Buffer
	if err := KpSparklinePNG(samples, &buf); err == nil {
		t.Error("expected error with a single parseable sample")
	}
}

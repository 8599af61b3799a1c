package widgets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/config"
	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/fetchers"
	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/logger"
	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/transient"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestRenderer(t *testing.T, handler http.Handler) *Renderer {
	t.Helper()

	apiBase := ""
	if handler != nil {
		ts := httptest.NewServer(handler)
		t.Cleanup(ts.Close)
		apiBase = ts.URL
	}

	cfg := &config.Config{
		CacheTTL:     5 * time.Minute,
		BadgeMaxAge:  60 * time.Minute,
		SeriesMaxAge: 90 * time.Minute,
	}

	fetcher := fetchers.NewClient(transient.NewMemoryStore(), cfg.CacheTTL, logger.NewNop())
	gaia := fetchers.NewGaiaClient(fetcher, apiBase, apiBase, "", 10*time.Minute)

	r := NewRenderer(gaia, cfg, logger.NewNop())
	r.now = func() time.Time { return testNow }
	return r
}

func TestDashboardRendersKPIs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/dashboard", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true,"day":"2025-03-01",
			"kpis":{"kp_now":5.3,"bz_nt":-7.2,"solar_wind_kms":612,"proton_flux_pfu":150,"xray_class":"M1.2"},
			"alerts":[{"scale":"G","level":1,"headline":"Minor geomagnetic storm"}],
			"generated_at":"2025-03-01T11:45:00Z"}`))
	})

	html := newTestRenderer(t, mux).Dashboard(context.Background())

	for _, want := range []string{"Kp 5.3", "G1", "-7.2 nT", "612 km/s", "150 pfu", "S2", "Minor geomagnetic storm"} {
		if !strings.Contains(html, want) {
			t.Errorf("dashboard fragment missing %q", want)
		}
	}
	if !strings.Contains(html, `class="ge-config"`) {
		t.Error("dashboard fragment missing config block")
	}
	if !strings.Contains(html, "ge-tone-storm") {
		t.Error("Kp 5.3 should carry the storm tone")
	}
}

func TestDashboardStaleRendersPlaceholder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/dashboard", func(w http.ResponseWriter, r *http.Request) {
		// Generated two hours before testNow: past the 60 minute cutoff
		w.Write([]byte(`{"ok":true,"day":"2025-03-01","kpis":{"kp_now":7.0},"generated_at":"2025-03-01T10:00:00Z"}`))
	})

	html := newTestRenderer(t, mux).Dashboard(context.Background())

	if !strings.Contains(html, "Kp —") {
		t.Error("stale dashboard must render the Kp placeholder")
	}
	if strings.Contains(html, "Kp 7.0") {
		t.Error("stale dashboard must never show the old value as live")
	}
}

func TestDashboardFetchFailureFailsQuiet(t *testing.T) {
	html := newTestRenderer(t, nil).Dashboard(context.Background())

	if !strings.Contains(html, "Kp —") {
		t.Error("unreachable upstream must render the placeholder card")
	}
	if !strings.Contains(html, "ge-dashboard") {
		t.Error("placeholder card must keep the widget markup")
	}
}

func TestMagnetosphereBadge(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/space/magnetosphere", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"r0_re":8.6,"kp":4.7,"plasmapause_l":3.9,"trend":"compressing","updated_at":"2025-03-01T11:30:00Z"}`))
	})

	r := newTestRenderer(t, mux)

	badge := r.Magnetosphere(context.Background())
	if !strings.Contains(badge, "8.6 Re") || !strings.Contains(badge, "▼") {
		t.Errorf("badge missing standoff or trend arrow: %s", badge)
	}

	detail := r.MagnetosphereDetail(context.Background())
	for _, want := range []string{"8.6 Re", "Kp 4.7", "L 3.9", "compressing"} {
		if !strings.Contains(detail, want) {
			t.Errorf("detail fragment missing %q", want)
		}
	}
}

func TestSpaceDetail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/space/visuals", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"images":{"sun_aia_304":"sun/aia304.jpg","lasco_c3":"sun/lasco_c3.jpg"},
			"protons":[{"time_tag":"2025-03-01T11:50:00","value":320},{"time_tag":"2025-03-01T11:55:00","value":350}],
			"xray":[{"time_tag":"2025-03-01T11:50:00","value":0.0000021},{"time_tag":"2025-03-01T11:55:00","value":0.0000034}],
			"updated_at":"2025-03-01T11:55:00Z"}`))
	})

	html := newTestRenderer(t, mux).SpaceDetail(context.Background())

	if !strings.Contains(html, "/gaia/v1/media/sun/aia304.jpg") {
		t.Error("space detail missing media-proxied sun image")
	}
	if !strings.Contains(html, "350 pfu") || !strings.Contains(html, "S2") {
		t.Error("space detail missing proton badge with S-scale")
	}
	if !strings.Contains(html, "Proton flux") {
		t.Error("space detail missing flux timeline")
	}
}

func TestSpaceDetailStaleSeriesClassifiesS0(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/space/visuals", func(w http.ResponseWriter, r *http.Request) {
		// Samples four hours before testNow: past the 90 minute cutoff
		w.Write([]byte(`{"protons":[{"time_tag":"2025-03-01T08:00:00","value":250000}]}`))
	})

	html := newTestRenderer(t, mux).SpaceDetail(context.Background())

	if !strings.Contains(html, "S0") {
		t.Error("stale proton series must classify as S0")
	}
	if strings.Contains(html, "250000") {
		t.Error("stale sample must never render as live")
	}
}

func TestGaugeKp(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/badges/kp_schumann", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"kp":{"value":6.3,"label":"Kp 6.3","tone":"storm"},"schumann":{"value":7.8,"label":"Schumann","tone":"quiet"},"updated_at":"2025-03-01T11:45:00Z"}`))
	})

	r := newTestRenderer(t, mux)

	html := r.Gauge(context.Background(), "kp")
	if !strings.Contains(html, "Kp 6.3") || !strings.Contains(html, "G2") {
		t.Errorf("kp gauge missing value or G-scale: %s", html)
	}

	schumann := r.Gauge(context.Background(), "schumann")
	if !strings.Contains(schumann, "7.8 Hz") {
		t.Errorf("schumann gauge missing value: %s", schumann)
	}
}

func TestGaugeFailsQuiet(t *testing.T) {
	html := newTestRenderer(t, nil).Gauge(context.Background(), "kp")

	if !strings.Contains(html, "Kp —") {
		t.Error("unreachable upstream must park the gauge at the placeholder")
	}
}

func TestPanelMarkdown(t *testing.T) {
	r := newTestRenderer(t, nil)

	html := r.Panel("Aurora outlook", "Strong substorm **likely** tonight.")

	if !strings.Contains(html, "Aurora outlook") {
		t.Error("panel missing title")
	}
	if !strings.Contains(html, "<strong>likely</strong>") {
		t.Error("panel body markdown not rendered")
	}
}

func TestPanelEscapesScriptInTitle(t *testing.T) {
	r := newTestRenderer(t, nil)

	html := r.Panel(`<script>alert(1)</script>`, "body")
	if strings.Contains(html, "<script>alert") {
		t.Error("panel title must be HTML-escaped")
	}
}

// Package widgets renders the embeddable widget HTML fragments, one per
// shortcode. Renderers fail quiet: upstream trouble yields
// the placeholder state ("—", "Kp —"), never an error page.
package widgets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"time"

	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/charts"
	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/config"
	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/fetchers"
	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/logger"
	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/models"
	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/scales"
)

const placeholder = "—"

// Renderer renders widget fragments from cached upstream JSON
type Renderer struct {
	gaia   *fetchers.GaiaClient
	cfg    *config.Config
	logger *logger.Logger
	tmpl   *template.Template
	md     goldmark.Markdown

	// now is swappable for staleness tests
	now func() time.Time
}

// NewRenderer creates a widget renderer
func NewRenderer(gaia *fetchers.GaiaClient, cfg *config.Config, log *logger.Logger) *Renderer {
	return &Renderer{
		gaia:   gaia,
		cfg:    cfg,
		logger: log.Named("widgets"),
		tmpl:   parseTemplates(),
		md: goldmark.New(
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
		now: time.Now,
	}
}

// browserConfig is the JSON injected into each fragment for the polling
// script. Each fragment carries its own block; there is no shared global
// config object.
type browserConfig struct {
	Endpoint     string `json:"endpoint"`
	PollSeconds  int    `json:"poll_seconds"`
	MaxAgeSecs   int    `json:"max_age_secs"`
	SupabaseURL  string `json:"supabase_url,omitempty"`
	SupabaseAnon string `json:"supabase_anon_key,omitempty"`
}

func (r *Renderer) configJSON(endpoint string, maxAge time.Duration) template.JS {
	cfg := browserConfig{
		Endpoint:     endpoint,
		PollSeconds:  int(r.cfg.CacheTTL.Seconds()),
		MaxAgeSecs:   int(maxAge.Seconds()),
		SupabaseURL:  r.cfg.SupabaseURL,
		SupabaseAnon: r.cfg.SupabaseAnonKey,
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return ""
	}
	return template.JS(data)
}

func (r *Renderer) execute(name string, data interface{}) string {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		r.logger.Error("Template execution failed", logger.String("template", name), logger.Error(err))
		return fmt.Sprintf(`<div class="ge-card ge-error" data-widget=%q></div>`, name)
	}
	return buf.String()
}

type dashboardView struct {
	Day        string
	KpText     string
	KpTone     string
	GLabel     string
	BzText     string
	WindText   string
	ProtonText string
	SLabel     string
	Alerts     []models.Alert
	Drivers    []models.Driver
	Config     template.JS
}

// Dashboard renders the [gaia_dashboard] card
func (r *Renderer) Dashboard(ctx context.Context) string {
	view := dashboardView{
		Day:        placeholder,
		KpText:     "Kp " + placeholder,
		KpTone:     "none",
		GLabel:     "",
		BzText:     placeholder,
		WindText:   placeholder,
		ProtonText: placeholder,
		SLabel:     scales.SLabel(0),
		Config:     r.configJSON("/gaia/v1/widgets/dashboard", r.cfg.BadgeMaxAge),
	}

	dash, err := r.gaia.Dashboard(ctx, "")
	if err != nil {
		r.logger.Warn("Dashboard fetch failed, rendering placeholder", logger.Error(err))
		return r.execute("dashboard", view)
	}

	if scales.Fresh(dash.GeneratedAt, r.cfg.BadgeMaxAge, r.now()) {
		k := dash.KPIs
		view.Day = dash.Day
		view.KpText = fmt.Sprintf("Kp %.1f", k.KpNow)
		view.KpTone = scales.KpTone(k.KpNow)
		view.GLabel = scales.GLabel(scales.GScale(k.KpNow))
		view.BzText = fmt.Sprintf("%+.1f nT", k.BzNT)
		view.WindText = fmt.Sprintf("%.0f km/s", k.SolarWindKms)
		view.ProtonText = fmt.Sprintf("%.0f pfu", k.ProtonFluxPFU)
		view.SLabel = scales.SLabel(scales.SScale(k.ProtonFluxPFU))
		view.Alerts = dash.Alerts
		view.Drivers = dash.Drivers
	}

	return r.execute("dashboard", view)
}

type magnetosphereView struct {
	StandoffText    string
	KpText          string
	PlasmapauseText string
	Tone            string
	TrendArrow      string
	TrendText       string
	Config          template.JS
}

func (r *Renderer) magnetosphereView(ctx context.Context, endpoint string) magnetosphereView {
	view := magnetosphereView{
		StandoffText:    placeholder,
		KpText:          "Kp " + placeholder,
		PlasmapauseText: placeholder,
		Tone:            "none",
		TrendArrow:      "",
		TrendText:       placeholder,
		Config:          r.configJSON(endpoint, r.cfg.BadgeMaxAge),
	}

	magneto, err := r.gaia.Magnetosphere(ctx)
	if err != nil {
		r.logger.Warn("Magnetosphere fetch failed, rendering placeholder", logger.Error(err))
		return view
	}
	if !scales.Fresh(magneto.UpdatedAt, r.cfg.BadgeMaxAge, r.now()) {
		return view
	}

	view.StandoffText = fmt.Sprintf("%.1f Re", magneto.StandoffRe)
	view.KpText = fmt.Sprintf("Kp %.1f", magneto.Kp)
	view.PlasmapauseText = fmt.Sprintf("L %.1f", magneto.PlasmapauseL)
	view.Tone = scales.KpTone(magneto.Kp)
	view.TrendText = magneto.Trend

	switch magneto.Trend {
	case "compressing":
		view.TrendArrow = "▼"
	case "expanding":
		view.TrendArrow = "▲"
	default:
		view.TrendArrow = "▶"
	}

	return view
}

// Magnetosphere renders the [gaia_magnetosphere] badge
func (r *Renderer) Magnetosphere(ctx context.Context) string {
	return r.execute("magnetosphere", r.magnetosphereView(ctx, "/gaia/v1/widgets/magnetosphere"))
}

// MagnetosphereDetail renders the [gaia_magnetosphere_detail] panel
func (r *Renderer) MagnetosphereDetail(ctx context.Context) string {
	return r.execute("magnetosphere_detail", r.magnetosphereView(ctx, "/gaia/v1/widgets/magnetosphere/detail"))
}

type spaceDetailView struct {
	SunImageURL    string
	CoronagraphURL string
	ProtonText     string
	ProtonTone     string
	SLabel         string
	FluxChart      template.HTML
	Config         template.JS
}

// SpaceDetail renders the [gaia_space_detail] panel
func (r *Renderer) SpaceDetail(ctx context.Context) string {
	view := spaceDetailView{
		ProtonText: placeholder,
		ProtonTone: "none",
		SLabel:     scales.SLabel(0),
		Config:     r.configJSON("/gaia/v1/widgets/space/detail", r.cfg.SeriesMaxAge),
	}

	visuals, err := r.gaia.SpaceVisuals(ctx)
	if err != nil {
		r.logger.Warn("Space visuals fetch failed, rendering placeholder", logger.Error(err))
		return r.execute("space_detail", view)
	}

	if visuals.Images.SunAIA304 != "" {
		view.SunImageURL = "/gaia/v1/media/" + visuals.Images.SunAIA304
	}
	if visuals.Images.LascoC3 != "" {
		view.CoronagraphURL = "/gaia/v1/media/" + visuals.Images.LascoC3
	}

	// Stale proton samples classify as S0 and render as absent
	if sample, ok := scales.LatestFresh(visuals.Protons, r.cfg.SeriesMaxAge, r.now()); ok {
		level := scales.SScale(sample.Value)
		view.ProtonText = fmt.Sprintf("%.0f pfu", sample.Value)
		view.SLabel = scales.SLabel(level)
		if level >= 2 {
			view.ProtonTone = "storm"
		} else if level == 1 {
			view.ProtonTone = "active"
		} else {
			view.ProtonTone = "quiet"
		}
	}

	if chartHTML, err := charts.FluxTimeline(visuals); err == nil {
		view.FluxChart = template.HTML(chartHTML)
	}

	return r.execute("space_detail", view)
}

type gaugeView struct {
	Metric string
	Body   template.HTML
	Config template.JS
}

// Gauge renders the [ge_gauge] widget for the requested metric
func (r *Renderer) Gauge(ctx context.Context, metric string) string {
	if metric == "" {
		metric = "kp"
	}

	view := gaugeView{
		Metric: metric,
		Config: r.configJSON("/gaia/v1/widgets/gauge?metric="+metric, r.cfg.BadgeMaxAge),
	}

	switch metric {
	case "kp":
		kp, stale := r.currentKp(ctx)
		snippet, err := charts.KpGaugeSnippet(kp, stale)
		if err != nil {
			r.logger.Error("Kp gauge build failed", logger.Error(err))
			break
		}
		view.Body = template.HTML(snippet.HTML)
	case "schumann":
		view.Body = r.schumannBadge(ctx)
	default:
		view.Body = template.HTML(fmt.Sprintf(`<span class="ge-badge-value">%s</span>`, placeholder))
	}

	return r.execute("gauge", view)
}

// currentKp returns the freshest Kp reading; stale=true means the gauge
// must show the absent state.
func (r *Renderer) currentKp(ctx context.Context) (float64, bool) {
	badges, err := r.gaia.KpSchumann(ctx)
	if err != nil {
		r.logger.Warn("Badge fetch failed for gauge", logger.Error(err))
		return 0, true
	}
	if !scales.Fresh(badges.UpdatedAt, r.cfg.BadgeMaxAge, r.now()) {
		return 0, true
	}
	return badges.Kp.Value, false
}

func (r *Renderer) schumannBadge(ctx context.Context) template.HTML {
	badges, err := r.gaia.KpSchumann(ctx)
	if err != nil {
		return template.HTML(fmt.Sprintf(`<span class="ge-badge-value">%s</span>`, placeholder))
	}
	if !scales.Fresh(badges.UpdatedAt, r.cfg.BadgeMaxAge, r.now()) {
		return template.HTML(fmt.Sprintf(`<span class="ge-badge-value">%s</span>`, placeholder))
	}
	return template.HTML(fmt.Sprintf(
		`<span class="ge-badge ge-tone-%s"><span class="ge-badge-label">%s</span><span class="ge-badge-value">%.1f Hz</span></span>`,
		template.HTMLEscapeString(badges.Schumann.Tone),
		template.HTMLEscapeString(badges.Schumann.Label),
		badges.Schumann.Value,
	))
}

type panelView struct {
	Title string
	Body  template.HTML
}

// Panel renders the [ge_panel] widget. The body is markdown, converted
// server-side.
func (r *Renderer) Panel(title, body string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(body), &buf); err != nil {
		r.logger.Error("Panel markdown conversion failed", logger.Error(err))
		buf.Reset()
	}

	return r.execute("panel", panelView{
		Title: title,
		Body:  template.HTML(buf.String()),
	})
}

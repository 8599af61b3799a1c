package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/charts"
	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/logger"
	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/media"
	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/viewline"
)

var dayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// writeError writes the JSON error envelope shared by all API endpoints
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ok":    false,
		"error": message,
	})
}

// handleDashboardProxy forwards GET /gaia/v1/dashboard to the upstream
// backend. The caller's Authorization header passes through verbatim, so
// responses here never touch the shared cache.
func (s *Server) handleDashboardProxy(w http.ResponseWriter, r *http.Request) {
	if s.cfg.APIBase == "" {
		writeError(w, http.StatusInternalServerError, "backend API base not configured")
		return
	}

	day := r.URL.Query().Get("day")
	if day == "" {
		day = time.Now().UTC().Format("2006-01-02")
	}
	if !dayPattern.MatchString(day) {
		writeError(w, http.StatusBadRequest, "day must be YYYY-MM-DD")
		return
	}

	req := s.proxy.R().
		SetContext(r.Context()).
		SetQueryParam("day", day).
		SetHeader("Accept", "application/json")
	if auth := r.Header.Get("Authorization"); auth != "" {
		req.SetHeader("Authorization", auth)
	}
	if r.URL.Query().Get("debug") == "1" {
		req.SetQueryParam("debug", "1")
	}

	resp, err := req.Get(s.cfg.APIBase + "/v1/dashboard")
	if err != nil {
		s.logger.Warn("Dashboard upstream request failed", logger.Error(err))
		writeError(w, http.StatusBadGateway, "upstream request failed")
		return
	}

	body := resp.Body()
	if !json.Valid(body) {
		s.logger.Warn("Dashboard upstream returned invalid JSON",
			logger.Int("status", resp.StatusCode()))
		writeError(w, http.StatusBadGateway, "upstream returned invalid JSON")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode())
	w.Write(body)
}

// handleAuroraNowcast serves the cached OVATION nowcast summary for one
// hemisphere.
func (s *Server) handleAuroraNowcast(w http.ResponseWriter, r *http.Request) {
	hemisphere := chi.URLParam(r, "hemisphere")
	if hemisphere != "north" && hemisphere != "south" {
		http.NotFound(w, r)
		return
	}

	nowcast, err := s.gaia.AuroraNowcast(r.Context(), hemisphere)
	if err != nil {
		s.logger.Warn("Aurora nowcast fetch failed",
			logger.String("hemisphere", hemisphere), logger.Error(err))
		writeError(w, http.StatusBadGateway, "nowcast unavailable")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=300")
	json.NewEncoder(w).Encode(nowcast)
}

// handleViewlineSVG renders the aurora viewline for tonight or tomorrow
func (s *Server) handleViewlineSVG(w http.ResponseWriter, r *http.Request) {
	night := chi.URLParam(r, "night")
	if night != "tonight" && night != "tomorrow" {
		http.NotFound(w, r)
		return
	}

	vl, err := s.gaia.Viewline(r.Context(), night)
	if err != nil {
		s.logger.Warn("Viewline fetch failed, rendering graticule only",
			logger.String("night", night), logger.Error(err))
		vl = nil
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.Write([]byte(viewline.RenderSVG(vl)))
}

// handleKpSparkline renders the recent Kp series as a PNG
func (s *Server) handleKpSparkline(w http.ResponseWriter, r *http.Request) {
	visuals, err := s.gaia.SpaceVisuals(r.Context())
	if err != nil {
		http.Error(w, "kp series unavailable", http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := charts.KpSparklinePNG(visuals.Kp, &buf); err != nil {
		s.logger.Warn("Kp sparkline render failed", logger.Error(err))
		http.Error(w, "kp series unavailable", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.Write(buf.Bytes())
}

// handleMedia serves imagery from the configured media origin
func (s *Server) handleMedia(w http.ResponseWriter, r *http.Request) {
	if s.media == nil {
		http.NotFound(w, r)
		return
	}

	path := chi.URLParam(r, "*")
	if path == "" || strings.Contains(path, "..") {
		http.Error(w, "invalid media path", http.StatusBadRequest)
		return
	}

	data, contentType, err := s.media.Get(r.Context(), path)
	if err != nil {
		s.logger.Debug("Media fetch failed", logger.String("path", path), logger.Error(err))
		http.NotFound(w, r)
		return
	}
	if contentType == "" {
		contentType = media.ContentType(path)
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=600")
	w.Write(data)
}

// handleMediaList lists object paths under a prefix. Only bucket-backed
// origins support listing.
func (s *Server) handleMediaList(w http.ResponseWriter, r *http.Request) {
	if s.media == nil {
		http.NotFound(w, r)
		return
	}

	prefix := r.URL.Query().Get("prefix")
	if strings.Contains(prefix, "..") {
		http.Error(w, "invalid prefix", http.StatusBadRequest)
		return
	}

	paths, err := s.media.List(r.Context(), prefix)
	if err != nil {
		s.logger.Debug("Media listing failed", logger.String("prefix", prefix), logger.Error(err))
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ok":    true,
		"paths": paths,
	})
}

func writeFragment(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func (s *Server) handleWidgetDashboard(w http.ResponseWriter, r *http.Request) {
	writeFragment(w, s.renderer.Dashboard(r.Context()))
}

func (s *Server) handleWidgetMagnetosphere(w http.ResponseWriter, r *http.Request) {
	writeFragment(w, s.renderer.Magnetosphere(r.Context()))
}

func (s *Server) handleWidgetMagnetosphereDetail(w http.ResponseWriter, r *http.Request) {
	writeFragment(w, s.renderer.MagnetosphereDetail(r.Context()))
}

func (s *Server) handleWidgetSpaceDetail(w http.ResponseWriter, r *http.Request) {
	writeFragment(w, s.renderer.SpaceDetail(r.Context()))
}

func (s *Server) handleWidgetGauge(w http.ResponseWriter, r *http.Request) {
	writeFragment(w, s.renderer.Gauge(r.Context(), r.URL.Query().Get("metric")))
}

func (s *Server) handleWidgetPanel(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	body := r.URL.Query().Get("body")
	writeFragment(w, s.renderer.Panel(title, body))
}

// handleHealth reports liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ok":          true,
		"environment": s.cfg.Environment,
		"time":        time.Now().UTC().Format(time.RFC3339),
	})
}

// handleIndex serves a plain page linking every widget, useful as a smoke
// check when the service runs standalone.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Gaia Eyes Widgets</title><link rel="stylesheet" href="/gaia/widgets/css/gaia-widgets.css"></head>
<body>
<h1>Gaia Eyes Widgets</h1>
<ul>
<li><a href="/gaia/v1/widgets/dashboard">Dashboard card</a></li>
<li><a href="/gaia/v1/widgets/magnetosphere">Magnetosphere badge</a></li>
<li><a href="/gaia/v1/widgets/magnetosphere/detail">Magnetosphere detail</a></li>
<li><a href="/gaia/v1/widgets/space/detail">Space weather detail</a></li>
<li><a href="/gaia/v1/widgets/gauge?metric=kp">Kp gauge</a></li>
<li><a href="/gaia/v1/viewline/tonight.svg">Aurora viewline (tonight)</a></li>
<li><a href="/gaia/v1/aurora/north.json">Aurora nowcast (north)</a></li>
<li><a href="/gaia/v1/charts/kp_sparkline.png">Kp sparkline</a></li>
<li><a href="/health">Health</a></li>
</ul>
</body>
</html>`))
}

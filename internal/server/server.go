// Package server wires the HTTP surface: the dashboard proxy, the widget
// fragment endpoints, viewline SVGs, chart images, the media proxy and
// the static browser assets.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-resty/resty/v2"

	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/config"
	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/fetchers"
	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/logger"
	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/media"
	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/widgets"
)

// Server is the widget service HTTP server
type Server struct {
	cfg      *config.Config
	logger   *logger.Logger
	gaia     *fetchers.GaiaClient
	renderer *widgets.Renderer
	media    media.Store
	proxy    *resty.Client
	http     *http.Server
}

// New creates the server. mediaStore may be nil when no media origin is
// configured; the media endpoints then return 404.
func New(cfg *config.Config, log *logger.Logger, gaia *fetchers.GaiaClient, renderer *widgets.Renderer, mediaStore media.Store) *Server {
	// The proxy client is separate from the cached fetchers: authorized
	// responses must never land in the shared cache.
	proxy := resty.New()
	proxy.SetTimeout(20 * time.Second)

	s := &Server{
		cfg:      cfg,
		logger:   log.Named("server"),
		gaia:     gaia,
		renderer: renderer,
		media:    mediaStore,
		proxy:    proxy,
	}

	s.http = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Routes builds the router
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)

	r.Route("/gaia/v1", func(r chi.Router) {
		r.Get("/dashboard", s.handleDashboardProxy)
		r.Get("/aurora/{hemisphere}.json", s.handleAuroraNowcast)
		r.Get("/viewline/{night}.svg", s.handleViewlineSVG)
		r.Get("/charts/kp_sparkline.png", s.handleKpSparkline)
		r.Get("/media", s.handleMediaList)
		r.Get("/media/*", s.handleMedia)

		r.Route("/widgets", func(r chi.Router) {
			r.Get("/dashboard", s.handleWidgetDashboard)
			r.Get("/magnetosphere", s.handleWidgetMagnetosphere)
			r.Get("/magnetosphere/detail", s.handleWidgetMagnetosphereDetail)
			r.Get("/space/detail", s.handleWidgetSpaceDetail)
			r.Get("/gauge", s.handleWidgetGauge)
			r.Get("/panel", s.handleWidgetPanel)
		})
	})

	static := NewStaticHandler(s.cfg.StaticDir, s.logger)
	r.Handle("/gaia/widgets/*", http.StripPrefix("/gaia/widgets/", static))

	return r
}

// Start begins serving. Blocks until the listener fails or Shutdown runs.
func (s *Server) Start() error {
	s.logger.Info("Server listening", logger.String("addr", s.http.Addr))
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests and closes the listener
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// requestLogger logs each request at debug level
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("Request handled",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Duration("duration", time.Since(start)))
	})
}

package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the widgets service
type Config struct {
	// Server configuration
	Port        string `env:"PORT,default=8981"`
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=json"`

	// Upstream backend serving the pre-computed space-weather JSON
	APIBase string `env:"GAIAEYES_API_BASE"`

	// Static media origin: HTTP CDN base, or a GCS bucket when set
	MediaBaseURL   string `env:"MEDIA_BASE_URL"`
	MediaGCSBucket string `env:"MEDIA_GCS_BUCKET"`

	// Supabase credentials, surfaced to the browser config block only.
	// The service itself never talks to Supabase.
	SupabaseURL     string `env:"SUPABASE_URL"`
	SupabaseAnonKey string `env:"SUPABASE_ANON_KEY"`

	// Transient cache settings
	CacheTTL        time.Duration `env:"CACHE_TTL,default=5m"`
	ImageryCacheTTL time.Duration `env:"IMAGERY_CACHE_TTL,default=10m"`
	CacheDBPath     string        `env:"CACHE_DB_PATH"`

	// Staleness cutoffs: samples older than these render as absent
	BadgeMaxAge  time.Duration `env:"BADGE_MAX_AGE,default=60m"`
	SeriesMaxAge time.Duration `env:"SERIES_MAX_AGE,default=90m"`

	// Browser widget assets
	StaticDir string `env:"STATIC_DIR,default=web/static"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	// Normalize base URLs so callers can always append /path
	cfg.APIBase = strings.TrimRight(cfg.APIBase, "/")
	cfg.MediaBaseURL = strings.TrimRight(cfg.MediaBaseURL, "/")

	return &cfg, nil
}

// Validate checks configuration consistency. A missing GAIAEYES_API_BASE is
// allowed here: the dashboard proxy reports it per-request as HTTP 500.
func (c *Config) Validate() error {
	if c.APIBase != "" && !strings.HasPrefix(c.APIBase, "http") {
		return fmt.Errorf("GAIAEYES_API_BASE must be an http(s) URL, got %q", c.APIBase)
	}
	if c.MediaBaseURL != "" && !strings.HasPrefix(c.MediaBaseURL, "http") {
		return fmt.Errorf("MEDIA_BASE_URL must be an http(s) URL, got %q", c.MediaBaseURL)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", c.CacheTTL)
	}
	if c.BadgeMaxAge <= 0 || c.SeriesMaxAge <= 0 {
		return fmt.Errorf("staleness cutoffs must be positive")
	}
	return nil
}

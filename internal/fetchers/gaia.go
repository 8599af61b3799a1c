package fetchers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/models"
)

// ErrNotConfigured is returned when the required base URL is absent
var ErrNotConfigured = errors.New("upstream base URL not configured")

// GaiaClient is the typed client for the GaiaEyes backend and the aurora
// JSON published on the media CDN.
type GaiaClient struct {
	fetcher    *Client
	apiBase    string
	mediaBase  string
	authToken  string
	imageryTTL time.Duration
}

// NewGaiaClient creates the typed upstream client. apiBase and mediaBase
// may be empty; the corresponding accessors then fail with ErrNotConfigured
// and the renderers fall back to placeholders. authToken is the anon
// bearer used for server-side dashboard renders.
func NewGaiaClient(fetcher *Client, apiBase, mediaBase, authToken string, imageryTTL time.Duration) *GaiaClient {
	return &GaiaClient{
		fetcher:    fetcher,
		apiBase:    apiBase,
		mediaBase:  mediaBase,
		authToken:  authToken,
		imageryTTL: imageryTTL,
	}
}

// Dashboard fetches /v1/dashboard for the given day (YYYY-MM-DD, today
// when empty), authenticating with the configured anon token.
func (g *GaiaClient) Dashboard(ctx context.Context, day string) (*models.Dashboard, error) {
	if g.apiBase == "" {
		return nil, ErrNotConfigured
	}
	if day == "" {
		day = time.Now().UTC().Format("2006-01-02")
	}

	var dash models.Dashboard
	url := fmt.Sprintf("%s/v1/dashboard?day=%s", g.apiBase, day)
	if err := g.fetcher.GetJSONAuth(ctx, url, g.authToken, &dash); err != nil {
		return nil, fmt.Errorf("failed to fetch dashboard: %w", err)
	}
	return &dash, nil
}

// SpaceVisuals fetches /v1/space/visuals
func (g *GaiaClient) SpaceVisuals(ctx context.Context) (*models.SpaceVisuals, error) {
	if g.apiBase == "" {
		return nil, ErrNotConfigured
	}
	var visuals models.SpaceVisuals
	if err := g.fetcher.GetJSON(ctx, g.apiBase+"/v1/space/visuals", &visuals); err != nil {
		return nil, fmt.Errorf("failed to fetch space visuals: %w", err)
	}
	return &visuals, nil
}

// KpSchumann fetches /v1/badges/kp_schumann
func (g *GaiaClient) KpSchumann(ctx context.Context) (*models.KpSchumannBadges, error) {
	if g.apiBase == "" {
		return nil, ErrNotConfigured
	}
	var badges models.KpSchumannBadges
	if err := g.fetcher.GetJSON(ctx, g.apiBase+"/v1/badges/kp_schumann", &badges); err != nil {
		return nil, fmt.Errorf("failed to fetch kp_schumann badges: %w", err)
	}
	return &badges, nil
}

// Magnetosphere fetches /v1/space/magnetosphere
func (g *GaiaClient) Magnetosphere(ctx context.Context) (*models.Magnetosphere, error) {
	if g.apiBase == "" {
		return nil, ErrNotConfigured
	}
	var magneto models.Magnetosphere
	if err := g.fetcher.GetJSON(ctx, g.apiBase+"/v1/space/magnetosphere", &magneto); err != nil {
		return nil, fmt.Errorf("failed to fetch magnetosphere: %w", err)
	}
	return &magneto, nil
}

// AuroraNowcast fetches the OVATION nowcast summary for a hemisphere
// ("north" or "south") from the media CDN.
func (g *GaiaClient) AuroraNowcast(ctx context.Context, hemisphere string) (*models.AuroraNowcast, error) {
	if g.mediaBase == "" {
		return nil, ErrNotConfigured
	}
	if hemisphere != "north" && hemisphere != "south" {
		return nil, fmt.Errorf("unknown hemisphere %q", hemisphere)
	}

	var nowcast models.AuroraNowcast
	url := fmt.Sprintf("%s/aurora/nowcast_%s.json", g.mediaBase, hemisphere)
	if err := g.fetcher.GetJSONWithTTL(ctx, url, &nowcast, g.imageryTTL); err != nil {
		return nil, fmt.Errorf("failed to fetch aurora nowcast: %w", err)
	}
	return &nowcast, nil
}

// Viewline fetches the aurora viewline for "tonight" or "tomorrow"
func (g *GaiaClient) Viewline(ctx context.Context, night string) (*models.Viewline, error) {
	if g.mediaBase == "" {
		return nil, ErrNotConfigured
	}
	if night != "tonight" && night != "tomorrow" {
		return nil, fmt.Errorf("unknown viewline night %q", night)
	}

	var vl models.Viewline
	url := fmt.Sprintf("%s/aurora/viewline_%s.json", g.mediaBase, night)
	if err := g.fetcher.GetJSONWithTTL(ctx, url, &vl, g.imageryTTL); err != nil {
		return nil, fmt.Errorf("failed to fetch viewline: %w", err)
	}
	if vl.Night == "" {
		vl.Night = night
	}
	return &vl, nil
}

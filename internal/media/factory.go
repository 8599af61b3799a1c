package media

import (
	"context"

	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/config"
	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/fetchers"
)

// NewStore selects the media origin from configuration: the GCS bucket
// when one is set, otherwise the HTTP CDN. ErrNotConfigured when neither
// is present.
func NewStore(ctx context.Context, cfg *config.Config, fetcher *fetchers.Client) (Store, error) {
	if cfg.MediaGCSBucket != "" {
		return NewGCSStore(ctx, cfg.MediaGCSBucket)
	}
	if cfg.MediaBaseURL != "" {
		return NewCDNStore(fetcher, cfg.MediaBaseURL, cfg.ImageryCacheTTL), nil
	}
	return nil, ErrNotConfigured
}

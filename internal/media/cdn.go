package media

import (
	"context"
	"fmt"
	"time"

	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/fetchers"
)

// CDNStore proxies media from the HTTP CDN, going through the transient
// cache with the imagery TTL.
type CDNStore struct {
	fetcher *fetchers.Client
	baseURL string
	ttl     time.Duration
}

// NewCDNStore creates a CDN-backed media store
func NewCDNStore(fetcher *fetchers.Client, baseURL string, ttl time.Duration) *CDNStore {
	return &CDNStore{
		fetcher: fetcher,
		baseURL: baseURL,
		ttl:     ttl,
	}
}

// Get fetches one object from the CDN
func (c *CDNStore) Get(ctx context.Context, path string) ([]byte, string, error) {
	data, err := c.fetcher.GetBytes(ctx, c.baseURL+"/"+path, c.ttl)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch media %s: %w", path, err)
	}
	return data, ContentType(path), nil
}

// List is not supported by the CDN origin; the bucket origin provides it
func (c *CDNStore) List(ctx context.Context, prefix string) ([]string, error) {
	return nil, fmt.Errorf("listing not supported by CDN media origin")
}

// Close is a no-op for the CDN store
func (c *CDNStore) Close() error {
	return nil
}

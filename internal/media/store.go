// Package media serves solar and aurora imagery from the configured
// origin: the HTTP CDN behind MEDIA_BASE_URL, or a GCS bucket when
// MEDIA_GCS_BUCKET is set.
package media

import (
	"context"
	"errors"
	"strings"
)

// ErrNotConfigured is returned when no media origin is configured
var ErrNotConfigured = errors.New("no media origin configured")

// Store is the media origin contract
type Store interface {
	// Get returns the object bytes and its content type
	Get(ctx context.Context, path string) ([]byte, string, error)

	// List returns object paths under the given prefix
	List(ctx context.Context, prefix string) ([]string, error)

	// Close releases origin resources
	Close() error
}

// ContentType returns the content type for a media path based on its
// extension.
func ContentType(path string) string {
	switch {
	case strings.HasSuffix(path, ".png"):
		return "image/png"
	case strings.HasSuffix(path, ".jpg"), strings.HasSuffix(path, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(path, ".gif"):
		return "image/gif"
	case strings.HasSuffix(path, ".svg"):
		return "image/svg+xml"
	case strings.HasSuffix(path, ".webp"):
		return "image/webp"
	case strings.HasSuffix(path, ".json"):
		return "application/json"
	case strings.HasSuffix(path, ".mp4"):
		return "video/mp4"
	default:
		return "application/octet-stream"
	}
}

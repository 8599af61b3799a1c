// Package fetchers wraps all outbound HTTP GETs in the transient cache and
// exposes typed accessors for the consumed JSON endpoints.
package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/logger"
	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/transient"
)

// Client performs cached JSON fetches. Fresh cache entries are served
// without touching the network; on upstream failure a stale entry is
// served when one exists.
type Client struct {
	http   *resty.Client
	store  transient.Store
	ttl    time.Duration
	logger *logger.Logger
}

// NewClient creates a cached fetch client with the given default TTL
func NewClient(store transient.Store, ttl time.Duration, log *logger.Logger) *Client {
	client := resty.New()
	client.SetTimeout(15 * time.Second)
	client.SetRetryCount(2)
	client.SetRetryWaitTime(1 * time.Second)

	return &Client{
		http:   client,
		store:  store,
		ttl:    ttl,
		logger: log.Named("fetchers"),
	}
}

// GetJSON fetches url and unmarshals the body into out, going through the
// transient cache keyed by the URL hash.
func (c *Client) GetJSON(ctx context.Context, url string, out interface{}) error {
	return c.GetJSONWithTTL(ctx, url, out, c.ttl)
}

// GetJSONAuth is GetJSON with a bearer token on the outbound request
func (c *Client) GetJSONAuth(ctx context.Context, url, token string, out interface{}) error {
	return c.getJSON(ctx, url, token, out, c.ttl)
}

// GetJSONWithTTL is GetJSON with a per-request TTL override
func (c *Client) GetJSONWithTTL(ctx context.Context, url string, out interface{}, ttl time.Duration) error {
	return c.getJSON(ctx, url, "", out, ttl)
}

func (c *Client) getJSON(ctx context.Context, url, token string, out interface{}, ttl time.Duration) error {
	key := transient.Key(url)

	cached, fresh, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("Cache read failed", logger.String("url", url), logger.Error(err))
	}
	if fresh {
		return json.Unmarshal(cached, out)
	}

	body, fetchErr := c.fetch(ctx, url, token)
	if fetchErr != nil {
		// Serve stale over nothing; renderers degrade to placeholders
		// only when the cache is empty too.
		if cached != nil {
			c.logger.Warn("Upstream failed, serving stale cache entry",
				logger.String("url", url), logger.Error(fetchErr))
			return json.Unmarshal(cached, out)
		}
		return fetchErr
	}

	if err := c.store.Set(ctx, key, body, ttl); err != nil {
		c.logger.Warn("Cache write failed", logger.String("url", url), logger.Error(err))
	}

	return json.Unmarshal(body, out)
}

// GetBytes fetches url raw through the cache, for imagery payloads
func (c *Client) GetBytes(ctx context.Context, url string, ttl time.Duration) ([]byte, error) {
	key := transient.Key(url)

	cached, fresh, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("Cache read failed", logger.String("url", url), logger.Error(err))
	}
	if fresh {
		return cached, nil
	}

	resp, fetchErr := c.http.R().SetContext(ctx).Get(url)
	if fetchErr != nil || resp.StatusCode() != 200 {
		if cached != nil {
			return cached, nil
		}
		if fetchErr != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", url, fetchErr)
		}
		return nil, fmt.Errorf("fetch %s returned status %d", url, resp.StatusCode())
	}

	body := resp.Body()
	if err := c.store.Set(ctx, key, body, ttl); err != nil {
		c.logger.Warn("Cache write failed", logger.String("url", url), logger.Error(err))
	}
	return body, nil
}

func (c *Client) fetch(ctx context.Context, url, token string) ([]byte, error) {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json")
	if token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}

	resp, err := req.Get(url)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("fetch %s returned status %d", url, resp.StatusCode())
	}

	body := resp.Body()
	if !json.Valid(body) {
		return nil, fmt.Errorf("fetch %s returned invalid JSON", url)
	}
	return body, nil
}

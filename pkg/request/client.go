// Package request fetches the source document over HTTP with retries and a
// stale-copy fallback. The fetch runs once at startup; a failure must never
// take the map down, so the last good body is kept in the cache store.
package request

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"chronomap/pkg/store"
	"chronomap/pkg/version"
)

var defaultUserAgent = fmt.Sprintf("chronomap/%s", version.Version)

// ClientConfig holds the retry and timeout settings.
type ClientConfig struct {
	Retries   int
	Timeout   time.Duration
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// Client fetches documents with retry, backoff and cache fallback.
type Client struct {
	httpClient *http.Client
	cache      store.CacheStore
	state      store.StateStore
	retries    int
	backoff    *Backoff
}

// New creates a new Client. st may be nil, disabling the fallback and the
// fetch-time bookkeeping.
func New(st store.Store, cfg ClientConfig) *Client {
	retries := cfg.Retries
	if retries < 1 {
		retries = 1
	}
	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		retries:    retries,
		backoff:    NewBackoff(cfg.BaseDelay, cfg.MaxDelay),
	}
	if st != nil {
		c.cache = st
		c.state = st
	}
	return c
}

// Get fetches the URL, retrying with exponential backoff. On success the
// body is written to the cache under cacheKey; after the final failure the
// cached copy (possibly stale) is returned instead, so the caller degrades
// gracefully rather than failing hard.
func (c *Client) Get(ctx context.Context, url, cacheKey string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= c.retries; attempt++ {
		body, err := c.fetch(ctx, url)
		if err == nil {
			if c.cache != nil && cacheKey != "" {
				if cerr := c.cache.SetCache(ctx, cacheKey, body); cerr != nil {
					slog.Warn("failed to cache fetched document", "key", cacheKey, "error", cerr)
				}
				c.recordFetchTime(ctx, cacheKey)
			}
			return body, nil
		}
		lastErr = err
		slog.Warn("fetch failed", "url", url, "attempt", attempt, "error", err)

		if attempt < c.retries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoff.Delay(attempt)):
			}
		}
	}

	if c.cache != nil && cacheKey != "" {
		if body, hit := c.cache.GetCache(ctx, cacheKey); hit {
			slog.Warn("using cached copy after fetch failure",
				"url", url, "key", cacheKey, "age", c.cacheAge(ctx, cacheKey))
			return body, nil
		}
	}

	return nil, fmt.Errorf("fetch %s failed after %d attempts: %w", url, c.retries, lastErr)
}

// FetchedAt reports when the document under cacheKey was last fetched
// successfully, surviving restarts.
func (c *Client) FetchedAt(ctx context.Context, cacheKey string) (time.Time, bool) {
	if c.state == nil {
		return time.Time{}, false
	}
	val, ok := c.state.GetState(ctx, stateKey(cacheKey))
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (c *Client) recordFetchTime(ctx context.Context, cacheKey string) {
	if c.state == nil {
		return
	}
	val := time.Now().UTC().Format(time.RFC3339)
	if err := c.state.SetState(ctx, stateKey(cacheKey), val); err != nil {
		slog.Warn("failed to record fetch time", "key", cacheKey, "error", err)
	}
}

// cacheAge describes how stale the cached copy is, for the fallback warning.
func (c *Client) cacheAge(ctx context.Context, cacheKey string) string {
	fetched, ok := c.FetchedAt(ctx, cacheKey)
	if !ok {
		return "unknown"
	}
	return time.Since(fetched).Round(time.Second).String()
}

func stateKey(cacheKey string) string {
	return "fetched_at:" + cacheKey
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// Package coach fetches raw review-report text from the coaching API.
package coach

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"rewind/internal/logging"
)

const (
	reportCachePrefix = "coach:report:"
	maxReportBytes    = 1 << 20 // reports are tens of KB; anything near 1MB is garbage
)

// Client fetches coach-report text by match id. A missing or failed report
// comes back as an empty string, which the parser treats the same as empty
// input — "no report available" is not an error condition for callers.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client

	cache    *redis.Client
	cacheTTL time.Duration

	log logging.Interface
}

// NewClient builds a coach API client. cache may be nil to disable report
// caching (the CLI path).
func NewClient(baseURL, apiKey string, cache *redis.Client, cacheTTL time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      logging.Component("coach"),
	}
}

// FetchReport returns the report text for a match, consulting the Redis
// cache first. The only error returned is a context error; every other
// failure degrades to ("", nil) after a logged warning.
func (c *Client) FetchReport(ctx context.Context, matchID string) (string, error) {
	if matchID == "" {
		return "", nil
	}

	if cached, ok := c.cacheGet(ctx, matchID); ok {
		return cached, nil
	}

	text, err := c.fetch(ctx, matchID)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		c.log.Warnf("report fetch for %s failed: %v", matchID, err)
		return "", nil
	}

	if text != "" {
		c.cacheSet(ctx, matchID, text)
	}
	return text, nil
}

func (c *Client) fetch(ctx context.Context, matchID string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse coach api url: %w", err)
	}
	q := u.Query()
	q.Set("matchId", matchID)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/plain; charset=utf-8")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("coach api request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReportBytes))
	if err != nil {
		return "", fmt.Errorf("read coach api response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		sample := string(body)
		if len(sample) > 120 {
			sample = sample[:120]
		}
		return "", fmt.Errorf("coach api returned %d: %s", resp.StatusCode, sample)
	}

	text := string(body)
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	return text, nil
}

func (c *Client) cacheGet(ctx context.Context, matchID string) (string, bool) {
	if c.cache == nil {
		return "", false
	}
	text, err := c.cache.Get(ctx, reportCachePrefix+matchID).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf("report cache read for %s failed: %v", matchID, err)
		}
		return "", false
	}
	return text, true
}

func (c *Client) cacheSet(ctx context.Context, matchID, text string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, reportCachePrefix+matchID, text, c.cacheTTL).Err(); err != nil {
		c.log.Warnf("report cache write for %s failed: %v", matchID, err)
	}
}

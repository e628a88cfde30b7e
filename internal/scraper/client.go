package scraper

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"jobwatch/internal/config"
	"jobwatch/internal/logging"
	"jobwatch/internal/logging/types"
)

// Client is the HTTP Fetcher used against the job site. Every request carries
// the configured timeout, shares one rate limiter across all page workers,
// and is retried a bounded number of times with a growing backoff.
type Client struct {
	http       *http.Client
	limiter    *rate.Limiter
	userAgent  string
	maxRetries int
	logger     types.Logger
}

// NewClient creates a new site client from configuration
func NewClient(cfg *config.Config) *Client {
	// Rate limit: requests per minute converted to requests per second
	rps := rate.Limit(float64(cfg.Scraper.RateLimit) / 60.0)
	burst := 5

	return &Client{
		http:       &http.Client{Timeout: cfg.Scraper.RequestTimeout},
		limiter:    rate.NewLimiter(rps, burst),
		userAgent:  cfg.Scraper.UserAgent,
		maxRetries: cfg.Scraper.MaxRetries,
		logger:     logging.GetGlobalLogger(),
	}
}

// Fetch downloads and parses the given URL, retrying transient failures.
func (c *Client) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			backoff := time.Duration(attempt-1) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}

			c.logger.Debug("Retrying fetch", map[string]interface{}{
				"url":     url,
				"attempt": attempt,
			})
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		doc, err := c.fetchOnce(ctx, url)
		if err == nil {
			return doc, nil
		}
		lastErr = err

		c.logger.Debug("Fetch attempt failed", map[string]interface{}{
			"url":     url,
			"attempt": attempt,
			"error":   err.Error(),
		})
	}

	return nil, fmt.Errorf("fetch failed after %d attempts: %w", c.maxRetries, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	return doc, nil
}

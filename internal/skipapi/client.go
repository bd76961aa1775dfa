package skipapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/DukeRupert/skipwizard/internal/domain"
	"github.com/DukeRupert/skipwizard/internal/metrics"
)

const (
	// DefaultBaseURL is the by-location endpoint of the skip listing API
	DefaultBaseURL = "https://app.wewantwaste.co.uk/api/skips/by-location"

	// DefaultTimeout bounds a single listing request
	DefaultTimeout = 10 * time.Second

	// maxBodySize caps the response body (1MB)
	maxBodySize = 1 << 20

	opListSkips = "skipapi.ListSkips"
)

// Config contains configuration for the HTTP client
type Config struct {
	BaseURL  string
	Postcode string
	Area     string
	Timeout  time.Duration
}

// Client implements Lister against the skip listing HTTP API
type Client struct {
	config Config
	client *http.Client
	logger *slog.Logger
}

// New creates a new skip listing client
func New(config Config, logger *slog.Logger) (*Client, error) {
	if config.Postcode == "" {
		return nil, fmt.Errorf("skipapi: postcode is required")
	}

	// Set defaults
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("skipapi: invalid base URL: %w", err)
	}

	return &Client{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger,
	}, nil
}

// ListSkips issues one GET request for the configured postcode and area.
// There is no retry: a failed listing is reported to the caller as-is.
func (c *Client) ListSkips(ctx context.Context) ([]domain.Skip, error) {
	start := time.Now()

	req, err := c.buildRequest(ctx)
	if err != nil {
		return nil, c.fail(ctx, "transport", start, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, c.fail(ctx, "transport", start, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, c.fail(ctx, "transport", start, fmt.Errorf("read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.fail(ctx, "status", start, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var skips []domain.Skip
	if err := json.Unmarshal(body, &skips); err != nil {
		return nil, c.fail(ctx, "decode", start, fmt.Errorf("unmarshal response: %w", err))
	}
	if skips == nil {
		skips = []domain.Skip{}
	}

	duration := time.Since(start)
	metrics.SkipAPISucceeded(duration, len(skips))
	c.logger.DebugContext(ctx, "skips listed",
		"count", len(skips),
		"postcode", c.config.Postcode,
		"area", c.config.Area,
		"duration_ms", duration.Milliseconds(),
	)

	return skips, nil
}

// buildRequest builds the listing request with postcode and area query params
func (c *Client) buildRequest(ctx context.Context) (*http.Request, error) {
	u, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("postcode", c.config.Postcode)
	if c.config.Area != "" {
		q.Set("area", c.config.Area)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// fail records and logs a failed listing and wraps the cause in the single
// error kind callers see.
func (c *Client) fail(ctx context.Context, reason string, start time.Time, cause error) error {
	metrics.SkipAPIFailed(reason, time.Since(start))
	c.logger.WarnContext(ctx, "skip listing failed",
		"reason", reason,
		"error", cause,
		"postcode", c.config.Postcode,
		"area", c.config.Area,
	)
	return domain.Unavailable(cause, opListSkips, "Failed to fetch skips")
}

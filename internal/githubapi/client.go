package githubapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/oauth2"

	"github.com/promptpack/ghfrag/internal/logger"
)

const (
	// DefaultTimeout is the HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MediaTypeJSON is the default Accept media type.
	MediaTypeJSON = "application/vnd.github+json"

	// MediaTypeDiff requests a pull request as a unified diff.
	MediaTypeDiff = "application/vnd.github.diff"

	// MediaTypeRaw requests raw file content from the contents API.
	MediaTypeRaw = "application/vnd.github.raw"
)

// Client performs authenticated GET requests against the GitHub REST API.
// A zero token yields an unauthenticated client with no Authorization
// header. Each loader invocation constructs its own client; nothing is
// shared across calls.
type Client struct {
	http          *http.Client
	rateLimiter   *RateLimiter
	authenticated bool

	// Overridable in tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a client. The token is injected by the caller rather
// than read from the environment here, so the lookup happens exactly once
// per invocation.
func NewClient(ctx context.Context, token string) *Client {
	hc := &http.Client{Timeout: DefaultTimeout}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(ctx, ts)
		hc.Timeout = DefaultTimeout
	}

	return &Client{
		http:          hc,
		rateLimiter:   NewRateLimiter(),
		authenticated: token != "",
		now:           time.Now,
		sleep:         sleepContext,
	}
}

// Authenticated reports whether the client carries an access token.
func (c *Client) Authenticated() bool {
	return c.authenticated
}

// Get issues a GET request for url with the given Accept media type
// (MediaTypeJSON when empty). Throttled responses (403/429) are retried
// after the server-indicated backoff and never surface to the caller; the
// retry loop is bounded only by context cancellation. Any other non-2xx
// response fails with an *APIError. The caller owns the response body.
func (c *Client) Get(ctx context.Context, url, accept string) (*http.Response, error) {
	if accept == "" {
		accept = MediaTypeJSON
	}

	for {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", accept)

		logger.Debug("GET %s", url)

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}

		if IsThrottled(resp) {
			wait := BackoffDuration(resp, c.now())
			resp.Body.Close()

			logger.Warn("rate limited [%d] on %s, retrying in %s", resp.StatusCode, url, wait)
			if err := c.sleep(ctx, wait); err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			resp.Body.Close()
			return nil, &APIError{StatusCode: resp.StatusCode, URL: url}
		}

		return resp, nil
	}
}

// GetText fetches url and returns the response body as a string.
func (c *Client) GetText(ctx context.Context, url, accept string) (string, error) {
	resp, err := c.Get(ctx, url, accept)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}

// GetJSON fetches url and decodes the JSON response into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	resp, err := c.Get(ctx, url, MediaTypeJSON)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// GetAllPages fetches every page of a list endpoint starting at url,
// following the Link header's rel="next" relation until exhausted. Items
// are returned in page order then in-page order.
func (c *Client) GetAllPages(ctx context.Context, url string) ([]json.RawMessage, error) {
	var items []json.RawMessage

	for url != "" {
		resp, err := c.Get(ctx, url, MediaTypeJSON)
		if err != nil {
			return nil, err
		}

		var page []json.RawMessage
		err = json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", url, err)
		}

		items = append(items, page...)
		url = ParseNextLink(resp.Header.Get("Link"))
	}

	return items, nil
}

// sleepContext blocks for d or until ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

package githubapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	// ProactiveRate is the proactive throttle rate (~1.2 req/sec = 4320/hr),
	// staying well under the authenticated 5,000/hour quota.
	ProactiveRate = 1.2

	// DefaultBackoff is the wait applied to a throttled response that
	// carries neither a usable Retry-After nor X-RateLimit-Reset header.
	DefaultBackoff = 60 * time.Second

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"

	// HeaderRateReset is the reset timestamp header (Unix seconds).
	HeaderRateReset = "X-RateLimit-Reset"
)

// RateLimiter throttles outbound requests ahead of GitHub's quota.
type RateLimiter struct {
	bucket *rate.Limiter
}

// NewRateLimiter creates a rate limiter with proactive throttling.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(ProactiveRate), 1),
	}
}

// Wait blocks until it's safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.bucket.Wait(ctx)
}

// IsThrottled reports whether a response indicates rate limiting.
func IsThrottled(resp *http.Response) bool {
	return resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests
}

// BackoffDuration derives how long to wait before retrying a throttled
// request. Header precedence: Retry-After (seconds) first, then
// X-RateLimit-Reset (absolute epoch seconds, clamped at zero), then a fixed
// 60-second fallback.
func BackoffDuration(resp *http.Response, now time.Time) time.Duration {
	if v := resp.Header.Get(HeaderRetryAfter); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}

	if v := resp.Header.Get(HeaderRateReset); v != "" {
		if reset, err := strconv.ParseInt(v, 10, 64); err == nil {
			if wait := time.Unix(reset, 0).Sub(now); wait > 0 {
				return wait
			}
			return 0
		}
	}

	return DefaultBackoff
}

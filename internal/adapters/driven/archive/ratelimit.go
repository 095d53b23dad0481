package archive

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// ProactiveRate throttles outgoing requests to stay well under the
	// backend's per-token limit.
	ProactiveRate = 5

	// ProactiveBurst allows short bursts, e.g. a resolver issuing both
	// collection lookups back to back.
	ProactiveBurst = 10

	// HeaderRetryAfter is the throttle header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// RateLimitError reports a 429 from the backend.
type RateLimitError struct {
	RetryAt time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("archive: rate limited, retry at %s", e.RetryAt.Format(time.RFC3339))
}

// RateLimiter combines a proactive token bucket with reactive backoff
// driven by the backend's 429 responses.
type RateLimiter struct {
	mu      sync.Mutex
	retryAt time.Time
	bucket  *rate.Limiter
}

// NewRateLimiter creates a rate limiter with proactive throttling.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(ProactiveRate), ProactiveBurst),
	}
}

// Wait blocks until it is safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if now := time.Now(); now.Before(retryAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryAt.Sub(now)):
		}
	}
	return nil
}

// CheckResponse records backoff state from a response and returns a
// RateLimitError on 429.
func (r *RateLimiter) CheckResponse(resp *http.Response) error {
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		return nil
	}

	retryAt := time.Now().Add(time.Second)
	if header := resp.Header.Get(HeaderRetryAfter); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil {
			retryAt = time.Now().Add(time.Duration(seconds) * time.Second)
		}
	}

	r.mu.Lock()
	r.retryAt = retryAt
	r.mu.Unlock()

	return &RateLimitError{RetryAt: retryAt}
}

// RetryAt returns the current backoff deadline.
func (r *RateLimiter) RetryAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.retryAt
}

package fetch

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter enforces a minimum spacing between outbound requests across
// the whole pipeline, not per target domain. It is an explicit value owned
// by the orchestrator and handed to each client; there is no process-wide
// singleton.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter builds a limiter that admits one request per interval.
// A non-positive interval disables pacing.
func NewRateLimiter(interval time.Duration) *RateLimiter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &RateLimiter{limiter: rate.NewLimiter(limit, 1)}
}

// Wait blocks until the next request slot is available or ctx finishes.
func (l *RateLimiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}

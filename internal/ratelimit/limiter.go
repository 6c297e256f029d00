// Package ratelimit implements fixed-window request counters.
package ratelimit

import (
	"context"
	"time"

	"github.com/ErlanBelekov/domain-gateway/internal/domain"
)

// Limiter counts one request against key. Implementations must be safe for
// concurrent use: two requests racing in the same window never both read a
// stale count.
type Limiter interface {
	Allow(ctx context.Context, key string, window time.Duration, max int64) (domain.RateDecision, error)
}

// decide turns a post-increment count into a decision.
func decide(count, max int64, resetAt, now time.Time) domain.RateDecision {
	d := domain.RateDecision{
		Allowed: count <= max,
		Count:   count,
		Limit:   max,
		ResetAt: resetAt,
	}
	if d.Allowed {
		d.Remaining = max - count
		return d
	}
	d.RetryAfter = resetAt.Sub(now)
	if d.RetryAfter < 0 {
		d.RetryAfter = 0
	}
	return d
}

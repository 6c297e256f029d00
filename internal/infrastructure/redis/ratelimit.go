// Package redis holds the shared rate-limit store used when the gateway runs
// as more than one replica.
package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ErlanBelekov/domain-gateway/internal/domain"
)

// fixedWindow increments the counter and starts the window on the first hit.
// A key left without a TTL is repaired so a window can never become permanent.
var fixedWindow = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

type RateLimiter struct {
	rdb    redis.UniversalClient
	prefix string
	now    func() time.Time
}

type Option func(*RateLimiter)

func WithPrefix(prefix string) Option {
	return func(l *RateLimiter) { l.prefix = strings.Trim(prefix, ":") }
}

func WithClock(now func() time.Time) Option {
	return func(l *RateLimiter) { l.now = now }
}

func NewRateLimiter(rdb redis.UniversalClient, opts ...Option) *RateLimiter {
	l := &RateLimiter{
		rdb:    rdb,
		prefix: "gateway:ratelimit",
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *RateLimiter) Allow(ctx context.Context, key string, window time.Duration, max int64) (domain.RateDecision, error) {
	res, err := fixedWindow.Run(ctx, l.rdb, []string{l.prefix + ":" + key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return domain.RateDecision{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(res) != 2 {
		return domain.RateDecision{}, fmt.Errorf("rate limit script: unexpected reply %v", res)
	}

	count, ttl := res[0], time.Duration(res[1])*time.Millisecond
	now := l.now()

	d := domain.RateDecision{
		Allowed: count <= max,
		Count:   count,
		Limit:   max,
		ResetAt: now.Add(ttl),
	}
	if d.Allowed {
		d.Remaining = max - count
	} else {
		d.RetryAfter = ttl
	}
	return d, nil
}

// Ping lets the readiness probe check the connection.
func (l *RateLimiter) Ping(ctx context.Context) error {
	return l.rdb.Ping(ctx).Err()
}

// Connect parses a redis:// URL and verifies the server answers.
func Connect(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

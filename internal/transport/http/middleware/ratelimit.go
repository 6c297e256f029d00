package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ErlanBelekov/domain-gateway/internal/metrics"
	"github.com/ErlanBelekov/domain-gateway/internal/ratelimit"
	"github.com/ErlanBelekov/domain-gateway/internal/transport/http/response"
)

type RateLimitKey string

const (
	// RateLimitByIP counts each route separately for every client address.
	RateLimitByIP RateLimitKey = "ip"
	// RateLimitGlobal shares one counter per route between all callers.
	RateLimitGlobal RateLimitKey = "global"
)

type RateLimitConfig struct {
	Window time.Duration
	Max    int64
	Key    RateLimitKey
}

// RateLimit admits at most cfg.Max requests per cfg.Window for the matched
// route. When the limiter itself fails the request is let through.
func RateLimit(limiter ratelimit.Limiter, cfg RateLimitConfig, logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "rate_limit")

	return func(c *gin.Context) {
		route := c.FullPath()
		key := route
		if cfg.Key != RateLimitGlobal {
			key = route + ":" + c.ClientIP()
		}

		decision, err := limiter.Allow(c.Request.Context(), key, cfg.Window, cfg.Max)
		if err != nil {
			logger.ErrorContext(c.Request.Context(), "rate limiter unavailable, admitting request", "route", route, "error", err)
			metrics.RateLimitDecisionsTotal.WithLabelValues(route, "error").Inc()
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("X-RateLimit-Limit", strconv.FormatInt(decision.Limit, 10))
		h.Set("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

		if !decision.Allowed {
			metrics.RateLimitDecisionsTotal.WithLabelValues(route, "limited").Inc()
			h.Set("Retry-After", strconv.Itoa(int(math.Ceil(decision.RetryAfter.Seconds()))))
			response.Abort(c, http.StatusTooManyRequests, errRateLimited)
			return
		}

		metrics.RateLimitDecisionsTotal.WithLabelValues(route, "allowed").Inc()
		c.Next()
	}
}

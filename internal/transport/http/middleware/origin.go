package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ErlanBelekov/domain-gateway/internal/domain"
	"github.com/ErlanBelekov/domain-gateway/internal/metrics"
)

// OriginDecider is implemented by *usecase.OriginUsecase.
type OriginDecider interface {
	Decide(ctx context.Context, origin string) (domain.OriginDecision, error)
}

const (
	corsAllowMethods = "GET,HEAD,PUT,PATCH,POST,DELETE"
	corsAllowHeaders = "Authorization,Content-Type"
	corsMaxAge       = 10 * time.Minute
)

// OriginGate grants cross-origin access only to origins whose host is a
// registered domain. A denied origin gets no CORS headers at all, so the
// browser blocks the response; the request itself still proceeds.
func OriginGate(decider OriginDecider, logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "origin_gate")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		decision, err := decider.Decide(c.Request.Context(), origin)
		if err != nil {
			logger.ErrorContext(c.Request.Context(), "origin lookup failed", "origin", origin, "error", err)
			metrics.OriginDecisionsTotal.WithLabelValues("error").Inc()
			c.Next()
			return
		}
		if !decision.Granted {
			if origin != "" {
				metrics.OriginDecisionsTotal.WithLabelValues("denied").Inc()
			}
			c.Next()
			return
		}
		metrics.OriginDecisionsTotal.WithLabelValues("granted").Inc()

		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", decision.Origin)
		h.Add("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)
			if requested := c.GetHeader("Access-Control-Request-Headers"); requested != "" {
				h.Set("Access-Control-Allow-Headers", requested)
				h.Add("Vary", "Access-Control-Request-Headers")
			} else {
				h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			}
			h.Set("Access-Control-Max-Age", strconv.Itoa(int(corsMaxAge.Seconds())))
		}

		c.Next()
	}
}

// Preflight answers OPTIONS requests once OriginGate has set the headers.
func Preflight(c *gin.Context) {
	c.AbortWithStatus(http.StatusNoContent)
}

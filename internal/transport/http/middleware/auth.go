package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ErlanBelekov/domain-gateway/internal/domain"
	ctxlog "github.com/ErlanBelekov/domain-gateway/internal/log"
	"github.com/ErlanBelekov/domain-gateway/internal/metrics"
	"github.com/ErlanBelekov/domain-gateway/internal/transport/http/response"
)

// TokenVerifier is implemented by *token.Manager.
type TokenVerifier interface {
	Verify(raw string) (*domain.Claims, error)
}

const claimsKey = "claims"

type claimsCtxKey struct{}

// VerifyToken reads the raw token from the Authorization header. A "Bearer "
// prefix is accepted but not required. Expired tokens get 419 so clients know
// to refresh; anything else that fails gets 401.
func VerifyToken(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
			raw = strings.TrimSpace(raw[7:])
		}

		claims, err := verifier.Verify(raw)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrTokenExpired):
			metrics.TokenVerificationsTotal.WithLabelValues("expired").Inc()
			response.Abort(c, response.StatusTokenExpired, errTokenExpired)
			return
		default:
			metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
			response.Abort(c, http.StatusUnauthorized, errTokenInvalid)
			return
		}
		metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()

		c.Set(claimsKey, claims)
		ctx := context.WithValue(c.Request.Context(), claimsCtxKey{}, claims)
		ctx = ctxlog.WithAttrs(ctx, slog.String("user_id", claims.UserID))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// ClaimsFromContext returns the claims VerifyToken stored on c.
func ClaimsFromContext(c *gin.Context) (*domain.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*domain.Claims)
	return claims, ok
}

// ClaimsFrom is the context.Context counterpart of ClaimsFromContext, for code
// below the transport layer.
func ClaimsFrom(ctx context.Context) (*domain.Claims, bool) {
	claims, ok := ctx.Value(claimsCtxKey{}).(*domain.Claims)
	return claims, ok
}

package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	"github.com/ErlanBelekov/domain-gateway/internal/domain"
	"github.com/ErlanBelekov/domain-gateway/internal/ratelimit"
	"github.com/ErlanBelekov/domain-gateway/internal/transport/http/handler"
	"github.com/ErlanBelekov/domain-gateway/internal/transport/http/middleware"
	"github.com/ErlanBelekov/domain-gateway/internal/usecase"
)

// Services are the collaborators shared by every active generation.
type Services struct {
	Credentials *usecase.CredentialUsecase
	Posts       *usecase.PostUsecase
	Origins     middleware.OriginDecider
	Verifier    middleware.TokenVerifier
	Limiter     ratelimit.Limiter
	RateLimit   middleware.RateLimitConfig
}

// NewRouter mounts one route group per active generation. Requests under a
// deprecated generation's prefix are answered by VersionGate and never
// reach a lookup, the limiter or a token check.
func NewRouter(logger *slog.Logger, generations []domain.Generation, svc Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.VersionGate(generations))

	posts := handler.NewPostHandler(svc.Posts, logger)
	limit := middleware.RateLimit(svc.Limiter, svc.RateLimit, logger)
	auth := middleware.VerifyToken(svc.Verifier)

	for _, gen := range generations {
		if gen.Deprecated() {
			continue
		}

		tokens := handler.NewTokenHandler(svc.Credentials, gen, logger)

		g := r.Group(gen.Prefix, middleware.OriginGate(svc.Origins, logger))
		g.OPTIONS("/*path", middleware.Preflight)
		g.POST("/token", limit, tokens.Issue)
		g.GET("/test", auth, limit, handler.Claims)
		g.GET("/posts/my", limit, auth, posts.Mine)
		g.GET("/posts/hashtag/:title", auth, limit, posts.ByHashtag)
	}

	return r
}

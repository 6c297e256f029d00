package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ErlanBelekov/domain-gateway/config"
	"github.com/ErlanBelekov/domain-gateway/internal/domain"
	"github.com/ErlanBelekov/domain-gateway/internal/health"
	"github.com/ErlanBelekov/domain-gateway/internal/infrastructure/postgres"
	redisinfra "github.com/ErlanBelekov/domain-gateway/internal/infrastructure/redis"
	ctxlog "github.com/ErlanBelekov/domain-gateway/internal/log"
	"github.com/ErlanBelekov/domain-gateway/internal/maintenance"
	"github.com/ErlanBelekov/domain-gateway/internal/metrics"
	"github.com/ErlanBelekov/domain-gateway/internal/ratelimit"
	"github.com/ErlanBelekov/domain-gateway/internal/token"
	httptransport "github.com/ErlanBelekov/domain-gateway/internal/transport/http"
	"github.com/ErlanBelekov/domain-gateway/internal/transport/http/middleware"
	"github.com/ErlanBelekov/domain-gateway/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := ctxlog.New(os.Stdout, cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, postgres.PoolOptions{MaxConns: cfg.DBMaxConns, MinConns: cfg.DBMinConns})
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	deps := []health.Dependency{{Name: "postgres", Pinger: pool}}

	// Registry
	domainRepo := postgres.NewDomainRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	postRepo := postgres.NewPostRepository(pool)

	// Rate limiting: shared counters when Redis is configured, process-local otherwise
	var limiter ratelimit.Limiter
	if cfg.RedisURL != "" {
		rdb, err := redisinfra.Connect(ctx, cfg.RedisURL)
		if err != nil {
			stop()
			log.Fatalf("redis: %v", err)
		}
		defer rdb.Close()

		redisLimiter := redisinfra.NewRateLimiter(rdb)
		limiter = redisLimiter
		deps = append(deps, health.Dependency{Name: "redis", Pinger: redisLimiter})
	} else {
		memLimiter := ratelimit.NewMemoryLimiter()
		limiter = memLimiter

		janitor := maintenance.NewJanitor(memLimiter, maintenance.DefaultSpec, logger)
		go func() {
			if err := janitor.Start(ctx); err != nil {
				logger.Error("janitor", "error", err)
			}
		}()
	}

	manager := token.NewManager([]byte(cfg.JWTSecret), cfg.JWTIssuer)

	generations := []domain.Generation{
		domain.Generation{Name: "v1", Prefix: "/v1", TokenTTL: cfg.LegacyTokenTTL, State: domain.GenerationActive}.Deprecate(),
		{Name: "v2", Prefix: "/v2", TokenTTL: cfg.TokenTTL, State: domain.GenerationActive},
	}

	metrics.Register()
	checker := health.NewChecker(logger, prometheus.DefaultRegisterer, deps...)

	srv := http.Server{
		Addr: ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, generations, httptransport.Services{
			Credentials: usecase.NewCredentialUsecase(domainRepo, userRepo, manager),
			Posts:       usecase.NewPostUsecase(postRepo),
			Origins:     usecase.NewOriginUsecase(domainRepo),
			Verifier:    manager,
			Limiter:     limiter,
			RateLimit: middleware.RateLimitConfig{
				Window: cfg.RateLimitWindow,
				Max:    int64(cfg.RateLimitMax),
				Key:    middleware.RateLimitKey(cfg.RateLimitKey),
			},
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port, "rate_limit_store", limiterStore(cfg.RedisURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func limiterStore(redisURL string) string {
	if redisURL != "" {
		return "redis"
	}
	return "memory"
}

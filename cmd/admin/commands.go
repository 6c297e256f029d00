package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ErlanBelekov/domain-gateway/config"
	"github.com/ErlanBelekov/domain-gateway/internal/domain"
	"github.com/ErlanBelekov/domain-gateway/internal/email"
	"github.com/ErlanBelekov/domain-gateway/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/domain-gateway/internal/log"
	"github.com/ErlanBelekov/domain-gateway/internal/usecase"
)

func setup(ctx context.Context) (*config.Config, *slog.Logger, *pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	logger := ctxlog.New(os.Stderr, cfg.Env, cfg.SlogLevel())

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, postgres.PoolOptions{MaxConns: cfg.DBMaxConns, MinConns: cfg.DBMinConns})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("db: %w", err)
	}
	return cfg, logger, pool, nil
}

func runMigrate(_ context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := ctxlog.New(os.Stderr, cfg.Env, cfg.SlogLevel())

	logger.Info("running database migrations")
	return postgres.Migrate(cfg.DatabaseURL, logger)
}

func runCreateUser(ctx context.Context, out io.Writer, emailAddr, nick string) error {
	_, _, pool, err := setup(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	u, err := postgres.NewUserRepository(pool).Create(ctx, emailAddr, nick)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	_, err = fmt.Fprintf(out, "user %s (%s, %s)\n", u.ID, u.Email, u.Nick)
	return err
}

func runRegisterDomain(ctx context.Context, out io.Writer, ownerID, host, tier string) error {
	cfg, logger, pool, err := setup(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	uc := usecase.NewDomainUsecase(postgres.NewDomainRepository(pool), postgres.NewUserRepository(pool), sender, logger)

	d, err := uc.Register(ctx, ownerID, host, domain.Tier(tier))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "registered %s (%s)\nclient secret: %s\n", d.Host, d.Tier, d.ClientSecret)
	return err
}

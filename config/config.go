package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT" envDefault:"8080" validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"20" validate:"min=1"`
	DBMinConns  int32  `env:"DB_MIN_CONNS" envDefault:"4"  validate:"min=0"`
	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	JWTSecret      string        `env:"JWT_SECRET,required" validate:"required,min=32"`
	JWTIssuer      string        `env:"JWT_ISSUER"          envDefault:"nodebird" validate:"required"`
	TokenTTL       time.Duration `env:"TOKEN_TTL"           envDefault:"30m"      validate:"min=1s"`
	LegacyTokenTTL time.Duration `env:"LEGACY_TOKEN_TTL"    envDefault:"1m"       validate:"min=1s"`

	// RateLimitKey picks the counter dimension: "ip" counts per route and client
	// address, "global" shares one counter per route across all callers.
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"60s" validate:"min=1s"`
	RateLimitMax    int           `env:"RATE_LIMIT_MAX"    envDefault:"1"   validate:"min=1"`
	RateLimitKey    string        `env:"RATE_LIMIT_KEY"    envDefault:"ip"  validate:"oneof=ip global"`

	// Empty keeps rate-limit counters in process memory. Set it when running
	// more than one instance.
	RedisURL string `env:"REDIS_URL" validate:"omitempty,url"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`
}

// Load reads the environment, after filling unset variables from a .env file
// in the working directory when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

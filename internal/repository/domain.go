package repository

import (
	"context"

	"github.com/ErlanBelekov/domain-gateway/internal/domain"
)

// DomainRepository never returns soft-deleted rows.
type DomainRepository interface {
	Create(ctx context.Context, d *domain.Domain) (*domain.Domain, error)
	FindBySecret(ctx context.Context, secret string) (*domain.Domain, error)
	FindByHost(ctx context.Context, host string) (*domain.Domain, error)
}

package repository

import (
	"context"

	"github.com/ErlanBelekov/domain-gateway/internal/domain"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

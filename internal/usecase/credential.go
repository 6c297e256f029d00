package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ErlanBelekov/domain-gateway/internal/domain"
	"github.com/ErlanBelekov/domain-gateway/internal/repository"
)

// Minter signs tokens for an owner. Implemented by *token.Manager.
type Minter interface {
	Mint(owner *domain.User, ttl time.Duration) (string, time.Time, error)
}

type IssuedToken struct {
	Token     string
	Owner     *domain.User
	ExpiresAt time.Time
}

type CredentialUsecase struct {
	domains repository.DomainRepository
	users   repository.UserRepository
	minter  Minter
}

func NewCredentialUsecase(domains repository.DomainRepository, users repository.UserRepository, minter Minter) *CredentialUsecase {
	return &CredentialUsecase{domains: domains, users: users, minter: minter}
}

// Issue exchanges a client secret for a token that lives for ttl. Nothing is
// stored; the token is only ever checked by signature.
func (u *CredentialUsecase) Issue(ctx context.Context, secret string, ttl time.Duration) (*IssuedToken, error) {
	if secret == "" {
		return nil, domain.ErrDomainNotFound
	}

	d, err := u.domains.FindBySecret(ctx, secret)
	if err != nil {
		return nil, fmt.Errorf("find domain: %w", err)
	}

	owner, err := u.users.FindByID(ctx, d.UserID)
	if err != nil {
		return nil, fmt.Errorf("find owner: %w", err)
	}

	raw, expiresAt, err := u.minter.Mint(owner, ttl)
	if err != nil {
		return nil, fmt.Errorf("mint token: %w", err)
	}

	return &IssuedToken{Token: raw, Owner: owner, ExpiresAt: expiresAt}, nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/domain-gateway/internal/domain"
	"github.com/ErlanBelekov/domain-gateway/internal/repository"
)

type OriginUsecase struct {
	domains repository.DomainRepository
}

func NewOriginUsecase(domains repository.DomainRepository) *OriginUsecase {
	return &OriginUsecase{domains: domains}
}

// Decide grants the exact origin when its host belongs to a registered domain.
// Missing, opaque and unparseable origins are denied without a lookup.
func (u *OriginUsecase) Decide(ctx context.Context, origin string) (domain.OriginDecision, error) {
	host := domain.HostFromOrigin(origin)
	if host == "" {
		return domain.DenyOrigin(), nil
	}

	_, err := u.domains.FindByHost(ctx, host)
	if errors.Is(err, domain.ErrDomainNotFound) {
		return domain.DenyOrigin(), nil
	}
	if err != nil {
		return domain.DenyOrigin(), fmt.Errorf("find domain by host: %w", err)
	}

	return domain.GrantOrigin(origin), nil
}

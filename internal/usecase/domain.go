package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ErlanBelekov/domain-gateway/internal/domain"
	"github.com/ErlanBelekov/domain-gateway/internal/email"
	"github.com/ErlanBelekov/domain-gateway/internal/repository"
)

type DomainUsecase struct {
	domains   repository.DomainRepository
	users     repository.UserRepository
	email     email.Sender
	logger    *slog.Logger
	newSecret func() string
}

func NewDomainUsecase(domains repository.DomainRepository, users repository.UserRepository, emailSender email.Sender, logger *slog.Logger) *DomainUsecase {
	return &DomainUsecase{
		domains:   domains,
		users:     users,
		email:     emailSender,
		logger:    logger.With("component", "domain_usecase"),
		newSecret: uuid.NewString,
	}
}

// Register creates a domain for ownerID with a fresh client secret and mails
// the secret to the owner. A failed email does not fail the registration.
func (u *DomainUsecase) Register(ctx context.Context, ownerID, host string, tier domain.Tier) (*domain.Domain, error) {
	if err := domain.ValidateTier(tier); err != nil {
		return nil, err
	}

	host = domain.NormalizeHost(host)
	if host == "" {
		return nil, domain.ErrInvalidHost
	}

	owner, err := u.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("find owner: %w", err)
	}

	d := &domain.Domain{
		UserID: owner.ID,
		Host:   host,
		Tier:   tier,
	}

	var created *domain.Domain
	for attempt := 0; attempt < 2; attempt++ {
		d.ClientSecret = u.newSecret()
		created, err = u.domains.Create(ctx, d)
		if !errors.Is(err, domain.ErrDuplicateSecret) {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("create domain: %w", err)
	}

	subject, body := email.DomainRegistered(created.Host, string(created.Tier), created.ClientSecret)
	if err := u.email.Send(ctx, owner.Email, subject, body); err != nil {
		u.logger.ErrorContext(ctx, "registration email failed", "domain_id", created.ID, "error", err)
	}

	return created, nil
}

package usecase_test

import (
	"context"
	"time"

	"github.com/ErlanBelekov/domain-gateway/internal/domain"
)

type fakeDomainRepo struct {
	create       func(ctx context.Context, d *domain.Domain) (*domain.Domain, error)
	findBySecret func(ctx context.Context, secret string) (*domain.Domain, error)
	findByHost   func(ctx context.Context, host string) (*domain.Domain, error)
}

func (r *fakeDomainRepo) Create(ctx context.Context, d *domain.Domain) (*domain.Domain, error) {
	return r.create(ctx, d)
}

func (r *fakeDomainRepo) FindBySecret(ctx context.Context, secret string) (*domain.Domain, error) {
	return r.findBySecret(ctx, secret)
}

func (r *fakeDomainRepo) FindByHost(ctx context.Context, host string) (*domain.Domain, error) {
	return r.findByHost(ctx, host)
}

type fakeUserRepo struct {
	findByID func(ctx context.Context, id string) (*domain.User, error)
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findByID(ctx, id)
}

type fakePostRepo struct {
	listByOwner   func(ctx context.Context, userID string) ([]*domain.Post, error)
	listByHashtag func(ctx context.Context, title string) ([]*domain.Post, error)
}

func (r *fakePostRepo) ListByOwner(ctx context.Context, userID string) ([]*domain.Post, error) {
	return r.listByOwner(ctx, userID)
}

func (r *fakePostRepo) ListByHashtag(ctx context.Context, title string) ([]*domain.Post, error) {
	return r.listByHashtag(ctx, title)
}

type fakeEmailSender struct {
	send func(ctx context.Context, to, subject, body string) error
}

func (s *fakeEmailSender) Send(ctx context.Context, to, subject, body string) error {
	return s.send(ctx, to, subject, body)
}

type fakeMinter struct {
	mint func(owner *domain.User, ttl time.Duration) (string, time.Time, error)
}

func (m *fakeMinter) Mint(owner *domain.User, ttl time.Duration) (string, time.Time, error) {
	return m.mint(owner, ttl)
}

var testOwner = &domain.User{ID: "user-1", Email: "owner@example.com", Nick: "zero"}

func ownerRepo() *fakeUserRepo {
	return &fakeUserRepo{
		findByID: func(_ context.Context, id string) (*domain.User, error) {
			if id == testOwner.ID {
				return testOwner, nil
			}
			return nil, domain.ErrUserNotFound
		},
	}
}

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ErlanBelekov/domain-gateway/internal/domain"
	"github.com/ErlanBelekov/domain-gateway/internal/token"
	"github.com/ErlanBelekov/domain-gateway/internal/usecase"
)

const testSecret = "8c4f7c1e-6f0a-4d1b-9b7e-2f3a1c0d9e55"

func secretRepo() *fakeDomainRepo {
	return &fakeDomainRepo{
		findBySecret: func(_ context.Context, secret string) (*domain.Domain, error) {
			if secret == testSecret {
				return &domain.Domain{ID: "domain-1", UserID: testOwner.ID, Host: "shop.example.com", Tier: domain.TierFree}, nil
			}
			return nil, domain.ErrDomainNotFound
		},
	}
}

func TestIssue_MintsTokenForOwner(t *testing.T) {
	epoch := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	m := token.NewManager([]byte("credential-test-secret-32-chars!!"), "nodebird").
		WithClock(func() time.Time { return epoch })

	issued, err := usecase.NewCredentialUsecase(secretRepo(), ownerRepo(), m).
		Issue(context.Background(), testSecret, 30*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if issued.Owner.ID != testOwner.ID {
		t.Errorf("owner = %q, want %q", issued.Owner.ID, testOwner.ID)
	}
	if !issued.ExpiresAt.Equal(epoch.Add(30 * time.Minute)) {
		t.Errorf("expiresAt = %v", issued.ExpiresAt)
	}

	claims, err := m.Verify(issued.Token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.UserID != testOwner.ID || claims.Nick != testOwner.Nick {
		t.Errorf("claims = %+v", claims)
	}
}

func TestIssue_PassesGenerationTTL(t *testing.T) {
	var gotTTL time.Duration
	minter := &fakeMinter{mint: func(_ *domain.User, ttl time.Duration) (string, time.Time, error) {
		gotTTL = ttl
		return "tok", time.Time{}, nil
	}}

	if _, err := usecase.NewCredentialUsecase(secretRepo(), ownerRepo(), minter).
		Issue(context.Background(), testSecret, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotTTL != time.Minute {
		t.Errorf("ttl = %v, want 1m", gotTTL)
	}
}

func TestIssue_UnknownSecret(t *testing.T) {
	minter := &fakeMinter{mint: func(*domain.User, time.Duration) (string, time.Time, error) {
		t.Fatal("mint must not be called for an unknown secret")
		return "", time.Time{}, nil
	}}

	for _, secret := range []string{"", "not-registered"} {
		_, err := usecase.NewCredentialUsecase(secretRepo(), ownerRepo(), minter).
			Issue(context.Background(), secret, time.Minute)
		if !errors.Is(err, domain.ErrDomainNotFound) {
			t.Errorf("Issue(%q) err = %v, want ErrDomainNotFound", secret, err)
		}
	}
}

func TestIssue_RepositoryFailureIsWrapped(t *testing.T) {
	boom := errors.New("connection reset")
	repo := &fakeDomainRepo{findBySecret: func(context.Context, string) (*domain.Domain, error) {
		return nil, boom
	}}

	_, err := usecase.NewCredentialUsecase(repo, ownerRepo(), &fakeMinter{}).
		Issue(context.Background(), testSecret, time.Minute)
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped %v", err, boom)
	}
	if errors.Is(err, domain.ErrDomainNotFound) {
		t.Error("infrastructure failure must not look like an unregistered domain")
	}
}

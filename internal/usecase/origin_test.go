package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ErlanBelekov/domain-gateway/internal/domain"
	"github.com/ErlanBelekov/domain-gateway/internal/usecase"
)

func hostRepo(lookups *[]string) *fakeDomainRepo {
	return &fakeDomainRepo{
		findByHost: func(_ context.Context, host string) (*domain.Domain, error) {
			*lookups = append(*lookups, host)
			if host == "shop.example.com" || host == "localhost:4000" {
				return &domain.Domain{Host: host}, nil
			}
			return nil, domain.ErrDomainNotFound
		},
	}
}

func TestDecide_RegisteredHostGrantsExactOrigin(t *testing.T) {
	var lookups []string
	uc := usecase.NewOriginUsecase(hostRepo(&lookups))

	for _, origin := range []string{"https://shop.example.com", "http://localhost:4000"} {
		got, err := uc.Decide(context.Background(), origin)
		if err != nil {
			t.Fatalf("Decide(%q): %v", origin, err)
		}
		if !got.Granted || got.Origin != origin {
			t.Errorf("Decide(%q) = %+v, want grant echoing the origin", origin, got)
		}
	}
}

func TestDecide_UnregisteredHostDenied(t *testing.T) {
	var lookups []string
	got, err := usecase.NewOriginUsecase(hostRepo(&lookups)).Decide(context.Background(), "https://evil.example.net")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Granted || got.Origin != "" {
		t.Errorf("decision = %+v, want deny", got)
	}
}

func TestDecide_MissingOrOpaqueOriginSkipsLookup(t *testing.T) {
	var lookups []string
	uc := usecase.NewOriginUsecase(hostRepo(&lookups))

	for _, origin := range []string{"", "null", "::not a url"} {
		got, err := uc.Decide(context.Background(), origin)
		if err != nil || got.Granted {
			t.Errorf("Decide(%q) = %+v, %v; want deny", origin, got, err)
		}
	}
	if len(lookups) != 0 {
		t.Errorf("registry queried for %v", lookups)
	}
}

func TestDecide_RegistryErrorDeniesAndReports(t *testing.T) {
	boom := errors.New("pool closed")
	repo := &fakeDomainRepo{findByHost: func(context.Context, string) (*domain.Domain, error) {
		return nil, boom
	}}

	got, err := usecase.NewOriginUsecase(repo).Decide(context.Background(), "https://shop.example.com")
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
	if got.Granted {
		t.Error("registry failure must not grant")
	}
}

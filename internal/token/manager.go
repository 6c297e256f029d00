// Package token mints and verifies the signed credentials handed to
// registered domains. Verification needs only the signing key.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/domain-gateway/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

type claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Nick   string `json:"nick"`
}

type Manager struct {
	key    []byte
	issuer string
	now    func() time.Time
}

func NewManager(key []byte, issuer string) *Manager {
	return &Manager{key: key, issuer: issuer, now: time.Now}
}

// WithClock returns a copy of m that reads the time from now.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	c := *m
	c.now = now
	return &c
}

// Mint signs a token for owner that expires ttl from now.
func (m *Manager) Mint(owner *domain.User, ttl time.Duration) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(ttl)

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   owner.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: owner.ID,
		Nick:   owner.Nick,
	})

	signed, err := t.SignedString(m.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign jwt: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks the signature first and the claims second. Only a correctly
// signed token past its exp yields domain.ErrTokenExpired; every other failure
// is domain.ErrTokenInvalid.
func (m *Manager) Verify(raw string) (*domain.Claims, error) {
	if raw == "" {
		return nil, domain.ErrTokenInvalid
	}

	var c claims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if _, err := parser.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return m.key, nil
	}); err != nil {
		return nil, domain.ErrTokenInvalid
	}

	validator := jwt.NewValidator(
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err := validator.Validate(c); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrTokenInvalidIssuer) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	if c.UserID == "" {
		return nil, domain.ErrTokenInvalid
	}

	out := &domain.Claims{
		UserID: c.UserID,
		Nick:   c.Nick,
		Issuer: c.Issuer,
	}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out, nil
}

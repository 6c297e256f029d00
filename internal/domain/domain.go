package domain

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

var (
	ErrDomainNotFound  = errors.New("domain not registered")
	ErrInvalidTier     = errors.New("tier must be free or premium")
	ErrInvalidHost     = errors.New("host is required")
	ErrDuplicateSecret = errors.New("client secret already in use")
)

type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

// Domain is a registered caller: the host it serves from, its service tier and
// the secret it exchanges for tokens.
type Domain struct {
	ID           string
	UserID       string
	Host         string
	Tier         Tier
	ClientSecret string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time // nil while the domain is live
}

func ValidateTier(t Tier) error {
	switch t {
	case TierFree, TierPremium:
		return nil
	default:
		return ErrInvalidTier
	}
}

// NormalizeHost lower-cases a host and drops any scheme, path or surrounding
// whitespace, so "https://Example.com/" and "example.com" compare equal.
// The port is kept. A value with a scheme but no parsable host yields "".
func NormalizeHost(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil || u.Host == "" {
			return ""
		}
		s = u.Host
	}
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	return strings.ToLower(s)
}

// HostFromOrigin extracts the host[:port] part of an Origin header value.
// Returns "" for empty, opaque ("null") or unparsable origins.
func HostFromOrigin(origin string) string {
	origin = strings.TrimSpace(origin)
	if origin == "" || origin == "null" {
		return ""
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.ToLower(u.Host)
}

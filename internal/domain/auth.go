package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenExpired = errors.New("token has expired")
)

type User struct {
	ID        string
	Email     string
	Nick      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Claims is the identity carried by a gateway token.
type Claims struct {
	UserID    string
	Nick      string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

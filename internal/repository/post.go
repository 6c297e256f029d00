package repository

import (
	"context"

	"github.com/ErlanBelekov/domain-gateway/internal/domain"
)

type PostRepository interface {
	ListByOwner(ctx context.Context, userID string) ([]*domain.Post, error)
	// ListByHashtag returns domain.ErrHashtagNotFound when no hashtag has this title.
	ListByHashtag(ctx context.Context, title string) ([]*domain.Post, error)
}

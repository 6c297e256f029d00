package usecase

import (
	"context"
	"strings"

	"github.com/ErlanBelekov/domain-gateway/internal/domain"
	"github.com/ErlanBelekov/domain-gateway/internal/repository"
)

type PostUsecase struct {
	posts repository.PostRepository
}

func NewPostUsecase(posts repository.PostRepository) *PostUsecase {
	return &PostUsecase{posts: posts}
}

func (u *PostUsecase) ListMine(ctx context.Context, userID string) ([]*domain.Post, error) {
	return u.posts.ListByOwner(ctx, userID)
}

// ListByHashtag matches titles without a leading '#' and case-insensitively.
func (u *PostUsecase) ListByHashtag(ctx context.Context, title string) ([]*domain.Post, error) {
	title = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(title), "#"))
	if title == "" {
		return nil, domain.ErrHashtagNotFound
	}
	return u.posts.ListByHashtag(ctx, title)
}

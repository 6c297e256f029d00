package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ErlanBelekov/domain-gateway/internal/domain"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

// Create stores a post and links it to the given hashtags, creating any that
// do not exist yet.
func (r *PostRepository) Create(ctx context.Context, p *domain.Post, hashtags []string) (*domain.Post, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	row := tx.QueryRow(ctx, `
		INSERT INTO posts (user_id, content, img) VALUES ($1, $2, $3)
		RETURNING id, user_id, content, img, created_at`,
		p.UserID, p.Content, p.Img,
	)
	created, err := scanPost(row)
	if err != nil {
		return nil, err
	}

	for _, title := range hashtags {
		var hashtagID string
		err := tx.QueryRow(ctx, `
			INSERT INTO hashtags (title) VALUES ($1)
			ON CONFLICT (title) DO UPDATE SET title = EXCLUDED.title
			RETURNING id`, title,
		).Scan(&hashtagID)
		if err != nil {
			return nil, fmt.Errorf("upsert hashtag %q: %w", title, err)
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO post_hashtags (post_id, hashtag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			created.ID, hashtagID,
		); err != nil {
			return nil, fmt.Errorf("link hashtag %q: %w", title, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return created, nil
}

func (r *PostRepository) ListByOwner(ctx context.Context, userID string) ([]*domain.Post, error) {
	query := `
		SELECT id, user_id, content, img, created_at
		FROM posts
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list posts by owner: %w", err)
	}
	return collectPosts(rows)
}

func (r *PostRepository) ListByHashtag(ctx context.Context, title string) ([]*domain.Post, error) {
	var hashtagID string
	err := r.pool.QueryRow(ctx, `SELECT id FROM hashtags WHERE title = $1`, title).Scan(&hashtagID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHashtagNotFound
		}
		return nil, fmt.Errorf("find hashtag: %w", err)
	}

	query := `
		SELECT p.id, p.user_id, p.content, p.img, p.created_at
		FROM posts p
		JOIN post_hashtags ph ON ph.post_id = p.id
		WHERE ph.hashtag_id = $1
		ORDER BY p.created_at DESC`

	rows, err := r.pool.Query(ctx, query, hashtagID)
	if err != nil {
		return nil, fmt.Errorf("list posts by hashtag: %w", err)
	}
	return collectPosts(rows)
}

func collectPosts(rows pgx.Rows) ([]*domain.Post, error) {
	defer rows.Close()

	posts := make([]*domain.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var p domain.Post
	if err := row.Scan(&p.ID, &p.UserID, &p.Content, &p.Img, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan post: %w", err)
	}
	return &p, nil
}

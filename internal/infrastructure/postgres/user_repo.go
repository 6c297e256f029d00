package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ErlanBelekov/domain-gateway/internal/domain"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts a user, or returns the existing one when the email is taken.
func (r *UserRepository) Create(ctx context.Context, email, nick string) (*domain.User, error) {
	query := `
		INSERT INTO users (email, nick) VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET updated_at = users.updated_at
		RETURNING id, email, nick, created_at, updated_at`

	return scanUser(r.pool.QueryRow(ctx, query, email, nick))
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, email, nick, created_at, updated_at FROM users WHERE id = $1`

	u, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, userLookupErr(err)
	}
	return u, nil
}

// userLookupErr folds an id that is not a uuid into ErrUserNotFound; no such
// user can exist.
func userLookupErr(err error) error {
	if pgCode(err) == codeInvalidTextRepresent {
		return domain.ErrUserNotFound
	}
	return err
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Nick, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

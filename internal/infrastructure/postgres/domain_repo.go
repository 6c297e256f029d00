package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ErlanBelekov/domain-gateway/internal/domain"
)

const (
	codeUniqueViolation      = "23505"
	codeInvalidTextRepresent = "22P02"
)

// pgCode returns the SQLSTATE carried by err, or "" for non-postgres errors.
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

const domainColumns = `id, user_id, host, tier, client_secret, created_at, updated_at, deleted_at`

type DomainRepository struct {
	pool *pgxpool.Pool
}

func NewDomainRepository(pool *pgxpool.Pool) *DomainRepository {
	return &DomainRepository{pool: pool}
}

func (r *DomainRepository) Create(ctx context.Context, d *domain.Domain) (*domain.Domain, error) {
	query := `
		INSERT INTO domains (user_id, host, tier, client_secret)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + domainColumns

	row := r.pool.QueryRow(ctx, query, d.UserID, d.Host, d.Tier, d.ClientSecret)

	created, err := scanDomain(row)
	if err != nil {
		if pgCode(err) == codeUniqueViolation {
			return nil, domain.ErrDuplicateSecret
		}
		return nil, err
	}
	return created, nil
}

func (r *DomainRepository) FindBySecret(ctx context.Context, secret string) (*domain.Domain, error) {
	query := `
		SELECT ` + domainColumns + `
		FROM domains
		WHERE client_secret = $1 AND deleted_at IS NULL`

	return scanDomain(r.pool.QueryRow(ctx, query, secret))
}

// FindByHost returns the most recently registered live domain for host.
func (r *DomainRepository) FindByHost(ctx context.Context, host string) (*domain.Domain, error) {
	query := `
		SELECT ` + domainColumns + `
		FROM domains
		WHERE host = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT 1`

	return scanDomain(r.pool.QueryRow(ctx, query, host))
}

func scanDomain(row pgx.Row) (*domain.Domain, error) {
	var d domain.Domain
	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.Host,
		&d.Tier,
		&d.ClientSecret,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDomainNotFound
		}
		return nil, fmt.Errorf("scan domain: %w", err)
	}
	return &d, nil
}

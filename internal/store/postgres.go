package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uni-3/my-url-shortener/internal/shortener"
)

const uniqueViolation = "23505"

// TokenFunc generates the random placeholder token used during the two-phase
// insert.
type TokenFunc func() string

// PostgresRegistry is a PostgreSQL implementation of shortener.Registry.
type PostgresRegistry struct {
	pool     *pgxpool.Pool
	codec    *shortener.Codec
	newToken TokenFunc
}

// NewPostgresRegistry creates a new PostgreSQL-backed registry.
func NewPostgresRegistry(pool *pgxpool.Pool, codec *shortener.Codec, newToken TokenFunc) *PostgresRegistry {
	return &PostgresRegistry{
		pool:     pool,
		codec:    codec,
		newToken: newToken,
	}
}

func (p *PostgresRegistry) FindByCanonicalURL(ctx context.Context, canonicalURL string) (*shortener.Mapping, error) {
	return p.findBy(ctx, "canonical_url", canonicalURL)
}

func (p *PostgresRegistry) FindByShortCode(ctx context.Context, code string) (*shortener.Mapping, error) {
	return p.findBy(ctx, "short_code", code)
}

func (p *PostgresRegistry) findBy(ctx context.Context, column, value string) (*shortener.Mapping, error) {
	query := fmt.Sprintf(`
		SELECT id, canonical_url, short_code, created_at
		FROM urls
		WHERE %s = $1
	`, column)

	var m shortener.Mapping

	err := p.pool.QueryRow(ctx, query, value).Scan(
		&m.ID,
		&m.CanonicalURL,
		&m.ShortCode,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	return &m, nil
}

// CreateMapping inserts a mapping for canonicalURL using the two-phase
// protocol: insert a row with a placeholder code to obtain the id, encode the
// id into the final code, and update the row, all inside one transaction.
// No reader ever observes the placeholder.
//
// The urls table carries a unique constraint on canonical_url; when a
// concurrent request wins the insert race, the violation is caught and the
// winner's row is returned with created=false.
func (p *PostgresRegistry) CreateMapping(ctx context.Context, canonicalURL string) (*shortener.Mapping, bool, error) {
	mapping, err := p.create(ctx, canonicalURL)
	if err == nil {
		return mapping, true, nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		existing, findErr := p.FindByCanonicalURL(ctx, canonicalURL)
		if findErr != nil {
			return nil, false, fmt.Errorf("fetch after unique violation: %w", findErr)
		}

		return existing, false, nil
	}

	return nil, false, err
}

func (p *PostgresRegistry) create(ctx context.Context, canonicalURL string) (*shortener.Mapping, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}

	defer func() { _ = tx.Rollback(ctx) }()

	placeholder := "tmp-" + p.newToken()

	m := shortener.Mapping{CanonicalURL: canonicalURL}

	err = tx.QueryRow(ctx, `
		INSERT INTO urls (canonical_url, short_code)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, canonicalURL, placeholder).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, err
	}

	code, err := p.codec.Encode(m.ID)
	if err != nil {
		return nil, err
	}

	if _, err = tx.Exec(ctx, `
		UPDATE urls SET short_code = $1 WHERE id = $2
	`, code, m.ID); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	m.ShortCode = code

	return &m, nil
}

// Compile-time check.
var _ shortener.Registry = (*PostgresRegistry)(nil)

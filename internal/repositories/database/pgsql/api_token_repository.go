package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pharmaflow/pharma_returns_app/internal/apperrors"
	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	portsrepo "github.com/pharmaflow/pharma_returns_app/internal/core/ports/repositories"
	"github.com/pharmaflow/pharma_returns_app/internal/models"
	"github.com/pharmaflow/pharma_returns_app/internal/utils/mapping"
)

type PgxAPITokenRepository struct {
	BaseRepository
}

// newPgxAPITokenRepository creates a new repository for API tokens.
func newPgxAPITokenRepository(pool *pgxpool.Pool) portsrepo.APITokenRepository {
	return &PgxAPITokenRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.APITokenRepository = (*PgxAPITokenRepository)(nil)

const apiTokenColumns = `id, user_id, name, token_hash, last_used_at, expires_at, created_at, updated_at`

func scanAPIToken(row pgx.Row) (models.APIToken, error) {
	var m models.APIToken
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Name,
		&m.TokenHash,
		&m.LastUsedAt,
		&m.ExpiresAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// Create persists a new API token.
func (r *PgxAPITokenRepository) Create(ctx context.Context, token *domain.APIToken) error {
	m := mapping.ToModelAPIToken(*token)
	query := `
		INSERT INTO api_tokens (` + apiTokenColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ID,
		m.UserID,
		m.Name,
		m.TokenHash,
		m.LastUsedAt,
		m.ExpiresAt,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert API token "+m.ID, err)
	}
	return nil
}

// FindByID retrieves an API token by its ID.
func (r *PgxAPITokenRepository) FindByID(ctx context.Context, id string) (*domain.APIToken, error) {
	query := `SELECT ` + apiTokenColumns + ` FROM api_tokens WHERE id = $1;`
	m, err := scanAPIToken(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find API token "+id, err)
	}
	d := mapping.ToDomainAPIToken(m)
	return &d, nil
}

// FindByTokenHash retrieves an API token by the hash of its plaintext.
func (r *PgxAPITokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*domain.APIToken, error) {
	query := `SELECT ` + apiTokenColumns + ` FROM api_tokens WHERE token_hash = $1;`
	m, err := scanAPIToken(r.Pool.QueryRow(ctx, query, tokenHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find API token by hash", err)
	}
	d := mapping.ToDomainAPIToken(m)
	return &d, nil
}

// FindByUserID retrieves all API tokens for a specific user.
func (r *PgxAPITokenRepository) FindByUserID(ctx context.Context, userID string) ([]domain.APIToken, error) {
	query := `SELECT ` + apiTokenColumns + ` FROM api_tokens WHERE user_id = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query API tokens for user "+userID, err)
	}
	defer rows.Close()

	tokens := []models.APIToken{}
	for rows.Next() {
		m, err := scanAPIToken(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan API token row", err)
		}
		tokens = append(tokens, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating API token rows", err)
	}
	return mapping.ToDomainAPITokenSlice(tokens), nil
}

// Update updates an existing API token.
func (r *PgxAPITokenRepository) Update(ctx context.Context, token *domain.APIToken) error {
	m := mapping.ToModelAPIToken(*token)
	query := `
		UPDATE api_tokens
		SET name = $1, last_used_at = $2, expires_at = $3, updated_at = $4
		WHERE id = $5;
	`
	tag, err := r.Pool.Exec(ctx, query, m.Name, m.LastUsedAt, m.ExpiresAt, m.UpdatedAt, m.ID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update API token "+m.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes an API token by ID.
func (r *PgxAPITokenRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM api_tokens WHERE id = $1;`, id)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete API token "+id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteByUserID removes all API tokens for a specific user.
func (r *PgxAPITokenRepository) DeleteByUserID(ctx context.Context, userID string) error {
	if _, err := r.Pool.Exec(ctx, `DELETE FROM api_tokens WHERE user_id = $1;`, userID); err != nil {
		return apperrors.NewAppError(500, "failed to delete API tokens for user "+userID, err)
	}
	return nil
}

// DeleteExpired removes all API tokens that expired before the given time.
func (r *PgxAPITokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM api_tokens WHERE expires_at IS NOT NULL AND expires_at < $1;`, before)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete expired API tokens", err)
	}
	return tag.RowsAffected(), nil
}

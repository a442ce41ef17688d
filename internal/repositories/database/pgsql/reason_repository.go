package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pharmaflow/pharma_returns_app/internal/apperrors"
	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	portsrepo "github.com/pharmaflow/pharma_returns_app/internal/core/ports/repositories"
	"github.com/pharmaflow/pharma_returns_app/internal/models"
	"github.com/pharmaflow/pharma_returns_app/internal/utils/mapping"
)

type PgxReasonRepository struct {
	BaseRepository
}

// newPgxReasonRepository creates a new repository for the classification
// reason vocabulary.
func newPgxReasonRepository(pool *pgxpool.Pool) portsrepo.ReasonRepository {
	return &PgxReasonRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReasonRepository = (*PgxReasonRepository)(nil)

const reasonColumns = `reason_id, name, description, created_at, created_by, last_updated_at, last_updated_by`

func scanReason(row pgx.Row) (models.Reason, error) {
	var m models.Reason
	err := row.Scan(
		&m.ReasonID,
		&m.Name,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveReason inserts or updates a reason.
func (r *PgxReasonRepository) SaveReason(ctx context.Context, reason domain.Reason) error {
	m := mapping.ToModelReason(reason)
	query := `
		INSERT INTO reasons (` + reasonColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (reason_id) DO UPDATE SET
			description = EXCLUDED.description,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ReasonID,
		m.Name,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save reason "+m.ReasonID, err)
	}
	return nil
}

// FindReasonByID retrieves a reason by its identifier.
func (r *PgxReasonRepository) FindReasonByID(ctx context.Context, reasonID string) (*domain.Reason, error) {
	query := `SELECT ` + reasonColumns + ` FROM reasons WHERE reason_id = $1;`
	m, err := scanReason(r.Pool.QueryRow(ctx, query, reasonID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find reason by ID "+reasonID, err)
	}
	d := mapping.ToDomainReason(m)
	return &d, nil
}

// FindReasonByName retrieves a reason by its unique name.
func (r *PgxReasonRepository) FindReasonByName(ctx context.Context, name domain.ReasonName) (*domain.Reason, error) {
	query := `SELECT ` + reasonColumns + ` FROM reasons WHERE name = $1;`
	m, err := scanReason(r.Pool.QueryRow(ctx, query, string(name)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find reason by name "+string(name), err)
	}
	d := mapping.ToDomainReason(m)
	return &d, nil
}

// ListReasons retrieves all reasons ordered by name.
func (r *PgxReasonRepository) ListReasons(ctx context.Context) ([]domain.Reason, error) {
	query := `SELECT ` + reasonColumns + ` FROM reasons ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query reasons", err)
	}
	defer rows.Close()

	reasons := []models.Reason{}
	for rows.Next() {
		m, err := scanReason(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan reason row", err)
		}
		reasons = append(reasons, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating reason rows", err)
	}
	return mapping.ToDomainReasonSlice(reasons), nil
}

// CountReasons returns the number of reasons in the vocabulary.
func (r *PgxReasonRepository) CountReasons(ctx context.Context) (int64, error) {
	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM reasons;`).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count reasons", err)
	}
	return count, nil
}

// CountItemsReferencing returns the number of line items referencing the reason.
func (r *PgxReasonRepository) CountItemsReferencing(ctx context.Context, reasonID string) (int64, error) {
	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM line_items WHERE reason_id = $1;`, reasonID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count items referencing reason "+reasonID, err)
	}
	return count, nil
}

// DeleteReason removes a reason. FK constraints still protect referenced rows.
func (r *PgxReasonRepository) DeleteReason(ctx context.Context, reasonID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM reasons WHERE reason_id = $1;`, reasonID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete reason "+reasonID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

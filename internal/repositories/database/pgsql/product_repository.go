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

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for the NDC product registry.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

const productColumns = `ndc, drug_name, manufacturer, policy_code, base_credit_value, created_at, created_by, last_updated_at, last_updated_by`

func scanProduct(row pgx.Row) (models.ProductRecord, error) {
	var m models.ProductRecord
	err := row.Scan(
		&m.NDC,
		&m.DrugName,
		&m.Manufacturer,
		&m.PolicyCode,
		&m.BaseCreditValue,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveProduct inserts or updates a registry record keyed by NDC.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.ProductRecord) error {
	m := mapping.ToModelProduct(product)
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (ndc) DO UPDATE SET
			drug_name = EXCLUDED.drug_name,
			manufacturer = EXCLUDED.manufacturer,
			policy_code = EXCLUDED.policy_code,
			base_credit_value = EXCLUDED.base_credit_value,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.NDC,
		m.DrugName,
		m.Manufacturer,
		m.PolicyCode,
		m.BaseCreditValue,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save product "+m.NDC, err)
	}
	return nil
}

// FindProductByNDC retrieves a registry record by NDC.
func (r *PgxProductRepository) FindProductByNDC(ctx context.Context, ndc string) (*domain.ProductRecord, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE ndc = $1;`
	m, err := scanProduct(r.Pool.QueryRow(ctx, query, ndc))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find product by NDC "+ndc, err)
	}
	d := mapping.ToDomainProduct(m)
	return &d, nil
}

// FindProductsByNDCs retrieves registry records for multiple NDCs, keyed by
// NDC. Missing NDCs are simply absent from the result.
func (r *PgxProductRepository) FindProductsByNDCs(ctx context.Context, ndcs []string) (map[string]domain.ProductRecord, error) {
	result := make(map[string]domain.ProductRecord, len(ndcs))
	if len(ndcs) == 0 {
		return result, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE ndc = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, ndcs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query products by NDCs", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan product row", err)
		}
		result[m.NDC] = mapping.ToDomainProduct(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating product rows", err)
	}
	return result, nil
}

// ListProducts retrieves a page of registry records ordered by NDC.
func (r *PgxProductRepository) ListProducts(ctx context.Context, limit int, offset int) ([]domain.ProductRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + productColumns + ` FROM products ORDER BY ndc LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query products", err)
	}
	defer rows.Close()

	products := []models.ProductRecord{}
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan product row", err)
		}
		products = append(products, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating product rows", err)
	}
	return mapping.ToDomainProductSlice(products), nil
}

// CountProducts returns the number of registry records.
func (r *PgxProductRepository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM products;`).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count products", err)
	}
	return count, nil
}

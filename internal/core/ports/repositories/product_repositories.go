package repositories

import (
	"context"

	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
)

// ProductReader defines read operations for the NDC registry.
type ProductReader interface {
	// FindProductByNDC retrieves a registry record by NDC. Returns
	// apperrors.ErrNotFound when the NDC is not in the registry.
	FindProductByNDC(ctx context.Context, ndc string) (*domain.ProductRecord, error)

	// FindProductsByNDCs retrieves registry records for multiple NDCs, keyed
	// by NDC. Missing NDCs are simply absent from the map.
	FindProductsByNDCs(ctx context.Context, ndcs []string) (map[string]domain.ProductRecord, error)

	// ListProducts retrieves a page of registry records ordered by NDC.
	ListProducts(ctx context.Context, limit int, offset int) ([]domain.ProductRecord, error)

	// CountProducts returns the number of registry records.
	CountProducts(ctx context.Context) (int64, error)
}

// ProductWriter defines write operations for the NDC registry.
type ProductWriter interface {
	// SaveProduct inserts or updates a registry record.
	SaveProduct(ctx context.Context, product domain.ProductRecord) error
}

// ProductRepositoryFacade combines registry read and write operations.
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}

package services

import (
	"context"

	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	"github.com/pharmaflow/pharma_returns_app/internal/dto"
)

// ProductReaderSvc defines read operations for the NDC registry
type ProductReaderSvc interface {
	// GetProductByNDC retrieves a product record by its NDC.
	GetProductByNDC(ctx context.Context, ndc string) (*domain.ProductRecord, error)

	// ListProducts retrieves a paginated list of registered products.
	ListProducts(ctx context.Context, params dto.ListProductsParams) (*dto.ListProductsResponse, error)
}

// ProductWriterSvc defines write operations for the NDC registry
type ProductWriterSvc interface {
	// CreateProduct registers a new NDC.
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.ProductRecord, error)
}

// ProductSvcFacade combines all product-related service interfaces
type ProductSvcFacade interface {
	ProductReaderSvc
	ProductWriterSvc
}

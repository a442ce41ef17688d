package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pharmaflow/pharma_returns_app/internal/apperrors"
	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	portsrepo "github.com/pharmaflow/pharma_returns_app/internal/core/ports/repositories"
	portssvc "github.com/pharmaflow/pharma_returns_app/internal/core/ports/services"
	"github.com/pharmaflow/pharma_returns_app/internal/dto"
	"github.com/pharmaflow/pharma_returns_app/internal/middleware"
)

// productService manages the NDC product registry.
type productService struct {
	productRepo portsrepo.ProductRepositoryFacade
}

// NewProductService creates a new product service.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade) portssvc.ProductSvcFacade {
	return &productService{productRepo: productRepo}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

// CreateProduct registers a new NDC in the registry.
func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.ProductRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.BaseCreditValue.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: base credit value must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	product := domain.ProductRecord{
		NDC:             req.NDC,
		DrugName:        req.DrugName,
		Manufacturer:    req.Manufacturer,
		PolicyCode:      req.PolicyCode,
		BaseCreditValue: req.BaseCreditValue,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		logger.Error("Failed to save product", slog.String("error", err.Error()), slog.String("ndc", req.NDC))
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logger.Info("Product registered", slog.String("ndc", product.NDC), slog.String("manufacturer", product.Manufacturer))
	return &product, nil
}

// GetProductByNDC retrieves a product record by its NDC.
func (s *productService) GetProductByNDC(ctx context.Context, ndc string) (*domain.ProductRecord, error) {
	product, err := s.productRepo.FindProductByNDC(ctx, ndc)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", ndc, err)
	}
	return product, nil
}

// ListProducts retrieves a paginated list of registered products.
func (s *productService) ListProducts(ctx context.Context, params dto.ListProductsParams) (*dto.ListProductsResponse, error) {
	if params.Limit <= 0 {
		params.Limit = 20
	}
	products, err := s.productRepo.ListProducts(ctx, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	resp := dto.ToListProductsResponse(products)
	return &resp, nil
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	portsrepo "github.com/pharmaflow/pharma_returns_app/internal/core/ports/repositories"
	portssvc "github.com/pharmaflow/pharma_returns_app/internal/core/ports/services"
	"github.com/pharmaflow/pharma_returns_app/internal/middleware"
)

// staticDataService seeds reference data on startup: the classification
// vocabulary, the demo NDC registry entries, and the return categories.
// Each table is only seeded when empty, so restarts are safe.
type staticDataService struct {
	productRepo portsrepo.ProductRepositoryFacade
	reasonRepo  portsrepo.ReasonRepository
	reportRepo  portsrepo.ReportRepositoryFacade
}

// NewStaticDataService creates the startup seeding service.
func NewStaticDataService(productRepo portsrepo.ProductRepositoryFacade, reasonRepo portsrepo.ReasonRepository, reportRepo portsrepo.ReportRepositoryFacade) portssvc.StaticDataService {
	return &staticDataService{
		productRepo: productRepo,
		reasonRepo:  reasonRepo,
		reportRepo:  reportRepo,
	}
}

var _ portssvc.StaticDataService = (*staticDataService)(nil)

// seedProducts is the starter NDC registry.
func seedProducts() []domain.ProductRecord {
	return []domain.ProductRecord{
		{NDC: "0002-1234-01", DrugName: "Lipidol 20mg", Manufacturer: "PharmaCo", BaseCreditValue: decimal.RequireFromString("12.50")},
		{NDC: "0003-5678-02", DrugName: "Cardizem XR", Manufacturer: "MediCorp", BaseCreditValue: decimal.RequireFromString("8.99")},
		{NDC: "0004-9012-03", DrugName: "Restrictol", Manufacturer: "NoReturn Inc", PolicyCode: domain.PolicyNonReturnable, BaseCreditValue: decimal.Zero},
	}
}

// InitializeStaticData seeds reasons, products, and categories when their
// tables are empty.
func (s *staticDataService) InitializeStaticData(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	reasonCount, err := s.reasonRepo.CountReasons(ctx)
	if err != nil {
		return fmt.Errorf("failed to count reasons: %w", err)
	}
	if reasonCount == 0 {
		for _, reason := range domain.DefaultReasons() {
			reason.ReasonID = uuid.NewString()
			reason.AuditFields = domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     domain.ActorSystem,
				LastUpdatedAt: now,
				LastUpdatedBy: domain.ActorSystem,
			}
			if err := s.reasonRepo.SaveReason(ctx, reason); err != nil {
				return fmt.Errorf("failed to seed reason %q: %w", reason.Name, err)
			}
		}
		logger.Info("Seeded classification reasons", slog.Int("count", len(domain.DefaultReasons())))
	}

	productCount, err := s.productRepo.CountProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if productCount == 0 {
		for _, product := range seedProducts() {
			product.AuditFields = domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     domain.ActorSystem,
				LastUpdatedAt: now,
				LastUpdatedBy: domain.ActorSystem,
			}
			if err := s.productRepo.SaveProduct(ctx, product); err != nil {
				return fmt.Errorf("failed to seed product %s: %w", product.NDC, err)
			}
		}
		logger.Info("Seeded product registry", slog.Int("count", len(seedProducts())))
	}

	categoryCount, err := s.reportRepo.CountCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if categoryCount == 0 {
		for _, category := range domain.DefaultReturnCategories() {
			category.CategoryID = uuid.NewString()
			if err := s.reportRepo.SaveCategory(ctx, category); err != nil {
				return fmt.Errorf("failed to seed category %q: %w", category.Name, err)
			}
		}
		logger.Info("Seeded return categories", slog.Int("count", len(domain.DefaultReturnCategories())))
	}

	return nil
}

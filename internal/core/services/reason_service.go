package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pharmaflow/pharma_returns_app/internal/apperrors"
	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	portsrepo "github.com/pharmaflow/pharma_returns_app/internal/core/ports/repositories"
	portssvc "github.com/pharmaflow/pharma_returns_app/internal/core/ports/services"
	"github.com/pharmaflow/pharma_returns_app/internal/dto"
	"github.com/pharmaflow/pharma_returns_app/internal/middleware"
)

// ErrReasonInUse is returned when deleting a reason that line items still reference.
var ErrReasonInUse = errors.New("reason is referenced by existing line items")

// reasonService manages the classification reason vocabulary.
type reasonService struct {
	reasonRepo portsrepo.ReasonRepository
}

// NewReasonService creates a new reason service.
func NewReasonService(reasonRepo portsrepo.ReasonRepository) portssvc.ReasonSvcFacade {
	return &reasonService{reasonRepo: reasonRepo}
}

var _ portssvc.ReasonSvcFacade = (*reasonService)(nil)

// CreateReason adds a reason to the vocabulary.
func (s *reasonService) CreateReason(ctx context.Context, req dto.CreateReasonRequest, creatorUserID string) (*domain.Reason, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if existing, err := s.reasonRepo.FindReasonByName(ctx, domain.ReasonName(req.Name)); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: reason %q already exists", apperrors.ErrDuplicate, req.Name)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check reason name: %w", err)
	}

	now := time.Now().UTC()
	reason := domain.Reason{
		ReasonID:    uuid.NewString(),
		Name:        domain.ReasonName(req.Name),
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.reasonRepo.SaveReason(ctx, reason); err != nil {
		logger.Error("Failed to save reason", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to create reason: %w", err)
	}

	return &reason, nil
}

// GetReasonByID retrieves a reason by ID.
func (s *reasonService) GetReasonByID(ctx context.Context, reasonID string) (*domain.Reason, error) {
	reason, err := s.reasonRepo.FindReasonByID(ctx, reasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reason %s: %w", reasonID, err)
	}
	return reason, nil
}

// ListReasons retrieves all reasons.
func (s *reasonService) ListReasons(ctx context.Context) ([]domain.Reason, error) {
	reasons, err := s.reasonRepo.ListReasons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reasons: %w", err)
	}
	if reasons == nil {
		reasons = []domain.Reason{}
	}
	return reasons, nil
}

// DeleteReason removes a reason from the vocabulary. Deletion is refused
// while any line item still references the reason, so classification history
// stays resolvable.
func (s *reasonService) DeleteReason(ctx context.Context, reasonID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.reasonRepo.FindReasonByID(ctx, reasonID); err != nil {
		return fmt.Errorf("failed to load reason for deletion: %w", err)
	}

	count, err := s.reasonRepo.CountItemsReferencing(ctx, reasonID)
	if err != nil {
		return fmt.Errorf("failed to count items referencing reason: %w", err)
	}
	if count > 0 {
		logger.Warn("Refusing to delete referenced reason", slog.String("reason_id", reasonID), slog.Int64("references", count))
		return fmt.Errorf("%w: %d line items reference it", ErrReasonInUse, count)
	}

	if err := s.reasonRepo.DeleteReason(ctx, reasonID); err != nil {
		logger.Error("Failed to delete reason", slog.String("error", err.Error()), slog.String("reason_id", reasonID))
		return fmt.Errorf("failed to delete reason: %w", err)
	}

	logger.Info("Reason deleted", slog.String("reason_id", reasonID), slog.String("deleted_by", requestingUserID))
	return nil
}

package services

import (
	"context"

	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	"github.com/pharmaflow/pharma_returns_app/internal/dto"
)

// ReasonReaderSvc defines read operations for the classification vocabulary
type ReasonReaderSvc interface {
	// GetReasonByID retrieves a reason by ID.
	GetReasonByID(ctx context.Context, reasonID string) (*domain.Reason, error)

	// ListReasons retrieves all reasons.
	ListReasons(ctx context.Context) ([]domain.Reason, error)
}

// ReasonWriterSvc defines write operations for the classification vocabulary
type ReasonWriterSvc interface {
	// CreateReason adds a reason to the vocabulary.
	CreateReason(ctx context.Context, req dto.CreateReasonRequest, creatorUserID string) (*domain.Reason, error)

	// DeleteReason removes a reason. Deletion is refused while any line item
	// still references it.
	DeleteReason(ctx context.Context, reasonID string, requestingUserID string) error
}

// ReasonSvcFacade combines all reason-related service interfaces
type ReasonSvcFacade interface {
	ReasonReaderSvc
	ReasonWriterSvc
}

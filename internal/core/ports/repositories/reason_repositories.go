package repositories

import (
	"context"

	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
)

// ReasonRepository defines persistence operations for classification reasons.
type ReasonRepository interface {
	// SaveReason inserts or updates a reason.
	SaveReason(ctx context.Context, reason domain.Reason) error

	// FindReasonByID retrieves a reason by its identifier.
	FindReasonByID(ctx context.Context, reasonID string) (*domain.Reason, error)

	// FindReasonByName retrieves a reason by its unique name.
	FindReasonByName(ctx context.Context, name domain.ReasonName) (*domain.Reason, error)

	// ListReasons retrieves all reasons.
	ListReasons(ctx context.Context) ([]domain.Reason, error)

	// CountReasons returns the number of reasons in the vocabulary.
	CountReasons(ctx context.Context) (int64, error)

	// CountItemsReferencing returns the number of line items referencing the
	// reason; used to block deletion while the reason is in use.
	CountItemsReferencing(ctx context.Context, reasonID string) (int64, error)

	// DeleteReason removes a reason. The service layer must check references
	// first; the repository additionally fails on FK violations.
	DeleteReason(ctx context.Context, reasonID string) error
}

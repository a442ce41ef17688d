package repositories

import (
	"context"
	"time"

	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
)

// SubmissionReader defines read operations for submissions.
type SubmissionReader interface {
	// FindSubmissionByID retrieves a submission header by its external
	// identifier (items and history are loaded separately).
	FindSubmissionByID(ctx context.Context, submissionID string) (*domain.Submission, error)

	// ListSubmissions retrieves a paginated list of submissions using
	// token-based pagination, most recent first. An empty userID lists
	// submissions for all users (reviewer view).
	ListSubmissions(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Submission, *string, error)

	// FindItemsBySubmissionID retrieves all line items for a submission in
	// creation order.
	FindItemsBySubmissionID(ctx context.Context, submissionID string) ([]domain.LineItem, error)

	// FindStatusHistory retrieves the ordered status-update history for a
	// submission, oldest first.
	FindStatusHistory(ctx context.Context, submissionID string) ([]domain.StatusUpdate, error)
}

// SubmissionWriter defines write operations for submissions.
type SubmissionWriter interface {
	// SaveSubmission persists a submission, its line items, and the initial
	// status update within a single database transaction.
	SaveSubmission(ctx context.Context, submission domain.Submission, items []domain.LineItem, initial domain.StatusUpdate) error

	// AppendItems persists additional line items for an existing submission.
	AppendItems(ctx context.Context, submissionID string, items []domain.LineItem) error

	// TransitionStatus atomically moves a submission from expectedStatus to
	// update.NewStatus and appends the status update, in one transaction.
	// When expectedStatus is non-nil and the stored status no longer matches
	// it, nothing is written and apperrors.ErrConflict is returned: the
	// status field and its history never disagree. trackingNumber, when
	// non-nil, is stored alongside the new status.
	TransitionStatus(ctx context.Context, submissionID string, expectedStatus *domain.SubmissionStatus, update domain.StatusUpdate, trackingNumber *string, statusUpdatedAt time.Time) error
}

// SubmissionRepositoryFacade combines all submission repository interfaces.
type SubmissionRepositoryFacade interface {
	SubmissionReader
	SubmissionWriter
}

// SubmissionRepositoryWithTx extends the facade with transaction capabilities.
type SubmissionRepositoryWithTx interface {
	SubmissionRepositoryFacade
	TransactionManager
}

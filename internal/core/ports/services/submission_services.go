package services

import (
	"context"
	"io"

	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	"github.com/pharmaflow/pharma_returns_app/internal/dto"
)

// SubmissionReaderSvc defines read operations for submission data
type SubmissionReaderSvc interface {
	// GetSubmissionByID retrieves a submission with its items and status
	// history. Non-reviewers may only read their own submissions.
	GetSubmissionByID(ctx context.Context, submissionID string, requestingUser *domain.User) (*dto.SubmissionResponse, error)

	// ListSubmissions retrieves a paginated list of the requesting user's
	// submissions. Reviewers see submissions from all users.
	ListSubmissions(ctx context.Context, requestingUser *domain.User, params dto.ListSubmissionsParams) (*dto.ListSubmissionsResponse, error)
}

// SubmissionWriterSvc defines write operations for submission data
type SubmissionWriterSvc interface {
	// CreateSubmission persists a new draft submission. Each input row is
	// resolved independently; rejected rows are reported, not fatal.
	CreateSubmission(ctx context.Context, creatorUserID string, req dto.CreateSubmissionRequest) (*dto.CreateSubmissionResponse, error)

	// ImportItems parses CSV rows (ndc,quantity,expiration_date) and appends
	// the accepted rows to a draft submission.
	ImportItems(ctx context.Context, submissionID string, requestingUserID string, csvData io.Reader) (*dto.ImportItemsResponse, error)

	// FinalizeSubmission moves a draft to Submitted and assigns its tracking
	// number. Finalizing a submission that already left Draft is a no-op.
	FinalizeSubmission(ctx context.Context, submissionID string, requestingUserID string) (*dto.SubmissionResponse, error)

	// ReviewSubmission applies a reviewer's status decision to a submission.
	ReviewSubmission(ctx context.Context, submissionID string, reviewer *domain.User, req dto.ReviewSubmissionRequest) (*dto.SubmissionResponse, error)
}

// SubmissionEstimatorSvc defines stateless eligibility checks
type SubmissionEstimatorSvc interface {
	// EstimateItem runs the eligibility resolver for a single prospective
	// item without persisting anything.
	EstimateItem(ctx context.Context, req dto.EstimateItemRequest) (*dto.EstimateItemResponse, error)
}

// SubmissionSvcFacade combines all submission-related service interfaces
type SubmissionSvcFacade interface {
	SubmissionReaderSvc
	SubmissionWriterSvc
	SubmissionEstimatorSvc
}

package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pharmaflow/pharma_returns_app/internal/apperrors"
	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	portsrepo "github.com/pharmaflow/pharma_returns_app/internal/core/ports/repositories"
	portssvc "github.com/pharmaflow/pharma_returns_app/internal/core/ports/services"
	"github.com/pharmaflow/pharma_returns_app/internal/dto"
	"github.com/pharmaflow/pharma_returns_app/internal/middleware"
	"github.com/pharmaflow/pharma_returns_app/internal/utils/returns"
)

var (
	// ErrNoAcceptedItems is returned when every row of a create request was rejected.
	ErrNoAcceptedItems = errors.New("no line items could be accepted")
	// ErrNotDraft is returned when items are added to a submission that already left Draft.
	ErrNotDraft = errors.New("submission is no longer a draft")
	// ErrInvalidReviewStatus is returned for review targets outside the allowed set.
	ErrInvalidReviewStatus = errors.New("invalid review status")
)

const dateLayout = "2006-01-02"

// submissionService implements the submission workflow: intake with per-row
// eligibility resolution, finalization, and reviewer transitions.
type submissionService struct {
	submissionRepo portsrepo.SubmissionRepositoryWithTx
	productRepo    portsrepo.ProductRepositoryFacade
	reasonRepo     portsrepo.ReasonRepository
}

// NewSubmissionService creates a new submission service.
func NewSubmissionService(submissionRepo portsrepo.SubmissionRepositoryWithTx, productRepo portsrepo.ProductRepositoryFacade, reasonRepo portsrepo.ReasonRepository) portssvc.SubmissionSvcFacade {
	return &submissionService{
		submissionRepo: submissionRepo,
		productRepo:    productRepo,
		reasonRepo:     reasonRepo,
	}
}

var _ portssvc.SubmissionSvcFacade = (*submissionService)(nil)

// reasonMaps loads the classification vocabulary and returns both directions:
// name to ID for resolution, ID to name for responses.
func (s *submissionService) reasonMaps(ctx context.Context) (map[domain.ReasonName]string, map[string]string, error) {
	reasons, err := s.reasonRepo.ListReasons(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load classification reasons: %w", err)
	}
	byName := make(map[domain.ReasonName]string, len(reasons))
	byID := make(map[string]string, len(reasons))
	for _, r := range reasons {
		byName[r.Name] = r.ReasonID
		byID[r.ReasonID] = string(r.Name)
	}
	return byName, byID, nil
}

// resolveRows resolves each input row independently against the registry.
// A failed row is reported and skipped; it never aborts the batch.
func (s *submissionService) resolveRows(ctx context.Context, submissionID string, creatorUserID string, rows []dto.CreateLineItemRequest, now time.Time) ([]domain.LineItem, []dto.RowFailure, error) {
	ndcs := make([]string, 0, len(rows))
	for _, row := range rows {
		ndcs = append(ndcs, row.NDC)
	}
	products, err := s.productRepo.FindProductsByNDCs(ctx, ndcs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load products for resolution: %w", err)
	}

	reasonIDs, _, err := s.reasonMaps(ctx)
	if err != nil {
		return nil, nil, err
	}

	var items []domain.LineItem
	var failures []dto.RowFailure
	for i, row := range rows {
		expDate, err := time.ParseInLocation(dateLayout, row.ExpirationDate, time.UTC)
		if err != nil {
			failures = append(failures, dto.RowFailure{Row: i, NDC: row.NDC, Reason: "invalid expiration date"})
			continue
		}

		var product *domain.ProductRecord
		if p, ok := products[row.NDC]; ok {
			product = &p
		}

		resolution, err := returns.Resolve(now, product, row.Quantity, expDate)
		if err != nil {
			failures = append(failures, dto.RowFailure{Row: i, NDC: row.NDC, Reason: err.Error()})
			continue
		}

		items = append(items, domain.LineItem{
			ItemID:          uuid.NewString(),
			SubmissionID:    submissionID,
			NDC:             row.NDC,
			Quantity:        row.Quantity,
			ExpirationDate:  expDate,
			EstimatedCredit: resolution.Credit,
			Status:          resolution.Status,
			ReasonID:        reasonIDs[resolution.Reason],
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		})
	}
	return items, failures, nil
}

// CreateSubmission persists a new draft submission. Each input row is run
// through the eligibility resolver; rejected rows are reported back, and the
// submission is created from the rows that survive. A request where every
// row fails is an error.
func (s *submissionService) CreateSubmission(ctx context.Context, creatorUserID string, req dto.CreateSubmissionRequest) (*dto.CreateSubmissionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	submissionID := uuid.NewString()

	items, failures, err := s.resolveRows(ctx, submissionID, creatorUserID, req.Items, now)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: all %d rows were rejected", ErrNoAcceptedItems, len(req.Items))
	}

	submission := domain.Submission{
		SubmissionID:    submissionID,
		UserID:          creatorUserID,
		SubmissionDate:  now,
		Status:          domain.StatusDraft,
		StatusUpdatedAt: now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	initial := domain.StatusUpdate{
		UpdateID:     uuid.NewString(),
		SubmissionID: submissionID,
		OldStatus:    nil,
		NewStatus:    domain.StatusDraft,
		UpdatedBy:    domain.ActorUser,
		Notes:        "Submission created",
		UpdatedAt:    now,
	}

	if err := s.submissionRepo.SaveSubmission(ctx, submission, items, initial); err != nil {
		logger.Error("Failed to save submission", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save submission: %w", err)
	}

	logger.Info("Submission created",
		slog.String("submission_id", submissionID),
		slog.Int("accepted_items", len(items)),
		slog.Int("skipped_rows", len(failures)),
	)

	submission.Items = items
	submission.StatusHistory = []domain.StatusUpdate{initial}
	_, reasonNames, err := s.reasonMaps(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CreateSubmissionResponse{
		Submission:  dto.ToSubmissionResponse(&submission, reasonNames),
		SkippedRows: failures,
	}, nil
}

// ImportItems parses CSV rows (ndc,quantity,expiration_date; header optional)
// and appends the accepted rows to a draft submission owned by the requester.
func (s *submissionService) ImportItems(ctx context.Context, submissionID string, requestingUserID string, csvData io.Reader) (*dto.ImportItemsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	submission, err := s.submissionRepo.FindSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load submission for import: %w", err)
	}
	if submission.UserID != requestingUserID {
		return nil, apperrors.ErrNotFound // Obscure other users' submissions
	}
	if submission.Status != domain.StatusDraft {
		return nil, fmt.Errorf("%w: status is %s", ErrNotDraft, submission.Status)
	}

	reader := csv.NewReader(csvData)
	reader.FieldsPerRecord = 3
	reader.TrimLeadingSpace = true

	var rows []dto.CreateLineItemRequest
	var failures []dto.RowFailure
	rowIdx := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			failures = append(failures, dto.RowFailure{Row: rowIdx, Reason: "malformed CSV row"})
			rowIdx++
			continue
		}
		// Skip a header row if present
		if rowIdx == 0 && strings.EqualFold(record[0], "ndc") {
			rowIdx++
			continue
		}
		qty, err := strconv.ParseInt(strings.TrimSpace(record[1]), 10, 64)
		if err != nil {
			failures = append(failures, dto.RowFailure{Row: rowIdx, NDC: record[0], Reason: "quantity is not an integer"})
			rowIdx++
			continue
		}
		rows = append(rows, dto.CreateLineItemRequest{
			NDC:            strings.TrimSpace(record[0]),
			Quantity:       qty,
			ExpirationDate: strings.TrimSpace(record[2]),
		})
		rowIdx++
	}

	now := time.Now().UTC()
	items, resolveFailures, err := s.resolveRows(ctx, submissionID, requestingUserID, rows, now)
	if err != nil {
		return nil, err
	}
	failures = append(failures, resolveFailures...)

	if len(items) > 0 {
		if err := s.submissionRepo.AppendItems(ctx, submissionID, items); err != nil {
			logger.Error("Failed to append imported items", slog.String("error", err.Error()), slog.String("submission_id", submissionID))
			return nil, fmt.Errorf("failed to append imported items: %w", err)
		}
	}

	logger.Info("Items imported", slog.String("submission_id", submissionID), slog.Int("added", len(items)), slog.Int("skipped", len(failures)))
	return &dto.ImportItemsResponse{Added: len(items), SkippedRows: failures}, nil
}

// GetSubmissionByID retrieves a submission with items and status history.
// Non-reviewers only see their own submissions; existence is not revealed.
func (s *submissionService) GetSubmissionByID(ctx context.Context, submissionID string, requestingUser *domain.User) (*dto.SubmissionResponse, error) {
	submission, err := s.submissionRepo.FindSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find submission %s: %w", submissionID, err)
	}
	if submission.UserID != requestingUser.UserID && !requestingUser.CanReview() {
		return nil, apperrors.ErrNotFound
	}

	items, err := s.submissionRepo.FindItemsBySubmissionID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load items for submission %s: %w", submissionID, err)
	}
	history, err := s.submissionRepo.FindStatusHistory(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load status history for submission %s: %w", submissionID, err)
	}
	submission.Items = items
	submission.StatusHistory = history

	_, reasonNames, err := s.reasonMaps(ctx)
	if err != nil {
		return nil, err
	}
	resp := dto.ToSubmissionResponse(submission, reasonNames)
	return &resp, nil
}

// ListSubmissions retrieves a page of submissions. Reviewers see everyone's;
// other users see only their own.
func (s *submissionService) ListSubmissions(ctx context.Context, requestingUser *domain.User, params dto.ListSubmissionsParams) (*dto.ListSubmissionsResponse, error) {
	if params.Limit <= 0 {
		params.Limit = 20
	}

	userID := requestingUser.UserID
	if requestingUser.CanReview() {
		userID = "" // Reviewer view spans all users
	}

	submissions, nextToken, err := s.submissionRepo.ListSubmissions(ctx, userID, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	responses := make([]dto.SubmissionResponse, len(submissions))
	for i := range submissions {
		responses[i] = dto.ToSubmissionResponse(&submissions[i], nil)
	}
	return &dto.ListSubmissionsResponse{Submissions: responses, NextToken: nextToken}, nil
}

// FinalizeSubmission moves a draft into Submitted and assigns the tracking
// number derived from the submission ID. Finalizing a submission that has
// already left Draft is a no-op returning current state, so retries are
// harmless. A concurrent transition surfacing as a conflict is treated the
// same way.
func (s *submissionService) FinalizeSubmission(ctx context.Context, submissionID string, requestingUserID string) (*dto.SubmissionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	submission, err := s.submissionRepo.FindSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find submission %s: %w", submissionID, err)
	}
	if submission.UserID != requestingUserID {
		return nil, apperrors.ErrNotFound
	}

	if submission.Status == domain.StatusDraft {
		now := time.Now().UTC()
		tracking := domain.TrackingNumberFor(submissionID)
		expected := domain.StatusDraft
		oldStatus := domain.StatusDraft
		update := domain.StatusUpdate{
			UpdateID:     uuid.NewString(),
			SubmissionID: submissionID,
			OldStatus:    &oldStatus,
			NewStatus:    domain.StatusSubmitted,
			UpdatedBy:    domain.ActorUser,
			Notes:        "Submission finalized",
			UpdatedAt:    now,
		}

		err := s.submissionRepo.TransitionStatus(ctx, submissionID, &expected, update, &tracking, now)
		switch {
		case err == nil:
			logger.Info("Submission finalized", slog.String("submission_id", submissionID), slog.String("tracking_number", tracking))
		case errors.Is(err, apperrors.ErrConflict):
			// Someone else moved it out of Draft first; fall through and
			// return whatever state won.
			logger.Info("Finalize lost the race, returning current state", slog.String("submission_id", submissionID))
		default:
			logger.Error("Failed to finalize submission", slog.String("error", err.Error()), slog.String("submission_id", submissionID))
			return nil, fmt.Errorf("failed to finalize submission: %w", err)
		}
	} else {
		logger.Info("Finalize requested on non-draft submission, no-op", slog.String("submission_id", submissionID), slog.String("status", string(submission.Status)))
	}

	// Re-read so the response reflects the stored state in every branch.
	current, err := s.submissionRepo.FindSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload submission %s: %w", submissionID, err)
	}
	resp := dto.ToSubmissionResponse(current, nil)
	return &resp, nil
}

// ReviewSubmission applies a reviewer's status decision. Only Received and
// Credited are valid targets; the prior status is deliberately not
// constrained, the reviewer's word is authoritative.
func (s *submissionService) ReviewSubmission(ctx context.Context, submissionID string, reviewer *domain.User, req dto.ReviewSubmissionRequest) (*dto.SubmissionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !reviewer.CanReview() {
		return nil, fmt.Errorf("%w: reviewer role required", apperrors.ErrForbidden)
	}

	newStatus := domain.SubmissionStatus(req.NewStatus)
	if !domain.IsValidReviewTarget(newStatus) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidReviewStatus, req.NewStatus)
	}

	submission, err := s.submissionRepo.FindSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find submission %s: %w", submissionID, err)
	}

	now := time.Now().UTC()
	oldStatus := submission.Status
	update := domain.StatusUpdate{
		UpdateID:     uuid.NewString(),
		SubmissionID: submissionID,
		OldStatus:    &oldStatus,
		NewStatus:    newStatus,
		UpdatedBy:    domain.ReviewerActor(reviewer.Username),
		Notes:        req.Notes,
		UpdatedAt:    now,
	}

	// The observed status is passed as the CAS guard so the recorded
	// OldStatus can never disagree with what was actually replaced.
	if err := s.submissionRepo.TransitionStatus(ctx, submissionID, &oldStatus, update, nil, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("submission %s changed while reviewing: %w", submissionID, err)
		}
		logger.Error("Failed to apply review", slog.String("error", err.Error()), slog.String("submission_id", submissionID))
		return nil, fmt.Errorf("failed to apply review: %w", err)
	}

	logger.Info("Submission reviewed",
		slog.String("submission_id", submissionID),
		slog.String("old_status", string(oldStatus)),
		slog.String("new_status", string(newStatus)),
		slog.String("reviewer", reviewer.Username),
	)

	current, err := s.submissionRepo.FindSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload submission %s: %w", submissionID, err)
	}
	resp := dto.ToSubmissionResponse(current, nil)
	return &resp, nil
}

// EstimateItem runs the eligibility resolver for a single prospective item
// without persisting anything.
func (s *submissionService) EstimateItem(ctx context.Context, req dto.EstimateItemRequest) (*dto.EstimateItemResponse, error) {
	expDate, err := time.ParseInLocation(dateLayout, req.ExpirationDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid expiration date", apperrors.ErrValidation)
	}

	var product *domain.ProductRecord
	found, err := s.productRepo.FindProductByNDC(ctx, req.NDC)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	if err == nil {
		product = found
	}

	resolution, err := returns.Resolve(time.Now().UTC(), product, req.Quantity, expDate)
	if err != nil {
		return nil, err
	}

	return &dto.EstimateItemResponse{
		Status:          string(resolution.Status),
		EstimatedCredit: resolution.Credit,
		Reason:          string(resolution.Reason),
	}, nil
}

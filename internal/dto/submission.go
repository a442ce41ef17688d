package dto

import (
	"time"

	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLineItemRequest defines one return line in a create request.
// ExpirationDate is a calendar date; time-of-day is not meaningful here.
type CreateLineItemRequest struct {
	NDC            string `json:"ndc" binding:"required,ndc"`
	Quantity       int64  `json:"quantity" binding:"required"`
	ExpirationDate string `json:"expirationDate" binding:"required,datetime=2006-01-02"`
}

// CreateSubmissionRequest defines the data needed to create a submission.
type CreateSubmissionRequest struct {
	Items []CreateLineItemRequest `json:"items" binding:"required,min=1,dive"`
}

// RowFailure reports one input row that could not be accepted, by its
// zero-based position in the request.
type RowFailure struct {
	Row    int    `json:"row"`
	NDC    string `json:"ndc"`
	Reason string `json:"reason"`
}

// LineItemResponse defines the data returned for a line item.
type LineItemResponse struct {
	ItemID          string          `json:"itemID"`
	NDC             string          `json:"ndc"`
	Quantity        int64           `json:"quantity"`
	ExpirationDate  string          `json:"expirationDate"`
	EstimatedCredit decimal.Decimal `json:"estimatedCredit"`
	Status          string          `json:"status"`
	Reason          string          `json:"reason,omitempty"`
}

// StatusUpdateResponse defines the data returned for one status history entry.
type StatusUpdateResponse struct {
	OldStatus *string   `json:"oldStatus,omitempty"`
	NewStatus string    `json:"newStatus"`
	UpdatedBy string    `json:"updatedBy"`
	Notes     string    `json:"notes,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SubmissionResponse defines the data returned for a submission.
type SubmissionResponse struct {
	SubmissionID    string                 `json:"submissionID"`
	UserID          string                 `json:"userID"`
	SubmissionDate  time.Time              `json:"submissionDate"`
	Status          string                 `json:"status"`
	TrackingNumber  string                 `json:"trackingNumber,omitempty"`
	StatusUpdatedAt time.Time              `json:"statusUpdatedAt"`
	TotalEstimate   decimal.Decimal        `json:"totalEstimate"`
	Items           []LineItemResponse     `json:"items,omitempty"`
	StatusHistory   []StatusUpdateResponse `json:"statusHistory,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
}

// CreateSubmissionResponse wraps the created submission plus any rejected
// input rows. Rejected rows never fail the request as a whole.
type CreateSubmissionResponse struct {
	Submission  SubmissionResponse `json:"submission"`
	SkippedRows []RowFailure       `json:"skippedRows,omitempty"`
}

// ListSubmissionsParams defines query parameters for listing submissions.
type ListSubmissionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListSubmissionsResponse wraps a page of submissions.
type ListSubmissionsResponse struct {
	Submissions []SubmissionResponse `json:"submissions"`
	NextToken   *string              `json:"nextToken,omitempty"`
}

// ReviewSubmissionRequest defines a reviewer's status decision.
type ReviewSubmissionRequest struct {
	NewStatus string `json:"newStatus" binding:"required"`
	Notes     string `json:"notes"`
}

// ImportItemsResponse reports the outcome of a CSV item import.
type ImportItemsResponse struct {
	Added       int          `json:"added"`
	SkippedRows []RowFailure `json:"skippedRows,omitempty"`
}

// EstimateItemRequest asks for a standalone eligibility check without
// persisting anything.
type EstimateItemRequest struct {
	NDC            string `json:"ndc" binding:"required"`
	Quantity       int64  `json:"quantity" binding:"required"`
	ExpirationDate string `json:"expirationDate" binding:"required,datetime=2006-01-02"`
}

// EstimateItemResponse is the resolver verdict for a standalone check.
type EstimateItemResponse struct {
	Status          string          `json:"status"`
	EstimatedCredit decimal.Decimal `json:"estimatedCredit"`
	Reason          string          `json:"reason"`
}

// ToStatusUpdateResponse converts a domain.StatusUpdate to its DTO.
func ToStatusUpdateResponse(u *domain.StatusUpdate) StatusUpdateResponse {
	var old *string
	if u.OldStatus != nil {
		s := string(*u.OldStatus)
		old = &s
	}
	return StatusUpdateResponse{
		OldStatus: old,
		NewStatus: string(u.NewStatus),
		UpdatedBy: u.UpdatedBy,
		Notes:     u.Notes,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToLineItemResponse converts a domain.LineItem to its DTO. reasonName may be
// empty when the reason lookup is skipped.
func ToLineItemResponse(item *domain.LineItem, reasonName string) LineItemResponse {
	return LineItemResponse{
		ItemID:          item.ItemID,
		NDC:             item.NDC,
		Quantity:        item.Quantity,
		ExpirationDate:  item.ExpirationDate.Format("2006-01-02"),
		EstimatedCredit: item.EstimatedCredit,
		Status:          string(item.Status),
		Reason:          reasonName,
	}
}

// ToSubmissionResponse converts a domain.Submission to its DTO. The total
// estimate is the sum of item credits; zero when items are not loaded.
// reasonNames maps ReasonID to display name for the loaded items.
func ToSubmissionResponse(s *domain.Submission, reasonNames map[string]string) SubmissionResponse {
	resp := SubmissionResponse{
		SubmissionID:    s.SubmissionID,
		UserID:          s.UserID,
		SubmissionDate:  s.SubmissionDate,
		Status:          string(s.Status),
		TrackingNumber:  s.TrackingNumber,
		StatusUpdatedAt: s.StatusUpdatedAt,
		TotalEstimate:   decimal.Zero,
		CreatedAt:       s.CreatedAt,
	}
	if len(s.Items) > 0 {
		resp.Items = make([]LineItemResponse, len(s.Items))
		for i := range s.Items {
			item := &s.Items[i]
			resp.Items[i] = ToLineItemResponse(item, reasonNames[item.ReasonID])
			resp.TotalEstimate = resp.TotalEstimate.Add(item.EstimatedCredit)
		}
	}
	if len(s.StatusHistory) > 0 {
		resp.StatusHistory = make([]StatusUpdateResponse, len(s.StatusHistory))
		for i := range s.StatusHistory {
			resp.StatusHistory[i] = ToStatusUpdateResponse(&s.StatusHistory[i])
		}
	}
	return resp
}

package domain

import (
	"strings"
	"time"
)

// SubmissionStatus indicates where a submission sits in its lifecycle.
type SubmissionStatus string

const (
	StatusDraft     SubmissionStatus = "Draft"
	StatusSubmitted SubmissionStatus = "Submitted"
	StatusReceived  SubmissionStatus = "Received"
	StatusCredited  SubmissionStatus = "Credited"
)

// reviewTargets is the closed set of statuses a reviewer may move a submission
// into. Review transitions are deliberately unconditional on the prior status;
// only the target set is enforced.
var reviewTargets = map[SubmissionStatus]bool{
	StatusReceived: true,
	StatusCredited: true,
}

// IsValidReviewTarget reports whether a reviewer may set the given status.
func IsValidReviewTarget(s SubmissionStatus) bool {
	return reviewTargets[s]
}

// Actor tags recorded on status updates.
const (
	ActorUser   = "user"
	ActorSystem = "system"
)

// ReviewerActor builds the actor tag recorded when a reviewer updates status.
func ReviewerActor(username string) string {
	return "reviewer:" + username
}

// TrackingNumberFor derives the shipment tracking token for a finalized
// submission from its identifier. Deterministic so a retried finalize produces
// the same token.
func TrackingNumberFor(submissionID string) string {
	prefix := submissionID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return "TRACK-" + strings.ToUpper(prefix)
}

// Submission is the aggregate root for a pharmacy's batch of return line
// items. It owns its items and its append-only status history; both are
// cascade-deleted with the submission.
type Submission struct {
	SubmissionID    string           `json:"submissionID"` // External identifier (UUID)
	UserID          string           `json:"userID"`
	SubmissionDate  time.Time        `json:"submissionDate"`
	Status          SubmissionStatus `json:"status"`
	TrackingNumber  string           `json:"trackingNumber,omitempty"` // Assigned on transition into Submitted
	StatusUpdatedAt time.Time        `json:"statusUpdatedAt"`
	AuditFields

	// Loaded separately depending on the operation.
	Items         []LineItem     `json:"items,omitempty"`
	StatusHistory []StatusUpdate `json:"statusHistory,omitempty"`
}

// StatusUpdate is an immutable audit record of one status transition. The
// ordered sequence of updates for a submission is the authoritative history
// and replays to the current status.
type StatusUpdate struct {
	UpdateID     string            `json:"updateID"` // Primary Key (UUID)
	SubmissionID string            `json:"submissionID"`
	OldStatus    *SubmissionStatus `json:"oldStatus,omitempty"` // Nil on creation
	NewStatus    SubmissionStatus  `json:"newStatus"`
	UpdatedBy    string            `json:"updatedBy"` // Actor tag: user, system, reviewer:<name>
	Notes        string            `json:"notes,omitempty"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

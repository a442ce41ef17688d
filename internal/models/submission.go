package models

import (
	"database/sql"
	"time"
)

// SubmissionStatus mirrors domain.SubmissionStatus at the persistence layer.
type SubmissionStatus string

const (
	Draft     SubmissionStatus = "Draft"
	Submitted SubmissionStatus = "Submitted"
	Received  SubmissionStatus = "Received"
	Credited  SubmissionStatus = "Credited"
)

// Submission represents a return submission row.
type Submission struct {
	SubmissionID    string           `db:"submission_id"`
	UserID          string           `db:"user_id"`
	SubmissionDate  time.Time        `db:"submission_date"`
	Status          SubmissionStatus `db:"status"`
	TrackingNumber  sql.NullString   `db:"tracking_number"` // Set when finalized
	StatusUpdatedAt time.Time        `db:"status_updated_at"`
	AuditFields
}

// StatusUpdate represents one row of a submission's status history.
type StatusUpdate struct {
	UpdateID     string         `db:"update_id"`
	SubmissionID string         `db:"submission_id"`
	OldStatus    sql.NullString `db:"old_status"` // Null on the creation record
	NewStatus    string         `db:"new_status"`
	UpdatedBy    string         `db:"updated_by"`
	Notes        sql.NullString `db:"notes"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

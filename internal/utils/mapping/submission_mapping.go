package mapping

import (
	"database/sql"

	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	"github.com/pharmaflow/pharma_returns_app/internal/models"
)

// ToModelSubmission converts a domain Submission to a model Submission
func ToModelSubmission(d domain.Submission) models.Submission {
	return models.Submission{
		SubmissionID:    d.SubmissionID,
		UserID:          d.UserID,
		SubmissionDate:  d.SubmissionDate,
		Status:          models.SubmissionStatus(d.Status),
		TrackingNumber:  sql.NullString{String: d.TrackingNumber, Valid: d.TrackingNumber != ""},
		StatusUpdatedAt: d.StatusUpdatedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSubmission converts a model Submission to a domain Submission
func ToDomainSubmission(m models.Submission) domain.Submission {
	return domain.Submission{
		SubmissionID:    m.SubmissionID,
		UserID:          m.UserID,
		SubmissionDate:  m.SubmissionDate,
		Status:          domain.SubmissionStatus(m.Status),
		TrackingNumber:  m.TrackingNumber.String,
		StatusUpdatedAt: m.StatusUpdatedAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSubmissionSlice converts a slice of model Submissions to domain form
func ToDomainSubmissionSlice(ms []models.Submission) []domain.Submission {
	ds := make([]domain.Submission, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSubmission(m)
	}
	return ds
}

// ToModelLineItem converts a domain LineItem to a model LineItem
func ToModelLineItem(d domain.LineItem) models.LineItem {
	return models.LineItem{
		ItemID:          d.ItemID,
		SubmissionID:    d.SubmissionID,
		NDC:             d.NDC,
		Quantity:        d.Quantity,
		ExpirationDate:  d.ExpirationDate,
		EstimatedCredit: d.EstimatedCredit,
		Status:          string(d.Status),
		ReasonID:        d.ReasonID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLineItem converts a model LineItem to a domain LineItem
func ToDomainLineItem(m models.LineItem) domain.LineItem {
	return domain.LineItem{
		ItemID:          m.ItemID,
		SubmissionID:    m.SubmissionID,
		NDC:             m.NDC,
		Quantity:        m.Quantity,
		ExpirationDate:  m.ExpirationDate,
		EstimatedCredit: m.EstimatedCredit,
		Status:          domain.EligibilityStatus(m.Status),
		ReasonID:        m.ReasonID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLineItemSlice converts a slice of model LineItems to domain form
func ToDomainLineItemSlice(ms []models.LineItem) []domain.LineItem {
	ds := make([]domain.LineItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLineItem(m)
	}
	return ds
}

// ToModelStatusUpdate converts a domain StatusUpdate to a model StatusUpdate
func ToModelStatusUpdate(d domain.StatusUpdate) models.StatusUpdate {
	var oldStatus sql.NullString
	if d.OldStatus != nil {
		oldStatus = sql.NullString{String: string(*d.OldStatus), Valid: true}
	}
	return models.StatusUpdate{
		UpdateID:     d.UpdateID,
		SubmissionID: d.SubmissionID,
		OldStatus:    oldStatus,
		NewStatus:    string(d.NewStatus),
		UpdatedBy:    d.UpdatedBy,
		Notes:        sql.NullString{String: d.Notes, Valid: d.Notes != ""},
		UpdatedAt:    d.UpdatedAt,
	}
}

// ToDomainStatusUpdate converts a model StatusUpdate to a domain StatusUpdate
func ToDomainStatusUpdate(m models.StatusUpdate) domain.StatusUpdate {
	var oldStatus *domain.SubmissionStatus
	if m.OldStatus.Valid {
		s := domain.SubmissionStatus(m.OldStatus.String)
		oldStatus = &s
	}
	return domain.StatusUpdate{
		UpdateID:     m.UpdateID,
		SubmissionID: m.SubmissionID,
		OldStatus:    oldStatus,
		NewStatus:    domain.SubmissionStatus(m.NewStatus),
		UpdatedBy:    m.UpdatedBy,
		Notes:        m.Notes.String,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ToDomainStatusUpdateSlice converts a slice of model StatusUpdates to domain form
func ToDomainStatusUpdateSlice(ms []models.StatusUpdate) []domain.StatusUpdate {
	ds := make([]domain.StatusUpdate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStatusUpdate(m)
	}
	return ds
}

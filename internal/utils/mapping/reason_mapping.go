package mapping

import (
	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	"github.com/pharmaflow/pharma_returns_app/internal/models"
)

// ToModelReason converts a domain Reason to a model Reason
func ToModelReason(d domain.Reason) models.Reason {
	return models.Reason{
		ReasonID:    d.ReasonID,
		Name:        string(d.Name),
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReason converts a model Reason to a domain Reason
func ToDomainReason(m models.Reason) domain.Reason {
	return domain.Reason{
		ReasonID:    m.ReasonID,
		Name:        domain.ReasonName(m.Name),
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainReasonSlice converts a slice of model Reasons to domain form
func ToDomainReasonSlice(ms []models.Reason) []domain.Reason {
	ds := make([]domain.Reason, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainReason(m)
	}
	return ds
}

package mapping

import (
	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	"github.com/pharmaflow/pharma_returns_app/internal/models"
)

// ToModelProduct converts a domain ProductRecord to a model ProductRecord
func ToModelProduct(d domain.ProductRecord) models.ProductRecord {
	return models.ProductRecord{
		NDC:             d.NDC,
		DrugName:        d.DrugName,
		Manufacturer:    d.Manufacturer,
		PolicyCode:      d.PolicyCode,
		BaseCreditValue: d.BaseCreditValue,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a model ProductRecord to a domain ProductRecord
func ToDomainProduct(m models.ProductRecord) domain.ProductRecord {
	return domain.ProductRecord{
		NDC:             m.NDC,
		DrugName:        m.DrugName,
		Manufacturer:    m.Manufacturer,
		PolicyCode:      m.PolicyCode,
		BaseCreditValue: m.BaseCreditValue,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProductSlice converts a slice of model ProductRecords to domain form
func ToDomainProductSlice(ms []models.ProductRecord) []domain.ProductRecord {
	ds := make([]domain.ProductRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProduct(m)
	}
	return ds
}

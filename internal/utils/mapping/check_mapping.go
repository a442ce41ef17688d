package mapping

import (
	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	"github.com/pharmaflow/pharma_returns_app/internal/models"
)

// ToModelCheckStatement converts a domain CheckStatement to its model
func ToModelCheckStatement(d domain.CheckStatement) models.CheckStatement {
	return models.CheckStatement{
		StatementID: d.StatementID,
		StatementNo: d.StatementNo,
		PaymentDate: d.PaymentDate,
		CheckAmount: d.CheckAmount,
		CheckNo:     d.CheckNo,
		Status:      string(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCheckStatement converts a model CheckStatement to its domain form
func ToDomainCheckStatement(m models.CheckStatement) domain.CheckStatement {
	return domain.CheckStatement{
		StatementID: m.StatementID,
		StatementNo: m.StatementNo,
		PaymentDate: m.PaymentDate,
		CheckAmount: m.CheckAmount,
		CheckNo:     m.CheckNo,
		Status:      domain.CheckStatementStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCheckStatementSlice converts a slice of model CheckStatements to domain form
func ToDomainCheckStatementSlice(ms []models.CheckStatement) []domain.CheckStatement {
	ds := make([]domain.CheckStatement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCheckStatement(m)
	}
	return ds
}

// ToModelCheckDetail converts a domain CheckDetail to its model
func ToModelCheckDetail(d domain.CheckDetail) models.CheckDetail {
	return models.CheckDetail{
		DetailID:    d.DetailID,
		StatementID: d.StatementID,
		ReturnNo:    d.ReturnNo,
		Amount:      d.Amount,
	}
}

// ToDomainCheckDetail converts a model CheckDetail to its domain form
func ToDomainCheckDetail(m models.CheckDetail) domain.CheckDetail {
	return domain.CheckDetail{
		DetailID:    m.DetailID,
		StatementID: m.StatementID,
		ReturnNo:    m.ReturnNo,
		Amount:      m.Amount,
	}
}

// ToDomainCheckDetailSlice converts a slice of model CheckDetails to domain form
func ToDomainCheckDetailSlice(ms []models.CheckDetail) []domain.CheckDetail {
	ds := make([]domain.CheckDetail, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCheckDetail(m)
	}
	return ds
}

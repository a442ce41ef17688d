package mapping

import (
	"database/sql"
	"time"

	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	"github.com/pharmaflow/pharma_returns_app/internal/models"
)

// ToModelReturnReport converts a domain ReturnReport to a model ReturnReport
func ToModelReturnReport(d domain.ReturnReport) models.ReturnReport {
	return models.ReturnReport{
		ReportID:        d.ReportID,
		ReturnNo:        d.ReturnNo,
		InvoiceDate:     d.InvoiceDate,
		ServiceType:     d.ServiceType,
		ERV:             d.ERV,
		CreditReceived:  d.CreditReceived,
		Fees:            d.Fees,
		AmountPaid:      d.AmountPaid,
		LastPaymentDate: sql.NullTime{Time: d.LastPaymentDate, Valid: !d.LastPaymentDate.IsZero()},
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReturnReport converts a model ReturnReport to a domain ReturnReport
func ToDomainReturnReport(m models.ReturnReport) domain.ReturnReport {
	var lastPayment time.Time
	if m.LastPaymentDate.Valid {
		lastPayment = m.LastPaymentDate.Time
	}
	return domain.ReturnReport{
		ReportID:        m.ReportID,
		ReturnNo:        m.ReturnNo,
		InvoiceDate:     m.InvoiceDate,
		ServiceType:     m.ServiceType,
		ERV:             m.ERV,
		CreditReceived:  m.CreditReceived,
		Fees:            m.Fees,
		AmountPaid:      m.AmountPaid,
		LastPaymentDate: lastPayment,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainReturnReportSlice converts a slice of model ReturnReports to domain form
func ToDomainReturnReportSlice(ms []models.ReturnReport) []domain.ReturnReport {
	ds := make([]domain.ReturnReport, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainReturnReport(m)
	}
	return ds
}

// ToModelBreakdown converts a domain ManufacturerBreakdown to its model
func ToModelBreakdown(d domain.ManufacturerBreakdown) models.ManufacturerBreakdown {
	return models.ManufacturerBreakdown{
		BreakdownID:    d.BreakdownID,
		ReportID:       d.ReportID,
		Manufacturer:   d.Manufacturer,
		ERV:            d.ERV,
		ExpirationDate: sql.NullTime{Time: d.ExpirationDate, Valid: !d.ExpirationDate.IsZero()},
	}
}

// ToDomainBreakdown converts a model ManufacturerBreakdown to its domain form
func ToDomainBreakdown(m models.ManufacturerBreakdown) domain.ManufacturerBreakdown {
	var expDate time.Time
	if m.ExpirationDate.Valid {
		expDate = m.ExpirationDate.Time
	}
	return domain.ManufacturerBreakdown{
		BreakdownID:    m.BreakdownID,
		ReportID:       m.ReportID,
		Manufacturer:   m.Manufacturer,
		ERV:            m.ERV,
		ExpirationDate: expDate,
	}
}

// ToDomainBreakdownSlice converts a slice of model breakdowns to domain form
func ToDomainBreakdownSlice(ms []models.ManufacturerBreakdown) []domain.ManufacturerBreakdown {
	ds := make([]domain.ManufacturerBreakdown, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBreakdown(m)
	}
	return ds
}

// ToModelReturnItem converts a domain ReturnItem to a model ReturnItem
func ToModelReturnItem(d domain.ReturnItem) models.ReturnItem {
	return models.ReturnItem{
		ItemID:        d.ItemID,
		ReportID:      d.ReportID,
		NDC:           d.NDC,
		Description:   d.Description,
		LotNo:         d.LotNo,
		ExpDate:       d.ExpDate,
		PkgSize:       d.PkgSize,
		FullQty:       d.FullQty,
		PartialQty:    d.PartialQty,
		UnitPrice:     d.UnitPrice,
		ExtendedPrice: d.ExtendedPrice,
		CategoryID:    sql.NullString{String: d.CategoryID, Valid: d.CategoryID != ""},
		ReasonID:      sql.NullString{String: d.ReasonID, Valid: d.ReasonID != ""},
		Manufacturer:  d.Manufacturer,
	}
}

// ToDomainReturnItem converts a model ReturnItem to a domain ReturnItem
func ToDomainReturnItem(m models.ReturnItem) domain.ReturnItem {
	return domain.ReturnItem{
		ItemID:        m.ItemID,
		ReportID:      m.ReportID,
		NDC:           m.NDC,
		Description:   m.Description,
		LotNo:         m.LotNo,
		ExpDate:       m.ExpDate,
		PkgSize:       m.PkgSize,
		FullQty:       m.FullQty,
		PartialQty:    m.PartialQty,
		UnitPrice:     m.UnitPrice,
		ExtendedPrice: m.ExtendedPrice,
		CategoryID:    m.CategoryID.String,
		ReasonID:      m.ReasonID.String,
		Manufacturer:  m.Manufacturer,
	}
}

// ToDomainReturnItemSlice converts a slice of model ReturnItems to domain form
func ToDomainReturnItemSlice(ms []models.ReturnItem) []domain.ReturnItem {
	ds := make([]domain.ReturnItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainReturnItem(m)
	}
	return ds
}

// ToModelCategory converts a domain ReturnCategory to its model
func ToModelCategory(d domain.ReturnCategory) models.ReturnCategory {
	return models.ReturnCategory{
		CategoryID: d.CategoryID,
		Name:       d.Name,
	}
}

// ToDomainCategory converts a model ReturnCategory to its domain form
func ToDomainCategory(m models.ReturnCategory) domain.ReturnCategory {
	return domain.ReturnCategory{
		CategoryID: m.CategoryID,
		Name:       m.Name,
	}
}

package dto

import (
	"time"

	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBreakdownRequest defines one manufacturer slice of a report's ERV.
type CreateBreakdownRequest struct {
	Manufacturer   string          `json:"manufacturer" binding:"required"`
	ERV            decimal.Decimal `json:"erv"`
	ExpirationDate string          `json:"expirationDate" binding:"omitempty,datetime=2006-01-02"`
}

// CreateReportRequest defines the data needed to record a return report.
type CreateReportRequest struct {
	ReturnNo    string                   `json:"returnNo" binding:"required"`
	InvoiceDate string                   `json:"invoiceDate" binding:"required,datetime=2006-01-02"`
	ServiceType string                   `json:"serviceType"`
	ERV         decimal.Decimal          `json:"erv"`
	Breakdowns  []CreateBreakdownRequest `json:"breakdowns" binding:"dive"`
}

// BreakdownResponse defines the data returned for a manufacturer breakdown.
type BreakdownResponse struct {
	Manufacturer   string          `json:"manufacturer"`
	ERV            decimal.Decimal `json:"erv"`
	ExpirationDate string          `json:"expirationDate,omitempty"`
}

// ReturnItemResponse defines the data returned for a processed return item.
type ReturnItemResponse struct {
	ItemID        string          `json:"itemID"`
	NDC           string          `json:"ndc"`
	Description   string          `json:"description"`
	LotNo         string          `json:"lotNo"`
	ExpDate       string          `json:"expDate"`
	PkgSize       int64           `json:"pkgSize"`
	FullQty       int64           `json:"fullQty"`
	PartialQty    int64           `json:"partialQty"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	ExtendedPrice decimal.Decimal `json:"extendedPrice"`
	Category      string          `json:"category,omitempty"`
	Reason        string          `json:"reason,omitempty"`
	Manufacturer  string          `json:"manufacturer"`
}

// ReportResponse defines the data returned for a return report.
type ReportResponse struct {
	ReportID        string              `json:"reportID"`
	ReturnNo        string              `json:"returnNo"`
	InvoiceDate     time.Time           `json:"invoiceDate"`
	ServiceType     string              `json:"serviceType"`
	ERV             decimal.Decimal     `json:"erv"`
	CreditReceived  decimal.Decimal     `json:"creditReceived"`
	Fees            decimal.Decimal     `json:"fees"`
	AmountPaid      decimal.Decimal     `json:"amountPaid"`
	Outstanding     decimal.Decimal     `json:"outstanding"`
	LastPaymentDate *time.Time          `json:"lastPaymentDate,omitempty"`
	Breakdowns      []BreakdownResponse `json:"breakdowns,omitempty"`
}

// ListReportsResponse wraps the list of return reports.
type ListReportsResponse struct {
	Reports []ReportResponse `json:"reports"`
}

// CreateCheckDetailRequest allocates part of a check to a return report.
type CreateCheckDetailRequest struct {
	ReturnNo string          `json:"returnNo" binding:"required"`
	Amount   decimal.Decimal `json:"amount"`
}

// CreateCheckStatementRequest defines the data needed to record a check.
type CreateCheckStatementRequest struct {
	StatementNo string                     `json:"statementNo" binding:"required"`
	PaymentDate string                     `json:"paymentDate" binding:"required,datetime=2006-01-02"`
	CheckAmount decimal.Decimal            `json:"checkAmount"`
	CheckNo     string                     `json:"checkNo" binding:"required"`
	Details     []CreateCheckDetailRequest `json:"details" binding:"required,min=1,dive"`
}

// CheckDetailResponse defines the data returned for a check allocation.
type CheckDetailResponse struct {
	ReturnNo string          `json:"returnNo"`
	Amount   decimal.Decimal `json:"amount"`
}

// CheckStatementResponse defines the data returned for a check statement.
type CheckStatementResponse struct {
	StatementID string                `json:"statementID"`
	StatementNo string                `json:"statementNo"`
	PaymentDate time.Time             `json:"paymentDate"`
	CheckAmount decimal.Decimal       `json:"checkAmount"`
	CheckNo     string                `json:"checkNo"`
	Status      string                `json:"status"`
	Details     []CheckDetailResponse `json:"details,omitempty"`
}

// ListCheckStatementsResponse wraps the list of check statements.
type ListCheckStatementsResponse struct {
	Statements []CheckStatementResponse `json:"statements"`
}

// ManufacturerSummaryResponse is one row of the per-manufacturer rollup.
type ManufacturerSummaryResponse struct {
	Manufacturer string          `json:"manufacturer"`
	ERV          decimal.Decimal `json:"erv"`
}

// ReportSummaryResponse aggregates the ledger for the reports screen.
type ReportSummaryResponse struct {
	ReportCount         int                           `json:"reportCount"`
	TotalERV            decimal.Decimal               `json:"totalERV"`
	TotalCreditReceived decimal.Decimal               `json:"totalCreditReceived"`
	TotalFees           decimal.Decimal               `json:"totalFees"`
	TotalAmountPaid     decimal.Decimal               `json:"totalAmountPaid"`
	TotalOutstanding    decimal.Decimal               `json:"totalOutstanding"`
	ByManufacturer      []ManufacturerSummaryResponse `json:"byManufacturer"`
}

// ToBreakdownResponse converts a domain.ManufacturerBreakdown to its DTO.
func ToBreakdownResponse(b *domain.ManufacturerBreakdown) BreakdownResponse {
	resp := BreakdownResponse{
		Manufacturer: b.Manufacturer,
		ERV:          b.ERV,
	}
	if !b.ExpirationDate.IsZero() {
		resp.ExpirationDate = b.ExpirationDate.Format("2006-01-02")
	}
	return resp
}

// ToReportResponse converts a domain.ReturnReport to ReportResponse DTO.
// Outstanding is ERV minus amount paid.
func ToReportResponse(r *domain.ReturnReport) ReportResponse {
	resp := ReportResponse{
		ReportID:       r.ReportID,
		ReturnNo:       r.ReturnNo,
		InvoiceDate:    r.InvoiceDate,
		ServiceType:    r.ServiceType,
		ERV:            r.ERV,
		CreditReceived: r.CreditReceived,
		Fees:           r.Fees,
		AmountPaid:     r.AmountPaid,
		Outstanding:    r.ERV.Sub(r.AmountPaid),
	}
	if !r.LastPaymentDate.IsZero() {
		t := r.LastPaymentDate
		resp.LastPaymentDate = &t
	}
	if len(r.Breakdowns) > 0 {
		resp.Breakdowns = make([]BreakdownResponse, len(r.Breakdowns))
		for i := range r.Breakdowns {
			resp.Breakdowns[i] = ToBreakdownResponse(&r.Breakdowns[i])
		}
	}
	return resp
}

// ToCheckStatementResponse converts a domain.CheckStatement to its DTO.
func ToCheckStatementResponse(s *domain.CheckStatement) CheckStatementResponse {
	resp := CheckStatementResponse{
		StatementID: s.StatementID,
		StatementNo: s.StatementNo,
		PaymentDate: s.PaymentDate,
		CheckAmount: s.CheckAmount,
		CheckNo:     s.CheckNo,
		Status:      string(s.Status),
	}
	if len(s.Details) > 0 {
		resp.Details = make([]CheckDetailResponse, len(s.Details))
		for i, d := range s.Details {
			resp.Details[i] = CheckDetailResponse{ReturnNo: d.ReturnNo, Amount: d.Amount}
		}
	}
	return resp
}

// ToReportSummaryResponse converts a domain.ReportSummary to its DTO.
func ToReportSummaryResponse(s *domain.ReportSummary) ReportSummaryResponse {
	resp := ReportSummaryResponse{
		ReportCount:         s.ReportCount,
		TotalERV:            s.TotalERV,
		TotalCreditReceived: s.TotalCreditReceived,
		TotalFees:           s.TotalFees,
		TotalAmountPaid:     s.TotalAmountPaid,
		TotalOutstanding:    s.TotalERV.Sub(s.TotalAmountPaid),
		ByManufacturer:      make([]ManufacturerSummaryResponse, len(s.ByManufacturer)),
	}
	for i, m := range s.ByManufacturer {
		resp.ByManufacturer[i] = ManufacturerSummaryResponse{Manufacturer: m.Manufacturer, ERV: m.ERV}
	}
	return resp
}

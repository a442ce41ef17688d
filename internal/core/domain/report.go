package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnReport is one processing-center return report in the reconciliation
// ledger: the ERV (estimated return value) of a processed batch and the
// payments recorded against it.
type ReturnReport struct {
	ReportID        string          `json:"reportID"` // Primary Key (UUID)
	ReturnNo        string          `json:"returnNo"` // Unique business key
	InvoiceDate     time.Time       `json:"invoiceDate"`
	ServiceType     string          `json:"serviceType"`
	ERV             decimal.Decimal `json:"erv"`
	CreditReceived  decimal.Decimal `json:"creditReceived"`
	Fees            decimal.Decimal `json:"fees"`
	AmountPaid      decimal.Decimal `json:"amountPaid"`
	LastPaymentDate time.Time       `json:"lastPaymentDate"`
	AuditFields

	Breakdowns []ManufacturerBreakdown `json:"breakdowns,omitempty"`
	Items      []ReturnItem            `json:"items,omitempty"`
}

// ManufacturerBreakdown is a per-manufacturer slice of a return report's ERV.
type ManufacturerBreakdown struct {
	BreakdownID    string          `json:"breakdownID"` // Primary Key (UUID)
	ReportID       string          `json:"reportID"`
	Manufacturer   string          `json:"manufacturer"`
	ERV            decimal.Decimal `json:"erv"`
	ExpirationDate time.Time       `json:"expirationDate"`
}

// ReturnItem is a processed line on a return report, as catalogued by the
// processing center (distinct from a pharmacy-entered submission LineItem).
type ReturnItem struct {
	ItemID        string          `json:"itemID"` // Primary Key (UUID)
	ReportID      string          `json:"reportID"`
	NDC           string          `json:"ndc"`
	Description   string          `json:"description"`
	LotNo         string          `json:"lotNo"`
	ExpDate       time.Time       `json:"expDate"`
	PkgSize       int64           `json:"pkgSize"`
	FullQty       int64           `json:"fullQty"`
	PartialQty    int64           `json:"partialQty"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	ExtendedPrice decimal.Decimal `json:"extendedPrice"`
	CategoryID    string          `json:"categoryID"` // FK -> ReturnCategory
	ReasonID      string          `json:"reasonID"`   // FK -> Reason
	Manufacturer  string          `json:"manufacturer"`
}

// ReturnCategory buckets processed return items for reporting.
type ReturnCategory struct {
	CategoryID string `json:"categoryID"` // Primary Key (UUID)
	Name       string `json:"name"`       // Unique
}

// DefaultReturnCategories returns the seed categories.
func DefaultReturnCategories() []ReturnCategory {
	return []ReturnCategory{
		{Name: "Returnable"},
		{Name: "Non-Returnable"},
		{Name: "Hazardous"},
		{Name: "Controlled"},
	}
}

// ReportSummary aggregates the reconciliation ledger for the reports screen.
type ReportSummary struct {
	ReportCount         int             `json:"reportCount"`
	TotalERV            decimal.Decimal `json:"totalERV"`
	TotalCreditReceived decimal.Decimal `json:"totalCreditReceived"`
	TotalFees           decimal.Decimal `json:"totalFees"`
	TotalAmountPaid     decimal.Decimal `json:"totalAmountPaid"`

	ByManufacturer []ManufacturerSummary `json:"byManufacturer"`
}

// ManufacturerSummary is a per-manufacturer ERV rollup.
type ManufacturerSummary struct {
	Manufacturer string          `json:"manufacturer"`
	ERV          decimal.Decimal `json:"erv"`
}

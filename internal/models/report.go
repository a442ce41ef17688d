package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// ReturnReport represents a processing-center return report row.
type ReturnReport struct {
	ReportID        string          `db:"report_id"`
	ReturnNo        string          `db:"return_no"` // Unique business key
	InvoiceDate     time.Time       `db:"invoice_date"`
	ServiceType     string          `db:"service_type"`
	ERV             decimal.Decimal `db:"erv"`
	CreditReceived  decimal.Decimal `db:"credit_received"`
	Fees            decimal.Decimal `db:"fees"`
	AmountPaid      decimal.Decimal `db:"amount_paid"`
	LastPaymentDate sql.NullTime    `db:"last_payment_date"`
	AuditFields
}

// ManufacturerBreakdown represents a per-manufacturer ERV slice of a report.
type ManufacturerBreakdown struct {
	BreakdownID    string          `db:"breakdown_id"`
	ReportID       string          `db:"report_id"`
	Manufacturer   string          `db:"manufacturer"`
	ERV            decimal.Decimal `db:"erv"`
	ExpirationDate sql.NullTime    `db:"expiration_date"`
}

// ReturnItem represents a processed return item row catalogued by the
// processing center.
type ReturnItem struct {
	ItemID        string          `db:"item_id"`
	ReportID      string          `db:"report_id"`
	NDC           string          `db:"ndc"`
	Description   string          `db:"description"`
	LotNo         string          `db:"lot_no"`
	ExpDate       time.Time       `db:"exp_date"`
	PkgSize       int64           `db:"pkg_size"`
	FullQty       int64           `db:"full_qty"`
	PartialQty    int64           `db:"partial_qty"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
	ExtendedPrice decimal.Decimal `db:"extended_price"`
	CategoryID    sql.NullString  `db:"category_id"`
	ReasonID      sql.NullString  `db:"reason_id"`
	Manufacturer  string          `db:"manufacturer"`
}

// ReturnCategory represents a reporting bucket for processed return items.
type ReturnCategory struct {
	CategoryID string `db:"category_id"`
	Name       string `db:"name"` // Unique
}

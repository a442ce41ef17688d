package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckStatementStatus indicates whether a manufacturer check has been
// reconciled against its return reports.
type CheckStatementStatus string

const (
	CheckPending CheckStatementStatus = "Pending"
	CheckCleared CheckStatementStatus = "Cleared"
)

// CheckStatement records one manufacturer credit check and the return reports
// it pays against.
type CheckStatement struct {
	StatementID string               `json:"statementID"` // Primary Key (UUID)
	StatementNo string               `json:"statementNo"` // Unique
	PaymentDate time.Time            `json:"paymentDate"`
	CheckAmount decimal.Decimal      `json:"checkAmount"`
	CheckNo     string               `json:"checkNo"` // Unique
	Status      CheckStatementStatus `json:"status"`
	AuditFields

	Details []CheckDetail `json:"details,omitempty"`
}

// CheckDetail allocates a portion of a check to a return report.
type CheckDetail struct {
	DetailID    string          `json:"detailID"` // Primary Key (UUID)
	StatementID string          `json:"statementID"`
	ReturnNo    string          `json:"returnNo"` // Business key of the paid return report
	Amount      decimal.Decimal `json:"amount"`
}

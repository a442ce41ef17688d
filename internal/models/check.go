package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckStatement represents a manufacturer credit check row.
type CheckStatement struct {
	StatementID string          `db:"statement_id"`
	StatementNo string          `db:"statement_no"` // Unique
	PaymentDate time.Time       `db:"payment_date"`
	CheckAmount decimal.Decimal `db:"check_amount"`
	CheckNo     string          `db:"check_no"` // Unique
	Status      string          `db:"status"`
	AuditFields
}

// CheckDetail represents one allocation of a check to a return report.
type CheckDetail struct {
	DetailID    string          `db:"detail_id"`
	StatementID string          `db:"statement_id"`
	ReturnNo    string          `db:"return_no"`
	Amount      decimal.Decimal `db:"amount"`
}

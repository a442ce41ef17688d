package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem represents a return line item row.
type LineItem struct {
	ItemID          string          `db:"item_id"`
	SubmissionID    string          `db:"submission_id"`
	NDC             string          `db:"ndc"`
	Quantity        int64           `db:"quantity"`
	ExpirationDate  time.Time       `db:"expiration_date"`
	EstimatedCredit decimal.Decimal `db:"estimated_credit"`
	Status          string          `db:"status"`
	ReasonID        string          `db:"reason_id"`
	AuditFields
}

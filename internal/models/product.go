package models

import (
	"github.com/shopspring/decimal"
)

// ProductRecord represents a row in the NDC product registry.
type ProductRecord struct {
	NDC             string          `db:"ndc"` // Primary key
	DrugName        string          `db:"drug_name"`
	Manufacturer    string          `db:"manufacturer"`
	PolicyCode      string          `db:"policy_code"` // Nullable in DB, empty string here
	BaseCreditValue decimal.Decimal `db:"base_credit_value"`
	AuditFields
}

package domain

import "github.com/shopspring/decimal"

// PolicyNonReturnable is the policy code marking a product as globally
// non-returnable regardless of its expiration dates.
const PolicyNonReturnable = "X"

// ProductRecord is a registry entry for a single NDC. Reference data only:
// maintained by an administrative process, never written by the core flows.
type ProductRecord struct {
	NDC             string          `json:"ndc"` // Primary Key, 11-character National Drug Code
	DrugName        string          `json:"drugName"`
	Manufacturer    string          `json:"manufacturer"`
	PolicyCode      string          `json:"policyCode"`      // Empty or "X"
	BaseCreditValue decimal.Decimal `json:"baseCreditValue"` // Per-unit credit value, >= 0
	AuditFields
}

// IsPolicyRestricted reports whether the manufacturer policy forbids returns
// of this product outright.
func (p ProductRecord) IsPolicyRestricted() bool {
	return p.PolicyCode == PolicyNonReturnable
}

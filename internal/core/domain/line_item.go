package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EligibilityStatus is the submission-eligibility outcome for a line item.
// Distinct from the classification ReasonName: the two are computed
// independently and stored side by side.
type EligibilityStatus string

const (
	EligibilityUnchecked        EligibilityStatus = "Unchecked"
	EligibilityEligible         EligibilityStatus = "Eligible"
	EligibilityNDCNotFound      EligibilityStatus = "NDC Not Found"
	EligibilityExpirationSoon   EligibilityStatus = "Ineligible (Expiration Too Soon)"
	EligibilityExpirationFar    EligibilityStatus = "Ineligible (Expiration Too Far)"
	EligibilityPolicyRestricted EligibilityStatus = "Ineligible (Policy Restricted)"
	EligibilityNoCreditValue    EligibilityStatus = "Ineligible (No Credit Value)"
)

// LineItem is a single return line within a submission. Write-once: computed
// fields are set at creation and never revised.
type LineItem struct {
	ItemID          string            `json:"itemID"` // Primary Key (UUID)
	SubmissionID    string            `json:"submissionID"`
	NDC             string            `json:"ndc"` // May be absent from the registry
	Quantity        int64             `json:"quantity"`
	ExpirationDate  time.Time         `json:"expirationDate"`
	EstimatedCredit decimal.Decimal   `json:"estimatedCredit"`
	Status          EligibilityStatus `json:"status"`
	ReasonID        string            `json:"reasonID"` // FK -> Reason
	AuditFields
}

package returns

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pharmaflow/pharma_returns_app/internal/apperrors"
	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
)

// Eligibility window: a product must expire more than 180 days out but no
// more than 3 years out to be accepted for return.
const (
	MinReturnWindowDays = 180
	MaxReturnWindowDays = 3 * 365
)

// Resolution is the per-item outcome of the eligibility rules. Status and
// Reason are two independently computed labels and may disagree for edge
// dates; both are persisted on the line item.
type Resolution struct {
	Status domain.EligibilityStatus
	Credit decimal.Decimal
	Reason domain.ReasonName
}

// Resolve applies the submission-eligibility rules to one candidate line
// item. A nil product means the NDC is absent from the registry, which is a
// defined outcome rather than an error. Quantity must be positive; anything
// else is a validation error and the caller should skip the row and continue
// with the rest of the batch.
func Resolve(today time.Time, product *domain.ProductRecord, quantity int64, expDate time.Time) (Resolution, error) {
	if quantity <= 0 {
		return Resolution{}, fmt.Errorf("%w: quantity must be positive, got %d", apperrors.ErrValidation, quantity)
	}

	res := Resolution{
		Credit: decimal.Zero,
		Reason: Classify(today, expDate, product),
	}

	if product == nil {
		res.Status = domain.EligibilityNDCNotFound
		return res, nil
	}

	minReturnDate := today.AddDate(0, 0, MinReturnWindowDays)
	maxReturnDate := today.AddDate(0, 0, MaxReturnWindowDays)

	switch {
	case !expDate.After(minReturnDate):
		res.Status = domain.EligibilityExpirationSoon
	case expDate.After(maxReturnDate):
		res.Status = domain.EligibilityExpirationFar
	case product.IsPolicyRestricted():
		res.Status = domain.EligibilityPolicyRestricted
	case product.BaseCreditValue.LessThanOrEqual(decimal.Zero):
		res.Status = domain.EligibilityNoCreditValue
	default:
		res.Status = domain.EligibilityEligible
		res.Credit = EstimateCredit(today, *product, quantity, expDate)
	}

	return res, nil
}

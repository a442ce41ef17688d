// Package returns holds the pure classification and credit-estimation rules
// for pharmaceutical return line items. Every function takes the reference
// date explicitly so results are deterministic and testable.
package returns

import (
	"time"

	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
)

// MonthsUntilExpiry computes whole months between today and the expiration
// date as integer days divided by 30, truncating toward zero. Not calendar
// month arithmetic; this matches how the processing center quotes windows.
func MonthsUntilExpiry(today, expDate time.Time) int64 {
	days := int64(expDate.Sub(today).Hours() / 24)
	return days / 30
}

// Classify maps an expiration date and optional registry record to a
// classification label. Rules are an ordered decision list; the ordering is
// load-bearing, Outdated wins over every other window.
func Classify(today, expDate time.Time, product *domain.ProductRecord) domain.ReasonName {
	if expDate.Before(today) {
		return domain.ReasonOutdated
	}

	months := MonthsUntilExpiry(today, expDate)
	if months <= 6 {
		return domain.ReasonShortDated
	}
	if months > 12 {
		return domain.ReasonFutureDated
	}

	if product != nil && product.IsPolicyRestricted() {
		return domain.ReasonNonReturnable
	}
	return domain.ReasonReturnable
}

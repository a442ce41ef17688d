package returns

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
)

var (
	factorFull           = decimal.NewFromInt(1)
	factorBulkDiscount   = decimal.RequireFromString("0.95") // qty >= 100
	factorVolumeDiscount = decimal.RequireFromString("0.97") // qty >= 50
	factorLongExpiry     = decimal.RequireFromString("0.90") // > 24 months out
	factorShortExpiry    = decimal.RequireFromString("0.95") // < 12 months out
)

// DiscountFactor returns the quantity-tier adjustment for bulk returns.
func DiscountFactor(quantity int64) decimal.Decimal {
	switch {
	case quantity >= 100:
		return factorBulkDiscount
	case quantity >= 50:
		return factorVolumeDiscount
	default:
		return factorFull
	}
}

// ExpiryFactor returns the expiration-age adjustment.
func ExpiryFactor(today, expDate time.Time) decimal.Decimal {
	months := MonthsUntilExpiry(today, expDate)
	switch {
	case months > 24:
		return factorLongExpiry
	case months < 12:
		return factorShortExpiry
	default:
		return factorFull
	}
}

// EstimateCredit computes the estimated manufacturer credit for a line item.
// Callers must only invoke it for positive quantities and products with a
// positive base credit value; eligibility gating lives in Resolve.
// Rounding is half-up to 2 decimal places, per financial reporting convention.
func EstimateCredit(today time.Time, product domain.ProductRecord, quantity int64, expDate time.Time) decimal.Decimal {
	credit := product.BaseCreditValue.
		Mul(decimal.NewFromInt(quantity)).
		Mul(DiscountFactor(quantity)).
		Mul(ExpiryFactor(today, expDate))
	return credit.Round(2)
}

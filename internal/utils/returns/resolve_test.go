package returns_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmaflow/pharma_returns_app/internal/apperrors"
	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	"github.com/pharmaflow/pharma_returns_app/internal/utils/returns"
)

func TestResolve_RejectsNonPositiveQuantity(t *testing.T) {
	for _, qty := range []int64{0, -1, -50} {
		_, err := returns.Resolve(today, standardProduct(), qty, today.AddDate(0, 0, 300))
		require.Error(t, err, "quantity %d", qty)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	}
}

func TestResolve_UnknownNDC(t *testing.T) {
	res, err := returns.Resolve(today, nil, 10, today.AddDate(0, 0, 300))
	require.NoError(t, err)
	assert.Equal(t, domain.EligibilityNDCNotFound, res.Status)
	assert.True(t, res.Credit.IsZero())
	assert.Equal(t, domain.ReasonReturnable, res.Reason)
}

func TestResolve_EligibilityWindows(t *testing.T) {
	tests := []struct {
		name       string
		expDate    time.Time
		product    *domain.ProductRecord
		wantStatus domain.EligibilityStatus
	}{
		{
			name:       "expiring inside 180 days is too soon",
			expDate:    today.AddDate(0, 0, 90),
			product:    standardProduct(),
			wantStatus: domain.EligibilityExpirationSoon,
		},
		{
			name:       "exactly 180 days out is still too soon",
			expDate:    today.AddDate(0, 0, returns.MinReturnWindowDays),
			product:    standardProduct(),
			wantStatus: domain.EligibilityExpirationSoon,
		},
		{
			name:       "one day past the minimum window is eligible",
			expDate:    today.AddDate(0, 0, returns.MinReturnWindowDays+1),
			product:    standardProduct(),
			wantStatus: domain.EligibilityEligible,
		},
		{
			name:       "beyond three years is too far",
			expDate:    today.AddDate(0, 0, returns.MaxReturnWindowDays+1),
			product:    standardProduct(),
			wantStatus: domain.EligibilityExpirationFar,
		},
		{
			name:       "restricted policy inside the window",
			expDate:    today.AddDate(0, 0, 400),
			product:    restrictedProduct(),
			wantStatus: domain.EligibilityPolicyRestricted,
		},
		{
			name:    "zero base credit value",
			expDate: today.AddDate(0, 0, 400),
			product: &domain.ProductRecord{
				NDC:             "00035678021",
				DrugName:        "Sample Drug B 500mg",
				Manufacturer:    "MediCorp",
				BaseCreditValue: decimal.Zero,
			},
			wantStatus: domain.EligibilityNoCreditValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := returns.Resolve(today, tt.product, 10, tt.expDate)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)
			if tt.wantStatus != domain.EligibilityEligible {
				assert.True(t, res.Credit.IsZero(), "ineligible items carry zero credit")
			}
		})
	}
}

func TestResolve_EligibleComputesCredit(t *testing.T) {
	exp := today.AddDate(0, 0, 790) // 26 months out
	res, err := returns.Resolve(today, standardProduct(), 150, exp)
	require.NoError(t, err)
	assert.Equal(t, domain.EligibilityEligible, res.Status)
	assert.Equal(t, "1603.13", res.Credit.String())
	assert.Equal(t, domain.ReasonFutureDated, res.Reason)
}

// An item expired ten days ago classifies as Outdated and, being inside the
// 180-day minimum window, resolves as Expiration Too Soon. Both labels
// coexist on the same line item.
func TestResolve_PastDateCarriesBothLabels(t *testing.T) {
	exp := today.AddDate(0, 0, -10)
	res, err := returns.Resolve(today, standardProduct(), 10, exp)
	require.NoError(t, err)
	assert.Equal(t, domain.EligibilityExpirationSoon, res.Status)
	assert.Equal(t, domain.ReasonOutdated, res.Reason)
}

func TestResolve_Idempotent(t *testing.T) {
	exp := today.AddDate(0, 0, 400)
	first, err := returns.Resolve(today, standardProduct(), 75, exp)
	require.NoError(t, err)
	second, err := returns.Resolve(today, standardProduct(), 75, exp)
	require.NoError(t, err)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.Reason, second.Reason)
	assert.True(t, first.Credit.Equal(second.Credit))
}

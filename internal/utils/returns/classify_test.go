package returns_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	"github.com/pharmaflow/pharma_returns_app/internal/utils/returns"
)

// Fixed reference date so every expectation is deterministic.
var today = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func restrictedProduct() *domain.ProductRecord {
	return &domain.ProductRecord{
		NDC:             "00049012031",
		DrugName:        "Ineligible Product",
		Manufacturer:    "NoReturn Inc",
		PolicyCode:      domain.PolicyNonReturnable,
		BaseCreditValue: decimal.Zero,
	}
}

func standardProduct() *domain.ProductRecord {
	return &domain.ProductRecord{
		NDC:             "00021234011",
		DrugName:        "Sample Drug A 10mg",
		Manufacturer:    "PharmaCo",
		BaseCreditValue: decimal.RequireFromString("12.50"),
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		expDate time.Time
		product *domain.ProductRecord
		want    domain.ReasonName
	}{
		{
			name:    "past date is outdated",
			expDate: today.AddDate(0, 0, -10),
			product: standardProduct(),
			want:    domain.ReasonOutdated,
		},
		{
			name:    "past date is outdated even without a product record",
			expDate: today.AddDate(0, 0, -1),
			product: nil,
			want:    domain.ReasonOutdated,
		},
		{
			name:    "outdated wins over policy restriction",
			expDate: today.AddDate(-1, 0, 0),
			product: restrictedProduct(),
			want:    domain.ReasonOutdated,
		},
		{
			name:    "today itself is short dated, not outdated",
			expDate: today,
			product: standardProduct(),
			want:    domain.ReasonShortDated,
		},
		{
			name:    "within six months is short dated",
			expDate: today.AddDate(0, 0, 150),
			product: standardProduct(),
			want:    domain.ReasonShortDated,
		},
		{
			name:    "six month boundary is still short dated",
			expDate: today.AddDate(0, 0, 180),
			product: standardProduct(),
			want:    domain.ReasonShortDated,
		},
		{
			name:    "beyond twelve months is future dated",
			expDate: today.AddDate(0, 0, 400),
			product: standardProduct(),
			want:    domain.ReasonFutureDated,
		},
		{
			name:    "mid window with restricted policy is non-returnable",
			expDate: today.AddDate(0, 0, 270),
			product: restrictedProduct(),
			want:    domain.ReasonNonReturnable,
		},
		{
			name:    "mid window without product record is returnable",
			expDate: today.AddDate(0, 0, 270),
			product: nil,
			want:    domain.ReasonReturnable,
		},
		{
			name:    "mid window with normal policy is returnable",
			expDate: today.AddDate(0, 0, 300),
			product: standardProduct(),
			want:    domain.ReasonReturnable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := returns.Classify(today, tt.expDate, tt.product)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMonthsUntilExpiry_TruncatesTowardZero(t *testing.T) {
	assert.Equal(t, int64(6), returns.MonthsUntilExpiry(today, today.AddDate(0, 0, 209)))
	assert.Equal(t, int64(7), returns.MonthsUntilExpiry(today, today.AddDate(0, 0, 210)))
	assert.Equal(t, int64(0), returns.MonthsUntilExpiry(today, today.AddDate(0, 0, 29)))
	assert.Equal(t, int64(0), returns.MonthsUntilExpiry(today, today.AddDate(0, 0, -29)))
}

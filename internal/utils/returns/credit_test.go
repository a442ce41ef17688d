package returns_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/pharmaflow/pharma_returns_app/internal/utils/returns"
)

func TestDiscountFactor_TierBoundaries(t *testing.T) {
	tests := []struct {
		quantity int64
		want     string
	}{
		{1, "1"},
		{49, "1"},
		{50, "0.97"},
		{99, "0.97"},
		{100, "0.95"},
		{5000, "0.95"},
	}
	for _, tt := range tests {
		got := returns.DiscountFactor(tt.quantity)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
			"quantity %d: want %s, got %s", tt.quantity, tt.want, got)
	}
}

func TestExpiryFactor_TierBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		expDate time.Time
		want    string
	}{
		{"under a year", today.AddDate(0, 0, 300), "0.95"},
		{"exactly 12 months", today.AddDate(0, 0, 360), "1"},
		{"mid window", today.AddDate(0, 0, 500), "1"},
		{"exactly 24 months", today.AddDate(0, 0, 720), "1"},
		{"beyond two years", today.AddDate(0, 0, 780), "0.90"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := returns.ExpiryFactor(today, tt.expDate)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"want %s, got %s", tt.want, got)
		})
	}
}

// The factor set is closed: whatever the inputs, both adjustment factors must
// come from {1.00, 0.97, 0.95, 0.90}.
func TestAdjustmentFactors_ClosedSet(t *testing.T) {
	allowed := map[string]bool{"1": true, "0.97": true, "0.95": true, "0.9": true}

	for qty := int64(1); qty <= 300; qty += 7 {
		f := returns.DiscountFactor(qty)
		assert.True(t, allowed[f.String()], "discount factor %s for quantity %d outside allowed set", f, qty)
	}
	for days := -100; days <= 1200; days += 30 {
		f := returns.ExpiryFactor(today, today.AddDate(0, 0, days))
		assert.True(t, allowed[f.String()], "expiry factor %s for %d days outside allowed set", f, days)
	}
}

func TestEstimateCredit_VolumeDiscount(t *testing.T) {
	// 60 units of a 12.50 product, 13 months out: 3% volume discount, no
	// expiry adjustment. 12.50 * 60 * 0.97 = 727.50.
	exp := today.AddDate(0, 0, 395)
	credit := returns.EstimateCredit(today, *standardProduct(), 60, exp)
	assert.Equal(t, "727.5", credit.String())
}

func TestEstimateCredit_BulkAndLongExpiry(t *testing.T) {
	// 150 units, 26 months out: 5% bulk discount and 10% long-expiry
	// reduction. 12.50 * 150 * 0.95 * 0.90 = 1603.125, rounded half-up.
	exp := today.AddDate(0, 0, 790)
	credit := returns.EstimateCredit(today, *standardProduct(), 150, exp)
	assert.Equal(t, "1603.13", credit.String())
}

func TestEstimateCredit_ShortExpiryReduction(t *testing.T) {
	// 7 months out is inside the short-expiry band (< 12 months): 5%
	// reduction on top of the 3% volume discount.
	exp := today.AddDate(0, 0, 210)
	credit := returns.EstimateCredit(today, *standardProduct(), 60, exp)
	assert.Equal(t, "691.13", credit.String()) // 12.50*60*0.97*0.95 = 691.125
}

func TestEstimateCredit_MonotonicInBaseValue(t *testing.T) {
	exp := today.AddDate(0, 0, 500)
	prev := decimal.Zero
	for _, base := range []string{"0", "0.01", "1", "8.99", "12.50", "100"} {
		p := *standardProduct()
		p.BaseCreditValue = decimal.RequireFromString(base)
		credit := returns.EstimateCredit(today, p, 60, exp)
		assert.True(t, credit.GreaterThanOrEqual(prev),
			"credit %s for base %s below previous %s", credit, base, prev)
		prev = credit
	}
}

package domain

import (
	"math"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSplit(t *testing.T) {
	tests := []struct {
		name           string
		amount         float64
		deliveryCharge float64
		want           Split
	}{
		{"basic order", 40, 15, Split{TotalMinorUnits: 5500, ShopShare: 5445, PlatformShare: 55}},
		{"subscription plan", 99, 0, Split{TotalMinorUnits: 9900, ShopShare: 9801, PlatformShare: 99}},
		{"fractional price", 22.5, 9, Split{TotalMinorUnits: 3150, ShopShare: 3119, PlatformShare: 31}},
		{"tiny total", 0.01, 0, Split{TotalMinorUnits: 1, ShopShare: 1, PlatformShare: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSplit(tt.amount, tt.deliveryCharge)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.TotalMinorUnits, got.ShopShare+got.PlatformShare)
		})
	}
}

func TestComputeSplitSharesAddUp(t *testing.T) {
	check := func(amountPaise, deliveryPaise uint32) bool {
		amount := float64(amountPaise%10_000_000) / 100
		delivery := float64(deliveryPaise%10_000) / 100
		got := ComputeSplit(amount, delivery)
		want := int64(math.Round((amount + delivery) * 100))
		return got.ShopShare+got.PlatformShare == got.TotalMinorUnits &&
			got.TotalMinorUnits == want &&
			got.ShopShare >= 0 && got.PlatformShare >= 0
	}
	require.NoError(t, quick.Check(check, &quick.Config{MaxCount: 2000}))
}

func TestPlatformCommission(t *testing.T) {
	assert.Equal(t, int64(1), PlatformCommission(40, 15))
	assert.Equal(t, int64(0), PlatformCommission(20, 9))
	assert.Equal(t, int64(5), PlatformCommission(450, 50))
}

func TestLineTotal(t *testing.T) {
	assert.True(t, LineTotal(0.1, 3).Equal(LineTotal(0.3, 1)))
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanCode(t *testing.T) {
	plans := map[PlanCode]struct {
		days  int
		price int64
	}{
		"99":  {15, 9900},
		"149": {30, 14900},
		"299": {90, 29900},
		"599": {180, 59900},
	}
	for code, want := range plans {
		days, err := code.DurationDays()
		require.NoError(t, err)
		assert.Equal(t, want.days, days)

		price, err := code.PriceMinorUnits()
		require.NoError(t, err)
		assert.Equal(t, want.price, price)
	}

	_, err := PlanCode("100").DurationDays()
	assert.ErrorIs(t, err, ErrInvalidPlan)
	_, err = PlanCode("").PriceMinorUnits()
	assert.ErrorIs(t, err, ErrInvalidPlan)
}

func TestSubscriptionEnd(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	end, err := SubscriptionEnd(now, "149")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 31, 10, 0, 0, 0, time.UTC), end)
}

func TestShopIsActive(t *testing.T) {
	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.False(t, (&Shop{}).IsActive(now))
	assert.False(t, (&Shop{SubscriptionEndDate: &past}).IsActive(now))
	assert.True(t, (&Shop{SubscriptionEndDate: &future}).IsActive(now))
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckTransition(t *testing.T) {
	assert.NoError(t, StatusProcessing.CheckTransition(StatusOutForDelivery))
	assert.NoError(t, StatusProcessing.CheckTransition(StatusDelivered))
	assert.NoError(t, StatusOutForDelivery.CheckTransition(StatusOutForDelivery))
	assert.ErrorIs(t, StatusDelivered.CheckTransition(StatusProcessing), ErrInvalidTransition)
	assert.ErrorIs(t, StatusOutForDelivery.CheckTransition(StatusProcessing), ErrInvalidTransition)
	assert.ErrorIs(t, StatusProcessing.CheckTransition("Shipped"), ErrInvalidStatus)
}

func TestDisplayQuantity(t *testing.T) {
	assert.Equal(t, "1.5 kg", DisplayQuantity(500, UnitGrams, 3))
	assert.Equal(t, "750 grams", DisplayQuantity(250, UnitGrams, 3))
	assert.Equal(t, "1 liter", DisplayQuantity(500, UnitMl, 2))
	assert.Equal(t, "1.33 kg", DisplayQuantity(333, UnitGrams, 4))
	assert.Equal(t, "2 dozen", DisplayQuantity(1, UnitDozen, 2))
	assert.Equal(t, "2.5 liter", DisplayQuantity(1.25, UnitLiter, 2))
}

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := NewValidationError("address is required")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "address is required", err.Error())
}

func TestPatterns(t *testing.T) {
	assert.True(t, IsValidPAN("ABCDE1234F"))
	assert.False(t, IsValidPAN("ABCD1234F"))
	assert.True(t, IsValidIFSC("HDFC0001234"))
	assert.False(t, IsValidIFSC("HDFC1001234"))
	assert.True(t, IsValidPhone("9876543210"))
	assert.False(t, IsValidPhone("98765 43210"))
}

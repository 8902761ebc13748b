package domain

import "github.com/shopspring/decimal"

var (
	commissionRate = decimal.NewFromFloat(0.01)
	shopShareRate  = decimal.NewFromFloat(0.99)
	hundred        = decimal.NewFromInt(100)
)

// Split divides an order total between the shop and the platform, in paise.
type Split struct {
	TotalMinorUnits int64
	ShopShare       int64
	PlatformShare   int64
}

func ComputeSplit(amount, deliveryCharge float64) Split {
	total := decimal.NewFromFloat(amount).
		Add(decimal.NewFromFloat(deliveryCharge)).
		Mul(hundred).
		Round(0)
	shop := total.Mul(shopShareRate).Round(0)
	return Split{
		TotalMinorUnits: total.IntPart(),
		ShopShare:       shop.IntPart(),
		PlatformShare:   total.Sub(shop).IntPart(),
	}
}

// PlatformCommission is 1% of the order total, rounded to whole rupees.
func PlatformCommission(amount, deliveryCharge float64) int64 {
	return decimal.NewFromFloat(amount).
		Add(decimal.NewFromFloat(deliveryCharge)).
		Mul(commissionRate).
		Round(0).
		IntPart()
}

// LineTotal multiplies a unit price by its multiplier without float drift.
func LineTotal(price float64, multiplier int) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(multiplier)))
}

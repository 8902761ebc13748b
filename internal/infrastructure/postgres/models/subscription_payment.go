package models

import "time"

// SubscriptionPaymentModel is one applied onboarding or renewal payment.
type SubscriptionPaymentModel struct {
	GatewayPaymentID string `gorm:"primaryKey"`
	GatewayOrderID   string
	ShopID           string `gorm:"type:uuid;index:idx_subscription_payments_shop"`
	Plan             string
	Purpose          string
	PaidAt           time.Time
}

func (SubscriptionPaymentModel) TableName() string { return "subscription_payments" }

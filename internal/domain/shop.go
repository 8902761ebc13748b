package domain

import (
	"context"
	"time"
)

type Address struct {
	Street     string   `json:"street"`
	Street2    string   `json:"street2,omitempty"`
	City       string   `json:"city,omitempty"`
	State      string   `json:"state,omitempty"`
	PostalCode string   `json:"postal_code,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

type SubscriptionPayment struct {
	GatewayOrderID   string
	GatewayPaymentID string
	PaidAt           *time.Time
}

type Shop struct {
	ID                  string
	Name                string
	Email               string
	Phone               string
	Address             Address
	ImageURL            string
	Subscription        PlanCode
	SubscriptionEndDate *time.Time
	IsSetupComplete     bool
	GatewayAccountID    string
	// BankDetails is the encrypted envelope, never plaintext.
	BankDetails      string
	LastPayment      SubscriptionPayment
	PushOptIn        bool
	PushToken        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (s *Shop) IsActive(now time.Time) bool {
	return s.SubscriptionEndDate != nil && !s.SubscriptionEndDate.Before(now)
}

func (s *Shop) NotificationTarget() NotificationTarget {
	return NotificationTarget{
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		PushOptIn: s.PushOptIn,
		PushToken: s.PushToken,
	}
}

// ShopWithDistance is a discovery result. DistanceKm is nil for fallback results.
type ShopWithDistance struct {
	Shop       *Shop
	DistanceKm *float64
}

type ShopRepository interface {
	GetShopByID(ctx context.Context, id string) (*Shop, error)
	GetActiveShops(ctx context.Context, now time.Time) ([]*Shop, error)
	GetShopsExpiringBetween(ctx context.Context, from, to time.Time) ([]*Shop, error)
	UpdateShop(ctx context.Context, shop *Shop) error
	// SetGatewayAccountID records a payout account as soon as it exists.
	SetGatewayAccountID(ctx context.Context, shopID, accountID string) error
	// ApplySubscriptionPayment records shop.LastPayment and writes the shop in
	// one transaction. It returns ErrDuplicatePayment when the payment id was
	// already applied.
	ApplySubscriptionPayment(ctx context.Context, shop *Shop, purpose PaymentPurpose) error
}

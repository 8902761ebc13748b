package shopdto

import (
	"io"

	"github.com/drovo/drovo-service/internal/domain"
)

type NearbyInput struct {
	Latitude  *float64
	Longitude *float64
	RadiusKm  float64
}

type SetupInput struct {
	ShopID      string
	Plan        domain.PlanCode
	Proof       domain.PaymentProof
	Name        string
	Phone       string
	Address     domain.Address
	PAN         string
	BankDetails domain.BankDetails
	Image       io.Reader
}

type RenewInput struct {
	ShopID string
	Plan   domain.PlanCode
	Proof  domain.PaymentProof
}

type PreferencesInput struct {
	ShopID    string
	PushOptIn bool
	PushToken string
}

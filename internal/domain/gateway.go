package domain

import "context"

const CurrencyINR = "INR"

// Note keys written on gateway orders and checked again at verification.
const (
	NotePurpose = "purpose"
	NoteBuyerID = "buyer_id"
	NoteShopID  = "shop_id"
	NotePlan    = "plan"
	NoteBasket  = "basket"
)

type Transfer struct {
	Account  string
	Amount   int64
	Currency string
	Notes    map[string]string
}

type GatewayOrderRequest struct {
	AmountMinorUnits int64
	Currency         string
	Receipt          string
	Transfers        []Transfer
	Notes            map[string]string
}

type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
	// Notes stay server-side; the storefront never needs them.
	Notes map[string]string `json:"-"`
}

type SubAccountRequest struct {
	Email             string
	Phone             string
	LegalBusinessName string
	ContactName       string
	ReferenceID       string
	Address           Address
	PAN               string
}

type PaymentProof struct {
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
}

type PaymentGateway interface {
	CreateOrder(ctx context.Context, req GatewayOrderRequest) (*GatewayOrder, error)
	FetchOrder(ctx context.Context, orderID string) (*GatewayOrder, error)
	CreateSubAccount(ctx context.Context, req SubAccountRequest) (string, error)
	VerifySignature(proof PaymentProof) error
}

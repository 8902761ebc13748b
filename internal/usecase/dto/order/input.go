package orderdto

import "github.com/drovo/drovo-service/internal/domain"

type CheckoutItem struct {
	FoodID     string
	Multiplier int
}

// CheckoutInput describes a basket. Items empty means the buyer's stored
// cart for ShopID. ClientAmount is advisory only.
type CheckoutInput struct {
	BuyerID        string
	ShopID         string
	Items          []CheckoutItem
	DeliveryCharge float64
	ClientAmount   *float64
	Address        domain.DeliveryAddress
}

type VerifyPaymentInput struct {
	Proof    domain.PaymentProof
	Checkout CheckoutInput
}

type UpdateStatusInput struct {
	ShopID  string
	OrderID string
	Status  string
}

type ShopOrdersInput struct {
	ShopID string
	Page   int
	Limit  int
}

type FeedbackInput struct {
	ShopID  string
	Name    string
	Email   string
	Rating  int
	Message string
}

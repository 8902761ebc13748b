package request

import "github.com/drovo/drovo-service/internal/domain"

type PaymentProof struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

func (p PaymentProof) ToDomain() domain.PaymentProof {
	return domain.PaymentProof{
		GatewayOrderID:   p.RazorpayOrderID,
		GatewayPaymentID: p.RazorpayPaymentID,
		Signature:        p.RazorpaySignature,
	}
}

type CheckoutItem struct {
	FoodID     string `json:"foodId" binding:"required"`
	Multiplier int    `json:"multiplier" binding:"required,min=1"`
}

// Checkout is shared by the COD, create-order and verify endpoints.
// Items may be omitted to check out the stored cart for ShopID.
type Checkout struct {
	ShopID         string                 `json:"shopId" binding:"required"`
	Items          []CheckoutItem         `json:"items" binding:"omitempty,dive"`
	Amount         *float64               `json:"amount"`
	DeliveryCharge float64                `json:"deliveryCharge" binding:"gte=0"`
	Address        domain.DeliveryAddress `json:"address"`
}

type VerifyOrderRequest struct {
	PaymentProof
	Checkout
}

type UpdateStatusRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

type FeedbackRequest struct {
	ShopID  string `json:"shopId" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Message string `json:"message" binding:"required"`
}

type ShopOrdersQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

package response

import (
	"time"

	"github.com/drovo/drovo-service/internal/domain"
)

type PaymentDetails struct {
	RazorpayOrderID    string     `json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID  string     `json:"razorpay_payment_id,omitempty"`
	PaidAt             *time.Time `json:"paidAt,omitempty"`
	PlatformCommission int64      `json:"platformCommission"`
}

type Order struct {
	ID             string                 `json:"id"`
	UserID         string                 `json:"userId"`
	ShopID         string                 `json:"shopId"`
	Items          []domain.OrderItem     `json:"items"`
	Amount         float64                `json:"amount"`
	DeliveryCharge float64                `json:"deliveryCharge"`
	Address        domain.DeliveryAddress `json:"address"`
	Status         string                 `json:"status"`
	PaymentMethod  string                 `json:"paymentMethod"`
	PaymentStatus  string                 `json:"paymentStatus"`
	PaymentDetails PaymentDetails         `json:"paymentDetails"`
	CreatedAt      time.Time              `json:"date"`
}

type GatewayOrder struct {
	Order              *domain.GatewayOrder `json:"order"`
	Key                string               `json:"key"`
	Amount             float64              `json:"amount"`
	DeliveryCharge     float64              `json:"deliveryCharge"`
	PlatformCommission int64                `json:"platformCommission"`
	ShopShare          int64                `json:"shopShare"`
}

type PlacedOrder struct {
	Order     Order `json:"order"`
	Duplicate bool  `json:"duplicate,omitempty"`
}

type OrderWithShop struct {
	Order Order `json:"order"`
	Shop  Shop  `json:"shop"`
}

type ShopOrders struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

func FromOrder(o *domain.Order) Order {
	return Order{
		ID:             o.ID,
		UserID:         o.BuyerID,
		ShopID:         o.ShopID,
		Items:          o.Items,
		Amount:         o.Amount,
		DeliveryCharge: o.DeliveryCharge,
		Address:        o.Address,
		Status:         string(o.Status),
		PaymentMethod:  string(o.PaymentMethod),
		PaymentStatus:  string(o.PaymentStatus),
		PaymentDetails: PaymentDetails{
			RazorpayOrderID:    o.PaymentDetails.GatewayOrderID,
			RazorpayPaymentID:  o.PaymentDetails.GatewayPaymentID,
			PaidAt:             o.PaymentDetails.PaidAt,
			PlatformCommission: o.PaymentDetails.PlatformCommission,
		},
		CreatedAt: o.CreatedAt,
	}
}

func FromOrders(orders []*domain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}

package domain

import (
	"context"
	"time"
)

type OrderStatus string

const (
	StatusProcessing     OrderStatus = "Processing"
	StatusOutForDelivery OrderStatus = "OutForDelivery"
	StatusDelivered      OrderStatus = "Delivered"
)

var statusRank = map[OrderStatus]int{
	StatusProcessing:     0,
	StatusOutForDelivery: 1,
	StatusDelivered:      2,
}

func (s OrderStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CheckTransition allows forward moves and same-status no-ops.
func (s OrderStatus) CheckTransition(next OrderStatus) error {
	if !next.Valid() {
		return ErrInvalidStatus
	}
	if statusRank[next] < statusRank[s] {
		return ErrInvalidTransition
	}
	return nil
}

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "COD"
	PaymentOnline PaymentMethod = "Online"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
)

type OrderItem struct {
	FoodID     string  `json:"food_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Multiplier int     `json:"multiplier"`
	Quantity   string  `json:"quantity"`
}

type DeliveryAddress struct {
	Name      string   `json:"name"`
	Phone     string   `json:"phone"`
	Street    string   `json:"street"`
	Flat      string   `json:"flat,omitempty"`
	Floor     string   `json:"floor,omitempty"`
	Landmark  string   `json:"landmark,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type PaymentDetails struct {
	GatewayOrderID     string
	GatewayPaymentID   string
	PaidAt             *time.Time
	PlatformCommission int64
}

type Order struct {
	ID             string
	BuyerID        string
	ShopID         string
	Items          []OrderItem
	Amount         float64
	DeliveryCharge float64
	Address        DeliveryAddress
	Status         OrderStatus
	PaymentMethod  PaymentMethod
	PaymentStatus  PaymentStatus
	PaymentDetails PaymentDetails
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (o *Order) Total() float64 {
	return o.Amount + o.DeliveryCharge
}

type OrderRepository interface {
	// CreateOrder returns ErrDuplicatePayment when the gateway payment id is taken.
	CreateOrder(ctx context.Context, order *Order) error
	GetOrderByID(ctx context.Context, id string) (*Order, error)
	GetOrderByGatewayPaymentID(ctx context.Context, paymentID string) (*Order, error)
	GetOrdersByBuyerID(ctx context.Context, buyerID string) ([]*Order, error)
	GetOrdersByShopID(ctx context.Context, shopID string, page, limit int) ([]*Order, int64, error)
	UpdateOrderStatus(ctx context.Context, id string, status OrderStatus) error
}

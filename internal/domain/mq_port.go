package domain

import (
	"context"
	"time"
)

type OrderEventType string

const (
	EventOrderPlaced        OrderEventType = "order.placed"
	EventOrderStatusChanged OrderEventType = "order.status_changed"
)

type OrderEvent struct {
	Type               OrderEventType `json:"event"`
	OrderID            string         `json:"order_id"`
	ShopID             string         `json:"shop_id"`
	BuyerID            string         `json:"buyer_id"`
	Status             OrderStatus    `json:"status"`
	PaymentMethod      PaymentMethod  `json:"payment_method"`
	PaymentStatus      PaymentStatus  `json:"payment_status"`
	Amount             float64        `json:"amount"`
	DeliveryCharge     float64        `json:"delivery_charge"`
	PlatformCommission int64          `json:"platform_commission"`
	OccurredAt         time.Time      `json:"occurred_at"`
}

func NewOrderEvent(t OrderEventType, o *Order, at time.Time) OrderEvent {
	return OrderEvent{
		Type:               t,
		OrderID:            o.ID,
		ShopID:             o.ShopID,
		BuyerID:            o.BuyerID,
		Status:             o.Status,
		PaymentMethod:      o.PaymentMethod,
		PaymentStatus:      o.PaymentStatus,
		Amount:             o.Amount,
		DeliveryCharge:     o.DeliveryCharge,
		PlatformCommission: o.PaymentDetails.PlatformCommission,
		OccurredAt:         at,
	}
}

type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
}

type Message struct {
	Key   []byte
	Value []byte
}

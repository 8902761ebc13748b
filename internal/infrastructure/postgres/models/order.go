package models

import (
	"time"

	"github.com/drovo/drovo-service/internal/domain"
)

type OrderModel struct {
	ID                 string                 `gorm:"primaryKey;type:uuid"`
	BuyerID            string                 `gorm:"type:uuid;index:idx_orders_buyer"`
	ShopID             string                 `gorm:"type:uuid;index:idx_orders_shop_created"`
	Items              []domain.OrderItem     `gorm:"type:jsonb;serializer:json"`
	Amount             float64
	DeliveryCharge     float64
	Address            domain.DeliveryAddress `gorm:"type:jsonb;serializer:json"`
	Status             domain.OrderStatus     `gorm:"index:idx_orders_status"`
	PaymentMethod      domain.PaymentMethod
	PaymentStatus      domain.PaymentStatus
	GatewayOrderID     string
	GatewayPaymentID   *string `gorm:"uniqueIndex:idx_orders_gateway_payment"`
	PaidAt             *time.Time
	PlatformCommission int64
	CreatedAt          time.Time `gorm:"index:idx_orders_shop_created"`
	UpdatedAt          time.Time
}

func (OrderModel) TableName() string { return "orders" }

package mappers

import (
	"github.com/drovo/drovo-service/internal/domain"
	"github.com/drovo/drovo-service/internal/infrastructure/postgres/models"
)

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	order := &domain.Order{
		ID:             model.ID,
		BuyerID:        model.BuyerID,
		ShopID:         model.ShopID,
		Items:          model.Items,
		Amount:         model.Amount,
		DeliveryCharge: model.DeliveryCharge,
		Address:        model.Address,
		Status:         model.Status,
		PaymentMethod:  model.PaymentMethod,
		PaymentStatus:  model.PaymentStatus,
		PaymentDetails: domain.PaymentDetails{
			GatewayOrderID:     model.GatewayOrderID,
			PaidAt:             model.PaidAt,
			PlatformCommission: model.PlatformCommission,
		},
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	if model.GatewayPaymentID != nil {
		order.PaymentDetails.GatewayPaymentID = *model.GatewayPaymentID
	}
	return order
}

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	model := &models.OrderModel{
		ID:                 order.ID,
		BuyerID:            order.BuyerID,
		ShopID:             order.ShopID,
		Items:              order.Items,
		Amount:             order.Amount,
		DeliveryCharge:     order.DeliveryCharge,
		Address:            order.Address,
		Status:             order.Status,
		PaymentMethod:      order.PaymentMethod,
		PaymentStatus:      order.PaymentStatus,
		GatewayOrderID:     order.PaymentDetails.GatewayOrderID,
		PaidAt:             order.PaymentDetails.PaidAt,
		PlatformCommission: order.PaymentDetails.PlatformCommission,
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
	}
	// COD orders keep a NULL payment id so the unique index ignores them.
	if id := order.PaymentDetails.GatewayPaymentID; id != "" {
		model.GatewayPaymentID = &id
	}
	return model
}

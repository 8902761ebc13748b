package mappers

import (
	"github.com/drovo/drovo-service/internal/domain"
	"github.com/drovo/drovo-service/internal/infrastructure/postgres/models"
)

func ToDomainShop(model *models.ShopModel) *domain.Shop {
	return &domain.Shop{
		ID:    model.ID,
		Name:  model.Name,
		Email: model.Email,
		Phone: model.Phone,
		Address: domain.Address{
			Street:     model.Street,
			Street2:    model.Street2,
			City:       model.City,
			State:      model.State,
			PostalCode: model.PostalCode,
			Latitude:   model.Latitude,
			Longitude:  model.Longitude,
		},
		ImageURL:            model.ImageURL,
		Subscription:        domain.PlanCode(model.Subscription),
		SubscriptionEndDate: model.SubscriptionEndDate,
		IsSetupComplete:     model.IsSetupComplete,
		GatewayAccountID:    model.GatewayAccountID,
		BankDetails:         model.BankDetails,
		LastPayment: domain.SubscriptionPayment{
			GatewayOrderID:   model.GatewayOrderID,
			GatewayPaymentID: model.GatewayPaymentID,
			PaidAt:           model.PaidAt,
		},
		PushOptIn: model.PushOptIn,
		PushToken: model.PushToken,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func ToGORMShop(shop *domain.Shop) *models.ShopModel {
	return &models.ShopModel{
		ID:                  shop.ID,
		Name:                shop.Name,
		Email:               shop.Email,
		Phone:               shop.Phone,
		Street:              shop.Address.Street,
		Street2:             shop.Address.Street2,
		City:                shop.Address.City,
		State:               shop.Address.State,
		PostalCode:          shop.Address.PostalCode,
		Latitude:            shop.Address.Latitude,
		Longitude:           shop.Address.Longitude,
		ImageURL:            shop.ImageURL,
		Subscription:        string(shop.Subscription),
		SubscriptionEndDate: shop.SubscriptionEndDate,
		IsSetupComplete:     shop.IsSetupComplete,
		GatewayAccountID:    shop.GatewayAccountID,
		BankDetails:         shop.BankDetails,
		GatewayOrderID:      shop.LastPayment.GatewayOrderID,
		GatewayPaymentID:    shop.LastPayment.GatewayPaymentID,
		PaidAt:              shop.LastPayment.PaidAt,
		PushOptIn:           shop.PushOptIn,
		PushToken:           shop.PushToken,
		CreatedAt:           shop.CreatedAt,
		UpdatedAt:           shop.UpdatedAt,
	}
}

package shopdto

import "github.com/drovo/drovo-service/internal/domain"

type ShopCatalog struct {
	Shop  *domain.Shop
	Foods []*domain.FoodItem
}

type DeliveryQuote struct {
	DistanceKm     float64
	DeliveryCharge float64
}

type SubscriptionOrderOutput struct {
	GatewayOrder *domain.GatewayOrder
	KeyID        string
	Plan         domain.PlanCode
	DurationDays int
}

package orderdto

import "github.com/drovo/drovo-service/internal/domain"

type GatewayOrderOutput struct {
	GatewayOrder   *domain.GatewayOrder
	KeyID          string
	Amount         float64
	DeliveryCharge float64
	Split          domain.Split
}

type PlaceOrderOutput struct {
	Order *domain.Order
	// Duplicate is set when the payment was already recorded.
	Duplicate bool
}

type OrderWithShop struct {
	Order *domain.Order
	Shop  *domain.Shop
}

type Pagination struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

type ShopOrdersOutput struct {
	Orders     []*domain.Order
	Pagination Pagination
}

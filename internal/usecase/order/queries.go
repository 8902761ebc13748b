package order

import (
	"context"
	"fmt"

	"github.com/drovo/drovo-service/internal/domain"
	orderdto "github.com/drovo/drovo-service/internal/usecase/dto/order"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 100
)

func (uc *DefaultOrderUsecase) GetBuyerOrders(ctx context.Context, buyerID string) ([]*domain.Order, error) {
	if buyerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return uc.OrderRepo.GetOrdersByBuyerID(ctx, buyerID)
}

func (uc *DefaultOrderUsecase) GetShopOrders(ctx context.Context, input *orderdto.ShopOrdersInput) (*orderdto.ShopOrdersOutput, error) {
	page, limit := input.Page, input.Limit
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = defaultPageLimit
	}
	if page < 1 {
		return nil, domain.NewValidationError("page must be at least 1")
	}
	if limit < 1 || limit > maxPageLimit {
		return nil, domain.NewValidationError(fmt.Sprintf("limit must be between 1 and %d", maxPageLimit))
	}

	orders, total, err := uc.OrderRepo.GetOrdersByShopID(ctx, input.ShopID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list shop orders: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &orderdto.ShopOrdersOutput{
		Orders: orders,
		Pagination: orderdto.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// GetOrderByID returns the order with its shop. Buyers only see their own orders.
func (uc *DefaultOrderUsecase) GetOrderByID(ctx context.Context, buyerID, orderID string) (*orderdto.OrderWithShop, error) {
	order, err := uc.OrderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	if buyerID != "" && order.BuyerID != buyerID {
		return nil, domain.ErrNotFound
	}
	shop, err := uc.ShopRepo.GetShopByID(ctx, order.ShopID)
	if err != nil {
		return nil, fmt.Errorf("load shop: %w", err)
	}
	return &orderdto.OrderWithShop{Order: order, Shop: shop}, nil
}

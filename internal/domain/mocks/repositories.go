// Package mocks holds testify mocks of the domain ports.
package mocks

import (
	"context"
	"time"

	"github.com/drovo/drovo-service/internal/domain"
	"github.com/stretchr/testify/mock"
)

type ShopRepository struct {
	mock.Mock
}

func (m *ShopRepository) GetShopByID(ctx context.Context, id string) (*domain.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shop), args.Error(1)
}

func (m *ShopRepository) GetActiveShops(ctx context.Context, now time.Time) ([]*domain.Shop, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Shop), args.Error(1)
}

func (m *ShopRepository) GetShopsExpiringBetween(ctx context.Context, from, to time.Time) ([]*domain.Shop, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Shop), args.Error(1)
}

func (m *ShopRepository) UpdateShop(ctx context.Context, shop *domain.Shop) error {
	return m.Called(ctx, shop).Error(0)
}

func (m *ShopRepository) SetGatewayAccountID(ctx context.Context, shopID, accountID string) error {
	return m.Called(ctx, shopID, accountID).Error(0)
}

func (m *ShopRepository) ApplySubscriptionPayment(ctx context.Context, shop *domain.Shop, purpose domain.PaymentPurpose) error {
	return m.Called(ctx, shop, purpose).Error(0)
}

type FoodRepository struct {
	mock.Mock
}

func (m *FoodRepository) CreateFood(ctx context.Context, food *domain.FoodItem) error {
	return m.Called(ctx, food).Error(0)
}

func (m *FoodRepository) UpdateFood(ctx context.Context, food *domain.FoodItem) error {
	return m.Called(ctx, food).Error(0)
}

func (m *FoodRepository) DeleteFood(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *FoodRepository) GetFoodByID(ctx context.Context, id string) (*domain.FoodItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FoodItem), args.Error(1)
}

func (m *FoodRepository) GetFoodsByShopID(ctx context.Context, shopID string) ([]*domain.FoodItem, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FoodItem), args.Error(1)
}

func (m *FoodRepository) GetFoodsByIDs(ctx context.Context, ids []string) ([]*domain.FoodItem, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FoodItem), args.Error(1)
}

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *OrderRepository) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *OrderRepository) GetOrderByGatewayPaymentID(ctx context.Context, paymentID string) (*domain.Order, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *OrderRepository) GetOrdersByBuyerID(ctx context.Context, buyerID string) ([]*domain.Order, error) {
	args := m.Called(ctx, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Order), args.Error(1)
}

func (m *OrderRepository) GetOrdersByShopID(ctx context.Context, shopID string, page, limit int) ([]*domain.Order, int64, error) {
	args := m.Called(ctx, shopID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Order), args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepository) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) GetCart(ctx context.Context, userID string) (domain.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Cart), args.Error(1)
}

// UpdateCart applies change to the cart given in Return and hands back the result.
func (m *UserRepository) UpdateCart(ctx context.Context, userID string, change func(domain.Cart) bool) (domain.Cart, error) {
	args := m.Called(ctx, userID)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	cart := domain.Cart{}
	if stored, ok := args.Get(0).(domain.Cart); ok && stored != nil {
		cart = stored
	}
	change(cart)
	return cart, nil
}

func (m *UserRepository) ClearCart(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

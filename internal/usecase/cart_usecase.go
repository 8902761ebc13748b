package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/drovo/drovo-service/internal/domain"
)

type CartUsecase interface {
	AddToCart(ctx context.Context, buyerID, shopID, foodID string) (domain.Cart, error)
	RemoveFromCart(ctx context.Context, buyerID, shopID, foodID string) (domain.Cart, error)
	GetCart(ctx context.Context, buyerID string) (domain.Cart, error)
}

type DefaultCartUsecase struct {
	UserRepo domain.UserRepository
	FoodRepo domain.FoodRepository
}

func NewDefaultCartUsecase(userRepo domain.UserRepository, foodRepo domain.FoodRepository) *DefaultCartUsecase {
	return &DefaultCartUsecase{UserRepo: userRepo, FoodRepo: foodRepo}
}

func (uc *DefaultCartUsecase) AddToCart(ctx context.Context, buyerID, shopID, foodID string) (domain.Cart, error) {
	if err := checkCartArgs(buyerID, shopID, foodID); err != nil {
		return nil, err
	}
	food, err := uc.FoodRepo.GetFoodByID(ctx, foodID)
	if err != nil {
		return nil, fmt.Errorf("load food: %w", err)
	}
	if food.ShopID != shopID {
		return nil, domain.NewValidationError("item is not sold by this shop")
	}

	cart, err := uc.UserRepo.UpdateCart(ctx, buyerID, func(cart domain.Cart) bool {
		if cart[shopID] == nil {
			cart[shopID] = make(map[string]int)
		}
		cart[shopID][foodID]++
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

// RemoveFromCart decrements the multiplier and drops entries that reach zero.
func (uc *DefaultCartUsecase) RemoveFromCart(ctx context.Context, buyerID, shopID, foodID string) (domain.Cart, error) {
	if err := checkCartArgs(buyerID, shopID, foodID); err != nil {
		return nil, err
	}
	cart, err := uc.UserRepo.UpdateCart(ctx, buyerID, func(cart domain.Cart) bool {
		items, ok := cart[shopID]
		if !ok || items[foodID] == 0 {
			return false
		}
		items[foodID]--
		if items[foodID] <= 0 {
			delete(items, foodID)
		}
		if len(items) == 0 {
			delete(cart, shopID)
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

func (uc *DefaultCartUsecase) GetCart(ctx context.Context, buyerID string) (domain.Cart, error) {
	if buyerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return uc.load(ctx, buyerID)
}

func (uc *DefaultCartUsecase) load(ctx context.Context, buyerID string) (domain.Cart, error) {
	cart, err := uc.UserRepo.GetCart(ctx, buyerID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart == nil {
		cart = domain.Cart{}
	}
	return cart, nil
}

func checkCartArgs(buyerID, shopID, foodID string) error {
	if buyerID == "" {
		return domain.ErrUnauthenticated
	}
	if shopID == "" || foodID == "" {
		return domain.NewValidationError("shopId and itemId are required")
	}
	return nil
}

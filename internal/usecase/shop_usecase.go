package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/drovo/drovo-service/internal/domain"
	"github.com/drovo/drovo-service/internal/geo"
	shopdto "github.com/drovo/drovo-service/internal/usecase/dto/shop"
	"go.uber.org/zap"
)

type ShopUsecase interface {
	FindNearby(ctx context.Context, input *shopdto.NearbyInput) ([]domain.ShopWithDistance, error)
	GetShop(ctx context.Context, shopID string) (*domain.Shop, error)
	GetShopWithCatalog(ctx context.Context, shopID string) (*shopdto.ShopCatalog, error)
	DeliveryQuote(ctx context.Context, shopID string, latitude, longitude float64) (*shopdto.DeliveryQuote, error)
	UpdatePreferences(ctx context.Context, input *shopdto.PreferencesInput) (*domain.Shop, error)
}

type DefaultShopUsecase struct {
	ShopRepo domain.ShopRepository
	FoodRepo domain.FoodRepository
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewDefaultShopUsecase(shopRepo domain.ShopRepository, foodRepo domain.FoodRepository, logger *zap.Logger) *DefaultShopUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultShopUsecase{
		ShopRepo: shopRepo,
		FoodRepo: foodRepo,
		Logger:   logger,
		Now:      func() time.Time { return time.Now().UTC() },
	}
}

func (uc *DefaultShopUsecase) FindNearby(ctx context.Context, input *shopdto.NearbyInput) ([]domain.ShopWithDistance, error) {
	if input.RadiusKm < 0 {
		return nil, domain.NewValidationError("radius must not be negative")
	}
	if (input.Latitude == nil) != (input.Longitude == nil) {
		return nil, domain.NewValidationError("latitude and longitude must be sent together")
	}

	var origin *geo.Point
	if input.Latitude != nil {
		p := geo.Point{Lat: *input.Latitude, Lon: *input.Longitude}
		if !p.Valid() {
			return nil, domain.NewValidationError("latitude or longitude out of range")
		}
		origin = &p
	}

	now := uc.Now()
	shops, err := uc.ShopRepo.GetActiveShops(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("load active shops: %w", err)
	}
	return geo.FindNearby(origin, input.RadiusKm, shops, now), nil
}

func (uc *DefaultShopUsecase) GetShop(ctx context.Context, shopID string) (*domain.Shop, error) {
	if shopID == "" {
		return nil, domain.NewValidationError("shopId is required")
	}
	return uc.ShopRepo.GetShopByID(ctx, shopID)
}

func (uc *DefaultShopUsecase) GetShopWithCatalog(ctx context.Context, shopID string) (*shopdto.ShopCatalog, error) {
	shop, err := uc.GetShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	foods, err := uc.FoodRepo.GetFoodsByShopID(ctx, shop.ID)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return &shopdto.ShopCatalog{Shop: shop, Foods: foods}, nil
}

func (uc *DefaultShopUsecase) DeliveryQuote(ctx context.Context, shopID string, latitude, longitude float64) (*shopdto.DeliveryQuote, error) {
	buyer := geo.Point{Lat: latitude, Lon: longitude}
	if !buyer.Valid() {
		return nil, domain.NewValidationError("latitude or longitude out of range")
	}
	shop, err := uc.GetShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	origin, ok := geo.ShopPoint(shop)
	if !ok {
		return nil, domain.NewValidationError("shop has no location")
	}

	distance := geo.Distance(origin, buyer)
	return &shopdto.DeliveryQuote{
		DistanceKm:     distance,
		DeliveryCharge: geo.DeliveryCharge(distance),
	}, nil
}

// UpdatePreferences stores the shop's push opt-in and device token.
func (uc *DefaultShopUsecase) UpdatePreferences(ctx context.Context, input *shopdto.PreferencesInput) (*domain.Shop, error) {
	if input.PushOptIn && input.PushToken == "" {
		return nil, domain.NewValidationError("push token is required to opt in")
	}
	shop, err := uc.GetShop(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}
	shop.PushOptIn = input.PushOptIn
	shop.PushToken = input.PushToken
	shop.UpdatedAt = uc.Now()
	if err := uc.ShopRepo.UpdateShop(ctx, shop); err != nil {
		return nil, fmt.Errorf("update shop: %w", err)
	}
	uc.Logger.Info("shop preferences updated",
		zap.String("shop_id", shop.ID),
		zap.Bool("push_opt_in", shop.PushOptIn),
	)
	return shop, nil
}

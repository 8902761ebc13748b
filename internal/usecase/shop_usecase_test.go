package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/drovo/drovo-service/internal/domain"
	"github.com/drovo/drovo-service/internal/domain/mocks"
	shopdto "github.com/drovo/drovo-service/internal/usecase/dto/shop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func shopAt(id string, lat, lon float64) *domain.Shop {
	end := testNow.AddDate(0, 0, 5)
	return &domain.Shop{
		ID:                  id,
		Name:                "Shop " + id,
		Email:               id + "@example.com",
		Address:             domain.Address{Street: "MG Road", Latitude: ptr(lat), Longitude: ptr(lon)},
		SubscriptionEndDate: &end,
	}
}

func newShopUsecase() (*DefaultShopUsecase, *mocks.ShopRepository, *mocks.FoodRepository) {
	shops := &mocks.ShopRepository{}
	foods := &mocks.FoodRepository{}
	uc := NewDefaultShopUsecase(shops, foods, nil)
	uc.Now = func() time.Time { return testNow }
	return uc, shops, foods
}

func TestFindNearbySortsByDistance(t *testing.T) {
	uc, shops, _ := newShopUsecase()
	shops.On("GetActiveShops", mock.Anything, testNow).Return([]*domain.Shop{
		shopAt("far", 12.9716, 77.6646),
		shopAt("near", 12.9720, 77.5950),
		shopAt("out", 13.5, 78.5),
	}, nil)

	got, err := uc.FindNearby(context.Background(), &shopdto.NearbyInput{
		Latitude:  ptr(12.9716),
		Longitude: ptr(77.5946),
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "near", got[0].Shop.ID)
	assert.Equal(t, "far", got[1].Shop.ID)
	assert.Less(t, *got[0].DistanceKm, *got[1].DistanceKm)
}

func TestFindNearbyValidatesInput(t *testing.T) {
	uc, shops, _ := newShopUsecase()

	_, err := uc.FindNearby(context.Background(), &shopdto.NearbyInput{Latitude: ptr(12.0)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.FindNearby(context.Background(), &shopdto.NearbyInput{Latitude: ptr(120.0), Longitude: ptr(77.0)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.FindNearby(context.Background(), &shopdto.NearbyInput{RadiusKm: -1})
	assert.ErrorIs(t, err, domain.ErrValidation)

	shops.AssertNotCalled(t, "GetActiveShops", mock.Anything, mock.Anything)
}

func TestDeliveryQuote(t *testing.T) {
	uc, shops, _ := newShopUsecase()
	shops.On("GetShopByID", mock.Anything, "s1").Return(shopAt("s1", 12.9716, 77.5946), nil)

	quote, err := uc.DeliveryQuote(context.Background(), "s1", 12.9716, 77.5946)
	require.NoError(t, err)
	assert.InDelta(t, 0, quote.DistanceKm, 1e-9)
	assert.Equal(t, 9.0, quote.DeliveryCharge)
}

func TestGetShopWithCatalog(t *testing.T) {
	uc, shops, foods := newShopUsecase()
	shops.On("GetShopByID", mock.Anything, "s1").Return(shopAt("s1", 12.9, 77.5), nil)
	foods.On("GetFoodsByShopID", mock.Anything, "s1").Return([]*domain.FoodItem{{ID: "f1", ShopID: "s1"}}, nil)

	got, err := uc.GetShopWithCatalog(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", got.Shop.ID)
	assert.Len(t, got.Foods, 1)
}

func TestUpdatePreferences(t *testing.T) {
	uc, shops, _ := newShopUsecase()

	_, err := uc.UpdatePreferences(context.Background(), &shopdto.PreferencesInput{ShopID: "s1", PushOptIn: true})
	assert.ErrorIs(t, err, domain.ErrValidation)

	shops.On("GetShopByID", mock.Anything, "s1").Return(shopAt("s1", 12.9, 77.5), nil)
	shops.On("UpdateShop", mock.Anything, mock.MatchedBy(func(s *domain.Shop) bool {
		return s.PushOptIn && s.PushToken == "device-token"
	})).Return(nil)

	got, err := uc.UpdatePreferences(context.Background(), &shopdto.PreferencesInput{
		ShopID: "s1", PushOptIn: true, PushToken: "device-token",
	})
	require.NoError(t, err)
	assert.True(t, got.PushOptIn)
	shops.AssertExpectations(t)
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/drovo/drovo-service/internal/domain"
	"github.com/drovo/drovo-service/internal/domain/mocks"
	fooddto "github.com/drovo/drovo-service/internal/usecase/dto/food"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	oldImageURL = "https://res.cloudinary.com/demo/image/upload/v1/drovo/food/old.jpg"
	newImageURL = "https://res.cloudinary.com/demo/image/upload/v2/drovo/food/new.jpg"
)

func newFoodUsecase() (*DefaultFoodUsecase, *mocks.FoodRepository, *mocks.ImageStore) {
	foods := &mocks.FoodRepository{}
	images := &mocks.ImageStore{}
	uc := NewDefaultFoodUsecase(foods, images, nil, nil)
	uc.Now = func() time.Time { return testNow }
	uc.NewID = func() string { return "food-1" }
	return uc, foods, images
}

func storedFood() *domain.FoodItem {
	return &domain.FoodItem{
		ID: "food-1", ShopID: "s1", Name: "Curd", Price: 30,
		Quantity: 400, Unit: domain.UnitGrams, ImageURL: oldImageURL,
	}
}

func TestAddFood(t *testing.T) {
	uc, foods, images := newFoodUsecase()
	images.On("Upload", mock.Anything, mock.Anything, domain.FolderFood).Return(newImageURL, nil)
	foods.On("CreateFood", mock.Anything, mock.MatchedBy(func(f *domain.FoodItem) bool {
		return f.ID == "food-1" && f.ImageURL == newImageURL && f.Name == "Curd"
	})).Return(nil)

	food, err := uc.AddFood(context.Background(), &fooddto.CreateFoodInput{
		ShopID: "s1", Name: " Curd ", Price: 30, Quantity: 400, Unit: domain.UnitGrams,
		Image: strings.NewReader("jpeg"),
	})
	require.NoError(t, err)
	assert.Equal(t, newImageURL, food.ImageURL)
	foods.AssertExpectations(t)
}

func TestAddFoodValidation(t *testing.T) {
	tests := []struct {
		name  string
		input fooddto.CreateFoodInput
	}{
		{"missing image", fooddto.CreateFoodInput{ShopID: "s1", Name: "Curd", Price: 30, Quantity: 1, Unit: domain.UnitKg}},
		{"zero price", fooddto.CreateFoodInput{ShopID: "s1", Name: "Curd", Quantity: 1, Unit: domain.UnitKg, Image: strings.NewReader("x")}},
		{"zero quantity", fooddto.CreateFoodInput{ShopID: "s1", Name: "Curd", Price: 30, Unit: domain.UnitKg, Image: strings.NewReader("x")}},
		{"bad unit", fooddto.CreateFoodInput{ShopID: "s1", Name: "Curd", Price: 30, Quantity: 1, Unit: "bucket", Image: strings.NewReader("x")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, images := newFoodUsecase()
			_, err := uc.AddFood(context.Background(), &tt.input)
			assert.ErrorIs(t, err, domain.ErrValidation)
			images.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAddFoodFailsWhenUploadFails(t *testing.T) {
	uc, foods, images := newFoodUsecase()
	images.On("Upload", mock.Anything, mock.Anything, domain.FolderFood).Return("", domain.ErrImageStore)

	_, err := uc.AddFood(context.Background(), &fooddto.CreateFoodInput{
		ShopID: "s1", Name: "Curd", Price: 30, Quantity: 400, Unit: domain.UnitGrams,
		Image: strings.NewReader("jpeg"),
	})
	assert.ErrorIs(t, err, domain.ErrImageStore)
	foods.AssertNotCalled(t, "CreateFood", mock.Anything, mock.Anything)
}

func TestEditFoodReplacesImage(t *testing.T) {
	uc, foods, images := newFoodUsecase()
	foods.On("GetFoodByID", mock.Anything, "food-1").Return(storedFood(), nil)
	images.On("Upload", mock.Anything, mock.Anything, domain.FolderFood).Return(newImageURL, nil)
	foods.On("UpdateFood", mock.Anything, mock.MatchedBy(func(f *domain.FoodItem) bool {
		return f.Price == 35 && f.Name == "Curd" && f.ImageURL == newImageURL
	})).Return(nil)
	images.On("Delete", mock.Anything, oldImageURL).Return(errors.New("cdn timeout"))

	food, err := uc.EditFood(context.Background(), &fooddto.UpdateFoodInput{
		ShopID: "s1", FoodID: "food-1", Price: ptr(35.0), Name: ptr(""),
		Image: strings.NewReader("jpeg"),
	})
	require.NoError(t, err)
	assert.Equal(t, 35.0, food.Price)
	images.AssertExpectations(t)
	foods.AssertExpectations(t)
}

func TestEditFoodHidesOtherShopsItems(t *testing.T) {
	uc, foods, _ := newFoodUsecase()
	foods.On("GetFoodByID", mock.Anything, "food-1").Return(storedFood(), nil)

	_, err := uc.EditFood(context.Background(), &fooddto.UpdateFoodInput{ShopID: "s2", FoodID: "food-1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	foods.AssertNotCalled(t, "UpdateFood", mock.Anything, mock.Anything)
}

func TestRemoveFoodDeletesImageThenRecord(t *testing.T) {
	uc, foods, images := newFoodUsecase()
	foods.On("GetFoodByID", mock.Anything, "food-1").Return(storedFood(), nil)
	images.On("Delete", mock.Anything, oldImageURL).Return(nil)
	foods.On("DeleteFood", mock.Anything, "food-1").Return(nil)

	require.NoError(t, uc.RemoveFood(context.Background(), "s1", "food-1"))
	images.AssertExpectations(t)
	foods.AssertExpectations(t)
}

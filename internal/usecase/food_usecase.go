package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/drovo/drovo-service/internal/domain"
	fooddto "github.com/drovo/drovo-service/internal/usecase/dto/food"
	"github.com/drovo/drovo-service/internal/usecase/external"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FoodUsecase interface {
	AddFood(ctx context.Context, input *fooddto.CreateFoodInput) (*domain.FoodItem, error)
	EditFood(ctx context.Context, input *fooddto.UpdateFoodInput) (*domain.FoodItem, error)
	RemoveFood(ctx context.Context, shopID, foodID string) error
	ListFood(ctx context.Context, shopID string) ([]*domain.FoodItem, error)
	GetFood(ctx context.Context, foodID string) (*domain.FoodItem, error)
}

type DefaultFoodUsecase struct {
	FoodRepo domain.FoodRepository
	Images   domain.ImageStore
	Caller   *external.Caller
	Logger   *zap.Logger
	Now      func() time.Time
	NewID    func() string
}

func NewDefaultFoodUsecase(foodRepo domain.FoodRepository, images domain.ImageStore, caller *external.Caller, logger *zap.Logger) *DefaultFoodUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if caller == nil {
		caller = external.NewCaller(logger, nil)
	}
	return &DefaultFoodUsecase{
		FoodRepo: foodRepo,
		Images:   images,
		Caller:   caller,
		Logger:   logger,
		Now:      func() time.Time { return time.Now().UTC() },
		NewID:    func() string { return uuid.New().String() },
	}
}

func (uc *DefaultFoodUsecase) AddFood(ctx context.Context, input *fooddto.CreateFoodInput) (*domain.FoodItem, error) {
	if input.ShopID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if input.Image == nil {
		return nil, domain.NewValidationError("image is required")
	}
	now := uc.Now()
	food := &domain.FoodItem{
		ID:          uc.NewID(),
		ShopID:      input.ShopID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Quantity:    input.Quantity,
		Unit:        input.Unit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validateFood(food); err != nil {
		return nil, err
	}

	url, err := uc.upload(ctx, input.Image)
	if err != nil {
		return nil, err
	}
	food.ImageURL = url

	if err := uc.FoodRepo.CreateFood(ctx, food); err != nil {
		uc.dropImage(ctx, url)
		return nil, fmt.Errorf("create food: %w", err)
	}
	uc.Logger.Info("food added", zap.String("shop_id", food.ShopID), zap.String("food_id", food.ID))
	return food, nil
}

// EditFood applies the non-empty fields of the patch. A new image replaces
// the old one, which is deleted after the record is saved.
func (uc *DefaultFoodUsecase) EditFood(ctx context.Context, input *fooddto.UpdateFoodInput) (*domain.FoodItem, error) {
	food, err := uc.owned(ctx, input.ShopID, input.FoodID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		food.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil && *input.Description != "" {
		food.Description = *input.Description
	}
	if input.Price != nil && *input.Price != 0 {
		food.Price = *input.Price
	}
	if input.Category != nil && *input.Category != "" {
		food.Category = *input.Category
	}
	if input.Quantity != nil && *input.Quantity != 0 {
		food.Quantity = *input.Quantity
	}
	if input.Unit != nil && *input.Unit != "" {
		food.Unit = *input.Unit
	}
	if err := validateFood(food); err != nil {
		return nil, err
	}

	oldImage := ""
	if input.Image != nil {
		url, err := uc.upload(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		oldImage, food.ImageURL = food.ImageURL, url
	}
	food.UpdatedAt = uc.Now()

	if err := uc.FoodRepo.UpdateFood(ctx, food); err != nil {
		if oldImage != "" {
			uc.dropImage(ctx, food.ImageURL)
		}
		return nil, fmt.Errorf("update food: %w", err)
	}
	if oldImage != "" {
		uc.dropImage(ctx, oldImage)
	}
	return food, nil
}

func (uc *DefaultFoodUsecase) RemoveFood(ctx context.Context, shopID, foodID string) error {
	food, err := uc.owned(ctx, shopID, foodID)
	if err != nil {
		return err
	}
	if food.ImageURL != "" {
		uc.dropImage(ctx, food.ImageURL)
	}
	if err := uc.FoodRepo.DeleteFood(ctx, food.ID); err != nil {
		return fmt.Errorf("delete food: %w", err)
	}
	uc.Logger.Info("food removed", zap.String("shop_id", shopID), zap.String("food_id", foodID))
	return nil
}

func (uc *DefaultFoodUsecase) ListFood(ctx context.Context, shopID string) ([]*domain.FoodItem, error) {
	if shopID == "" {
		return nil, domain.NewValidationError("shopId is required")
	}
	return uc.FoodRepo.GetFoodsByShopID(ctx, shopID)
}

func (uc *DefaultFoodUsecase) GetFood(ctx context.Context, foodID string) (*domain.FoodItem, error) {
	if foodID == "" {
		return nil, domain.NewValidationError("food id is required")
	}
	return uc.FoodRepo.GetFoodByID(ctx, foodID)
}

// owned loads a food item and hides items belonging to other shops.
func (uc *DefaultFoodUsecase) owned(ctx context.Context, shopID, foodID string) (*domain.FoodItem, error) {
	if shopID == "" {
		return nil, domain.ErrUnauthenticated
	}
	food, err := uc.GetFood(ctx, foodID)
	if err != nil {
		return nil, err
	}
	if food.ShopID != shopID {
		return nil, domain.ErrNotFound
	}
	return food, nil
}

func (uc *DefaultFoodUsecase) upload(ctx context.Context, image io.Reader) (string, error) {
	var url string
	err := uc.Caller.Do(ctx, external.LoadBearing, "images.upload", func(ctx context.Context) error {
		var err error
		url, err = uc.Images.Upload(ctx, image, domain.FolderFood)
		return err
	})
	return url, err
}

func (uc *DefaultFoodUsecase) dropImage(ctx context.Context, url string) {
	_ = uc.Caller.Do(ctx, external.BestEffort, "images.delete", func(ctx context.Context) error {
		return uc.Images.Delete(ctx, url)
	})
}

func validateFood(f *domain.FoodItem) error {
	switch {
	case f.Name == "":
		return domain.NewValidationError("name is required")
	case f.Price <= 0:
		return domain.NewValidationError("price must be greater than zero")
	case f.Quantity <= 0:
		return domain.NewValidationError("quantity must be greater than zero")
	case !f.Unit.Valid():
		return domain.NewValidationError(fmt.Sprintf("unknown unit %q", f.Unit))
	}
	return nil
}

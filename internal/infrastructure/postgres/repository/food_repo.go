package repository

import (
	"context"

	"github.com/drovo/drovo-service/internal/domain"
	"github.com/drovo/drovo-service/internal/infrastructure/postgres/mappers"
	"github.com/drovo/drovo-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultFoodRepository struct {
	DB *gorm.DB
}

func NewDefaultFoodRepository(db *gorm.DB) *DefaultFoodRepository {
	return &DefaultFoodRepository{DB: db}
}

func (r *DefaultFoodRepository) CreateFood(ctx context.Context, food *domain.FoodItem) error {
	return r.DB.WithContext(ctx).Create(mappers.ToGORMFood(food)).Error
}

func (r *DefaultFoodRepository) UpdateFood(ctx context.Context, food *domain.FoodItem) error {
	model := mappers.ToGORMFood(food)
	result := r.DB.WithContext(ctx).Model(&models.FoodModel{ID: food.ID}).Select("*").Omit("id", "shop_id", "created_at").Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DefaultFoodRepository) DeleteFood(ctx context.Context, id string) error {
	result := r.DB.WithContext(ctx).Delete(&models.FoodModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DefaultFoodRepository) GetFoodByID(ctx context.Context, id string) (*domain.FoodItem, error) {
	var food models.FoodModel
	if err := r.DB.WithContext(ctx).First(&food, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return mappers.ToDomainFood(&food), nil
}

func (r *DefaultFoodRepository) GetFoodsByShopID(ctx context.Context, shopID string) ([]*domain.FoodItem, error) {
	var foodModels []models.FoodModel
	if err := r.DB.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("created_at DESC").
		Find(&foodModels).Error; err != nil {
		return nil, err
	}
	return toDomainFoods(foodModels), nil
}

func (r *DefaultFoodRepository) GetFoodsByIDs(ctx context.Context, ids []string) ([]*domain.FoodItem, error) {
	if len(ids) == 0 {
		return []*domain.FoodItem{}, nil
	}
	var foodModels []models.FoodModel
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&foodModels).Error; err != nil {
		return nil, err
	}
	return toDomainFoods(foodModels), nil
}

func toDomainFoods(foodModels []models.FoodModel) []*domain.FoodItem {
	foods := make([]*domain.FoodItem, 0, len(foodModels))
	for i := range foodModels {
		foods = append(foods, mappers.ToDomainFood(&foodModels[i]))
	}
	return foods
}

package mappers

import (
	"github.com/drovo/drovo-service/internal/domain"
	"github.com/drovo/drovo-service/internal/infrastructure/postgres/models"
)

func ToDomainFood(model *models.FoodModel) *domain.FoodItem {
	return &domain.FoodItem{
		ID:          model.ID,
		ShopID:      model.ShopID,
		Name:        model.Name,
		Description: model.Description,
		Price:       model.Price,
		Category:    model.Category,
		Quantity:    model.Quantity,
		Unit:        domain.Unit(model.Unit),
		ImageURL:    model.ImageURL,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func ToGORMFood(food *domain.FoodItem) *models.FoodModel {
	return &models.FoodModel{
		ID:          food.ID,
		ShopID:      food.ShopID,
		Name:        food.Name,
		Description: food.Description,
		Price:       food.Price,
		Category:    food.Category,
		Quantity:    food.Quantity,
		Unit:        string(food.Unit),
		ImageURL:    food.ImageURL,
		CreatedAt:   food.CreatedAt,
		UpdatedAt:   food.UpdatedAt,
	}
}

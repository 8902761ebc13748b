package fooddto

import (
	"io"

	"github.com/drovo/drovo-service/internal/domain"
)

type CreateFoodInput struct {
	ShopID      string
	Name        string
	Description string
	Price       float64
	Category    string
	Quantity    float64
	Unit        domain.Unit
	Image       io.Reader
}

// UpdateFoodInput leaves nil fields unchanged.
type UpdateFoodInput struct {
	ShopID      string
	FoodID      string
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	Quantity    *float64
	Unit        *domain.Unit
	Image       io.Reader
}

package domain

import (
	"context"
	"time"
)

type Unit string

const (
	UnitLiter Unit = "liter"
	UnitKg    Unit = "kg"
	UnitItem  Unit = "item"
	UnitGrams Unit = "grams"
	UnitMl    Unit = "ml"
	UnitDozen Unit = "dozen"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitLiter, UnitKg, UnitItem, UnitGrams, UnitMl, UnitDozen:
		return true
	}
	return false
}

type FoodItem struct {
	ID          string
	ShopID      string
	Name        string
	Description string
	Price       float64
	Category    string
	Quantity    float64
	Unit        Unit
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type FoodRepository interface {
	CreateFood(ctx context.Context, food *FoodItem) error
	UpdateFood(ctx context.Context, food *FoodItem) error
	DeleteFood(ctx context.Context, id string) error
	GetFoodByID(ctx context.Context, id string) (*FoodItem, error)
	GetFoodsByShopID(ctx context.Context, shopID string) ([]*FoodItem, error)
	GetFoodsByIDs(ctx context.Context, ids []string) ([]*FoodItem, error)
}

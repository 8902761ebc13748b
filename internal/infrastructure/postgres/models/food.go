package models

import "time"

type FoodModel struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	ShopID      string `gorm:"type:uuid;index:idx_food_items_shop"`
	Name        string
	Description string
	Price       float64
	Category    string
	Quantity    float64
	Unit        string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (FoodModel) TableName() string { return "food_items" }

package response

import (
	"time"

	"github.com/drovo/drovo-service/internal/domain"
)

type Food struct {
	ID          string    `json:"id"`
	ShopID      string    `json:"shop"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Category    string    `json:"category,omitempty"`
	Quantity    float64   `json:"quantity"`
	Unit        string    `json:"unit"`
	ImageURL    string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromFood(f *domain.FoodItem) Food {
	return Food{
		ID:          f.ID,
		ShopID:      f.ShopID,
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		Category:    f.Category,
		Quantity:    f.Quantity,
		Unit:        string(f.Unit),
		ImageURL:    f.ImageURL,
		CreatedAt:   f.CreatedAt,
	}
}

func FromFoods(foods []*domain.FoodItem) []Food {
	out := make([]Food, 0, len(foods))
	for _, f := range foods {
		out = append(out, FromFood(f))
	}
	return out
}

package response

import (
	"time"

	"github.com/drovo/drovo-service/internal/domain"
)

// Shop never carries bank details or the payout account id.
type Shop struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Email               string         `json:"email"`
	Phone               string         `json:"phone"`
	Address             domain.Address `json:"shopAddress"`
	ImageURL            string         `json:"shopImage,omitempty"`
	Subscription        string         `json:"subscription,omitempty"`
	SubscriptionEndDate *time.Time     `json:"subscriptionEndDate,omitempty"`
	IsSetupComplete     bool           `json:"isSetupComplete"`
	IsActive            bool           `json:"isActive"`
	DistanceKm          *float64       `json:"distance,omitempty"`
}

type Coordinates struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type ShopCatalog struct {
	Shop        Shop        `json:"shop"`
	FoodItems   []Food      `json:"foodItems"`
	Coordinates Coordinates `json:"coordinates"`
}

type DeliveryQuote struct {
	DistanceKm     float64 `json:"distance"`
	DeliveryCharge float64 `json:"deliveryCharge"`
}

type SubscriptionOrder struct {
	Order        *domain.GatewayOrder `json:"order"`
	Key          string               `json:"key"`
	Subscription string               `json:"subscription"`
	DurationDays int                  `json:"durationDays"`
}

func FromShop(s *domain.Shop, now time.Time) Shop {
	return Shop{
		ID:                  s.ID,
		Name:                s.Name,
		Email:               s.Email,
		Phone:               s.Phone,
		Address:             s.Address,
		ImageURL:            s.ImageURL,
		Subscription:        string(s.Subscription),
		SubscriptionEndDate: s.SubscriptionEndDate,
		IsSetupComplete:     s.IsSetupComplete,
		IsActive:            s.IsActive(now),
	}
}

func FromShopsWithDistance(shops []domain.ShopWithDistance, now time.Time) []Shop {
	out := make([]Shop, 0, len(shops))
	for _, s := range shops {
		r := FromShop(s.Shop, now)
		r.DistanceKm = s.DistanceKm
		out = append(out, r)
	}
	return out
}

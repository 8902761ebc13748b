package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/drovo/drovo-service/internal/domain"
	"github.com/drovo/drovo-service/internal/infrastructure/postgres/models"
)

func ToDomainUser(model *models.UserModel) (*domain.User, error) {
	cart, err := DecodeCart(model.Cart)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		Phone:     model.Phone,
		Cart:      cart,
		PushOptIn: model.PushOptIn,
		PushToken: model.PushToken,
	}, nil
}

func DecodeCart(raw string) (domain.Cart, error) {
	cart := domain.Cart{}
	if raw == "" {
		return cart, nil
	}
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return cart, nil
}

func EncodeCart(cart domain.Cart) (string, error) {
	if cart == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(cart)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(raw), nil
}

package repository

import (
	"context"

	"github.com/drovo/drovo-service/internal/domain"
	"github.com/drovo/drovo-service/internal/infrastructure/postgres/mappers"
	"github.com/drovo/drovo-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultUserRepository struct {
	DB *gorm.DB
}

func NewDefaultUserRepository(db *gorm.DB) *DefaultUserRepository {
	return &DefaultUserRepository{DB: db}
}

func (r *DefaultUserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	var user models.UserModel
	if err := r.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return mappers.ToDomainUser(&user)
}

func (r *DefaultUserRepository) GetCart(ctx context.Context, userID string) (domain.Cart, error) {
	var user models.UserModel
	if err := r.DB.WithContext(ctx).Select("id", "cart").First(&user, "id = ?", userID).Error; err != nil {
		return nil, translateError(err)
	}
	return mappers.DecodeCart(user.Cart)
}

func (r *DefaultUserRepository) UpdateCart(ctx context.Context, userID string, change func(domain.Cart) bool) (domain.Cart, error) {
	var cart domain.Cart
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.UserModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "cart").
			First(&user, "id = ?", userID).Error; err != nil {
			return translateError(err)
		}
		var err error
		if cart, err = mappers.DecodeCart(user.Cart); err != nil {
			return err
		}
		if cart == nil {
			cart = domain.Cart{}
		}
		if !change(cart) {
			return nil
		}
		raw, err := mappers.EncodeCart(cart)
		if err != nil {
			return err
		}
		return tx.Model(&models.UserModel{}).Where("id = ?", userID).Update("cart", raw).Error
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *DefaultUserRepository) ClearCart(ctx context.Context, userID string) error {
	return r.updateCart(ctx, userID, "{}")
}

func (r *DefaultUserRepository) updateCart(ctx context.Context, userID, raw string) error {
	result := r.DB.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("id = ?", userID).
		Update("cart", raw)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

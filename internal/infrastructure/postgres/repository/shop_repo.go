package repository

import (
	"context"
	"errors"
	"time"

	"github.com/drovo/drovo-service/internal/domain"
	"github.com/drovo/drovo-service/internal/infrastructure/postgres/mappers"
	"github.com/drovo/drovo-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultShopRepository struct {
	DB *gorm.DB
}

func NewDefaultShopRepository(db *gorm.DB) *DefaultShopRepository {
	return &DefaultShopRepository{DB: db}
}

func (r *DefaultShopRepository) GetShopByID(ctx context.Context, id string) (*domain.Shop, error) {
	var shop models.ShopModel
	if err := r.DB.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return mappers.ToDomainShop(&shop), nil
}

func (r *DefaultShopRepository) GetActiveShops(ctx context.Context, now time.Time) ([]*domain.Shop, error) {
	var shopModels []models.ShopModel
	if err := r.DB.WithContext(ctx).
		Where("subscription_end_date >= ?", now).
		Order("created_at ASC").
		Find(&shopModels).Error; err != nil {
		return nil, err
	}
	return toDomainShops(shopModels), nil
}

func (r *DefaultShopRepository) GetShopsExpiringBetween(ctx context.Context, from, to time.Time) ([]*domain.Shop, error) {
	var shopModels []models.ShopModel
	if err := r.DB.WithContext(ctx).
		Where("subscription_end_date >= ? AND subscription_end_date <= ?", from, to).
		Find(&shopModels).Error; err != nil {
		return nil, err
	}
	return toDomainShops(shopModels), nil
}

func (r *DefaultShopRepository) UpdateShop(ctx context.Context, shop *domain.Shop) error {
	model := mappers.ToGORMShop(shop)
	result := r.DB.WithContext(ctx).Model(&models.ShopModel{ID: shop.ID}).Select("*").Omit("id", "created_at").Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DefaultShopRepository) SetGatewayAccountID(ctx context.Context, shopID, accountID string) error {
	result := r.DB.WithContext(ctx).Model(&models.ShopModel{ID: shopID}).Update("gateway_account_id", accountID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DefaultShopRepository) ApplySubscriptionPayment(ctx context.Context, shop *domain.Shop, purpose domain.PaymentPurpose) error {
	paidAt := shop.UpdatedAt
	if shop.LastPayment.PaidAt != nil {
		paidAt = *shop.LastPayment.PaidAt
	}
	payment := &models.SubscriptionPaymentModel{
		GatewayPaymentID: shop.LastPayment.GatewayPaymentID,
		GatewayOrderID:   shop.LastPayment.GatewayOrderID,
		ShopID:           shop.ID,
		Plan:             string(shop.Subscription),
		Purpose:          string(purpose),
		PaidAt:           paidAt,
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrDuplicatePayment
			}
			return err
		}
		result := tx.Model(&models.ShopModel{ID: shop.ID}).Select("*").Omit("id", "created_at").Updates(mappers.ToGORMShop(shop))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func toDomainShops(shopModels []models.ShopModel) []*domain.Shop {
	shops := make([]*domain.Shop, 0, len(shopModels))
	for i := range shopModels {
		shops = append(shops, mappers.ToDomainShop(&shopModels[i]))
	}
	return shops
}

package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/drovo/drovo-service/internal/domain"
	orderdto "github.com/drovo/drovo-service/internal/usecase/dto/order"
	"github.com/drovo/drovo-service/internal/usecase/external"
	"go.uber.org/zap"
)

// PlaceOrder records a cash-on-delivery order.
func (uc *DefaultOrderUsecase) PlaceOrder(ctx context.Context, input *orderdto.CheckoutInput) (*orderdto.PlaceOrderOutput, error) {
	if err := validateAddress(input.Address); err != nil {
		return nil, err
	}
	priced, err := uc.priceCheckout(ctx, input, shopRequirements{active: true})
	if err != nil {
		return nil, err
	}

	order := uc.newOrder(input, priced, domain.PaymentCOD, domain.PaymentPending)
	if err := uc.OrderRepo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	uc.afterCommit(ctx, order, priced.shop)

	return &orderdto.PlaceOrderOutput{Order: order}, nil
}

func (uc *DefaultOrderUsecase) newOrder(input *orderdto.CheckoutInput, priced *pricedCheckout, method domain.PaymentMethod, status domain.PaymentStatus) *domain.Order {
	now := uc.Now()
	return &domain.Order{
		ID:             uc.NewID(),
		BuyerID:        input.BuyerID,
		ShopID:         priced.shop.ID,
		Items:          priced.items,
		Amount:         priced.amount,
		DeliveryCharge: priced.deliveryCharge,
		Address:        input.Address,
		Status:         domain.StatusProcessing,
		PaymentMethod:  method,
		PaymentStatus:  status,
		PaymentDetails: domain.PaymentDetails{
			PlatformCommission: domain.PlatformCommission(priced.amount, priced.deliveryCharge),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// afterCommit runs the post-persist steps. None of them can fail the request.
func (uc *DefaultOrderUsecase) afterCommit(ctx context.Context, order *domain.Order, shop *domain.Shop) {
	_ = uc.Caller.Do(ctx, external.BestEffort, "cart.clear", func(ctx context.Context) error {
		err := uc.UserRepo.ClearCart(ctx, order.BuyerID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	})

	uc.recordOrderPlacedMetrics(order)
	uc.Logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("shop_id", order.ShopID),
		zap.String("payment_method", string(order.PaymentMethod)),
		zap.Float64("total", order.Total()),
	)

	subject, body := orderPlacedMessage(order)
	uc.notifyAsync(ctx, "notify.order_placed", shop.NotificationTarget(), subject, body)
	uc.publishAsync(ctx, domain.NewOrderEvent(domain.EventOrderPlaced, order, uc.Now()))
}

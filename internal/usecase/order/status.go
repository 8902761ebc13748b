package order

import (
	"context"
	"fmt"

	"github.com/drovo/drovo-service/internal/domain"
	orderdto "github.com/drovo/drovo-service/internal/usecase/dto/order"
	"go.uber.org/zap"
)

// UpdateOrderStatus moves an order forward. Re-sending the current status
// succeeds without writing.
func (uc *DefaultOrderUsecase) UpdateOrderStatus(ctx context.Context, input *orderdto.UpdateStatusInput) (*domain.Order, error) {
	next := domain.OrderStatus(input.Status)
	if !next.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if input.OrderID == "" {
		return nil, domain.NewValidationError("orderId is required")
	}

	order, err := uc.OrderRepo.GetOrderByID(ctx, input.OrderID)
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	if input.ShopID != "" && order.ShopID != input.ShopID {
		return nil, domain.ErrNotFound
	}
	if err := order.Status.CheckTransition(next); err != nil {
		return nil, err
	}
	if order.Status == next {
		return order, nil
	}

	if err := uc.OrderRepo.UpdateOrderStatus(ctx, order.ID, next); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	previous := order.Status
	order.Status = next
	order.UpdatedAt = uc.Now()

	uc.recordStatusMetrics(order)
	uc.Logger.Info("order status updated",
		zap.String("order_id", order.ID),
		zap.String("from", string(previous)),
		zap.String("to", string(next)),
	)

	uc.notifyBuyerAsync(ctx, order)
	uc.publishAsync(ctx, domain.NewOrderEvent(domain.EventOrderStatusChanged, order, uc.Now()))
	return order, nil
}

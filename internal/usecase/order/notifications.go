package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/drovo/drovo-service/internal/domain"
	"go.uber.org/zap"
)

func (uc *DefaultOrderUsecase) notifyAsync(ctx context.Context, name string, target domain.NotificationTarget, subject, body string) {
	if uc.Notifier == nil {
		return
	}
	uc.Caller.Detach(ctx, name, uc.Settings.NotificationTimeout, func(ctx context.Context) error {
		report := uc.Notifier.Notify(ctx, target, subject, body)
		if len(report) > 0 && !report.Any() {
			return domain.ErrNotificationFailed
		}
		return nil
	})
}

// notifyBuyerAsync loads the buyer in the background so the caller never
// waits on it.
func (uc *DefaultOrderUsecase) notifyBuyerAsync(ctx context.Context, order *domain.Order) {
	if uc.Notifier == nil {
		return
	}
	snapshot := *order
	uc.Caller.Detach(ctx, "notify.status_changed", uc.Settings.NotificationTimeout, func(ctx context.Context) error {
		buyer, err := uc.UserRepo.GetUserByID(ctx, snapshot.BuyerID)
		if err != nil {
			return fmt.Errorf("load buyer: %w", err)
		}
		shopName := ""
		if shop, err := uc.ShopRepo.GetShopByID(ctx, snapshot.ShopID); err == nil {
			shopName = shop.Name
		}
		subject, body := statusChangedMessage(&snapshot, shopName)
		target := domain.NotificationTarget{
			Name:      buyer.Name,
			Email:     buyer.Email,
			Phone:     buyer.Phone,
			PushOptIn: buyer.PushOptIn,
			PushToken: buyer.PushToken,
		}
		report := uc.Notifier.Notify(ctx, target, subject, body)
		if len(report) > 0 && !report.Any() {
			return domain.ErrNotificationFailed
		}
		return nil
	})
}

func (uc *DefaultOrderUsecase) publishAsync(ctx context.Context, event domain.OrderEvent) {
	if uc.Publisher == nil {
		return
	}
	uc.Caller.Detach(ctx, "events.publish", uc.Settings.NotificationTimeout, func(ctx context.Context) error {
		if err := uc.Publisher.PublishOrderEvent(ctx, event); err != nil {
			uc.Logger.Warn("failed to publish order event",
				zap.String("order_id", event.OrderID),
				zap.String("event", string(event.Type)),
			)
			return err
		}
		return nil
	})
}

func orderPlacedMessage(o *domain.Order) (string, string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Order ID: %s\n", o.ID)
	b.WriteString("Items:\n")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "  - %s x%d (%s) @ ₹%s\n", it.Name, it.Multiplier, it.Quantity, rupees(it.Price))
	}
	fmt.Fprintf(&b, "Amount: ₹%s\n", rupees(o.Amount))
	fmt.Fprintf(&b, "Delivery Charge: ₹%s\n", rupees(o.DeliveryCharge))
	fmt.Fprintf(&b, "Payment Method: %s\n", o.PaymentMethod)
	fmt.Fprintf(&b, "Shop Amount: ₹%s\n", rupees(o.Total()-float64(o.PaymentDetails.PlatformCommission)))
	fmt.Fprintf(&b, "Platform Commission: ₹%d\n", o.PaymentDetails.PlatformCommission)
	fmt.Fprintf(&b, "Deliver to: %s, %s\n", o.Address.Name, o.Address.Street)
	return "New Order Received", b.String()
}

var statusLines = map[domain.OrderStatus]string{
	domain.StatusProcessing:     "is being prepared",
	domain.StatusOutForDelivery: "is out for delivery",
	domain.StatusDelivered:      "has been delivered",
}

func statusChangedMessage(o *domain.Order, shopName string) (string, string) {
	from := ""
	if shopName != "" {
		from = " from " + shopName
	}
	subject := "Order Update: " + string(o.Status)
	body := fmt.Sprintf("Your order %s%s %s.\nTotal: ₹%s (%s)\n",
		o.ID, from, statusLines[o.Status], rupees(o.Total()), o.PaymentMethod)
	return subject, body
}

func rupees(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	return strings.TrimSuffix(s, ".00")
}

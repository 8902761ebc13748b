package order

import (
	"context"
	"errors"
	"testing"

	"github.com/drovo/drovo-service/internal/domain"
	orderdto "github.com/drovo/drovo-service/internal/usecase/dto/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedOrder(status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:            "order-1",
		BuyerID:       "buyer-1",
		ShopID:        "shop-1",
		Status:        status,
		Amount:        40,
		PaymentMethod: domain.PaymentCOD,
	}
}

func TestUpdateOrderStatusRejectsUnknownStatusBeforeLoading(t *testing.T) {
	f := newFixture()
	_, err := f.uc.UpdateOrderStatus(context.Background(), &orderdto.UpdateStatusInput{
		ShopID: "shop-1", OrderID: "order-1", Status: "Cancelled",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	f.orders.AssertNotCalled(t, "GetOrderByID", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusRejectsBackwardMove(t *testing.T) {
	f := newFixture()
	f.orders.On("GetOrderByID", mock.Anything, "order-1").Return(storedOrder(domain.StatusDelivered), nil)

	_, err := f.uc.UpdateOrderStatus(context.Background(), &orderdto.UpdateStatusInput{
		ShopID: "shop-1", OrderID: "order-1", Status: string(domain.StatusProcessing),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	f.orders.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
	f.wait(t)
}

func TestUpdateOrderStatusSameStatusIsNoop(t *testing.T) {
	f := newFixture()
	f.orders.On("GetOrderByID", mock.Anything, "order-1").Return(storedOrder(domain.StatusOutForDelivery), nil)

	got, err := f.uc.UpdateOrderStatus(context.Background(), &orderdto.UpdateStatusInput{
		ShopID: "shop-1", OrderID: "order-1", Status: string(domain.StatusOutForDelivery),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOutForDelivery, got.Status)
	f.orders.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.wait(t)
}

func TestUpdateOrderStatusHidesOtherShopsOrders(t *testing.T) {
	f := newFixture()
	f.orders.On("GetOrderByID", mock.Anything, "order-1").Return(storedOrder(domain.StatusProcessing), nil)

	_, err := f.uc.UpdateOrderStatus(context.Background(), &orderdto.UpdateStatusInput{
		ShopID: "shop-2", OrderID: "order-1", Status: string(domain.StatusDelivered),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.wait(t)
}

func TestUpdateOrderStatusForwardNotifiesBuyer(t *testing.T) {
	f := newFixture()
	f.orders.On("GetOrderByID", mock.Anything, "order-1").Return(storedOrder(domain.StatusProcessing), nil)
	f.orders.On("UpdateOrderStatus", mock.Anything, "order-1", domain.StatusDelivered).Return(nil)
	f.users.On("GetUserByID", mock.Anything, "buyer-1").Return(&domain.User{
		ID: "buyer-1", Name: "Ravi", Email: "ravi@example.com",
	}, nil)
	f.shops.On("GetShopByID", mock.Anything, "shop-1").Return(activeShop(), nil)
	f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(target domain.NotificationTarget) bool {
		return target.Email == "ravi@example.com"
	}), "Order Update: Delivered", mock.Anything).Return(domain.DeliveryReport{domain.ChannelEmail: true})
	f.publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
		return e.Type == domain.EventOrderStatusChanged && e.Status == domain.StatusDelivered
	})).Return(nil)

	got, err := f.uc.UpdateOrderStatus(context.Background(), &orderdto.UpdateStatusInput{
		ShopID: "shop-1", OrderID: "order-1", Status: string(domain.StatusDelivered),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, got.Status)
	f.wait(t)
}

func TestUpdateOrderStatusSurvivesNotificationFailure(t *testing.T) {
	f := newFixture()
	f.orders.On("GetOrderByID", mock.Anything, "order-1").Return(storedOrder(domain.StatusProcessing), nil)
	f.orders.On("UpdateOrderStatus", mock.Anything, "order-1", domain.StatusOutForDelivery).Return(nil)
	f.users.On("GetUserByID", mock.Anything, "buyer-1").Return(nil, errors.New("connection reset"))
	f.publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	_, err := f.uc.UpdateOrderStatus(context.Background(), &orderdto.UpdateStatusInput{
		ShopID: "shop-1", OrderID: "order-1", Status: string(domain.StatusOutForDelivery),
	})
	require.NoError(t, err)
	f.wait(t)
}

func TestGetShopOrdersPaginates(t *testing.T) {
	f := newFixture()
	f.orders.On("GetOrdersByShopID", mock.Anything, "shop-1", 2, 50).
		Return([]*domain.Order{storedOrder(domain.StatusProcessing)}, int64(51), nil)

	out, err := f.uc.GetShopOrders(context.Background(), &orderdto.ShopOrdersInput{ShopID: "shop-1", Page: 2})
	require.NoError(t, err)
	assert.Len(t, out.Orders, 1)
	assert.Equal(t, orderdto.Pagination{Page: 2, Limit: 50, Total: 51, TotalPages: 2}, out.Pagination)
	f.wait(t)
}

func TestGetShopOrdersRejectsLargeLimit(t *testing.T) {
	f := newFixture()
	_, err := f.uc.GetShopOrders(context.Background(), &orderdto.ShopOrdersInput{ShopID: "shop-1", Limit: 500})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetOrderByIDChecksOwnership(t *testing.T) {
	f := newFixture()
	f.orders.On("GetOrderByID", mock.Anything, "order-1").Return(storedOrder(domain.StatusProcessing), nil)

	_, err := f.uc.GetOrderByID(context.Background(), "buyer-2", "order-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	f.shops.On("GetShopByID", mock.Anything, "shop-1").Return(activeShop(), nil)
	out, err := f.uc.GetOrderByID(context.Background(), "buyer-1", "order-1")
	require.NoError(t, err)
	assert.Equal(t, "Fresh Dairy", out.Shop.Name)
	f.wait(t)
}

func feedback() *orderdto.FeedbackInput {
	return &orderdto.FeedbackInput{
		ShopID:  "shop-1",
		Name:    "Ravi",
		Email:   "ravi@example.com",
		Rating:  4,
		Message: "Milk arrived cold and on time.",
	}
}

func TestSendFeedbackMailsShop(t *testing.T) {
	f := newFixture()
	f.shops.On("GetShopByID", mock.Anything, "shop-1").Return(activeShop(), nil)
	f.mailer.On("SendMail", mock.Anything, mock.MatchedBy(func(m domain.Mail) bool {
		return m.To == "shop@example.com" && m.ReplyTo == "ravi@example.com"
	})).Return(nil)

	require.NoError(t, f.uc.SendFeedback(context.Background(), feedback()))
	f.wait(t)
}

func TestSendFeedbackReportsMailFailure(t *testing.T) {
	f := newFixture()
	f.shops.On("GetShopByID", mock.Anything, "shop-1").Return(activeShop(), nil)
	f.mailer.On("SendMail", mock.Anything, mock.Anything).Return(errors.New("smtp 451"))

	err := f.uc.SendFeedback(context.Background(), feedback())
	assert.ErrorIs(t, err, domain.ErrNotificationFailed)
	f.wait(t)
}

func TestSendFeedbackValidates(t *testing.T) {
	f := newFixture()
	in := feedback()
	in.Rating = 6
	assert.ErrorIs(t, f.uc.SendFeedback(context.Background(), in), domain.ErrValidation)

	in = feedback()
	in.Email = "not-an-email"
	assert.ErrorIs(t, f.uc.SendFeedback(context.Background(), in), domain.ErrValidation)
	f.mailer.AssertNotCalled(t, "SendMail", mock.Anything, mock.Anything)
}

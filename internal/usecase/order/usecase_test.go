package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/drovo/drovo-service/internal/domain"
	"github.com/drovo/drovo-service/internal/domain/mocks"
	orderdto "github.com/drovo/drovo-service/internal/usecase/dto/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	uc        *DefaultOrderUsecase
	orders    *mocks.OrderRepository
	shops     *mocks.ShopRepository
	foods     *mocks.FoodRepository
	users     *mocks.UserRepository
	gateway   *mocks.PaymentGateway
	notifier  *mocks.Notifier
	mailer    *mocks.Mailer
	publisher *mocks.OrderEventPublisher
	audit     *mocks.PaymentAuditLogger
}

func newFixture() *fixture {
	f := &fixture{
		orders:    &mocks.OrderRepository{},
		shops:     &mocks.ShopRepository{},
		foods:     &mocks.FoodRepository{},
		users:     &mocks.UserRepository{},
		gateway:   &mocks.PaymentGateway{},
		notifier:  &mocks.Notifier{},
		mailer:    &mocks.Mailer{},
		publisher: &mocks.OrderEventPublisher{},
		audit:     &mocks.PaymentAuditLogger{},
	}
	f.uc = NewDefaultOrderUsecase(Deps{
		OrderRepo: f.orders,
		ShopRepo:  f.shops,
		FoodRepo:  f.foods,
		UserRepo:  f.users,
		Gateway:   f.gateway,
		Notifier:  f.notifier,
		Mailer:    f.mailer,
		Publisher: f.publisher,
		Audit:     f.audit,
		Logger:    zap.NewNop(),
	}, Settings{GatewayKeyID: "rzp_test", NotificationTimeout: time.Second})
	f.uc.Now = func() time.Time { return fixedNow }
	f.uc.NewID = func() string { return "order-1" }
	f.uc.NewReceipt = func() string { return "order_rcptid_test" }
	return f
}

// wait drains detached notification and publish calls before assertions.
func (f *fixture) wait(t *testing.T) {
	f.uc.Caller.Wait()
	for _, m := range []interface{ AssertExpectations(mock.TestingT) bool }{
		f.orders, f.shops, f.foods, f.users, f.gateway, f.notifier, f.mailer, f.publisher,
	} {
		m.AssertExpectations(t)
	}
}

func activeShop() *domain.Shop {
	end := fixedNow.AddDate(0, 0, 10)
	return &domain.Shop{
		ID:                  "shop-1",
		Name:                "Fresh Dairy",
		Email:               "shop@example.com",
		Phone:               "9876543210",
		SubscriptionEndDate: &end,
		GatewayAccountID:    "acc_shop1",
	}
}

func paneer() *domain.FoodItem {
	return &domain.FoodItem{ID: "food-1", ShopID: "shop-1", Name: "Paneer", Price: 20, Quantity: 500, Unit: domain.UnitGrams}
}

func checkout() orderdto.CheckoutInput {
	return orderdto.CheckoutInput{
		BuyerID:        "buyer-1",
		ShopID:         "shop-1",
		Items:          []orderdto.CheckoutItem{{FoodID: "food-1", Multiplier: 2}},
		DeliveryCharge: 15,
		Address:        domain.DeliveryAddress{Name: "Ravi", Phone: "9123456789", Street: "5 Park Street"},
	}
}

func validProof() domain.PaymentProof {
	return domain.PaymentProof{GatewayOrderID: "order_gw1", GatewayPaymentID: "pay_1", Signature: "sig"}
}

// paidOrder is the gateway order CreateGatewayOrder would have created for
// checkout().
func paidOrder() *domain.GatewayOrder {
	priced := &pricedCheckout{
		shop:           activeShop(),
		items:          []domain.OrderItem{{FoodID: "food-1", Multiplier: 2}},
		deliveryCharge: 15,
	}
	return &domain.GatewayOrder{
		ID:     "order_gw1",
		Amount: 5500,
		Status: "paid",
		Notes:  gatewayNotes("buyer-1", priced),
	}
}

func TestCreateGatewayOrderSplitsPayment(t *testing.T) {
	f := newFixture()
	f.shops.On("GetShopByID", mock.Anything, "shop-1").Return(activeShop(), nil)
	f.foods.On("GetFoodsByIDs", mock.Anything, []string{"food-1"}).Return([]*domain.FoodItem{paneer()}, nil)
	f.gateway.On("CreateOrder", mock.Anything, mock.MatchedBy(func(req domain.GatewayOrderRequest) bool {
		return req.AmountMinorUnits == 5500 &&
			req.Currency == "INR" &&
			req.Receipt == "order_rcptid_test" &&
			len(req.Transfers) == 1 &&
			req.Transfers[0].Account == "acc_shop1" &&
			req.Transfers[0].Amount == 5445 &&
			req.Notes[domain.NotePurpose] == "order" &&
			req.Notes[domain.NoteBuyerID] == "buyer-1" &&
			req.Notes[domain.NoteBasket] == paidOrder().Notes[domain.NoteBasket]
	})).Return(&domain.GatewayOrder{ID: "order_gw1", Amount: 5500, Currency: "INR"}, nil)

	clientAmount := 999.0
	in := checkout()
	in.ClientAmount = &clientAmount

	out, err := f.uc.CreateGatewayOrder(context.Background(), &in)
	require.NoError(t, err)
	assert.Equal(t, "order_gw1", out.GatewayOrder.ID)
	assert.Equal(t, "rzp_test", out.KeyID)
	assert.Equal(t, 40.0, out.Amount)
	assert.Equal(t, domain.Split{TotalMinorUnits: 5500, ShopShare: 5445, PlatformShare: 55}, out.Split)
	f.wait(t)
}

func TestCreateGatewayOrderPreconditions(t *testing.T) {
	expired := fixedNow.Add(-time.Hour)

	tests := []struct {
		name    string
		setup   func(f *fixture)
		wantErr error
	}{
		{
			name: "unknown shop",
			setup: func(f *fixture) {
				f.shops.On("GetShopByID", mock.Anything, "shop-1").Return(nil, domain.ErrNotFound)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "inactive shop",
			setup: func(f *fixture) {
				shop := activeShop()
				shop.SubscriptionEndDate = &expired
				f.shops.On("GetShopByID", mock.Anything, "shop-1").Return(shop, nil)
			},
			wantErr: domain.ErrShopInactive,
		},
		{
			name: "shop without payout account",
			setup: func(f *fixture) {
				shop := activeShop()
				shop.GatewayAccountID = ""
				f.shops.On("GetShopByID", mock.Anything, "shop-1").Return(shop, nil)
			},
			wantErr: domain.ErrShopNotOnboarded,
		},
		{
			name: "food from another shop",
			setup: func(f *fixture) {
				f.shops.On("GetShopByID", mock.Anything, "shop-1").Return(activeShop(), nil)
				other := paneer()
				other.ShopID = "shop-2"
				f.foods.On("GetFoodsByIDs", mock.Anything, []string{"food-1"}).Return([]*domain.FoodItem{other}, nil)
			},
			wantErr: domain.ErrValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f)
			in := checkout()
			_, err := f.uc.CreateGatewayOrder(context.Background(), &in)
			assert.ErrorIs(t, err, tt.wantErr)
			f.gateway.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
			f.wait(t)
		})
	}
}

func TestCreateGatewayOrderPropagatesGatewayFailure(t *testing.T) {
	f := newFixture()
	f.shops.On("GetShopByID", mock.Anything, "shop-1").Return(activeShop(), nil)
	f.foods.On("GetFoodsByIDs", mock.Anything, []string{"food-1"}).Return([]*domain.FoodItem{paneer()}, nil)
	f.gateway.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, domain.ErrGatewayUnavailable)

	in := checkout()
	_, err := f.uc.CreateGatewayOrder(context.Background(), &in)
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
	f.wait(t)
}

func TestCreateGatewayOrderPricesDeliveryFromCoordinates(t *testing.T) {
	f := newFixture()
	shop := activeShop()
	shop.Address = domain.Address{Latitude: ptr(12.9716), Longitude: ptr(77.5946)}
	f.shops.On("GetShopByID", mock.Anything, "shop-1").Return(shop, nil)
	f.foods.On("GetFoodsByIDs", mock.Anything, []string{"food-1"}).Return([]*domain.FoodItem{paneer()}, nil)
	f.gateway.On("CreateOrder", mock.Anything, mock.MatchedBy(func(req domain.GatewayOrderRequest) bool {
		return req.AmountMinorUnits == 4900
	})).Return(&domain.GatewayOrder{ID: "order_gw1", Amount: 4900, Currency: "INR"}, nil)

	in := checkout()
	in.DeliveryCharge = 0
	in.Address.Latitude = ptr(12.9720)
	in.Address.Longitude = ptr(77.5950)

	out, err := f.uc.CreateGatewayOrder(context.Background(), &in)
	require.NoError(t, err)
	assert.Equal(t, 9.0, out.DeliveryCharge)
	assert.Equal(t, int64(4900), out.Split.TotalMinorUnits)
	f.wait(t)
}

func TestBasketDigest(t *testing.T) {
	shop := activeShop()
	a := &pricedCheckout{shop: shop, deliveryCharge: 15, items: []domain.OrderItem{
		{FoodID: "food-1", Multiplier: 2}, {FoodID: "food-2", Multiplier: 1},
	}}
	b := &pricedCheckout{shop: shop, deliveryCharge: 15, items: []domain.OrderItem{
		{FoodID: "food-2", Multiplier: 1}, {FoodID: "food-1", Multiplier: 2},
	}}
	assert.Equal(t, basketDigest(a), basketDigest(b))

	b.items[1].Multiplier = 100
	assert.NotEqual(t, basketDigest(a), basketDigest(b))

	c := &pricedCheckout{shop: shop, deliveryCharge: 9, items: a.items}
	assert.NotEqual(t, basketDigest(a), basketDigest(c))
}

func expectCommitted(f *fixture) {
	f.users.On("ClearCart", mock.Anything, "buyer-1").Return(nil)
	f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(target domain.NotificationTarget) bool {
		return target.Email == "shop@example.com"
	}), "New Order Received", mock.Anything).Return(domain.DeliveryReport{domain.ChannelEmail: true})
	f.publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
		return e.Type == domain.EventOrderPlaced && e.OrderID == "order-1"
	})).Return(nil)
}

func TestVerifyAndPlaceOrder(t *testing.T) {
	f := newFixture()
	f.gateway.On("VerifySignature", validProof()).Return(nil)
	f.orders.On("GetOrderByGatewayPaymentID", mock.Anything, "pay_1").Return(nil, domain.ErrNotFound)
	f.shops.On("GetShopByID", mock.Anything, "shop-1").Return(activeShop(), nil)
	f.foods.On("GetFoodsByIDs", mock.Anything, []string{"food-1"}).Return([]*domain.FoodItem{paneer()}, nil)
	f.gateway.On("FetchOrder", mock.Anything, "order_gw1").Return(paidOrder(), nil)
	f.orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.PaymentMethod == domain.PaymentOnline &&
			o.PaymentStatus == domain.PaymentCompleted &&
			o.Status == domain.StatusProcessing &&
			o.Amount == 40 && o.DeliveryCharge == 15 &&
			o.PaymentDetails.PlatformCommission == 1 &&
			o.PaymentDetails.GatewayPaymentID == "pay_1" &&
			o.PaymentDetails.GatewayOrderID == "order_gw1" &&
			len(o.Items) == 1 && o.Items[0].Quantity == "1 kg"
	})).Return(nil)
	f.audit.On("LogPayment", mock.Anything, mock.Anything).Return(nil)
	expectCommitted(f)

	out, err := f.uc.VerifyAndPlaceOrder(context.Background(), &orderdto.VerifyPaymentInput{
		Proof:    validProof(),
		Checkout: checkout(),
	})
	require.NoError(t, err)
	assert.False(t, out.Duplicate)
	assert.Equal(t, "order-1", out.Order.ID)
	f.wait(t)

	var outcomes []domain.AuditOutcome
	for _, call := range f.audit.Calls {
		outcomes = append(outcomes, call.Arguments.Get(1).(domain.PaymentAuditEntry).Outcome)
	}
	assert.Equal(t, []domain.AuditOutcome{domain.OutcomeVerified, domain.OutcomePersisted}, outcomes)
}

func TestVerifyAndPlaceOrderRejectsBadSignature(t *testing.T) {
	f := newFixture()
	f.gateway.On("VerifySignature", validProof()).Return(domain.ErrInvalidSignature)
	f.audit.On("LogPayment", mock.Anything, mock.MatchedBy(func(e domain.PaymentAuditEntry) bool {
		return e.Outcome == domain.OutcomeRejected && e.GatewayPaymentID == "pay_1"
	})).Return(nil).Once()

	_, err := f.uc.VerifyAndPlaceOrder(context.Background(), &orderdto.VerifyPaymentInput{
		Proof:    validProof(),
		Checkout: checkout(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
	f.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	f.users.AssertNotCalled(t, "ClearCart", mock.Anything, mock.Anything)
	f.wait(t)
	f.audit.AssertExpectations(t)
}

func TestVerifyAndPlaceOrderRequiresProof(t *testing.T) {
	f := newFixture()
	proof := validProof()
	proof.Signature = ""

	_, err := f.uc.VerifyAndPlaceOrder(context.Background(), &orderdto.VerifyPaymentInput{Proof: proof, Checkout: checkout()})
	assert.ErrorIs(t, err, domain.ErrValidation)
	f.gateway.AssertNotCalled(t, "VerifySignature", mock.Anything)
}

func TestVerifyAndPlaceOrderIsIdempotent(t *testing.T) {
	f := newFixture()
	existing := &domain.Order{ID: "order-first", BuyerID: "buyer-1", ShopID: "shop-1"}
	f.gateway.On("VerifySignature", validProof()).Return(nil)
	f.orders.On("GetOrderByGatewayPaymentID", mock.Anything, "pay_1").Return(existing, nil)
	f.audit.On("LogPayment", mock.Anything, mock.Anything).Return(nil)

	out, err := f.uc.VerifyAndPlaceOrder(context.Background(), &orderdto.VerifyPaymentInput{
		Proof:    validProof(),
		Checkout: checkout(),
	})
	require.NoError(t, err)
	assert.True(t, out.Duplicate)
	assert.Same(t, existing, out.Order)
	f.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	f.wait(t)
}

func TestVerifyAndPlaceOrderResolvesInsertRace(t *testing.T) {
	f := newFixture()
	existing := &domain.Order{ID: "order-first"}
	f.gateway.On("VerifySignature", validProof()).Return(nil)
	f.orders.On("GetOrderByGatewayPaymentID", mock.Anything, "pay_1").Return(nil, domain.ErrNotFound).Once()
	f.orders.On("GetOrderByGatewayPaymentID", mock.Anything, "pay_1").Return(existing, nil).Once()
	f.shops.On("GetShopByID", mock.Anything, "shop-1").Return(activeShop(), nil)
	f.foods.On("GetFoodsByIDs", mock.Anything, []string{"food-1"}).Return([]*domain.FoodItem{paneer()}, nil)
	f.gateway.On("FetchOrder", mock.Anything, "order_gw1").Return(paidOrder(), nil)
	f.orders.On("CreateOrder", mock.Anything, mock.Anything).Return(domain.ErrDuplicatePayment)
	f.audit.On("LogPayment", mock.Anything, mock.Anything).Return(nil)

	out, err := f.uc.VerifyAndPlaceOrder(context.Background(), &orderdto.VerifyPaymentInput{
		Proof:    validProof(),
		Checkout: checkout(),
	})
	require.NoError(t, err)
	assert.True(t, out.Duplicate)
	assert.Equal(t, "order-first", out.Order.ID)
	f.users.AssertNotCalled(t, "ClearCart", mock.Anything, mock.Anything)
	f.wait(t)
}

func TestVerifyAndPlaceOrderRejectsBasketOtherThanPaid(t *testing.T) {
	cases := map[string]func(in *orderdto.CheckoutInput){
		"larger basket": func(in *orderdto.CheckoutInput) {
			in.Items = []orderdto.CheckoutItem{{FoodID: "food-1", Multiplier: 100}}
		},
		"other buyer": func(in *orderdto.CheckoutInput) {
			in.BuyerID = "buyer-2"
		},
		"cheaper delivery": func(in *orderdto.CheckoutInput) {
			in.DeliveryCharge = 9
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			f.gateway.On("VerifySignature", validProof()).Return(nil)
			f.orders.On("GetOrderByGatewayPaymentID", mock.Anything, "pay_1").Return(nil, domain.ErrNotFound)
			f.shops.On("GetShopByID", mock.Anything, "shop-1").Return(activeShop(), nil)
			f.foods.On("GetFoodsByIDs", mock.Anything, []string{"food-1"}).Return([]*domain.FoodItem{paneer()}, nil)
			f.gateway.On("FetchOrder", mock.Anything, "order_gw1").Return(paidOrder(), nil)
			f.audit.On("LogPayment", mock.Anything, mock.Anything).Return(nil)

			in := checkout()
			mutate(&in)
			_, err := f.uc.VerifyAndPlaceOrder(context.Background(), &orderdto.VerifyPaymentInput{
				Proof:    validProof(),
				Checkout: in,
			})
			assert.ErrorIs(t, err, domain.ErrPaymentMismatch)
			f.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
			f.users.AssertNotCalled(t, "ClearCart", mock.Anything, mock.Anything)
			f.wait(t)

			last := f.audit.Calls[len(f.audit.Calls)-1].Arguments.Get(1).(domain.PaymentAuditEntry)
			assert.Equal(t, domain.OutcomeRejected, last.Outcome)
		})
	}
}

func TestVerifyAndPlaceOrderFailsWhenGatewayOrderUnavailable(t *testing.T) {
	f := newFixture()
	f.gateway.On("VerifySignature", validProof()).Return(nil)
	f.orders.On("GetOrderByGatewayPaymentID", mock.Anything, "pay_1").Return(nil, domain.ErrNotFound)
	f.shops.On("GetShopByID", mock.Anything, "shop-1").Return(activeShop(), nil)
	f.foods.On("GetFoodsByIDs", mock.Anything, []string{"food-1"}).Return([]*domain.FoodItem{paneer()}, nil)
	f.gateway.On("FetchOrder", mock.Anything, "order_gw1").Return(nil, domain.ErrGatewayUnavailable)
	f.audit.On("LogPayment", mock.Anything, mock.Anything).Return(nil)

	_, err := f.uc.VerifyAndPlaceOrder(context.Background(), &orderdto.VerifyPaymentInput{
		Proof:    validProof(),
		Checkout: checkout(),
	})
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
	f.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	f.wait(t)
}

func TestPlaceOrderCOD(t *testing.T) {
	f := newFixture()
	f.shops.On("GetShopByID", mock.Anything, "shop-1").Return(activeShop(), nil)
	f.foods.On("GetFoodsByIDs", mock.Anything, []string{"food-1"}).Return([]*domain.FoodItem{paneer()}, nil)
	f.orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.PaymentMethod == domain.PaymentCOD &&
			o.PaymentStatus == domain.PaymentPending &&
			o.PaymentDetails.GatewayPaymentID == ""
	})).Return(nil)
	expectCommitted(f)

	in := checkout()
	out, err := f.uc.PlaceOrder(context.Background(), &in)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, out.Order.PaymentStatus)
	f.wait(t)
}

func TestPlaceOrderUsesStoredCartAndSurvivesCartClearFailure(t *testing.T) {
	f := newFixture()
	f.shops.On("GetShopByID", mock.Anything, "shop-1").Return(activeShop(), nil)
	f.users.On("GetCart", mock.Anything, "buyer-1").Return(domain.Cart{
		"shop-1": {"food-1": 3},
		"shop-2": {"food-9": 1},
	}, nil)
	f.foods.On("GetFoodsByIDs", mock.Anything, []string{"food-1"}).Return([]*domain.FoodItem{paneer()}, nil)
	f.orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.Amount == 60 && o.Items[0].Quantity == "1.5 kg"
	})).Return(nil)
	f.users.On("ClearCart", mock.Anything, "buyer-1").Return(errors.New("db timeout"))
	f.notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(domain.DeliveryReport{})
	f.publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil)

	in := checkout()
	in.Items = nil
	out, err := f.uc.PlaceOrder(context.Background(), &in)
	require.NoError(t, err)
	assert.Equal(t, 60.0, out.Order.Amount)
	f.wait(t)
}

func TestPlaceOrderValidatesAddress(t *testing.T) {
	f := newFixture()
	in := checkout()
	in.Address.Phone = "123"
	_, err := f.uc.PlaceOrder(context.Background(), &in)
	assert.ErrorIs(t, err, domain.ErrValidation)
	f.shops.AssertNotCalled(t, "GetShopByID", mock.Anything, mock.Anything)
}

func TestPlaceOrderEnforcesMinimum(t *testing.T) {
	f := newFixture()
	f.uc.Settings.MinOrderAmount = 60
	f.shops.On("GetShopByID", mock.Anything, "shop-1").Return(activeShop(), nil)
	f.foods.On("GetFoodsByIDs", mock.Anything, []string{"food-1"}).Return([]*domain.FoodItem{paneer()}, nil)

	in := checkout()
	_, err := f.uc.PlaceOrder(context.Background(), &in)
	assert.ErrorIs(t, err, domain.ErrValidation)
	f.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func ptr(v float64) *float64 { return &v }

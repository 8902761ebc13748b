package order

import (
	"context"
	"time"

	"github.com/drovo/drovo-service/internal/domain"
	"github.com/drovo/drovo-service/internal/infrastructure/metrics"
	orderdto "github.com/drovo/drovo-service/internal/usecase/dto/order"
	"github.com/drovo/drovo-service/internal/usecase/external"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"go.uber.org/zap"
)

type OrderUsecase interface {
	CreateGatewayOrder(ctx context.Context, input *orderdto.CheckoutInput) (*orderdto.GatewayOrderOutput, error)
	VerifyAndPlaceOrder(ctx context.Context, input *orderdto.VerifyPaymentInput) (*orderdto.PlaceOrderOutput, error)
	PlaceOrder(ctx context.Context, input *orderdto.CheckoutInput) (*orderdto.PlaceOrderOutput, error)
	UpdateOrderStatus(ctx context.Context, input *orderdto.UpdateStatusInput) (*domain.Order, error)

	GetBuyerOrders(ctx context.Context, buyerID string) ([]*domain.Order, error)
	GetShopOrders(ctx context.Context, input *orderdto.ShopOrdersInput) (*orderdto.ShopOrdersOutput, error)
	GetOrderByID(ctx context.Context, buyerID, orderID string) (*orderdto.OrderWithShop, error)
	SendFeedback(ctx context.Context, input *orderdto.FeedbackInput) error
}

type Settings struct {
	GatewayKeyID        string
	MinOrderAmount      float64
	NotificationTimeout time.Duration
}

type Deps struct {
	OrderRepo domain.OrderRepository
	ShopRepo  domain.ShopRepository
	FoodRepo  domain.FoodRepository
	UserRepo  domain.UserRepository
	Gateway   domain.PaymentGateway
	Notifier  domain.Notifier
	Mailer    domain.Mailer
	Publisher domain.OrderEventPublisher
	Audit     domain.PaymentAuditLogger
	Caller    *external.Caller
	Logger    *zap.Logger
	Metrics   *metrics.DrovoMetrics
}

type DefaultOrderUsecase struct {
	Deps
	Settings Settings

	Now        func() time.Time
	NewID      func() string
	NewReceipt func() string
}

func NewDefaultOrderUsecase(deps Deps, settings Settings) *DefaultOrderUsecase {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Caller == nil {
		deps.Caller = external.NewCaller(deps.Logger, deps.Metrics)
	}
	if settings.NotificationTimeout <= 0 {
		settings.NotificationTimeout = 30 * time.Second
	}

	receiptID, err := nanoid.Standard(15)
	if err != nil {
		panic(err)
	}

	return &DefaultOrderUsecase{
		Deps:     deps,
		Settings: settings,
		Now:      func() time.Time { return time.Now().UTC() },
		NewID:    func() string { return uuid.New().String() },
		NewReceipt: func() string {
			return "order_rcptid_" + receiptID()
		},
	}
}

func (uc *DefaultOrderUsecase) audit(ctx context.Context, entry domain.PaymentAuditEntry) {
	if uc.Audit == nil {
		return
	}
	entry.Purpose = domain.PurposeOrder
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = uc.Now()
	}
	if err := uc.Audit.LogPayment(ctx, entry); err != nil {
		uc.Logger.Error("failed to write payment audit entry",
			zap.String("outcome", string(entry.Outcome)),
			zap.String("gateway_payment_id", entry.GatewayPaymentID),
			zap.Error(err),
		)
	}
}

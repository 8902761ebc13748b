package setup

import (
	"github.com/drovo/drovo-service/internal/usecase"
	"github.com/drovo/drovo-service/internal/usecase/order"
)

type UseCases struct {
	OrderUsecase        order.OrderUsecase
	ShopUsecase         usecase.ShopUsecase
	FoodUsecase         usecase.FoodUsecase
	CartUsecase         usecase.CartUsecase
	SubscriptionUsecase usecase.SubscriptionUsecase
}

func InitializeUseCases(deps *Dependencies) *UseCases {
	repos := deps.Repositories
	cfg := deps.Config

	orderUsecase := order.NewDefaultOrderUsecase(
		order.Deps{
			OrderRepo: repos.OrderRepo,
			ShopRepo:  repos.ShopRepo,
			FoodRepo:  repos.FoodRepo,
			UserRepo:  repos.UserRepo,
			Gateway:   deps.Gateway,
			Notifier:  deps.Notifier,
			Mailer:    deps.Mailer,
			Publisher: deps.OrderPublisher,
			Audit:     deps.Audit,
			Caller:    deps.Caller,
			Logger:    deps.Logger.Named("orders"),
			Metrics:   deps.Metrics,
		},
		order.Settings{
			GatewayKeyID:        deps.Gateway.KeyID(),
			MinOrderAmount:      cfg.Orders.MinOrderAmount,
			NotificationTimeout: cfg.Orders.NotificationTimeout,
		},
	)

	subscriptionUsecase := usecase.NewDefaultSubscriptionUsecase(
		usecase.SubscriptionDeps{
			ShopRepo: repos.ShopRepo,
			Gateway:  deps.Gateway,
			Images:   deps.Images,
			Cipher:   deps.Cipher,
			Notifier: deps.Notifier,
			Audit:    deps.Audit,
			Caller:   deps.Caller,
			Logger:   deps.Logger.Named("subscriptions"),
			Metrics:  deps.Metrics,
		},
		deps.Gateway.KeyID(),
	)

	return &UseCases{
		OrderUsecase:        orderUsecase,
		ShopUsecase:         usecase.NewDefaultShopUsecase(repos.ShopRepo, repos.FoodRepo, deps.Logger.Named("shops")),
		FoodUsecase:         usecase.NewDefaultFoodUsecase(repos.FoodRepo, deps.Images, deps.Caller, deps.Logger.Named("food")),
		CartUsecase:         usecase.NewDefaultCartUsecase(repos.UserRepo, repos.FoodRepo),
		SubscriptionUsecase: subscriptionUsecase,
	}
}

package handlers

import (
	"net/http"

	"github.com/drovo/drovo-service/internal/domain"
	"github.com/drovo/drovo-service/internal/usecase"
	"github.com/drovo/drovo-service/internal/usecase/order"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Auth          domain.Authenticator
	Food          usecase.FoodUsecase
	Shops         usecase.ShopUsecase
	Cart          usecase.CartUsecase
	Orders        order.OrderUsecase
	Subscriptions usecase.SubscriptionUsecase
	Gatherer      prometheus.Gatherer
	Logger        *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	registerValidators()
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	userAuth := RequireAuth(deps.Auth, userIDKey, logger)
	shopAuth := RequireAuth(deps.Auth, shopIDKey, logger)

	food := NewFoodHandler(deps.Food, logger)
	shops := NewShopHandler(deps.Shops, logger)
	cart := NewCartHandler(deps.Cart, logger)
	orders := NewOrderHandler(deps.Orders, logger)
	payments := NewPaymentHandler(deps.Subscriptions, logger)

	api := r.Group("/api")
	{
		f := api.Group("/food")
		f.POST("/add", shopAuth, food.Add)
		f.POST("/edit/:id", shopAuth, food.Edit)
		f.POST("/remove", shopAuth, food.Remove)
		f.GET("/list", OptionalAuth(deps.Auth, shopIDKey), food.List)
		f.GET("/list/:shopId", food.List)
		f.GET("/:id", shopAuth, food.Get)

		s := api.Group("/shops")
		s.GET("/all", shops.All)
		s.GET("/details", shopAuth, shops.Details)
		s.POST("/preferences", shopAuth, shops.Preferences)
		s.GET("/:shopId", shops.Find)
		s.GET("/:shopId/delivery-quote", shops.DeliveryQuote)

		ct := api.Group("/cart", userAuth)
		ct.POST("/add", cart.Add)
		ct.POST("/remove", cart.Remove)
		ct.POST("/get", cart.Get)

		o := api.Group("/order")
		o.POST("/place", userAuth, orders.Place)
		o.POST("/create-order", userAuth, orders.CreateOrder)
		o.POST("/verify", userAuth, orders.Verify)
		o.POST("/userorders", userAuth, orders.UserOrders)
		o.GET("/list", shopAuth, orders.ShopOrders)
		o.POST("/status", shopAuth, orders.UpdateStatus)
		o.POST("/feedback", orders.Feedback)
		o.GET("/:id", userAuth, orders.Find)

		p := api.Group("/payment", shopAuth)
		p.POST("/create-order", payments.CreateOrder)
		p.POST("/verify", payments.Verify)
		p.POST("/createRenewalOrder", payments.CreateRenewalOrder)
		p.POST("/verifyRenewalPayment", payments.VerifyRenewal)
	}
	return r
}

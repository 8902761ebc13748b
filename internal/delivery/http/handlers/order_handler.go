package handlers

import (
	"time"

	"github.com/drovo/drovo-service/internal/delivery/http/dto/request"
	"github.com/drovo/drovo-service/internal/delivery/http/dto/response"
	"github.com/drovo/drovo-service/internal/usecase/order"
	orderdto "github.com/drovo/drovo-service/internal/usecase/dto/order"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	uc     order.OrderUsecase
	logger *zap.Logger
}

func NewOrderHandler(uc order.OrderUsecase, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: logger}
}

func checkoutInput(buyerID string, req request.Checkout) orderdto.CheckoutInput {
	items := make([]orderdto.CheckoutItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, orderdto.CheckoutItem{FoodID: it.FoodID, Multiplier: it.Multiplier})
	}
	return orderdto.CheckoutInput{
		BuyerID:        buyerID,
		ShopID:         req.ShopID,
		Items:          items,
		DeliveryCharge: req.DeliveryCharge,
		ClientAmount:   req.Amount,
		Address:        req.Address,
	}
}

// Place records a cash-on-delivery order.
func (h *OrderHandler) Place(c *gin.Context) {
	var req request.Checkout
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}
	input := checkoutInput(c.GetString(userIDKey), req)
	out, err := h.uc.PlaceOrder(c.Request.Context(), &input)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	ok(c, "Order Placed", response.PlacedOrder{Order: response.FromOrder(out.Order)})
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req request.Checkout
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}
	input := checkoutInput(c.GetString(userIDKey), req)
	out, err := h.uc.CreateGatewayOrder(c.Request.Context(), &input)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	ok(c, "", response.GatewayOrder{
		Order:              out.GatewayOrder,
		Key:                out.KeyID,
		Amount:             out.Amount,
		DeliveryCharge:     out.DeliveryCharge,
		PlatformCommission: out.Split.PlatformShare,
		ShopShare:          out.Split.ShopShare,
	})
}

func (h *OrderHandler) Verify(c *gin.Context) {
	var req request.VerifyOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}
	out, err := h.uc.VerifyAndPlaceOrder(c.Request.Context(), &orderdto.VerifyPaymentInput{
		Proof:    req.PaymentProof.ToDomain(),
		Checkout: checkoutInput(c.GetString(userIDKey), req.Checkout),
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	message := "Payment verified and order placed"
	if out.Duplicate {
		message = "Payment already processed"
	}
	ok(c, message, response.PlacedOrder{Order: response.FromOrder(out.Order), Duplicate: out.Duplicate})
}

func (h *OrderHandler) UserOrders(c *gin.Context) {
	orders, err := h.uc.GetBuyerOrders(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	ok(c, "", response.FromOrders(orders))
}

func (h *OrderHandler) ShopOrders(c *gin.Context) {
	var q request.ShopOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}
	out, err := h.uc.GetShopOrders(c.Request.Context(), &orderdto.ShopOrdersInput{
		ShopID: c.GetString(shopIDKey),
		Page:   q.Page,
		Limit:  q.Limit,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	ok(c, "", response.ShopOrders{
		Orders: response.FromOrders(out.Orders),
		Pagination: response.Pagination{
			Page:       out.Pagination.Page,
			Limit:      out.Pagination.Limit,
			Total:      out.Pagination.Total,
			TotalPages: out.Pagination.TotalPages,
		},
	})
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req request.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}
	updated, err := h.uc.UpdateOrderStatus(c.Request.Context(), &orderdto.UpdateStatusInput{
		ShopID:  c.GetString(shopIDKey),
		OrderID: req.OrderID,
		Status:  req.Status,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	ok(c, "Status Updated", response.FromOrder(updated))
}

func (h *OrderHandler) Find(c *gin.Context) {
	out, err := h.uc.GetOrderByID(c.Request.Context(), c.GetString(userIDKey), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	ok(c, "", response.OrderWithShop{
		Order: response.FromOrder(out.Order),
		Shop:  response.FromShop(out.Shop, time.Now()),
	})
}

func (h *OrderHandler) Feedback(c *gin.Context) {
	var req request.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}
	err := h.uc.SendFeedback(c.Request.Context(), &orderdto.FeedbackInput{
		ShopID:  req.ShopID,
		Name:    req.Name,
		Email:   req.Email,
		Rating:  req.Rating,
		Message: req.Message,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	ok(c, "Feedback sent successfully", nil)
}

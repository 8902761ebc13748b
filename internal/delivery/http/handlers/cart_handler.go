package handlers

import (
	"github.com/drovo/drovo-service/internal/delivery/http/dto/request"
	"github.com/drovo/drovo-service/internal/usecase"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartHandler struct {
	uc     usecase.CartUsecase
	logger *zap.Logger
}

func NewCartHandler(uc usecase.CartUsecase, logger *zap.Logger) *CartHandler {
	return &CartHandler{uc: uc, logger: logger}
}

func (h *CartHandler) Add(c *gin.Context) {
	var req request.CartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}
	cart, err := h.uc.AddToCart(c.Request.Context(), c.GetString(userIDKey), req.ShopID, req.ItemID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	ok(c, "Added To Cart", cart)
}

func (h *CartHandler) Remove(c *gin.Context) {
	var req request.CartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}
	cart, err := h.uc.RemoveFromCart(c.Request.Context(), c.GetString(userIDKey), req.ShopID, req.ItemID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	ok(c, "Removed From Cart", cart)
}

func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.uc.GetCart(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	ok(c, "", cart)
}

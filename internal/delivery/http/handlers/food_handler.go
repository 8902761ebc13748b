package handlers

import (
	"github.com/drovo/drovo-service/internal/delivery/http/dto/request"
	"github.com/drovo/drovo-service/internal/delivery/http/dto/response"
	"github.com/drovo/drovo-service/internal/domain"
	"github.com/drovo/drovo-service/internal/usecase"
	fooddto "github.com/drovo/drovo-service/internal/usecase/dto/food"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FoodHandler struct {
	uc     usecase.FoodUsecase
	logger *zap.Logger
}

func NewFoodHandler(uc usecase.FoodUsecase, logger *zap.Logger) *FoodHandler {
	return &FoodHandler{uc: uc, logger: logger}
}

func (h *FoodHandler) Add(c *gin.Context) {
	var req request.FoodRequest
	if err := c.ShouldBind(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}
	image, err := imageFrom(c, "image", req.Image)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	input := &fooddto.CreateFoodInput{
		ShopID:      c.GetString(shopIDKey),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Unit:        domain.Unit(req.Unit),
		Image:       image,
	}
	if req.Price != nil {
		input.Price = *req.Price
	}
	if req.Quantity != nil {
		input.Quantity = *req.Quantity
	}

	food, err := h.uc.AddFood(c.Request.Context(), input)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	ok(c, "Food Added", response.FromFood(food))
}

func (h *FoodHandler) Edit(c *gin.Context) {
	var req request.FoodRequest
	if err := c.ShouldBind(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}
	image, err := imageFrom(c, "image", req.Image)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	input := &fooddto.UpdateFoodInput{
		ShopID:      c.GetString(shopIDKey),
		FoodID:      c.Param("id"),
		Name:        &req.Name,
		Description: &req.Description,
		Price:       req.Price,
		Category:    &req.Category,
		Quantity:    req.Quantity,
		Image:       image,
	}
	if req.Unit != "" {
		unit := domain.Unit(req.Unit)
		input.Unit = &unit
	}

	food, err := h.uc.EditFood(c.Request.Context(), input)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	ok(c, "Food item updated successfully.", response.FromFood(food))
}

func (h *FoodHandler) Remove(c *gin.Context) {
	var req request.RemoveFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}
	if err := h.uc.RemoveFood(c.Request.Context(), c.GetString(shopIDKey), req.ID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	ok(c, "Food Removed", nil)
}

// List serves both the public /food/list/:shopId and the shop's own /food/list.
func (h *FoodHandler) List(c *gin.Context) {
	shopID := c.Param("shopId")
	if shopID == "" {
		shopID = c.GetString(shopIDKey)
	}
	if shopID == "" {
		writeError(c, h.logger, domain.NewValidationError("Shop ID or valid token is required"))
		return
	}
	foods, err := h.uc.ListFood(c.Request.Context(), shopID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	ok(c, "", response.FromFoods(foods))
}

func (h *FoodHandler) Get(c *gin.Context) {
	food, err := h.uc.GetFood(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	ok(c, "", response.FromFood(food))
}

package handlers

import (
	"strconv"
	"time"

	"github.com/drovo/drovo-service/internal/delivery/http/dto/request"
	"github.com/drovo/drovo-service/internal/delivery/http/dto/response"
	"github.com/drovo/drovo-service/internal/domain"
	"github.com/drovo/drovo-service/internal/usecase"
	shopdto "github.com/drovo/drovo-service/internal/usecase/dto/shop"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ShopHandler struct {
	uc     usecase.ShopUsecase
	logger *zap.Logger
	now    func() time.Time
}

func NewShopHandler(uc usecase.ShopUsecase, logger *zap.Logger) *ShopHandler {
	return &ShopHandler{uc: uc, logger: logger, now: time.Now}
}

func (h *ShopHandler) All(c *gin.Context) {
	var q request.NearbyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}
	input := &shopdto.NearbyInput{RadiusKm: q.Radius}
	var err error
	if input.Latitude, err = parseCoordinate(q.Latitude, "latitude"); err != nil {
		writeError(c, h.logger, err)
		return
	}
	if input.Longitude, err = parseCoordinate(q.Longitude, "longitude"); err != nil {
		writeError(c, h.logger, err)
		return
	}

	shops, err := h.uc.FindNearby(c.Request.Context(), input)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	ok(c, "", response.FromShopsWithDistance(shops, h.now()))
}

func (h *ShopHandler) Details(c *gin.Context) {
	shop, err := h.uc.GetShop(c.Request.Context(), c.GetString(shopIDKey))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	ok(c, "", response.FromShop(shop, h.now()))
}

func (h *ShopHandler) Find(c *gin.Context) {
	catalog, err := h.uc.GetShopWithCatalog(c.Request.Context(), c.Param("shopId"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	ok(c, "", response.ShopCatalog{
		Shop:      response.FromShop(catalog.Shop, h.now()),
		FoodItems: response.FromFoods(catalog.Foods),
		Coordinates: response.Coordinates{
			Lat: catalog.Shop.Address.Latitude,
			Lng: catalog.Shop.Address.Longitude,
		},
	})
}

func (h *ShopHandler) DeliveryQuote(c *gin.Context) {
	var q request.DeliveryQuoteQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}
	quote, err := h.uc.DeliveryQuote(c.Request.Context(), c.Param("shopId"), *q.Latitude, *q.Longitude)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	ok(c, "", response.DeliveryQuote{DistanceKm: quote.DistanceKm, DeliveryCharge: quote.DeliveryCharge})
}

func (h *ShopHandler) Preferences(c *gin.Context) {
	var req request.PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}
	shop, err := h.uc.UpdatePreferences(c.Request.Context(), &shopdto.PreferencesInput{
		ShopID:    c.GetString(shopIDKey),
		PushOptIn: req.PushOptIn,
		PushToken: req.PushToken,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	ok(c, "Preferences updated", response.FromShop(shop, h.now()))
}

func parseCoordinate(raw, name string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, domain.NewValidationError("Invalid " + name)
	}
	return &v, nil
}

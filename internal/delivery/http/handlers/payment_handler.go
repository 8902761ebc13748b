package handlers

import (
	"context"
	"time"

	"github.com/drovo/drovo-service/internal/delivery/http/dto/request"
	"github.com/drovo/drovo-service/internal/delivery/http/dto/response"
	"github.com/drovo/drovo-service/internal/domain"
	"github.com/drovo/drovo-service/internal/usecase"
	shopdto "github.com/drovo/drovo-service/internal/usecase/dto/shop"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler serves the shop subscription payments.
type PaymentHandler struct {
	uc     usecase.SubscriptionUsecase
	logger *zap.Logger
}

func NewPaymentHandler(uc usecase.SubscriptionUsecase, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{uc: uc, logger: logger}
}

func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	h.createPlanOrder(c, h.uc.CreateSubscriptionOrder)
}

func (h *PaymentHandler) CreateRenewalOrder(c *gin.Context) {
	h.createPlanOrder(c, h.uc.CreateRenewalOrder)
}

func (h *PaymentHandler) createPlanOrder(c *gin.Context, create func(ctx context.Context, shopID string, plan domain.PlanCode) (*shopdto.SubscriptionOrderOutput, error)) {
	var req request.PlanOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}
	out, err := create(c.Request.Context(), c.GetString(shopIDKey), domain.PlanCode(req.Subscription))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	ok(c, "", response.SubscriptionOrder{
		Order:        out.GatewayOrder,
		Key:          out.KeyID,
		Subscription: string(out.Plan),
		DurationDays: out.DurationDays,
	})
}

// Verify completes the shop setup after the onboarding payment.
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req request.SetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}
	image, err := imageFrom(c, "shopImage", req.ShopImage)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	shop, err := h.uc.CompleteShopSetup(c.Request.Context(), &shopdto.SetupInput{
		ShopID: c.GetString(shopIDKey),
		Plan:   domain.PlanCode(req.Subscription),
		Proof:  req.PaymentProof.ToDomain(),
		Name:   req.Name,
		Phone:  req.Phone,
		Address: domain.Address{
			Street:     req.Address,
			Street2:    req.Address2,
			City:       req.City,
			State:      req.State,
			PostalCode: req.PostalCode,
			Latitude:   req.Latitude,
			Longitude:  req.Longitude,
		},
		PAN: req.PAN,
		BankDetails: domain.BankDetails{
			AccountHolderName: req.AccountHolderName,
			AccountNumber:     req.AccountNumber,
			IFSCCode:          req.IFSCCode,
			BankName:          req.BankName,
		},
		Image: image,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	ok(c, "Payment verified successfully and shop setup completed.", response.FromShop(shop, time.Now()))
}

func (h *PaymentHandler) VerifyRenewal(c *gin.Context) {
	var req request.RenewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}
	shop, err := h.uc.RenewSubscription(c.Request.Context(), &shopdto.RenewInput{
		ShopID: c.GetString(shopIDKey),
		Plan:   domain.PlanCode(req.Subscription),
		Proof:  req.PaymentProof.ToDomain(),
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	ok(c, "Subscription renewed successfully.", response.FromShop(shop, time.Now()))
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/drovo/drovo-service/internal/delivery/http/dto/response"
	"github.com/drovo/drovo-service/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const genericMessage = "Something went wrong"

var errorStatuses = []struct {
	err     error
	status  int
	message string
}{
	{domain.ErrInvalidStatus, http.StatusBadRequest, "Invalid order status"},
	{domain.ErrInvalidTransition, http.StatusBadRequest, "Order status cannot move backwards"},
	{domain.ErrInvalidPlan, http.StatusBadRequest, "Invalid subscription plan"},
	{domain.ErrTokenExpired, http.StatusUnauthorized, "Token expired"},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "Unauthorized"},
	{domain.ErrForbidden, http.StatusForbidden, "Forbidden"},
	{domain.ErrNotFound, http.StatusNotFound, "Not found"},
	{domain.ErrInvalidSignature, http.StatusBadRequest, "Invalid payment signature"},
	{domain.ErrShopNotOnboarded, http.StatusBadRequest, "Shop has not completed payment setup"},
	{domain.ErrShopInactive, http.StatusForbidden, "Shop subscription is not active"},
	{domain.ErrDuplicatePayment, http.StatusConflict, "Payment already recorded"},
	{domain.ErrPaymentMismatch, http.StatusBadRequest, "Payment does not match this order"},
	{domain.ErrGatewayUnavailable, http.StatusServiceUnavailable, "Payment gateway unavailable, please retry"},
	{domain.ErrGateway, http.StatusBadGateway, "Payment gateway rejected the request"},
	{domain.ErrImageStore, http.StatusBadGateway, "Image upload failed"},
	{domain.ErrNotificationFailed, http.StatusBadGateway, "Failed to send message"},
}

// classify maps an error to the status and the message shown to clients.
// Unknown errors get a generic message.
func classify(err error) (int, string) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, verr.Message
	}
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status, e.message
		}
	}
	if errors.Is(err, domain.ErrValidation) {
		return http.StatusBadRequest, "Invalid request"
	}
	return http.StatusInternalServerError, genericMessage
}

func writeError(c *gin.Context, logger *zap.Logger, err error) {
	status, message := classify(err)
	fields := []zap.Field{
		zap.String("method", c.Request.Method),
		zap.String("route", c.FullPath()),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", fields...)
	} else {
		logger.Debug("request rejected", fields...)
	}
	c.AbortWithStatusJSON(status, response.Envelope{Success: false, Message: message})
}

// bindError turns a binding failure into a ValidationError naming the fields.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewValidationError("malformed request body")
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return domain.NewValidationError(strings.Join(msgs, "; "))
}

func ok(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, response.Envelope{Success: true, Message: message, Data: data})
}

package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrInvalidPlan        = errors.New("invalid subscription plan")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrTokenExpired       = errors.New("token expired")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidSignature   = errors.New("invalid payment signature")
	ErrShopNotOnboarded   = errors.New("shop has no payout account")
	ErrShopInactive       = errors.New("shop subscription is not active")
	ErrDuplicatePayment   = errors.New("payment already recorded")
	ErrPaymentMismatch    = errors.New("payment does not match the paid order")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrGateway            = errors.New("payment gateway rejected request")
	ErrImageStore         = errors.New("image store failure")
	ErrNotificationFailed = errors.New("notification delivery failed")
	ErrEncryptionConfig   = errors.New("invalid encryption configuration")
	ErrDecryption         = errors.New("failed to decrypt bank details")
)

// ValidationError carries a user-facing message and matches ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

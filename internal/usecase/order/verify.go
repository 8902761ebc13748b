package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/drovo/drovo-service/internal/domain"
	orderdto "github.com/drovo/drovo-service/internal/usecase/dto/order"
	"github.com/drovo/drovo-service/internal/usecase/external"
	"go.uber.org/zap"
)

// VerifyAndPlaceOrder checks the gateway signature and records a paid order.
// Repeating it for the same payment returns the order recorded first.
func (uc *DefaultOrderUsecase) VerifyAndPlaceOrder(ctx context.Context, input *orderdto.VerifyPaymentInput) (*orderdto.PlaceOrderOutput, error) {
	proof := input.Proof
	if proof.GatewayOrderID == "" || proof.GatewayPaymentID == "" || proof.Signature == "" {
		return nil, domain.NewValidationError("payment order id, payment id and signature are required")
	}
	if err := validateAddress(input.Checkout.Address); err != nil {
		return nil, err
	}

	entry := domain.PaymentAuditEntry{
		GatewayOrderID:   proof.GatewayOrderID,
		GatewayPaymentID: proof.GatewayPaymentID,
		SubjectID:        input.Checkout.BuyerID,
	}

	if err := uc.Gateway.VerifySignature(proof); err != nil {
		entry.Outcome = domain.OutcomeRejected
		entry.Detail = err.Error()
		uc.audit(ctx, entry)
		uc.Metrics.RecordVerification(string(domain.PurposeOrder), string(domain.OutcomeRejected))
		uc.Logger.Warn("payment signature rejected",
			zap.String("gateway_order_id", proof.GatewayOrderID),
			zap.String("gateway_payment_id", proof.GatewayPaymentID),
		)
		return nil, domain.ErrInvalidSignature
	}
	entry.Outcome = domain.OutcomeVerified
	uc.audit(ctx, entry)
	uc.Metrics.RecordVerification(string(domain.PurposeOrder), string(domain.OutcomeVerified))

	if existing, err := uc.existingPayment(ctx, proof.GatewayPaymentID); err != nil {
		return nil, err
	} else if existing != nil {
		uc.recordDuplicate(ctx, entry, existing)
		return &orderdto.PlaceOrderOutput{Order: existing, Duplicate: true}, nil
	}

	// The buyer has paid, so a shop that lapsed since checkout still gets the order.
	priced, err := uc.priceCheckout(ctx, &input.Checkout, shopRequirements{})
	if err != nil {
		return nil, err
	}
	if err := uc.matchGatewayOrder(ctx, entry, &input.Checkout, priced); err != nil {
		return nil, err
	}

	order := uc.newOrder(&input.Checkout, priced, domain.PaymentOnline, domain.PaymentCompleted)
	paidAt := uc.Now()
	order.PaymentDetails.GatewayOrderID = proof.GatewayOrderID
	order.PaymentDetails.GatewayPaymentID = proof.GatewayPaymentID
	order.PaymentDetails.PaidAt = &paidAt

	if err := uc.OrderRepo.CreateOrder(ctx, order); err != nil {
		if errors.Is(err, domain.ErrDuplicatePayment) {
			existing, lookupErr := uc.existingPayment(ctx, proof.GatewayPaymentID)
			if lookupErr == nil && existing != nil {
				uc.recordDuplicate(ctx, entry, existing)
				return &orderdto.PlaceOrderOutput{Order: existing, Duplicate: true}, nil
			}
		}
		entry.Outcome = domain.OutcomePersistFailed
		entry.Detail = err.Error()
		uc.audit(ctx, entry)
		return nil, fmt.Errorf("create order: %w", err)
	}

	entry.Outcome = domain.OutcomePersisted
	entry.Detail = order.ID
	uc.audit(ctx, entry)

	uc.afterCommit(ctx, order, priced.shop)
	return &orderdto.PlaceOrderOutput{Order: order}, nil
}

// matchGatewayOrder fetches the paid gateway order and checks that it was
// created for this buyer, shop, basket and total.
func (uc *DefaultOrderUsecase) matchGatewayOrder(ctx context.Context, entry domain.PaymentAuditEntry, in *orderdto.CheckoutInput, priced *pricedCheckout) error {
	var paid *domain.GatewayOrder
	err := uc.Caller.Do(ctx, external.LoadBearing, "gateway.fetch_order", func(ctx context.Context) error {
		var err error
		paid, err = uc.Gateway.FetchOrder(ctx, entry.GatewayOrderID)
		return err
	})
	if err != nil {
		return err
	}

	total := domain.ComputeSplit(priced.amount, priced.deliveryCharge).TotalMinorUnits
	want := gatewayNotes(in.BuyerID, priced)
	var mismatch string
	switch {
	case paid.ID != entry.GatewayOrderID:
		mismatch = "gateway order id"
	case paid.Amount != total:
		mismatch = fmt.Sprintf("amount %d, basket prices to %d", paid.Amount, total)
	default:
		for _, key := range []string{domain.NotePurpose, domain.NoteBuyerID, domain.NoteShopID, domain.NoteBasket} {
			if paid.Notes[key] != want[key] {
				mismatch = key
				break
			}
		}
	}
	if mismatch == "" {
		return nil
	}

	entry.Outcome = domain.OutcomeRejected
	entry.Detail = "mismatch: " + mismatch
	uc.audit(ctx, entry)
	uc.Metrics.RecordVerification(string(domain.PurposeOrder), "mismatch")
	uc.Logger.Warn("paid gateway order does not match checkout",
		zap.String("gateway_order_id", entry.GatewayOrderID),
		zap.String("buyer_id", in.BuyerID),
		zap.String("shop_id", priced.shop.ID),
		zap.String("mismatch", mismatch),
	)
	return domain.ErrPaymentMismatch
}

func (uc *DefaultOrderUsecase) existingPayment(ctx context.Context, paymentID string) (*domain.Order, error) {
	existing, err := uc.OrderRepo.GetOrderByGatewayPaymentID(ctx, paymentID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup payment: %w", err)
	}
	return existing, nil
}

func (uc *DefaultOrderUsecase) recordDuplicate(ctx context.Context, entry domain.PaymentAuditEntry, existing *domain.Order) {
	entry.Outcome = domain.OutcomeDuplicate
	entry.Detail = existing.ID
	uc.audit(ctx, entry)
	uc.Metrics.RecordDuplicatePayment()
	uc.Logger.Info("payment already recorded",
		zap.String("gateway_payment_id", entry.GatewayPaymentID),
		zap.String("order_id", existing.ID),
	)
}

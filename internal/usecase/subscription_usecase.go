package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/drovo/drovo-service/internal/domain"
	"github.com/drovo/drovo-service/internal/infrastructure/metrics"
	shopdto "github.com/drovo/drovo-service/internal/usecase/dto/shop"
	"github.com/drovo/drovo-service/internal/usecase/external"
	"github.com/jaevor/go-nanoid"
	"go.uber.org/zap"
)

type SubscriptionUsecase interface {
	CreateSubscriptionOrder(ctx context.Context, shopID string, plan domain.PlanCode) (*shopdto.SubscriptionOrderOutput, error)
	CreateRenewalOrder(ctx context.Context, shopID string, plan domain.PlanCode) (*shopdto.SubscriptionOrderOutput, error)
	CompleteShopSetup(ctx context.Context, input *shopdto.SetupInput) (*domain.Shop, error)
	RenewSubscription(ctx context.Context, input *shopdto.RenewInput) (*domain.Shop, error)
	RemindExpiringSubscriptions(ctx context.Context, window time.Duration) (int, error)
}

type SubscriptionDeps struct {
	ShopRepo domain.ShopRepository
	Gateway  domain.PaymentGateway
	Images   domain.ImageStore
	Cipher   domain.BankDetailsCipher
	Notifier domain.Notifier
	Audit    domain.PaymentAuditLogger
	Caller   *external.Caller
	Logger   *zap.Logger
	Metrics  *metrics.DrovoMetrics
}

type DefaultSubscriptionUsecase struct {
	SubscriptionDeps
	GatewayKeyID string

	Now        func() time.Time
	NewReceipt func(prefix string) string

	mu       sync.Mutex
	reminded map[string]time.Time
}

func NewDefaultSubscriptionUsecase(deps SubscriptionDeps, gatewayKeyID string) *DefaultSubscriptionUsecase {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Caller == nil {
		deps.Caller = external.NewCaller(deps.Logger, deps.Metrics)
	}
	receiptID, err := nanoid.Standard(15)
	if err != nil {
		panic(err)
	}
	return &DefaultSubscriptionUsecase{
		SubscriptionDeps: deps,
		GatewayKeyID:     gatewayKeyID,
		Now:              func() time.Time { return time.Now().UTC() },
		NewReceipt: func(prefix string) string {
			return prefix + "_rcptid_" + receiptID()
		},
		reminded: make(map[string]time.Time),
	}
}

func (uc *DefaultSubscriptionUsecase) CreateSubscriptionOrder(ctx context.Context, shopID string, plan domain.PlanCode) (*shopdto.SubscriptionOrderOutput, error) {
	return uc.createPlanOrder(ctx, shopID, plan, domain.PurposeOnboarding, "order")
}

func (uc *DefaultSubscriptionUsecase) CreateRenewalOrder(ctx context.Context, shopID string, plan domain.PlanCode) (*shopdto.SubscriptionOrderOutput, error) {
	return uc.createPlanOrder(ctx, shopID, plan, domain.PurposeRenewal, "renewal")
}

func (uc *DefaultSubscriptionUsecase) createPlanOrder(ctx context.Context, shopID string, plan domain.PlanCode, purpose domain.PaymentPurpose, receiptPrefix string) (*shopdto.SubscriptionOrderOutput, error) {
	if shopID == "" {
		return nil, domain.ErrUnauthenticated
	}
	days, err := plan.DurationDays()
	if err != nil {
		return nil, err
	}
	amount, err := plan.PriceMinorUnits()
	if err != nil {
		return nil, err
	}

	req := domain.GatewayOrderRequest{
		AmountMinorUnits: amount,
		Currency:         domain.CurrencyINR,
		Receipt:          uc.NewReceipt(receiptPrefix),
		Notes:            planNotes(shopID, plan, purpose),
	}
	var order *domain.GatewayOrder
	err = uc.Caller.Do(ctx, external.LoadBearing, "gateway.create_order", func(ctx context.Context) error {
		var err error
		order, err = uc.Gateway.CreateOrder(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.Logger.Info("subscription order created",
		zap.String("shop_id", shopID),
		zap.String("plan", string(plan)),
		zap.String("gateway_order_id", order.ID),
		zap.String("receipt", req.Receipt),
	)
	return &shopdto.SubscriptionOrderOutput{
		GatewayOrder: order,
		KeyID:        uc.GatewayKeyID,
		Plan:         plan,
		DurationDays: days,
	}, nil
}

// CompleteShopSetup verifies the onboarding payment, creates the payout
// account and stores the shop profile. Local work runs before the payout
// account is created, and the account id is saved as soon as it exists so a
// retry reuses it.
func (uc *DefaultSubscriptionUsecase) CompleteShopSetup(ctx context.Context, input *shopdto.SetupInput) (*domain.Shop, error) {
	days, err := input.Plan.DurationDays()
	if err != nil {
		return nil, err
	}
	if err := validateSetup(input); err != nil {
		return nil, err
	}
	if err := uc.verify(ctx, domain.PurposeOnboarding, input.ShopID, input.Plan, input.Proof); err != nil {
		return nil, err
	}

	shop, err := uc.ShopRepo.GetShopByID(ctx, input.ShopID)
	if err != nil {
		return nil, fmt.Errorf("load shop: %w", err)
	}
	if err := uc.checkReplay(ctx, domain.PurposeOnboarding, shop, input.Proof); err != nil {
		return nil, err
	}

	newImage := ""
	if input.Image != nil {
		err = uc.Caller.Do(ctx, external.LoadBearing, "images.upload", func(ctx context.Context) error {
			var err error
			newImage, err = uc.Images.Upload(ctx, input.Image, domain.FolderShop)
			return err
		})
		if err != nil {
			return nil, err
		}
	}
	abandon := func() {
		if newImage != "" {
			uc.dropImage(ctx, newImage)
		}
	}

	envelope, err := uc.Cipher.Encrypt(input.BankDetails)
	if err != nil {
		abandon()
		return nil, fmt.Errorf("encrypt bank details: %w", err)
	}

	if shop.GatewayAccountID == "" {
		accountID, err := uc.createSubAccount(ctx, shop, input)
		if err != nil {
			abandon()
			return nil, err
		}
		shop.GatewayAccountID = accountID
	}

	now := uc.Now()
	end := now.AddDate(0, 0, days)
	oldImage := shop.ImageURL

	shop.Name = strings.TrimSpace(input.Name)
	shop.Phone = input.Phone
	shop.Address = input.Address
	if newImage != "" {
		shop.ImageURL = newImage
	}
	shop.BankDetails = envelope
	shop.Subscription = input.Plan
	shop.SubscriptionEndDate = &end
	shop.IsSetupComplete = true
	shop.LastPayment = domain.SubscriptionPayment{
		GatewayOrderID:   input.Proof.GatewayOrderID,
		GatewayPaymentID: input.Proof.GatewayPaymentID,
		PaidAt:           &now,
	}
	shop.UpdatedAt = now

	if err := uc.applyPayment(ctx, domain.PurposeOnboarding, shop, input.Proof); err != nil {
		abandon()
		return nil, err
	}
	if newImage != "" && oldImage != "" {
		uc.dropImage(ctx, oldImage)
	}

	uc.auditEntry(ctx, domain.PurposeOnboarding, domain.OutcomePersisted, shop.ID, input.Proof, "")
	uc.Metrics.RecordSubscription(string(input.Plan), "onboarding")
	uc.Logger.Info("shop setup complete",
		zap.String("shop_id", shop.ID),
		zap.String("plan", string(input.Plan)),
		zap.Time("subscription_end", end),
	)
	return shop, nil
}

// createSubAccount opens the payout account and stores its id straight away.
func (uc *DefaultSubscriptionUsecase) createSubAccount(ctx context.Context, shop *domain.Shop, input *shopdto.SetupInput) (string, error) {
	req := domain.SubAccountRequest{
		Email:             shop.Email,
		Phone:             input.Phone,
		LegalBusinessName: input.Name,
		ContactName:       input.BankDetails.AccountHolderName,
		ReferenceID:       shop.ID,
		Address:           input.Address,
		PAN:               input.PAN,
	}
	var accountID string
	err := uc.Caller.Do(ctx, external.LoadBearing, "gateway.create_sub_account", func(ctx context.Context) error {
		var err error
		accountID, err = uc.Gateway.CreateSubAccount(ctx, req)
		return err
	})
	if err != nil {
		uc.auditEntry(ctx, domain.PurposeOnboarding, domain.OutcomePersistFailed, shop.ID, input.Proof, err.Error())
		return "", err
	}

	if err := uc.ShopRepo.SetGatewayAccountID(ctx, shop.ID, accountID); err != nil {
		uc.Logger.Error("payout account created but not saved",
			zap.String("shop_id", shop.ID),
			zap.String("gateway_account_id", accountID),
			zap.Error(err),
		)
		uc.auditEntry(ctx, domain.PurposeOnboarding, domain.OutcomePersistFailed, shop.ID, input.Proof, "save account "+accountID+": "+err.Error())
		return "", fmt.Errorf("save gateway account: %w", err)
	}
	uc.Logger.Info("payout account created",
		zap.String("shop_id", shop.ID),
		zap.String("gateway_account_id", accountID),
	)
	return accountID, nil
}

// RenewSubscription extends the subscription from now. Bank and account
// fields are left alone.
func (uc *DefaultSubscriptionUsecase) RenewSubscription(ctx context.Context, input *shopdto.RenewInput) (*domain.Shop, error) {
	days, err := input.Plan.DurationDays()
	if err != nil {
		return nil, err
	}
	if err := checkProof(input.Proof); err != nil {
		return nil, err
	}
	if err := uc.verify(ctx, domain.PurposeRenewal, input.ShopID, input.Plan, input.Proof); err != nil {
		return nil, err
	}

	shop, err := uc.ShopRepo.GetShopByID(ctx, input.ShopID)
	if err != nil {
		return nil, fmt.Errorf("load shop: %w", err)
	}
	if err := uc.checkReplay(ctx, domain.PurposeRenewal, shop, input.Proof); err != nil {
		return nil, err
	}

	now := uc.Now()
	end := now.AddDate(0, 0, days)
	shop.Subscription = input.Plan
	shop.SubscriptionEndDate = &end
	shop.LastPayment = domain.SubscriptionPayment{
		GatewayOrderID:   input.Proof.GatewayOrderID,
		GatewayPaymentID: input.Proof.GatewayPaymentID,
		PaidAt:           &now,
	}
	shop.UpdatedAt = now

	if err := uc.applyPayment(ctx, domain.PurposeRenewal, shop, input.Proof); err != nil {
		return nil, err
	}

	uc.auditEntry(ctx, domain.PurposeRenewal, domain.OutcomePersisted, shop.ID, input.Proof, "")
	uc.Metrics.RecordSubscription(string(input.Plan), "renewal")
	uc.Logger.Info("subscription renewed",
		zap.String("shop_id", shop.ID),
		zap.String("plan", string(input.Plan)),
		zap.Time("subscription_end", end),
	)
	return shop, nil
}

// checkReplay rejects a payment already applied to the shop. The
// subscription_payments key catches the rest when the shop is written.
func (uc *DefaultSubscriptionUsecase) checkReplay(ctx context.Context, purpose domain.PaymentPurpose, shop *domain.Shop, proof domain.PaymentProof) error {
	if shop.LastPayment.GatewayPaymentID != proof.GatewayPaymentID {
		return nil
	}
	uc.duplicate(ctx, purpose, shop.ID, proof)
	return domain.ErrDuplicatePayment
}

func (uc *DefaultSubscriptionUsecase) applyPayment(ctx context.Context, purpose domain.PaymentPurpose, shop *domain.Shop, proof domain.PaymentProof) error {
	err := uc.ShopRepo.ApplySubscriptionPayment(ctx, shop, purpose)
	if errors.Is(err, domain.ErrDuplicatePayment) {
		uc.duplicate(ctx, purpose, shop.ID, proof)
		return err
	}
	if err != nil {
		uc.auditEntry(ctx, purpose, domain.OutcomePersistFailed, shop.ID, proof, err.Error())
		return fmt.Errorf("update shop: %w", err)
	}
	return nil
}

func (uc *DefaultSubscriptionUsecase) duplicate(ctx context.Context, purpose domain.PaymentPurpose, shopID string, proof domain.PaymentProof) {
	uc.auditEntry(ctx, purpose, domain.OutcomeDuplicate, shopID, proof, "")
	uc.Metrics.RecordDuplicatePayment()
	uc.Logger.Warn("subscription payment already applied",
		zap.String("shop_id", shopID),
		zap.String("gateway_payment_id", proof.GatewayPaymentID),
	)
}

// RemindExpiringSubscriptions notifies shops whose subscription ends within
// window. A shop is reminded once per subscription end date.
func (uc *DefaultSubscriptionUsecase) RemindExpiringSubscriptions(ctx context.Context, window time.Duration) (int, error) {
	now := uc.Now()
	shops, err := uc.ShopRepo.GetShopsExpiringBetween(ctx, now, now.Add(window))
	if err != nil {
		return 0, fmt.Errorf("load expiring shops: %w", err)
	}

	uc.mu.Lock()
	for id, end := range uc.reminded {
		if end.Before(now) {
			delete(uc.reminded, id)
		}
	}
	uc.mu.Unlock()

	sent := 0
	for _, shop := range shops {
		if shop.SubscriptionEndDate == nil || uc.alreadyReminded(shop) {
			continue
		}
		if uc.Notifier == nil {
			break
		}
		subject := "Your Drovo subscription is ending soon"
		body := fmt.Sprintf("Hi %s,\nyour subscription ends on %s. Renew it to keep receiving orders.\n",
			shop.Name, shop.SubscriptionEndDate.Format("02 Jan 2006"))

		var report domain.DeliveryReport
		_ = uc.Caller.Do(ctx, external.BestEffort, "notify.subscription_reminder", func(ctx context.Context) error {
			report = uc.Notifier.Notify(ctx, shop.NotificationTarget(), subject, body)
			if !report.Any() {
				return domain.ErrNotificationFailed
			}
			return nil
		})
		if !report.Any() {
			continue
		}

		uc.mu.Lock()
		uc.reminded[shop.ID] = *shop.SubscriptionEndDate
		uc.mu.Unlock()
		sent++
	}
	return sent, nil
}

func (uc *DefaultSubscriptionUsecase) alreadyReminded(shop *domain.Shop) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	end, ok := uc.reminded[shop.ID]
	return ok && end.Equal(*shop.SubscriptionEndDate)
}

// verify checks the signature and that the paid gateway order was created
// for this shop, plan and purpose.
func (uc *DefaultSubscriptionUsecase) verify(ctx context.Context, purpose domain.PaymentPurpose, shopID string, plan domain.PlanCode, proof domain.PaymentProof) error {
	if err := uc.Gateway.VerifySignature(proof); err != nil {
		uc.auditEntry(ctx, purpose, domain.OutcomeRejected, shopID, proof, err.Error())
		uc.Metrics.RecordVerification(string(purpose), string(domain.OutcomeRejected))
		uc.Logger.Warn("subscription payment signature rejected",
			zap.String("shop_id", shopID),
			zap.String("gateway_payment_id", proof.GatewayPaymentID),
		)
		return domain.ErrInvalidSignature
	}
	uc.auditEntry(ctx, purpose, domain.OutcomeVerified, shopID, proof, "")
	uc.Metrics.RecordVerification(string(purpose), string(domain.OutcomeVerified))

	var paid *domain.GatewayOrder
	err := uc.Caller.Do(ctx, external.LoadBearing, "gateway.fetch_order", func(ctx context.Context) error {
		var err error
		paid, err = uc.Gateway.FetchOrder(ctx, proof.GatewayOrderID)
		return err
	})
	if err != nil {
		return err
	}

	price, err := plan.PriceMinorUnits()
	if err != nil {
		return err
	}
	want := planNotes(shopID, plan, purpose)
	mismatch := ""
	switch {
	case paid.ID != proof.GatewayOrderID:
		mismatch = "gateway order id"
	case paid.Amount != price:
		mismatch = fmt.Sprintf("amount %d, plan costs %d", paid.Amount, price)
	default:
		for _, key := range []string{domain.NotePurpose, domain.NoteShopID, domain.NotePlan} {
			if paid.Notes[key] != want[key] {
				mismatch = key
				break
			}
		}
	}
	if mismatch == "" {
		return nil
	}

	uc.auditEntry(ctx, purpose, domain.OutcomeRejected, shopID, proof, "mismatch: "+mismatch)
	uc.Metrics.RecordVerification(string(purpose), "mismatch")
	uc.Logger.Warn("paid gateway order does not match subscription",
		zap.String("shop_id", shopID),
		zap.String("plan", string(plan)),
		zap.String("gateway_order_id", proof.GatewayOrderID),
		zap.String("mismatch", mismatch),
	)
	return domain.ErrPaymentMismatch
}

func planNotes(shopID string, plan domain.PlanCode, purpose domain.PaymentPurpose) map[string]string {
	return map[string]string{
		domain.NotePurpose: string(purpose),
		domain.NoteShopID:  shopID,
		domain.NotePlan:    string(plan),
	}
}

func (uc *DefaultSubscriptionUsecase) auditEntry(ctx context.Context, purpose domain.PaymentPurpose, outcome domain.AuditOutcome, shopID string, proof domain.PaymentProof, detail string) {
	if uc.Audit == nil {
		return
	}
	err := uc.Audit.LogPayment(ctx, domain.PaymentAuditEntry{
		Purpose:          purpose,
		Outcome:          outcome,
		GatewayOrderID:   proof.GatewayOrderID,
		GatewayPaymentID: proof.GatewayPaymentID,
		SubjectID:        shopID,
		Detail:           detail,
		CreatedAt:        uc.Now(),
	})
	if err != nil {
		uc.Logger.Error("failed to write payment audit entry", zap.String("shop_id", shopID), zap.Error(err))
	}
}

func (uc *DefaultSubscriptionUsecase) dropImage(ctx context.Context, url string) {
	_ = uc.Caller.Do(ctx, external.BestEffort, "images.delete", func(ctx context.Context) error {
		return uc.Images.Delete(ctx, url)
	})
}

func checkProof(p domain.PaymentProof) error {
	if p.GatewayOrderID == "" || p.GatewayPaymentID == "" || p.Signature == "" {
		return domain.NewValidationError("payment order id, payment id and signature are required")
	}
	return nil
}

func validateSetup(in *shopdto.SetupInput) error {
	if in.ShopID == "" {
		return domain.ErrUnauthenticated
	}
	if err := checkProof(in.Proof); err != nil {
		return err
	}
	switch {
	case strings.TrimSpace(in.Name) == "":
		return domain.NewValidationError("shop name is required")
	case !domain.IsValidPhone(in.Phone):
		return domain.NewValidationError("phone must be 10 digits")
	case !domain.IsValidPAN(in.PAN):
		return domain.NewValidationError("invalid PAN")
	case in.Address.Street == "":
		return domain.NewValidationError("street is required")
	case in.Address.Latitude == nil || in.Address.Longitude == nil:
		return domain.NewValidationError("shop coordinates are required")
	case *in.Address.Latitude < -90 || *in.Address.Latitude > 90 ||
		*in.Address.Longitude < -180 || *in.Address.Longitude > 180:
		return domain.NewValidationError("shop coordinates out of range")
	}
	return domain.ValidateBankDetails(in.BankDetails)
}

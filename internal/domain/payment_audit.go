package domain

import (
	"context"
	"time"
)

type PaymentPurpose string

const (
	PurposeOrder        PaymentPurpose = "order"
	PurposeOnboarding   PaymentPurpose = "onboarding"
	PurposeRenewal      PaymentPurpose = "renewal"
)

type AuditOutcome string

const (
	OutcomeVerified      AuditOutcome = "verified"
	OutcomeRejected      AuditOutcome = "rejected"
	OutcomePersisted     AuditOutcome = "persisted"
	OutcomePersistFailed AuditOutcome = "persist_failed"
	OutcomeDuplicate     AuditOutcome = "duplicate"
)

type PaymentAuditEntry struct {
	Purpose          PaymentPurpose
	Outcome          AuditOutcome
	GatewayOrderID   string
	GatewayPaymentID string
	SubjectID        string
	Detail           string
	CreatedAt        time.Time
}

type PaymentAuditLogger interface {
	LogPayment(ctx context.Context, entry PaymentAuditEntry) error
}

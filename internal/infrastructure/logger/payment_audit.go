package logger

import (
	"context"
	"time"

	"github.com/drovo/drovo-service/internal/domain"
	"gorm.io/gorm"
)

type PaymentAuditEvent struct {
	ID               uint `gorm:"primaryKey"`
	Purpose          string
	Outcome          string
	GatewayOrderID   string
	GatewayPaymentID string `gorm:"index"`
	SubjectID        string
	Detail           string
	Timestamp        time.Time
}

func (PaymentAuditEvent) TableName() string { return "payment_audit" }

type PGPaymentAuditLogger struct {
	db *gorm.DB
}

func NewPGPaymentAuditLogger(db *gorm.DB) *PGPaymentAuditLogger {
	return &PGPaymentAuditLogger{db: db}
}

func (l *PGPaymentAuditLogger) LogPayment(ctx context.Context, entry domain.PaymentAuditEntry) error {
	ts := entry.CreatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	event := PaymentAuditEvent{
		Purpose:          string(entry.Purpose),
		Outcome:          string(entry.Outcome),
		GatewayOrderID:   entry.GatewayOrderID,
		GatewayPaymentID: entry.GatewayPaymentID,
		SubjectID:        entry.SubjectID,
		Detail:           entry.Detail,
		Timestamp:        ts,
	}
	return l.db.WithContext(ctx).Create(&event).Error
}

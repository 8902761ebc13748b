package mocks

import (
	"context"
	"io"

	"github.com/drovo/drovo-service/internal/domain"
	"github.com/stretchr/testify/mock"
)

type PaymentGateway struct {
	mock.Mock
}

func (m *PaymentGateway) CreateOrder(ctx context.Context, req domain.GatewayOrderRequest) (*domain.GatewayOrder, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GatewayOrder), args.Error(1)
}

func (m *PaymentGateway) FetchOrder(ctx context.Context, orderID string) (*domain.GatewayOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GatewayOrder), args.Error(1)
}

func (m *PaymentGateway) CreateSubAccount(ctx context.Context, req domain.SubAccountRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *PaymentGateway) VerifySignature(proof domain.PaymentProof) error {
	return m.Called(proof).Error(0)
}

type ImageStore struct {
	mock.Mock
}

func (m *ImageStore) Upload(ctx context.Context, image io.Reader, folder string) (string, error) {
	args := m.Called(ctx, image, folder)
	return args.String(0), args.Error(1)
}

func (m *ImageStore) Delete(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

type Notifier struct {
	mock.Mock
}

func (m *Notifier) Notify(ctx context.Context, target domain.NotificationTarget, subject, body string) domain.DeliveryReport {
	args := m.Called(ctx, target, subject, body)
	if args.Get(0) == nil {
		return domain.DeliveryReport{}
	}
	return args.Get(0).(domain.DeliveryReport)
}

type Mailer struct {
	mock.Mock
}

func (m *Mailer) SendMail(ctx context.Context, mail domain.Mail) error {
	return m.Called(ctx, mail).Error(0)
}

type OrderEventPublisher struct {
	mock.Mock
}

func (m *OrderEventPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	return m.Called(ctx, event).Error(0)
}

type PaymentAuditLogger struct {
	mock.Mock
}

func (m *PaymentAuditLogger) LogPayment(ctx context.Context, entry domain.PaymentAuditEntry) error {
	return m.Called(ctx, entry).Error(0)
}

type BankDetailsCipher struct {
	mock.Mock
}

func (m *BankDetailsCipher) Encrypt(details domain.BankDetails) (string, error) {
	args := m.Called(details)
	return args.String(0), args.Error(1)
}

func (m *BankDetailsCipher) Decrypt(envelope string) (domain.BankDetails, error) {
	args := m.Called(envelope)
	return args.Get(0).(domain.BankDetails), args.Error(1)
}

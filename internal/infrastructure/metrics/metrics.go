package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DrovoMetrics holds every collector the service exports. A nil
// *DrovoMetrics is valid and records nothing.
type DrovoMetrics struct {
	OrdersCreatedTotal       *prometheus.CounterVec
	OrdersCreatedAmountTotal *prometheus.CounterVec
	PlatformCommissionTotal  prometheus.Counter
	OrderStatusChangesTotal  *prometheus.CounterVec
	DuplicatePaymentsTotal   prometheus.Counter

	PaymentVerificationsTotal *prometheus.CounterVec
	SubscriptionsActivated    *prometheus.CounterVec

	GatewayRequestsTotal   *prometheus.CounterVec
	GatewayRequestDuration *prometheus.HistogramVec

	ExternalCallsTotal *prometheus.CounterVec
	NotificationsTotal *prometheus.CounterVec

	ChatSessionState prometheus.Gauge
}

func NewDrovoMetrics(reg prometheus.Registerer) *DrovoMetrics {
	factory := promauto.With(reg)
	return &DrovoMetrics{
		OrdersCreatedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drovo_orders_created_total",
				Help: "Orders placed, by payment method",
			},
			[]string{"payment_method"},
		),
		OrdersCreatedAmountTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drovo_orders_created_amount_total",
				Help: "Sum of order totals in rupees, by payment method",
			},
			[]string{"payment_method"},
		),
		PlatformCommissionTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "drovo_platform_commission_total",
				Help: "Platform commission recorded on placed orders, in rupees",
			},
		),
		OrderStatusChangesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drovo_order_status_changes_total",
				Help: "Order status updates, by target status",
			},
			[]string{"status"},
		),
		DuplicatePaymentsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "drovo_duplicate_payments_total",
				Help: "Verification requests resolved to an already recorded order",
			},
		),
		PaymentVerificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drovo_payment_verifications_total",
				Help: "Payment signature verifications, by purpose and outcome",
			},
			[]string{"purpose", "outcome"},
		),
		SubscriptionsActivated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drovo_subscriptions_activated_total",
				Help: "Subscriptions activated or renewed, by plan and kind",
			},
			[]string{"plan", "kind"},
		),
		GatewayRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drovo_gateway_requests_total",
				Help: "Payment gateway HTTP requests, by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		GatewayRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "drovo_gateway_request_duration_seconds",
				Help:    "Payment gateway request latency",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"operation"},
		),
		ExternalCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drovo_external_calls_total",
				Help: "External side-effect calls, by call site, policy and outcome",
			},
			[]string{"name", "policy", "outcome"},
		),
		NotificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drovo_notifications_total",
				Help: "Notification attempts, by channel and outcome",
			},
			[]string{"channel", "outcome"},
		),
		ChatSessionState: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "drovo_chat_session_state",
				Help: "Chat session state: 0 disconnected, 1 connecting, 2 ready",
			},
		),
	}
}

func (m *DrovoMetrics) RecordOrderCreated(paymentMethod string, total float64, commission int64) {
	if m == nil {
		return
	}
	m.OrdersCreatedTotal.WithLabelValues(paymentMethod).Inc()
	m.OrdersCreatedAmountTotal.WithLabelValues(paymentMethod).Add(total)
	m.PlatformCommissionTotal.Add(float64(commission))
}

func (m *DrovoMetrics) RecordStatusChange(status string) {
	if m == nil {
		return
	}
	m.OrderStatusChangesTotal.WithLabelValues(status).Inc()
}

func (m *DrovoMetrics) RecordDuplicatePayment() {
	if m == nil {
		return
	}
	m.DuplicatePaymentsTotal.Inc()
}

func (m *DrovoMetrics) RecordVerification(purpose, outcome string) {
	if m == nil {
		return
	}
	m.PaymentVerificationsTotal.WithLabelValues(purpose, outcome).Inc()
}

func (m *DrovoMetrics) RecordSubscription(plan, kind string) {
	if m == nil {
		return
	}
	m.SubscriptionsActivated.WithLabelValues(plan, kind).Inc()
}

func (m *DrovoMetrics) RecordGatewayRequest(operation, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.GatewayRequestsTotal.WithLabelValues(operation, outcome).Inc()
	m.GatewayRequestDuration.WithLabelValues(operation).Observe(took.Seconds())
}

func (m *DrovoMetrics) RecordExternalCall(name, policy, outcome string) {
	if m == nil {
		return
	}
	m.ExternalCallsTotal.WithLabelValues(name, policy, outcome).Inc()
}

func (m *DrovoMetrics) RecordNotification(channel, outcome string) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(channel, outcome).Inc()
}

func (m *DrovoMetrics) SetChatSessionState(state int) {
	if m == nil {
		return
	}
	m.ChatSessionState.Set(float64(state))
}

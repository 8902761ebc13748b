package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *DrovoMetrics
	assert.NotPanics(t, func() {
		m.RecordOrderCreated("COD", 55, 1)
		m.RecordNotification("email", "sent")
		m.RecordGatewayRequest("create_order", "ok", time.Second)
		m.SetChatSessionState(2)
	})
}

func TestRecordOrderCreated(t *testing.T) {
	m := NewDrovoMetrics(prometheus.NewRegistry())

	m.RecordOrderCreated("Online", 55, 1)
	m.RecordOrderCreated("Online", 45, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.OrdersCreatedTotal.WithLabelValues("Online")))
	assert.Equal(t, 100.0, testutil.ToFloat64(m.OrdersCreatedAmountTotal.WithLabelValues("Online")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PlatformCommissionTotal))
}

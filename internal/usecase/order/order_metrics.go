package order

import "github.com/drovo/drovo-service/internal/domain"

func (uc *DefaultOrderUsecase) recordOrderPlacedMetrics(order *domain.Order) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordOrderCreated(
		string(order.PaymentMethod),
		order.Total(),
		order.PaymentDetails.PlatformCommission,
	)
}

func (uc *DefaultOrderUsecase) recordStatusMetrics(order *domain.Order) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordStatusChange(string(order.Status))
}

package razorpay

import (
	"context"
	"net/http"
	"net/url"

	"github.com/drovo/drovo-service/internal/domain"
)

func (g *HTTPGateway) CreateOrder(ctx context.Context, req domain.GatewayOrderRequest) (*domain.GatewayOrder, error) {
	body := orderRequest{
		Amount:   req.AmountMinorUnits,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Notes:    req.Notes,
	}
	if body.Currency == "" {
		body.Currency = domain.CurrencyINR
	}
	for _, t := range req.Transfers {
		body.Transfers = append(body.Transfers, transferRequest{
			Account:  t.Account,
			Amount:   t.Amount,
			Currency: t.Currency,
			Notes:    t.Notes,
		})
	}

	var resp orderResponse
	if err := g.do(ctx, "create_order", http.MethodPost, "/v1/orders", body, &resp); err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

// FetchOrder reads back an order, including the notes it was created with.
func (g *HTTPGateway) FetchOrder(ctx context.Context, orderID string) (*domain.GatewayOrder, error) {
	var resp orderResponse
	if err := g.do(ctx, "fetch_order", http.MethodGet, "/v1/orders/"+url.PathEscape(orderID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

func (r orderResponse) toDomain() *domain.GatewayOrder {
	return &domain.GatewayOrder{
		ID:       r.ID,
		Amount:   r.Amount,
		Currency: r.Currency,
		Receipt:  r.Receipt,
		Status:   r.Status,
		Notes:    r.Notes,
	}
}

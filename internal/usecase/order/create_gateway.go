package order

import (
	"context"

	"github.com/drovo/drovo-service/internal/domain"
	orderdto "github.com/drovo/drovo-service/internal/usecase/dto/order"
	"github.com/drovo/drovo-service/internal/usecase/external"
	"go.uber.org/zap"
)

func (uc *DefaultOrderUsecase) CreateGatewayOrder(ctx context.Context, input *orderdto.CheckoutInput) (*orderdto.GatewayOrderOutput, error) {
	priced, err := uc.priceCheckout(ctx, input, shopRequirements{active: true, onboarded: true})
	if err != nil {
		return nil, err
	}

	split := domain.ComputeSplit(priced.amount, priced.deliveryCharge)
	req := domain.GatewayOrderRequest{
		AmountMinorUnits: split.TotalMinorUnits,
		Currency:         domain.CurrencyINR,
		Receipt:          uc.NewReceipt(),
		Transfers: []domain.Transfer{{
			Account:  priced.shop.GatewayAccountID,
			Amount:   split.ShopShare,
			Currency: domain.CurrencyINR,
			Notes:    map[string]string{domain.NoteShopID: priced.shop.ID},
		}},
		Notes: gatewayNotes(input.BuyerID, priced),
	}

	var gatewayOrder *domain.GatewayOrder
	err = uc.Caller.Do(ctx, external.LoadBearing, "gateway.create_order", func(ctx context.Context) error {
		var err error
		gatewayOrder, err = uc.Gateway.CreateOrder(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.Logger.Info("gateway order created",
		zap.String("gateway_order_id", gatewayOrder.ID),
		zap.String("shop_id", priced.shop.ID),
		zap.Int64("total_minor_units", split.TotalMinorUnits),
		zap.Int64("shop_share", split.ShopShare),
	)

	return &orderdto.GatewayOrderOutput{
		GatewayOrder:   gatewayOrder,
		KeyID:          uc.Settings.GatewayKeyID,
		Amount:         priced.amount,
		DeliveryCharge: priced.deliveryCharge,
		Split:          split,
	}, nil
}

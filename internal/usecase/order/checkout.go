package order

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/drovo/drovo-service/internal/domain"
	"github.com/drovo/drovo-service/internal/geo"
	orderdto "github.com/drovo/drovo-service/internal/usecase/dto/order"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type shopRequirements struct {
	active    bool
	onboarded bool
}

type pricedCheckout struct {
	shop           *domain.Shop
	items          []domain.OrderItem
	amount         float64
	deliveryCharge float64
}

// priceCheckout loads the shop, resolves the basket and recomputes the
// subtotal from stored food prices.
func (uc *DefaultOrderUsecase) priceCheckout(ctx context.Context, in *orderdto.CheckoutInput, req shopRequirements) (*pricedCheckout, error) {
	if in.BuyerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if in.ShopID == "" {
		return nil, domain.NewValidationError("shopId is required")
	}
	if in.DeliveryCharge < 0 || math.IsNaN(in.DeliveryCharge) {
		return nil, domain.NewValidationError("deliveryCharge must not be negative")
	}

	shop, err := uc.ShopRepo.GetShopByID(ctx, in.ShopID)
	if err != nil {
		return nil, fmt.Errorf("load shop: %w", err)
	}
	if req.active && !shop.IsActive(uc.Now()) {
		return nil, domain.ErrShopInactive
	}
	if req.onboarded && shop.GatewayAccountID == "" {
		return nil, domain.ErrShopNotOnboarded
	}

	items, err := uc.basket(ctx, in)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.FoodID)
	}
	foods, err := uc.FoodRepo.GetFoodsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load foods: %w", err)
	}
	byID := make(map[string]*domain.FoodItem, len(foods))
	for _, f := range foods {
		byID[f.ID] = f
	}

	subtotal := decimal.Zero
	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, it := range items {
		food, ok := byID[it.FoodID]
		if !ok || food.ShopID != shop.ID {
			return nil, domain.NewValidationError(fmt.Sprintf("item %s is not sold by this shop", it.FoodID))
		}
		subtotal = subtotal.Add(domain.LineTotal(food.Price, it.Multiplier))
		orderItems = append(orderItems, domain.OrderItem{
			FoodID:     food.ID,
			Name:       food.Name,
			Price:      food.Price,
			Multiplier: it.Multiplier,
			Quantity:   domain.DisplayQuantity(food.Quantity, food.Unit, it.Multiplier),
		})
	}

	amount, _ := subtotal.Round(2).Float64()
	if uc.Settings.MinOrderAmount > 0 && amount < uc.Settings.MinOrderAmount {
		return nil, domain.NewValidationError(fmt.Sprintf("minimum order amount is ₹%v", uc.Settings.MinOrderAmount))
	}
	if in.ClientAmount != nil && math.Abs(*in.ClientAmount-amount) > 0.005 {
		uc.Logger.Warn("client amount differs from catalog subtotal",
			zap.String("shop_id", shop.ID),
			zap.String("buyer_id", in.BuyerID),
			zap.Float64("client_amount", *in.ClientAmount),
			zap.Float64("server_amount", amount),
		)
	}

	return &pricedCheckout{
		shop:           shop,
		items:          orderItems,
		amount:         amount,
		deliveryCharge: uc.deliveryCharge(in, shop),
	}, nil
}

// deliveryCharge prices delivery from the shop and drop-off coordinates when
// both are known. Otherwise the client's quote stands.
func (uc *DefaultOrderUsecase) deliveryCharge(in *orderdto.CheckoutInput, shop *domain.Shop) float64 {
	if in.Address.Latitude == nil || in.Address.Longitude == nil {
		return in.DeliveryCharge
	}
	to := geo.Point{Lat: *in.Address.Latitude, Lon: *in.Address.Longitude}
	from, ok := geo.ShopPoint(shop)
	if !ok || !to.Valid() {
		return in.DeliveryCharge
	}
	charge := geo.DeliveryCharge(geo.Distance(from, to))
	if charge != in.DeliveryCharge {
		uc.Logger.Warn("client delivery charge differs from distance tier",
			zap.String("shop_id", shop.ID),
			zap.String("buyer_id", in.BuyerID),
			zap.Float64("client_charge", in.DeliveryCharge),
			zap.Float64("server_charge", charge),
		)
	}
	return charge
}

// basketDigest fingerprints the priced items and delivery charge so a paid
// gateway order can be matched to the basket recorded against it.
func basketDigest(p *pricedCheckout) string {
	lines := make([]string, 0, len(p.items))
	for _, it := range p.items {
		lines = append(lines, fmt.Sprintf("%s:%d", it.FoodID, it.Multiplier))
	}
	sort.Strings(lines)
	delivery := domain.ComputeSplit(0, p.deliveryCharge).TotalMinorUnits
	sum := sha256.Sum256([]byte(strings.Join(lines, ";") + fmt.Sprintf("|%d", delivery)))
	return hex.EncodeToString(sum[:])
}

// gatewayNotes are attached to the gateway order at checkout and compared
// again when the payment is verified.
func gatewayNotes(buyerID string, p *pricedCheckout) map[string]string {
	return map[string]string{
		domain.NotePurpose: string(domain.PurposeOrder),
		domain.NoteBuyerID: buyerID,
		domain.NoteShopID:  p.shop.ID,
		domain.NoteBasket:  basketDigest(p),
	}
}

// basket returns the requested items, or the stored cart for the shop when
// none were sent. Repeated food ids are merged.
func (uc *DefaultOrderUsecase) basket(ctx context.Context, in *orderdto.CheckoutInput) ([]orderdto.CheckoutItem, error) {
	items := in.Items
	if len(items) == 0 {
		cart, err := uc.UserRepo.GetCart(ctx, in.BuyerID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("load cart: %w", err)
		}
		for foodID, mult := range cart[in.ShopID] {
			items = append(items, orderdto.CheckoutItem{FoodID: foodID, Multiplier: mult})
		}
		sort.Slice(items, func(i, j int) bool { return items[i].FoodID < items[j].FoodID })
	}
	if len(items) == 0 {
		return nil, domain.NewValidationError("cart is empty")
	}

	merged := make([]orderdto.CheckoutItem, 0, len(items))
	index := make(map[string]int, len(items))
	for _, it := range items {
		if it.FoodID == "" || it.Multiplier < 1 {
			return nil, domain.NewValidationError("each item needs a food id and a multiplier of at least 1")
		}
		if i, ok := index[it.FoodID]; ok {
			merged[i].Multiplier += it.Multiplier
			continue
		}
		index[it.FoodID] = len(merged)
		merged = append(merged, it)
	}
	return merged, nil
}

func validateAddress(a domain.DeliveryAddress) error {
	switch {
	case a.Name == "":
		return domain.NewValidationError("address name is required")
	case a.Street == "":
		return domain.NewValidationError("address street is required")
	case !domain.IsValidPhone(a.Phone):
		return domain.NewValidationError("address phone must be 10 digits")
	}
	return nil
}

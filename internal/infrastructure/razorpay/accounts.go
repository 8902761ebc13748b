package razorpay

import (
	"context"
	"fmt"
	"net/http"

	"github.com/drovo/drovo-service/internal/domain"
)

// CreateSubAccount registers a linked route account for a shop's payouts.
func (g *HTTPGateway) CreateSubAccount(ctx context.Context, req domain.SubAccountRequest) (string, error) {
	body := accountRequest{
		Email:             req.Email,
		Phone:             req.Phone,
		Type:              "route",
		LegalBusinessName: req.LegalBusinessName,
		BusinessType:      "individual",
		ContactName:       req.ContactName,
		ReferenceID:       req.ReferenceID,
	}
	body.Profile.Category = "food"
	body.Profile.Subcategory = "restaurant"
	body.Profile.Addresses.Registered = registeredAddress{
		Street1:    req.Address.Street,
		Street2:    req.Address.Street2,
		City:       req.Address.City,
		State:      req.Address.State,
		PostalCode: req.Address.PostalCode,
		Country:    "IN",
	}
	body.LegalInfo.PAN = req.PAN

	var resp accountResponse
	if err := g.do(ctx, "create_account", http.MethodPost, "/v2/accounts", body, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("%w: account id missing in response", domain.ErrGateway)
	}
	return resp.ID, nil
}

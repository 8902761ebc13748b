package razorpay

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

type transferRequest struct {
	Account  string            `json:"account"`
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type orderRequest struct {
	Amount    int64             `json:"amount"`
	Currency  string            `json:"currency"`
	Receipt   string            `json:"receipt"`
	Transfers []transferRequest `json:"transfers,omitempty"`
	Notes     map[string]string `json:"notes,omitempty"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
	Notes    notes  `json:"notes,omitempty"`
}

// notes decodes the order notes. The API sends an empty JSON array instead
// of an object when an order has none.
type notes map[string]string

func (n *notes) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		*n = nil
		return nil
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(notes, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
			continue
		}
		out[k] = fmt.Sprint(v)
	}
	*n = out
	return nil
}

type registeredAddress struct {
	Street1    string `json:"street1"`
	Street2    string `json:"street2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type accountProfile struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Addresses   struct {
		Registered registeredAddress `json:"registered"`
	} `json:"addresses"`
}

type accountRequest struct {
	Email             string         `json:"email"`
	Phone             string         `json:"phone"`
	Type              string         `json:"type"`
	LegalBusinessName string         `json:"legal_business_name"`
	BusinessType      string         `json:"business_type"`
	ContactName       string         `json:"contact_name"`
	ReferenceID       string         `json:"reference_id"`
	Profile           accountProfile `json:"profile"`
	LegalInfo         struct {
		PAN string `json:"pan"`
	} `json:"legal_info"`
}

type accountResponse struct {
	ID string `json:"id"`
}

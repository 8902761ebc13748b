package request

type NearbyQuery struct {
	Latitude  string  `form:"latitude"`
	Longitude string  `form:"longitude"`
	Radius    float64 `form:"radius" binding:"omitempty,gte=0"`
}

type DeliveryQuoteQuery struct {
	Latitude  *float64 `form:"latitude" binding:"required,latitude"`
	Longitude *float64 `form:"longitude" binding:"required,longitude"`
}

type PlanOrderRequest struct {
	Subscription string `json:"subscription" binding:"required"`
}

type SetupRequest struct {
	PaymentProof
	Name              string   `json:"name" binding:"required"`
	Phone             string   `json:"phone" binding:"required,phone"`
	Subscription      string   `json:"subscription" binding:"required"`
	Address           string   `json:"address" binding:"required"`
	Address2          string   `json:"address2"`
	City              string   `json:"city"`
	State             string   `json:"state"`
	PostalCode        string   `json:"postalCode"`
	Latitude          *float64 `json:"latitude" binding:"required,latitude"`
	Longitude         *float64 `json:"longitude" binding:"required,longitude"`
	ShopImage         string   `json:"shopImage"`
	PAN               string   `json:"pan" binding:"required,pan"`
	AccountHolderName string   `json:"accountHolderName" binding:"required"`
	AccountNumber     string   `json:"accountNumber" binding:"required"`
	IFSCCode          string   `json:"ifscCode" binding:"required,ifsc"`
	BankName          string   `json:"bankName" binding:"required"`
}

type RenewRequest struct {
	PaymentProof
	Subscription string `json:"subscription" binding:"required"`
}

type PreferencesRequest struct {
	PushOptIn bool   `json:"pushOptIn"`
	PushToken string `json:"pushToken"`
}

package request

// FoodRequest binds both JSON (image as a data URI) and multipart forms
// (image as a file part named "image").
type FoodRequest struct {
	Name        string   `json:"name" form:"name"`
	Description string   `json:"description" form:"description"`
	Price       *float64 `json:"price" form:"price"`
	Category    string   `json:"category" form:"category"`
	Quantity    *float64 `json:"quantity" form:"quantity"`
	Unit        string   `json:"unit" form:"unit"`
	Image       string   `json:"image" form:"-"`
}

type RemoveFoodRequest struct {
	ID string `json:"id" binding:"required"`
}

type CartRequest struct {
	ShopID string `json:"shopId" binding:"required"`
	ItemID string `json:"itemId" binding:"required"`
}

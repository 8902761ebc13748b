package domain

import "context"

// Cart maps shop id to food id to multiplier.
type Cart map[string]map[string]int

type User struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Cart      Cart
	PushOptIn bool
	PushToken string
}

type UserRepository interface {
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetCart(ctx context.Context, userID string) (Cart, error)
	// UpdateCart applies change to the stored cart under a row lock and
	// saves it when change reports a modification.
	UpdateCart(ctx context.Context, userID string, change func(Cart) bool) (Cart, error)
	ClearCart(ctx context.Context, userID string) error
}

package domain

// Authenticator resolves a bearer token to an identity id.
type Authenticator interface {
	Resolve(token string) (string, error)
}

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/drovo/drovo-service/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// JWTAuthenticator validates HS256 tokens carrying the identity in an "id" claim.
type JWTAuthenticator struct {
	secret []byte
}

func NewJWTAuthenticator(secret string) *JWTAuthenticator {
	return &JWTAuthenticator{secret: []byte(secret)}
}

func (a *JWTAuthenticator) Resolve(token string) (string, error) {
	if token == "" {
		return "", domain.ErrUnauthenticated
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}

	id, _ := claims["id"].(string)
	if id == "" {
		return "", domain.ErrUnauthenticated
	}
	return id, nil
}

// Issue signs a token for id. Used by tooling and tests; login lives elsewhere.
func (a *JWTAuthenticator) Issue(id string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":  id,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/drovo/drovo-service/internal/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	userIDKey = "userID"
	shopIDKey = "shopID"
)

func tokenFrom(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if token, found := strings.CutPrefix(h, "Bearer "); found {
			return strings.TrimSpace(token)
		}
	}
	return c.GetHeader("token")
}

// RequireAuth resolves the caller and stores the id under key.
func RequireAuth(auth domain.Authenticator, key string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFrom(c)
		if token == "" {
			writeError(c, logger, domain.ErrUnauthenticated)
			return
		}
		id, err := auth.Resolve(token)
		if err != nil {
			if !errors.Is(err, domain.ErrTokenExpired) {
				err = domain.ErrUnauthenticated
			}
			writeError(c, logger, err)
			return
		}
		c.Set(key, id)
		c.Next()
	}
}

// OptionalAuth stores the caller id when a valid token is present and
// otherwise lets the request through anonymously.
func OptionalAuth(auth domain.Authenticator, key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFrom(c); token != "" {
			if id, err := auth.Resolve(token); err == nil {
				c.Set(key, id)
			}
		}
		c.Next()
	}
}

func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

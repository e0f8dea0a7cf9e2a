package middleware

import (
	"errors"
	"strings"

	"hoaxify/social-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewAuthMiddleware reads the bearer token and, when it verifies, sets
// userID on the context. It never aborts: endpoints that require
// authentication check for userID themselves, everything else keeps
// working anonymously
func NewAuthMiddleware(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			userID, err := tokens.Verify(token)
			if err == nil {
				c.Set("userID", userID)
			} else if !errors.Is(err, service.ErrAuthFailure) {
				zap.L().Error("Failed to verify token", zap.Error(err))
			}
		}

		c.Next()
	}
}

package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthLogout deletes the matching token when one was presented, valid
// or not. Always responds 200, logging out without a token is fine
func (a *API) AuthLogout(c *gin.Context) {
	auth := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		if err := a.Tokens.Delete(token); err != nil {
			zap.L().Error("Failed to delete token on logout", zap.Error(err))
		}
	}

	c.Status(http.StatusOK)
}

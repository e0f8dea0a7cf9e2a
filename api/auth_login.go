package api

import (
	"errors"
	"net/http"

	"hoaxify/social-api/internal/model"
	"hoaxify/social-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Image    *string `json:"image"`
	Token    string  `json:"token"`
}

func (a *API) AuthLogin(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		a.fail(c, http.StatusUnauthorized, "authentication_failure")
		return
	}

	// A malformed email can't belong to any account, treated the same
	// as wrong credentials to avoid leaking which part was off
	if err := validators.EmailValidator(data.Email); err != nil {
		a.fail(c, http.StatusUnauthorized, "authentication_failure")
		return
	}

	var user model.User
	if err := a.DB.Where("email = ?", data.Email).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		}

		a.fail(c, http.StatusUnauthorized, "authentication_failure")
		return
	}

	ok, err := a.Hasher.VerifyPasswd(data.Password, user.PasswordHash)
	if err != nil {
		zap.L().Error("Failed to verify password", zap.Error(err), zap.String("requestID", requestID))

		a.fail(c, http.StatusUnauthorized, "authentication_failure")
		return
	}

	if !ok {
		a.fail(c, http.StatusUnauthorized, "authentication_failure")
		return
	}

	if user.Inactive {
		a.fail(c, http.StatusForbidden, "inactive_authentication")
		return
	}

	token, err := a.Tokens.Create(&user)
	if err != nil {
		zap.L().Error("Failed to create token", zap.Error(err), zap.String("requestID", requestID))

		a.fail(c, http.StatusInternalServerError, "authentication_failure")
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		ID:       user.ID,
		Username: user.Username,
		Image:    user.Image,
		Token:    token,
	})
}

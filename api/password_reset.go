package api

import (
	"errors"
	"net/http"

	"hoaxify/social-api/internal/model"
	"hoaxify/social-api/util"
	"hoaxify/social-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type resetRequestBody struct {
	Email string `json:"email"`
}

// PasswordResetRequest persists a fresh reset token for the address and
// mails it out. The token deliberately survives a failed send: the mail
// might still arrive and the next request overwrites it anyway
func (a *API) PasswordResetRequest(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data resetRequestBody
	if err := c.ShouldBind(&data); err != nil || validators.EmailValidator(data.Email) != nil {
		a.failValidation(c, map[string]string{"email": "email_invalid"})
		return
	}

	var user model.User
	err := a.DB.Where("email = ?", data.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			a.fail(c, http.StatusNotFound, "email_not_inuse")
			return
		}

		a.fail(c, http.StatusInternalServerError, "email_not_inuse")

		zap.L().Error("Failed to look up email", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	resetToken, err := util.RandomString(16)
	if err != nil {
		a.fail(c, http.StatusInternalServerError, "email_failure")

		zap.L().Error("Failed to generate reset token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = a.DB.Model(&user).Update("password_reset_token", resetToken).Error
	if err != nil {
		a.fail(c, http.StatusInternalServerError, "email_failure")

		zap.L().Error("Failed to persist reset token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := a.Mail.SendPasswordReset(data.Email, resetToken); err != nil {
		a.fail(c, http.StatusBadGateway, "email_failure")

		zap.L().Error("Failed to send reset mail", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": translate(c, "password_reset_request_success"),
	})
}

type passwordUpdateBody struct {
	Password           string `json:"password"`
	PasswordResetToken string `json:"passwordResetToken"`
}

// PasswordUpdate consumes a reset token and sets a new password. The
// account is activated as a side effect (owning the mailbox proves the
// address) and every existing auth token is revoked
func (a *API) PasswordUpdate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data passwordUpdateBody
	if err := c.ShouldBind(&data); err != nil || data.PasswordResetToken == "" {
		a.fail(c, http.StatusForbidden, "unauthorized_password_reset")
		return
	}

	var user model.User
	err := a.DB.Where("password_reset_token = ?", data.PasswordResetToken).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			a.fail(c, http.StatusForbidden, "unauthorized_password_reset")
			return
		}

		a.fail(c, http.StatusInternalServerError, "unauthorized_password_reset")

		zap.L().Error("Failed to look up reset token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		a.failValidation(c, map[string]string{"password": err.Error()})
		return
	}

	hash, err := a.Hasher.GenerateFromPassword(data.Password)
	if err != nil {
		a.fail(c, http.StatusInternalServerError, "unauthorized_password_reset")

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = a.DB.Model(&user).Updates(map[string]any{
		"password_hash":        hash,
		"password_reset_token": nil,
		"activation_token":     nil,
		"inactive":             false,
	}).Error
	if err != nil {
		a.fail(c, http.StatusInternalServerError, "unauthorized_password_reset")

		zap.L().Error("Failed to update password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// Force a re-login everywhere
	if err := a.Tokens.ClearForUser(user.ID); err != nil {
		zap.L().Error("Failed to clear tokens", zap.Error(err), zap.String("requestID", requestID))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": translate(c, "password_update_success"),
	})
}

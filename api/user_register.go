package api

import (
	"errors"
	"fmt"
	"net/http"

	"hoaxify/social-api/internal/model"
	"hoaxify/social-api/util"
	"hoaxify/social-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// errMailSend marks SMTP failures so they surface as 502 instead of
// a generic 500
var errMailSend = errors.New("mail send failed")

type registerBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) UserRegister(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
	if err := c.ShouldBind(&data); err != nil {
		a.failValidation(c, map[string]string{
			"username": "username_null",
			"email":    "email_null",
			"password": "password_null",
		})
		return
	}

	validationErrors := map[string]string{}

	if err := validators.UsernameValidator(data.Username); err != nil {
		validationErrors["username"] = err.Error()
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		validationErrors["email"] = err.Error()
	} else {
		var found bool
		r := a.DB.Model(model.User{}).
			Select("count(*) > 0").
			Where("email = ?", data.Email).
			Find(&found)
		if r.Error != nil {
			a.fail(c, http.StatusInternalServerError, "validation_failure")

			zap.L().Error("Failed to check if email is registered", zap.Error(r.Error), zap.String("requestID", requestID))
			return
		}

		if found {
			validationErrors["email"] = "email_inuse"
		}
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		validationErrors["password"] = err.Error()
	}

	if len(validationErrors) > 0 {
		a.failValidation(c, validationErrors)
		return
	}

	hash, err := a.Hasher.GenerateFromPassword(data.Password)
	if err != nil {
		a.fail(c, http.StatusInternalServerError, "validation_failure")

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	activationToken, err := util.RandomString(16)
	if err != nil {
		a.fail(c, http.StatusInternalServerError, "validation_failure")

		zap.L().Error("Failed to generate activation token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// Registration and the activation mail are atomic as a pair: a
	// failed send rolls the user row back so the address can retry
	err = a.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Create(&model.User{
			Username:        data.Username,
			Email:           data.Email,
			PasswordHash:    hash,
			Inactive:        true,
			ActivationToken: &activationToken,
		}).Error
		if err != nil {
			return err
		}

		if err := a.Mail.SendAccountActivation(data.Email, activationToken); err != nil {
			return fmt.Errorf("%w: %v", errMailSend, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, errMailSend) {
			a.fail(c, http.StatusBadGateway, "email_failure")
		} else {
			a.fail(c, http.StatusInternalServerError, "validation_failure")
		}

		zap.L().Error("Failed to register user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": translate(c, "user_create_success"),
	})
}

// UserActivate consumes an activation token and flips the account to
// active. Unknown tokens respond 401
func (a *API) UserActivate(c *gin.Context) {
	token := c.Param("token")

	var user model.User
	err := a.DB.Where("activation_token = ?", token).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			a.fail(c, http.StatusUnauthorized, "account_activation_failure")
			return
		}

		a.fail(c, http.StatusInternalServerError, "account_activation_failure")

		zap.L().Error("Failed to look up activation token", zap.Error(err))
		return
	}

	err = a.DB.Model(&user).Updates(map[string]any{
		"activation_token": nil,
		"inactive":         false,
	}).Error
	if err != nil {
		a.fail(c, http.StatusInternalServerError, "account_activation_failure")

		zap.L().Error("Failed to activate user", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": translate(c, "account_activation_success"),
	})
}

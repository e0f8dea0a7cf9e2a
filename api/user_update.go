package api

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"hoaxify/social-api/internal/model"
	"hoaxify/social-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type updateBody struct {
	Username string `json:"username"`
	// Optional base64 encoded profile image
	Image string `json:"image"`
}

// UserUpdate changes the username and optionally replaces the profile
// image. Only the account owner may call it
func (a *API) UserUpdate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		a.fail(c, http.StatusForbidden, "unauthorized_user_update")
		return
	}

	userID, ok := c.Get("userID")
	if !ok || userID.(uint) != uint(id) {
		a.fail(c, http.StatusForbidden, "unauthorized_user_update")
		return
	}

	var data updateBody
	if err := c.ShouldBind(&data); err != nil {
		a.failValidation(c, map[string]string{"username": "username_null"})
		return
	}

	if err := validators.UsernameValidator(data.Username); err != nil {
		a.failValidation(c, map[string]string{"username": err.Error()})
		return
	}

	var imageBytes []byte
	if data.Image != "" {
		imageBytes, err = base64.StdEncoding.DecodeString(data.Image)
		if err != nil {
			a.failValidation(c, map[string]string{"image": "unsupported_image_file"})
			return
		}

		if err := validators.ProfileImageValidator(imageBytes); err != nil {
			a.failValidation(c, map[string]string{"image": err.Error()})
			return
		}
	}

	var user model.User
	if err := a.DB.First(&user, userID).Error; err != nil {
		a.fail(c, http.StatusInternalServerError, "unauthorized_user_update")

		zap.L().Error("Failed to load user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user.Username = data.Username

	if imageBytes != nil {
		if user.Image != nil {
			a.Files.DeleteProfileImage(*user.Image)
		}

		filename, err := a.Files.SaveProfileImage(imageBytes)
		if err != nil {
			a.fail(c, http.StatusInternalServerError, "unauthorized_user_update")

			zap.L().Error("Failed to save profile image", zap.Error(err), zap.String("requestID", requestID))
			return
		}
		user.Image = &filename
	}

	if err := a.DB.Save(&user).Error; err != nil {
		a.fail(c, http.StatusInternalServerError, "unauthorized_user_update")

		zap.L().Error("Failed to update user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, summarize(&user))
}

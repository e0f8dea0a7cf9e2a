package api

import (
	"net/http"
	"strconv"

	"hoaxify/social-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserDelete removes the caller's own account. Files come off disk
// first, then the user row goes and the database cascades tokens,
// hoaxes and attachment rows
func (a *API) UserDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		a.fail(c, http.StatusForbidden, "unauthorized_user_delete")
		return
	}

	userID, ok := c.Get("userID")
	if !ok || userID.(uint) != uint(id) {
		a.fail(c, http.StatusForbidden, "unauthorized_user_delete")
		return
	}

	var user model.User
	if err := a.DB.First(&user, userID).Error; err != nil {
		a.fail(c, http.StatusInternalServerError, "unauthorized_user_delete")

		zap.L().Error("Failed to load user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := a.Files.DeleteUserFiles(&user); err != nil {
		zap.L().Error("Failed to delete user files", zap.Error(err), zap.String("requestID", requestID))
	}

	// Explicit cascade so behavior doesn't depend on the driver
	// enforcing foreign keys
	err = a.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("hoax_id IN (?)", tx.Model(model.Hoax{}).Select("id").Where("user_id = ?", user.ID)).
			Delete(model.FileAttachment{}).
			Error
		if err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(model.Hoax{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(model.Token{}).Error; err != nil {
			return err
		}

		return tx.Delete(&user).Error
	})
	if err != nil {
		a.fail(c, http.StatusInternalServerError, "unauthorized_user_delete")

		zap.L().Error("Failed to delete user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": translate(c, "user_delete_success"),
	})
}

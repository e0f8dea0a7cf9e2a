package api

import (
	"errors"
	"net/http"
	"strconv"

	"hoaxify/social-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HoaxDelete removes an owned hoax together with its attachment, file
// and row both. A hoax that exists but belongs to someone else responds
// the same 403 as a missing one
func (a *API) HoaxDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	userID, ok := c.Get("userID")
	if !ok {
		a.fail(c, http.StatusForbidden, "unauthorized_hoax_delete")
		return
	}

	hoaxID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		a.fail(c, http.StatusForbidden, "unauthorized_hoax_delete")
		return
	}

	var hoax model.Hoax
	err = a.DB.
		Preload("Attachment").
		Where("id = ? AND user_id = ?", hoaxID, userID).
		First(&hoax).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			a.fail(c, http.StatusForbidden, "unauthorized_hoax_delete")
			return
		}

		a.fail(c, http.StatusInternalServerError, "unauthorized_hoax_delete")

		zap.L().Error("Failed to load hoax", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if hoax.Attachment != nil {
		a.Files.DeleteAttachmentFile(hoax.Attachment.Filename)

		if err := a.DB.Delete(hoax.Attachment).Error; err != nil {
			zap.L().Error("Failed to delete attachment row", zap.Error(err), zap.String("requestID", requestID))
		}
	}

	if err := a.DB.Delete(&hoax).Error; err != nil {
		a.fail(c, http.StatusInternalServerError, "unauthorized_hoax_delete")

		zap.L().Error("Failed to delete hoax", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": translate(c, "hoax_delete_success"),
	})
}

package api

import (
	"net/http"
	"time"

	"hoaxify/social-api/internal/model"
	"hoaxify/social-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type hoaxBody struct {
	Content string `json:"content"`
	// Optional id of a previously uploaded attachment
	FileAttachment uint `json:"fileAttachment"`
}

func (a *API) HoaxCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	userID, ok := c.Get("userID")
	if !ok {
		a.fail(c, http.StatusUnauthorized, "unauthorized_hoax_submit")
		return
	}

	var data hoaxBody
	if err := c.ShouldBind(&data); err != nil {
		a.failValidation(c, map[string]string{"content": "hoax_content_size"})
		return
	}

	if err := validators.HoaxContentValidator(data.Content); err != nil {
		a.failValidation(c, map[string]string{"content": err.Error()})
		return
	}

	hoax := model.Hoax{
		Content:   data.Content,
		Timestamp: time.Now().UnixMilli(),
		UserID:    userID.(uint),
	}

	if err := a.DB.Create(&hoax).Error; err != nil {
		a.fail(c, http.StatusInternalServerError, "hoax_content_size")

		zap.L().Error("Failed to save hoax", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// Unknown attachment ids are silently ignored, the hoax itself
	// already saved fine
	if data.FileAttachment != 0 {
		if err := a.Files.AssociateToHoax(data.FileAttachment, hoax.ID); err != nil {
			zap.L().Error("Failed to associate attachment", zap.Error(err), zap.String("requestID", requestID))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": translate(c, "hoax_submit_success"),
	})
}

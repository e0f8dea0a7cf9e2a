package api

import (
	"net/http"
	"strconv"

	"hoaxify/social-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type attachmentSummary struct {
	Filename string  `json:"filename"`
	FileType *string `json:"fileType,omitempty"`
}

type hoaxView struct {
	ID             uint               `json:"id"`
	Content        string             `json:"content"`
	Timestamp      int64              `json:"timestamp"`
	User           userSummary        `json:"user"`
	FileAttachment *attachmentSummary `json:"fileAttachment,omitempty"`
}

// HoaxList returns hoaxes newest-first, optionally narrowed to a single
// user when mounted under /users/:id/hoaxes
func (a *API) HoaxList(c *gin.Context) {
	page, size := pagination(c)

	query := a.DB.Model(model.Hoax{})

	if param := c.Param("id"); param != "" {
		userID, err := strconv.Atoi(param)
		if err != nil {
			a.fail(c, http.StatusNotFound, "user_not_found")
			return
		}

		var count int64
		if err := a.DB.Model(model.User{}).Where("id = ?", userID).Count(&count).Error; err != nil || count == 0 {
			a.fail(c, http.StatusNotFound, "user_not_found")
			return
		}

		query = query.Where("user_id = ?", userID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		a.fail(c, http.StatusInternalServerError, "user_not_found")

		zap.L().Error("Failed to count hoaxes", zap.Error(err))
		return
	}

	var hoaxes []model.Hoax
	err := query.
		Preload("User").
		Preload("Attachment").
		Order("id DESC").
		Limit(size).
		Offset(page * size).
		Find(&hoaxes).
		Error
	if err != nil {
		a.fail(c, http.StatusInternalServerError, "user_not_found")

		zap.L().Error("Failed to list hoaxes", zap.Error(err))
		return
	}

	content := make([]hoaxView, len(hoaxes))
	for i := range hoaxes {
		content[i] = hoaxView{
			ID:        hoaxes[i].ID,
			Content:   hoaxes[i].Content,
			Timestamp: hoaxes[i].Timestamp,
			User:      summarize(&hoaxes[i].User),
		}

		// Attachment metadata is omitted entirely when there is none
		if att := hoaxes[i].Attachment; att != nil {
			content[i].FileAttachment = &attachmentSummary{
				Filename: att.Filename,
				FileType: att.FileType,
			}
		}
	}

	c.JSON(http.StatusOK, listPage{
		Content:    content,
		Page:       page,
		Size:       size,
		TotalPages: totalPages(count, size),
	})
}

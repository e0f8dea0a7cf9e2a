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

// userSummary is the public shape of a user in listings and hoaxes
type userSummary struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Image    *string `json:"image"`
}

func summarize(u *model.User) userSummary {
	return userSummary{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Image:    u.Image,
	}
}

// UserList returns a page of active users. An authenticated caller is
// excluded from their own listing
func (a *API) UserList(c *gin.Context) {
	page, size := pagination(c)

	query := a.DB.Model(model.User{}).Where("inactive = ?", false)
	if userID, ok := c.Get("userID"); ok {
		query = query.Where("id <> ?", userID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		a.fail(c, http.StatusInternalServerError, "user_not_found")

		zap.L().Error("Failed to count users", zap.Error(err))
		return
	}

	var users []model.User
	err := query.
		Order("id").
		Limit(size).
		Offset(page * size).
		Find(&users).
		Error
	if err != nil {
		a.fail(c, http.StatusInternalServerError, "user_not_found")

		zap.L().Error("Failed to list users", zap.Error(err))
		return
	}

	content := make([]userSummary, len(users))
	for i := range users {
		content[i] = summarize(&users[i])
	}

	c.JSON(http.StatusOK, listPage{
		Content:    content,
		Page:       page,
		Size:       size,
		TotalPages: totalPages(count, size),
	})
}

// UserFetch returns one active user, 404 when missing or inactive
func (a *API) UserFetch(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		a.fail(c, http.StatusNotFound, "user_not_found")
		return
	}

	var user model.User
	err = a.DB.
		Where("id = ? AND inactive = ?", id, false).
		First(&user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			a.fail(c, http.StatusNotFound, "user_not_found")
			return
		}

		a.fail(c, http.StatusInternalServerError, "user_not_found")

		zap.L().Error("Failed to fetch user", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, summarize(&user))
}

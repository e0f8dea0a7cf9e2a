package api

import (
	"net/http"
	"testing"

	"hoaxify/social-api/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordResetRequestUnknownEmail(t *testing.T) {
	a, _ := newTestAPI(t)

	w := a.doJSON(t, http.MethodPost, "/api/1.0/users/password", gin.H{
		"email": "nobody@mail.com",
	}, requestOpts{})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPasswordResetRequest(t *testing.T) {
	a, mail := newTestAPI(t)
	user := createActiveUser(t, a, "user1")

	w := a.doJSON(t, http.MethodPost, "/api/1.0/users/password", gin.H{
		"email": user.Email,
	}, requestOpts{})
	require.Equal(t, http.StatusOK, w.Code)

	var stored model.User
	require.NoError(t, a.DB.First(&stored, user.ID).Error)
	require.NotNil(t, stored.PasswordResetToken)

	require.Len(t, mail.resets, 1)
	assert.Equal(t, *stored.PasswordResetToken, mail.resets[0].Token)
}

func TestPasswordResetRequestMailFailure(t *testing.T) {
	a, mail := newTestAPI(t)
	user := createActiveUser(t, a, "user1")
	mail.failNext = true

	w := a.doJSON(t, http.MethodPost, "/api/1.0/users/password", gin.H{
		"email": user.Email,
	}, requestOpts{})
	assert.Equal(t, http.StatusBadGateway, w.Code)

	// Unlike registration there is no rollback here, the token stays
	var stored model.User
	require.NoError(t, a.DB.First(&stored, user.ID).Error)
	assert.NotNil(t, stored.PasswordResetToken)
}

func TestPasswordUpdateInvalidToken(t *testing.T) {
	a, _ := newTestAPI(t)

	w := a.doJSON(t, http.MethodPut, "/api/1.0/users/password", gin.H{
		"password":           "N3wPassword",
		"passwordResetToken": "notARealToken",
	}, requestOpts{})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPasswordUpdateInvalidPassword(t *testing.T) {
	a, mail := newTestAPI(t)
	user := createActiveUser(t, a, "user1")

	w := a.doJSON(t, http.MethodPost, "/api/1.0/users/password", gin.H{"email": user.Email}, requestOpts{})
	require.Equal(t, http.StatusOK, w.Code)

	w = a.doJSON(t, http.MethodPut, "/api/1.0/users/password", gin.H{
		"password":           "alllowercase",
		"passwordResetToken": mail.resets[0].Token,
	}, requestOpts{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPasswordResetFlow(t *testing.T) {
	a, mail := newTestAPI(t)
	user := createActiveUser(t, a, "user1")

	// An existing session that must die with the reset
	oldToken := login(t, a, user)

	w := a.doJSON(t, http.MethodPost, "/api/1.0/users/password", gin.H{"email": user.Email}, requestOpts{})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, mail.resets, 1)

	w = a.doJSON(t, http.MethodPut, "/api/1.0/users/password", gin.H{
		"password":           "N3wPassword",
		"passwordResetToken": mail.resets[0].Token,
	}, requestOpts{})
	require.Equal(t, http.StatusOK, w.Code)

	// The old password no longer works
	w = a.doJSON(t, http.MethodPost, "/api/1.0/auth", gin.H{
		"email":    user.Email,
		"password": "P4ssword",
	}, requestOpts{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The new one does
	w = a.doJSON(t, http.MethodPost, "/api/1.0/auth", gin.H{
		"email":    user.Email,
		"password": "N3wPassword",
	}, requestOpts{})
	assert.Equal(t, http.StatusOK, w.Code)

	// All prior tokens were revoked
	var count int64
	require.NoError(t, a.DB.Model(model.Token{}).Where("token = ?", oldToken).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	// Reset token is cleared so it can't be replayed
	var stored model.User
	require.NoError(t, a.DB.First(&stored, user.ID).Error)
	assert.Nil(t, stored.PasswordResetToken)
}

func TestPasswordResetActivatesInactiveAccount(t *testing.T) {
	a, mail := newTestAPI(t)
	user := createActiveUser(t, a, "user1")
	require.NoError(t, a.DB.Model(user).Update("inactive", true).Error)

	w := a.doJSON(t, http.MethodPost, "/api/1.0/users/password", gin.H{"email": user.Email}, requestOpts{})
	require.Equal(t, http.StatusOK, w.Code)

	w = a.doJSON(t, http.MethodPut, "/api/1.0/users/password", gin.H{
		"password":           "N3wPassword",
		"passwordResetToken": mail.resets[0].Token,
	}, requestOpts{})
	require.Equal(t, http.StatusOK, w.Code)

	var stored model.User
	require.NoError(t, a.DB.First(&stored, user.ID).Error)
	assert.False(t, stored.Inactive)
}

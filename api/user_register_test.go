package api

import (
	"net/http"
	"testing"

	"hoaxify/social-api/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validRegistration = gin.H{
	"username": "user1",
	"email":    "user1@mail.com",
	"password": "P4ssword",
}

func TestRegister(t *testing.T) {
	a, mail := newTestAPI(t)

	w := a.doJSON(t, http.MethodPost, "/api/1.0/users", validRegistration, requestOpts{})
	require.Equal(t, http.StatusOK, w.Code)

	var user model.User
	require.NoError(t, a.DB.Where("email = ?", "user1@mail.com").First(&user).Error)

	assert.Equal(t, "user1", user.Username)
	assert.True(t, user.Inactive)
	require.NotNil(t, user.ActivationToken)

	// Password is never stored in plaintext
	assert.NotEqual(t, "P4ssword", user.PasswordHash)

	require.Len(t, mail.activations, 1)
	assert.Equal(t, "user1@mail.com", mail.activations[0].To)
	assert.Equal(t, *user.ActivationToken, mail.activations[0].Token)
}

func TestRegisterValidationErrors(t *testing.T) {
	a, _ := newTestAPI(t)

	w := a.doJSON(t, http.MethodPost, "/api/1.0/users", gin.H{
		"username": "abc",
		"email":    "not-an-email",
		"password": "short",
	}, requestOpts{})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	errs := body["validationErrors"].(map[string]any)
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	a, _ := newTestAPI(t)
	createActiveUser(t, a, "user1")

	w := a.doJSON(t, http.MethodPost, "/api/1.0/users", validRegistration, requestOpts{})
	require.Equal(t, http.StatusBadRequest, w.Code)

	errs := decodeBody(t, w)["validationErrors"].(map[string]any)
	assert.Contains(t, errs, "email")
}

func TestRegisterMailFailureRollsBack(t *testing.T) {
	a, mail := newTestAPI(t)
	mail.failNext = true

	w := a.doJSON(t, http.MethodPost, "/api/1.0/users", validRegistration, requestOpts{})
	assert.Equal(t, http.StatusBadGateway, w.Code)

	// Registration and activation mail are atomic as a pair
	var count int64
	require.NoError(t, a.DB.Model(model.User{}).Where("email = ?", "user1@mail.com").Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestRegisterLocalizedValidation(t *testing.T) {
	a, _ := newTestAPI(t)

	w := a.doJSON(t, http.MethodPost, "/api/1.0/users", gin.H{
		"username": "user1",
		"email":    "user1@mail.com",
		"password": "short",
	}, requestOpts{lang: "tr"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	errs := decodeBody(t, w)["validationErrors"].(map[string]any)
	assert.Equal(t, "Sifre en az 6 karakter olmali", errs["password"])
}

func TestActivate(t *testing.T) {
	a, mail := newTestAPI(t)

	w := a.doJSON(t, http.MethodPost, "/api/1.0/users", validRegistration, requestOpts{})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, mail.activations, 1)

	w = a.doJSON(t, http.MethodPost, "/api/1.0/users/token/"+mail.activations[0].Token, nil, requestOpts{})
	require.Equal(t, http.StatusOK, w.Code)

	var user model.User
	require.NoError(t, a.DB.Where("email = ?", "user1@mail.com").First(&user).Error)
	assert.False(t, user.Inactive)
	assert.Nil(t, user.ActivationToken)
}

func TestActivateInvalidToken(t *testing.T) {
	a, _ := newTestAPI(t)

	w := a.doJSON(t, http.MethodPost, "/api/1.0/users/token/notARealToken", nil, requestOpts{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterActivateLoginFlow(t *testing.T) {
	a, mail := newTestAPI(t)

	w := a.doJSON(t, http.MethodPost, "/api/1.0/users", validRegistration, requestOpts{})
	require.Equal(t, http.StatusOK, w.Code)

	// Login before activation is rejected
	w = a.doJSON(t, http.MethodPost, "/api/1.0/auth", gin.H{
		"email":    "user1@mail.com",
		"password": "P4ssword",
	}, requestOpts{})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = a.doJSON(t, http.MethodPost, "/api/1.0/users/token/"+mail.activations[0].Token, nil, requestOpts{})
	require.Equal(t, http.StatusOK, w.Code)

	w = a.doJSON(t, http.MethodPost, "/api/1.0/auth", gin.H{
		"email":    "user1@mail.com",
		"password": "P4ssword",
	}, requestOpts{})
	assert.Equal(t, http.StatusOK, w.Code)
}

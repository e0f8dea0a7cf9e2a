// Package service contains domain services and periodic cleanup tasks
package service

import (
	"errors"
	"time"

	"hoaxify/social-api/internal/model"
	"hoaxify/social-api/util"

	"gorm.io/gorm"
)

// TokenExpiry is the sliding window a token stays valid for. Every
// successful verification pushes the window forward
const TokenExpiry = 7 * 24 * time.Hour

// ErrAuthFailure is returned whenever a token can't be resolved to a
// user, whether it never existed, expired, or got swept mid-request
var ErrAuthFailure = errors.New("authentication_failure")

type TokenService struct {
	DB *gorm.DB
}

func NewTokenService(db *gorm.DB) *TokenService {
	return &TokenService{DB: db}
}

// Create issues a new opaque 32 character token for the user and
// persists it with lastUsedAt set to now
func (s *TokenService) Create(user *model.User) (string, error) {
	token, err := util.RandomString(32)
	if err != nil {
		return "", err
	}

	err = s.DB.Create(&model.Token{
		Token:      token,
		UserID:     user.ID,
		LastUsedAt: time.Now(),
	}).Error
	if err != nil {
		return "", err
	}

	return token, nil
}

// Verify resolves a token to its user id. Tokens idle for longer than
// TokenExpiry fail verification. On success lastUsedAt is refreshed,
// extending the token's life.
//
// The refresh and the cleanup sweep are not mutually atomic. A token
// swept between the lookup and the update simply fails here on the
// next request, which is fine.
func (s *TokenService) Verify(token string) (uint, error) {
	oneWeekAgo := time.Now().Add(-TokenExpiry)

	var stored model.Token
	err := s.DB.
		Where("token = ? AND last_used_at >= ?", token, oneWeekAgo).
		First(&stored).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrAuthFailure
		}

		return 0, err
	}

	err = s.DB.
		Model(&stored).
		Update("last_used_at", time.Now()).
		Error
	if err != nil {
		return 0, err
	}

	return stored.UserID, nil
}

// Delete removes a single token, used on logout. Unknown tokens are
// not an error
func (s *TokenService) Delete(token string) error {
	return s.DB.
		Where("token = ?", token).
		Delete(model.Token{}).
		Error
}

// ClearForUser removes every token of a user, forcing a re-login on
// all their devices
func (s *TokenService) ClearForUser(userID uint) error {
	return s.DB.
		Where("user_id = ?", userID).
		Delete(model.Token{}).
		Error
}

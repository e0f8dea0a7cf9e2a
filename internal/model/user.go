// Package model defines database models
package model

type User struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string  `gorm:"not null" json:"username"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"not null" json:"-"`
	Inactive     bool    `gorm:"default:true" json:"-"`
	Image        *string `json:"image,omitempty"`

	// Both tokens are nullable so that consumed ones can be
	// cleared without leaving empty strings around
	ActivationToken    *string `gorm:"index" json:"-"`
	PasswordResetToken *string `gorm:"index" json:"-"`

	Tokens []Token `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Hoaxes []Hoax  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

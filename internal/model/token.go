package model

import "time"

// Token is an opaque bearer token. There are no claims baked into it,
// everything is resolved through this table on each request. LastUsedAt
// moves forward on every successful verification, giving tokens a
// sliding 7 day lifetime.
type Token struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	Token      string    `gorm:"uniqueIndex;not null"`
	UserID     uint      `gorm:"index;not null"`
	LastUsedAt time.Time `gorm:"not null"`
}

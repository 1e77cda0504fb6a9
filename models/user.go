package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
}

// Session backs one issued auth token. Deleting the row invalidates
// the token regardless of its JWT expiry.
type Session struct {
	ID        string `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

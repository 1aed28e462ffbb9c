package model

import "time"

// User is a diary account. Telegram stays nil until the account is
// linked through the bot; when set it must be unique across users.
type User struct {
	ID           uint    `gorm:"primaryKey"`
	Username     string  `gorm:"uniqueIndex;size:64"`
	Email        string  `gorm:"uniqueIndex;size:120"`
	Telegram     *string `gorm:"uniqueIndex;size:120"`
	PasswordHash string  `gorm:"size:256"`
	AboutMe      string  `gorm:"size:140"`
	LastSeen     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package model

import "time"

// Session is a logged-in browser session. Expired rows are purged by a
// background job.
type Session struct {
	Token     string    `gorm:"primaryKey;size:36"`
	UserID    uint      `gorm:"index"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
}

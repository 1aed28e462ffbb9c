package model

import "time"

// Post is a single published trip. The owner never changes and posts
// are not edited after publishing; CreatedAt is the feed sort key.
type Post struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index"`
	Title     string    `gorm:"size:100"`
	Body      string    `gorm:"size:300"`
	Price     string    `gorm:"size:20"`
	Places    string    `gorm:"size:300"`
	PhotoURL  string    `gorm:"size:100"`
	VideoURL  string    `gorm:"size:100"`
	CreatedAt time.Time `gorm:"index"`
}

package model

import "time"

// Follow is a directed edge: the follower sees the followed user's
// posts in their feed. The composite primary key forbids duplicates.
type Follow struct {
	FollowerID uint `gorm:"primaryKey;autoIncrement:false"`
	FollowedID uint `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt  time.Time
}

func (Follow) TableName() string {
	return "followers"
}

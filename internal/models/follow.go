package models

import (
	"time"
)

// Follow is a directed edge: FollowerID follows UserID.
// One row per ordered pair; both directions are queried from this table.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index;uniqueIndex:idx_user_follower" json:"user_id"` // followee
	User       User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	FollowerID uint      `gorm:"not null;index;uniqueIndex:idx_user_follower" json:"follower_id"`
	Follower   User      `gorm:"foreignKey:FollowerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

package models

import (
	"time"
)

type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     *uint     `gorm:"index" json:"user_id"` // nullable: cleared when the owner account is deleted
	User       *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	LikesCount int       `gorm:"default:0;not null" json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Filled on detail queries, not stored
	CommentCount int `gorm:"-" json:"comment_count,omitempty"`
}

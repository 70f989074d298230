package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`    // stored lowercased
	Username       string    `gorm:"uniqueIndex;not null" json:"username"` // stored lowercased
	Password       string    `gorm:"not null" json:"-"`                    // bcrypt hash
	Role           string    `gorm:"size:20;default:'user';not null" json:"role"`
	Enabled        bool      `gorm:"default:true" json:"enabled"`
	Locked         bool      `gorm:"default:false" json:"locked"`
	ProfilePicture []byte    `json:"-"` // opaque blob, served separately
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	// No DeletedAt: user removal is a hard delete after content detach
}

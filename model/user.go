package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleAnalyst UserRole = "analyst"
	RoleViewer  UserRole = "viewer"
)

// User stores user account information
type User struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	Email          string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	FullName       string     `gorm:"size:255;not null" json:"fullName"`
	HashedPassword string     `gorm:"size:255;not null" json:"-"`
	Role           UserRole   `gorm:"size:16;default:viewer;not null" json:"role"`
	IsActive       bool       `gorm:"default:true;not null" json:"isActive"`
	SiteID         *uint      `gorm:"index" json:"siteId,omitempty"`
	LastLogin      *time.Time `json:"lastLogin,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == 0 {
		u.ID = GenerateID()
	}
	return nil
}

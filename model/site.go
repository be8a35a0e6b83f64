package model

import (
	"time"

	"gorm.io/gorm"
)

// Site stores a physical location users, assets and agents belong to.
type Site struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Name       string    `gorm:"size:255;index;not null" json:"name"`
	Address    string    `gorm:"size:500" json:"address,omitempty"`
	City       string    `gorm:"size:100" json:"city,omitempty"`
	Country    string    `gorm:"size:100" json:"country,omitempty"`
	PostalCode string    `gorm:"size:20" json:"postalCode,omitempty"`
	Phone      string    `gorm:"size:50" json:"phone,omitempty"`
	Email      string    `gorm:"size:255" json:"email,omitempty"`
	IsActive   bool      `gorm:"default:true;not null" json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (s *Site) BeforeCreate(tx *gorm.DB) error {
	if s.ID == 0 {
		s.ID = GenerateID()
	}
	return nil
}

package model

import (
	"time"

	"gorm.io/gorm"
)

type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
	TicketStatusCancelled  TicketStatus = "cancelled"
)

type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "low"
	TicketPriorityMedium   TicketPriority = "medium"
	TicketPriorityHigh     TicketPriority = "high"
	TicketPriorityCritical TicketPriority = "critical"
)

// Ticket stores a support/incident ticket, optionally linked to an asset.
type Ticket struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Title        string         `gorm:"size:255;index;not null" json:"title"`
	Description  string         `gorm:"type:text;not null" json:"description"`
	Status       TicketStatus   `gorm:"size:16;default:open;not null" json:"status"`
	Priority     TicketPriority `gorm:"size:16;default:medium;not null" json:"priority"`
	AssetID      *uint          `gorm:"index" json:"assetId,omitempty"`
	AssignedToID *uint          `gorm:"index" json:"assignedToId,omitempty"`
	CreatedByID  uint           `gorm:"index;not null" json:"createdById"`
	ResolvedAt   *time.Time     `json:"resolvedAt,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == 0 {
		t.ID = GenerateID()
	}
	return nil
}

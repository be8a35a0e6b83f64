package model

import (
	"time"

	"gorm.io/gorm"
)

type AgentStatus string

const (
	AgentStatusOnline  AgentStatus = "online"
	AgentStatusOffline AgentStatus = "offline"
	AgentStatusUnknown AgentStatus = "unknown"
)

// Agent stores a self-registering fleet endpoint. Agents are keyed by
// hostname for upsert purposes; the unique index is what serializes
// concurrent first-heartbeats.
type Agent struct {
	ID            uint        `gorm:"primarykey" json:"id"`
	Name          string      `gorm:"size:255;index;not null" json:"name"`
	Hostname      string      `gorm:"uniqueIndex;size:255;not null" json:"hostname"`
	OSType        string      `gorm:"size:50;not null" json:"osType"`
	OSVersion     string      `gorm:"size:255" json:"osVersion,omitempty"`
	IPAddress     string      `gorm:"size:45" json:"ipAddress,omitempty"`
	Status        AgentStatus `gorm:"size:16;default:unknown;not null" json:"status"`
	SiteID        *uint       `gorm:"index" json:"siteId,omitempty"`
	LastHeartbeat *time.Time  `json:"lastHeartbeat,omitempty"`
	InventoryData JSONMap     `json:"inventoryData,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

func (a *Agent) BeforeCreate(tx *gorm.DB) error {
	if a.ID == 0 {
		a.ID = GenerateID()
	}
	return nil
}

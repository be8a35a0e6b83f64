package model

import (
	"time"

	"gorm.io/gorm"
)

type AssetType string

const (
	AssetTypeComputer      AssetType = "computer"
	AssetTypeServer        AssetType = "server"
	AssetTypeNetworkDevice AssetType = "network_device"
	AssetTypePrinter       AssetType = "printer"
	AssetTypeMobileDevice  AssetType = "mobile_device"
	AssetTypeSoftware      AssetType = "software"
	AssetTypeOther         AssetType = "other"
)

type AssetStatus string

const (
	AssetStatusActive      AssetStatus = "active"
	AssetStatusInactive    AssetStatus = "inactive"
	AssetStatusMaintenance AssetStatus = "maintenance"
	AssetStatusRetired     AssetStatus = "retired"
)

// Asset stores a tracked piece of IT equipment or software.
type Asset struct {
	ID             uint        `gorm:"primarykey" json:"id"`
	Name           string      `gorm:"size:255;index;not null" json:"name"`
	AssetType      AssetType   `gorm:"size:32;not null" json:"assetType"`
	Status         AssetStatus `gorm:"size:16;default:active;not null" json:"status"`
	SerialNumber   string      `gorm:"size:255;index" json:"serialNumber,omitempty"`
	Model          string      `gorm:"size:255" json:"model,omitempty"`
	Manufacturer   string      `gorm:"size:255" json:"manufacturer,omitempty"`
	PurchaseDate   *time.Time  `json:"purchaseDate,omitempty"`
	WarrantyExpiry *time.Time  `json:"warrantyExpiry,omitempty"`
	Cost           *float64    `json:"cost,omitempty"`
	Location       string      `gorm:"size:255" json:"location,omitempty"`
	Notes          string      `gorm:"type:text" json:"notes,omitempty"`
	SiteID         *uint       `gorm:"index" json:"siteId,omitempty"`
	CreatedByID    uint        `gorm:"index;not null" json:"createdById"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == 0 {
		a.ID = GenerateID()
	}
	return nil
}

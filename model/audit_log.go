package model

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionLogin  AuditAction = "login"
	AuditActionLogout AuditAction = "logout"
	AuditActionView   AuditAction = "view"
	AuditActionExport AuditAction = "export"
)

// AuditLog is an append-only record of a privileged action. Rows are never
// updated or deleted by the application.
type AuditLog struct {
	ID           uint64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       *uint       `gorm:"index" json:"userId,omitempty"` // nil for system actions
	Action       AuditAction `gorm:"size:16;not null;index" json:"action"`
	ResourceType string      `gorm:"size:100;not null;index" json:"resourceType"`
	ResourceID   *uint       `gorm:"index" json:"resourceId,omitempty"`
	Details      string      `gorm:"type:text" json:"details,omitempty"`
	IPAddress    string      `gorm:"size:45" json:"ipAddress,omitempty"`
	UserAgent    string      `gorm:"size:500" json:"userAgent,omitempty"`
	CreatedAt    time.Time   `gorm:"autoCreateTime;index" json:"createdAt"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}

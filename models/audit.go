package models

import (
	"time"
)

type AuditAction string

const (
	AuditActionLogin              AuditAction = "login"
	AuditActionUserUpdate         AuditAction = "user_update"
	AuditActionUserDelete         AuditAction = "user_delete"
	AuditActionContactCreate      AuditAction = "contact_create"
	AuditActionContactUpdate      AuditAction = "contact_update"
	AuditActionContactDelete      AuditAction = "contact_delete"
	AuditActionCalendarCreate     AuditAction = "calendar_create"
	AuditActionCalendarUpdate     AuditAction = "calendar_update"
	AuditActionCalendarDelete     AuditAction = "calendar_delete"
	AuditActionCalendarComplete   AuditAction = "calendar_complete"
	AuditActionCalendarImportance AuditAction = "calendar_importance"
)

type AuditLog struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    uint        `gorm:"index" json:"user_id"`
	Action    AuditAction `gorm:"index" json:"action"`
	TargetID  string      `json:"target_id,omitempty"`
	Details   string      `json:"details,omitempty"`
	IPAddress string      `json:"ip_address"`
	CreatedAt time.Time   `gorm:"index" json:"created_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is a best-effort trail for sensitive actions (switch-organization,
// organization-request decisions). Write failures are logged, never surfaced.
type AuditLog struct {
	ID             uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID         *uuid.UUID  `json:"user_id,omitempty" gorm:"type:uuid;index"`
	OrganizationID *uuid.UUID  `json:"organization_id,omitempty" gorm:"type:uuid;index"`
	Action         string      `json:"action" gorm:"type:varchar(50);not null;index"`
	EntityType     string      `json:"entity_type" gorm:"type:varchar(50)"`
	EntityID       *uuid.UUID  `json:"entity_id,omitempty" gorm:"type:uuid"`
	Detail         interface{} `json:"detail,omitempty" gorm:"serializer:json"`
	IPAddress      string      `json:"ip_address" gorm:"type:varchar(45)"`
	CreatedAt      time.Time   `json:"created_at" gorm:"autoCreateTime;index"`
}

// TableName returns the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

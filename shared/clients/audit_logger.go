package clients

import (
	"log"

	"gorm.io/gorm"

	"hrforge-backend/shared/database/models"
)

// AuditLogger records sensitive actions. Best effort: a failed write is
// logged and never fails the action being audited.
type AuditLogger interface {
	Create(entry models.AuditLog)
}

// DBAuditLogger persists audit entries to the audit_logs table.
type DBAuditLogger struct {
	DB *gorm.DB
}

func NewDBAuditLogger(db *gorm.DB) *DBAuditLogger {
	return &DBAuditLogger{DB: db}
}

func (l *DBAuditLogger) Create(entry models.AuditLog) {
	if err := l.DB.Create(&entry).Error; err != nil {
		log.Printf("⚠️ Failed to write audit log (%s): %v", entry.Action, err)
	}
}

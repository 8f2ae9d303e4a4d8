package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditRecord is one engine run, stored relationally.
type AuditRecord struct {
	AuditID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"auditId"`
	Operation  string    `gorm:"type:varchar(64);not null;index" json:"operation"`
	Subject    string    `gorm:"type:varchar(255);not null;index" json:"subject"`
	Actor      string    `gorm:"type:varchar(255)" json:"actor"`
	RequestID  string    `gorm:"type:varchar(128)" json:"requestId,omitempty"`
	Success    bool      `gorm:"not null" json:"success"`
	Deleted    int       `gorm:"not null;default:0" json:"deleted"`
	Failures   int       `gorm:"not null;default:0" json:"failures"`
	Detail     string    `gorm:"type:text" json:"detail,omitempty"`
	DurationMS int64     `gorm:"not null;default:0" json:"durationMs"`
	CreatedAt  time.Time `gorm:"not null;index" json:"createdAt"`
}

func (AuditRecord) TableName() string {
	return "audit_records"
}

// Audit operation names.
const (
	OpDeleteAccount     = "delete_account"
	OpDeleteUser        = "delete_user"
	OpResetProgress     = "reset_progress"
	OpCascadeContent    = "cascade_delete_content"
	OpDeleteContentItem = "delete_content_item"
	OpCleanupOrphans    = "cleanup_orphaned_assessments"
	OpUpdateUserStatus  = "update_user_status"
	OpResolveFeedback   = "resolve_feedback"
)

package model

import (
	"database/sql"
	"time"
)

// Audit event levels
const (
	AuditLevelInfo    = "info"
	AuditLevelWarning = "warning"
	AuditLevelError   = "error"
)

// Audit event categories
const (
	AuditCategorySkill  = "skill"
	AuditCategoryEvent  = "event"
	AuditCategoryAuth   = "auth"
	AuditCategorySystem = "system"
)

// AuditEvent represents an audit log entry. Entries come from two sources:
// the slog handler (WARN and above) and explicit writes on notable actions
// such as archiving a skill or deleting an event.
type AuditEvent struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	Metadata  string // JSON string
	CreatedAt time.Time
}

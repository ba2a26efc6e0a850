package model

import (
	"database/sql"
	"time"
)

// EventTemplate pre-fills event creation parameters. Applying a template
// creates a regular event; templates never participate in decay math.
type EventTemplate struct {
	ID                     int64         `json:"id"`
	UserID                 int64         `json:"user_id"`
	Name                   string        `json:"name"`
	Kind                   string        `json:"kind"`
	Type                   string        `json:"type"`
	DefaultDurationMinutes sql.NullInt64 `json:"default_duration_minutes,omitempty"`
	DefaultNotes           string        `json:"default_notes,omitempty"`
	CreatedAt              time.Time     `json:"created_at"`
	UpdatedAt              time.Time     `json:"updated_at"`
}

// ValidateTemplate checks template fields at the API boundary.
func ValidateTemplate(name, kind, typ string, defaultDuration sql.NullInt64) map[string]string {
	errs := make(map[string]string)

	if name == "" {
		errs["name"] = "Name is required"
	}

	if kind != EventKindLearning && kind != EventKindPractice {
		errs["kind"] = "Kind must be 'learning' or 'practice'"
	} else if !ValidEventType(kind, typ) {
		errs["type"] = "Type is not valid for the selected kind"
	}

	if defaultDuration.Valid && defaultDuration.Int64 <= 0 {
		errs["default_duration_minutes"] = "Default duration must be a positive number of minutes"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

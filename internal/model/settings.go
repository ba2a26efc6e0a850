package model

import (
	"database/sql"
)

// UserSettings holds per-user application settings as typed fields.
// The set of recognized settings is fixed; adding one means adding a column.
type UserSettings struct {
	UserID                 int64        `json:"user_id"`
	HasCompletedOnboarding bool         `json:"has_completed_onboarding"`
	OnboardingCompletedAt  sql.NullTime `json:"onboarding_completed_at,omitempty"`
}

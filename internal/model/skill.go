package model

import (
	"database/sql"
	"fmt"
	"time"
)

// Decay rate bounds. The rate is the fraction of freshness lost per day:
// 0.02 means freshness drops by 2 percentage points each day without practice.
const (
	DefaultDecayRate = 0.02
	MinDecayRate     = 0.001
	MaxDecayRate     = 0.5
)

// Skill represents a tracked skill. Freshness is never stored on the row;
// it is recomputed from the skill's event log on every read.
type Skill struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	Name            string          `json:"name"`
	CategoryID      sql.NullInt64   `json:"category_id,omitempty"`
	DecayRate       float64         `json:"decay_rate"`
	TargetFreshness sql.NullFloat64 `json:"target_freshness,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	ArchivedAt      sql.NullTime    `json:"archived_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// IsArchived reports whether the skill has been soft-deleted.
func (s *Skill) IsArchived() bool {
	return s.ArchivedAt.Valid
}

// ValidateSkill checks skill configuration at the API boundary. The engine
// assumes validated input and does not re-validate.
func ValidateSkill(name string, decayRate float64, target sql.NullFloat64) map[string]string {
	errs := make(map[string]string)

	if name == "" {
		errs["name"] = "Name is required"
	} else if len(name) > 200 {
		errs["name"] = "Name must be 200 characters or less"
	}

	if decayRate < MinDecayRate || decayRate > MaxDecayRate {
		errs["decay_rate"] = fmt.Sprintf("Decay rate must be between %g and %g", MinDecayRate, MaxDecayRate)
	}

	if target.Valid && (target.Float64 < 0 || target.Float64 > 100) {
		errs["target_freshness"] = "Target freshness must be between 0 and 100"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Category groups skills for display and category statistics.
type Category struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

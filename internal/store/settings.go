package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/olegiv/skillfresh/internal/model"
)

const getUserSettings = `
SELECT user_id, has_completed_onboarding, onboarding_completed_at
FROM user_settings WHERE user_id = ?
`

// GetUserSettings returns the user's settings. A user with no settings row
// yet gets the defaults; that is not an error.
func (q *Queries) GetUserSettings(ctx context.Context, userID int64) (model.UserSettings, error) {
	var s model.UserSettings
	err := q.db.QueryRowContext(ctx, getUserSettings, userID).
		Scan(&s.UserID, &s.HasCompletedOnboarding, &s.OnboardingCompletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.UserSettings{UserID: userID}, nil
	}
	return s, err
}

const completeOnboarding = `
INSERT INTO user_settings (user_id, has_completed_onboarding, onboarding_completed_at)
VALUES (?, 1, ?)
ON CONFLICT (user_id) DO UPDATE SET
    has_completed_onboarding = 1,
    onboarding_completed_at = COALESCE(user_settings.onboarding_completed_at, excluded.onboarding_completed_at)
`

// CompleteOnboarding marks onboarding done. Idempotent; the first completion
// time wins.
func (q *Queries) CompleteOnboarding(ctx context.Context, userID int64, completedAt time.Time) error {
	_, err := q.db.ExecContext(ctx, completeOnboarding, userID, completedAt)
	return err
}

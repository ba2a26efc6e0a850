package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/skillfresh/internal/model"
)

const skillColumns = `id, user_id, name, category_id, decay_rate, target_freshness,
notes, archived_at, created_at, updated_at`

const createSkill = `
INSERT INTO skills (user_id, name, category_id, decay_rate, target_freshness, notes, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + skillColumns

// CreateSkillParams holds the parameters for CreateSkill.
type CreateSkillParams struct {
	UserID          int64
	Name            string
	CategoryID      sql.NullInt64
	DecayRate       float64
	TargetFreshness sql.NullFloat64
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreateSkill inserts a new skill.
func (q *Queries) CreateSkill(ctx context.Context, arg CreateSkillParams) (model.Skill, error) {
	row := q.db.QueryRowContext(ctx, createSkill,
		arg.UserID, arg.Name, arg.CategoryID, arg.DecayRate, arg.TargetFreshness,
		arg.Notes, arg.CreatedAt, arg.UpdatedAt)
	return scanSkill(row)
}

const getSkill = `
SELECT ` + skillColumns + ` FROM skills WHERE id = ? AND user_id = ?
`

// GetSkillParams holds the parameters for GetSkill.
type GetSkillParams struct {
	ID     int64
	UserID int64
}

// GetSkill fetches one of the user's skills, archived or not.
func (q *Queries) GetSkill(ctx context.Context, arg GetSkillParams) (model.Skill, error) {
	return scanSkill(q.db.QueryRowContext(ctx, getSkill, arg.ID, arg.UserID))
}

const listSkills = `
SELECT ` + skillColumns + ` FROM skills
WHERE user_id = ? AND archived_at IS NULL
ORDER BY name
`

// ListSkills returns the user's active skills ordered by name.
func (q *Queries) ListSkills(ctx context.Context, userID int64) ([]model.Skill, error) {
	return q.querySkills(ctx, listSkills, userID)
}

const listArchivedSkills = `
SELECT ` + skillColumns + ` FROM skills
WHERE user_id = ? AND archived_at IS NOT NULL
ORDER BY name
`

// ListArchivedSkills returns the user's archived skills ordered by name.
func (q *Queries) ListArchivedSkills(ctx context.Context, userID int64) ([]model.Skill, error) {
	return q.querySkills(ctx, listArchivedSkills, userID)
}

const updateSkill = `
UPDATE skills
SET name = ?, category_id = ?, decay_rate = ?, target_freshness = ?, notes = ?, updated_at = ?
WHERE id = ? AND user_id = ?
RETURNING ` + skillColumns

// UpdateSkillParams holds the parameters for UpdateSkill.
type UpdateSkillParams struct {
	ID              int64
	UserID          int64
	Name            string
	CategoryID      sql.NullInt64
	DecayRate       float64
	TargetFreshness sql.NullFloat64
	Notes           string
	UpdatedAt       time.Time
}

// UpdateSkill replaces a skill's mutable fields. Changing the decay rate
// takes effect on the next read; nothing stored needs recomputing.
func (q *Queries) UpdateSkill(ctx context.Context, arg UpdateSkillParams) (model.Skill, error) {
	row := q.db.QueryRowContext(ctx, updateSkill,
		arg.Name, arg.CategoryID, arg.DecayRate, arg.TargetFreshness, arg.Notes,
		arg.UpdatedAt, arg.ID, arg.UserID)
	return scanSkill(row)
}

const archiveSkill = `
UPDATE skills SET archived_at = ?, updated_at = ?
WHERE id = ? AND user_id = ? AND archived_at IS NULL
`

// ArchiveSkillParams holds the parameters for ArchiveSkill.
type ArchiveSkillParams struct {
	ID         int64
	UserID     int64
	ArchivedAt time.Time
}

// ArchiveSkill hides a skill from lists and aggregates. History is kept.
func (q *Queries) ArchiveSkill(ctx context.Context, arg ArchiveSkillParams) error {
	res, err := q.db.ExecContext(ctx, archiveSkill, arg.ArchivedAt, arg.ArchivedAt, arg.ID, arg.UserID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

const unarchiveSkill = `
UPDATE skills SET archived_at = NULL, updated_at = ?
WHERE id = ? AND user_id = ? AND archived_at IS NOT NULL
`

// UnarchiveSkillParams holds the parameters for UnarchiveSkill.
type UnarchiveSkillParams struct {
	ID        int64
	UserID    int64
	UpdatedAt time.Time
}

// UnarchiveSkill restores an archived skill.
func (q *Queries) UnarchiveSkill(ctx context.Context, arg UnarchiveSkillParams) error {
	res, err := q.db.ExecContext(ctx, unarchiveSkill, arg.UpdatedAt, arg.ID, arg.UserID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

const deleteSkill = `
DELETE FROM skills WHERE id = ? AND user_id = ?
`

// DeleteSkillParams holds the parameters for DeleteSkill.
type DeleteSkillParams struct {
	ID     int64
	UserID int64
}

// DeleteSkill removes a skill permanently. Events cascade.
func (q *Queries) DeleteSkill(ctx context.Context, arg DeleteSkillParams) error {
	res, err := q.db.ExecContext(ctx, deleteSkill, arg.ID, arg.UserID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

const skillNameExists = `
SELECT EXISTS(SELECT 1 FROM skills WHERE user_id = ? AND name = ?)
`

// SkillNameExistsParams holds the parameters for SkillNameExists.
type SkillNameExistsParams struct {
	UserID int64
	Name   string
}

// SkillNameExists reports whether the user already has a skill by this name.
func (q *Queries) SkillNameExists(ctx context.Context, arg SkillNameExistsParams) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, skillNameExists, arg.UserID, arg.Name).Scan(&exists)
	return exists, err
}

func (q *Queries) querySkills(ctx context.Context, query string, args ...interface{}) ([]model.Skill, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skills []model.Skill
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

func scanSkill(row rowScanner) (model.Skill, error) {
	var s model.Skill
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.CategoryID, &s.DecayRate,
		&s.TargetFreshness, &s.Notes, &s.ArchivedAt, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// requireRowAffected converts a zero-row update or delete into sql.ErrNoRows
// so handlers can answer 404 without a prior existence check.
func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

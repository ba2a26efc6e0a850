package store

import (
	"context"
	"time"
)

const addSkillDependency = `
INSERT INTO skill_dependencies (skill_id, depends_on_id, created_at)
VALUES (?, ?, ?)
ON CONFLICT (skill_id, depends_on_id) DO NOTHING
`

// AddSkillDependencyParams holds the parameters for AddSkillDependency.
type AddSkillDependencyParams struct {
	SkillID     int64
	DependsOnID int64
	CreatedAt   time.Time
}

// AddSkillDependency marks one skill as a prerequisite of another.
// Re-adding an existing edge is a no-op.
func (q *Queries) AddSkillDependency(ctx context.Context, arg AddSkillDependencyParams) error {
	_, err := q.db.ExecContext(ctx, addSkillDependency, arg.SkillID, arg.DependsOnID, arg.CreatedAt)
	return err
}

const removeSkillDependency = `
DELETE FROM skill_dependencies WHERE skill_id = ? AND depends_on_id = ?
`

// RemoveSkillDependencyParams holds the parameters for RemoveSkillDependency.
type RemoveSkillDependencyParams struct {
	SkillID     int64
	DependsOnID int64
}

// RemoveSkillDependency deletes a prerequisite edge.
func (q *Queries) RemoveSkillDependency(ctx context.Context, arg RemoveSkillDependencyParams) error {
	res, err := q.db.ExecContext(ctx, removeSkillDependency, arg.SkillID, arg.DependsOnID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

const listSkillDependencyIDs = `
SELECT depends_on_id FROM skill_dependencies WHERE skill_id = ? ORDER BY depends_on_id
`

// ListSkillDependencyIDs returns the IDs of a skill's direct prerequisites.
// Lookups are one level deep only.
func (q *Queries) ListSkillDependencyIDs(ctx context.Context, skillID int64) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx, listSkillDependencyIDs, skillID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

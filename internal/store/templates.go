package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/skillfresh/internal/model"
)

const templateColumns = `id, user_id, name, kind, type, default_duration_minutes,
default_notes, created_at, updated_at`

const createTemplate = `
INSERT INTO event_templates (user_id, name, kind, type, default_duration_minutes, default_notes, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + templateColumns

// CreateTemplateParams holds the parameters for CreateTemplate.
type CreateTemplateParams struct {
	UserID                 int64
	Name                   string
	Kind                   string
	Type                   string
	DefaultDurationMinutes sql.NullInt64
	DefaultNotes           string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// CreateTemplate inserts a new event template.
func (q *Queries) CreateTemplate(ctx context.Context, arg CreateTemplateParams) (model.EventTemplate, error) {
	row := q.db.QueryRowContext(ctx, createTemplate,
		arg.UserID, arg.Name, arg.Kind, arg.Type, arg.DefaultDurationMinutes,
		arg.DefaultNotes, arg.CreatedAt, arg.UpdatedAt)
	return scanTemplate(row)
}

const getTemplate = `
SELECT ` + templateColumns + ` FROM event_templates WHERE id = ? AND user_id = ?
`

// GetTemplateParams holds the parameters for GetTemplate.
type GetTemplateParams struct {
	ID     int64
	UserID int64
}

// GetTemplate fetches one of the user's templates.
func (q *Queries) GetTemplate(ctx context.Context, arg GetTemplateParams) (model.EventTemplate, error) {
	return scanTemplate(q.db.QueryRowContext(ctx, getTemplate, arg.ID, arg.UserID))
}

const listTemplates = `
SELECT ` + templateColumns + ` FROM event_templates WHERE user_id = ? ORDER BY name
`

// ListTemplates returns the user's templates ordered by name.
func (q *Queries) ListTemplates(ctx context.Context, userID int64) ([]model.EventTemplate, error) {
	rows, err := q.db.QueryContext(ctx, listTemplates, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []model.EventTemplate
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}
	return templates, rows.Err()
}

const updateTemplate = `
UPDATE event_templates
SET name = ?, kind = ?, type = ?, default_duration_minutes = ?, default_notes = ?, updated_at = ?
WHERE id = ? AND user_id = ?
RETURNING ` + templateColumns

// UpdateTemplateParams holds the parameters for UpdateTemplate.
type UpdateTemplateParams struct {
	ID                     int64
	UserID                 int64
	Name                   string
	Kind                   string
	Type                   string
	DefaultDurationMinutes sql.NullInt64
	DefaultNotes           string
	UpdatedAt              time.Time
}

// UpdateTemplate replaces a template's fields. Events already logged from it
// are unaffected.
func (q *Queries) UpdateTemplate(ctx context.Context, arg UpdateTemplateParams) (model.EventTemplate, error) {
	row := q.db.QueryRowContext(ctx, updateTemplate,
		arg.Name, arg.Kind, arg.Type, arg.DefaultDurationMinutes, arg.DefaultNotes,
		arg.UpdatedAt, arg.ID, arg.UserID)
	return scanTemplate(row)
}

const deleteTemplate = `
DELETE FROM event_templates WHERE id = ? AND user_id = ?
`

// DeleteTemplateParams holds the parameters for DeleteTemplate.
type DeleteTemplateParams struct {
	ID     int64
	UserID int64
}

// DeleteTemplate removes a template.
func (q *Queries) DeleteTemplate(ctx context.Context, arg DeleteTemplateParams) error {
	res, err := q.db.ExecContext(ctx, deleteTemplate, arg.ID, arg.UserID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func scanTemplate(row rowScanner) (model.EventTemplate, error) {
	var tpl model.EventTemplate
	err := row.Scan(&tpl.ID, &tpl.UserID, &tpl.Name, &tpl.Kind, &tpl.Type,
		&tpl.DefaultDurationMinutes, &tpl.DefaultNotes, &tpl.CreatedAt, &tpl.UpdatedAt)
	return tpl, err
}

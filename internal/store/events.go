package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/skillfresh/internal/model"
)

const eventColumns = `id, skill_id, user_id, kind, type, date, notes, duration_minutes, created_at`

const createEvent = `
INSERT INTO events (skill_id, user_id, kind, type, date, notes, duration_minutes, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + eventColumns

// CreateEventParams holds the parameters for CreateEvent.
type CreateEventParams struct {
	SkillID         int64
	UserID          int64
	Kind            string
	Type            string
	Date            time.Time
	Notes           string
	DurationMinutes sql.NullInt64
	CreatedAt       time.Time
}

// CreateEvent inserts a new event. Date carries calendar-day resolution;
// callers normalize it with model.DateOf first.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (model.Event, error) {
	row := q.db.QueryRowContext(ctx, createEvent,
		arg.SkillID, arg.UserID, arg.Kind, arg.Type, arg.Date,
		arg.Notes, arg.DurationMinutes, arg.CreatedAt)
	return scanEvent(row)
}

const getEvent = `
SELECT ` + eventColumns + ` FROM events WHERE id = ? AND user_id = ?
`

// GetEventParams holds the parameters for GetEvent.
type GetEventParams struct {
	ID     int64
	UserID int64
}

// GetEvent fetches one of the user's events.
func (q *Queries) GetEvent(ctx context.Context, arg GetEventParams) (model.Event, error) {
	return scanEvent(q.db.QueryRowContext(ctx, getEvent, arg.ID, arg.UserID))
}

const listEventsBySkill = `
SELECT ` + eventColumns + ` FROM events
WHERE skill_id = ? AND user_id = ?
ORDER BY date, id
`

// ListEventsBySkillParams holds the parameters for ListEventsBySkill.
type ListEventsBySkillParams struct {
	SkillID int64
	UserID  int64
}

// ListEventsBySkill returns a skill's full event history, oldest first.
func (q *Queries) ListEventsBySkill(ctx context.Context, arg ListEventsBySkillParams) ([]model.Event, error) {
	return q.queryEvents(ctx, listEventsBySkill, arg.SkillID, arg.UserID)
}

const listEventsByUser = `
SELECT ` + eventColumns + ` FROM events
WHERE user_id = ?
ORDER BY date, id
`

// ListEventsByUser returns all of a user's events, oldest first.
func (q *Queries) ListEventsByUser(ctx context.Context, userID int64) ([]model.Event, error) {
	return q.queryEvents(ctx, listEventsByUser, userID)
}

const listEventsByUserInRange = `
SELECT ` + eventColumns + ` FROM events
WHERE user_id = ? AND date >= ? AND date < ?
ORDER BY date, id
`

// ListEventsByUserInRangeParams holds the parameters for ListEventsByUserInRange.
// The range is half-open: [From, To).
type ListEventsByUserInRangeParams struct {
	UserID int64
	From   time.Time
	To     time.Time
}

// ListEventsByUserInRange returns the user's events within a date range.
func (q *Queries) ListEventsByUserInRange(ctx context.Context, arg ListEventsByUserInRangeParams) ([]model.Event, error) {
	return q.queryEvents(ctx, listEventsByUserInRange, arg.UserID, arg.From, arg.To)
}

const updateEvent = `
UPDATE events
SET notes = ?, duration_minutes = ?
WHERE id = ? AND user_id = ?
RETURNING ` + eventColumns

// UpdateEventParams holds the parameters for UpdateEvent. Only notes and
// duration are editable: kind, type and date are fixed once the event exists,
// since moving them would rewrite freshness history.
type UpdateEventParams struct {
	ID              int64
	UserID          int64
	Notes           string
	DurationMinutes sql.NullInt64
}

// UpdateEvent replaces an event's editable fields.
func (q *Queries) UpdateEvent(ctx context.Context, arg UpdateEventParams) (model.Event, error) {
	row := q.db.QueryRowContext(ctx, updateEvent,
		arg.Notes, arg.DurationMinutes, arg.ID, arg.UserID)
	return scanEvent(row)
}

const deleteEvent = `
DELETE FROM events WHERE id = ? AND user_id = ?
`

// DeleteEventParams holds the parameters for DeleteEvent.
type DeleteEventParams struct {
	ID     int64
	UserID int64
}

// DeleteEvent removes an event. Deleting the most recent practice moves the
// decay baseline back to the previous one on the next read.
func (q *Queries) DeleteEvent(ctx context.Context, arg DeleteEventParams) error {
	res, err := q.db.ExecContext(ctx, deleteEvent, arg.ID, arg.UserID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (q *Queries) queryEvents(ctx context.Context, query string, args ...interface{}) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func scanEvent(row rowScanner) (model.Event, error) {
	var e model.Event
	err := row.Scan(&e.ID, &e.SkillID, &e.UserID, &e.Kind, &e.Type, &e.Date,
		&e.Notes, &e.DurationMinutes, &e.CreatedAt)
	return e, err
}

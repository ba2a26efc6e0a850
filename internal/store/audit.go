package store

import (
	"context"
	"time"

	"github.com/olegiv/skillfresh/internal/model"
)

const insertAuditEvent = `
INSERT INTO audit_events (level, category, message, user_id, metadata, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`

// InsertAuditEventParams holds the parameters for InsertAuditEvent.
type InsertAuditEventParams struct {
	Level     string
	Category  string
	Message   string
	UserID    int64 // 0 means no user attribution
	Metadata  string
	CreatedAt time.Time
}

// InsertAuditEvent appends one row to the audit trail.
func (q *Queries) InsertAuditEvent(ctx context.Context, arg InsertAuditEventParams) error {
	var userID interface{}
	if arg.UserID != 0 {
		userID = arg.UserID
	}
	_, err := q.db.ExecContext(ctx, insertAuditEvent,
		arg.Level, arg.Category, arg.Message, userID, arg.Metadata, arg.CreatedAt)
	return err
}

const listAuditEvents = `
SELECT id, level, category, message, user_id, metadata, created_at
FROM audit_events
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?
`

// ListAuditEventsParams holds the parameters for ListAuditEvents.
type ListAuditEventsParams struct {
	Limit  int64
	Offset int64
}

// ListAuditEvents returns audit rows, newest first.
func (q *Queries) ListAuditEvents(ctx context.Context, arg ListAuditEventsParams) ([]model.AuditEvent, error) {
	rows, err := q.db.QueryContext(ctx, listAuditEvents, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.AuditEvent
	for rows.Next() {
		var e model.AuditEvent
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message,
			&e.UserID, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

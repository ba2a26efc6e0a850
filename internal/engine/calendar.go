package engine

import (
	"time"

	"github.com/olegiv/skillfresh/internal/model"
)

// EventSummary is one event as it appears in the calendar rollup.
type EventSummary struct {
	EventID         int64  `json:"event_id"`
	SkillID         int64  `json:"skill_id"`
	SkillName       string `json:"skill_name"`
	Kind            string `json:"kind"`
	Type            string `json:"type"`
	Notes           string `json:"notes,omitempty"`
	DurationMinutes *int64 `json:"duration_minutes,omitempty"`
}

// Calendar groups a month's events by calendar date. Display only: there is
// no aggregation beyond the grouping. A month with no events yields an empty
// map, not an error.
type Calendar struct {
	Year         int                       `json:"year"`
	Month        time.Month                `json:"month"`
	EventsByDate map[string][]EventSummary `json:"events_by_date"`
}

// CalendarRollup builds the rollup for one month. skillNames maps skill IDs
// to display names; events outside the month are skipped.
func CalendarRollup(events []model.Event, skillNames map[int64]string, year int, month time.Month) Calendar {
	c := Calendar{
		Year:         year,
		Month:        month,
		EventsByDate: make(map[string][]EventSummary),
	}

	for i := range events {
		e := &events[i]
		d := model.DateOf(e.Date)
		if d.Year() != year || d.Month() != month {
			continue
		}
		summary := EventSummary{
			EventID:   e.ID,
			SkillID:   e.SkillID,
			SkillName: skillNames[e.SkillID],
			Kind:      e.Kind,
			Type:      e.Type,
			Notes:     e.Notes,
		}
		if e.DurationMinutes.Valid {
			m := e.DurationMinutes.Int64
			summary.DurationMinutes = &m
		}
		key := d.Format(model.DateLayout)
		c.EventsByDate[key] = append(c.EventsByDate[key], summary)
	}
	return c
}

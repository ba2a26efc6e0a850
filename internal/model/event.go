package model

import (
	"database/sql"
	"fmt"
	"time"
)

// Event kinds
const (
	EventKindLearning = "learning"
	EventKindPractice = "practice"
)

// Learning event types (passive consumption)
const (
	LearningTypeReading       = "reading"
	LearningTypeVideo         = "video"
	LearningTypeCourse        = "course"
	LearningTypeArticle       = "article"
	LearningTypeDocumentation = "documentation"
	LearningTypeTutorial      = "tutorial"
)

// Practice event types (active application)
const (
	PracticeTypeExercise = "exercise"
	PracticeTypeProject  = "project"
	PracticeTypeWork     = "work"
	PracticeTypeTeaching = "teaching"
	PracticeTypeWriting  = "writing"
	PracticeTypeBuilding = "building"
)

// DateLayout is the storage and wire format for event dates. Events carry
// calendar dates, not timestamps: all decay math operates in whole days.
const DateLayout = "2006-01-02"

// learningTypes and practiceTypes restrict the type field per event kind.
var learningTypes = map[string]bool{
	LearningTypeReading:       true,
	LearningTypeVideo:         true,
	LearningTypeCourse:        true,
	LearningTypeArticle:       true,
	LearningTypeDocumentation: true,
	LearningTypeTutorial:      true,
}

var practiceTypes = map[string]bool{
	PracticeTypeExercise: true,
	PracticeTypeProject:  true,
	PracticeTypeWork:     true,
	PracticeTypeTeaching: true,
	PracticeTypeWriting:  true,
	PracticeTypeBuilding: true,
}

// Event represents one logged learning or practice event against a skill.
// Events are append-only apart from notes/duration edits: date, kind and
// type never change once the row exists.
type Event struct {
	ID              int64         `json:"id"`
	SkillID         int64         `json:"skill_id"`
	UserID          int64         `json:"user_id"`
	Kind            string        `json:"kind"`
	Type            string        `json:"type"`
	Date            time.Time     `json:"date"`
	Notes           string        `json:"notes,omitempty"`
	DurationMinutes sql.NullInt64 `json:"duration_minutes,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

// IsPractice reports whether the event is a practice event.
func (e *Event) IsPractice() bool {
	return e.Kind == EventKindPractice
}

// ValidEventType reports whether typ is a valid type for the given kind.
func ValidEventType(kind, typ string) bool {
	switch kind {
	case EventKindLearning:
		return learningTypes[typ]
	case EventKindPractice:
		return practiceTypes[typ]
	default:
		return false
	}
}

// ParseDate parses a YYYY-MM-DD calendar date into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// DateOf truncates a timestamp to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidateEvent checks event fields at the API boundary. now is the creation
// time; dates in the future relative to it are rejected.
func ValidateEvent(kind, typ string, date time.Time, durationMinutes sql.NullInt64, now time.Time) map[string]string {
	errs := make(map[string]string)

	if kind != EventKindLearning && kind != EventKindPractice {
		errs["kind"] = "Kind must be 'learning' or 'practice'"
	} else if !ValidEventType(kind, typ) {
		errs["type"] = fmt.Sprintf("Invalid %s event type %q", kind, typ)
	}

	if date.After(DateOf(now)) {
		errs["date"] = "Date must not be in the future"
	}

	if durationMinutes.Valid && durationMinutes.Int64 <= 0 {
		errs["duration_minutes"] = "Duration must be a positive number of minutes"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

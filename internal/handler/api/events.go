// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/skillfresh/internal/engine"
	"github.com/olegiv/skillfresh/internal/middleware"
	"github.com/olegiv/skillfresh/internal/model"
	"github.com/olegiv/skillfresh/internal/store"
)

// EventResponse represents an event in API responses.
type EventResponse struct {
	ID              int64     `json:"id"`
	SkillID         int64     `json:"skill_id"`
	Kind            string    `json:"kind"`
	Type            string    `json:"type"`
	Date            string    `json:"date"`
	Notes           string    `json:"notes,omitempty"`
	NotesHTML       string    `json:"notes_html,omitempty"`
	DurationMinutes *int64    `json:"duration_minutes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateEventRequest represents the request body for logging an event.
// TemplateID optionally pre-fills kind, type, duration and notes; explicit
// fields win over template defaults.
type CreateEventRequest struct {
	SkillID         int64  `json:"skill_id"`
	TemplateID      *int64 `json:"template_id,omitempty"`
	Kind            string `json:"kind,omitempty"`
	Type            string `json:"type,omitempty"`
	Date            string `json:"date"`
	Notes           string `json:"notes,omitempty"`
	DurationMinutes *int64 `json:"duration_minutes,omitempty"`
}

// UpdateEventRequest represents the request body for editing an event.
// Only notes and duration are editable; kind, type and date are fixed at
// creation so the freshness history an event anchors never moves.
type UpdateEventRequest struct {
	Notes           *string `json:"notes,omitempty"`
	DurationMinutes *int64  `json:"duration_minutes,omitempty"`
	ClearDuration   bool    `json:"clear_duration,omitempty"`
}

func eventToResponse(e model.Event) EventResponse {
	resp := EventResponse{
		ID:        e.ID,
		SkillID:   e.SkillID,
		Kind:      e.Kind,
		Type:      e.Type,
		Date:      model.DateOf(e.Date).Format(model.DateLayout),
		Notes:     e.Notes,
		NotesHTML: renderNotesHTML(e.Notes),
		CreatedAt: e.CreatedAt,
	}
	if e.DurationMinutes.Valid {
		resp.DurationMinutes = &e.DurationMinutes.Int64
	}
	return resp
}

// CreateEvent handles POST /api/v1/events.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	var req CreateEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// The skill must exist and belong to the user. Archived skills stop
	// accepting new events.
	skill, err := h.queries.GetSkill(r.Context(), store.GetSkillParams{ID: req.SkillID, UserID: userID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteValidationError(w, map[string]string{"skill_id": "Skill not found"})
		} else {
			WriteInternalError(w, "Failed to check skill")
		}
		return
	}
	if skill.IsArchived() {
		WriteValidationError(w, map[string]string{"skill_id": "Skill is archived"})
		return
	}

	if req.TemplateID != nil {
		tpl, err := h.queries.GetTemplate(r.Context(), store.GetTemplateParams{ID: *req.TemplateID, UserID: userID})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				WriteValidationError(w, map[string]string{"template_id": "Template not found"})
			} else {
				WriteInternalError(w, "Failed to load template")
			}
			return
		}
		if req.Kind == "" {
			req.Kind = tpl.Kind
		}
		if req.Type == "" {
			req.Type = tpl.Type
		}
		if req.Notes == "" {
			req.Notes = tpl.DefaultNotes
		}
		if req.DurationMinutes == nil && tpl.DefaultDurationMinutes.Valid {
			req.DurationMinutes = &tpl.DefaultDurationMinutes.Int64
		}
	}

	date, err := model.ParseDate(req.Date)
	if err != nil {
		WriteValidationError(w, map[string]string{"date": "Date must be in YYYY-MM-DD format"})
		return
	}

	duration := sql.NullInt64{}
	if req.DurationMinutes != nil {
		duration = sql.NullInt64{Int64: *req.DurationMinutes, Valid: true}
	}

	now := h.now()
	if errs := model.ValidateEvent(req.Kind, req.Type, date, duration, now); errs != nil {
		WriteValidationError(w, errs)
		return
	}

	event, err := h.queries.CreateEvent(r.Context(), store.CreateEventParams{
		SkillID:         skill.ID,
		UserID:          userID,
		Kind:            req.Kind,
		Type:            req.Type,
		Date:            model.DateOf(date),
		Notes:           req.Notes,
		DurationMinutes: duration,
		CreatedAt:       now,
	})
	if err != nil {
		WriteInternalError(w, "Failed to create event")
		return
	}

	WriteCreated(w, eventToResponse(event))
}

// ListSkillEvents handles GET /api/v1/skills/{id}/events.
func (h *Handler) ListSkillEvents(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	skill, ok := requireEntityByID(w, r, "skill", func(id int64) (model.Skill, error) {
		return h.queries.GetSkill(r.Context(), store.GetSkillParams{ID: id, UserID: userID})
	})
	if !ok {
		return
	}

	events, err := h.queries.ListEventsBySkill(r.Context(), store.ListEventsBySkillParams{
		SkillID: skill.ID,
		UserID:  userID,
	})
	if err != nil {
		WriteInternalError(w, "Failed to list events")
		return
	}

	responses := make([]EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, eventToResponse(e))
	}
	WriteSuccess(w, responses, &Meta{Total: int64(len(responses))})
}

// SkillRecords handles GET /api/v1/skills/{id}/records.
func (h *Handler) SkillRecords(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	skill, ok := requireEntityByID(w, r, "skill", func(id int64) (model.Skill, error) {
		return h.queries.GetSkill(r.Context(), store.GetSkillParams{ID: id, UserID: userID})
	})
	if !ok {
		return
	}

	events, err := h.queries.ListEventsBySkill(r.Context(), store.ListEventsBySkillParams{
		SkillID: skill.ID,
		UserID:  userID,
	})
	if err != nil {
		WriteInternalError(w, "Failed to list events")
		return
	}

	records := engine.ComputeRecords(skill.DecayRate, events, h.now())
	if records.PeakFreshness != nil {
		records.PeakFreshness = roundedFreshness(records.PeakFreshness)
	}
	WriteSuccess(w, records, nil)
}

// UpdateEvent handles PUT /api/v1/events/{id}.
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	event, ok := requireEntityByID(w, r, "event", func(id int64) (model.Event, error) {
		return h.queries.GetEvent(r.Context(), store.GetEventParams{ID: id, UserID: userID})
	})
	if !ok {
		return
	}

	var req UpdateEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	duration := event.DurationMinutes
	if req.ClearDuration {
		duration = sql.NullInt64{}
	} else if req.DurationMinutes != nil {
		duration = sql.NullInt64{Int64: *req.DurationMinutes, Valid: true}
	}
	notes := event.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}

	if duration.Valid && duration.Int64 <= 0 {
		WriteValidationError(w, map[string]string{"duration_minutes": "Duration must be positive"})
		return
	}

	updated, err := h.queries.UpdateEvent(r.Context(), store.UpdateEventParams{
		ID:              event.ID,
		UserID:          userID,
		Notes:           notes,
		DurationMinutes: duration,
	})
	if err != nil {
		WriteInternalError(w, "Failed to update event")
		return
	}

	WriteSuccess(w, eventToResponse(updated), nil)
}

// DeleteEvent handles DELETE /api/v1/events/{id}. Removing the most recent
// practice event shifts the decay baseline back to the one before it.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid event ID", nil)
		return
	}

	err = h.queries.DeleteEvent(r.Context(), store.DeleteEventParams{ID: id, UserID: userID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Event not found")
		} else {
			WriteInternalError(w, "Failed to delete event")
		}
		return
	}

	slog.Warn("event deleted", "category", model.AuditCategoryEvent, "event_id", id, "user_id", userID)
	w.WriteHeader(http.StatusNoContent)
}

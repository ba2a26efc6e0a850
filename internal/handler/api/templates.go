// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/olegiv/skillfresh/internal/middleware"
	"github.com/olegiv/skillfresh/internal/model"
	"github.com/olegiv/skillfresh/internal/store"
)

// TemplateRequest represents the request body for creating or updating a template.
type TemplateRequest struct {
	Name                   string `json:"name"`
	Kind                   string `json:"kind"`
	Type                   string `json:"type"`
	DefaultDurationMinutes *int64 `json:"default_duration_minutes,omitempty"`
	DefaultNotes           string `json:"default_notes,omitempty"`
}

// TemplateResponse represents an event template in API responses.
type TemplateResponse struct {
	ID                     int64     `json:"id"`
	Name                   string    `json:"name"`
	Kind                   string    `json:"kind"`
	Type                   string    `json:"type"`
	DefaultDurationMinutes *int64    `json:"default_duration_minutes,omitempty"`
	DefaultNotes           string    `json:"default_notes,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

func templateToResponse(t model.EventTemplate) TemplateResponse {
	resp := TemplateResponse{
		ID:           t.ID,
		Name:         t.Name,
		Kind:         t.Kind,
		Type:         t.Type,
		DefaultNotes: t.DefaultNotes,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	if t.DefaultDurationMinutes.Valid {
		resp.DefaultDurationMinutes = &t.DefaultDurationMinutes.Int64
	}
	return resp
}

// ListTemplates handles GET /api/v1/templates.
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	templates, err := h.queries.ListTemplates(r.Context(), userID)
	if err != nil {
		WriteInternalError(w, "Failed to list templates")
		return
	}
	responses := make([]TemplateResponse, 0, len(templates))
	for _, tpl := range templates {
		responses = append(responses, templateToResponse(tpl))
	}
	WriteSuccess(w, responses, &Meta{Total: int64(len(responses))})
}

// CreateTemplate handles POST /api/v1/templates.
func (h *Handler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	var req TemplateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	duration := sql.NullInt64{}
	if req.DefaultDurationMinutes != nil {
		duration = sql.NullInt64{Int64: *req.DefaultDurationMinutes, Valid: true}
	}

	if errs := model.ValidateTemplate(req.Name, req.Kind, req.Type, duration); errs != nil {
		WriteValidationError(w, errs)
		return
	}

	now := h.now()
	template, err := h.queries.CreateTemplate(r.Context(), store.CreateTemplateParams{
		UserID:                 userID,
		Name:                   req.Name,
		Kind:                   req.Kind,
		Type:                   req.Type,
		DefaultDurationMinutes: duration,
		DefaultNotes:           req.DefaultNotes,
		CreatedAt:              now,
		UpdatedAt:              now,
	})
	if err != nil {
		WriteInternalError(w, "Failed to create template")
		return
	}

	WriteCreated(w, templateToResponse(template))
}

// UpdateTemplate handles PUT /api/v1/templates/{id}.
func (h *Handler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	existing, ok := requireEntityByID(w, r, "template", func(id int64) (model.EventTemplate, error) {
		return h.queries.GetTemplate(r.Context(), store.GetTemplateParams{ID: id, UserID: userID})
	})
	if !ok {
		return
	}

	var req TemplateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	duration := sql.NullInt64{}
	if req.DefaultDurationMinutes != nil {
		duration = sql.NullInt64{Int64: *req.DefaultDurationMinutes, Valid: true}
	}

	if errs := model.ValidateTemplate(req.Name, req.Kind, req.Type, duration); errs != nil {
		WriteValidationError(w, errs)
		return
	}

	template, err := h.queries.UpdateTemplate(r.Context(), store.UpdateTemplateParams{
		ID:                     existing.ID,
		UserID:                 userID,
		Name:                   req.Name,
		Kind:                   req.Kind,
		Type:                   req.Type,
		DefaultDurationMinutes: duration,
		DefaultNotes:           req.DefaultNotes,
		UpdatedAt:              h.now(),
	})
	if err != nil {
		WriteInternalError(w, "Failed to update template")
		return
	}

	WriteSuccess(w, templateToResponse(template), nil)
}

// DeleteTemplate handles DELETE /api/v1/templates/{id}. Events logged from
// the template are untouched.
func (h *Handler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid template ID", nil)
		return
	}

	err = h.queries.DeleteTemplate(r.Context(), store.DeleteTemplateParams{ID: id, UserID: userID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Template not found")
		} else {
			WriteInternalError(w, "Failed to delete template")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

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

// SkillResponse represents a skill in API responses. Freshness fields are
// computed at response time and never persisted.
type SkillResponse struct {
	ID                int64                   `json:"id"`
	Name              string                  `json:"name"`
	CategoryID        *int64                  `json:"category_id,omitempty"`
	DecayRate         float64                 `json:"decay_rate"`
	TargetFreshness   *float64                `json:"target_freshness,omitempty"`
	Notes             string                  `json:"notes,omitempty"`
	NotesHTML         string                  `json:"notes_html,omitempty"`
	Archived          bool                    `json:"archived"`
	CreatedAt         time.Time               `json:"created_at"`
	UpdatedAt         time.Time               `json:"updated_at"`
	Freshness         *float64                `json:"freshness"`
	Class             *engine.Class           `json:"class,omitempty"`
	DaysSincePractice *int                    `json:"days_since_practice"`
	PracticeCount     int                     `json:"practice_count"`
	LearningCount     int                     `json:"learning_count"`
	Target            engine.TargetStatus     `json:"target_status"`
	Dependencies      []engine.DependencyView `json:"dependencies,omitempty"`
}

// CreateSkillRequest represents the request body for creating a skill.
type CreateSkillRequest struct {
	Name            string   `json:"name"`
	CategoryID      *int64   `json:"category_id,omitempty"`
	DecayRate       *float64 `json:"decay_rate,omitempty"`
	TargetFreshness *float64 `json:"target_freshness,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

// UpdateSkillRequest represents the request body for updating a skill.
// Absent fields keep their current values.
type UpdateSkillRequest struct {
	Name            *string  `json:"name,omitempty"`
	CategoryID      *int64   `json:"category_id,omitempty"`
	DecayRate       *float64 `json:"decay_rate,omitempty"`
	TargetFreshness *float64 `json:"target_freshness,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
	ClearCategory   bool     `json:"clear_category,omitempty"`
	ClearTarget     bool     `json:"clear_target,omitempty"`
}

// skillToResponse converts a skill row plus its freshness summary.
func skillToResponse(s model.Skill, summary engine.Summary) SkillResponse {
	resp := SkillResponse{
		ID:                s.ID,
		Name:              s.Name,
		DecayRate:         s.DecayRate,
		Notes:             s.Notes,
		NotesHTML:         renderNotesHTML(s.Notes),
		Archived:          s.IsArchived(),
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
		Freshness:         roundedFreshness(summary.Freshness),
		Class:             summary.Class,
		DaysSincePractice: summary.DaysSincePractice,
		PracticeCount:     summary.PracticeCount,
		LearningCount:     summary.LearningCount,
		Target:            summary.Target,
	}
	if s.CategoryID.Valid {
		resp.CategoryID = &s.CategoryID.Int64
	}
	if s.TargetFreshness.Valid {
		resp.TargetFreshness = &s.TargetFreshness.Float64
	}
	return resp
}

// roundedFreshness rounds for presentation; nil stays nil.
func roundedFreshness(f *float64) *float64 {
	if f == nil {
		return nil
	}
	r := engine.Round1(*f)
	return &r
}

// summarizeOne loads a skill's events and computes its summary.
func (h *Handler) summarizeOne(r *http.Request, skill model.Skill) (engine.Summary, error) {
	events, err := h.queries.ListEventsBySkill(r.Context(), store.ListEventsBySkillParams{
		SkillID: skill.ID,
		UserID:  skill.UserID,
	})
	if err != nil {
		return engine.Summary{}, err
	}
	return engine.SummarizeSkill(skill, events, h.now()), nil
}

// ListSkills handles GET /api/v1/skills. Pass ?archived=true for the
// archive; active skills are the default.
func (h *Handler) ListSkills(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	var (
		skills []model.Skill
		err    error
	)
	if r.URL.Query().Get("archived") == "true" {
		skills, err = h.queries.ListArchivedSkills(r.Context(), userID)
	} else {
		skills, err = h.queries.ListSkills(r.Context(), userID)
	}
	if err != nil {
		WriteInternalError(w, "Failed to list skills")
		return
	}

	// One events query for the whole list instead of one per skill.
	eventsBySkill, err := h.eventsBySkill(r, userID)
	if err != nil {
		WriteInternalError(w, "Failed to load events")
		return
	}

	now := h.now()
	responses := make([]SkillResponse, 0, len(skills))
	for _, s := range skills {
		summary := engine.SummarizeSkill(s, eventsBySkill[s.ID], now)
		responses = append(responses, skillToResponse(s, summary))
	}

	WriteSuccess(w, responses, &Meta{Total: int64(len(responses))})
}

// eventsBySkill fetches all of the user's events grouped by skill.
func (h *Handler) eventsBySkill(r *http.Request, userID int64) (map[int64][]model.Event, error) {
	events, err := h.queries.ListEventsByUser(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	grouped := make(map[int64][]model.Event)
	for _, e := range events {
		grouped[e.SkillID] = append(grouped[e.SkillID], e)
	}
	return grouped, nil
}

// GetSkill handles GET /api/v1/skills/{id}. Includes the one-level
// dependency view.
func (h *Handler) GetSkill(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	skill, ok := requireEntityByID(w, r, "skill", func(id int64) (model.Skill, error) {
		return h.queries.GetSkill(r.Context(), store.GetSkillParams{ID: id, UserID: userID})
	})
	if !ok {
		return
	}

	summary, err := h.summarizeOne(r, skill)
	if err != nil {
		WriteInternalError(w, "Failed to load events")
		return
	}

	resp := skillToResponse(skill, summary)
	resp.Dependencies, err = h.dependencyViews(r, skill)
	if err != nil {
		WriteInternalError(w, "Failed to load dependencies")
		return
	}

	WriteSuccess(w, resp, nil)
}

// dependencyViews builds the read-only prerequisite list for one skill.
func (h *Handler) dependencyViews(r *http.Request, skill model.Skill) ([]engine.DependencyView, error) {
	ids, err := h.queries.ListSkillDependencyIDs(r.Context(), skill.ID)
	if err != nil {
		return nil, err
	}

	views := make([]engine.DependencyView, 0, len(ids))
	for _, id := range ids {
		dep, err := h.queries.GetSkill(r.Context(), store.GetSkillParams{ID: id, UserID: skill.UserID})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, err
		}
		summary, err := h.summarizeOne(r, dep)
		if err != nil {
			return nil, err
		}
		views = append(views, engine.DependencyView{
			SkillID:   dep.ID,
			Name:      dep.Name,
			Freshness: roundedFreshness(summary.Freshness),
			Target:    summary.Target,
		})
	}
	return views, nil
}

// CreateSkill handles POST /api/v1/skills.
func (h *Handler) CreateSkill(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	var req CreateSkillRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	decayRate := model.DefaultDecayRate
	if req.DecayRate != nil {
		decayRate = *req.DecayRate
	}
	target := sql.NullFloat64{}
	if req.TargetFreshness != nil {
		target = sql.NullFloat64{Float64: *req.TargetFreshness, Valid: true}
	}

	if errs := model.ValidateSkill(req.Name, decayRate, target); errs != nil {
		WriteValidationError(w, errs)
		return
	}

	exists, err := h.queries.SkillNameExists(r.Context(), store.SkillNameExistsParams{
		UserID: userID, Name: req.Name,
	})
	if err != nil {
		WriteInternalError(w, "Failed to check skill name")
		return
	}
	if exists {
		WriteValidationError(w, map[string]string{"name": "A skill with this name already exists"})
		return
	}

	categoryID := sql.NullInt64{}
	if req.CategoryID != nil {
		if !h.requireCategory(w, r, userID, *req.CategoryID) {
			return
		}
		categoryID = sql.NullInt64{Int64: *req.CategoryID, Valid: true}
	}

	now := h.now()
	skill, err := h.queries.CreateSkill(r.Context(), store.CreateSkillParams{
		UserID:          userID,
		Name:            req.Name,
		CategoryID:      categoryID,
		DecayRate:       decayRate,
		TargetFreshness: target,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		WriteInternalError(w, "Failed to create skill")
		return
	}

	WriteCreated(w, skillToResponse(skill, engine.SummarizeSkill(skill, nil, now)))
}

// requireCategory verifies that a category belongs to the user.
func (h *Handler) requireCategory(w http.ResponseWriter, r *http.Request, userID, categoryID int64) bool {
	_, err := h.queries.GetCategory(r.Context(), store.GetCategoryParams{ID: categoryID, UserID: userID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteValidationError(w, map[string]string{"category_id": "Category not found"})
		} else {
			WriteInternalError(w, "Failed to check category")
		}
		return false
	}
	return true
}

// UpdateSkill handles PUT /api/v1/skills/{id}.
func (h *Handler) UpdateSkill(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	skill, ok := requireEntityByID(w, r, "skill", func(id int64) (model.Skill, error) {
		return h.queries.GetSkill(r.Context(), store.GetSkillParams{ID: id, UserID: userID})
	})
	if !ok {
		return
	}

	var req UpdateSkillRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	name := skill.Name
	if req.Name != nil {
		name = *req.Name
	}
	decayRate := skill.DecayRate
	if req.DecayRate != nil {
		decayRate = *req.DecayRate
	}
	target := skill.TargetFreshness
	if req.ClearTarget {
		target = sql.NullFloat64{}
	} else if req.TargetFreshness != nil {
		target = sql.NullFloat64{Float64: *req.TargetFreshness, Valid: true}
	}
	notes := skill.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}
	categoryID := skill.CategoryID
	if req.ClearCategory {
		categoryID = sql.NullInt64{}
	} else if req.CategoryID != nil {
		if !h.requireCategory(w, r, userID, *req.CategoryID) {
			return
		}
		categoryID = sql.NullInt64{Int64: *req.CategoryID, Valid: true}
	}

	if errs := model.ValidateSkill(name, decayRate, target); errs != nil {
		WriteValidationError(w, errs)
		return
	}

	if name != skill.Name {
		exists, err := h.queries.SkillNameExists(r.Context(), store.SkillNameExistsParams{
			UserID: userID, Name: name,
		})
		if err != nil {
			WriteInternalError(w, "Failed to check skill name")
			return
		}
		if exists {
			WriteValidationError(w, map[string]string{"name": "A skill with this name already exists"})
			return
		}
	}

	updated, err := h.queries.UpdateSkill(r.Context(), store.UpdateSkillParams{
		ID:              skill.ID,
		UserID:          userID,
		Name:            name,
		CategoryID:      categoryID,
		DecayRate:       decayRate,
		TargetFreshness: target,
		Notes:           notes,
		UpdatedAt:       h.now(),
	})
	if err != nil {
		WriteInternalError(w, "Failed to update skill")
		return
	}

	summary, err := h.summarizeOne(r, updated)
	if err != nil {
		WriteInternalError(w, "Failed to load events")
		return
	}
	WriteSuccess(w, skillToResponse(updated, summary), nil)
}

// ArchiveSkill handles POST /api/v1/skills/{id}/archive. Archived skills
// keep their history but leave all lists and aggregates.
func (h *Handler) ArchiveSkill(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, true)
}

// UnarchiveSkill handles POST /api/v1/skills/{id}/unarchive.
func (h *Handler) UnarchiveSkill(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, false)
}

func (h *Handler) setArchived(w http.ResponseWriter, r *http.Request, archived bool) {
	userID := middleware.GetUserID(r)

	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid skill ID", nil)
		return
	}

	now := h.now()
	if archived {
		err = h.queries.ArchiveSkill(r.Context(), store.ArchiveSkillParams{
			ID: id, UserID: userID, ArchivedAt: now,
		})
	} else {
		err = h.queries.UnarchiveSkill(r.Context(), store.UnarchiveSkillParams{
			ID: id, UserID: userID, UpdatedAt: now,
		})
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Skill not found")
		} else {
			WriteInternalError(w, "Failed to update skill")
		}
		return
	}

	if archived {
		slog.Warn("skill archived", "category", model.AuditCategorySkill, "skill_id", id, "user_id", userID)
	}

	skill, err := h.queries.GetSkill(r.Context(), store.GetSkillParams{ID: id, UserID: userID})
	if err != nil {
		WriteInternalError(w, "Failed to retrieve skill")
		return
	}
	summary, err := h.summarizeOne(r, skill)
	if err != nil {
		WriteInternalError(w, "Failed to load events")
		return
	}
	WriteSuccess(w, skillToResponse(skill, summary), nil)
}

// DeleteSkill handles DELETE /api/v1/skills/{id}. Permanent; the event
// history goes with it.
func (h *Handler) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid skill ID", nil)
		return
	}

	err = h.queries.DeleteSkill(r.Context(), store.DeleteSkillParams{ID: id, UserID: userID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Skill not found")
		} else {
			WriteInternalError(w, "Failed to delete skill")
		}
		return
	}

	slog.Warn("skill deleted", "category", model.AuditCategorySkill, "skill_id", id, "user_id", userID)
	w.WriteHeader(http.StatusNoContent)
}

// DependencyRequest represents the request body for adding a prerequisite.
type DependencyRequest struct {
	DependsOnID int64 `json:"depends_on_id"`
}

// AddDependency handles POST /api/v1/skills/{id}/dependencies.
func (h *Handler) AddDependency(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	skill, ok := requireEntityByID(w, r, "skill", func(id int64) (model.Skill, error) {
		return h.queries.GetSkill(r.Context(), store.GetSkillParams{ID: id, UserID: userID})
	})
	if !ok {
		return
	}

	var req DependencyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.DependsOnID == skill.ID {
		WriteValidationError(w, map[string]string{"depends_on_id": "A skill cannot depend on itself"})
		return
	}

	// The prerequisite must be one of the user's own skills.
	if _, err := h.queries.GetSkill(r.Context(), store.GetSkillParams{ID: req.DependsOnID, UserID: userID}); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteValidationError(w, map[string]string{"depends_on_id": "Prerequisite skill not found"})
		} else {
			WriteInternalError(w, "Failed to check prerequisite")
		}
		return
	}

	err := h.queries.AddSkillDependency(r.Context(), store.AddSkillDependencyParams{
		SkillID:     skill.ID,
		DependsOnID: req.DependsOnID,
		CreatedAt:   h.now(),
	})
	if err != nil {
		WriteInternalError(w, "Failed to add dependency")
		return
	}

	views, err := h.dependencyViews(r, skill)
	if err != nil {
		WriteInternalError(w, "Failed to load dependencies")
		return
	}
	WriteCreated(w, views)
}

// RemoveDependency handles DELETE /api/v1/skills/{id}/dependencies/{depID}.
func (h *Handler) RemoveDependency(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	skill, ok := requireEntityByID(w, r, "skill", func(id int64) (model.Skill, error) {
		return h.queries.GetSkill(r.Context(), store.GetSkillParams{ID: id, UserID: userID})
	})
	if !ok {
		return
	}

	depID, err := parseURLParam(r, "depID")
	if err != nil {
		WriteBadRequest(w, "Invalid dependency ID", nil)
		return
	}

	err = h.queries.RemoveSkillDependency(r.Context(), store.RemoveSkillDependencyParams{
		SkillID:     skill.ID,
		DependsOnID: depID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Dependency not found")
		} else {
			WriteInternalError(w, "Failed to remove dependency")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

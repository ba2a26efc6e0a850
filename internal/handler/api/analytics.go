// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/olegiv/skillfresh/internal/engine"
	"github.com/olegiv/skillfresh/internal/middleware"
	"github.com/olegiv/skillfresh/internal/model"
	"github.com/olegiv/skillfresh/internal/store"
)

// DashboardResponse is the aggregate freshness view over all active skills.
type DashboardResponse struct {
	Skills       []SkillResponse     `json:"skills"`
	Distribution engine.Distribution `json:"distribution"`
	FreshCount   int                 `json:"fresh_count"`
	AgingCount   int                 `json:"aging_count"`
	DecayedCount int                 `json:"decayed_count"`
	BelowTarget  int                 `json:"below_target"`
}

// activeSummaries loads all active skills with their freshness summaries.
func (h *Handler) activeSummaries(r *http.Request, userID int64) ([]model.Skill, map[int64]engine.Summary, error) {
	skills, err := h.queries.ListSkills(r.Context(), userID)
	if err != nil {
		return nil, nil, err
	}
	eventsBySkill, err := h.eventsBySkill(r, userID)
	if err != nil {
		return nil, nil, err
	}

	now := h.now()
	summaries := make(map[int64]engine.Summary, len(skills))
	for _, s := range skills {
		summaries[s.ID] = engine.SummarizeSkill(s, eventsBySkill[s.ID], now)
	}
	return skills, summaries, nil
}

// Dashboard handles GET /api/v1/analytics/dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	skills, summaries, err := h.activeSummaries(r, userID)
	if err != nil {
		WriteInternalError(w, "Failed to load skills")
		return
	}

	resp := DashboardResponse{Skills: make([]SkillResponse, 0, len(skills))}
	flat := make([]engine.Summary, 0, len(skills))
	for _, s := range skills {
		summary := summaries[s.ID]
		flat = append(flat, summary)
		resp.Skills = append(resp.Skills, skillToResponse(s, summary))

		if summary.Class != nil {
			switch *summary.Class {
			case engine.ClassFresh:
				resp.FreshCount++
			case engine.ClassAging:
				resp.AgingCount++
			case engine.ClassDecayed:
				resp.DecayedCount++
			}
		}
		if summary.Target == engine.TargetBelow {
			resp.BelowTarget++
		}
	}
	resp.Distribution = engine.ComputeDistribution(flat)

	WriteSuccess(w, resp, nil)
}

// Balance handles GET /api/v1/analytics/balance?period=week|month|quarter.
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	period := engine.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = engine.PeriodMonth
	}
	days, err := engine.PeriodDays(period)
	if err != nil {
		WriteBadRequest(w, "Period must be one of: week, month, quarter", nil)
		return
	}

	events, err := h.queries.ListEventsByUser(r.Context(), userID)
	if err != nil {
		WriteInternalError(w, "Failed to load events")
		return
	}

	balance := engine.ComputeBalance(events, days, h.now(), engine.DefaultRatioThresholds())
	WriteSuccess(w, balance, nil)
}

// Distribution handles GET /api/v1/analytics/distribution.
func (h *Handler) Distribution(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	_, summaries, err := h.activeSummaries(r, userID)
	if err != nil {
		WriteInternalError(w, "Failed to load skills")
		return
	}

	flat := make([]engine.Summary, 0, len(summaries))
	for _, s := range summaries {
		flat = append(flat, s)
	}
	WriteSuccess(w, engine.ComputeDistribution(flat), nil)
}

// Calendar handles GET /api/v1/analytics/calendar?year=YYYY&month=M.
// Defaults to the current month.
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	now := h.now()
	year := now.Year()
	month := now.Month()

	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1970 || parsed > 9999 {
			WriteBadRequest(w, "Invalid year", nil)
			return
		}
		year = parsed
	}
	if v := r.URL.Query().Get("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			WriteBadRequest(w, "Invalid month", nil)
			return
		}
		month = time.Month(parsed)
	}

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	events, err := h.queries.ListEventsByUserInRange(r.Context(), store.ListEventsByUserInRangeParams{
		UserID: userID,
		From:   from,
		To:     from.AddDate(0, 1, 0),
	})
	if err != nil {
		WriteInternalError(w, "Failed to load events")
		return
	}
	skills, err := h.queries.ListSkills(r.Context(), userID)
	if err != nil {
		WriteInternalError(w, "Failed to load skills")
		return
	}
	archived, err := h.queries.ListArchivedSkills(r.Context(), userID)
	if err != nil {
		WriteInternalError(w, "Failed to load skills")
		return
	}

	names := make(map[int64]string, len(skills)+len(archived))
	for _, s := range skills {
		names[s.ID] = s.Name
	}
	for _, s := range archived {
		names[s.ID] = s.Name
	}

	WriteSuccess(w, engine.CalendarRollup(events, names, year, month), nil)
}

// CategoryBreakdown handles GET /api/v1/analytics/categories.
func (h *Handler) CategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	skills, summaries, err := h.activeSummaries(r, userID)
	if err != nil {
		WriteInternalError(w, "Failed to load skills")
		return
	}

	categories, err := h.queries.ListCategories(r.Context(), userID)
	if err != nil {
		WriteInternalError(w, "Failed to load categories")
		return
	}
	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	stats := engine.CategoryStats(skills, summaries, names)
	for i := range stats {
		stats[i].AverageFreshness = roundedFreshness(stats[i].AverageFreshness)
	}
	WriteSuccess(w, stats, nil)
}

// Comparison handles GET /api/v1/analytics/comparison. Current calendar
// month against the previous one.
func (h *Handler) Comparison(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	events, err := h.queries.ListEventsByUser(r.Context(), userID)
	if err != nil {
		WriteInternalError(w, "Failed to load events")
		return
	}

	WriteSuccess(w, engine.ComparePeriods(events, h.now()), nil)
}

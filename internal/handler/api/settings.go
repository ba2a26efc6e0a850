// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/olegiv/skillfresh/internal/middleware"
)

// SettingsResponse represents user settings in API responses.
type SettingsResponse struct {
	HasCompletedOnboarding bool       `json:"has_completed_onboarding"`
	OnboardingCompletedAt  *time.Time `json:"onboarding_completed_at,omitempty"`
}

// GetSettings handles GET /api/v1/settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	settings, err := h.queries.GetUserSettings(r.Context(), userID)
	if err != nil {
		WriteInternalError(w, "Failed to load settings")
		return
	}

	resp := SettingsResponse{HasCompletedOnboarding: settings.HasCompletedOnboarding}
	if settings.OnboardingCompletedAt.Valid {
		resp.OnboardingCompletedAt = &settings.OnboardingCompletedAt.Time
	}
	WriteSuccess(w, resp, nil)
}

// CompleteOnboarding handles POST /api/v1/settings/onboarding/complete.
// Idempotent; repeat calls keep the original completion time.
func (h *Handler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	if err := h.queries.CompleteOnboarding(r.Context(), userID, h.now()); err != nil {
		WriteInternalError(w, "Failed to complete onboarding")
		return
	}

	settings, err := h.queries.GetUserSettings(r.Context(), userID)
	if err != nil {
		WriteInternalError(w, "Failed to load settings")
		return
	}

	resp := SettingsResponse{HasCompletedOnboarding: settings.HasCompletedOnboarding}
	if settings.OnboardingCompletedAt.Valid {
		resp.OnboardingCompletedAt = &settings.OnboardingCompletedAt.Time
	}
	WriteSuccess(w, resp, nil)
}

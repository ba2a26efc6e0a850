// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/olegiv/skillfresh/internal/middleware"
	"github.com/olegiv/skillfresh/internal/model"
	"github.com/olegiv/skillfresh/internal/store"
)

// CategoryRequest represents the request body for creating or renaming a category.
type CategoryRequest struct {
	Name string `json:"name"`
}

// ListCategories handles GET /api/v1/categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	categories, err := h.queries.ListCategories(r.Context(), userID)
	if err != nil {
		WriteInternalError(w, "Failed to list categories")
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}
	WriteSuccess(w, categories, &Meta{Total: int64(len(categories))})
}

// CreateCategory handles POST /api/v1/categories.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	var req CategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		WriteValidationError(w, map[string]string{"name": "Name is required"})
		return
	}

	category, err := h.queries.CreateCategory(r.Context(), store.CreateCategoryParams{
		UserID:    userID,
		Name:      req.Name,
		CreatedAt: h.now(),
	})
	if err != nil {
		WriteInternalError(w, "Failed to create category")
		return
	}

	WriteCreated(w, category)
}

// RenameCategory handles PUT /api/v1/categories/{id}.
func (h *Handler) RenameCategory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid category ID", nil)
		return
	}

	var req CategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		WriteValidationError(w, map[string]string{"name": "Name is required"})
		return
	}

	category, err := h.queries.RenameCategory(r.Context(), store.RenameCategoryParams{
		ID:     id,
		UserID: userID,
		Name:   req.Name,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Category not found")
		} else {
			WriteInternalError(w, "Failed to rename category")
		}
		return
	}

	WriteSuccess(w, category, nil)
}

// DeleteCategory handles DELETE /api/v1/categories/{id}. Skills in the
// category become uncategorized; nothing else changes.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid category ID", nil)
		return
	}

	err = h.queries.DeleteCategory(r.Context(), store.DeleteCategoryParams{ID: id, UserID: userID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Category not found")
		} else {
			WriteInternalError(w, "Failed to delete category")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

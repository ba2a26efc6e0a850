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

// APIKeyResponse represents an API key in responses. The raw key appears
// exactly once, in the creation response; only the hash is stored.
type APIKeyResponse struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	KeyPrefix  string     `json:"key_prefix"`
	Key        string     `json:"key,omitempty"`
	IsActive   bool       `json:"is_active"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// CreateAPIKeyRequest represents the request body for creating an API key.
type CreateAPIKeyRequest struct {
	Name string `json:"name"`
}

func apiKeyToResponse(k model.APIKey) APIKeyResponse {
	resp := APIKeyResponse{
		ID:        k.ID,
		Name:      k.Name,
		KeyPrefix: k.KeyPrefix,
		IsActive:  k.IsActive,
		CreatedAt: k.CreatedAt,
	}
	if k.LastUsedAt.Valid {
		resp.LastUsedAt = &k.LastUsedAt.Time
	}
	return resp
}

// ListAPIKeys handles GET /api/v1/keys.
func (h *Handler) ListAPIKeys(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	keys, err := h.queries.ListAPIKeysByUser(r.Context(), userID)
	if err != nil {
		WriteInternalError(w, "Failed to list API keys")
		return
	}

	responses := make([]APIKeyResponse, 0, len(keys))
	for _, k := range keys {
		responses = append(responses, apiKeyToResponse(k))
	}
	WriteSuccess(w, responses, &Meta{Total: int64(len(responses))})
}

// CreateAPIKey handles POST /api/v1/keys.
func (h *Handler) CreateAPIKey(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	var req CreateAPIKeyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		WriteValidationError(w, map[string]string{"name": "Name is required"})
		return
	}

	rawKey, prefix, err := model.GenerateAPIKey()
	if err != nil {
		WriteInternalError(w, "Failed to generate API key")
		return
	}

	key, err := h.queries.CreateAPIKey(r.Context(), store.CreateAPIKeyParams{
		UserID:    userID,
		Name:      req.Name,
		KeyHash:   model.HashAPIKey(rawKey),
		KeyPrefix: prefix,
		CreatedAt: h.now(),
	})
	if err != nil {
		WriteInternalError(w, "Failed to create API key")
		return
	}

	resp := apiKeyToResponse(key)
	resp.Key = rawKey
	WriteCreated(w, resp)
}

// RevokeAPIKey handles DELETE /api/v1/keys/{id}. The row is kept, inactive.
func (h *Handler) RevokeAPIKey(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid key ID", nil)
		return
	}

	err = h.queries.DeactivateAPIKey(r.Context(), store.DeactivateAPIKeyParams{ID: id, UserID: userID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "API key not found")
		} else {
			WriteInternalError(w, "Failed to revoke API key")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/skillfresh/internal/middleware"
	"github.com/olegiv/skillfresh/internal/model"
	"github.com/olegiv/skillfresh/internal/store"
	"github.com/olegiv/skillfresh/internal/testutil"
)

// testNow is the fixed clock used in handler tests.
var testNow = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

// testSetup creates a migrated test database, a handler with a fixed clock,
// and a seeded user.
func testSetup(t *testing.T) (*sql.DB, *Handler, model.User) {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	h := NewHandler(db)
	h.now = func() time.Time { return testNow }

	user, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Email:     "api@example.com",
		Name:      "API Test",
		CreatedAt: testNow,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return db, h, user
}

// createSecondUser adds another user for ownership scoping tests.
func createSecondUser(t *testing.T, db *sql.DB) model.User {
	t.Helper()
	user, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Email:     "other@example.com",
		Name:      "Other",
		CreatedAt: testNow,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

// asUser injects the authenticated user ID the way APIKeyAuth would.
func asUser(r *http.Request, userID int64) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.ContextKeyUserID, userID)
	return r.WithContext(ctx)
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// newJSONRequest creates an HTTP request with JSON body and optional URL params.
func newJSONRequest(t *testing.T, method, path string, body string, params map[string]string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if len(params) > 0 {
		req = requestWithURLParams(req, params)
	}
	return req
}

// newGetRequest creates an HTTP GET request with optional URL params.
func newGetRequest(t *testing.T, path string, params map[string]string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if len(params) > 0 {
		req = requestWithURLParams(req, params)
	}
	return req
}

// dataResponse is a generic wrapper for API responses with a "data" field.
type dataResponse[T any] struct {
	Data T `json:"data"`
}

// listResponse is a generic wrapper for API list responses with data and meta.
type listResponse[T any] struct {
	Data []T   `json:"data"`
	Meta *Meta `json:"meta"`
}

// unmarshalData unmarshals a JSON response body into the specified type.
func unmarshalData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var resp dataResponse[T]
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return resp.Data
}

// unmarshalList unmarshals a JSON list response body into the specified type.
func unmarshalList[T any](t *testing.T, w *httptest.ResponseRecorder) ([]T, *Meta) {
	t.Helper()
	var resp listResponse[T]
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return resp.Data, resp.Meta
}

// executeHandler executes a handler and returns the response recorder.
func executeHandler(t *testing.T, handler func(http.ResponseWriter, *http.Request), req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

// createSkillViaAPI creates a skill through the handler and returns the response.
func createSkillViaAPI(t *testing.T, h *Handler, userID int64, body string) SkillResponse {
	t.Helper()
	req := asUser(newJSONRequest(t, http.MethodPost, "/api/v1/skills", body, nil), userID)
	w := executeHandler(t, h.CreateSkill, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("CreateSkill status = %d, body = %s", w.Code, w.Body.String())
	}
	return unmarshalData[SkillResponse](t, w)
}

// logEventViaAPI logs an event through the handler.
func logEventViaAPI(t *testing.T, h *Handler, userID int64, body string) EventResponse {
	t.Helper()
	req := asUser(newJSONRequest(t, http.MethodPost, "/api/v1/events", body, nil), userID)
	w := executeHandler(t, h.CreateEvent, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("CreateEvent status = %d, body = %s", w.Code, w.Body.String())
	}
	return unmarshalData[EventResponse](t, w)
}

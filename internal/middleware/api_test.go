package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/olegiv/skillfresh/internal/model"
	"github.com/olegiv/skillfresh/internal/store"
	"github.com/olegiv/skillfresh/internal/testutil"
)

func seedKey(t *testing.T, q *store.Queries) (rawKey string, userID int64) {
	t.Helper()
	ctx := context.Background()

	user, err := q.CreateUser(ctx, store.CreateUserParams{
		Email:     "mw@example.com",
		Name:      "Middleware Test",
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	rawKey, prefix, err := model.GenerateAPIKey()
	if err != nil {
		t.Fatalf("GenerateAPIKey: %v", err)
	}
	_, err = q.CreateAPIKey(ctx, store.CreateAPIKeyParams{
		UserID:    user.ID,
		Name:      "test",
		KeyHash:   model.HashAPIKey(rawKey),
		KeyPrefix: prefix,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateAPIKey: %v", err)
	}
	return rawKey, user.ID
}

func TestAPIKeyAuth_MissingHeader(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	handler := APIKeyAuth(db)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/skills", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}

	var apiErr APIError
	if err := json.NewDecoder(rec.Body).Decode(&apiErr); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if apiErr.Error.Code != "unauthorized" {
		t.Errorf("error code = %q, want unauthorized", apiErr.Error.Code)
	}
}

func TestAPIKeyAuth_BadFormat(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	handler := APIKeyAuth(db)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/skills", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAPIKeyAuth_InvalidKey(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	handler := APIKeyAuth(db)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/skills", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-key")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAPIKeyAuth_ValidKey(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	q := store.New(db)
	rawKey, userID := seedKey(t, q)

	var gotUserID int64
	handler := APIKeyAuth(db)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = GetUserID(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/skills", nil)
	req.Header.Set("Authorization", "Bearer "+rawKey)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotUserID != userID {
		t.Errorf("GetUserID = %d, want %d", gotUserID, userID)
	}
}

func TestAPIKeyAuth_RevokedKey(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	q := store.New(db)
	rawKey, userID := seedKey(t, q)

	keys, err := q.ListAPIKeysByUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("ListAPIKeysByUser: %v", err)
	}
	err = q.DeactivateAPIKey(context.Background(), store.DeactivateAPIKeyParams{
		ID: keys[0].ID, UserID: userID,
	})
	if err != nil {
		t.Fatalf("DeactivateAPIKey: %v", err)
	}

	handler := APIKeyAuth(db)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/skills", nil)
	req.Header.Set("Authorization", "Bearer "+rawKey)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for revoked key", rec.Code)
	}
}

func TestAPIRateLimit(t *testing.T) {
	limited := APIRateLimit(1, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	key := model.APIKey{ID: 42, UserID: 1}
	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/skills", nil)
		ctx := context.WithValue(req.Context(), ContextKeyAPIKey, key)
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req.WithContext(ctx))
		statuses = append(statuses, rec.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("first two requests = %v, want both 200 within burst", statuses[:2])
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want 429", statuses[2])
	}
}

func TestGlobalRateLimiter_PerIP(t *testing.T) {
	rl := NewGlobalRateLimiter(1, 1)
	handler := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
		req.Header.Set("X-Real-IP", ip)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send("10.0.0.1"); code != http.StatusOK {
		t.Errorf("first request from A = %d, want 200", code)
	}
	if code := send("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Errorf("second request from A = %d, want 429", code)
	}
	// A separate client gets its own bucket.
	if code := send("10.0.0.2"); code != http.StatusOK {
		t.Errorf("first request from B = %d, want 200", code)
	}
}

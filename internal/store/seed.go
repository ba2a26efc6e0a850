package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/skillfresh/internal/model"
)

// Default user created on first run
const (
	DefaultUserEmail = "me@example.com"
	DefaultUserName  = "Default User"
	DefaultKeyName   = "bootstrap"
)

// Seed creates the default user and a bootstrap API key on first run.
// The raw key is logged once here and never recoverable afterwards.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	_, err := queries.GetUserByEmail(ctx, DefaultUserEmail)
	if err == nil {
		slog.Info("default user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for default user: %w", err)
	}

	now := time.Now()
	user, err := queries.CreateUser(ctx, CreateUserParams{
		Email:     DefaultUserEmail,
		Name:      DefaultUserName,
		CreatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("creating default user: %w", err)
	}

	rawKey, prefix, err := model.GenerateAPIKey()
	if err != nil {
		return fmt.Errorf("generating bootstrap key: %w", err)
	}
	_, err = queries.CreateAPIKey(ctx, CreateAPIKeyParams{
		UserID:    user.ID,
		Name:      DefaultKeyName,
		KeyHash:   model.HashAPIKey(rawKey),
		KeyPrefix: prefix,
		CreatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("creating bootstrap key: %w", err)
	}

	slog.Info("created default user with bootstrap API key",
		"id", user.ID,
		"email", user.Email,
		"api_key", rawKey,
	)

	return nil
}

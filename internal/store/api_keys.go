package store

import (
	"context"
	"time"

	"github.com/olegiv/skillfresh/internal/model"
)

const createAPIKey = `
INSERT INTO api_keys (user_id, name, key_hash, key_prefix, is_active, created_at)
VALUES (?, ?, ?, ?, 1, ?)
RETURNING id, user_id, name, key_hash, key_prefix, last_used_at, is_active, created_at
`

// CreateAPIKeyParams holds the parameters for CreateAPIKey.
type CreateAPIKeyParams struct {
	UserID    int64
	Name      string
	KeyHash   string
	KeyPrefix string
	CreatedAt time.Time
}

// CreateAPIKey inserts a new active API key.
func (q *Queries) CreateAPIKey(ctx context.Context, arg CreateAPIKeyParams) (model.APIKey, error) {
	row := q.db.QueryRowContext(ctx, createAPIKey,
		arg.UserID, arg.Name, arg.KeyHash, arg.KeyPrefix, arg.CreatedAt)
	return scanAPIKey(row)
}

const getAPIKeyByHash = `
SELECT id, user_id, name, key_hash, key_prefix, last_used_at, is_active, created_at
FROM api_keys
WHERE key_hash = ? AND is_active = 1
`

// GetAPIKeyByHash fetches an active API key by its SHA-256 hash.
func (q *Queries) GetAPIKeyByHash(ctx context.Context, keyHash string) (model.APIKey, error) {
	return scanAPIKey(q.db.QueryRowContext(ctx, getAPIKeyByHash, keyHash))
}

const listAPIKeysByUser = `
SELECT id, user_id, name, key_hash, key_prefix, last_used_at, is_active, created_at
FROM api_keys
WHERE user_id = ?
ORDER BY created_at DESC
`

// ListAPIKeysByUser returns all of a user's API keys, newest first.
func (q *Queries) ListAPIKeysByUser(ctx context.Context, userID int64) ([]model.APIKey, error) {
	rows, err := q.db.QueryContext(ctx, listAPIKeysByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []model.APIKey
	for rows.Next() {
		k, err := scanAPIKey(rows)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

const touchAPIKey = `
UPDATE api_keys SET last_used_at = ? WHERE id = ?
`

// TouchAPIKey records when an API key was last used.
func (q *Queries) TouchAPIKey(ctx context.Context, id int64, usedAt time.Time) error {
	_, err := q.db.ExecContext(ctx, touchAPIKey, usedAt, id)
	return err
}

const deactivateAPIKey = `
UPDATE api_keys SET is_active = 0 WHERE id = ? AND user_id = ?
`

// DeactivateAPIKeyParams holds the parameters for DeactivateAPIKey.
type DeactivateAPIKeyParams struct {
	ID     int64
	UserID int64
}

// DeactivateAPIKey revokes an API key. Revoked keys stay in the table.
func (q *Queries) DeactivateAPIKey(ctx context.Context, arg DeactivateAPIKeyParams) error {
	res, err := q.db.ExecContext(ctx, deactivateAPIKey, arg.ID, arg.UserID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAPIKey(row rowScanner) (model.APIKey, error) {
	var k model.APIKey
	err := row.Scan(&k.ID, &k.UserID, &k.Name, &k.KeyHash, &k.KeyPrefix,
		&k.LastUsedAt, &k.IsActive, &k.CreatedAt)
	return k, err
}

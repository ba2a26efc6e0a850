package store

import (
	"context"
	"time"

	"github.com/olegiv/skillfresh/internal/model"
)

const createUser = `
INSERT INTO users (email, name, created_at)
VALUES (?, ?, ?)
RETURNING id, email, name, created_at
`

// CreateUserParams holds the parameters for CreateUser.
type CreateUserParams struct {
	Email     string
	Name      string
	CreatedAt time.Time
}

// CreateUser inserts a new user.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	row := q.db.QueryRowContext(ctx, createUser, arg.Email, arg.Name, arg.CreatedAt)
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt)
	return u, err
}

const getUserByID = `
SELECT id, email, name, created_at FROM users WHERE id = ?
`

// GetUserByID fetches a user by ID.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	row := q.db.QueryRowContext(ctx, getUserByID, id)
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt)
	return u, err
}

const getUserByEmail = `
SELECT id, email, name, created_at FROM users WHERE email = ?
`

// GetUserByEmail fetches a user by email.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	row := q.db.QueryRowContext(ctx, getUserByEmail, email)
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt)
	return u, err
}

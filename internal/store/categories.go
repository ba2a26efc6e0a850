package store

import (
	"context"
	"time"

	"github.com/olegiv/skillfresh/internal/model"
)

const createCategory = `
INSERT INTO categories (user_id, name, created_at)
VALUES (?, ?, ?)
RETURNING id, user_id, name, created_at
`

// CreateCategoryParams holds the parameters for CreateCategory.
type CreateCategoryParams struct {
	UserID    int64
	Name      string
	CreatedAt time.Time
}

// CreateCategory inserts a new category.
func (q *Queries) CreateCategory(ctx context.Context, arg CreateCategoryParams) (model.Category, error) {
	row := q.db.QueryRowContext(ctx, createCategory, arg.UserID, arg.Name, arg.CreatedAt)
	return scanCategory(row)
}

const getCategory = `
SELECT id, user_id, name, created_at FROM categories WHERE id = ? AND user_id = ?
`

// GetCategoryParams holds the parameters for GetCategory.
type GetCategoryParams struct {
	ID     int64
	UserID int64
}

// GetCategory fetches one of the user's categories.
func (q *Queries) GetCategory(ctx context.Context, arg GetCategoryParams) (model.Category, error) {
	return scanCategory(q.db.QueryRowContext(ctx, getCategory, arg.ID, arg.UserID))
}

const listCategories = `
SELECT id, user_id, name, created_at FROM categories WHERE user_id = ? ORDER BY name
`

// ListCategories returns the user's categories ordered by name.
func (q *Queries) ListCategories(ctx context.Context, userID int64) ([]model.Category, error) {
	rows, err := q.db.QueryContext(ctx, listCategories, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

const renameCategory = `
UPDATE categories SET name = ? WHERE id = ? AND user_id = ?
RETURNING id, user_id, name, created_at
`

// RenameCategoryParams holds the parameters for RenameCategory.
type RenameCategoryParams struct {
	ID     int64
	UserID int64
	Name   string
}

// RenameCategory changes a category's name.
func (q *Queries) RenameCategory(ctx context.Context, arg RenameCategoryParams) (model.Category, error) {
	return scanCategory(q.db.QueryRowContext(ctx, renameCategory, arg.Name, arg.ID, arg.UserID))
}

const deleteCategory = `
DELETE FROM categories WHERE id = ? AND user_id = ?
`

// DeleteCategoryParams holds the parameters for DeleteCategory.
type DeleteCategoryParams struct {
	ID     int64
	UserID int64
}

// DeleteCategory removes a category. Skills in it become uncategorized
// through the ON DELETE SET NULL constraint; they are not deleted.
func (q *Queries) DeleteCategory(ctx context.Context, arg DeleteCategoryParams) error {
	res, err := q.db.ExecContext(ctx, deleteCategory, arg.ID, arg.UserID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func scanCategory(row rowScanner) (model.Category, error) {
	var c model.Category
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt)
	return c, err
}

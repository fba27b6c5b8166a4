package store

import (
	"context"
	"database/sql"
	"time"
)

// Categories

const createCategory = `
INSERT INTO categories (name, slug, description, color, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, name, slug, description, color, created_at, updated_at
`

type CreateCategoryParams struct {
	Name        string
	Slug        string
	Description string
	Color       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (q *Queries) CreateCategory(ctx context.Context, arg CreateCategoryParams) (Category, error) {
	row := q.db.QueryRowContext(ctx, createCategory,
		arg.Name, arg.Slug, arg.Description, arg.Color, arg.CreatedAt, arg.UpdatedAt)
	return scanCategory(row)
}

const getCategoryByID = `
SELECT id, name, slug, description, color, created_at, updated_at
FROM categories WHERE id = ?
`

func (q *Queries) GetCategoryByID(ctx context.Context, id int64) (Category, error) {
	return scanCategory(q.db.QueryRowContext(ctx, getCategoryByID, id))
}

const getCategoryBySlug = `
SELECT id, name, slug, description, color, created_at, updated_at
FROM categories WHERE slug = ?
`

func (q *Queries) GetCategoryBySlug(ctx context.Context, slug string) (Category, error) {
	return scanCategory(q.db.QueryRowContext(ctx, getCategoryBySlug, slug))
}

const listCategories = `
SELECT id, name, slug, description, color, created_at, updated_at
FROM categories ORDER BY name ASC
`

func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.QueryContext(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Color,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

const updateCategory = `
UPDATE categories SET name = ?, slug = ?, description = ?, color = ?, updated_at = ?
WHERE id = ?
`

type UpdateCategoryParams struct {
	Name        string
	Slug        string
	Description string
	Color       string
	UpdatedAt   time.Time
	ID          int64
}

func (q *Queries) UpdateCategory(ctx context.Context, arg UpdateCategoryParams) error {
	_, err := q.db.ExecContext(ctx, updateCategory,
		arg.Name, arg.Slug, arg.Description, arg.Color, arg.UpdatedAt, arg.ID)
	return err
}

const deleteCategory = `
DELETE FROM categories WHERE id = ?
`

// DeleteCategory removes a category and reports whether a row was deleted.
// Posts referencing it fall back to no category via ON DELETE SET NULL.
func (q *Queries) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, deleteCategory, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Tags

const createTag = `
INSERT INTO tags (name, slug, created_at)
VALUES (?, ?, ?)
RETURNING id, name, slug, created_at
`

type CreateTagParams struct {
	Name      string
	Slug      string
	CreatedAt time.Time
}

func (q *Queries) CreateTag(ctx context.Context, arg CreateTagParams) (Tag, error) {
	row := q.db.QueryRowContext(ctx, createTag, arg.Name, arg.Slug, arg.CreatedAt)
	return scanTag(row)
}

const getTagBySlug = `
SELECT id, name, slug, created_at FROM tags WHERE slug = ?
`

func (q *Queries) GetTagBySlug(ctx context.Context, slug string) (Tag, error) {
	return scanTag(q.db.QueryRowContext(ctx, getTagBySlug, slug))
}

const listTags = `
SELECT id, name, slug, created_at FROM tags ORDER BY name ASC
`

func (q *Queries) ListTags(ctx context.Context) ([]Tag, error) {
	rows, err := q.db.QueryContext(ctx, listTags)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTags(rows)
}

const listTagsForPost = `
SELECT t.id, t.name, t.slug, t.created_at
FROM tags t
JOIN post_tags pt ON pt.tag_id = t.id
WHERE pt.post_id = ?
ORDER BY t.name ASC
`

func (q *Queries) ListTagsForPost(ctx context.Context, postID int64) ([]Tag, error) {
	rows, err := q.db.QueryContext(ctx, listTagsForPost, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTags(rows)
}

const deletePostTags = `
DELETE FROM post_tags WHERE post_id = ?
`

func (q *Queries) DeletePostTags(ctx context.Context, postID int64) error {
	_, err := q.db.ExecContext(ctx, deletePostTags, postID)
	return err
}

const addPostTag = `
INSERT INTO post_tags (post_id, tag_id) VALUES (?, ?)
ON CONFLICT (post_id, tag_id) DO NOTHING
`

type AddPostTagParams struct {
	PostID int64
	TagID  int64
}

func (q *Queries) AddPostTag(ctx context.Context, arg AddPostTagParams) error {
	_, err := q.db.ExecContext(ctx, addPostTag, arg.PostID, arg.TagID)
	return err
}

func scanCategory(row *sql.Row) (Category, error) {
	var c Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Color, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func scanTag(row *sql.Row) (Tag, error) {
	var t Tag
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt)
	return t, err
}

func collectTags(rows *sql.Rows) ([]Tag, error) {
	var items []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

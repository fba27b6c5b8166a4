package store

import (
	"context"
	"database/sql"
	"time"
)

const pageColumns = `id, title, slug, content, template, featured_image, meta_title, meta_description, status, created_at, updated_at`

const createPage = `
INSERT INTO pages (title, slug, content, template, featured_image, meta_title, meta_description, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + pageColumns

type CreatePageParams struct {
	Title           string
	Slug            string
	Content         string
	Template        string
	FeaturedImage   string
	MetaTitle       string
	MetaDescription string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (q *Queries) CreatePage(ctx context.Context, arg CreatePageParams) (Page, error) {
	row := q.db.QueryRowContext(ctx, createPage,
		arg.Title, arg.Slug, arg.Content, arg.Template, arg.FeaturedImage,
		arg.MetaTitle, arg.MetaDescription, arg.Status, arg.CreatedAt, arg.UpdatedAt)
	return scanPage(row)
}

const getPageByID = `
SELECT ` + pageColumns + ` FROM pages WHERE id = ?
`

func (q *Queries) GetPageByID(ctx context.Context, id int64) (Page, error) {
	return scanPage(q.db.QueryRowContext(ctx, getPageByID, id))
}

const getPublishedPageBySlug = `
SELECT ` + pageColumns + ` FROM pages WHERE slug = ? AND status = 'published'
`

func (q *Queries) GetPublishedPageBySlug(ctx context.Context, slug string) (Page, error) {
	return scanPage(q.db.QueryRowContext(ctx, getPublishedPageBySlug, slug))
}

const listPages = `
SELECT ` + pageColumns + ` FROM pages ORDER BY title ASC
`

func (q *Queries) ListPages(ctx context.Context) ([]Page, error) {
	rows, err := q.db.QueryContext(ctx, listPages)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Page
	for rows.Next() {
		var p Page
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.Template, &p.FeaturedImage,
			&p.MetaTitle, &p.MetaDescription, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

const updatePage = `
UPDATE pages
SET title = ?, slug = ?, content = ?, template = ?, featured_image = ?,
    meta_title = ?, meta_description = ?, status = ?, updated_at = ?
WHERE id = ?
`

type UpdatePageParams struct {
	Title           string
	Slug            string
	Content         string
	Template        string
	FeaturedImage   string
	MetaTitle       string
	MetaDescription string
	Status          string
	UpdatedAt       time.Time
	ID              int64
}

func (q *Queries) UpdatePage(ctx context.Context, arg UpdatePageParams) error {
	_, err := q.db.ExecContext(ctx, updatePage,
		arg.Title, arg.Slug, arg.Content, arg.Template, arg.FeaturedImage,
		arg.MetaTitle, arg.MetaDescription, arg.Status, arg.UpdatedAt, arg.ID)
	return err
}

const deletePage = `
DELETE FROM pages WHERE id = ?
`

// DeletePage removes a page and reports whether a row was deleted.
func (q *Queries) DeletePage(ctx context.Context, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, deletePage, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

const pageSlugExists = `
SELECT COUNT(*) FROM pages WHERE slug = ? AND id != ?
`

type PageSlugExistsParams struct {
	Slug      string
	ExcludeID int64
}

func (q *Queries) PageSlugExists(ctx context.Context, arg PageSlugExistsParams) (bool, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, pageSlugExists, arg.Slug, arg.ExcludeID).Scan(&count)
	return count > 0, err
}

const countPages = `
SELECT COUNT(*) FROM pages
`

func (q *Queries) CountPages(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countPages).Scan(&count)
	return count, err
}

func scanPage(row *sql.Row) (Page, error) {
	var p Page
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.Template, &p.FeaturedImage,
		&p.MetaTitle, &p.MetaDescription, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

package store

import (
	"context"
	"database/sql"
	"time"
)

const posterColumns = `id, title, description, image_url, link, category, is_active, display_order, created_at, updated_at`

const createPoster = `
INSERT INTO posters (title, description, image_url, link, category, is_active, display_order, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + posterColumns

type CreatePosterParams struct {
	Title        string
	Description  string
	ImageURL     string
	Link         string
	Category     string
	IsActive     bool
	DisplayOrder int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (q *Queries) CreatePoster(ctx context.Context, arg CreatePosterParams) (Poster, error) {
	row := q.db.QueryRowContext(ctx, createPoster,
		arg.Title, arg.Description, arg.ImageURL, arg.Link, arg.Category,
		arg.IsActive, arg.DisplayOrder, arg.CreatedAt, arg.UpdatedAt)
	return scanPoster(row)
}

const getPosterByID = `
SELECT ` + posterColumns + ` FROM posters WHERE id = ?
`

func (q *Queries) GetPosterByID(ctx context.Context, id int64) (Poster, error) {
	return scanPoster(q.db.QueryRowContext(ctx, getPosterByID, id))
}

const listPosters = `
SELECT ` + posterColumns + ` FROM posters ORDER BY display_order ASC
`

func (q *Queries) ListPosters(ctx context.Context) ([]Poster, error) {
	return q.queryPosters(ctx, listPosters)
}

const listActivePosters = `
SELECT ` + posterColumns + ` FROM posters WHERE is_active = 1 ORDER BY display_order ASC
`

func (q *Queries) ListActivePosters(ctx context.Context) ([]Poster, error) {
	return q.queryPosters(ctx, listActivePosters)
}

const updatePoster = `
UPDATE posters
SET title = ?, description = ?, image_url = ?, link = ?, category = ?, is_active = ?, display_order = ?, updated_at = ?
WHERE id = ?
`

type UpdatePosterParams struct {
	Title        string
	Description  string
	ImageURL     string
	Link         string
	Category     string
	IsActive     bool
	DisplayOrder int64
	UpdatedAt    time.Time
	ID           int64
}

func (q *Queries) UpdatePoster(ctx context.Context, arg UpdatePosterParams) error {
	_, err := q.db.ExecContext(ctx, updatePoster,
		arg.Title, arg.Description, arg.ImageURL, arg.Link, arg.Category,
		arg.IsActive, arg.DisplayOrder, arg.UpdatedAt, arg.ID)
	return err
}

const deletePoster = `
DELETE FROM posters WHERE id = ?
`

// DeletePoster removes a poster and reports whether a row was deleted.
func (q *Queries) DeletePoster(ctx context.Context, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, deletePoster, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (q *Queries) queryPosters(ctx context.Context, query string, args ...interface{}) ([]Poster, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Poster
	for rows.Next() {
		var p Poster
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.Link, &p.Category,
			&p.IsActive, &p.DisplayOrder, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func scanPoster(row *sql.Row) (Poster, error) {
	var p Poster
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.Link, &p.Category,
		&p.IsActive, &p.DisplayOrder, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

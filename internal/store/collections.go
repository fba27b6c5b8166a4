package store

import (
	"context"
	"database/sql"
	"time"
)

const collectionColumns = `id, title, description, image_url, category, is_active, display_order, created_at, updated_at`

const createCollection = `
INSERT INTO collections (title, description, image_url, category, is_active, display_order, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + collectionColumns

type CreateCollectionParams struct {
	Title        string
	Description  string
	ImageURL     string
	Category     string
	IsActive     bool
	DisplayOrder int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (q *Queries) CreateCollection(ctx context.Context, arg CreateCollectionParams) (Collection, error) {
	row := q.db.QueryRowContext(ctx, createCollection,
		arg.Title, arg.Description, arg.ImageURL, arg.Category,
		arg.IsActive, arg.DisplayOrder, arg.CreatedAt, arg.UpdatedAt)
	return scanCollection(row)
}

const getCollectionByID = `
SELECT ` + collectionColumns + ` FROM collections WHERE id = ?
`

func (q *Queries) GetCollectionByID(ctx context.Context, id int64) (Collection, error) {
	return scanCollection(q.db.QueryRowContext(ctx, getCollectionByID, id))
}

const listCollections = `
SELECT ` + collectionColumns + ` FROM collections ORDER BY display_order ASC
`

func (q *Queries) ListCollections(ctx context.Context) ([]Collection, error) {
	return q.queryCollections(ctx, listCollections)
}

const listActiveCollections = `
SELECT ` + collectionColumns + ` FROM collections WHERE is_active = 1 ORDER BY display_order ASC
`

func (q *Queries) ListActiveCollections(ctx context.Context) ([]Collection, error) {
	return q.queryCollections(ctx, listActiveCollections)
}

const updateCollection = `
UPDATE collections
SET title = ?, description = ?, image_url = ?, category = ?, is_active = ?, display_order = ?, updated_at = ?
WHERE id = ?
`

type UpdateCollectionParams struct {
	Title        string
	Description  string
	ImageURL     string
	Category     string
	IsActive     bool
	DisplayOrder int64
	UpdatedAt    time.Time
	ID           int64
}

func (q *Queries) UpdateCollection(ctx context.Context, arg UpdateCollectionParams) error {
	_, err := q.db.ExecContext(ctx, updateCollection,
		arg.Title, arg.Description, arg.ImageURL, arg.Category,
		arg.IsActive, arg.DisplayOrder, arg.UpdatedAt, arg.ID)
	return err
}

const deleteCollection = `
DELETE FROM collections WHERE id = ?
`

// DeleteCollection removes a collection and reports whether a row was
// deleted. Items go with it via cascade.
func (q *Queries) DeleteCollection(ctx context.Context, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, deleteCollection, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Collection items

const createCollectionItem = `
INSERT INTO collection_items (collection_id, title, description, image_url, price, is_available, display_order, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, collection_id, title, description, image_url, price, is_available, display_order, created_at
`

type CreateCollectionItemParams struct {
	CollectionID int64
	Title        string
	Description  string
	ImageURL     string
	Price        sql.NullFloat64
	IsAvailable  bool
	DisplayOrder int64
	CreatedAt    time.Time
}

func (q *Queries) CreateCollectionItem(ctx context.Context, arg CreateCollectionItemParams) (CollectionItem, error) {
	row := q.db.QueryRowContext(ctx, createCollectionItem,
		arg.CollectionID, arg.Title, arg.Description, arg.ImageURL,
		arg.Price, arg.IsAvailable, arg.DisplayOrder, arg.CreatedAt)
	var it CollectionItem
	err := row.Scan(&it.ID, &it.CollectionID, &it.Title, &it.Description, &it.ImageURL,
		&it.Price, &it.IsAvailable, &it.DisplayOrder, &it.CreatedAt)
	return it, err
}

const listCollectionItems = `
SELECT id, collection_id, title, description, image_url, price, is_available, display_order, created_at
FROM collection_items WHERE collection_id = ? ORDER BY display_order ASC
`

func (q *Queries) ListCollectionItems(ctx context.Context, collectionID int64) ([]CollectionItem, error) {
	rows, err := q.db.QueryContext(ctx, listCollectionItems, collectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CollectionItem
	for rows.Next() {
		var it CollectionItem
		if err := rows.Scan(&it.ID, &it.CollectionID, &it.Title, &it.Description, &it.ImageURL,
			&it.Price, &it.IsAvailable, &it.DisplayOrder, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

const deleteCollectionItem = `
DELETE FROM collection_items WHERE id = ?
`

// DeleteCollectionItem removes an item and reports whether a row was deleted.
func (q *Queries) DeleteCollectionItem(ctx context.Context, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, deleteCollectionItem, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (q *Queries) queryCollections(ctx context.Context, query string, args ...interface{}) ([]Collection, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Collection
	for rows.Next() {
		var c Collection
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.ImageURL, &c.Category,
			&c.IsActive, &c.DisplayOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func scanCollection(row *sql.Row) (Collection, error) {
	var c Collection
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.ImageURL, &c.Category,
		&c.IsActive, &c.DisplayOrder, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

package store

import (
	"context"
	"database/sql"
	"time"
)

const menuItemColumns = `id, label, url, parent_id, display_order, is_active, open_in_new_tab, created_at, updated_at`

const createMenuItem = `
INSERT INTO menu_items (label, url, parent_id, display_order, is_active, open_in_new_tab, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + menuItemColumns

type CreateMenuItemParams struct {
	Label        string
	URL          string
	ParentID     sql.NullInt64
	DisplayOrder int64
	IsActive     bool
	OpenInNewTab bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (q *Queries) CreateMenuItem(ctx context.Context, arg CreateMenuItemParams) (MenuItem, error) {
	row := q.db.QueryRowContext(ctx, createMenuItem,
		arg.Label, arg.URL, arg.ParentID, arg.DisplayOrder, arg.IsActive,
		arg.OpenInNewTab, arg.CreatedAt, arg.UpdatedAt)
	return scanMenuItem(row)
}

const getMenuItemByID = `
SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = ?
`

func (q *Queries) GetMenuItemByID(ctx context.Context, id int64) (MenuItem, error) {
	return scanMenuItem(q.db.QueryRowContext(ctx, getMenuItemByID, id))
}

const listMenuItems = `
SELECT ` + menuItemColumns + ` FROM menu_items ORDER BY display_order ASC
`

func (q *Queries) ListMenuItems(ctx context.Context) ([]MenuItem, error) {
	return q.queryMenuItems(ctx, listMenuItems)
}

const listActiveMenuItems = `
SELECT ` + menuItemColumns + ` FROM menu_items WHERE is_active = 1 ORDER BY display_order ASC
`

func (q *Queries) ListActiveMenuItems(ctx context.Context) ([]MenuItem, error) {
	return q.queryMenuItems(ctx, listActiveMenuItems)
}

const updateMenuItem = `
UPDATE menu_items
SET label = ?, url = ?, parent_id = ?, display_order = ?, is_active = ?, open_in_new_tab = ?, updated_at = ?
WHERE id = ?
`

type UpdateMenuItemParams struct {
	Label        string
	URL          string
	ParentID     sql.NullInt64
	DisplayOrder int64
	IsActive     bool
	OpenInNewTab bool
	UpdatedAt    time.Time
	ID           int64
}

func (q *Queries) UpdateMenuItem(ctx context.Context, arg UpdateMenuItemParams) error {
	_, err := q.db.ExecContext(ctx, updateMenuItem,
		arg.Label, arg.URL, arg.ParentID, arg.DisplayOrder, arg.IsActive,
		arg.OpenInNewTab, arg.UpdatedAt, arg.ID)
	return err
}

const deleteMenuItem = `
DELETE FROM menu_items WHERE id = ?
`

// DeleteMenuItem removes a menu item and reports whether a row was deleted.
func (q *Queries) DeleteMenuItem(ctx context.Context, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, deleteMenuItem, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (q *Queries) queryMenuItems(ctx context.Context, query string, args ...interface{}) ([]MenuItem, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []MenuItem
	for rows.Next() {
		var m MenuItem
		if err := rows.Scan(&m.ID, &m.Label, &m.URL, &m.ParentID, &m.DisplayOrder,
			&m.IsActive, &m.OpenInNewTab, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func scanMenuItem(row *sql.Row) (MenuItem, error) {
	var m MenuItem
	err := row.Scan(&m.ID, &m.Label, &m.URL, &m.ParentID, &m.DisplayOrder,
		&m.IsActive, &m.OpenInNewTab, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

package store

import (
	"context"
	"database/sql"
	"time"
)

const bannerColumns = `id, title, content, image_url, cta_text, cta_link, position, is_active,
display_order, start_date, end_date, created_at, updated_at`

const createBanner = `
INSERT INTO banners (title, content, image_url, cta_text, cta_link, position, is_active,
                     display_order, start_date, end_date, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + bannerColumns

type CreateBannerParams struct {
	Title        string
	Content      string
	ImageURL     string
	CtaText      string
	CtaLink      string
	Position     string
	IsActive     bool
	DisplayOrder int64
	StartDate    sql.NullTime
	EndDate      sql.NullTime
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (q *Queries) CreateBanner(ctx context.Context, arg CreateBannerParams) (Banner, error) {
	row := q.db.QueryRowContext(ctx, createBanner,
		arg.Title, arg.Content, arg.ImageURL, arg.CtaText, arg.CtaLink, arg.Position,
		arg.IsActive, arg.DisplayOrder, arg.StartDate, arg.EndDate, arg.CreatedAt, arg.UpdatedAt)
	return scanBanner(row)
}

const getBannerByID = `
SELECT ` + bannerColumns + ` FROM banners WHERE id = ?
`

func (q *Queries) GetBannerByID(ctx context.Context, id int64) (Banner, error) {
	return scanBanner(q.db.QueryRowContext(ctx, getBannerByID, id))
}

const listBanners = `
SELECT ` + bannerColumns + ` FROM banners ORDER BY position ASC, display_order ASC
`

func (q *Queries) ListBanners(ctx context.Context) ([]Banner, error) {
	return q.queryBanners(ctx, listBanners)
}

const listActiveBannersByPosition = `
SELECT ` + bannerColumns + ` FROM banners
WHERE position = ? AND is_active = 1
  AND (start_date IS NULL OR start_date <= ?)
  AND (end_date IS NULL OR end_date >= ?)
ORDER BY display_order ASC
`

type ListActiveBannersByPositionParams struct {
	Position string
	Now      time.Time
}

func (q *Queries) ListActiveBannersByPosition(ctx context.Context, arg ListActiveBannersByPositionParams) ([]Banner, error) {
	return q.queryBanners(ctx, listActiveBannersByPosition, arg.Position, arg.Now, arg.Now)
}

const updateBanner = `
UPDATE banners
SET title = ?, content = ?, image_url = ?, cta_text = ?, cta_link = ?, position = ?,
    is_active = ?, display_order = ?, start_date = ?, end_date = ?, updated_at = ?
WHERE id = ?
`

type UpdateBannerParams struct {
	Title        string
	Content      string
	ImageURL     string
	CtaText      string
	CtaLink      string
	Position     string
	IsActive     bool
	DisplayOrder int64
	StartDate    sql.NullTime
	EndDate      sql.NullTime
	UpdatedAt    time.Time
	ID           int64
}

func (q *Queries) UpdateBanner(ctx context.Context, arg UpdateBannerParams) error {
	_, err := q.db.ExecContext(ctx, updateBanner,
		arg.Title, arg.Content, arg.ImageURL, arg.CtaText, arg.CtaLink, arg.Position,
		arg.IsActive, arg.DisplayOrder, arg.StartDate, arg.EndDate, arg.UpdatedAt, arg.ID)
	return err
}

const deleteBanner = `
DELETE FROM banners WHERE id = ?
`

// DeleteBanner removes a banner and reports whether a row was deleted.
func (q *Queries) DeleteBanner(ctx context.Context, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, deleteBanner, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

const deactivateExpiredBanners = `
UPDATE banners SET is_active = 0, updated_at = ?
WHERE is_active = 1 AND end_date IS NOT NULL AND end_date < ?
`

// DeactivateExpiredBanners turns off banners whose end date has passed and
// returns the number of banners affected.
func (q *Queries) DeactivateExpiredBanners(ctx context.Context, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, deactivateExpiredBanners, now, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) queryBanners(ctx context.Context, query string, args ...interface{}) ([]Banner, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Banner
	for rows.Next() {
		var b Banner
		if err := rows.Scan(&b.ID, &b.Title, &b.Content, &b.ImageURL, &b.CtaText, &b.CtaLink,
			&b.Position, &b.IsActive, &b.DisplayOrder, &b.StartDate, &b.EndDate,
			&b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

func scanBanner(row *sql.Row) (Banner, error) {
	var b Banner
	err := row.Scan(&b.ID, &b.Title, &b.Content, &b.ImageURL, &b.CtaText, &b.CtaLink,
		&b.Position, &b.IsActive, &b.DisplayOrder, &b.StartDate, &b.EndDate,
		&b.CreatedAt, &b.UpdatedAt)
	return b, err
}

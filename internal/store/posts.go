package store

import (
	"context"
	"database/sql"
	"time"
)

const postColumns = `id, title, slug, content, excerpt, featured_image, author_id, category_id,
status, published_at, meta_title, meta_description, reading_time, view_count, created_at, updated_at`

const createPost = `
INSERT INTO posts (title, slug, content, excerpt, featured_image, author_id, category_id,
                   status, published_at, meta_title, meta_description, reading_time, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + postColumns

type CreatePostParams struct {
	Title           string
	Slug            string
	Content         string
	Excerpt         string
	FeaturedImage   string
	AuthorID        string
	CategoryID      sql.NullInt64
	Status          string
	PublishedAt     sql.NullTime
	MetaTitle       string
	MetaDescription string
	ReadingTime     int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (Post, error) {
	row := q.db.QueryRowContext(ctx, createPost,
		arg.Title, arg.Slug, arg.Content, arg.Excerpt, arg.FeaturedImage,
		arg.AuthorID, arg.CategoryID, arg.Status, arg.PublishedAt,
		arg.MetaTitle, arg.MetaDescription, arg.ReadingTime, arg.CreatedAt, arg.UpdatedAt)
	return scanPostRow(row)
}

const getPostByID = `
SELECT ` + postColumns + ` FROM posts WHERE id = ?
`

func (q *Queries) GetPostByID(ctx context.Context, id int64) (Post, error) {
	return scanPostRow(q.db.QueryRowContext(ctx, getPostByID, id))
}

const getPostBySlug = `
SELECT ` + postColumns + ` FROM posts WHERE slug = ?
`

func (q *Queries) GetPostBySlug(ctx context.Context, slug string) (Post, error) {
	return scanPostRow(q.db.QueryRowContext(ctx, getPostBySlug, slug))
}

const getPublishedPostBySlug = `
SELECT ` + postColumns + ` FROM posts WHERE slug = ? AND status = 'published'
`

func (q *Queries) GetPublishedPostBySlug(ctx context.Context, slug string) (Post, error) {
	return scanPostRow(q.db.QueryRowContext(ctx, getPublishedPostBySlug, slug))
}

const listPosts = `
SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC
`

func (q *Queries) ListPosts(ctx context.Context) ([]Post, error) {
	return q.queryPosts(ctx, listPosts)
}

const listPostsByStatus = `
SELECT ` + postColumns + ` FROM posts WHERE status = ? ORDER BY created_at DESC
`

func (q *Queries) ListPostsByStatus(ctx context.Context, status string) ([]Post, error) {
	return q.queryPosts(ctx, listPostsByStatus, status)
}

const listPostsByAuthor = `
SELECT ` + postColumns + ` FROM posts WHERE author_id = ? ORDER BY created_at DESC
`

func (q *Queries) ListPostsByAuthor(ctx context.Context, authorID string) ([]Post, error) {
	return q.queryPosts(ctx, listPostsByAuthor, authorID)
}

const listPublishedPosts = `
SELECT ` + postColumns + ` FROM posts
WHERE status = 'published'
ORDER BY published_at DESC
LIMIT ?
`

func (q *Queries) ListPublishedPosts(ctx context.Context, limit int64) ([]Post, error) {
	return q.queryPosts(ctx, listPublishedPosts, limit)
}

const listPublishedPostsByCategory = `
SELECT ` + postColumns + ` FROM posts
WHERE status = 'published' AND category_id = ?
ORDER BY published_at DESC
`

func (q *Queries) ListPublishedPostsByCategory(ctx context.Context, categoryID sql.NullInt64) ([]Post, error) {
	return q.queryPosts(ctx, listPublishedPostsByCategory, categoryID)
}

const listPublishedPostsByTag = `
SELECT p.id, p.title, p.slug, p.content, p.excerpt, p.featured_image, p.author_id, p.category_id,
       p.status, p.published_at, p.meta_title, p.meta_description, p.reading_time, p.view_count,
       p.created_at, p.updated_at
FROM posts p
JOIN post_tags pt ON pt.post_id = p.id
JOIN tags t ON t.id = pt.tag_id
WHERE p.status = 'published' AND t.slug = ?
ORDER BY p.published_at DESC
`

func (q *Queries) ListPublishedPostsByTag(ctx context.Context, tagSlug string) ([]Post, error) {
	return q.queryPosts(ctx, listPublishedPostsByTag, tagSlug)
}

const updatePost = `
UPDATE posts
SET title = ?, slug = ?, content = ?, excerpt = ?, featured_image = ?, category_id = ?,
    status = ?, published_at = ?, meta_title = ?, meta_description = ?, reading_time = ?, updated_at = ?
WHERE id = ?
RETURNING ` + postColumns

type UpdatePostParams struct {
	Title           string
	Slug            string
	Content         string
	Excerpt         string
	FeaturedImage   string
	CategoryID      sql.NullInt64
	Status          string
	PublishedAt     sql.NullTime
	MetaTitle       string
	MetaDescription string
	ReadingTime     int64
	UpdatedAt       time.Time
	ID              int64
}

func (q *Queries) UpdatePost(ctx context.Context, arg UpdatePostParams) (Post, error) {
	row := q.db.QueryRowContext(ctx, updatePost,
		arg.Title, arg.Slug, arg.Content, arg.Excerpt, arg.FeaturedImage, arg.CategoryID,
		arg.Status, arg.PublishedAt, arg.MetaTitle, arg.MetaDescription, arg.ReadingTime,
		arg.UpdatedAt, arg.ID)
	return scanPostRow(row)
}

const deletePost = `
DELETE FROM posts WHERE id = ?
`

// DeletePost removes a post and reports whether a row was deleted.
// A missing id is not an error.
func (q *Queries) DeletePost(ctx context.Context, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, deletePost, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

const incrementPostViewCount = `
UPDATE posts SET view_count = view_count + 1 WHERE id = ?
`

func (q *Queries) IncrementPostViewCount(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, incrementPostViewCount, id)
	return err
}

const postSlugExists = `
SELECT COUNT(*) FROM posts WHERE slug = ? AND id != ?
`

type PostSlugExistsParams struct {
	Slug      string
	ExcludeID int64
}

// PostSlugExists reports whether another post already uses the slug.
// Pass ExcludeID 0 when creating a new post.
func (q *Queries) PostSlugExists(ctx context.Context, arg PostSlugExistsParams) (bool, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, postSlugExists, arg.Slug, arg.ExcludeID).Scan(&count)
	return count > 0, err
}

const countPosts = `
SELECT COUNT(*) FROM posts
`

func (q *Queries) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countPosts).Scan(&count)
	return count, err
}

const countPostsByStatus = `
SELECT COUNT(*) FROM posts WHERE status = ?
`

func (q *Queries) CountPostsByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countPostsByStatus, status).Scan(&count)
	return count, err
}

const sumPostViewCounts = `
SELECT COALESCE(SUM(view_count), 0) FROM posts
`

func (q *Queries) SumPostViewCounts(ctx context.Context) (int64, error) {
	var total int64
	err := q.db.QueryRowContext(ctx, sumPostViewCounts).Scan(&total)
	return total, err
}

func (q *Queries) queryPosts(ctx context.Context, query string, args ...interface{}) ([]Post, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.FeaturedImage,
			&p.AuthorID, &p.CategoryID, &p.Status, &p.PublishedAt, &p.MetaTitle, &p.MetaDescription,
			&p.ReadingTime, &p.ViewCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func scanPostRow(row *sql.Row) (Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.FeaturedImage,
		&p.AuthorID, &p.CategoryID, &p.Status, &p.PublishedAt, &p.MetaTitle, &p.MetaDescription,
		&p.ReadingTime, &p.ViewCount, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

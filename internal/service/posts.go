// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the content workflows that sit between the
// HTTP handlers and the store: post publishing, tag assignment and view
// counting.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/reclaimd/reclaimd-go/internal/model"
	"github.com/reclaimd/reclaimd-go/internal/store"
	"github.com/reclaimd/reclaimd-go/internal/util"
)

var (
	// ErrSlugTaken is returned when another post or page already owns the slug.
	ErrSlugTaken = errors.New("slug already in use")

	// ErrInvalidSlug is returned when a submitted slug contains characters
	// outside the lowercase-alphanumeric-hyphen alphabet.
	ErrInvalidSlug = errors.New("invalid slug")
)

// Posts implements the post editing workflow.
type Posts struct {
	db      *sql.DB
	queries *store.Queries
}

// NewPosts creates the post service.
func NewPosts(db *sql.DB, queries *store.Queries) *Posts {
	return &Posts{db: db, queries: queries}
}

// PostInput carries the editor form fields for create and update.
type PostInput struct {
	Title           string
	Slug            string
	Content         string
	Excerpt         string
	FeaturedImage   string
	CategoryID      sql.NullInt64
	Status          string
	MetaTitle       string
	MetaDescription string
	Tags            string
}

// resolveSlug derives the slug from the title only when the submitted slug
// is empty. A hand-edited slug is kept as-is so existing URLs survive
// title changes.
func resolveSlug(input PostInput) (string, error) {
	slug := input.Slug
	if slug == "" {
		slug = util.Slugify(input.Title)
	}
	if !util.IsValidSlug(slug) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlug, slug)
	}
	return slug, nil
}

// Create validates and persists a new post, attaching its tags in the
// same transaction. Published posts get published_at stamped now.
func (s *Posts) Create(ctx context.Context, authorID string, input PostInput) (store.Post, error) {
	slug, err := resolveSlug(input)
	if err != nil {
		return store.Post{}, err
	}

	taken, err := s.queries.PostSlugExists(ctx, store.PostSlugExistsParams{Slug: slug})
	if err != nil {
		return store.Post{}, fmt.Errorf("checking slug: %w", err)
	}
	if taken {
		return store.Post{}, fmt.Errorf("%w: %q", ErrSlugTaken, slug)
	}

	now := time.Now().UTC()
	var publishedAt sql.NullTime
	if input.Status == model.PostStatusPublished {
		publishedAt = sql.NullTime{Time: now, Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Post{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := s.queries.WithTx(tx)
	post, err := qtx.CreatePost(ctx, store.CreatePostParams{
		Title:           input.Title,
		Slug:            slug,
		Content:         input.Content,
		Excerpt:         input.Excerpt,
		FeaturedImage:   input.FeaturedImage,
		AuthorID:        authorID,
		CategoryID:      input.CategoryID,
		Status:          input.Status,
		PublishedAt:     publishedAt,
		MetaTitle:       input.MetaTitle,
		MetaDescription: input.MetaDescription,
		ReadingTime:     int64(util.ReadingTime(input.Content)),
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return store.Post{}, fmt.Errorf("creating post: %w", err)
	}

	if err := setTags(ctx, qtx, post.ID, input.Tags, now); err != nil {
		return store.Post{}, err
	}

	if err := tx.Commit(); err != nil {
		return store.Post{}, fmt.Errorf("committing: %w", err)
	}
	return post, nil
}

// Update applies the editor form to an existing post.
//
// published_at is stamped when the post transitions into published,
// preserved while it stays published, and stamped fresh when a post that
// was taken off the site is published again.
func (s *Posts) Update(ctx context.Context, postID int64, input PostInput) (store.Post, error) {
	existing, err := s.queries.GetPostByID(ctx, postID)
	if err != nil {
		return store.Post{}, fmt.Errorf("loading post: %w", err)
	}

	slug, err := resolveSlug(input)
	if err != nil {
		return store.Post{}, err
	}

	taken, err := s.queries.PostSlugExists(ctx, store.PostSlugExistsParams{Slug: slug, ExcludeID: postID})
	if err != nil {
		return store.Post{}, fmt.Errorf("checking slug: %w", err)
	}
	if taken {
		return store.Post{}, fmt.Errorf("%w: %q", ErrSlugTaken, slug)
	}

	now := time.Now().UTC()
	publishedAt := existing.PublishedAt
	if input.Status == model.PostStatusPublished && existing.Status != model.PostStatusPublished {
		publishedAt = sql.NullTime{Time: now, Valid: true}
	}

	readingTime := existing.ReadingTime
	if input.Content != existing.Content {
		readingTime = int64(util.ReadingTime(input.Content))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Post{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := s.queries.WithTx(tx)
	post, err := qtx.UpdatePost(ctx, store.UpdatePostParams{
		Title:           input.Title,
		Slug:            slug,
		Content:         input.Content,
		Excerpt:         input.Excerpt,
		FeaturedImage:   input.FeaturedImage,
		CategoryID:      input.CategoryID,
		Status:          input.Status,
		PublishedAt:     publishedAt,
		MetaTitle:       input.MetaTitle,
		MetaDescription: input.MetaDescription,
		ReadingTime:     readingTime,
		UpdatedAt:       now,
		ID:              postID,
	})
	if err != nil {
		return store.Post{}, fmt.Errorf("updating post: %w", err)
	}

	if err := setTags(ctx, qtx, post.ID, input.Tags, now); err != nil {
		return store.Post{}, err
	}

	if err := tx.Commit(); err != nil {
		return store.Post{}, fmt.Errorf("committing: %w", err)
	}
	return post, nil
}

// setTags replaces the post's tag set with the parsed comma-separated
// list, creating missing tags on the fly. Tags that slugify identically
// collapse to the first spelling in the list.
func setTags(ctx context.Context, q *store.Queries, postID int64, tagList string, now time.Time) error {
	if err := q.DeletePostTags(ctx, postID); err != nil {
		return fmt.Errorf("clearing tags: %w", err)
	}

	for _, name := range util.ParseTagList(tagList) {
		slug := util.Slugify(name)
		if slug == "" {
			continue
		}

		tag, err := q.GetTagBySlug(ctx, slug)
		if errors.Is(err, sql.ErrNoRows) {
			tag, err = q.CreateTag(ctx, store.CreateTagParams{Name: name, Slug: slug, CreatedAt: now})
		}
		if err != nil {
			return fmt.Errorf("resolving tag %q: %w", name, err)
		}

		if err := q.AddPostTag(ctx, store.AddPostTagParams{PostID: postID, TagID: tag.ID}); err != nil {
			return fmt.Errorf("attaching tag %q: %w", name, err)
		}
	}
	return nil
}

// RecordView increments the post's view counter in the background. The
// page render never waits on, or fails because of, the counter write.
func (s *Posts) RecordView(postID int64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.queries.IncrementPostViewCount(ctx, postID); err != nil {
			slog.Warn("incrementing view count", "post_id", postID, "error", err)
		}
	}()
}

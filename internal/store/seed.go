// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/reclaimd/reclaimd-go/internal/auth"
	"github.com/reclaimd/reclaimd-go/internal/model"
	"github.com/reclaimd/reclaimd-go/internal/util"
)

// EnsureAdmin creates the initial admin profile when no admin exists yet.
// Returns the generated password when a profile was created, empty string
// otherwise.
func EnsureAdmin(ctx context.Context, q *Queries, email string) (string, error) {
	count, err := q.CountProfilesByRole(ctx, model.RoleAdmin)
	if err != nil {
		return "", fmt.Errorf("counting admins: %w", err)
	}
	if count > 0 {
		return "", nil
	}

	password := uuid.NewString()
	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hashing admin password: %w", err)
	}

	now := time.Now().UTC()
	_, err = q.CreateProfile(ctx, CreateProfileParams{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     "Administrator",
		Role:         model.RoleAdmin,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return "", fmt.Errorf("creating admin profile: %w", err)
	}

	return password, nil
}

// SeedDemoContent populates an empty database with the default site content:
// navigation menu, site settings, a welcome banner and sample posts.
// It is a no-op when menu items already exist.
func SeedDemoContent(ctx context.Context, q *Queries) error {
	items, err := q.ListMenuItems(ctx)
	if err != nil {
		return fmt.Errorf("checking menu items: %w", err)
	}
	if len(items) > 0 {
		return nil
	}

	now := time.Now().UTC()

	menu := []struct {
		label  string
		url    string
		newTab bool
	}{
		{"Home", "/", false},
		{"About", "/about", false},
		{"Portfolio", "/portfolio", false},
		{"Blog", "/blog", false},
		{"Instagram", "https://instagram.com/reclaim.d", true},
		{"Contact", "/contact", false},
	}
	for i, m := range menu {
		_, err := q.CreateMenuItem(ctx, CreateMenuItemParams{
			Label:        m.label,
			URL:          m.url,
			DisplayOrder: int64(i + 1),
			IsActive:     true,
			OpenInNewTab: m.newTab,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("seeding menu item %q: %w", m.label, err)
		}
	}

	settings := map[string]string{
		"site_title":       "RE_CLAIM.D",
		"site_tagline":     "Reclaimed fashion. Reworked identity.",
		"site_description": "Upcycled fashion label turning discarded garments into one-of-a-kind pieces.",
		"contact_email":    "hello@reclaimd.example",
		"instagram_url":    "https://instagram.com/reclaim.d",
		"posts_per_page":   "9",
	}
	for key, value := range settings {
		if err := q.UpsertConfig(ctx, UpsertConfigParams{Key: key, Value: value, UpdatedAt: now}); err != nil {
			return fmt.Errorf("seeding setting %q: %w", key, err)
		}
	}

	_, err = q.CreateBanner(ctx, CreateBannerParams{
		Title:     "New drop: reworked denim",
		Content:   "One-of-a-kind pieces, available now.",
		CtaText:   "Shop the drop",
		CtaLink:   "/portfolio",
		Position:  model.BannerPositionHeader,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("seeding banner: %w", err)
	}

	pages := []struct {
		title    string
		slug     string
		template string
		content  string
	}{
		{
			"About", "about", model.PageTemplateHero,
			"RE_CLAIM.D is an upcycled fashion label. We take discarded garments " +
				"apart and rebuild them into one-of-a-kind pieces.",
		},
		{
			"Contact", "contact", model.PageTemplateContact,
			"Questions about a piece, a collaboration, or a commission? Write to us.",
		},
	}
	for _, p := range pages {
		_, err := q.CreatePage(ctx, CreatePageParams{
			Title:     p.title,
			Slug:      p.slug,
			Content:   p.content,
			Template:  p.template,
			Status:    model.PageStatusPublished,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("seeding page %q: %w", p.slug, err)
		}
	}

	admins, err := q.ListProfiles(ctx)
	if err != nil || len(admins) == 0 {
		return fmt.Errorf("seeding posts: no author profile available: %w", err)
	}
	author := admins[0]

	posts := []struct {
		title   string
		content string
	}{
		{
			"Why we rework instead of produce",
			"Every garment we release started its life as something else. " +
				"Deadstock, thrift finds, damaged pieces nobody wanted. " +
				"We take them apart and build something new from the panels.",
		},
		{
			"Behind the seams: a denim jacket, twice over",
			"This month's drop centers on a single jacket that went through " +
				"two full deconstructions before the silhouette felt right.",
		},
	}
	for _, p := range posts {
		slug := util.Slugify(p.title)
		_, err := q.CreatePost(ctx, CreatePostParams{
			Title:       p.title,
			Slug:        slug,
			Content:     p.content,
			Excerpt:     util.Excerpt(p.content, 160),
			AuthorID:    author.ID,
			Status:      model.PostStatusPublished,
			PublishedAt: sql.NullTime{Time: now, Valid: true},
			ReadingTime: int64(util.ReadingTime(p.content)),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("seeding post %q: %w", p.title, err)
		}
	}

	slog.Info("seeded demo content", "menu_items", len(menu), "posts", len(posts))
	return nil
}

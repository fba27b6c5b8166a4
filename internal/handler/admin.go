// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"

	"github.com/reclaimd/reclaimd-go/internal/model"
	"github.com/reclaimd/reclaimd-go/internal/render"
	"github.com/reclaimd/reclaimd-go/internal/store"
)

// AdminHandler renders the dashboard and the event log.
type AdminHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *sql.DB, renderer *render.Renderer) *AdminHandler {
	return &AdminHandler{queries: store.New(db), renderer: renderer}
}

// DashboardData holds the dashboard statistics.
type DashboardData struct {
	PostCount       int64
	PublishedCount  int64
	DraftCount      int64
	PageCount       int64
	ProfileCount    int64
	SubscriberCount int64
	MessageCount    int64
	TotalViews      int64
	RecentPosts     []store.Post
}

// Dashboard renders the admin dashboard.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := DashboardData{}

	var err error
	if data.PostCount, err = h.queries.CountPosts(ctx); err != nil {
		logAndInternalError(w, "counting posts", "error", err)
		return
	}
	data.PublishedCount, _ = h.queries.CountPostsByStatus(ctx, model.PostStatusPublished)
	data.DraftCount, _ = h.queries.CountPostsByStatus(ctx, model.PostStatusDraft)
	data.PageCount, _ = h.queries.CountPages(ctx)
	data.ProfileCount, _ = h.queries.CountProfiles(ctx)
	data.SubscriberCount, _ = h.queries.CountSubscribers(ctx)
	data.MessageCount, _ = h.queries.CountContactMessages(ctx)
	data.TotalViews, _ = h.queries.SumPostViewCounts(ctx)

	posts, err := h.queries.ListPosts(ctx)
	if err == nil {
		if len(posts) > 5 {
			posts = posts[:5]
		}
		data.RecentPosts = posts
	}

	if err := h.renderer.Render(w, r, "admin/dashboard", render.TemplateData{
		Title: "Dashboard",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "rendering dashboard", "error", err)
	}
}

// Events renders the recent audit events. Admin only.
func (h *AdminHandler) Events(w http.ResponseWriter, r *http.Request) {
	events, err := h.queries.ListRecentEvents(r.Context(), 200)
	if err != nil {
		logAndInternalError(w, "listing events", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/events", render.TemplateData{
		Title: "Event Log",
		Data:  events,
	}); err != nil {
		logAndInternalError(w, "rendering events", "error", err)
	}
}

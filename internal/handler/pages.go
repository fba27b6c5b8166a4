// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/reclaimd/reclaimd-go/internal/middleware"
	"github.com/reclaimd/reclaimd-go/internal/render"
	"github.com/reclaimd/reclaimd-go/internal/service"
	"github.com/reclaimd/reclaimd-go/internal/store"
	"github.com/reclaimd/reclaimd-go/internal/util"
)

var validPageTemplates = map[string]bool{
	"default":   true,
	"hero":      true,
	"portfolio": true,
	"contact":   true,
}

// PagesHandler manages static pages.
type PagesHandler struct {
	queries  *store.Queries
	events   *service.Events
	renderer *render.Renderer
}

// NewPagesHandler creates a new PagesHandler.
func NewPagesHandler(db *sql.DB, renderer *render.Renderer) *PagesHandler {
	queries := store.New(db)
	return &PagesHandler{queries: queries, events: service.NewEvents(queries), renderer: renderer}
}

// List shows all pages.
func (h *PagesHandler) List(w http.ResponseWriter, r *http.Request) {
	pages, err := h.queries.ListPages(r.Context())
	if err != nil {
		logAndInternalError(w, "listing pages", "error", err)
		return
	}
	if err := h.renderer.Render(w, r, "admin/pages", render.TemplateData{
		Title: "Pages",
		Data:  pages,
	}); err != nil {
		logAndInternalError(w, "rendering pages list", "error", err)
	}
}

// New renders the empty page form.
func (h *PagesHandler) New(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "admin/page_form", render.TemplateData{
		Title: "New Page",
		Data:  store.Page{Template: "default", Status: "draft"},
	}); err != nil {
		logAndInternalError(w, "rendering page form", "error", err)
	}
}

// Create handles the page form submission.
func (h *PagesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdminPages+"/new") {
		return
	}

	title, slug, template, status, ok := h.validatedFields(w, r, RouteAdminPages+"/new")
	if !ok {
		return
	}

	taken, err := h.queries.PageSlugExists(r.Context(), store.PageSlugExistsParams{Slug: slug})
	if err != nil {
		logAndInternalError(w, "checking page slug", "error", err)
		return
	}
	if taken {
		flashError(w, r, h.renderer, RouteAdminPages+"/new", "That slug is already in use")
		return
	}

	now := time.Now().UTC()
	page, err := h.queries.CreatePage(r.Context(), store.CreatePageParams{
		Title:           title,
		Slug:            slug,
		Content:         r.FormValue("content"),
		Template:        template,
		FeaturedImage:   strings.TrimSpace(r.FormValue("featured_image")),
		MetaTitle:       strings.TrimSpace(r.FormValue("meta_title")),
		MetaDescription: strings.TrimSpace(r.FormValue("meta_description")),
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		logAndInternalError(w, "creating page", "error", err)
		return
	}

	profile, _ := middleware.ProfileFromContext(r.Context())
	slog.Info("page created", "page_id", page.ID, "slug", page.Slug)
	h.events.LogContent(r.Context(), "Page created: "+page.Title, profile.ID, r)
	flashSuccess(w, r, h.renderer, RouteAdminPages, "Page created")
}

// Edit renders the page form for an existing page.
func (h *PagesHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminPages, "Invalid page ID")
		return
	}
	page, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminPages, "page", id,
		func(id int64) (store.Page, error) { return h.queries.GetPageByID(r.Context(), id) })
	if !ok {
		return
	}

	if err := h.renderer.Render(w, r, "admin/page_form", render.TemplateData{
		Title: "Edit Page",
		Data:  page,
	}); err != nil {
		logAndInternalError(w, "rendering page form", "error", err)
	}
}

// Update handles the page form submission for an existing page.
func (h *PagesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminPages, "Invalid page ID")
		return
	}
	page, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminPages, "page", id,
		func(id int64) (store.Page, error) { return h.queries.GetPageByID(r.Context(), id) })
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdminPages) {
		return
	}

	title, slug, template, status, ok := h.validatedFields(w, r, RouteAdminPages)
	if !ok {
		return
	}

	taken, err := h.queries.PageSlugExists(r.Context(), store.PageSlugExistsParams{Slug: slug, ExcludeID: page.ID})
	if err != nil {
		logAndInternalError(w, "checking page slug", "error", err)
		return
	}
	if taken {
		flashError(w, r, h.renderer, RouteAdminPages, "That slug is already in use")
		return
	}

	if err := h.queries.UpdatePage(r.Context(), store.UpdatePageParams{
		Title:           title,
		Slug:            slug,
		Content:         r.FormValue("content"),
		Template:        template,
		FeaturedImage:   strings.TrimSpace(r.FormValue("featured_image")),
		MetaTitle:       strings.TrimSpace(r.FormValue("meta_title")),
		MetaDescription: strings.TrimSpace(r.FormValue("meta_description")),
		Status:          status,
		UpdatedAt:       time.Now().UTC(),
		ID:              page.ID,
	}); err != nil {
		logAndInternalError(w, "updating page", "error", err)
		return
	}

	profile, _ := middleware.ProfileFromContext(r.Context())
	slog.Info("page updated", "page_id", page.ID, "slug", slug)
	h.events.LogContent(r.Context(), "Page updated: "+title, profile.ID, r)
	flashSuccess(w, r, h.renderer, RouteAdminPages, "Page updated")
}

// Delete removes a page.
func (h *PagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminPages, "Invalid page ID")
		return
	}
	page, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminPages, "page", id,
		func(id int64) (store.Page, error) { return h.queries.GetPageByID(r.Context(), id) })
	if !ok {
		return
	}

	if _, err := h.queries.DeletePage(r.Context(), page.ID); err != nil {
		logAndInternalError(w, "deleting page", "error", err, "page_id", page.ID)
		return
	}

	profile, _ := middleware.ProfileFromContext(r.Context())
	slog.Info("page deleted", "page_id", page.ID, "slug", page.Slug)
	h.events.LogContent(r.Context(), "Page deleted: "+page.Title, profile.ID, r)
	flashSuccess(w, r, h.renderer, RouteAdminPages, "Page deleted")
}

func (h *PagesHandler) validatedFields(w http.ResponseWriter, r *http.Request, errorURL string) (title, slug, template, status string, ok bool) {
	title = strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		flashError(w, r, h.renderer, errorURL, "Title is required")
		return "", "", "", "", false
	}

	slug = strings.TrimSpace(r.FormValue("slug"))
	if slug == "" {
		slug = util.Slugify(title)
	}
	if !util.IsValidSlug(slug) {
		flashError(w, r, h.renderer, errorURL, "Slug may only contain lowercase letters, numbers and hyphens")
		return "", "", "", "", false
	}

	template = r.FormValue("template")
	if !validPageTemplates[template] {
		flashError(w, r, h.renderer, errorURL, "Invalid template")
		return "", "", "", "", false
	}

	status = r.FormValue("status")
	if status != "draft" && status != "published" {
		flashError(w, r, h.renderer, errorURL, "Invalid status")
		return "", "", "", "", false
	}

	return title, slug, template, status, true
}

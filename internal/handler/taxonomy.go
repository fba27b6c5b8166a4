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

// TaxonomyHandler manages categories and the tag overview.
type TaxonomyHandler struct {
	queries  *store.Queries
	events   *service.Events
	renderer *render.Renderer
}

// NewTaxonomyHandler creates a new TaxonomyHandler.
func NewTaxonomyHandler(db *sql.DB, renderer *render.Renderer) *TaxonomyHandler {
	queries := store.New(db)
	return &TaxonomyHandler{queries: queries, events: service.NewEvents(queries), renderer: renderer}
}

// CategoriesData holds both taxonomies for the combined admin page.
type CategoriesData struct {
	Categories []store.Category
	Tags       []store.Tag
}

// List shows categories and tags.
func (h *TaxonomyHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.queries.ListCategories(r.Context())
	if err != nil {
		logAndInternalError(w, "listing categories", "error", err)
		return
	}
	tags, err := h.queries.ListTags(r.Context())
	if err != nil {
		logAndInternalError(w, "listing tags", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/categories", render.TemplateData{
		Title: "Categories",
		Data:  CategoriesData{Categories: categories, Tags: tags},
	}); err != nil {
		logAndInternalError(w, "rendering categories", "error", err)
	}
}

// Create adds a category.
func (h *TaxonomyHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdminCategories) {
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		flashError(w, r, h.renderer, RouteAdminCategories, "Name is required")
		return
	}

	slug := strings.TrimSpace(r.FormValue("slug"))
	if slug == "" {
		slug = util.Slugify(name)
	}
	if !util.IsValidSlug(slug) {
		flashError(w, r, h.renderer, RouteAdminCategories, "Slug may only contain lowercase letters, numbers and hyphens")
		return
	}

	color := strings.TrimSpace(r.FormValue("color"))
	if color == "" {
		color = "#1a1a1a"
	}

	now := time.Now().UTC()
	category, err := h.queries.CreateCategory(r.Context(), store.CreateCategoryParams{
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(r.FormValue("description")),
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminCategories, "Could not create category; is the slug unique?")
		return
	}

	profile, _ := middleware.ProfileFromContext(r.Context())
	slog.Info("category created", "category_id", category.ID, "slug", category.Slug)
	h.events.LogContent(r.Context(), "Category created: "+category.Name, profile.ID, r)
	flashSuccess(w, r, h.renderer, RouteAdminCategories, "Category created")
}

// Update edits a category.
func (h *TaxonomyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminCategories, "Invalid category ID")
		return
	}
	category, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminCategories, "category", id,
		func(id int64) (store.Category, error) { return h.queries.GetCategoryByID(r.Context(), id) })
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdminCategories) {
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		flashError(w, r, h.renderer, RouteAdminCategories, "Name is required")
		return
	}
	slug := strings.TrimSpace(r.FormValue("slug"))
	if slug == "" {
		slug = util.Slugify(name)
	}
	if !util.IsValidSlug(slug) {
		flashError(w, r, h.renderer, RouteAdminCategories, "Slug may only contain lowercase letters, numbers and hyphens")
		return
	}

	if err := h.queries.UpdateCategory(r.Context(), store.UpdateCategoryParams{
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(r.FormValue("description")),
		Color:       strings.TrimSpace(r.FormValue("color")),
		UpdatedAt:   time.Now().UTC(),
		ID:          category.ID,
	}); err != nil {
		logAndInternalError(w, "updating category", "error", err)
		return
	}

	profile, _ := middleware.ProfileFromContext(r.Context())
	h.events.LogContent(r.Context(), "Category updated: "+name, profile.ID, r)
	flashSuccess(w, r, h.renderer, RouteAdminCategories, "Category updated")
}

// Delete removes a category. Posts keep working; their category becomes
// unset via ON DELETE SET NULL.
func (h *TaxonomyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminCategories, "Invalid category ID")
		return
	}
	category, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminCategories, "category", id,
		func(id int64) (store.Category, error) { return h.queries.GetCategoryByID(r.Context(), id) })
	if !ok {
		return
	}

	if _, err := h.queries.DeleteCategory(r.Context(), category.ID); err != nil {
		logAndInternalError(w, "deleting category", "error", err)
		return
	}

	profile, _ := middleware.ProfileFromContext(r.Context())
	h.events.LogContent(r.Context(), "Category deleted: "+category.Name, profile.ID, r)
	flashSuccess(w, r, h.renderer, RouteAdminCategories, "Category deleted")
}

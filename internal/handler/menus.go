package handler

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/reclaimd/reclaimd-go/internal/middleware"
	"github.com/reclaimd/reclaimd-go/internal/render"
	"github.com/reclaimd/reclaimd-go/internal/service"
	"github.com/reclaimd/reclaimd-go/internal/store"
	"github.com/reclaimd/reclaimd-go/internal/util"
)

// MenusHandler manages the navigation menu.
type MenusHandler struct {
	queries  *store.Queries
	events   *service.Events
	renderer *render.Renderer
}

// NewMenusHandler creates a new MenusHandler.
func NewMenusHandler(db *sql.DB, renderer *render.Renderer) *MenusHandler {
	queries := store.New(db)
	return &MenusHandler{queries: queries, events: service.NewEvents(queries), renderer: renderer}
}

// List shows all menu items.
func (h *MenusHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.queries.ListMenuItems(r.Context())
	if err != nil {
		logAndInternalError(w, "listing menu items", "error", err)
		return
	}
	if err := h.renderer.Render(w, r, "admin/menus", render.TemplateData{
		Title: "Menu",
		Data:  items,
	}); err != nil {
		logAndInternalError(w, "rendering menu items", "error", err)
	}
}

// Create adds a menu item.
func (h *MenusHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdminMenus) {
		return
	}

	label := strings.TrimSpace(r.FormValue("label"))
	url := strings.TrimSpace(r.FormValue("url"))
	if label == "" || url == "" {
		flashError(w, r, h.renderer, RouteAdminMenus, "Label and URL are required")
		return
	}

	displayOrder, _ := strconv.ParseInt(r.FormValue("display_order"), 10, 64)
	now := time.Now().UTC()
	item, err := h.queries.CreateMenuItem(r.Context(), store.CreateMenuItemParams{
		Label:        label,
		URL:          url,
		ParentID:     util.ParseNullInt64Positive(r.FormValue("parent_id")),
		DisplayOrder: displayOrder,
		IsActive:     r.FormValue("is_active") == "on",
		OpenInNewTab: r.FormValue("open_in_new_tab") == "on",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		logAndInternalError(w, "creating menu item", "error", err)
		return
	}

	profile, _ := middleware.ProfileFromContext(r.Context())
	h.events.LogContent(r.Context(), "Menu item created: "+item.Label, profile.ID, r)
	flashSuccess(w, r, h.renderer, RouteAdminMenus, "Menu item created")
}

// Update edits a menu item.
func (h *MenusHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminMenus, "Invalid menu item ID")
		return
	}
	item, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminMenus, "menu item", id,
		func(id int64) (store.MenuItem, error) { return h.queries.GetMenuItemByID(r.Context(), id) })
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdminMenus) {
		return
	}

	label := strings.TrimSpace(r.FormValue("label"))
	url := strings.TrimSpace(r.FormValue("url"))
	if label == "" || url == "" {
		flashError(w, r, h.renderer, RouteAdminMenus, "Label and URL are required")
		return
	}

	displayOrder, _ := strconv.ParseInt(r.FormValue("display_order"), 10, 64)
	if err := h.queries.UpdateMenuItem(r.Context(), store.UpdateMenuItemParams{
		Label:        label,
		URL:          url,
		ParentID:     util.ParseNullInt64Positive(r.FormValue("parent_id")),
		DisplayOrder: displayOrder,
		IsActive:     r.FormValue("is_active") == "on",
		OpenInNewTab: r.FormValue("open_in_new_tab") == "on",
		UpdatedAt:    time.Now().UTC(),
		ID:           item.ID,
	}); err != nil {
		logAndInternalError(w, "updating menu item", "error", err)
		return
	}

	profile, _ := middleware.ProfileFromContext(r.Context())
	h.events.LogContent(r.Context(), "Menu item updated: "+label, profile.ID, r)
	flashSuccess(w, r, h.renderer, RouteAdminMenus, "Menu item updated")
}

// Delete removes a menu item.
func (h *MenusHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminMenus, "Invalid menu item ID")
		return
	}
	item, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminMenus, "menu item", id,
		func(id int64) (store.MenuItem, error) { return h.queries.GetMenuItemByID(r.Context(), id) })
	if !ok {
		return
	}

	if _, err := h.queries.DeleteMenuItem(r.Context(), item.ID); err != nil {
		logAndInternalError(w, "deleting menu item", "error", err)
		return
	}

	profile, _ := middleware.ProfileFromContext(r.Context())
	h.events.LogContent(r.Context(), "Menu item deleted: "+item.Label, profile.ID, r)
	flashSuccess(w, r, h.renderer, RouteAdminMenus, "Menu item deleted")
}

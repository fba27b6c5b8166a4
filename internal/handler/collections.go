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
)

// CollectionsHandler manages the portfolio collections and their items.
type CollectionsHandler struct {
	queries  *store.Queries
	events   *service.Events
	renderer *render.Renderer
}

// NewCollectionsHandler creates a new CollectionsHandler.
func NewCollectionsHandler(db *sql.DB, renderer *render.Renderer) *CollectionsHandler {
	queries := store.New(db)
	return &CollectionsHandler{queries: queries, events: service.NewEvents(queries), renderer: renderer}
}

// List shows all collections.
func (h *CollectionsHandler) List(w http.ResponseWriter, r *http.Request) {
	collections, err := h.queries.ListCollections(r.Context())
	if err != nil {
		logAndInternalError(w, "listing collections", "error", err)
		return
	}
	if err := h.renderer.Render(w, r, "admin/collections", render.TemplateData{
		Title: "Collections",
		Data:  collections,
	}); err != nil {
		logAndInternalError(w, "rendering collections", "error", err)
	}
}

// CollectionDetailData holds a collection and its items for the edit page.
type CollectionDetailData struct {
	Collection store.Collection
	Items      []store.CollectionItem
}

// Edit renders a collection with its items.
func (h *CollectionsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminCollections, "Invalid collection ID")
		return
	}
	collection, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminCollections, "collection", id,
		func(id int64) (store.Collection, error) { return h.queries.GetCollectionByID(r.Context(), id) })
	if !ok {
		return
	}

	items, err := h.queries.ListCollectionItems(r.Context(), collection.ID)
	if err != nil {
		logAndInternalError(w, "listing collection items", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/collection_form", render.TemplateData{
		Title: "Edit Collection",
		Data:  CollectionDetailData{Collection: collection, Items: items},
	}); err != nil {
		logAndInternalError(w, "rendering collection form", "error", err)
	}
}

// Create adds a collection.
func (h *CollectionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdminCollections) {
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		flashError(w, r, h.renderer, RouteAdminCollections, "Title is required")
		return
	}

	displayOrder, _ := strconv.ParseInt(r.FormValue("display_order"), 10, 64)
	now := time.Now().UTC()
	collection, err := h.queries.CreateCollection(r.Context(), store.CreateCollectionParams{
		Title:        title,
		Description:  strings.TrimSpace(r.FormValue("description")),
		ImageURL:     strings.TrimSpace(r.FormValue("image_url")),
		Category:     strings.TrimSpace(r.FormValue("category")),
		IsActive:     r.FormValue("is_active") == "on",
		DisplayOrder: displayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		logAndInternalError(w, "creating collection", "error", err)
		return
	}

	profile, _ := middleware.ProfileFromContext(r.Context())
	h.events.LogContent(r.Context(), "Collection created: "+collection.Title, profile.ID, r)
	flashSuccess(w, r, h.renderer, RouteAdminCollections, "Collection created")
}

// Update edits a collection.
func (h *CollectionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminCollections, "Invalid collection ID")
		return
	}
	collection, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminCollections, "collection", id,
		func(id int64) (store.Collection, error) { return h.queries.GetCollectionByID(r.Context(), id) })
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdminCollections) {
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		flashError(w, r, h.renderer, RouteAdminCollections, "Title is required")
		return
	}

	displayOrder, _ := strconv.ParseInt(r.FormValue("display_order"), 10, 64)
	if err := h.queries.UpdateCollection(r.Context(), store.UpdateCollectionParams{
		Title:        title,
		Description:  strings.TrimSpace(r.FormValue("description")),
		ImageURL:     strings.TrimSpace(r.FormValue("image_url")),
		Category:     strings.TrimSpace(r.FormValue("category")),
		IsActive:     r.FormValue("is_active") == "on",
		DisplayOrder: displayOrder,
		UpdatedAt:    time.Now().UTC(),
		ID:           collection.ID,
	}); err != nil {
		logAndInternalError(w, "updating collection", "error", err)
		return
	}

	profile, _ := middleware.ProfileFromContext(r.Context())
	h.events.LogContent(r.Context(), "Collection updated: "+title, profile.ID, r)
	flashSuccess(w, r, h.renderer, RouteAdminCollections, "Collection updated")
}

// Delete removes a collection and, via cascade, its items.
func (h *CollectionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminCollections, "Invalid collection ID")
		return
	}
	collection, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminCollections, "collection", id,
		func(id int64) (store.Collection, error) { return h.queries.GetCollectionByID(r.Context(), id) })
	if !ok {
		return
	}

	if _, err := h.queries.DeleteCollection(r.Context(), collection.ID); err != nil {
		logAndInternalError(w, "deleting collection", "error", err)
		return
	}

	profile, _ := middleware.ProfileFromContext(r.Context())
	h.events.LogContent(r.Context(), "Collection deleted: "+collection.Title, profile.ID, r)
	flashSuccess(w, r, h.renderer, RouteAdminCollections, "Collection deleted")
}

// AddItem adds an item to a collection.
func (h *CollectionsHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminCollections, "Invalid collection ID")
		return
	}
	collection, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminCollections, "collection", id,
		func(id int64) (store.Collection, error) { return h.queries.GetCollectionByID(r.Context(), id) })
	if !ok {
		return
	}
	editURL := RouteAdminCollections + "/" + strconv.FormatInt(collection.ID, 10) + "/edit"

	if !parseFormOrRedirect(w, r, h.renderer, editURL) {
		return
	}
	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		flashError(w, r, h.renderer, editURL, "Item title is required")
		return
	}

	var price sql.NullFloat64
	if raw := r.FormValue("price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			price = sql.NullFloat64{Float64: v, Valid: true}
		} else {
			flashError(w, r, h.renderer, editURL, "Invalid price")
			return
		}
	}

	displayOrder, _ := strconv.ParseInt(r.FormValue("display_order"), 10, 64)
	if _, err := h.queries.CreateCollectionItem(r.Context(), store.CreateCollectionItemParams{
		CollectionID: collection.ID,
		Title:        title,
		Description:  strings.TrimSpace(r.FormValue("description")),
		ImageURL:     strings.TrimSpace(r.FormValue("image_url")),
		Price:        price,
		IsAvailable:  r.FormValue("is_available") == "on",
		DisplayOrder: displayOrder,
		CreatedAt:    time.Now().UTC(),
	}); err != nil {
		logAndInternalError(w, "creating collection item", "error", err)
		return
	}

	flashSuccess(w, r, h.renderer, editURL, "Item added")
}

// DeleteItem removes an item from a collection.
func (h *CollectionsHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminCollections, "Invalid collection ID")
		return
	}
	itemID, err := strconv.ParseInt(r.FormValue("item_id"), 10, 64)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminCollections, "Invalid item ID")
		return
	}

	if _, err := h.queries.DeleteCollectionItem(r.Context(), itemID); err != nil {
		logAndInternalError(w, "deleting collection item", "error", err)
		return
	}

	flashSuccess(w, r, h.renderer, RouteAdminCollections+"/"+strconv.FormatInt(id, 10)+"/edit", "Item removed")
}

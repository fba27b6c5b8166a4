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

// PostersHandler manages the lookbook poster gallery.
type PostersHandler struct {
	queries  *store.Queries
	events   *service.Events
	renderer *render.Renderer
}

// NewPostersHandler creates a new PostersHandler.
func NewPostersHandler(db *sql.DB, renderer *render.Renderer) *PostersHandler {
	queries := store.New(db)
	return &PostersHandler{queries: queries, events: service.NewEvents(queries), renderer: renderer}
}

// List shows all posters.
func (h *PostersHandler) List(w http.ResponseWriter, r *http.Request) {
	posters, err := h.queries.ListPosters(r.Context())
	if err != nil {
		logAndInternalError(w, "listing posters", "error", err)
		return
	}
	if err := h.renderer.Render(w, r, "admin/posters", render.TemplateData{
		Title: "Posters",
		Data:  posters,
	}); err != nil {
		logAndInternalError(w, "rendering posters", "error", err)
	}
}

// Create adds a poster.
func (h *PostersHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdminPosters) {
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	imageURL := strings.TrimSpace(r.FormValue("image_url"))
	if title == "" || imageURL == "" {
		flashError(w, r, h.renderer, RouteAdminPosters, "Title and image URL are required")
		return
	}

	displayOrder, _ := strconv.ParseInt(r.FormValue("display_order"), 10, 64)
	now := time.Now().UTC()
	poster, err := h.queries.CreatePoster(r.Context(), store.CreatePosterParams{
		Title:        title,
		Description:  strings.TrimSpace(r.FormValue("description")),
		ImageURL:     imageURL,
		Link:         strings.TrimSpace(r.FormValue("link")),
		Category:     strings.TrimSpace(r.FormValue("category")),
		IsActive:     r.FormValue("is_active") == "on",
		DisplayOrder: displayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		logAndInternalError(w, "creating poster", "error", err)
		return
	}

	profile, _ := middleware.ProfileFromContext(r.Context())
	h.events.LogContent(r.Context(), "Poster created: "+poster.Title, profile.ID, r)
	flashSuccess(w, r, h.renderer, RouteAdminPosters, "Poster created")
}

// Update edits a poster.
func (h *PostersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminPosters, "Invalid poster ID")
		return
	}
	poster, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminPosters, "poster", id,
		func(id int64) (store.Poster, error) { return h.queries.GetPosterByID(r.Context(), id) })
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdminPosters) {
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	imageURL := strings.TrimSpace(r.FormValue("image_url"))
	if title == "" || imageURL == "" {
		flashError(w, r, h.renderer, RouteAdminPosters, "Title and image URL are required")
		return
	}

	displayOrder, _ := strconv.ParseInt(r.FormValue("display_order"), 10, 64)
	if err := h.queries.UpdatePoster(r.Context(), store.UpdatePosterParams{
		Title:        title,
		Description:  strings.TrimSpace(r.FormValue("description")),
		ImageURL:     imageURL,
		Link:         strings.TrimSpace(r.FormValue("link")),
		Category:     strings.TrimSpace(r.FormValue("category")),
		IsActive:     r.FormValue("is_active") == "on",
		DisplayOrder: displayOrder,
		UpdatedAt:    time.Now().UTC(),
		ID:           poster.ID,
	}); err != nil {
		logAndInternalError(w, "updating poster", "error", err)
		return
	}

	profile, _ := middleware.ProfileFromContext(r.Context())
	h.events.LogContent(r.Context(), "Poster updated: "+title, profile.ID, r)
	flashSuccess(w, r, h.renderer, RouteAdminPosters, "Poster updated")
}

// Delete removes a poster.
func (h *PostersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminPosters, "Invalid poster ID")
		return
	}
	poster, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminPosters, "poster", id,
		func(id int64) (store.Poster, error) { return h.queries.GetPosterByID(r.Context(), id) })
	if !ok {
		return
	}

	if _, err := h.queries.DeletePoster(r.Context(), poster.ID); err != nil {
		logAndInternalError(w, "deleting poster", "error", err)
		return
	}

	profile, _ := middleware.ProfileFromContext(r.Context())
	h.events.LogContent(r.Context(), "Poster deleted: "+poster.Title, profile.ID, r)
	flashSuccess(w, r, h.renderer, RouteAdminPosters, "Poster deleted")
}

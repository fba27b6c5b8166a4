package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/reclaimd/reclaimd-go/internal/middleware"
	"github.com/reclaimd/reclaimd-go/internal/model"
	"github.com/reclaimd/reclaimd-go/internal/render"
	"github.com/reclaimd/reclaimd-go/internal/service"
	"github.com/reclaimd/reclaimd-go/internal/store"
	"github.com/reclaimd/reclaimd-go/internal/util"
)

// BannersHandler manages promotional banners.
type BannersHandler struct {
	queries  *store.Queries
	events   *service.Events
	renderer *render.Renderer
}

// NewBannersHandler creates a new BannersHandler.
func NewBannersHandler(db *sql.DB, renderer *render.Renderer) *BannersHandler {
	queries := store.New(db)
	return &BannersHandler{queries: queries, events: service.NewEvents(queries), renderer: renderer}
}

// List shows all banners.
func (h *BannersHandler) List(w http.ResponseWriter, r *http.Request) {
	banners, err := h.queries.ListBanners(r.Context())
	if err != nil {
		logAndInternalError(w, "listing banners", "error", err)
		return
	}
	if err := h.renderer.Render(w, r, "admin/banners", render.TemplateData{
		Title: "Banners",
		Data:  banners,
	}); err != nil {
		logAndInternalError(w, "rendering banners", "error", err)
	}
}

// New renders the empty banner form.
func (h *BannersHandler) New(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "admin/banner_form", render.TemplateData{
		Title: "New Banner",
		Data:  store.Banner{Position: model.BannerPositionHeader, IsActive: true},
	}); err != nil {
		logAndInternalError(w, "rendering banner form", "error", err)
	}
}

// Create adds a banner.
func (h *BannersHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdminBanners+"/new") {
		return
	}

	params, ok := h.bannerParamsFromForm(w, r, RouteAdminBanners+"/new")
	if !ok {
		return
	}

	now := time.Now().UTC()
	banner, err := h.queries.CreateBanner(r.Context(), store.CreateBannerParams{
		Title:        params.Title,
		Content:      params.Content,
		ImageURL:     params.ImageURL,
		CtaText:      params.CtaText,
		CtaLink:      params.CtaLink,
		Position:     params.Position,
		IsActive:     params.IsActive,
		DisplayOrder: params.DisplayOrder,
		StartDate:    params.StartDate,
		EndDate:      params.EndDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		logAndInternalError(w, "creating banner", "error", err)
		return
	}

	profile, _ := middleware.ProfileFromContext(r.Context())
	slog.Info("banner created", "banner_id", banner.ID, "position", banner.Position)
	h.events.LogContent(r.Context(), "Banner created: "+banner.Title, profile.ID, r)
	flashSuccess(w, r, h.renderer, RouteAdminBanners, "Banner created")
}

// Edit renders the banner form for an existing banner.
func (h *BannersHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminBanners, "Invalid banner ID")
		return
	}
	banner, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminBanners, "banner", id,
		func(id int64) (store.Banner, error) { return h.queries.GetBannerByID(r.Context(), id) })
	if !ok {
		return
	}

	if err := h.renderer.Render(w, r, "admin/banner_form", render.TemplateData{
		Title: "Edit Banner",
		Data:  banner,
	}); err != nil {
		logAndInternalError(w, "rendering banner form", "error", err)
	}
}

// Update edits a banner.
func (h *BannersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminBanners, "Invalid banner ID")
		return
	}
	banner, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminBanners, "banner", id,
		func(id int64) (store.Banner, error) { return h.queries.GetBannerByID(r.Context(), id) })
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdminBanners) {
		return
	}

	params, ok := h.bannerParamsFromForm(w, r, RouteAdminBanners)
	if !ok {
		return
	}
	params.UpdatedAt = time.Now().UTC()
	params.ID = banner.ID

	if err := h.queries.UpdateBanner(r.Context(), params); err != nil {
		logAndInternalError(w, "updating banner", "error", err)
		return
	}

	profile, _ := middleware.ProfileFromContext(r.Context())
	h.events.LogContent(r.Context(), "Banner updated: "+params.Title, profile.ID, r)
	flashSuccess(w, r, h.renderer, RouteAdminBanners, "Banner updated")
}

// Delete removes a banner.
func (h *BannersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminBanners, "Invalid banner ID")
		return
	}
	banner, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminBanners, "banner", id,
		func(id int64) (store.Banner, error) { return h.queries.GetBannerByID(r.Context(), id) })
	if !ok {
		return
	}

	if _, err := h.queries.DeleteBanner(r.Context(), banner.ID); err != nil {
		logAndInternalError(w, "deleting banner", "error", err)
		return
	}

	profile, _ := middleware.ProfileFromContext(r.Context())
	h.events.LogContent(r.Context(), "Banner deleted: "+banner.Title, profile.ID, r)
	flashSuccess(w, r, h.renderer, RouteAdminBanners, "Banner deleted")
}

func (h *BannersHandler) bannerParamsFromForm(w http.ResponseWriter, r *http.Request, errorURL string) (store.UpdateBannerParams, bool) {
	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		flashError(w, r, h.renderer, errorURL, "Title is required")
		return store.UpdateBannerParams{}, false
	}

	position := r.FormValue("position")
	if !model.IsValidBannerPosition(position) {
		flashError(w, r, h.renderer, errorURL, "Invalid position")
		return store.UpdateBannerParams{}, false
	}

	startDate := util.ParseNullDate(r.FormValue("start_date"))
	endDate := util.ParseNullDate(r.FormValue("end_date"))
	if startDate.Valid && endDate.Valid && endDate.Time.Before(startDate.Time) {
		flashError(w, r, h.renderer, errorURL, "End date must be after start date")
		return store.UpdateBannerParams{}, false
	}

	displayOrder, _ := strconv.ParseInt(r.FormValue("display_order"), 10, 64)

	return store.UpdateBannerParams{
		Title:        title,
		Content:      r.FormValue("content"),
		ImageURL:     strings.TrimSpace(r.FormValue("image_url")),
		CtaText:      strings.TrimSpace(r.FormValue("cta_text")),
		CtaLink:      strings.TrimSpace(r.FormValue("cta_link")),
		Position:     position,
		IsActive:     r.FormValue("is_active") == "on",
		DisplayOrder: displayOrder,
		StartDate:    startDate,
		EndDate:      endDate,
	}, true
}

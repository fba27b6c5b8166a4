package handler

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/reclaimd/reclaimd-go/internal/middleware"
	"github.com/reclaimd/reclaimd-go/internal/render"
	"github.com/reclaimd/reclaimd-go/internal/service"
	"github.com/reclaimd/reclaimd-go/internal/store"
)

// settingsKeys are the site settings editable from the admin. Unknown
// form fields are ignored so arbitrary keys cannot be injected.
var settingsKeys = []string{
	"site_title",
	"site_tagline",
	"site_description",
	"contact_email",
	"instagram_url",
	"posts_per_page",
}

// SettingsHandler manages the site settings key/value store. Admin only.
type SettingsHandler struct {
	queries  *store.Queries
	events   *service.Events
	renderer *render.Renderer
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(db *sql.DB, renderer *render.Renderer) *SettingsHandler {
	queries := store.New(db)
	return &SettingsHandler{queries: queries, events: service.NewEvents(queries), renderer: renderer}
}

// Show renders the settings form.
func (h *SettingsHandler) Show(w http.ResponseWriter, r *http.Request) {
	entries, err := h.queries.ListConfig(r.Context())
	if err != nil {
		logAndInternalError(w, "listing settings", "error", err)
		return
	}

	values := make(map[string]string, len(entries))
	for _, entry := range entries {
		values[entry.Key] = entry.Value
	}

	if err := h.renderer.Render(w, r, "admin/settings", render.TemplateData{
		Title: "Settings",
		Data:  values,
	}); err != nil {
		logAndInternalError(w, "rendering settings", "error", err)
	}
}

// Update saves the settings form.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdminSettings) {
		return
	}

	now := time.Now().UTC()
	for _, key := range settingsKeys {
		if !r.Form.Has(key) {
			continue
		}
		if err := h.queries.UpsertConfig(r.Context(), store.UpsertConfigParams{
			Key:       key,
			Value:     strings.TrimSpace(r.FormValue(key)),
			UpdatedAt: now,
		}); err != nil {
			logAndInternalError(w, "saving setting", "key", key, "error", err)
			return
		}
	}

	profile, _ := middleware.ProfileFromContext(r.Context())
	h.events.LogConfig(r.Context(), "Site settings updated", profile.ID, r)
	flashSuccess(w, r, h.renderer, RouteAdminSettings, "Settings saved")
}

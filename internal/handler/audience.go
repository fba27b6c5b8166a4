package handler

import (
	"database/sql"
	"net/http"

	"github.com/reclaimd/reclaimd-go/internal/render"
	"github.com/reclaimd/reclaimd-go/internal/service"
	"github.com/reclaimd/reclaimd-go/internal/store"
)

// AudienceHandler shows newsletter subscribers and contact messages in
// the admin. Editor and above.
type AudienceHandler struct {
	queries  *store.Queries
	events   *service.Events
	renderer *render.Renderer
}

// NewAudienceHandler creates a new AudienceHandler.
func NewAudienceHandler(db *sql.DB, renderer *render.Renderer) *AudienceHandler {
	queries := store.New(db)
	return &AudienceHandler{queries: queries, events: service.NewEvents(queries), renderer: renderer}
}

// Subscribers lists newsletter subscribers.
func (h *AudienceHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	subscribers, err := h.queries.ListSubscribers(r.Context())
	if err != nil {
		logAndInternalError(w, "listing subscribers", "error", err)
		return
	}
	if err := h.renderer.Render(w, r, "admin/subscribers", render.TemplateData{
		Title: "Subscribers",
		Data:  subscribers,
	}); err != nil {
		logAndInternalError(w, "rendering subscribers", "error", err)
	}
}

// Messages lists contact form submissions.
func (h *AudienceHandler) Messages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.queries.ListContactMessages(r.Context())
	if err != nil {
		logAndInternalError(w, "listing contact messages", "error", err)
		return
	}
	if err := h.renderer.Render(w, r, "admin/messages", render.TemplateData{
		Title: "Messages",
		Data:  messages,
	}); err != nil {
		logAndInternalError(w, "rendering messages", "error", err)
	}
}

// DeleteMessage removes a contact message.
func (h *AudienceHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminMessages, "Invalid message ID")
		return
	}

	if _, err := h.queries.DeleteContactMessage(r.Context(), id); err != nil {
		logAndInternalError(w, "deleting contact message", "error", err)
		return
	}
	flashSuccess(w, r, h.renderer, RouteAdminMessages, "Message deleted")
}

package service

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/reclaimd/reclaimd-go/internal/model"
	"github.com/reclaimd/reclaimd-go/internal/store"
)

// Events records audit events for logins, content changes and
// configuration updates.
type Events struct {
	queries *store.Queries
}

// NewEvents creates the event service.
func NewEvents(queries *store.Queries) *Events {
	return &Events{queries: queries}
}

// Log writes an audit event. Failures are logged, never propagated, so
// auditing cannot break the operation being audited.
func (e *Events) Log(ctx context.Context, level, category, message, userID string, r *http.Request) {
	ip, url := "", ""
	if r != nil {
		ip = r.RemoteAddr
		url = r.URL.Path
	}
	err := e.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     level,
		Category:  category,
		Message:   message,
		UserID:    userID,
		IP:        ip,
		URL:       url,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		slog.Error("writing audit event", "category", category, "message", message, "error", err)
	}
}

// LogAuth records an authentication event (login, logout, signup, failure).
func (e *Events) LogAuth(ctx context.Context, message, userID string, r *http.Request) {
	e.Log(ctx, model.EventLevelInfo, model.EventCategoryAuth, message, userID, r)
}

// LogContent records a content change (posts, pages, banners, menus).
func (e *Events) LogContent(ctx context.Context, message, userID string, r *http.Request) {
	e.Log(ctx, model.EventLevelInfo, model.EventCategoryContent, message, userID, r)
}

// LogConfig records a settings change.
func (e *Events) LogConfig(ctx context.Context, message, userID string, r *http.Request) {
	e.Log(ctx, model.EventLevelInfo, model.EventCategoryConfig, message, userID, r)
}

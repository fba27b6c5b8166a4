// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging wires slog output into the application event log.
package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/reclaimd/reclaimd-go/internal/model"
	"github.com/reclaimd/reclaimd-go/internal/store"
)

// EventLogHandler is a slog.Handler that forwards WARN and ERROR records
// to the events table in addition to the wrapped handler's output.
type EventLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
}

// NewEventLogHandler wraps an existing handler with event-table mirroring.
func NewEventLogHandler(inner slog.Handler, queries *store.Queries) *EventLogHandler {
	return &EventLogHandler{inner: inner, queries: queries}
}

func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *EventLogHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level >= slog.LevelWarn {
		h.persist(record)
	}
	return h.inner.Handle(ctx, record)
}

func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EventLogHandler{inner: h.inner.WithAttrs(attrs), queries: h.queries}
}

func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{inner: h.inner.WithGroup(name), queries: h.queries}
}

func (h *EventLogHandler) persist(record slog.Record) {
	level := model.EventLevelWarning
	if record.Level >= slog.LevelError {
		level = model.EventLevelError
	}

	attrs := make(map[string]any)
	record.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})
	metadata := ""
	if len(attrs) > 0 {
		if raw, err := json.Marshal(attrs); err == nil {
			metadata = string(raw)
		}
	}

	// Written in the background so a slow disk never blocks the request.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.queries.CreateEvent(ctx, store.CreateEventParams{
			Level:     level,
			Category:  model.EventCategorySystem,
			Message:   record.Message,
			Metadata:  metadata,
			CreatedAt: record.Time.UTC(),
		})
	}()
}

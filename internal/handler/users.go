// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/reclaimd/reclaimd-go/internal/auth"
	"github.com/reclaimd/reclaimd-go/internal/middleware"
	"github.com/reclaimd/reclaimd-go/internal/model"
	"github.com/reclaimd/reclaimd-go/internal/render"
	"github.com/reclaimd/reclaimd-go/internal/service"
	"github.com/reclaimd/reclaimd-go/internal/store"
)

// UsersHandler manages profiles. Admin only.
type UsersHandler struct {
	queries  *store.Queries
	events   *service.Events
	renderer *render.Renderer
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(db *sql.DB, renderer *render.Renderer) *UsersHandler {
	queries := store.New(db)
	return &UsersHandler{queries: queries, events: service.NewEvents(queries), renderer: renderer}
}

// List shows all profiles.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.queries.ListProfiles(r.Context())
	if err != nil {
		logAndInternalError(w, "listing profiles", "error", err)
		return
	}
	if err := h.renderer.Render(w, r, "admin/users", render.TemplateData{
		Title: "Users",
		Data:  profiles,
	}); err != nil {
		logAndInternalError(w, "rendering users", "error", err)
	}
}

// Create adds a profile with an admin-chosen role.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdminUsers) {
		return
	}

	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	if _, err := mail.ParseAddress(email); err != nil {
		flashError(w, r, h.renderer, RouteAdminUsers, "A valid email address is required")
		return
	}
	password := r.FormValue("password")
	if len(password) < minPasswordLength {
		flashError(w, r, h.renderer, RouteAdminUsers, "Password must be at least 8 characters")
		return
	}
	role := r.FormValue("role")
	if !model.IsValidRole(role) {
		flashError(w, r, h.renderer, RouteAdminUsers, "Invalid role")
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		logAndInternalError(w, "hashing password", "error", err)
		return
	}

	now := time.Now().UTC()
	created, err := h.queries.CreateProfile(r.Context(), store.CreateProfileParams{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     strings.TrimSpace(r.FormValue("full_name")),
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminUsers, "Could not create user; is the email unique?")
		return
	}

	actor, _ := middleware.ProfileFromContext(r.Context())
	slog.Info("profile created by admin", "profile_id", created.ID, "role", created.Role)
	h.events.Log(r.Context(), model.EventLevelInfo, model.EventCategoryUser,
		"User created: "+created.Email, actor.ID, r)
	flashSuccess(w, r, h.renderer, RouteAdminUsers, "User created")
}

// Update edits a profile, including its role. An admin cannot demote
// themselves, which would lock everyone out of user management.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	profile, err := h.queries.GetProfileByID(r.Context(), id)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminUsers, "User not found")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdminUsers) {
		return
	}

	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	if _, err := mail.ParseAddress(email); err != nil {
		flashError(w, r, h.renderer, RouteAdminUsers, "A valid email address is required")
		return
	}
	role := r.FormValue("role")
	if !model.IsValidRole(role) {
		flashError(w, r, h.renderer, RouteAdminUsers, "Invalid role")
		return
	}

	actor, _ := middleware.ProfileFromContext(r.Context())
	if actor.ID == profile.ID && role != model.RoleAdmin {
		flashError(w, r, h.renderer, RouteAdminUsers, "You cannot remove your own admin role")
		return
	}

	if err := h.queries.UpdateProfile(r.Context(), store.UpdateProfileParams{
		Email:     email,
		FullName:  strings.TrimSpace(r.FormValue("full_name")),
		AvatarURL: strings.TrimSpace(r.FormValue("avatar_url")),
		Role:      role,
		Bio:       strings.TrimSpace(r.FormValue("bio")),
		Website:   strings.TrimSpace(r.FormValue("website")),
		UpdatedAt: time.Now().UTC(),
		ID:        profile.ID,
	}); err != nil {
		logAndInternalError(w, "updating profile", "error", err)
		return
	}

	if password := r.FormValue("password"); password != "" {
		if len(password) < minPasswordLength {
			flashError(w, r, h.renderer, RouteAdminUsers, "Password must be at least 8 characters")
			return
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			logAndInternalError(w, "hashing password", "error", err)
			return
		}
		if err := h.queries.UpdateProfilePassword(r.Context(), store.UpdateProfilePasswordParams{
			PasswordHash: hash,
			UpdatedAt:    time.Now().UTC(),
			ID:           profile.ID,
		}); err != nil {
			logAndInternalError(w, "updating password", "error", err)
			return
		}
	}

	h.events.Log(r.Context(), model.EventLevelInfo, model.EventCategoryUser,
		"User updated: "+email, actor.ID, r)
	flashSuccess(w, r, h.renderer, RouteAdminUsers, "User updated")
}

// Delete removes a profile. Self-deletion is rejected.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	profile, err := h.queries.GetProfileByID(r.Context(), id)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminUsers, "User not found")
		return
	}

	actor, _ := middleware.ProfileFromContext(r.Context())
	if actor.ID == profile.ID {
		flashError(w, r, h.renderer, RouteAdminUsers, "You cannot delete your own account")
		return
	}

	if _, err := h.queries.DeleteProfile(r.Context(), profile.ID); err != nil {
		flashError(w, r, h.renderer, RouteAdminUsers, "Could not delete user; reassign their posts first")
		return
	}

	slog.Info("profile deleted", "profile_id", profile.ID, "email", profile.Email)
	h.events.Log(r.Context(), model.EventLevelInfo, model.EventCategoryUser,
		"User deleted: "+profile.Email, actor.ID, r)
	flashSuccess(w, r, h.renderer, RouteAdminUsers, "User deleted")
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"

	"github.com/reclaimd/reclaimd-go/internal/auth"
	"github.com/reclaimd/reclaimd-go/internal/model"
	"github.com/reclaimd/reclaimd-go/internal/render"
	"github.com/reclaimd/reclaimd-go/internal/service"
	"github.com/reclaimd/reclaimd-go/internal/session"
	"github.com/reclaimd/reclaimd-go/internal/store"
)

const minPasswordLength = 8

// AuthHandler handles login, signup and logout.
type AuthHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	events         *service.Events
	defaultRole    string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, defaultRole string) *AuthHandler {
	return &AuthHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
		events:         service.NewEvents(store.New(db)),
		defaultRole:    defaultRole,
	}
}

// LoginFormData carries the post-login destination through the form.
type LoginFormData struct {
	Next string
}

// LoginForm renders the login page. Already-authenticated users are sent
// to where their role belongs instead.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.redirectAuthenticated(w, r) {
		return
	}
	data := LoginFormData{Next: r.URL.Query().Get("next")}
	if err := h.renderer.Render(w, r, "auth/login", render.TemplateData{Title: "Sign In", Data: data}); err != nil {
		logAndInternalError(w, "rendering login page", "error", err)
	}
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteLogin) {
		return
	}

	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	password := r.FormValue("password")
	if email == "" || password == "" {
		flashError(w, r, h.renderer, RouteLogin, "Email and password are required")
		return
	}

	profile, err := h.queries.GetProfileByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Debug("login attempt for unknown email", "email", email)
			h.events.LogAuth(r.Context(), "Login failed: unknown email", "", r)
		} else {
			slog.Error("database error during login", "error", err)
		}
		flashError(w, r, h.renderer, RouteLogin, "Invalid email or password")
		return
	}

	valid, err := auth.CheckPassword(password, profile.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err)
		flashError(w, r, h.renderer, RouteLogin, "Invalid email or password")
		return
	}
	if !valid {
		h.events.LogAuth(r.Context(), "Login failed: invalid password", profile.ID, r)
		flashError(w, r, h.renderer, RouteLogin, "Invalid email or password")
		return
	}

	// Re-hash if the stored hash uses outdated parameters.
	if auth.NeedsRehash(profile.PasswordHash) {
		if newHash, err := auth.HashPassword(password); err == nil {
			if err := h.queries.UpdateProfilePassword(r.Context(), store.UpdateProfilePasswordParams{
				PasswordHash: newHash,
				UpdatedAt:    time.Now().UTC(),
				ID:           profile.ID,
			}); err != nil {
				slog.Error("failed to re-hash password", "error", err, "profile_id", profile.ID)
			}
		}
	}

	if err := h.queries.UpdateProfileLastLogin(r.Context(), store.UpdateProfileLastLoginParams{
		LastLoginAt: time.Now().UTC(),
		ID:          profile.ID,
	}); err != nil {
		slog.Error("failed to update last login time", "error", err, "profile_id", profile.ID)
	}

	// Regenerate session ID to prevent session fixation
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}
	h.sessionManager.Put(r.Context(), session.KeyProfileID, profile.ID)

	slog.Info("user logged in", "profile_id", profile.ID, "email", profile.Email)
	h.events.LogAuth(r.Context(), "User logged in", profile.ID, r)
	h.renderer.SetFlash(r, "Welcome back", "success")

	http.Redirect(w, r, h.postLoginTarget(r, profile), http.StatusSeeOther)
}

// SignupForm renders the signup page.
func (h *AuthHandler) SignupForm(w http.ResponseWriter, r *http.Request) {
	if h.redirectAuthenticated(w, r) {
		return
	}
	if err := h.renderer.Render(w, r, "auth/signup", render.TemplateData{Title: "Create Account"}); err != nil {
		logAndInternalError(w, "rendering signup page", "error", err)
	}
}

// Signup creates a profile with the configured default role and logs the
// user in. A unique-constraint failure means the email raced an existing
// registration and is reported as already taken.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, "/auth/signup") {
		return
	}

	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	password := r.FormValue("password")
	fullName := strings.TrimSpace(r.FormValue("full_name"))

	if _, err := mail.ParseAddress(email); err != nil {
		flashError(w, r, h.renderer, "/auth/signup", "A valid email address is required")
		return
	}
	if len(password) < minPasswordLength {
		flashError(w, r, h.renderer, "/auth/signup", "Password must be at least 8 characters")
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		logAndInternalError(w, "hashing signup password", "error", err)
		return
	}

	now := time.Now().UTC()
	profile, err := h.queries.CreateProfile(r.Context(), store.CreateProfileParams{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     fullName,
		Role:         h.defaultRole,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if _, lookupErr := h.queries.GetProfileByEmail(r.Context(), email); lookupErr == nil {
			flashError(w, r, h.renderer, "/auth/signup", "That email is already registered")
			return
		}
		logAndInternalError(w, "creating profile", "error", err)
		return
	}

	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}
	h.sessionManager.Put(r.Context(), session.KeyProfileID, profile.ID)

	slog.Info("profile created", "profile_id", profile.ID, "email", email, "role", profile.Role)
	h.events.LogAuth(r.Context(), "User signed up", profile.ID, r)

	flashSuccess(w, r, h.renderer, h.postLoginTarget(r, profile), "Account created")
}

// Logout destroys the session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	profileID := h.sessionManager.GetString(r.Context(), session.KeyProfileID)
	if profileID != "" {
		h.events.LogAuth(r.Context(), "User logged out", profileID, r)
	}

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
	}

	slog.Info("user logged out", "profile_id", profileID)
	flashAndRedirect(w, r, h.renderer, RouteLogin, "You have been signed out", "info")
}

// redirectAuthenticated sends an already-logged-in visitor away from the
// auth pages. Returns true when a redirect was written.
func (h *AuthHandler) redirectAuthenticated(w http.ResponseWriter, r *http.Request) bool {
	profileID := h.sessionManager.GetString(r.Context(), session.KeyProfileID)
	if profileID == "" {
		return false
	}
	profile, err := h.queries.GetProfileByID(r.Context(), profileID)
	if err != nil {
		return false
	}
	http.Redirect(w, r, h.postLoginTarget(r, profile), http.StatusSeeOther)
	return true
}

// postLoginTarget picks the destination after authentication: the next
// parameter when it is a safe local path, otherwise the admin dashboard
// for content roles and the homepage for subscribers.
func (h *AuthHandler) postLoginTarget(r *http.Request, profile store.Profile) string {
	next := r.FormValue("next")
	if next == "" {
		next = r.URL.Query().Get("next")
	}
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	if model.RoleAtLeast(profile.Role, model.RoleAuthor) {
		return RouteAdmin
	}
	return RouteRoot
}

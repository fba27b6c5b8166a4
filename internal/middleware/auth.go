// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware contains the HTTP middleware chain: profile loading,
// role gating, CSRF protection and login throttling.
package middleware

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/alexedwards/scs/v2"

	"github.com/reclaimd/reclaimd-go/internal/model"
	"github.com/reclaimd/reclaimd-go/internal/session"
	"github.com/reclaimd/reclaimd-go/internal/store"
)

type contextKey string

const profileContextKey contextKey = "profile"

// AuthPageRenderer renders the auth-state pages the middleware can end a
// request with: the inline access-denied page for authenticated users
// whose role is insufficient, and the waiting page for sessions whose
// profile cannot be loaded yet.
type AuthPageRenderer interface {
	RenderAccessDenied(w http.ResponseWriter, r *http.Request, profile store.Profile)
	RenderProvisioning(w http.ResponseWriter, r *http.Request)
}

// Auth bundles the dependencies of the authentication middleware.
type Auth struct {
	queries  *store.Queries
	sessions *scs.SessionManager
	pages    AuthPageRenderer
}

// NewAuth creates the authentication middleware.
func NewAuth(queries *store.Queries, sessions *scs.SessionManager, pages AuthPageRenderer) *Auth {
	return &Auth{queries: queries, sessions: sessions, pages: pages}
}

// ProfileFromContext returns the profile loaded by LoadProfile, if any.
func ProfileFromContext(ctx context.Context) (store.Profile, bool) {
	p, ok := ctx.Value(profileContextKey).(store.Profile)
	return p, ok
}

// ContextWithProfile attaches a profile to the context. Exported for tests.
func ContextWithProfile(ctx context.Context, p store.Profile) context.Context {
	return context.WithValue(ctx, profileContextKey, p)
}

// LoadProfile resolves the session's profile ID into a full profile and
// stores it on the request context. A session whose profile no longer
// exists is destroyed rather than served half-authenticated. When the
// profile cannot be loaded for any other reason the user is still
// authenticated, so the request gets the waiting page rather than being
// downgraded to anonymous and bounced to login.
func (a *Auth) LoadProfile(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profileID := a.sessions.GetString(r.Context(), session.KeyProfileID)
		if profileID == "" {
			next.ServeHTTP(w, r)
			return
		}

		profile, err := a.queries.GetProfileByID(r.Context(), profileID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				slog.Warn("session referenced missing profile, destroying session", "profile_id", profileID)
				_ = a.sessions.Destroy(r.Context())
				next.ServeHTTP(w, r)
				return
			}
			slog.Error("loading session profile", "profile_id", profileID, "error", err)
			w.Header().Set("Retry-After", "5")
			w.WriteHeader(http.StatusServiceUnavailable)
			a.pages.RenderProvisioning(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithProfile(r.Context(), profile)))
	})
}

// RequireAuth redirects unauthenticated requests to the login page,
// preserving the requested URL in the next parameter.
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ProfileFromContext(r.Context()); !ok {
			http.Redirect(w, r, "/auth/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole allows the request through only when the profile's role is
// at least minRole. Authenticated users below the threshold get the
// access-denied page instead of a redirect, so they keep their session.
func (a *Auth) RequireRole(minRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile, ok := ProfileFromContext(r.Context())
			if !ok {
				http.Redirect(w, r, "/auth/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
				return
			}
			if !model.RoleAtLeast(profile.Role, minRole) {
				slog.Warn("access denied",
					"profile_id", profile.ID, "role", profile.Role, "required", minRole, "path", r.URL.Path)
				w.WriteHeader(http.StatusForbidden)
				a.pages.RenderAccessDenied(w, r, profile)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

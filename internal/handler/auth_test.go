package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/reclaimd/reclaimd-go/internal/model"
	"github.com/reclaimd/reclaimd-go/internal/session"
	"github.com/reclaimd/reclaimd-go/internal/store"
)

func newTestAuthHandler(t *testing.T) (*AuthHandler, *store.Queries) {
	t.Helper()
	db := testDB(t)
	sm := testSessionManager(t)
	renderer := testRenderer(t, sm)
	h := NewAuthHandler(db, renderer, sm, model.RoleAuthor)
	return h, store.New(db)
}

func formRequest(t *testing.T, target string, form url.Values) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestLogin_Success(t *testing.T) {
	h, q := newTestAuthHandler(t)
	createTestProfile(t, q, "author@reclaimd.test", model.RoleAuthor)

	r := formRequest(t, "/auth/login", url.Values{
		"email":    {"Author@RECLAIMD.test"},
		"password": {"password123"},
	})
	r = requestWithSession(t, h.sessionManager, r)
	rec := httptest.NewRecorder()

	h.Login(rec, r)

	assertRedirect(t, rec, RouteAdmin)
	if got := h.sessionManager.GetString(r.Context(), session.KeyProfileID); got == "" {
		t.Error("expected profile ID in session after login")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	h, q := newTestAuthHandler(t)
	createTestProfile(t, q, "author@reclaimd.test", model.RoleAuthor)

	r := formRequest(t, "/auth/login", url.Values{
		"email":    {"author@reclaimd.test"},
		"password": {"not-the-password"},
	})
	r = requestWithSession(t, h.sessionManager, r)
	rec := httptest.NewRecorder()

	h.Login(rec, r)

	assertRedirect(t, rec, RouteLogin)
	if got := h.sessionManager.GetString(r.Context(), session.KeyProfileID); got != "" {
		t.Errorf("expected no session profile after failed login, got %q", got)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	h, _ := newTestAuthHandler(t)

	r := formRequest(t, "/auth/login", url.Values{
		"email":    {"nobody@reclaimd.test"},
		"password": {"password123"},
	})
	r = requestWithSession(t, h.sessionManager, r)
	rec := httptest.NewRecorder()

	h.Login(rec, r)

	assertRedirect(t, rec, RouteLogin)
}

func TestLogin_HonorsNextParam(t *testing.T) {
	h, q := newTestAuthHandler(t)
	createTestProfile(t, q, "editor@reclaimd.test", model.RoleEditor)

	r := formRequest(t, "/auth/login", url.Values{
		"email":    {"editor@reclaimd.test"},
		"password": {"password123"},
		"next":     {"/admin/pages"},
	})
	r = requestWithSession(t, h.sessionManager, r)
	rec := httptest.NewRecorder()

	h.Login(rec, r)

	assertRedirect(t, rec, "/admin/pages")
}

func TestLogin_RejectsExternalNext(t *testing.T) {
	h, q := newTestAuthHandler(t)
	createTestProfile(t, q, "author@reclaimd.test", model.RoleAuthor)

	r := formRequest(t, "/auth/login", url.Values{
		"email":    {"author@reclaimd.test"},
		"password": {"password123"},
		"next":     {"//evil.example/phish"},
	})
	r = requestWithSession(t, h.sessionManager, r)
	rec := httptest.NewRecorder()

	h.Login(rec, r)

	assertRedirect(t, rec, RouteAdmin)
}

func TestSignup_AssignsDefaultRole(t *testing.T) {
	h, q := newTestAuthHandler(t)

	r := formRequest(t, "/auth/signup", url.Values{
		"email":     {"new@reclaimd.test"},
		"password":  {"longenough"},
		"full_name": {"New User"},
	})
	r = requestWithSession(t, h.sessionManager, r)
	rec := httptest.NewRecorder()

	h.Signup(rec, r)

	assertRedirect(t, rec, RouteAdmin)

	profile, err := q.GetProfileByEmail(r.Context(), "new@reclaimd.test")
	if err != nil {
		t.Fatalf("expected profile to exist: %v", err)
	}
	if profile.Role != model.RoleAuthor {
		t.Errorf("role = %q, want %q", profile.Role, model.RoleAuthor)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	h, q := newTestAuthHandler(t)
	createTestProfile(t, q, "taken@reclaimd.test", model.RoleAuthor)

	r := formRequest(t, "/auth/signup", url.Values{
		"email":    {"taken@reclaimd.test"},
		"password": {"longenough"},
	})
	r = requestWithSession(t, h.sessionManager, r)
	rec := httptest.NewRecorder()

	h.Signup(rec, r)

	assertRedirect(t, rec, "/auth/signup")
}

func TestSignup_ShortPassword(t *testing.T) {
	h, _ := newTestAuthHandler(t)

	r := formRequest(t, "/auth/signup", url.Values{
		"email":    {"new@reclaimd.test"},
		"password": {"short"},
	})
	r = requestWithSession(t, h.sessionManager, r)
	rec := httptest.NewRecorder()

	h.Signup(rec, r)

	assertRedirect(t, rec, "/auth/signup")
}

func TestLogout_DestroysSession(t *testing.T) {
	h, q := newTestAuthHandler(t)
	profile := createTestProfile(t, q, "author@reclaimd.test", model.RoleAuthor)

	r := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	r = requestWithSession(t, h.sessionManager, r)
	h.sessionManager.Put(r.Context(), session.KeyProfileID, profile.ID)
	rec := httptest.NewRecorder()

	h.Logout(rec, r)

	assertRedirect(t, rec, RouteLogin)
	if got := h.sessionManager.GetString(r.Context(), session.KeyProfileID); got != "" {
		t.Errorf("expected session destroyed, still has profile %q", got)
	}
}

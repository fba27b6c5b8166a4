// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/reclaimd/reclaimd-go/internal/cache"
	"github.com/reclaimd/reclaimd-go/internal/model"
	"github.com/reclaimd/reclaimd-go/internal/store"
)

func newTestFrontendHandler(t *testing.T) (*FrontendHandler, *store.Queries, *scs.SessionManager) {
	t.Helper()
	db := testDB(t)
	sm := testSessionManager(t)
	renderer := testRenderer(t, sm)
	h := NewFrontendHandler(db, renderer, cache.NewMemory(100))
	return h, store.New(db), sm
}

func createPublishedPost(t *testing.T, q *store.Queries, authorID, title, slug string) store.Post {
	t.Helper()
	now := time.Now().UTC()
	post, err := q.CreatePost(context.Background(), store.CreatePostParams{
		Title:       title,
		Slug:        slug,
		Content:     "Some reclaimed denim thoughts.",
		AuthorID:    authorID,
		Status:      model.PostStatusPublished,
		PublishedAt: sql.NullTime{Time: now, Valid: true},
		ReadingTime: 1,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("creating post: %v", err)
	}
	return post
}

func TestPost_PublishedRendersAndCountsView(t *testing.T) {
	h, q, sm := newTestFrontendHandler(t)
	author := createTestProfile(t, q, "author@reclaimd.test", model.RoleAuthor)
	post := createPublishedPost(t, q, author.ID, "Denim Futures", "denim-futures")

	r := httptest.NewRequest(http.MethodGet, "/blog/denim-futures", nil)
	r = requestWithSession(t, sm, r)
	r = requestWithURLParams(r, map[string]string{"slug": "denim-futures"})
	rec := httptest.NewRecorder()

	h.Post(rec, r)

	assertStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "Denim Futures") {
		t.Error("expected post title in response body")
	}

	// The view count is recorded asynchronously.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		got, err := q.GetPostByID(context.Background(), post.ID)
		if err == nil && got.ViewCount == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("view count was not incremented")
}

func TestPost_UnknownSlugIs404(t *testing.T) {
	h, _, sm := newTestFrontendHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/blog/no-such-post", nil)
	r = requestWithSession(t, sm, r)
	r = requestWithURLParams(r, map[string]string{"slug": "no-such-post"})
	rec := httptest.NewRecorder()

	h.Post(rec, r)

	assertStatus(t, rec, http.StatusNotFound)
}

func TestPost_DraftSlugIs404(t *testing.T) {
	h, q, sm := newTestFrontendHandler(t)
	author := createTestProfile(t, q, "author@reclaimd.test", model.RoleAuthor)

	now := time.Now().UTC()
	if _, err := q.CreatePost(context.Background(), store.CreatePostParams{
		Title:     "Unfinished",
		Slug:      "unfinished",
		Content:   "draft body",
		AuthorID:  author.ID,
		Status:    model.PostStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("creating draft: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/blog/unfinished", nil)
	r = requestWithSession(t, sm, r)
	r = requestWithURLParams(r, map[string]string{"slug": "unfinished"})
	rec := httptest.NewRecorder()

	h.Post(rec, r)

	assertStatus(t, rec, http.StatusNotFound)
}

func TestContact_SavesMessage(t *testing.T) {
	h, q, sm := newTestFrontendHandler(t)

	r := formRequest(t, "/contact", url.Values{
		"name":    {"Ada"},
		"email":   {"ada@example.com"},
		"message": {"Do you ship to Berlin?"},
	})
	r = requestWithSession(t, sm, r)
	rec := httptest.NewRecorder()

	h.Contact(rec, r)

	assertRedirect(t, rec, "/contact")
	messages, err := q.ListContactMessages(context.Background())
	if err != nil {
		t.Fatalf("listing messages: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(messages))
	}
	if messages[0].Email != "ada@example.com" {
		t.Errorf("email = %q", messages[0].Email)
	}
}

func TestContact_RequiresNameAndMessage(t *testing.T) {
	h, q, sm := newTestFrontendHandler(t)

	r := formRequest(t, "/contact", url.Values{
		"email": {"ada@example.com"},
	})
	r = requestWithSession(t, sm, r)
	rec := httptest.NewRecorder()

	h.Contact(rec, r)

	assertRedirect(t, rec, "/contact")
	messages, _ := q.ListContactMessages(context.Background())
	if len(messages) != 0 {
		t.Errorf("got %d messages, want 0", len(messages))
	}
}

func TestSubscribe_DuplicateTreatedAsSuccess(t *testing.T) {
	h, q, sm := newTestFrontendHandler(t)

	form := url.Values{"email": {"fan@example.com"}, "redirect": {"/"}}

	for i := 0; i < 2; i++ {
		r := formRequest(t, "/newsletter", form)
		r = requestWithSession(t, sm, r)
		rec := httptest.NewRecorder()
		h.Subscribe(rec, r)
		assertRedirect(t, rec, "/")
	}

	subs, err := q.ListSubscribers(context.Background())
	if err != nil {
		t.Fatalf("listing subscribers: %v", err)
	}
	if len(subs) != 1 {
		t.Errorf("got %d subscribers, want 1", len(subs))
	}
}

func TestInstagram_ForwardsToConfiguredProfile(t *testing.T) {
	h, q, sm := newTestFrontendHandler(t)

	if err := q.UpsertConfig(context.Background(), store.UpsertConfigParams{
		Key: "instagram_url", Value: "https://instagram.com/reclaim.d", UpdatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seeding setting: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/instagram", nil)
	r = requestWithSession(t, sm, r)
	rec := httptest.NewRecorder()
	h.Instagram(rec, r)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	if loc := rec.Header().Get("Location"); loc != "https://instagram.com/reclaim.d" {
		t.Errorf("Location = %q", loc)
	}
}

func TestInstagram_UnconfiguredIs404(t *testing.T) {
	h, _, sm := newTestFrontendHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/instagram", nil)
	r = requestWithSession(t, sm, r)
	rec := httptest.NewRecorder()
	h.Instagram(rec, r)

	assertStatus(t, rec, http.StatusNotFound)
}

func TestHome_NewsletterPopupShownOnlyOnce(t *testing.T) {
	h, _, sm := newTestFrontendHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = requestWithSession(t, sm, r)
	rec := httptest.NewRecorder()
	h.Home(rec, r)

	assertStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "newsletter-popup") {
		t.Error("first visit should render the newsletter popup")
	}
	var shown *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "newsletter_popup_shown" {
			shown = c
		}
	}
	if shown == nil {
		t.Fatal("popup-shown cookie not set on first visit")
	}
	if shown.MaxAge < 360*24*60*60 {
		t.Errorf("popup cookie MaxAge = %d, want about a year", shown.MaxAge)
	}

	// A returning visitor carries the cookie and gets no popup.
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: shown.Name, Value: shown.Value})
	r = requestWithSession(t, sm, r)
	rec = httptest.NewRecorder()
	h.Home(rec, r)

	assertStatus(t, rec, http.StatusOK)
	if strings.Contains(rec.Body.String(), "newsletter-popup") {
		t.Error("popup rendered again despite the cookie")
	}
}

func TestSubscribe_RemembersEmailOnClient(t *testing.T) {
	h, _, sm := newTestFrontendHandler(t)

	r := formRequest(t, "/newsletter", url.Values{"email": {"fan@example.com"}, "redirect": {"/"}})
	r = requestWithSession(t, sm, r)
	rec := httptest.NewRecorder()
	h.Subscribe(rec, r)

	assertRedirect(t, rec, "/")
	var email, popup string
	for _, c := range rec.Result().Cookies() {
		switch c.Name {
		case "newsletter_email":
			email = c.Value
		case "newsletter_popup_shown":
			popup = c.Value
		}
	}
	if got, _ := url.QueryUnescape(email); got != "fan@example.com" {
		t.Errorf("remembered email = %q, want fan@example.com", got)
	}
	if popup != "1" {
		t.Error("subscribing should retire the popup")
	}
}

func TestUnsubscribe_ByToken(t *testing.T) {
	h, q, sm := newTestFrontendHandler(t)

	sub, err := q.CreateSubscriber(context.Background(), store.CreateSubscriberParams{
		Email:     "fan@example.com",
		Token:     "tok-123",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("creating subscriber: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/newsletter/unsubscribe/tok-123", nil)
	r = requestWithSession(t, sm, r)
	r = requestWithURLParams(r, map[string]string{"token": sub.Token})
	rec := httptest.NewRecorder()

	h.Unsubscribe(rec, r)

	assertRedirect(t, rec, RouteRoot)
	if _, err := q.GetSubscriberByEmail(context.Background(), "fan@example.com"); err == nil {
		t.Error("expected subscriber to be removed")
	}
}

func TestUnsubscribe_UnknownTokenIs404(t *testing.T) {
	h, _, sm := newTestFrontendHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/newsletter/unsubscribe/bogus", nil)
	r = requestWithSession(t, sm, r)
	r = requestWithURLParams(r, map[string]string{"token": "bogus"})
	rec := httptest.NewRecorder()

	h.Unsubscribe(rec, r)

	assertStatus(t, rec, http.StatusNotFound)
}

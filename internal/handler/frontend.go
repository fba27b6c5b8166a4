// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/reclaimd/reclaimd-go/internal/cache"
	"github.com/reclaimd/reclaimd-go/internal/model"
	"github.com/reclaimd/reclaimd-go/internal/render"
	"github.com/reclaimd/reclaimd-go/internal/service"
	"github.com/reclaimd/reclaimd-go/internal/store"
)

const (
	defaultPostsPerPage = 9
	settingsCacheKey    = "site:settings"
	settingsCacheTTL    = 5 * time.Minute

	// Newsletter state persisted on the client. The year-long expiry
	// stands in for "never expires".
	newsletterPopupCookie = "newsletter_popup_shown"
	newsletterEmailCookie = "newsletter_email"
	newsletterCookieAge   = 365 * 24 * time.Hour
)

// FrontendHandler serves the public site.
type FrontendHandler struct {
	queries  *store.Queries
	posts    *service.Posts
	renderer *render.Renderer
	cache    cache.Cache
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(db *sql.DB, renderer *render.Renderer, c cache.Cache) *FrontendHandler {
	queries := store.New(db)
	return &FrontendHandler{
		queries:  queries,
		posts:    service.NewPosts(db, queries),
		renderer: renderer,
		cache:    c,
	}
}

// SiteChrome is the shared layout data: navigation, banners and settings.
type SiteChrome struct {
	MenuItems []store.MenuItem
	Banners   []store.Banner
	Settings  map[string]string

	// ShowNewsletterPopup is set on the first visit only; the flag is
	// then remembered in a cookie so the popup never reappears.
	ShowNewsletterPopup bool
	// NewsletterEmail prefills the signup forms for returning subscribers.
	NewsletterEmail string
}

// newsletterState reads the persisted popup/email cookies into the chrome
// and marks the popup as shown for subsequent visits.
func (h *FrontendHandler) newsletterState(w http.ResponseWriter, r *http.Request, chrome *SiteChrome) {
	if c, err := r.Cookie(newsletterEmailCookie); err == nil {
		if email, err := url.QueryUnescape(c.Value); err == nil {
			chrome.NewsletterEmail = email
		}
	}

	if _, err := r.Cookie(newsletterPopupCookie); err == nil {
		return
	}
	chrome.ShowNewsletterPopup = true
	http.SetCookie(w, &http.Cookie{
		Name:     newsletterPopupCookie,
		Value:    "1",
		Path:     "/",
		MaxAge:   int(newsletterCookieAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// HomeData is the homepage payload.
type HomeData struct {
	Chrome      SiteChrome
	LatestPosts []store.Post
	Collections []store.Collection
	Posters     []store.Poster
}

// Home renders the landing page.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	chrome, err := h.siteChrome(ctx)
	if err != nil {
		logAndInternalError(w, "loading site chrome", "error", err)
		return
	}

	h.newsletterState(w, r, &chrome)

	data := HomeData{Chrome: chrome}
	if data.LatestPosts, err = h.queries.ListPublishedPosts(ctx, 3); err != nil {
		logAndInternalError(w, "listing latest posts", "error", err)
		return
	}
	data.Collections, _ = h.queries.ListActiveCollections(ctx)
	data.Posters, _ = h.queries.ListActivePosters(ctx)

	if err := h.renderer.Render(w, r, "public/home", render.TemplateData{
		Title: chrome.Settings["site_title"],
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "rendering homepage", "error", err)
	}
}

// BlogData is the blog index payload.
type BlogData struct {
	Chrome     SiteChrome
	Posts      []store.Post
	Categories []store.Category
	Category   string
}

// Blog renders the blog index, optionally filtered by category slug
// via the ?category= query parameter. Unknown slugs fall back to the
// unfiltered list.
func (h *FrontendHandler) Blog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	chrome, err := h.siteChrome(ctx)
	if err != nil {
		logAndInternalError(w, "loading site chrome", "error", err)
		return
	}

	perPage := int64(defaultPostsPerPage)
	if raw := chrome.Settings["posts_per_page"]; raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			perPage = n
		}
	}

	var (
		posts      []store.Post
		activeSlug string
	)
	if slug := r.URL.Query().Get("category"); slug != "" {
		category, err := h.queries.GetCategoryBySlug(ctx, slug)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			logAndInternalError(w, "loading category", "slug", slug, "error", err)
			return
		}
		if err == nil {
			posts, err = h.queries.ListPublishedPostsByCategory(ctx,
				sql.NullInt64{Int64: category.ID, Valid: true})
			if err != nil {
				logAndInternalError(w, "listing posts by category", "slug", slug, "error", err)
				return
			}
			activeSlug = category.Slug
		}
	}
	if activeSlug == "" {
		posts, err = h.queries.ListPublishedPosts(ctx, perPage)
		if err != nil {
			logAndInternalError(w, "listing published posts", "error", err)
			return
		}
	}

	categories, err := h.queries.ListCategories(ctx)
	if err != nil {
		logAndInternalError(w, "listing categories", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "public/blog", render.TemplateData{
		Title: "Blog",
		Data:  BlogData{Chrome: chrome, Posts: posts, Categories: categories, Category: activeSlug},
	}); err != nil {
		logAndInternalError(w, "rendering blog", "error", err)
	}
}

// PostData is the single-post payload.
type PostData struct {
	Chrome SiteChrome
	Post   store.Post
	Tags   []store.Tag
}

// Post renders a published post by slug and counts the view without
// blocking the response.
func (h *FrontendHandler) Post(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.queries.GetPublishedPostBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.NotFound(w, r)
			return
		}
		logAndInternalError(w, "loading post", "slug", slug, "error", err)
		return
	}

	h.posts.RecordView(post.ID)

	chrome, err := h.siteChrome(r.Context())
	if err != nil {
		logAndInternalError(w, "loading site chrome", "error", err)
		return
	}
	tags, _ := h.queries.ListTagsForPost(r.Context(), post.ID)

	if err := h.renderer.Render(w, r, "public/post", render.TemplateData{
		Title: post.Title,
		Data:  PostData{Chrome: chrome, Post: post, Tags: tags},
	}); err != nil {
		logAndInternalError(w, "rendering post", "error", err)
	}
}

// PageData is the static-page payload.
type PageData struct {
	Chrome SiteChrome
	Page   store.Page
}

// Page renders a published page by slug.
func (h *FrontendHandler) Page(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	page, err := h.queries.GetPublishedPageBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.NotFound(w, r)
			return
		}
		logAndInternalError(w, "loading page", "slug", slug, "error", err)
		return
	}

	chrome, err := h.siteChrome(r.Context())
	if err != nil {
		logAndInternalError(w, "loading site chrome", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "public/page", render.TemplateData{
		Title: page.Title,
		Data:  PageData{Chrome: chrome, Page: page},
	}); err != nil {
		logAndInternalError(w, "rendering page", "error", err)
	}
}

// PortfolioData is the portfolio payload.
type PortfolioData struct {
	Chrome      SiteChrome
	Collections []store.Collection
	Posters     []store.Poster
}

// Portfolio renders the collections and poster gallery.
func (h *FrontendHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	chrome, err := h.siteChrome(ctx)
	if err != nil {
		logAndInternalError(w, "loading site chrome", "error", err)
		return
	}

	collections, err := h.queries.ListActiveCollections(ctx)
	if err != nil {
		logAndInternalError(w, "listing collections", "error", err)
		return
	}
	posters, _ := h.queries.ListActivePosters(ctx)

	if err := h.renderer.Render(w, r, "public/portfolio", render.TemplateData{
		Title: "Portfolio",
		Data:  PortfolioData{Chrome: chrome, Collections: collections, Posters: posters},
	}); err != nil {
		logAndInternalError(w, "rendering portfolio", "error", err)
	}
}

// Instagram forwards to the brand's Instagram profile as configured in
// the site settings. The feed itself lives on Instagram.
func (h *FrontendHandler) Instagram(w http.ResponseWriter, r *http.Request) {
	chrome, err := h.siteChrome(r.Context())
	if err != nil {
		logAndInternalError(w, "loading site chrome", "error", err)
		return
	}

	target := chrome.Settings["instagram_url"]
	if !strings.HasPrefix(target, "https://") {
		h.NotFound(w, r)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// Contact handles the public contact form.
func (h *FrontendHandler) Contact(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, "/contact") {
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	message := strings.TrimSpace(r.FormValue("message"))
	if name == "" || message == "" {
		flashError(w, r, h.renderer, "/contact", "Name and message are required")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		flashError(w, r, h.renderer, "/contact", "A valid email address is required")
		return
	}

	if _, err := h.queries.CreateContactMessage(r.Context(), store.CreateContactMessageParams{
		Name:      name,
		Email:     email,
		Subject:   strings.TrimSpace(r.FormValue("subject")),
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		logAndInternalError(w, "saving contact message", "error", err)
		return
	}

	slog.Info("contact message received", "email", email)
	flashSuccess(w, r, h.renderer, "/contact", "Thanks for reaching out. We'll get back to you soon.")
}

// Subscribe handles the newsletter signup form. A duplicate email is
// treated as success so the form never reveals who is subscribed.
func (h *FrontendHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	redirect := r.FormValue("redirect")
	if !strings.HasPrefix(redirect, "/") || strings.HasPrefix(redirect, "//") {
		redirect = RouteRoot
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirect) {
		return
	}

	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	if _, err := mail.ParseAddress(email); err != nil {
		flashError(w, r, h.renderer, redirect, "A valid email address is required")
		return
	}

	_, err := h.queries.CreateSubscriber(r.Context(), store.CreateSubscriberParams{
		Email:     email,
		Name:      strings.TrimSpace(r.FormValue("name")),
		Token:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		if _, lookupErr := h.queries.GetSubscriberByEmail(r.Context(), email); lookupErr != nil {
			logAndInternalError(w, "creating subscriber", "error", err)
			return
		}
	} else {
		slog.Info("newsletter subscription", "email", email)
	}

	// Remember the subscriber on this client and retire the popup.
	http.SetCookie(w, &http.Cookie{
		Name:     newsletterEmailCookie,
		Value:    url.QueryEscape(email),
		Path:     "/",
		MaxAge:   int(newsletterCookieAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     newsletterPopupCookie,
		Value:    "1",
		Path:     "/",
		MaxAge:   int(newsletterCookieAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	flashSuccess(w, r, h.renderer, redirect, "You're on the list.")
}

// Unsubscribe removes a subscriber by token.
func (h *FrontendHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	removed, err := h.queries.DeleteSubscriberByToken(r.Context(), token)
	if err != nil {
		logAndInternalError(w, "unsubscribing", "error", err)
		return
	}
	if !removed {
		h.NotFound(w, r)
		return
	}
	flashAndRedirect(w, r, h.renderer, RouteRoot, "You have been unsubscribed.", "info")
}

// NotFound renders the public 404 page.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	chrome, err := h.siteChrome(r.Context())
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNotFound)
	if err := h.renderer.Render(w, r, "public/notfound", render.TemplateData{
		Title: "Not Found",
		Data:  struct{ Chrome SiteChrome }{chrome},
	}); err != nil {
		slog.Error("rendering 404 page", "error", err)
	}
}

// siteChrome loads the menu, the active header banners and the site
// settings. Settings are cached briefly; they change rarely but are read
// on every public request.
func (h *FrontendHandler) siteChrome(ctx context.Context) (SiteChrome, error) {
	chrome := SiteChrome{Settings: map[string]string{}}

	var err error
	if chrome.MenuItems, err = h.queries.ListActiveMenuItems(ctx); err != nil {
		return chrome, err
	}
	chrome.Banners, _ = h.queries.ListActiveBannersByPosition(ctx, store.ListActiveBannersByPositionParams{
		Position: model.BannerPositionHeader,
		Now:      time.Now().UTC(),
	})

	if raw, ok := h.cache.Get(ctx, settingsCacheKey); ok {
		if err := json.Unmarshal([]byte(raw), &chrome.Settings); err == nil {
			return chrome, nil
		}
	}

	entries, err := h.queries.ListConfig(ctx)
	if err != nil {
		return chrome, err
	}
	for _, entry := range entries {
		chrome.Settings[entry.Key] = entry.Value
	}
	if raw, err := json.Marshal(chrome.Settings); err == nil {
		h.cache.Set(ctx, settingsCacheKey, string(raw), settingsCacheTTL)
	}

	return chrome, nil
}

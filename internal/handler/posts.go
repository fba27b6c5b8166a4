// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/reclaimd/reclaimd-go/internal/middleware"
	"github.com/reclaimd/reclaimd-go/internal/model"
	"github.com/reclaimd/reclaimd-go/internal/render"
	"github.com/reclaimd/reclaimd-go/internal/service"
	"github.com/reclaimd/reclaimd-go/internal/store"
	"github.com/reclaimd/reclaimd-go/internal/util"
)

// PostsHandler implements the admin post editor.
type PostsHandler struct {
	queries  *store.Queries
	posts    *service.Posts
	events   *service.Events
	renderer *render.Renderer
}

// NewPostsHandler creates a new PostsHandler.
func NewPostsHandler(db *sql.DB, renderer *render.Renderer) *PostsHandler {
	queries := store.New(db)
	return &PostsHandler{
		queries:  queries,
		posts:    service.NewPosts(db, queries),
		events:   service.NewEvents(queries),
		renderer: renderer,
	}
}

// PostFormData carries everything the editor template needs.
type PostFormData struct {
	Post       store.Post
	Tags       string
	Categories []store.Category
	IsNew      bool
}

// List shows all posts to editors and the author's own posts to authors.
func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	profile, _ := middleware.ProfileFromContext(r.Context())

	var posts []store.Post
	var err error
	if model.RoleAtLeast(profile.Role, model.RoleEditor) {
		posts, err = h.queries.ListPosts(r.Context())
	} else {
		posts, err = h.queries.ListPostsByAuthor(r.Context(), profile.ID)
	}
	if err != nil {
		logAndInternalError(w, "listing posts", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/posts", render.TemplateData{
		Title: "Posts",
		Data:  posts,
	}); err != nil {
		logAndInternalError(w, "rendering posts list", "error", err)
	}
}

// New renders the empty editor form.
func (h *PostsHandler) New(w http.ResponseWriter, r *http.Request) {
	categories, err := h.queries.ListCategories(r.Context())
	if err != nil {
		logAndInternalError(w, "listing categories", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/post_form", render.TemplateData{
		Title: "New Post",
		Data:  PostFormData{Categories: categories, IsNew: true},
	}); err != nil {
		logAndInternalError(w, "rendering post form", "error", err)
	}
}

// Create handles the editor form submission for a new post.
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdminPosts+"/new") {
		return
	}
	profile, _ := middleware.ProfileFromContext(r.Context())

	input, ok := h.postInputFromForm(w, r, RouteAdminPosts+"/new")
	if !ok {
		return
	}

	post, err := h.posts.Create(r.Context(), profile.ID, input)
	if err != nil {
		h.flashWorkflowError(w, r, RouteAdminPosts+"/new", err)
		return
	}

	slog.Info("post created", "post_id", post.ID, "slug", post.Slug, "author_id", profile.ID)
	h.events.LogContent(r.Context(), "Post created: "+post.Title, profile.ID, r)
	flashSuccess(w, r, h.renderer, RouteAdminPosts, "Post created")
}

// Edit renders the editor form for an existing post.
func (h *PostsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	post, ok := h.requireEditablePost(w, r)
	if !ok {
		return
	}

	tags, err := h.queries.ListTagsForPost(r.Context(), post.ID)
	if err != nil {
		logAndInternalError(w, "listing post tags", "error", err)
		return
	}
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}

	categories, err := h.queries.ListCategories(r.Context())
	if err != nil {
		logAndInternalError(w, "listing categories", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/post_form", render.TemplateData{
		Title: "Edit Post",
		Data: PostFormData{
			Post:       post,
			Tags:       strings.Join(names, ", "),
			Categories: categories,
		},
	}); err != nil {
		logAndInternalError(w, "rendering post form", "error", err)
	}
}

// Update handles the editor form submission for an existing post.
func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	post, ok := h.requireEditablePost(w, r)
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdminPosts) {
		return
	}

	input, ok := h.postInputFromForm(w, r, RouteAdminPosts)
	if !ok {
		return
	}

	profile, _ := middleware.ProfileFromContext(r.Context())
	updated, err := h.posts.Update(r.Context(), post.ID, input)
	if err != nil {
		h.flashWorkflowError(w, r, RouteAdminPosts, err)
		return
	}

	slog.Info("post updated", "post_id", updated.ID, "slug", updated.Slug)
	h.events.LogContent(r.Context(), "Post updated: "+updated.Title, profile.ID, r)
	flashSuccess(w, r, h.renderer, RouteAdminPosts, "Post updated")
}

// Delete removes a post. Editors and above only; routed accordingly.
func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminPosts, "Invalid post ID")
		return
	}
	post, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminPosts, "post", id,
		func(id int64) (store.Post, error) { return h.queries.GetPostByID(r.Context(), id) })
	if !ok {
		return
	}

	if _, err := h.queries.DeletePost(r.Context(), post.ID); err != nil {
		logAndInternalError(w, "deleting post", "error", err, "post_id", post.ID)
		return
	}

	profile, _ := middleware.ProfileFromContext(r.Context())
	slog.Info("post deleted", "post_id", post.ID, "slug", post.Slug)
	h.events.LogContent(r.Context(), "Post deleted: "+post.Title, profile.ID, r)
	flashSuccess(w, r, h.renderer, RouteAdminPosts, "Post deleted")
}

// requireEditablePost loads the post from the {id} parameter and enforces
// that authors only touch their own posts.
func (h *PostsHandler) requireEditablePost(w http.ResponseWriter, r *http.Request) (store.Post, bool) {
	id, err := urlParamID(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminPosts, "Invalid post ID")
		return store.Post{}, false
	}

	post, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminPosts, "post", id,
		func(id int64) (store.Post, error) { return h.queries.GetPostByID(r.Context(), id) })
	if !ok {
		return store.Post{}, false
	}

	profile, _ := middleware.ProfileFromContext(r.Context())
	if !model.RoleAtLeast(profile.Role, model.RoleEditor) && post.AuthorID != profile.ID {
		slog.Warn("author attempted to edit another author's post",
			"profile_id", profile.ID, "post_id", post.ID)
		flashError(w, r, h.renderer, RouteAdminPosts, "You can only edit your own posts")
		return store.Post{}, false
	}
	return post, true
}

func (h *PostsHandler) postInputFromForm(w http.ResponseWriter, r *http.Request, errorURL string) (service.PostInput, bool) {
	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		flashError(w, r, h.renderer, errorURL, "Title is required")
		return service.PostInput{}, false
	}

	status := r.FormValue("status")
	if !model.IsValidPostStatus(status) {
		flashError(w, r, h.renderer, errorURL, "Invalid status")
		return service.PostInput{}, false
	}

	return service.PostInput{
		Title:           title,
		Slug:            strings.TrimSpace(r.FormValue("slug")),
		Content:         r.FormValue("content"),
		Excerpt:         strings.TrimSpace(r.FormValue("excerpt")),
		FeaturedImage:   strings.TrimSpace(r.FormValue("featured_image")),
		CategoryID:      util.ParseNullInt64Positive(r.FormValue("category_id")),
		Status:          status,
		MetaTitle:       strings.TrimSpace(r.FormValue("meta_title")),
		MetaDescription: strings.TrimSpace(r.FormValue("meta_description")),
		Tags:            r.FormValue("tags"),
	}, true
}

func (h *PostsHandler) flashWorkflowError(w http.ResponseWriter, r *http.Request, url string, err error) {
	switch {
	case errors.Is(err, service.ErrSlugTaken):
		flashError(w, r, h.renderer, url, "That slug is already in use")
	case errors.Is(err, service.ErrInvalidSlug):
		flashError(w, r, h.renderer, url, "Slug may only contain lowercase letters, numbers and hyphens")
	default:
		logAndInternalError(w, "post workflow error", "error", err)
	}
}

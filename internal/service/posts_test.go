package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/reclaimd/reclaimd-go/internal/store"
)

func newTestPosts(t *testing.T) (*Posts, *store.Queries, string) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		t.Fatalf("enabling foreign keys: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	queries := store.New(db)
	now := time.Now().UTC()
	author, err := queries.CreateProfile(context.Background(), store.CreateProfileParams{
		ID: "u-1", Email: "a@example.com", Role: "author", PasswordHash: "x",
		CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("creating author: %v", err)
	}

	return NewPosts(db, queries), queries, author.ID
}

func TestCreate_DerivesSlugFromTitle(t *testing.T) {
	svc, _, authorID := newTestPosts(t)

	post, err := svc.Create(context.Background(), authorID, PostInput{
		Title:  "Behind the Seams: Denim!",
		Status: "draft",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if post.Slug != "behind-the-seams-denim" {
		t.Errorf("Slug = %q, want %q", post.Slug, "behind-the-seams-denim")
	}
}

func TestCreate_KeepsSubmittedSlug(t *testing.T) {
	svc, _, authorID := newTestPosts(t)

	post, err := svc.Create(context.Background(), authorID, PostInput{
		Title:  "Some Title",
		Slug:   "custom-slug",
		Status: "draft",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if post.Slug != "custom-slug" {
		t.Errorf("Slug = %q, want %q", post.Slug, "custom-slug")
	}
}

func TestCreate_RejectsDuplicateSlug(t *testing.T) {
	svc, _, authorID := newTestPosts(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, authorID, PostInput{Title: "One", Slug: "taken", Status: "draft"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := svc.Create(ctx, authorID, PostInput{Title: "Two", Slug: "taken", Status: "draft"})
	if !errors.Is(err, ErrSlugTaken) {
		t.Errorf("err = %v, want ErrSlugTaken", err)
	}
}

func TestCreate_RejectsInvalidSlug(t *testing.T) {
	svc, _, authorID := newTestPosts(t)

	_, err := svc.Create(context.Background(), authorID, PostInput{
		Title: "X", Slug: "Not A Slug!", Status: "draft",
	})
	if !errors.Is(err, ErrInvalidSlug) {
		t.Errorf("err = %v, want ErrInvalidSlug", err)
	}
}

func TestCreate_PublishedGetsTimestamp(t *testing.T) {
	svc, _, authorID := newTestPosts(t)
	ctx := context.Background()

	draft, err := svc.Create(ctx, authorID, PostInput{Title: "Draft", Status: "draft"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if draft.PublishedAt.Valid {
		t.Error("draft got a published_at timestamp")
	}

	published, err := svc.Create(ctx, authorID, PostInput{Title: "Live", Status: "published"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !published.PublishedAt.Valid {
		t.Error("published post missing published_at")
	}
}

func TestUpdate_PublishedAtLifecycle(t *testing.T) {
	svc, _, authorID := newTestPosts(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, authorID, PostInput{Title: "Lifecycle", Status: "draft"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Publish: timestamp stamped.
	post, err = svc.Update(ctx, post.ID, PostInput{Title: "Lifecycle", Slug: post.Slug, Status: "published"})
	if err != nil {
		t.Fatalf("Update (publish): %v", err)
	}
	if !post.PublishedAt.Valid {
		t.Fatal("publish did not stamp published_at")
	}
	firstPublish := post.PublishedAt.Time

	// Edit while published: timestamp preserved.
	post, err = svc.Update(ctx, post.ID, PostInput{
		Title: "Lifecycle (edited)", Slug: post.Slug, Content: "new body", Status: "published",
	})
	if err != nil {
		t.Fatalf("Update (edit): %v", err)
	}
	if !post.PublishedAt.Time.Equal(firstPublish) {
		t.Errorf("edit changed published_at: %v -> %v", firstPublish, post.PublishedAt.Time)
	}

	// Unpublish, then republish: fresh timestamp.
	post, err = svc.Update(ctx, post.ID, PostInput{Title: "Lifecycle", Slug: post.Slug, Status: "archived"})
	if err != nil {
		t.Fatalf("Update (archive): %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	post, err = svc.Update(ctx, post.ID, PostInput{Title: "Lifecycle", Slug: post.Slug, Status: "published"})
	if err != nil {
		t.Fatalf("Update (republish): %v", err)
	}
	if !post.PublishedAt.Time.After(firstPublish) {
		t.Errorf("republish kept stale published_at %v", post.PublishedAt.Time)
	}
}

func TestUpdate_EmptySlugRederivesFromTitle(t *testing.T) {
	svc, _, authorID := newTestPosts(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, authorID, PostInput{Title: "Original", Status: "draft"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Slug submitted: kept even though the title changed.
	post, err = svc.Update(ctx, post.ID, PostInput{Title: "Renamed Entirely", Slug: "original", Status: "draft"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if post.Slug != "original" {
		t.Errorf("Slug = %q, want %q", post.Slug, "original")
	}

	// Slug cleared: derived from the current title.
	post, err = svc.Update(ctx, post.ID, PostInput{Title: "Renamed Entirely", Status: "draft"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if post.Slug != "renamed-entirely" {
		t.Errorf("Slug = %q, want %q", post.Slug, "renamed-entirely")
	}
}

func TestUpdate_ReadingTimeTracksContent(t *testing.T) {
	svc, queries, authorID := newTestPosts(t)
	ctx := context.Background()

	longContent := ""
	for i := 0; i < 450; i++ {
		longContent += "word "
	}

	post, err := svc.Create(ctx, authorID, PostInput{Title: "RT", Content: longContent, Status: "draft"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if post.ReadingTime != 3 {
		t.Errorf("ReadingTime = %d, want 3", post.ReadingTime)
	}

	post, err = svc.Update(ctx, post.ID, PostInput{
		Title: "RT", Slug: post.Slug, Content: "short now", Status: "draft",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := queries.GetPostByID(ctx, post.ID)
	if got.ReadingTime != 1 {
		t.Errorf("ReadingTime after shrink = %d, want 1", got.ReadingTime)
	}
}

func TestSetTags_ReplaceAndGetOrCreate(t *testing.T) {
	svc, queries, authorID := newTestPosts(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, authorID, PostInput{
		Title: "Tagged", Status: "draft", Tags: "Denim, Upcycle",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	tags, err := queries.ListTagsForPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("ListTagsForPost: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("got %d tags, want 2", len(tags))
	}

	// Update replaces the whole set; "denim" is reused, not duplicated.
	if _, err := svc.Update(ctx, post.ID, PostInput{
		Title: "Tagged", Slug: post.Slug, Status: "draft", Tags: "denim, Vintage",
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	tags, err = queries.ListTagsForPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("ListTagsForPost: %v", err)
	}
	slugs := make(map[string]bool)
	for _, tag := range tags {
		slugs[tag.Slug] = true
	}
	if len(tags) != 2 || !slugs["denim"] || !slugs["vintage"] {
		t.Errorf("tags after replace = %+v, want denim+vintage", tags)
	}

	all, err := queries.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d tags total, want 3 (denim, upcycle, vintage)", len(all))
	}
}

func TestSetTags_DuplicateSpellingsCollapse(t *testing.T) {
	svc, queries, authorID := newTestPosts(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, authorID, PostInput{
		Title: "Dup", Status: "draft", Tags: "Denim, denim, DENIM",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	tags, err := queries.ListTagsForPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("ListTagsForPost: %v", err)
	}
	if len(tags) != 1 {
		t.Fatalf("got %d tags, want 1", len(tags))
	}
	if tags[0].Name != "Denim" {
		t.Errorf("kept spelling %q, want first spelling %q", tags[0].Name, "Denim")
	}
}

func TestRecordView(t *testing.T) {
	svc, queries, authorID := newTestPosts(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, authorID, PostInput{Title: "Viewed", Status: "published"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	svc.RecordView(post.ID)

	// The write is asynchronous; poll briefly.
	deadline := time.Now().Add(2 * time.Second)
	for {
		got, err := queries.GetPostByID(ctx, post.ID)
		if err != nil {
			t.Fatalf("GetPostByID: %v", err)
		}
		if got.ViewCount == 1 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("ViewCount = %d, want 1", got.ViewCount)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func newTestQueries(t *testing.T) *Queries {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		t.Fatalf("enabling foreign keys: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	return New(db)
}

func createTestProfile(t *testing.T, q *Queries, id, email, role string) Profile {
	t.Helper()
	now := time.Now().UTC()
	p, err := q.CreateProfile(context.Background(), CreateProfileParams{
		ID:           id,
		Email:        email,
		FullName:     "Test User",
		Role:         role,
		PasswordHash: "$argon2id$test",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("creating test profile: %v", err)
	}
	return p
}

func TestProfileCRUD(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()

	created := createTestProfile(t, q, "u-1", "kay@example.com", "author")

	got, err := q.GetProfileByEmail(ctx, "kay@example.com")
	if err != nil {
		t.Fatalf("GetProfileByEmail: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("ID = %q, want %q", got.ID, created.ID)
	}
	if got.Role != "author" {
		t.Errorf("Role = %q, want %q", got.Role, "author")
	}

	if err := q.UpdateProfile(ctx, UpdateProfileParams{
		Email:     "kay@example.com",
		FullName:  "Kay Reworked",
		Role:      "editor",
		UpdatedAt: time.Now().UTC(),
		ID:        created.ID,
	}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	got, err = q.GetProfileByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetProfileByID: %v", err)
	}
	if got.FullName != "Kay Reworked" || got.Role != "editor" {
		t.Errorf("update not applied: %+v", got)
	}

	deleted, err := q.DeleteProfile(ctx, created.ID)
	if err != nil {
		t.Fatalf("DeleteProfile: %v", err)
	}
	if !deleted {
		t.Error("DeleteProfile = false for existing profile")
	}
	if _, err := q.GetProfileByID(ctx, created.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("after delete, err = %v, want sql.ErrNoRows", err)
	}
}

func TestProfileEmailUnique(t *testing.T) {
	q := newTestQueries(t)
	createTestProfile(t, q, "u-1", "dup@example.com", "author")

	now := time.Now().UTC()
	_, err := q.CreateProfile(context.Background(), CreateProfileParams{
		ID:           "u-2",
		Email:        "dup@example.com",
		PasswordHash: "x",
		Role:         "author",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err == nil {
		t.Fatal("duplicate email accepted")
	}
}

func TestPostSlugExists(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()
	author := createTestProfile(t, q, "u-1", "a@example.com", "author")

	now := time.Now().UTC()
	post, err := q.CreatePost(ctx, CreatePostParams{
		Title:     "First Drop",
		Slug:      "first-drop",
		AuthorID:  author.ID,
		Status:    "draft",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	exists, err := q.PostSlugExists(ctx, PostSlugExistsParams{Slug: "first-drop"})
	if err != nil {
		t.Fatalf("PostSlugExists: %v", err)
	}
	if !exists {
		t.Error("slug reported free although taken")
	}

	// The owning post itself does not count as a conflict.
	exists, err = q.PostSlugExists(ctx, PostSlugExistsParams{Slug: "first-drop", ExcludeID: post.ID})
	if err != nil {
		t.Fatalf("PostSlugExists: %v", err)
	}
	if exists {
		t.Error("slug reported taken for its own post")
	}
}

func TestIncrementPostViewCount(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()
	author := createTestProfile(t, q, "u-1", "a@example.com", "author")

	now := time.Now().UTC()
	post, err := q.CreatePost(ctx, CreatePostParams{
		Title:     "Counted",
		Slug:      "counted",
		AuthorID:  author.ID,
		Status:    "published",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := q.IncrementPostViewCount(ctx, post.ID); err != nil {
			t.Fatalf("IncrementPostViewCount: %v", err)
		}
	}

	got, err := q.GetPostByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetPostByID: %v", err)
	}
	if got.ViewCount != 3 {
		t.Errorf("ViewCount = %d, want 3", got.ViewCount)
	}
}

func TestPostTagsReplace(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()
	author := createTestProfile(t, q, "u-1", "a@example.com", "author")

	now := time.Now().UTC()
	post, err := q.CreatePost(ctx, CreatePostParams{
		Title: "Tagged", Slug: "tagged", AuthorID: author.ID, Status: "draft",
		CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	denim, err := q.CreateTag(ctx, CreateTagParams{Name: "Denim", Slug: "denim", CreatedAt: now})
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	upcycle, err := q.CreateTag(ctx, CreateTagParams{Name: "Upcycle", Slug: "upcycle", CreatedAt: now})
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	for _, tag := range []Tag{denim, upcycle} {
		if err := q.AddPostTag(ctx, AddPostTagParams{PostID: post.ID, TagID: tag.ID}); err != nil {
			t.Fatalf("AddPostTag: %v", err)
		}
	}

	tags, err := q.ListTagsForPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("ListTagsForPost: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("got %d tags, want 2", len(tags))
	}

	// Replace: clear and attach a single tag.
	if err := q.DeletePostTags(ctx, post.ID); err != nil {
		t.Fatalf("DeletePostTags: %v", err)
	}
	if err := q.AddPostTag(ctx, AddPostTagParams{PostID: post.ID, TagID: denim.ID}); err != nil {
		t.Fatalf("AddPostTag: %v", err)
	}

	tags, err = q.ListTagsForPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("ListTagsForPost: %v", err)
	}
	if len(tags) != 1 || tags[0].Slug != "denim" {
		t.Errorf("tags after replace = %+v, want only denim", tags)
	}
}

func TestDeletePostCascadesTags(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()
	author := createTestProfile(t, q, "u-1", "a@example.com", "author")

	now := time.Now().UTC()
	post, _ := q.CreatePost(ctx, CreatePostParams{
		Title: "Doomed", Slug: "doomed", AuthorID: author.ID, Status: "draft",
		CreatedAt: now, UpdatedAt: now,
	})
	tag, _ := q.CreateTag(ctx, CreateTagParams{Name: "T", Slug: "t", CreatedAt: now})
	if err := q.AddPostTag(ctx, AddPostTagParams{PostID: post.ID, TagID: tag.ID}); err != nil {
		t.Fatalf("AddPostTag: %v", err)
	}

	if deleted, err := q.DeletePost(ctx, post.ID); err != nil || !deleted {
		t.Fatalf("DeletePost = (%v, %v), want (true, nil)", deleted, err)
	}

	// Tag itself survives, the link row does not.
	if _, err := q.GetTagBySlug(ctx, "t"); err != nil {
		t.Errorf("tag removed by post delete: %v", err)
	}
	tags, err := q.ListTagsForPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("ListTagsForPost: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("post_tags rows survived post delete: %+v", tags)
	}
}

func TestDeleteMissingIDReturnsFalse(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()
	author := createTestProfile(t, q, "u-1", "a@example.com", "author")

	now := time.Now().UTC()
	post, err := q.CreatePost(ctx, CreatePostParams{
		Title: "Survivor", Slug: "survivor", AuthorID: author.ID, Status: "draft",
		CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	deleted, err := q.DeletePost(ctx, post.ID+999)
	if err != nil {
		t.Fatalf("DeletePost on missing id: %v", err)
	}
	if deleted {
		t.Error("DeletePost = true for missing id, want false")
	}

	// The existing post is untouched.
	if _, err := q.GetPostByID(ctx, post.ID); err != nil {
		t.Errorf("existing post gone after missing-id delete: %v", err)
	}

	if deleted, err := q.DeletePage(ctx, 12345); err != nil || deleted {
		t.Errorf("DeletePage missing id = (%v, %v), want (false, nil)", deleted, err)
	}
	if deleted, err := q.DeleteProfile(ctx, "no-such-id"); err != nil || deleted {
		t.Errorf("DeleteProfile missing id = (%v, %v), want (false, nil)", deleted, err)
	}
}

func TestDeactivateExpiredBanners(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()
	now := time.Now().UTC()

	expired, err := q.CreateBanner(ctx, CreateBannerParams{
		Title: "Old sale", Position: "header", IsActive: true,
		EndDate:   sql.NullTime{Time: now.Add(-time.Hour), Valid: true},
		CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateBanner: %v", err)
	}
	current, err := q.CreateBanner(ctx, CreateBannerParams{
		Title: "Current drop", Position: "header", IsActive: true,
		EndDate:   sql.NullTime{Time: now.Add(time.Hour), Valid: true},
		CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateBanner: %v", err)
	}

	n, err := q.DeactivateExpiredBanners(ctx, now)
	if err != nil {
		t.Fatalf("DeactivateExpiredBanners: %v", err)
	}
	if n != 1 {
		t.Errorf("deactivated %d banners, want 1", n)
	}

	got, _ := q.GetBannerByID(ctx, expired.ID)
	if got.IsActive {
		t.Error("expired banner still active")
	}
	got, _ = q.GetBannerByID(ctx, current.ID)
	if !got.IsActive {
		t.Error("current banner was deactivated")
	}
}

func TestActiveBannerWindow(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := q.CreateBanner(ctx, CreateBannerParams{
		Title: "Scheduled", Position: "header", IsActive: true,
		StartDate: sql.NullTime{Time: now.Add(time.Hour), Valid: true},
		CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateBanner: %v", err)
	}
	_, err = q.CreateBanner(ctx, CreateBannerParams{
		Title: "Live", Position: "header", IsActive: true,
		CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateBanner: %v", err)
	}

	banners, err := q.ListActiveBannersByPosition(ctx, ListActiveBannersByPositionParams{
		Position: "header", Now: now,
	})
	if err != nil {
		t.Fatalf("ListActiveBannersByPosition: %v", err)
	}
	if len(banners) != 1 || banners[0].Title != "Live" {
		t.Errorf("active banners = %+v, want only the live one", banners)
	}
}

func TestConfigUpsert(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if err := q.UpsertConfig(ctx, UpsertConfigParams{Key: "site_title", Value: "RE_CLAIM.D", UpdatedAt: now}); err != nil {
		t.Fatalf("UpsertConfig: %v", err)
	}
	if err := q.UpsertConfig(ctx, UpsertConfigParams{Key: "site_title", Value: "RECLAIMED", UpdatedAt: now}); err != nil {
		t.Fatalf("UpsertConfig (update): %v", err)
	}

	got, err := q.GetConfig(ctx, "site_title")
	if err != nil {
		t.Fatalf("GetConfig: %v", err)
	}
	if got.Value != "RECLAIMED" {
		t.Errorf("Value = %q, want %q", got.Value, "RECLAIMED")
	}

	entries, err := q.ListConfig(ctx)
	if err != nil {
		t.Fatalf("ListConfig: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d config entries, want 1", len(entries))
	}
}

func TestSubscriberUnsubscribeByToken(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := q.CreateSubscriber(ctx, CreateSubscriberParams{
		Email: "fan@example.com", Token: "tok-123", CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateSubscriber: %v", err)
	}

	ok, err := q.DeleteSubscriberByToken(ctx, "wrong-token")
	if err != nil {
		t.Fatalf("DeleteSubscriberByToken: %v", err)
	}
	if ok {
		t.Error("delete reported success for unknown token")
	}

	ok, err = q.DeleteSubscriberByToken(ctx, "tok-123")
	if err != nil {
		t.Fatalf("DeleteSubscriberByToken: %v", err)
	}
	if !ok {
		t.Error("delete reported failure for known token")
	}
}

func TestSeedDemoContentIdempotent(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()

	if _, err := EnsureAdmin(ctx, q, "admin@example.com"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	if err := SeedDemoContent(ctx, q); err != nil {
		t.Fatalf("SeedDemoContent: %v", err)
	}
	if err := SeedDemoContent(ctx, q); err != nil {
		t.Fatalf("SeedDemoContent (second run): %v", err)
	}

	items, err := q.ListMenuItems(ctx)
	if err != nil {
		t.Fatalf("ListMenuItems: %v", err)
	}
	if len(items) != 6 {
		t.Errorf("got %d menu items after double seed, want 6", len(items))
	}
}

func TestEnsureAdminOnlyOnce(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()

	pw, err := EnsureAdmin(ctx, q, "admin@example.com")
	if err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	if pw == "" {
		t.Fatal("no password generated on first run")
	}

	pw, err = EnsureAdmin(ctx, q, "admin@example.com")
	if err != nil {
		t.Fatalf("EnsureAdmin (second run): %v", err)
	}
	if pw != "" {
		t.Error("second run created another admin")
	}
}

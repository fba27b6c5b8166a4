package scheduler

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/reclaimd/reclaimd-go/internal/store"
)

func newTestQueries(t *testing.T) *store.Queries {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := store.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return store.New(db)
}

func TestNewRegistersJobs(t *testing.T) {
	s, err := New(newTestQueries(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := len(s.cron.Entries()); got != 2 {
		t.Errorf("registered %d jobs, want 2", got)
	}
}

func TestSweepBanners(t *testing.T) {
	q := newTestQueries(t)
	s, err := New(q)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := context.Background()
	now := time.Now().UTC()
	expired, err := q.CreateBanner(ctx, store.CreateBannerParams{
		Title: "Past", Position: "header", IsActive: true,
		EndDate:   sql.NullTime{Time: now.Add(-time.Hour), Valid: true},
		CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateBanner: %v", err)
	}

	s.sweepBanners()

	got, err := q.GetBannerByID(ctx, expired.ID)
	if err != nil {
		t.Fatalf("GetBannerByID: %v", err)
	}
	if got.IsActive {
		t.Error("expired banner still active after sweep")
	}
}

func TestPruneEvents(t *testing.T) {
	q := newTestQueries(t)
	s, err := New(q)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := context.Background()
	old := time.Now().UTC().Add(-EventRetention - time.Hour)
	recent := time.Now().UTC()

	for _, ts := range []time.Time{old, recent} {
		if err := q.CreateEvent(ctx, store.CreateEventParams{
			Level: "info", Category: "system", Message: "m", CreatedAt: ts,
		}); err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
	}

	s.pruneEvents()

	events, err := q.ListRecentEvents(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("got %d events after prune, want 1", len(events))
	}
}

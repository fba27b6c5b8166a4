package cache

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemory(100)
	ctx := context.Background()

	c.Set(ctx, "k", "v", time.Minute)
	got, ok := c.Get(ctx, "k")
	if !ok || got != "v" {
		t.Errorf("Get = (%q, %v), want (%q, true)", got, ok, "v")
	}

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Error("Get returned a value for a missing key")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemory(100)
	ctx := context.Background()

	c.Set(ctx, "k", "v", time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("expired entry still returned")
	}
}

func TestMemoryCacheZeroTTLUsesDefault(t *testing.T) {
	ctx := context.Background()
	c := New(ctx, Options{MaxEntries: 10, DefaultTTL: time.Hour}).(*MemoryCache)

	c.Set(ctx, "k", "v", 0)
	if got, ok := c.Get(ctx, "k"); !ok || got != "v" {
		t.Fatalf("Get = (%q, %v), want (%q, true)", got, ok, "v")
	}

	c.mu.RLock()
	expires := c.entries["k"].expiresAt
	c.mu.RUnlock()
	if until := time.Until(expires); until < 50*time.Minute {
		t.Errorf("entry expires in %v, want about an hour", until)
	}
}

func TestMemoryCacheDeleteAndFlush(t *testing.T) {
	c := NewMemory(100)
	ctx := context.Background()

	c.Set(ctx, "a", "1", time.Minute)
	c.Set(ctx, "b", "2", time.Minute)

	c.Delete(ctx, "a")
	if _, ok := c.Get(ctx, "a"); ok {
		t.Error("deleted entry still present")
	}

	c.Flush(ctx)
	if _, ok := c.Get(ctx, "b"); ok {
		t.Error("flushed entry still present")
	}
}

func TestMemoryCacheEviction(t *testing.T) {
	c := NewMemory(10)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		c.Set(ctx, fmt.Sprintf("k%d", i), "v", time.Minute)
	}

	c.mu.RLock()
	n := len(c.entries)
	c.mu.RUnlock()
	if n > 10 {
		t.Errorf("cache holds %d entries, cap is 10", n)
	}
}

func TestNewFallsBackWithoutRedis(t *testing.T) {
	c := New(context.Background(), Options{MaxEntries: 10})
	if _, ok := c.(*MemoryCache); !ok {
		t.Errorf("New without Redis URL returned %T, want *MemoryCache", c)
	}
}

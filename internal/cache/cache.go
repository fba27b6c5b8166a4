// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides a small string cache used for rendered fragments
// and expensive query results. It runs in-memory by default and switches
// to Redis when a Redis URL is configured, so multiple instances can
// share one cache.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the interface shared by the memory and Redis backends.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Flush(ctx context.Context)
}

// Options configures cache construction.
type Options struct {
	RedisURL   string
	Prefix     string
	DefaultTTL time.Duration
	MaxEntries int
}

const fallbackTTL = 5 * time.Minute

// New returns a Redis-backed cache when a URL is configured and reachable,
// falling back to the in-memory cache otherwise. Options.DefaultTTL is
// applied whenever a Set call passes a non-positive TTL.
func New(ctx context.Context, opts Options) Cache {
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = fallbackTTL
	}

	memory := func() *MemoryCache {
		m := NewMemory(opts.MaxEntries)
		m.defaultTTL = opts.DefaultTTL
		return m
	}

	if opts.RedisURL == "" {
		return memory()
	}

	redisOpts, err := redis.ParseURL(opts.RedisURL)
	if err != nil {
		slog.Warn("invalid Redis URL, using in-memory cache", "error", err)
		return memory()
	}

	client := redis.NewClient(redisOpts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		slog.Warn("Redis unreachable, using in-memory cache", "error", err)
		return memory()
	}

	slog.Info("using Redis cache", "prefix", opts.Prefix)
	return &redisCache{client: client, prefix: opts.Prefix, defaultTTL: opts.DefaultTTL}
}

type redisCache struct {
	client     *redis.Client
	prefix     string
	defaultTTL time.Duration
}

func (c *redisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, c.prefix+key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		slog.Warn("cache set failed", "key", key, "error", err)
	}
}

func (c *redisCache) Delete(ctx context.Context, key string) {
	c.client.Del(ctx, c.prefix+key)
}

func (c *redisCache) Flush(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is a mutex-guarded map cache with TTL and a soft entry cap.
type MemoryCache struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	maxEntries int
	defaultTTL time.Duration
}

// NewMemory creates an in-memory cache holding at most maxEntries items.
func NewMemory(maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = 10000
	}
	return &MemoryCache{
		entries:    make(map[string]memoryEntry),
		maxEntries: maxEntries,
		defaultTTL: fallbackTTL,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return "", false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", false
	}
	return entry.value, true
}

func (c *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		c.evictExpiredLocked()
		// Still full: drop arbitrary entries to make room.
		for k := range c.entries {
			if len(c.entries) < c.maxEntries {
				break
			}
			delete(c.entries, k)
		}
	}
	c.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
}

func (c *MemoryCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *MemoryCache) Flush(_ context.Context) {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
}

func (c *MemoryCache) evictExpiredLocked() {
	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

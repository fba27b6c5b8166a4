// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic maintenance jobs: expiring banners
// past their end date and pruning old audit events.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/reclaimd/reclaimd-go/internal/store"
)

// EventRetention is how long audit events are kept before pruning.
const EventRetention = 90 * 24 * time.Hour

// Scheduler owns the cron runner and its jobs.
type Scheduler struct {
	cron    *cron.Cron
	queries *store.Queries
}

// New creates a scheduler with the standard jobs registered.
func New(queries *store.Queries) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(),
		queries: queries,
	}

	// Every 5 minutes: deactivate banners whose window closed.
	if _, err := s.cron.AddFunc("*/5 * * * *", s.sweepBanners); err != nil {
		return nil, err
	}
	// Daily at 03:30: prune old audit events.
	if _, err := s.cron.AddFunc("30 3 * * *", s.pruneEvents); err != nil {
		return nil, err
	}

	return s, nil
}

// Start launches the cron runner in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop halts the runner and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("scheduler stopped")
}

func (s *Scheduler) sweepBanners() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.queries.DeactivateExpiredBanners(ctx, time.Now().UTC())
	if err != nil {
		slog.Error("deactivating expired banners", "error", err)
		return
	}
	if n > 0 {
		slog.Info("deactivated expired banners", "count", n)
	}
}

func (s *Scheduler) pruneEvents() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().UTC().Add(-EventRetention)
	n, err := s.queries.DeleteEventsBefore(ctx, cutoff)
	if err != nil {
		slog.Error("pruning events", "error", err)
		return
	}
	if n > 0 {
		slog.Info("pruned old events", "count", n, "cutoff", cutoff)
	}
}

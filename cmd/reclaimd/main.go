// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/reclaimd/reclaimd-go/internal/cache"
	"github.com/reclaimd/reclaimd-go/internal/config"
	"github.com/reclaimd/reclaimd-go/internal/handler"
	"github.com/reclaimd/reclaimd-go/internal/logging"
	"github.com/reclaimd/reclaimd-go/internal/middleware"
	"github.com/reclaimd/reclaimd-go/internal/model"
	"github.com/reclaimd/reclaimd-go/internal/render"
	"github.com/reclaimd/reclaimd-go/internal/scheduler"
	"github.com/reclaimd/reclaimd-go/internal/session"
	"github.com/reclaimd/reclaimd-go/internal/store"
	"github.com/reclaimd/reclaimd-go/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "reclaimd - RE_CLAIM.D brand site and CMS\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  RECLAIMD_SESSION_SECRET   Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  RECLAIMD_DB_PATH          SQLite database path (default: ./data/reclaimd.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  RECLAIMD_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  RECLAIMD_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  RECLAIMD_REDIS_URL        Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  RECLAIMD_DO_SEED          Seed demo content on startup (default: false)\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("reclaimd %s (commit: %s)\n", appVersion, appGitCommit)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	queries := store.New(db)

	// Upgrade logger to also mirror WARN and ERROR records into the events table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(logging.NewEventLogHandler(textHandler, queries)))
	slog.Info("event log integration enabled", "min_level", "warn")

	ctx := context.Background()

	// Bootstrap the first admin account
	if password, err := store.EnsureAdmin(ctx, queries, cfg.AdminEmail); err != nil {
		return fmt.Errorf("ensuring admin account: %w", err)
	} else if password != "" {
		slog.Info("admin account created; change this password after first login",
			"email", cfg.AdminEmail, "password", password)
	}

	if cfg.DoSeed {
		if err := store.SeedDemoContent(ctx, queries); err != nil {
			return fmt.Errorf("seeding demo content: %w", err)
		}
		slog.Info("demo content seeded")
	}

	sessionManager := session.NewManager(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	siteCache := cache.New(ctx, cache.Options{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
		MaxEntries: cfg.CacheMaxSize,
	})
	if cfg.UseRedisCache() {
		slog.Info("cache initialized", "backend", "redis", "url", cfg.RedisURL)
	} else {
		slog.Info("cache initialized", "backend", "memory")
	}

	renderer, err := render.New(render.Config{
		TemplatesFS:    web.TemplatesFS(),
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	sched, err := scheduler.New(queries)
	if err != nil {
		return fmt.Errorf("initializing scheduler: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	// Middleware
	authmw := middleware.NewAuth(queries, sessionManager, renderer)
	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig(
		[]byte(cfg.SessionSecret), cfg.ServerAddr(), cfg.IsDevelopment()))
	loginProtection := middleware.NewLoginProtection(2*time.Second, 5)
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	// Handlers
	authHandler := handler.NewAuthHandler(db, renderer, sessionManager, cfg.DefaultRole)
	adminHandler := handler.NewAdminHandler(db, renderer)
	postsHandler := handler.NewPostsHandler(db, renderer)
	pagesHandler := handler.NewPagesHandler(db, renderer)
	taxonomyHandler := handler.NewTaxonomyHandler(db, renderer)
	bannersHandler := handler.NewBannersHandler(db, renderer)
	menusHandler := handler.NewMenusHandler(db, renderer)
	collectionsHandler := handler.NewCollectionsHandler(db, renderer)
	postersHandler := handler.NewPostersHandler(db, renderer)
	usersHandler := handler.NewUsersHandler(db, renderer)
	settingsHandler := handler.NewSettingsHandler(db, renderer)
	audienceHandler := handler.NewAudienceHandler(db, renderer)
	frontendHandler := handler.NewFrontendHandler(db, renderer, siteCache)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(sessionManager.LoadAndSave)
	r.Use(authmw.LoadProfile)

	// Public frontend routes
	r.Group(func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Get(handler.RouteRoot, frontendHandler.Home)
		r.Get(handler.RouteBlog, frontendHandler.Blog)
		r.Get(handler.RouteBlog+"/{slug}", frontendHandler.Post)
		r.Get("/portfolio", frontendHandler.Portfolio)
		r.Get("/instagram", frontendHandler.Instagram)
		r.Post("/contact", frontendHandler.Contact)
		r.Post("/newsletter", frontendHandler.Subscribe)
		r.Get("/newsletter/unsubscribe/{token}", frontendHandler.Unsubscribe)
		r.Get("/{slug}", frontendHandler.Page)
	})

	// Auth routes
	r.Group(func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.With(loginProtection.Limit).Post(handler.RouteLogin, authHandler.Login)
		r.Get("/auth/signup", authHandler.SignupForm)
		r.With(loginProtection.Limit).Post("/auth/signup", authHandler.Signup)
		r.Post("/auth/logout", authHandler.Logout)
	})

	// Admin routes
	r.Route(handler.RouteAdmin, func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Use(authmw.RequireAuth)

		// Author level: dashboard and posts
		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireRole(model.RoleAuthor))
			r.Get("/", adminHandler.Dashboard)
			r.Get("/posts", postsHandler.List)
			r.Get("/posts/new", postsHandler.New)
			r.Post("/posts", postsHandler.Create)
			r.Get("/posts/{id}/edit", postsHandler.Edit)
			r.Post("/posts/{id}", postsHandler.Update)
		})

		// Editor level: everything that shapes the public site
		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireRole(model.RoleEditor))
			r.Post("/posts/{id}/delete", postsHandler.Delete)

			r.Get("/pages", pagesHandler.List)
			r.Get("/pages/new", pagesHandler.New)
			r.Post("/pages", pagesHandler.Create)
			r.Get("/pages/{id}/edit", pagesHandler.Edit)
			r.Post("/pages/{id}", pagesHandler.Update)
			r.Post("/pages/{id}/delete", pagesHandler.Delete)

			r.Get("/categories", taxonomyHandler.List)
			r.Post("/categories", taxonomyHandler.Create)
			r.Post("/categories/{id}", taxonomyHandler.Update)
			r.Post("/categories/{id}/delete", taxonomyHandler.Delete)

			r.Get("/banners", bannersHandler.List)
			r.Get("/banners/new", bannersHandler.New)
			r.Post("/banners", bannersHandler.Create)
			r.Get("/banners/{id}/edit", bannersHandler.Edit)
			r.Post("/banners/{id}", bannersHandler.Update)
			r.Post("/banners/{id}/delete", bannersHandler.Delete)

			r.Get("/menus", menusHandler.List)
			r.Post("/menus", menusHandler.Create)
			r.Post("/menus/{id}", menusHandler.Update)
			r.Post("/menus/{id}/delete", menusHandler.Delete)

			r.Get("/collections", collectionsHandler.List)
			r.Post("/collections", collectionsHandler.Create)
			r.Get("/collections/{id}/edit", collectionsHandler.Edit)
			r.Post("/collections/{id}", collectionsHandler.Update)
			r.Post("/collections/{id}/delete", collectionsHandler.Delete)
			r.Post("/collections/{id}/items", collectionsHandler.AddItem)
			r.Post("/collections/{id}/items/delete", collectionsHandler.DeleteItem)

			r.Get("/posters", postersHandler.List)
			r.Post("/posters", postersHandler.Create)
			r.Post("/posters/{id}", postersHandler.Update)
			r.Post("/posters/{id}/delete", postersHandler.Delete)

			r.Get("/subscribers", audienceHandler.Subscribers)
			r.Get("/messages", audienceHandler.Messages)
			r.Post("/messages/{id}/delete", audienceHandler.DeleteMessage)
		})

		// Admin level: users, settings and the event log
		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireRole(model.RoleAdmin))
			r.Get("/users", usersHandler.List)
			r.Post("/users", usersHandler.Create)
			r.Post("/users/{id}", usersHandler.Update)
			r.Post("/users/{id}/delete", usersHandler.Delete)
			r.Get("/settings", settingsHandler.Show)
			r.Post("/settings", settingsHandler.Update)
			r.Get("/events", adminHandler.Events)
		})
	})

	// Static assets
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.StaticFS()))))

	r.NotFound(frontendHandler.NotFound)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

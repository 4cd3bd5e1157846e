// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the QuillPress API server.
// It loads configuration, opens the configured store, sets up routing, and
// starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"quillpress/internal/auth"
	"quillpress/internal/config"
	"quillpress/internal/content"
	"quillpress/internal/database"
	"quillpress/internal/handlers"
	"quillpress/internal/metrics"
	"quillpress/internal/models"
	"quillpress/internal/router"
	"quillpress/internal/store"
	"quillpress/internal/store/memstore"
)

// repositories bundles the store implementations selected by STORE_DRIVER.
type repositories struct {
	users      auth.UserRepository
	posts      content.PostRepository
	categories content.CategoryRepository
	health     handlers.Pinger
	close      func() error
}

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON everywhere else.
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var logHandler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.IsDev() {
		logHandler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(logHandler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"store", cfg.StoreDriver,
	)

	repos, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer repos.close()

	// Metrics live in a dedicated registry together with the runtime
	// collectors.
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	tokens, err := auth.NewTokenIssuer(auth.TokenConfig{
		Secret: []byte(cfg.JWTSecret),
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.TokenTTL,
	})
	if err != nil {
		slog.Error("failed to create token issuer", "error", err)
		os.Exit(1)
	}

	authSvc := auth.NewService(repos.users, tokens, auth.WithRecorder(collector))
	contentSvc := content.NewService(repos.posts, repos.categories,
		content.WithRecorder(collector),
		content.WithPageSize(cfg.PageSize, cfg.MaxPageSize),
	)

	r := router.New(router.Deps{
		Verifier:   authSvc,
		Observer:   collector,
		Metrics:    metrics.Handler(registry),
		Health:     handlers.NewHealth(repos.health),
		Users:      handlers.NewUsers(authSvc),
		Posts:      handlers.NewPosts(contentSvc),
		Categories: handlers.NewCategories(contentSvc),
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// openStore connects the backend named by cfg.StoreDriver. PostgreSQL is
// migrated on startup and seeded in development; the in-memory store is
// always seeded.
func openStore(cfg *config.Config) (*repositories, error) {
	if cfg.StoreDriver == config.DriverMemory {
		mem := memstore.New()
		if err := seedMemory(mem.Categories()); err != nil {
			return nil, err
		}
		slog.Warn("using in-memory store, data is lost on restart")
		return &repositories{
			users:      mem.Users(),
			posts:      mem.Posts(),
			categories: mem.Categories(),
			close:      func() error { return nil },
		}, nil
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			db.Close()
			return nil, err
		}
	}

	return &repositories{
		users:      store.NewUserStore(db),
		posts:      store.NewPostStore(db),
		categories: store.NewCategoryStore(db),
		health:     db,
		close:      db.Close,
	}, nil
}

// seedMemory creates the default categories in an empty in-memory store.
func seedMemory(categories *memstore.CategoryStore) error {
	ctx := context.Background()
	for _, c := range database.DefaultCategories {
		if _, err := categories.Create(ctx, &models.Category{Name: c.Name, Description: c.Description}); err != nil {
			return err
		}
	}
	slog.Info("memory store seeded with default categories", "count", len(database.DefaultCategories))
	return nil
}

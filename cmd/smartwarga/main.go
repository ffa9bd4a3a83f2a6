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
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/smartwarga/smartwarga-go/internal/assistant"
	"github.com/smartwarga/smartwarga-go/internal/cache"
	"github.com/smartwarga/smartwarga-go/internal/config"
	"github.com/smartwarga/smartwarga-go/internal/handler"
	"github.com/smartwarga/smartwarga-go/internal/i18n"
	"github.com/smartwarga/smartwarga-go/internal/imaging"
	"github.com/smartwarga/smartwarga-go/internal/logging"
	"github.com/smartwarga/smartwarga-go/internal/middleware"
	"github.com/smartwarga/smartwarga-go/internal/scheduler"
	"github.com/smartwarga/smartwarga-go/internal/service"
	"github.com/smartwarga/smartwarga-go/internal/store"
	"github.com/smartwarga/smartwarga-go/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// disabledChat serves when no API key is configured; every completion fails
// so the assistant answers with the localized fallback message.
type disabledChat struct{}

func (disabledChat) Complete(context.Context, string, string) (string, error) {
	return "", errors.New("assistant disabled: no API key configured")
}

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "SmartWarga - neighborhood administration service\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SMARTWARGA_DB_PATH               SQLite database path (default: ./data/smartwarga.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SMARTWARGA_SERVER_PORT           Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SMARTWARGA_ENV                   Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SMARTWARGA_UPLOADS_DIR           Upload directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SMARTWARGA_OPENAI_API_KEY        API key for the AI assistant (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SMARTWARGA_SEARCH_URL            SearXNG instance for web search (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SMARTWARGA_REDIS_URL             Redis URL for the config cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SMARTWARGA_AUDIT_RETENTION_DAYS  Audit log retention (default: 180)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Printf("smartwarga %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
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

	versionInfo := &version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
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

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}

	for _, dir := range []string{filepath.Dir(cfg.DBPath), cfg.UploadsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
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

	// Upgrade the logger so WARN and ERROR records are mirrored into the
	// audit log as SYSTEM entries.
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewAuditLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx := context.Background()
	if err := store.EnsureBaseline(ctx, store.New(db)); err != nil {
		return fmt.Errorf("seeding baseline data: %w", err)
	}
	slog.Info("database ready")

	configCache, err := cache.New(cfg.RedisURL)
	if err != nil {
		slog.Warn("cache backend unavailable, using in-process cache", "error", err)
		configCache = cache.NewMemoryCache(cache.DefaultTTL)
	}
	defer func() { _ = configCache.Close() }()
	if cfg.UseRedisCache() {
		slog.Info("config cache initialized", "backend", "redis")
	} else {
		slog.Info("config cache initialized", "backend", "memory")
	}

	auditSvc := service.NewAuditService(db, logger)
	adminSvc := service.NewAdminService(db, auditSvc, logger)
	residentSvc := service.NewResidentService(db, auditSvc)
	requestSvc := service.NewRequestService(db, auditSvc)
	configSvc := service.NewConfigService(db, configCache, auditSvc, logger)

	var chat assistant.ChatClient = disabledChat{}
	if cfg.AssistantEnabled() {
		chat = assistant.NewOpenAIChat(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
		slog.Info("assistant enabled", "model", cfg.OpenAIModel)
	} else {
		slog.Warn("assistant disabled: SMARTWARGA_OPENAI_API_KEY not set")
	}
	var search assistant.SearchProvider
	if cfg.SearchURL != "" {
		search = assistant.NewSearxSearch(cfg.SearchURL)
		slog.Info("assistant web search enabled", "url", cfg.SearchURL)
	}
	assistantSvc := assistant.NewService(chat, search, configSvc, logger)

	sched := scheduler.New(auditSvc, cfg.AuditRetention(), logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	apiHandler := handler.New(handler.Deps{
		DB:        db,
		Admins:    adminSvc,
		Residents: residentSvc,
		Requests:  requestSvc,
		Config:    configSvc,
		Audit:     auditSvc,
		Assistant: assistantSvc,
		Logins:    middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig()),
		Logos:     imaging.NewLogoProcessor(cfg.UploadsDir),
		Log:       logger,
	})
	healthHandler := handler.NewHealthHandler(db, versionInfo)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.CORSOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.Compress())
	r.Use(middleware.NewGlobalRateLimiter(100, 200).Middleware())

	r.Mount("/api", apiHandler.Routes())

	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	uploadsFS := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
	r.Get("/uploads/*", uploadsFS.ServeHTTP)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
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

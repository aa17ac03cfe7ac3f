package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"certpdf/internal/certificate"
	"certpdf/internal/config"
	"certpdf/internal/http/handlers"
	"certpdf/internal/http/server"
	"certpdf/internal/infra/logging"
	"certpdf/internal/infra/postgres"
	"certpdf/internal/tokens"
)

func main() {
	cfg := config.Load()
	if err := ensureLogDir(cfg.Logger.File); err != nil {
		logging.Error("Failed to create log directory", "error", err)
	}
	logging.InitLogger(
		cfg.Logger.File,
		cfg.Logger.MaxSizeMB,
		cfg.Logger.MaxBackups,
		cfg.Logger.MaxAgeDays,
		cfg.Logger.Compress,
		cfg.Logger.Level,
	)

	renderer, err := certificate.FromConfig(cfg, certificate.WithCreator("certd"))
	if err != nil {
		logging.Error("Invalid certificate settings", "error", err)
		os.Exit(1)
	}

	deps := server.Deps{Config: cfg, Renderer: renderer}
	if cfg.Cache.RedisHost != "" {
		deps.Redis = redis.NewClient(&redis.Options{
			Addr: cfg.Cache.RedisHost,
			DB:   cfg.Cache.PDFCacheDB,
		})
		defer deps.Redis.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Auth.Postgres.Enabled() {
		db := postgres.NewDB()
		defer db.Close()
		tokenCache, registry, err := connectPostgres(ctx, cfg, db)
		if err != nil {
			logging.Error("Postgres disabled", "error", err)
		} else {
			deps.Tokens = tokenCache
			deps.Registry = registry
		}
	}

	app := server.New(deps)

	idleConnsClosed := make(chan struct{})
	startServer(app, cfg, idleConnsClosed)
	<-idleConnsClosed
}

// connectPostgres wires the token reloader and the certificate registry.
// A failed first token load is logged; keyauth answers 503 until a reload succeeds.
func connectPostgres(ctx context.Context, cfg config.Config, db *postgres.DB) (*tokens.Cache, handlers.Registry, error) {
	dsn, err := postgres.DSN(cfg.Auth.Postgres)
	if err != nil {
		return nil, nil, err
	}
	conn, err := db.Get(dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.Ping(ctx, conn); err != nil {
		logging.Warn("Postgres not reachable yet", "error", err)
	}

	cache := tokens.NewCache()
	reloader := tokens.NewReloader(postgres.NewTokenRepository(db, dsn), cache, cfg.Auth.TokenReloadInterval)
	if err := reloader.LoadOnce(ctx); err != nil {
		logging.Error("Failed to load API tokens", "error", err)
	}
	reloader.Start(ctx)

	return cache, postgres.NewRegistry(db, dsn), nil
}

func ensureLogDir(path string) error {
	if path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// startServer serves app until SIGINT or SIGTERM, then shuts down gracefully.
func startServer(app *fiber.App, cfg config.Config, idleConnsClosed chan struct{}) {
	go func() {
		if err := app.Listen(cfg.Server.Host + cfg.Server.Port); err != nil {
			logging.Error("Server error", "error", err)
		}
	}()

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
	<-sigint
	signal.Stop(sigint)

	logging.Warn("Shutdown signal received, closing server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
	}

	close(idleConnsClosed)
	logging.Info("Server stopped cleanly")
}

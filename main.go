// @title OpenTreasury API
// @version 1.0
// @description Public treasury balance, events and announcements, with an allow-listed admin panel.
// @BasePath /
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name session
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

	"opentreasury/internal/auth"
	"opentreasury/internal/config"
	"opentreasury/internal/ledger"
	"opentreasury/internal/live"
	"opentreasury/internal/store"
	"opentreasury/internal/store/memory"
	"opentreasury/internal/store/postgres"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

var (
	dataStore     store.Store
	ledgerService *ledger.Service
	gate          *auth.Gate
	hub           *live.Hub
	cookieSecure  bool

	// serverContext is cancelled on shutdown to close live connections.
	serverContext = context.Background()
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	cfg, err := config.Load(os.LookupEnv)
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.AdminEmails.Len() == 0 {
		slog.Warn("ADMIN_EMAILS is empty, nobody can reach the admin panel")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	serverContext = ctx

	dataStore, err = openStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open store", "error", err)
		os.Exit(1)
	}
	defer dataStore.Close()

	provider, err := auth.NewGoogleProvider(ctx, cfg.GoogleClientID)
	if err != nil {
		slog.Error("Failed to create identity provider", "error", err)
		os.Exit(1)
	}
	sessions := auth.NewSessions(cfg.SessionSecret, cfg.SessionTTL, openSessionStore(ctx, cfg.RedisAddr))

	ledgerService = ledger.NewService(dataStore)
	gate = auth.NewGate(provider, cfg.AdminEmails, sessions)
	cookieSecure = cfg.CookieSecure

	hub = live.NewHub()
	registerLiveQueries(hub, dataStore)
	go live.Follow(ctx, dataStore, hub, store.Collections, live.DefaultBackoff)

	r := setupRouter(gin.Default(), cfg.CORSOrigins)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "store", cfg.StoreKind)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.StoreKind == config.StoreMemory {
		slog.Warn("Using in-memory store, data is lost on restart")
		return memory.New(), nil
	}

	pool, err := connectDatabase(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := migrateDatabase(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		pool.Close()
		return nil, err
	}
	return postgres.NewStore(pool), nil
}

// openSessionStore uses redis when REDIS_ADDR is set and reachable, and
// falls back to in-process sessions otherwise.
func openSessionStore(ctx context.Context, addr string) auth.SessionStore {
	if addr == "" {
		slog.Warn("REDIS_ADDR not set, sessions are kept in memory")
		return auth.NewMemorySessionStore()
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Failed to connect to Redis, sessions are kept in memory", "error", err)
		rdb.Close()
		return auth.NewMemorySessionStore()
	}
	slog.Info("Successfully connected to Redis")
	return auth.NewRedisSessionStore(rdb)
}

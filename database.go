package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"opentreasury/internal/store/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	connectAttempts = 30
	connectInterval = 2 * time.Second
)

// connectDatabase opens a pool, retrying while the database starts up.
func connectDatabase(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	var lastErr error
	for i := 0; i < connectAttempts; i++ {
		pool, err := pgxpool.New(ctx, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("parse database url: %w", err)
		}

		if err = pool.Ping(ctx); err == nil {
			slog.Info("Successfully connected to database")
			return pool, nil
		}
		pool.Close()
		lastErr = err
		slog.Warn("Error connecting to database", "attempt", i+1, "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(connectInterval):
		}
	}
	return nil, fmt.Errorf("connect to database after %d attempts: %w", connectAttempts, lastErr)
}

// migrateDatabase runs pending migrations when the migrations directory exists.
func migrateDatabase(databaseURL, migrationsPath string) error {
	if _, err := os.Stat(migrationsPath); os.IsNotExist(err) {
		slog.Warn("Migrations directory not found, skipping migrations", "path", migrationsPath)
		return nil
	}

	slog.Info("Running database migrations...", "path", migrationsPath)
	version, dirty, err := postgres.RunMigrations(databaseURL, migrationsPath)
	if err != nil {
		return err
	}
	if dirty {
		slog.Warn("Current migration version is DIRTY - migration failed", "version", version)
	} else {
		slog.Info("Database migrations completed successfully", "version", version)
	}
	return nil
}

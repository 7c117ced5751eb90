// Package config reads service settings from the environment once at
// startup.
package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"opentreasury/internal/auth"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config is loaded once and passed by reference; it is never mutated after
// Load returns.
type Config struct {
	Port           string
	DatabaseURL    string
	StoreKind      string
	MigrationsPath string

	GoogleClientID string
	SessionSecret  []byte
	SessionTTL     time.Duration
	CookieSecure   bool
	AdminEmails    auth.AllowList

	RedisAddr   string
	CORSOrigins []string
}

// MissingSettingsError lists every required setting that was absent.
type MissingSettingsError struct {
	Names []string
}

func (e *MissingSettingsError) Error() string {
	return "missing required settings: " + strings.Join(e.Names, ", ")
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load reads the configuration through lookup. Missing required settings
// are reported together in a *MissingSettingsError.
func Load(lookup LookupFunc) (*Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := &Config{
		Port:           get("PORT", "8080"),
		DatabaseURL:    get("DATABASE_URL", ""),
		StoreKind:      strings.ToLower(get("STORE", StorePostgres)),
		MigrationsPath: get("MIGRATIONS_PATH", "db/migrations"),
		GoogleClientID: get("GOOGLE_CLIENT_ID", ""),
		SessionSecret:  []byte(get("SESSION_SECRET", "")),
		AdminEmails:    auth.ParseAllowList(get("ADMIN_EMAILS", "")),
		RedisAddr:      get("REDIS_ADDR", ""),
	}

	var missing []string
	if cfg.StoreKind == StorePostgres && cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.GoogleClientID == "" {
		missing = append(missing, "GOOGLE_CLIENT_ID")
	}
	if len(cfg.SessionSecret) == 0 {
		missing = append(missing, "SESSION_SECRET")
	}
	if len(missing) > 0 {
		return nil, &MissingSettingsError{Names: missing}
	}

	if !slices.Contains([]string{StorePostgres, StoreMemory}, cfg.StoreKind) {
		return nil, fmt.Errorf("STORE must be %q or %q, got %q", StorePostgres, StoreMemory, cfg.StoreKind)
	}

	ttl, err := time.ParseDuration(get("SESSION_TTL", "24h"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL: %q", get("SESSION_TTL", ""))
	}
	cfg.SessionTTL = ttl

	cfg.CookieSecure, err = strconv.ParseBool(get("COOKIE_SECURE", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid COOKIE_SECURE: %w", err)
	}

	for _, origin := range strings.Split(get("CORS_ORIGINS", "http://localhost:5173"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	return cfg, nil
}

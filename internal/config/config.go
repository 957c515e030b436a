// Package config loads application settings from the environment.
package config

import (
	"fmt"
	"os"

	"libris/internal/app"

	"github.com/joho/godotenv"
)

// Config holds the deployment's settings. The two variant axes of the
// application (add-book policy, inventory representation) are selected here
// explicitly and never merged.
type Config struct {
	Addr string

	// Store selects the backing storage: postgres, sqlite or memory.
	Store       string
	DatabaseURL string
	SQLitePath  string

	// SessionSecret signs the flash-message cookie store.
	SessionSecret string

	AddBookPolicy app.AddBookPolicy
	InventoryMode app.InventoryMode
}

// Load reads configuration from the environment, preceded by an optional
// .env file.
func Load() (*Config, error) {
	// Missing .env is fine; real env vars win either way.
	_ = godotenv.Load()

	cfg := &Config{
		Addr:          getEnv("ADDR", ":8080"),
		Store:         getEnv("STORE", "sqlite"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SQLitePath:    getEnv("SQLITE_PATH", "libris.db"),
		SessionSecret: getEnv("SESSION_SECRET", "dev-only-secret"),
	}

	switch cfg.Store {
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when STORE=postgres")
		}
	case "sqlite", "memory":
	default:
		return nil, fmt.Errorf("unknown STORE %q", cfg.Store)
	}

	policy, err := app.ParseAddBookPolicy(getEnv("ADD_BOOK_POLICY", string(app.PolicyAdminOnly)))
	if err != nil {
		return nil, err
	}
	cfg.AddBookPolicy = policy

	mode, err := app.ParseInventoryMode(getEnv("INVENTORY_MODE", string(app.ModeCopies)))
	if err != nil {
		return nil, err
	}
	cfg.InventoryMode = mode

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

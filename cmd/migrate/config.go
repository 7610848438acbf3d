package main

import (
	"os"
	"path/filepath"
	"strings"

	"bookshelf/internal/store"

	"github.com/joho/godotenv"
)

func loadEnvFiles() {
	// Do not override environment provided by the runtime (e.g. Docker).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// migrationsDir is where "create" writes new files for driver.
func migrationsDir(driver string) string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return filepath.Join("internal", "store", store.MigrationsDir(driver))
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

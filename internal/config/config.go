// Package config loads runtime settings from the environment, optionally seeded
// from .env and .env.local files.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Addr        string
	LogLevel    string
	ServiceName string

	StoreDriver string
	DSN         string
	DBTimeout   time.Duration
	AutoMigrate bool

	UserAgent          string
	SourceTimeout      time.Duration
	TranslateTimeout   time.Duration
	OpenLibraryBaseURL string
	GoogleBooksBaseURL string
	LibreTranslateURL  string
	MyMemoryURL        string
	TranslateTarget    string
	TranslateSource    string

	RateLimitRPS   float64
	RateLimitBurst int
	MaxBodyBytes   int64
	EnableHSTS     bool
	CORSOrigins    []string
	ExportLocation *time.Location
}

// LoadEnvFiles reads .env then .env.local. Variables already present in the
// environment are never overridden.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ADDR", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVICE_NAME", "bookshelf")

	v.SetDefault("STORE_DRIVER", "sqlite")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("DB_TIMEOUT", "3s")
	v.SetDefault("AUTO_MIGRATE", "")

	v.SetDefault("USER_AGENT", "bookshelf/1.0 (+https://github.com/bookshelf)")
	v.SetDefault("SOURCE_TIMEOUT", "10s")
	v.SetDefault("TRANSLATE_TIMEOUT", "8s")
	v.SetDefault("OPENLIBRARY_BASE_URL", "https://openlibrary.org")
	v.SetDefault("GOOGLE_BOOKS_BASE_URL", "https://www.googleapis.com/books/v1")
	v.SetDefault("LIBRETRANSLATE_URL", "https://libretranslate.de")
	v.SetDefault("MYMEMORY_URL", "https://api.mymemory.translated.net")
	v.SetDefault("TRANSLATE_TARGET", "es")
	v.SetDefault("TRANSLATE_SOURCE_LANG", "en")

	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("MAX_BODY_BYTES", 1<<20)
	v.SetDefault("ENABLE_HSTS", false)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("EXPORT_TIMEZONE", "UTC")
}

// Load reads env files and the process environment into a validated Config.
func Load() (*Config, error) {
	LoadEnvFiles()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Addr:        v.GetString("APP_ADDR"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		ServiceName: v.GetString("SERVICE_NAME"),

		StoreDriver: strings.ToLower(v.GetString("STORE_DRIVER")),
		DSN:         v.GetString("DB_DSN"),
		DBTimeout:   v.GetDuration("DB_TIMEOUT"),

		UserAgent:          v.GetString("USER_AGENT"),
		SourceTimeout:      v.GetDuration("SOURCE_TIMEOUT"),
		TranslateTimeout:   v.GetDuration("TRANSLATE_TIMEOUT"),
		OpenLibraryBaseURL: v.GetString("OPENLIBRARY_BASE_URL"),
		GoogleBooksBaseURL: v.GetString("GOOGLE_BOOKS_BASE_URL"),
		LibreTranslateURL:  v.GetString("LIBRETRANSLATE_URL"),
		MyMemoryURL:        v.GetString("MYMEMORY_URL"),
		TranslateTarget:    v.GetString("TRANSLATE_TARGET"),
		TranslateSource:    v.GetString("TRANSLATE_SOURCE_LANG"),

		RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
		MaxBodyBytes:   v.GetInt64("MAX_BODY_BYTES"),
		EnableHSTS:     v.GetBool("ENABLE_HSTS"),
		CORSOrigins:    splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	switch cfg.StoreDriver {
	case "sqlite":
		if cfg.DSN == "" {
			cfg.DSN = "bookshelf.db"
		}
	case "postgres":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("DB_DSN is required when STORE_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q (want sqlite or postgres)", cfg.StoreDriver)
	}

	// Unset AUTO_MIGRATE means: migrate the embedded sqlite store, leave postgres alone.
	if raw := v.GetString("AUTO_MIGRATE"); raw == "" {
		cfg.AutoMigrate = cfg.StoreDriver == "sqlite"
	} else {
		cfg.AutoMigrate = v.GetBool("AUTO_MIGRATE")
	}

	loc, err := time.LoadLocation(v.GetString("EXPORT_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("EXPORT_TIMEZONE: %w", err)
	}
	cfg.ExportLocation = loc

	if cfg.DBTimeout <= 0 || cfg.SourceTimeout <= 0 || cfg.TranslateTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be positive")
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if cfg.MaxBodyBytes <= 0 {
		return nil, fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

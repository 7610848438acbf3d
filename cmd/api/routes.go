package main

import (
	"context"
	"net/http"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/catalog"
	"bookshelf/internal/config"
	"bookshelf/internal/export"
	"bookshelf/internal/httpx"
	"bookshelf/internal/platform/googlebooks"
	"bookshelf/internal/platform/openlibrary"
	"bookshelf/internal/platform/translate"
	"bookshelf/internal/platform/upstream"
	"bookshelf/internal/resolver"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func newResolver(cfg *config.Config, log *zap.Logger) *resolver.Resolver {
	sources := upstream.New(cfg.SourceTimeout, cfg.UserAgent)
	translators := upstream.New(cfg.TranslateTimeout, cfg.UserAgent)

	return resolver.New(
		openlibrary.NewClient(sources, cfg.OpenLibraryBaseURL),
		googlebooks.NewClient(sources, cfg.GoogleBooksBaseURL),
		[]resolver.Translator{
			translate.NewLibreTranslate(translators, cfg.LibreTranslateURL, cfg.TranslateTarget),
			translate.NewMyMemory(translators, cfg.MyMemoryURL, cfg.TranslateSource, cfg.TranslateTarget),
		},
		log,
	)
}

// newRouter wires every route behind the middleware chain. The returned func
// stops background work owned by the router.
func newRouter(cfg *config.Config, repo book.Repository, res catalog.MetadataResolver, log *zap.Logger) (http.Handler, func()) {
	catalogHandler := catalog.NewHTTPHandler(catalog.NewService(repo, res, log), log)
	exportHandler := export.NewHTTPHandler(export.NewExporter(repo, cfg.ExportLocation), log)

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := repo.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	router.Handle("GET /metrics", promhttp.Handler())

	router.HandleFunc("POST /v1/books/isbn", catalogHandler.AddByISBN)
	router.HandleFunc("POST /v1/books", catalogHandler.AddManual)
	router.HandleFunc("GET /v1/books", catalogHandler.List)
	router.HandleFunc("GET /v1/books/export", exportHandler.Download)
	router.HandleFunc("DELETE /v1/books/{id}", catalogHandler.Delete)

	limiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)

	handler := httpx.Chain(router,
		httpx.RecoveryMiddleware(log),
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(log),
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.CORSOrigins),
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
		limiter.Middleware,
	)
	return handler, limiter.Stop
}

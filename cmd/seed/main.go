package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"time"

	"bookshelf/internal/catalog"
	"bookshelf/internal/config"
	"bookshelf/internal/platform/logger"
	"bookshelf/internal/store"

	"go.uber.org/zap"
)

func main() {
	count := flag.Int("count", 100, "Number of synthetic books to add")
	flag.Parse()
	if err := checkCount(*count); err != nil {
		log.Fatalf("seed: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	zl, err := logger.New(cfg.ServiceName+"-seed", cfg.LogLevel)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx := context.Background()
	repo, closeRepo, err := store.Open(ctx, cfg.StoreDriver, cfg.DSN, cfg.DBTimeout, cfg.AutoMigrate)
	if err != nil {
		zl.Fatal("open store", zap.Error(err))
	}
	defer closeRepo()

	// Seeding never looks anything up, so no resolver is wired.
	svc := catalog.NewService(repo, nil, zl)
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	res, err := seed(ctx, svc, generate(rnd, *count))
	if err != nil {
		zl.Fatal("seed catalog", zap.Error(err), zap.Int("created", res.created))
	}
	zl.Info("seed finished", zap.Int("created", res.created), zap.Int("skipped", res.skipped))
}

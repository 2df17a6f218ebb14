package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/NenadVrtue/webshop-triangle/internal/application/catalogsync"
	"github.com/NenadVrtue/webshop-triangle/internal/config"
	"github.com/NenadVrtue/webshop-triangle/internal/infrastructure/http/supplier"
	"github.com/NenadVrtue/webshop-triangle/internal/infrastructure/persistence/postgres"
	"github.com/NenadVrtue/webshop-triangle/pkg/logger"
)

// One-shot job pulling the supplier tire feed into the local catalog.
// By default it syncs changes from the last 24 hours; -full resyncs
// everything.
func main() {
	full := flag.Bool("full", false, "resync the whole feed instead of the last 24h")
	batchSize := flag.Int("batch-size", 200, "tires per database batch")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	if cfg.Supplier.APIKey == "" || cfg.Supplier.SupplierID == "" {
		log.Fatal("SUPPLIER_API_KEY and SUPPLIER_ID must be set")
	}

	zlog, err := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(cfg.DB)
	if err != nil {
		zlog.Fatal("postgres connection failed", logger.Error(err))
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		zlog.Fatal("schema migration failed", logger.Error(err))
	}

	client := supplier.NewClient(cfg.Supplier)
	tireRepo := postgres.NewTireRepository(pool)
	svc := catalogsync.NewService(client, tireRepo, zlog, *batchSize)

	var updatedSince *time.Time
	if !*full {
		since := time.Now().UTC().Add(-24 * time.Hour)
		updatedSince = &since
	}

	n, err := svc.Sync(ctx, updatedSince)
	if err != nil {
		zlog.Fatal("catalog sync failed", logger.Error(err))
	}

	zlog.Info("catalog sync finished", logger.Int("tires_upserted", n))
}

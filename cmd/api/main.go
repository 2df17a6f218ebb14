package main

import (
	"context"
	"log"

	"github.com/NenadVrtue/webshop-triangle/internal/application/order"
	"github.com/NenadVrtue/webshop-triangle/internal/config"
	ginserver "github.com/NenadVrtue/webshop-triangle/internal/infrastructure/http/gin"
	kafkainfra "github.com/NenadVrtue/webshop-triangle/internal/infrastructure/messaging/kafka"
	"github.com/NenadVrtue/webshop-triangle/internal/infrastructure/persistence/postgres"
	"github.com/NenadVrtue/webshop-triangle/internal/interfaces/http/handler"
	"github.com/NenadVrtue/webshop-triangle/internal/interfaces/http/router"
	"github.com/NenadVrtue/webshop-triangle/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
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

	orderRepo := postgres.NewOrderRepository(pool)
	tireRepo := postgres.NewTireRepository(pool)

	producer, err := kafkainfra.NewOrderCreatedProducer(cfg.Kafka, zlog)
	if err != nil {
		zlog.Fatal("kafka producer init failed", logger.Error(err))
	}
	defer producer.Close()

	orderService := order.NewService(orderRepo, tireRepo, producer, zlog)

	orderHandler := handler.NewOrderHandler(orderService, zlog)
	engine := ginserver.NewEngine()
	router.RegisterRoutes(engine, orderHandler)

	zlog.Info("api server starting", logger.String("addr", cfg.Server.Address()))
	server := ginserver.NewServer(cfg.Server, engine)
	if err := server.Run(); err != nil {
		zlog.Fatal("server run failed", logger.Error(err))
	}
}

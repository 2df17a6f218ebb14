package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/NenadVrtue/webshop-triangle/internal/config"
	"github.com/NenadVrtue/webshop-triangle/internal/infrastructure/mail"
	kafkainfra "github.com/NenadVrtue/webshop-triangle/internal/infrastructure/messaging/kafka"
	"github.com/NenadVrtue/webshop-triangle/pkg/logger"
)

// Consumes order-created events and mails the admin about each new order.
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mailer := mail.NewSMTPMailer(cfg.SMTP, zlog)

	consumer, err := kafkainfra.NewNotificationConsumer(cfg.Kafka, mailer, zlog)
	if err != nil {
		zlog.Fatal("kafka consumer init failed", logger.Error(err))
	}
	defer consumer.Close()

	zlog.Info("order notifier starting",
		logger.Any("brokers", cfg.Kafka.Brokers),
		logger.String("topic", cfg.Kafka.OrderCreatedTopic),
		logger.String("group", cfg.Kafka.ConsumerGroup),
	)

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zlog.Fatal("kafka consumer stopped", logger.Error(err))
	}
	zlog.Info("order notifier shut down")
}

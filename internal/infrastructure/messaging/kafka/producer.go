package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/NenadVrtue/webshop-triangle/internal/config"
	domain "github.com/NenadVrtue/webshop-triangle/internal/domain/order"
	"github.com/NenadVrtue/webshop-triangle/internal/infrastructure/encoding/avro"
	"github.com/NenadVrtue/webshop-triangle/pkg/logger"
)

// OrderCreatedProducer publishes Avro-encoded order-created events after
// a submission commits. Publishing is best effort; the caller logs
// failures and never rolls the order back.
type OrderCreatedProducer struct {
	client *kgo.Client
	codec  *avro.Codec
	topic  string
	log    logger.Logger
}

func NewOrderCreatedProducer(cfg config.KafkaConfig, log logger.Logger) (*OrderCreatedProducer, error) {
	codec, err := avro.NewCodec(avro.OrderCreatedSchema)
	if err != nil {
		return nil, err
	}

	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.OrderCreatedTopic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	log.Info("kafka producer ready",
		logger.Any("brokers", cfg.Brokers),
		logger.String("topic", cfg.OrderCreatedTopic),
	)

	return &OrderCreatedProducer{
		client: client,
		codec:  codec,
		topic:  cfg.OrderCreatedTopic,
		log:    log,
	}, nil
}

func (p *OrderCreatedProducer) PublishOrderCreated(ctx context.Context, o *domain.Order) error {
	if o == nil {
		return fmt.Errorf("order is nil")
	}

	payload, err := p.codec.EncodeNative(avro.NewOrderCreatedEvent(o).ToNative())
	if err != nil {
		return fmt.Errorf("encode order created event: %w", err)
	}

	rec := &kgo.Record{
		Topic:     p.topic,
		Key:       []byte(uuid.NewString()),
		Value:     payload,
		Timestamp: time.Now().UTC(),
	}

	results := p.client.ProduceSync(ctx, rec)
	if err := results.FirstErr(); err != nil {
		return fmt.Errorf("publish to kafka topic %s: %w", p.topic, err)
	}

	p.log.Debug("order created event published",
		logger.Int64("order_id", o.ID),
		logger.Int("payload_bytes", len(payload)),
	)
	return nil
}

func (p *OrderCreatedProducer) Close() {
	p.client.Close()
}

package kafka

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/NenadVrtue/webshop-triangle/internal/config"
	"github.com/NenadVrtue/webshop-triangle/internal/infrastructure/encoding/avro"
	"github.com/NenadVrtue/webshop-triangle/pkg/logger"
)

// Mailer delivers the order-created notification email.
type Mailer interface {
	SendOrderCreated(ctx context.Context, event *avro.OrderCreatedEvent) error
}

// NotificationConsumer reads order-created events and hands them to the
// mailer. Delivery is best effort: a bad message or a failed send is
// logged and the loop moves on.
type NotificationConsumer struct {
	reader *kafkago.Reader
	codec  *avro.Codec
	mailer Mailer
	log    logger.Logger
}

func NewNotificationConsumer(cfg config.KafkaConfig, mailer Mailer, log logger.Logger) (*NotificationConsumer, error) {
	codec, err := avro.NewCodec(avro.OrderCreatedSchema)
	if err != nil {
		return nil, err
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.ConsumerGroup,
		Topic:    cfg.OrderCreatedTopic,
		MinBytes: 1e3,
		MaxBytes: 1e6,
	})

	return &NotificationConsumer{
		reader: reader,
		codec:  codec,
		mailer: mailer,
		log:    log,
	}, nil
}

func (c *NotificationConsumer) Start(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		native, err := c.codec.DecodeNative(msg.Value)
		if err != nil {
			c.log.Error("order created event not decodable", logger.Error(err))
			continue
		}

		event, err := avro.OrderCreatedFromNative(native)
		if err != nil {
			c.log.Error("order created event malformed", logger.Error(err))
			continue
		}

		if err := c.mailer.SendOrderCreated(ctx, event); err != nil {
			c.log.Error("order notification email failed",
				logger.Int64("order_id", event.OrderID),
				logger.Error(err),
			)
			continue
		}

		c.log.Info("order notification sent", logger.Int64("order_id", event.OrderID))
	}
}

func (c *NotificationConsumer) Close() {
	_ = c.reader.Close()
}

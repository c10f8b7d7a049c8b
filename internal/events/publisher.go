package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// Publisher sends domain events to Kafka. Event delivery is
// best-effort from the caller's point of view: a failed publish never
// rolls back the write that preceded it.
type Publisher interface {
	PublishReviewSubmitted(ctx context.Context, event ReviewSubmitted) error
	PublishOrderCreated(ctx context.Context, event OrderCreated) error
}

type KafkaPublisher struct {
	reviews *kafka.Writer
	orders  *kafka.Writer
}

func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{
		reviews: newWriter(brokers, TopicReviewSubmitted),
		orders:  newWriter(brokers, TopicOrderCreated),
	}
}

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
}

func (p *KafkaPublisher) PublishReviewSubmitted(ctx context.Context, event ReviewSubmitted) error {
	return publish(ctx, p.reviews, event.ServiceID, event)
}

func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, event OrderCreated) error {
	return publish(ctx, p.orders, event.UserID, event)
}

func publish(ctx context.Context, w *kafka.Writer, key string, event any) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := w.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: value}); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	if err := p.reviews.Close(); err != nil {
		return err
	}
	return p.orders.Close()
}

// NopPublisher drops events; used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishReviewSubmitted(context.Context, ReviewSubmitted) error { return nil }
func (NopPublisher) PublishOrderCreated(context.Context, OrderCreated) error       { return nil }

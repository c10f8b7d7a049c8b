package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/domain"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/events"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/orders"
)

// ProcessingDelay is how long an order stays pending before the
// worker moves it to processing.
const ProcessingDelay = 3 * time.Second

// OrderStatusConsumer reads order-created events and advances each
// order from pending to processing after the fixed delay. Further
// transitions come from fulfillment, outside this repository.
type OrderStatusConsumer struct {
	builder *orders.Builder
	reader  *kafka.Reader
	log     *zap.Logger
}

func NewOrderStatusConsumer(builder *orders.Builder, log *zap.Logger, brokers ...string) *OrderStatusConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    events.TopicOrderCreated,
		GroupID:  "order-status-worker",
		MaxBytes: 10e6, // 10MB
	})
	return &OrderStatusConsumer{builder: builder, reader: reader, log: log}
}

func (c *OrderStatusConsumer) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		c.processMessage(ctx)
	}
}

func (c *OrderStatusConsumer) Close() {
	if err := c.reader.Close(); err != nil {
		c.log.Error("error closing kafka reader", zap.Error(err))
	}
}

func (c *OrderStatusConsumer) processMessage(ctx context.Context) {
	m, err := c.reader.ReadMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		c.log.Error("error reading message", zap.Error(err))
		return
	}

	var event events.OrderCreated
	if err := json.Unmarshal(m.Value, &event); err != nil {
		c.log.Error("error parsing message", zap.Error(err))
		return
	}

	// Let the order sit in pending for the rest of its delay window.
	if wait := time.Until(event.CreatedAt.Add(ProcessingDelay)); wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return
		}
	}

	err = c.builder.AdvanceStatus(ctx, event.UserID, event.OrderID, domain.OrderStatusProcessing)
	if err != nil {
		if errors.Is(err, orders.ErrIllegalTransition) {
			// already advanced (or cancelled); nothing to do
			return
		}
		c.log.Error("failed to advance order",
			zap.String("order_id", event.OrderID), zap.Error(err))
		return
	}

	c.log.Info("order advanced to processing", zap.String("order_id", event.OrderID))
}

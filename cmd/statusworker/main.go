package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/config"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/consumer"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/events"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/orders"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/payment"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/storage"
)

// The status worker moves freshly created orders from pending to
// processing. It needs the same order store the API writes to, a
// Kafka subscription on order-created events, and nothing else.
func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg := config.Load()
	if len(cfg.KafkaBrokers) == 0 {
		logger.Fatal("KAFKA_BROKERS is required for the status worker")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	store := storage.NewRedisStorage(redisClient)

	// The worker never verifies payments or publishes events.
	builder := orders.NewBuilder(store, nopVerifier{}, events.NopPublisher{}, logger)

	c := consumer.NewOrderStatusConsumer(builder, logger, cfg.KafkaBrokers...)
	defer c.Close()

	go c.Run(ctx)
	logger.Info("Status worker running", zap.Strings("brokers", cfg.KafkaBrokers))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down status worker...")
	cancel()
}

type nopVerifier struct{}

func (nopVerifier) Verify(context.Context, string) (*payment.VerifyResult, error) {
	return &payment.VerifyResult{Success: false, Error: "verification unavailable in worker"}, nil
}

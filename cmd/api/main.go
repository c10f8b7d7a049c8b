package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/cart"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/catalog"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/config"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/currency"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/events"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/history"
	httpapi "github.com/atharvmishra2056/new-kuzzboost-sub001/internal/http"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/orders"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/payment"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/review"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/storage"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/uploads"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg := config.Load()
	ctx := context.Background()

	// Durable per-profile storage
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	store := storage.NewRedisStorage(redisClient)

	// Catalog store
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("Failed to connect to mongo", zap.Error(err))
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()
	catalogRepo := catalog.NewMongoRepository(mongoClient.Database(cfg.MongoDatabase))

	// Review rows store
	if err := review.RunMigrations(cfg.PostgresDSN, cfg.MigrationsDirPath); err != nil {
		logger.Fatal("Failed to run review migrations", zap.Error(err))
	}
	reviewRepo, err := review.NewPostgresRepository(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatal("Failed to connect to postgres", zap.Error(err))
	}
	defer reviewRepo.Close()

	// Event publisher; a storefront without brokers just drops events
	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaBrokers)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	converter, err := currency.NewConverter(cfg.DisplayCurrency)
	if err != nil {
		logger.Fatal("Bad display currency", zap.String("currency", cfg.DisplayCurrency), zap.Error(err))
	}

	uploader := uploads.NewHTTPUploader(cfg.UploadServiceURL, cfg.RequestTimeout)
	verifier := payment.NewHTTPVerifier(cfg.PaymentServiceURL, cfg.RequestTimeout)

	cartService := cart.NewService(store, logger)
	reviewService := review.NewService(reviewRepo, store, uploader, publisher, logger)
	historyService := history.NewService(store, catalogRepo, logger)
	orderBuilder := orders.NewBuilder(store, verifier, publisher, logger)

	router := httpapi.NewRouter(httpapi.Handlers{
		Cart:    httpapi.NewCartHandler(cartService, converter, cfg.RequestTimeout),
		Reviews: httpapi.NewReviewHandler(reviewService, cfg.RequestTimeout),
		History: httpapi.NewHistoryHandler(historyService, cfg.RequestTimeout),
		Orders:  httpapi.NewOrdersHandler(orderBuilder, cartService, cfg.RequestTimeout),
		Catalog: httpapi.NewCatalogHandler(catalogRepo, cfg.RequestTimeout),
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: router,
	}

	go func() {
		logger.Info("Storefront API listening", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down storefront API...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
	logger.Info("Storefront API stopped")
}

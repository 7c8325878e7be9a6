package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sincrochat/catalog-backend/api/routes"
	"github.com/sincrochat/catalog-backend/internal/cart"
	"github.com/sincrochat/catalog-backend/internal/catalog"
	"github.com/sincrochat/catalog-backend/internal/checkout"
	"github.com/sincrochat/catalog-backend/internal/events"
	"github.com/sincrochat/catalog-backend/pkg/config"
	"github.com/sincrochat/catalog-backend/pkg/logger"
	"github.com/sincrochat/catalog-backend/pkg/metrics"
	"github.com/sincrochat/catalog-backend/pkg/pubsub"
	"github.com/sincrochat/catalog-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	var publisher *events.Publisher
	if cfg.EventingEnabled() {
		psClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer func() {
			if err := psClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()
		publisher = events.NewPublisher(psClient, logg)
	} else {
		logg.Warn(context.Background(), "eventing disabled, order events will not be published")
	}

	upstream := catalog.NewClient(cfg.Upstream)

	carts := cart.NewManager(func(scope string) cart.Storage {
		return cart.NewRedisStorage(redisClient, scope, cfg.Cart.StorageTTL)
	}, logg)

	requestMetrics := metrics.NewRequestMetrics(prometheus.DefaultRegisterer)

	checkoutService, err := checkout.NewService(upstream, publisher, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, redisClient, upstream, carts, checkoutService, requestMetrics),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

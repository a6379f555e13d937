package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/Mederbek08/muslim-kg/internal/auth"
	"github.com/Mederbek08/muslim-kg/internal/cart"
	cartrepo "github.com/Mederbek08/muslim-kg/internal/cart/repository"
	"github.com/Mederbek08/muslim-kg/internal/catalog"
	catalogcache "github.com/Mederbek08/muslim-kg/internal/catalog/cache"
	catalogrepo "github.com/Mederbek08/muslim-kg/internal/catalog/repository"
	"github.com/Mederbek08/muslim-kg/internal/checkout"
	"github.com/Mederbek08/muslim-kg/internal/currency"
	"github.com/Mederbek08/muslim-kg/internal/events"
	"github.com/Mederbek08/muslim-kg/internal/httpapi"
	"github.com/Mederbek08/muslim-kg/pkg/config"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	ctx := context.Background()

	// Catalog: hosted document DB + cache.
	mongoDB, err := catalogrepo.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalw("failed to connect to MongoDB", "error", err)
	}
	defer mongoDB.Client().Disconnect(ctx)
	log.Infow("connected to MongoDB", "uri", cfg.MongoURI)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalw("redis connection failed", "error", err)
	}

	catalogSvc := catalog.NewService(
		catalogrepo.NewMongoRepository(mongoDB),
		catalogcache.NewRedisCache(redisClient),
		log,
	)

	// Cart: in-memory store mirrored to a local bbolt file.
	cartRepo, cartDB, err := cartrepo.NewBoltRepository(cfg.CartDBPath)
	if err != nil {
		log.Fatalw("failed to open cart database", "path", cfg.CartDBPath, "error", err)
	}
	defer cartDB.Close()

	cartStore := cart.NewStore(cartRepo, log)
	cartStore.Initialize(ctx)
	log.Infow("cart restored", "items", cartStore.TotalItemCount())

	// Checkout composer and order events.
	formatter := currency.NewFormatter(language.Russian, cfg.CurrencySymbol)
	composer := checkout.NewComposer(formatter)

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaTopic, cfg.KafkaBrokers...)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Infow("order events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	// Admin auth.
	authSvc := auth.NewService(auth.NewHTTPChecker(cfg.IdentityEndpoint), []byte(cfg.JWTSecret), cfg.TokenTTL)

	router := httpapi.NewRouter(httpapi.Handlers{
		Products: httpapi.NewProductHandler(catalogSvc, log),
		Cart:     httpapi.NewCartHandler(cartStore, catalogSvc, log),
		Checkout: httpapi.NewCheckoutHandler(cartStore, composer, publisher, cfg.WhatsAppHandle, log),
		Admin:    httpapi.NewAdminHandler(catalogSvc, log),
		Auth:     httpapi.NewAuthHandler(authSvc, log),
	}, authSvc, cfg.RequestTimeout, log)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Infow("storefront listening", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("forced shutdown", "error", err)
	}
	log.Infow("storefront stopped")
}

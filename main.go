package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tourhub/config"
	"tourhub/cron"
	"tourhub/database"
	"tourhub/database/repository"
	"tourhub/database/repository/memory"
	"tourhub/handlers"
	"tourhub/middleware"
	"tourhub/routes"
	"tourhub/services/events"
	"tourhub/services/notification"
	"tourhub/services/rating"
	"tourhub/services/review"
	"tourhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.GetLogger().Fatal("main: invalid configuration", zap.Error(err))
	}
	logger := utils.InitializeLogger(cfg.Env, cfg.LogLevel)
	defer logger.Sync() //nolint:errcheck

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// Storage.
	var (
		repos       *repository.Repositories
		mongoClient *mongo.Client
	)
	if cfg.UsesMemoryStore() {
		logger.Warn("main: using in-memory store; data is lost on exit")
		repos = repository.NewMemoryRepositories(memory.NewDirectory())
	} else {
		mongoClient, err = database.Connect(rootCtx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = mongoClient.Disconnect(ctx)
		}()
		repos = repository.NewMongoRepositories(mongoClient.Database(cfg.DatabaseName))
		if err := repos.EnsureIndexes(rootCtx); err != nil {
			logger.Fatal("main: failed to ensure indexes", zap.Error(err))
		}
		logger.Info("main: connected to MongoDB", zap.String("database", cfg.DatabaseName))
	}

	// Redis-backed cache and notification queue.
	var (
		ratingCache  rating.RatingCache
		notifier     notification.NotificationService = notification.NoopNotificationService{}
		redisClients []*redis.Client
		worker       *asynq.Server
	)
	if cfg.RedisAddr != "" {
		cacheClient, err := utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisCacheDB)
		if err != nil {
			logger.Fatal("main: failed to connect to Redis", zap.Error(err))
		}
		defer cacheClient.Close()
		redisClients = append(redisClients, cacheClient)
		ratingCache = rating.NewRedisRatingCache(cacheClient, cfg.RatingStaleness, logger)

		queueOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisQueueDB}
		asynqClient := asynq.NewClient(queueOpts)
		defer asynqClient.Close()
		notifier = notification.NewQueueNotificationService(asynqClient, logger)
		worker = cron.InitReviewNotifyWorker(cfg, notification.NewLogNotifier(logger), logger)
	} else {
		logger.Info("main: REDIS_ADDR not set; rating cache and notifications disabled")
	}

	// Domain events.
	var publisher events.Publisher = events.NoopPublisher{}
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		publisher = events.NewKafkaPublisher(brokers, cfg.KafkaTopic, logger)
		logger.Info("main: publishing review events", zap.Strings("brokers", brokers), zap.String("topic", cfg.KafkaTopic))
	}
	defer publisher.Close()

	utils.StartHealthMonitor(rootCtx, redisClients, mongoClient)

	// Services.
	metrics := rating.NewMetrics(prometheus.DefaultRegisterer)
	strategy, err := rating.NewStrategy(cfg.RatingStrategy, repos.Reviews)
	if err != nil {
		logger.Fatal("main: invalid rating strategy", zap.Error(err))
	}
	ratingService, err := rating.NewDefaultRatingService(strategy, repos.Ratings, repos.Providers, logger, rating.Options{
		Cache:     ratingCache,
		Publisher: publisher,
		Metrics:   metrics,
	})
	if err != nil {
		logger.Fatal("main: failed to initialize rating service", zap.Error(err))
	}
	reviewService, err := review.NewDefaultReviewService(repos, ratingService, logger, review.Options{
		Notifier:  notifier,
		Publisher: publisher,
		Metrics:   metrics,
	})
	if err != nil {
		logger.Fatal("main: failed to initialize review service", zap.Error(err))
	}

	reviewHandler := handlers.NewReviewHandler(reviewService)
	ratingHandler := handlers.NewRatingHandler(ratingService, cfg.RatingStaleness)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:  repos.Users,
		JWTSecret: cfg.JWTSecret,

		// Review endpoints.
		ListReviewsHandler:     reviewHandler.ListReviewsHandler,
		GetReviewHandler:       reviewHandler.GetReviewHandler,
		CreateReviewHandler:    reviewHandler.CreateReviewHandler,
		ModerateReviewHandler:  reviewHandler.ModerateReviewHandler,
		RespondToReviewHandler: reviewHandler.RespondToReviewHandler,
		VoteReviewHandler:      reviewHandler.VoteReviewHandler,

		// Rating endpoints.
		GetProviderRatingHandler: ratingHandler.GetProviderRatingHandler,

		HealthHandler: handlers.HealthHandler,
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("main: starting server", zap.String("addr", srv.Addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if worker != nil {
		worker.Shutdown()
	}
	stop()

	logger.Info("main: server stopped gracefully")
}

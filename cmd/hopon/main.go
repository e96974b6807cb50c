package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/hopon/internal/pkg/blobstore"
	"github.com/piresc/hopon/internal/pkg/config"
	"github.com/piresc/hopon/internal/pkg/constants"
	"github.com/piresc/hopon/internal/pkg/database"
	"github.com/piresc/hopon/internal/pkg/health"
	"github.com/piresc/hopon/internal/pkg/logger"
	"github.com/piresc/hopon/internal/pkg/middleware"
	natspkg "github.com/piresc/hopon/internal/pkg/nats"
	nrpkg "github.com/piresc/hopon/internal/pkg/newrelic"
	"github.com/piresc/hopon/internal/pkg/server"

	messageGateway "github.com/piresc/hopon/services/messages/gateway"
	messageHandler "github.com/piresc/hopon/services/messages/handler"
	messageRepository "github.com/piresc/hopon/services/messages/repository"
	messageUsecase "github.com/piresc/hopon/services/messages/usecase"
	tripGateway "github.com/piresc/hopon/services/trips/gateway"
	tripHandler "github.com/piresc/hopon/services/trips/handler"
	tripRepository "github.com/piresc/hopon/services/trips/repository"
	tripUsecase "github.com/piresc/hopon/services/trips/usecase"
	userHandler "github.com/piresc/hopon/services/users/handler"
	userRepository "github.com/piresc/hopon/services/users/repository"
	userUsecase "github.com/piresc/hopon/services/users/usecase"
)

func main() {
	appName := "hopon"
	configPath := "config/hopon.env"
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
		logger.String("storage", configs.Storage.Driver),
	)

	if configs.JWT.Secret == "" {
		zapLogger.Fatal("JWT_SECRET must be set")
	}

	ctx := context.Background()
	shutdownManager := server.NewShutdownManager(zapLogger)
	healthService := health.NewService(appName, configs.App.Version)

	// Redis backs the redis storage driver and the login rate limiter
	var redisClient *database.RedisClient
	if configs.Storage.Driver == constants.StorageRedis || configs.RateLimit.Enabled {
		redisClient, err = database.NewRedisClient(configs.Redis)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
		}
		shutdownManager.Register("redis", func(context.Context) error { return redisClient.Close() })
		healthService.AddChecker("redis", health.NewRedisChecker(redisClient))
	}

	var postgresClient *database.PostgresClient
	if configs.Storage.Driver == constants.StoragePostgres {
		postgresClient, err = database.NewPostgresClient(configs.Database)
		if err != nil {
			zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
		}
		shutdownManager.Register("postgres", func(context.Context) error { return postgresClient.Close() })
		healthService.AddChecker("postgres", health.NewPostgresChecker(postgresClient))
	}

	store, err := blobstore.NewStore(ctx, configs.Storage.Driver, blobstore.Backends{
		Redis:    redisClient,
		Postgres: postgresClient,
	})
	if err != nil {
		zapLogger.Fatal("Failed to initialize blob store", logger.Err(err))
	}

	// Events are optional; without NATS the gateways publish nothing
	var natsClient *natspkg.Client
	if configs.NATS.Enabled {
		natsClient, err = natspkg.NewClient(configs.NATS.URL)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
		}
		shutdownManager.Register("nats", func(context.Context) error {
			natsClient.Close()
			return nil
		})
		healthService.AddChecker("nats", health.NewNATSChecker(natsClient))
		logger.Info("NATS client initialized", logger.String("url", configs.NATS.URL))
	}

	// Initialize repositories and seed their collections
	userRepo := userRepository.NewUserRepo(store, configs)
	tripRepo := tripRepository.NewTripRepo(store, configs)
	messageRepo := messageRepository.NewMessageRepo(store, configs)

	seeders := map[string]func(context.Context) error{
		constants.KeyUsers:    userRepo.Init,
		constants.KeyTrips:    tripRepo.Init,
		constants.KeyMessages: messageRepo.Init,
	}
	for key, seed := range seeders {
		if err := seed(ctx); err != nil {
			zapLogger.Fatal("Failed to seed collection", logger.String("key", key), logger.Err(err))
		}
	}

	// Initialize usecases
	userUC := userUsecase.NewUserUC(userRepo, configs)
	tripUC := tripUsecase.NewTripUC(tripRepo, tripGateway.NewTripGW(natsClient), userUC, configs)
	messageUC := messageUsecase.NewMessageUC(messageRepo, messageGateway.NewMessageGW(natsClient), userUC)

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Add middlewares (panic recovery should be first)
	e.Use(middleware.PanicRecoveryMiddleware(zapLogger))
	e.Use(middleware.RequestIDMiddleware())
	e.Use(nrpkg.Middleware(nrApp))
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	authMiddleware := middleware.JWTAuthMiddleware(configs.JWT, userUC)

	var limiters []echo.MiddlewareFunc
	if configs.RateLimit.Enabled {
		limiters = append(limiters, middleware.IPRateLimiter(configs.RateLimit.Limit, configs.RateLimit.Period, redisClient.GetClient()))
	}

	healthService.RegisterEndpoints(e)

	// Register service routes
	userHandler.NewHandler(userUC).RegisterRoutes(e, authMiddleware, limiters...)
	tripHandler.NewHandler(tripUC).RegisterRoutes(e, authMiddleware)
	messageHandler.NewHandler(messageUC).RegisterRoutes(e, authMiddleware)

	if nrApp != nil {
		shutdownManager.Register("newrelic", func(context.Context) error {
			nrApp.Shutdown(10 * time.Second)
			return nil
		})
	}

	srv := server.NewGracefulServer(e, zapLogger, configs.Server)
	if err := srv.Start(); err != nil {
		zapLogger.Error("Server stopped with error", logger.Err(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := shutdownManager.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Shutdown finished with errors", logger.Err(err))
	}

	zapLogger.Info("Server exiting gracefully")
	_ = zapLogger.Sync()
}

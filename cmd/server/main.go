package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/ledgerly/ledgerly/internal/adapter/http"
	"github.com/ledgerly/ledgerly/internal/adapter/http/handler"
	"github.com/ledgerly/ledgerly/internal/adapter/http/middleware"
	postgresRepo "github.com/ledgerly/ledgerly/internal/adapter/repository/postgres"
	redisRepo "github.com/ledgerly/ledgerly/internal/adapter/repository/redis"
	"github.com/ledgerly/ledgerly/internal/infrastructure/auth"
	"github.com/ledgerly/ledgerly/internal/infrastructure/config"
	"github.com/ledgerly/ledgerly/internal/infrastructure/logging"
	"github.com/ledgerly/ledgerly/internal/infrastructure/metrics"
	"github.com/ledgerly/ledgerly/internal/infrastructure/postgres"
	"github.com/ledgerly/ledgerly/internal/infrastructure/redis"
	"github.com/ledgerly/ledgerly/internal/usecase"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// slog default for the inner layers
	slog.SetDefault(logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat).Logger)

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	appMetrics := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	retrier := postgresRepo.NewRetrier()
	familyRepo := postgresRepo.NewFamilyRepository(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	transferRepo := postgresRepo.NewTransferRepository(pool)
	categoryRepo := postgresRepo.NewCategoryRepository(pool)
	merchantRepo := postgresRepo.NewMerchantRepository(pool)
	tagRepo := postgresRepo.NewTagRepository(pool)
	budgetRepo := postgresRepo.NewBudgetRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Initialize use cases
	familyUC := usecase.NewFamilyUseCase(familyRepo, idGen)
	accountUC := usecase.NewAccountUseCase(accountRepo, familyRepo, idGen)
	transactionUC := usecase.NewTransactionUseCase(txManager, accountRepo, transactionRepo, categoryRepo, idGen)
	transferUC := usecase.NewTransferUseCase(txManager, retrier, accountRepo, transactionRepo, transferRepo, categoryRepo, idGen, appMetrics)
	matcherUC := usecase.NewMatcherUseCase(txManager, transactionRepo, transferRepo, idGen, cfg.MatchWindow(), appMetrics)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, cache, idGen)
	merchantUC := usecase.NewMerchantUseCase(merchantRepo, idGen)
	tagUC := usecase.NewTagUseCase(tagRepo, idGen)
	budgetUC := usecase.NewBudgetUseCase(budgetRepo, categoryRepo, familyRepo, idGen)

	// Authentication
	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled {
		if cfg.JWTSecret == "" {
			log.Fatal().Msg("AUTH_ENABLED requires JWT_SECRET")
		}
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	} else {
		log.Warn().Msg("authentication disabled, family resolved from " + middleware.DevFamilyHeader)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		FamilyHandler:      handler.NewFamilyHandler(familyUC),
		AccountHandler:     handler.NewAccountHandler(accountUC),
		TransactionHandler: handler.NewTransactionHandler(transactionUC, matcherUC),
		TransferHandler:    handler.NewTransferHandler(transferUC),
		CategoryHandler:    handler.NewCategoryHandler(categoryUC),
		MerchantHandler:    handler.NewMerchantHandler(merchantUC),
		TagHandler:         handler.NewTagHandler(tagUC),
		BudgetHandler:      handler.NewBudgetHandler(budgetUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		JWTManager:         jwtManager,
		AuthEnabled:        cfg.AuthEnabled,
		Logging:            middleware.NewLoggingMiddleware(log.Logger),
		Metrics:            appMetrics,
		RateLimiter:        middleware.NewRateLimiter(50, 100, appMetrics),
		IdempotencyStore:   idempotencyStore,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/iho/finfolio/internal/adapter/http"
	"github.com/iho/finfolio/internal/adapter/http/handler"
	"github.com/iho/finfolio/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/finfolio/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/finfolio/internal/adapter/repository/redis"
	"github.com/iho/finfolio/internal/infrastructure/auth"
	"github.com/iho/finfolio/internal/infrastructure/config"
	"github.com/iho/finfolio/internal/infrastructure/logger"
	"github.com/iho/finfolio/internal/infrastructure/metrics"
	"github.com/iho/finfolio/internal/infrastructure/postgres"
	"github.com/iho/finfolio/internal/infrastructure/redis"
	"github.com/iho/finfolio/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(log, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	retrier := postgresRepo.NewRetrier(log)
	userRepo := postgresRepo.NewUserRepository(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	assetRepo := postgresRepo.NewAssetRepository(pool)
	categoryRepo := postgresRepo.NewCategoryRepository(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	priceRepo := postgresRepo.NewPriceRepository(pool)
	portfolioRepo := postgresRepo.NewPortfolioRepository(pool)
	allocRepo := postgresRepo.NewAllocationRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Use cases
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, idGen)
	userUC := usecase.NewUserUseCase(userRepo, categoryUC, idGen)
	accountUC := usecase.NewAccountUseCase(accountRepo, idGen)
	assetUC := usecase.NewAssetUseCase(assetRepo, idGen)
	priceUC := usecase.NewPriceUseCase(priceRepo, assetRepo, idGen)
	txnUC := usecase.NewTransactionUseCase(txnRepo, categoryRepo, idGen)
	holdingsUC := usecase.NewHoldingsUseCase(txnRepo, accountRepo, assetRepo, priceRepo)
	portfolioUC := usecase.NewPortfolioUseCase(portfolioRepo, allocRepo, txManager, retrier, idGen)
	rebalanceUC := usecase.NewRebalanceUseCase(portfolioRepo, allocRepo, txnRepo, priceRepo)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Handlers
	userHandler := handler.NewUserHandler(userUC, jwtManager, m)
	accountHandler := handler.NewAccountHandler(accountUC)
	assetHandler := handler.NewAssetHandler(assetUC)
	categoryHandler := handler.NewCategoryHandler(categoryUC)
	priceHandler := handler.NewPriceHandler(priceUC, m)
	txnHandler := handler.NewTransactionHandler(txnUC, m)
	portfolioHandler := handler.NewPortfolioHandler(portfolioUC, rebalanceUC, m)
	holdingsHandler := handler.NewHoldingsHandler(holdingsUC, m)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		UserHandler:        userHandler,
		AccountHandler:     accountHandler,
		AssetHandler:       assetHandler,
		CategoryHandler:    categoryHandler,
		PriceHandler:       priceHandler,
		TransactionHandler: txnHandler,
		PortfolioHandler:   portfolioHandler,
		HoldingsHandler:    holdingsHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		JWTManager:         jwtManager,
		RateLimiter:        middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		AuthEnabled:        cfg.AuthEnabled,
		Logger:             log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

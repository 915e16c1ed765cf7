package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
	biddingUseCase "github.com/pushpendr-7/auction-engine/internal/domain/usecase/bidding"
	ledgerUseCase "github.com/pushpendr-7/auction-engine/internal/domain/usecase/ledger"
	settlementUseCase "github.com/pushpendr-7/auction-engine/internal/domain/usecase/settlement"
	walletUseCase "github.com/pushpendr-7/auction-engine/internal/domain/usecase/wallet"

	"github.com/pushpendr-7/auction-engine/internal/infrastructure/adapter/api/handler"
	"github.com/pushpendr-7/auction-engine/internal/infrastructure/adapter/api/routes"
	"github.com/pushpendr-7/auction-engine/internal/infrastructure/adapter/database"
	"github.com/pushpendr-7/auction-engine/internal/infrastructure/adapter/database/migration"
	"github.com/pushpendr-7/auction-engine/internal/infrastructure/adapter/events"
	"github.com/pushpendr-7/auction-engine/internal/infrastructure/adapter/logger"
	timeProvider "github.com/pushpendr-7/auction-engine/internal/infrastructure/adapter/time"
	"github.com/pushpendr-7/auction-engine/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)

	// Setup database configuration
	dbConfig := database.CreateConfigFromViperConfig(cfg)

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	// Run migrations
	if err := dbManager.MigrationManager().MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Unit of work (transaction manager)
	uow := database.NewUnitOfWork(dbManager.DB(), appLogger, tp)

	// Event notifier: RabbitMQ when configured, otherwise a no-op
	var notifier coreport.Notifier
	if cfg.Events.URL != "" {
		rabbitNotifier, err := events.NewRabbitMQNotifier(cfg.Events.URL, cfg.Events.Exchange, appLogger)
		if err != nil {
			appLogger.Error("Failed to connect to event broker", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		notifier = rabbitNotifier
	} else {
		appLogger.Warn("No event broker configured, events disabled", nil)
		notifier = events.NewNoopNotifier()
	}
	defer notifier.Close()

	// Initialize use cases
	holds := walletUseCase.NewHoldManager(uow, tp, appLogger)
	ledgerService := ledgerUseCase.NewService(uow, tp, appLogger)

	biddingConfig, err := buildBiddingConfig(cfg)
	if err != nil {
		appLogger.Error("Invalid auction configuration", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	biddingService := biddingUseCase.NewService(uow, holds, ledgerService, notifier, tp, appLogger, biddingConfig)
	settlementService := settlementUseCase.NewService(uow, holds, ledgerService, notifier, tp, appLogger, settlementUseCase.Config{
		SweepBatchLimit: cfg.Auction.SettleBatchLimit,
	})

	// Seed development wallets
	if cfg.Environment == config.Development {
		if err := migration.CreateDefaultWallets(context.Background(), holds); err != nil {
			appLogger.Error("Failed to seed default wallets", map[string]any{
				"error": err.Error(),
			})
		}
	}

	// Redis client for bid rate limiting
	var redisClient *redis.Client
	if cfg.RateLimit.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RateLimit.RedisAddr,
			Password: cfg.RateLimit.RedisPassword,
			DB:       cfg.RateLimit.RedisDB,
		})
		defer redisClient.Close()
	}

	// Initialize API handlers
	handlers := routes.Handlers{
		Bid:        handler.NewBidHandler(biddingService, appLogger),
		Seat:       handler.NewSeatHandler(biddingService, appLogger),
		Settlement: handler.NewSettlementHandler(settlementService, appLogger),
		Wallet:     handler.NewWalletHandler(holds, appLogger),
		Ledger:     handler.NewLedgerHandler(ledgerService, appLogger),
	}

	// Initialize Gin router
	router := gin.New()

	// Setup middlewares
	routes.SetupMiddlewares(router, appLogger)

	// Setup routes
	routes.SetupRoutes(router, handlers, routes.RateLimiter{
		Client:     redisClient,
		Capacity:   cfg.RateLimit.Capacity,
		RefillRate: cfg.RateLimit.RefillRate,
	}, tp, appLogger)

	// Start the background sweepers
	sweepCtx, stopSweepers := context.WithCancel(context.Background())
	go runSweepers(sweepCtx, cfg, settlementService, biddingService, appLogger)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	// Stop the sweepers first so no new settlements start mid-shutdown
	stopSweepers()

	// Create a deadline to wait for
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Shutdown the server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// runSweepers periodically settles ended auctions and assesses offline
// leader penalties
func runSweepers(
	ctx context.Context,
	cfg *config.Config,
	settlementService *settlementUseCase.Service,
	biddingService *biddingUseCase.Service,
	appLogger coreport.Logger,
) {
	interval := time.Duration(cfg.Auction.SettleIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 15 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	appLogger.Info("Background sweepers started", map[string]any{
		"interval": interval.String(),
	})

	for {
		select {
		case <-ctx.Done():
			appLogger.Info("Background sweepers stopped", nil)
			return
		case <-ticker.C:
			if settled, err := settlementService.Sweep(ctx); err != nil {
				appLogger.Error("Settlement sweep failed", map[string]any{
					"error": err.Error(),
				})
			} else if settled > 0 {
				appLogger.Info("Settlement sweep completed", map[string]any{
					"settled": settled,
				})
			}

			if assessed, err := biddingService.PenaltySweep(ctx); err != nil {
				appLogger.Error("Penalty sweep failed", map[string]any{
					"error": err.Error(),
				})
			} else if assessed > 0 {
				appLogger.Info("Penalty sweep completed", map[string]any{
					"assessed": assessed,
				})
			}
		}
	}
}

// buildBiddingConfig converts the decimal-string auction knobs to cents
func buildBiddingConfig(cfg *config.Config) (biddingUseCase.Config, error) {
	minIncrement, err := entity.ValidateAndConvertAmount(cfg.Auction.MinimumIncrement)
	if err != nil {
		return biddingUseCase.Config{}, fmt.Errorf("invalid auction.minimumIncrement: %w", err)
	}

	seatFee, err := entity.ValidateAndConvertAmount(cfg.Auction.SeatFee)
	if err != nil {
		return biddingUseCase.Config{}, fmt.Errorf("invalid auction.seatFee: %w", err)
	}

	penalty, err := entity.ValidateAndConvertAmount(cfg.Auction.PenaltyAmount)
	if err != nil {
		return biddingUseCase.Config{}, fmt.Errorf("invalid auction.penaltyAmount: %w", err)
	}

	return biddingUseCase.Config{
		MinimumIncrementInCents: minIncrement,
		SeatFeeInCents:          seatFee,
		PenaltyInCents:          penalty,
		MaxBidMultiplier:        cfg.Auction.MaxBidMultiplier,
		MarketOpenHour:          cfg.Auction.MarketOpenHour,
		MarketCloseHour:         cfg.Auction.MarketCloseHour,
		MinimumParticipants:     cfg.Auction.MinimumParticipants,
		OfflineThreshold:        coreport.Duration(time.Duration(cfg.Auction.OfflinePenaltySeconds) * time.Second),
	}, nil
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	// Validate server configuration
	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	// Validate database configuration
	if cfg.Database.Host == "" && os.Getenv("AE_DB_HOST") == "" {
		missingConfigs = append(missingConfigs, "database.host (or AE_DB_HOST environment variable)")
	}
	if cfg.Database.Username == "" && os.Getenv("AE_DB_USERNAME") == "" {
		missingConfigs = append(missingConfigs, "database.username (or AE_DB_USERNAME environment variable)")
	}
	if cfg.Database.Password == "" && os.Getenv("AE_DB_PASSWORD") == "" {
		missingConfigs = append(missingConfigs, "database.password (or AE_DB_PASSWORD environment variable)")
	}
	if cfg.Database.Database == "" && os.Getenv("AE_DB_NAME") == "" {
		missingConfigs = append(missingConfigs, "database.database (or AE_DB_NAME environment variable)")
	}
	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	// Validate auction configuration
	if cfg.Auction.MinimumIncrement == "" {
		missingConfigs = append(missingConfigs, "auction.minimumIncrement")
	}
	if cfg.Auction.SeatFee == "" {
		missingConfigs = append(missingConfigs, "auction.seatFee")
	}
	if cfg.Auction.PenaltyAmount == "" {
		missingConfigs = append(missingConfigs, "auction.penaltyAmount")
	}
	if cfg.Auction.MaxBidMultiplier <= 0 {
		missingConfigs = append(missingConfigs, "auction.maxBidMultiplier")
	}

	// Environment should be set with a valid value
	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	// Logger configuration
	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	// Return error with list of missing configurations
	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	return nil
}

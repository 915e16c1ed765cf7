package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
	"github.com/pushpendr-7/auction-engine/internal/infrastructure/adapter/api/handler"
	"github.com/pushpendr-7/auction-engine/internal/infrastructure/adapter/api/middleware"
)

// Handlers bundles the handlers wired into the router
type Handlers struct {
	Bid        *handler.BidHandler
	Seat       *handler.SeatHandler
	Settlement *handler.SettlementHandler
	Wallet     *handler.WalletHandler
	Ledger     *handler.LedgerHandler
}

// RateLimiter holds the bid endpoint rate limiting dependencies. A nil
// Client disables limiting.
type RateLimiter struct {
	Client     *redis.Client
	Capacity   int
	RefillRate float64
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	handlers Handlers,
	limiter RateLimiter,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) {
	bidLimit := middleware.RateLimit(limiter.Client, limiter.Capacity, limiter.RefillRate, timeProvider, logger)

	// Item routes
	itemRoutes := router.Group("/items")
	{
		itemRoutes.POST("/:itemId/bids", bidLimit, handlers.Bid.PlaceBid)
		itemRoutes.POST("/:itemId/settle", handlers.Settlement.Settle)
		itemRoutes.POST("/:itemId/buy-now", handlers.Settlement.BuyNow)

		itemRoutes.POST("/:itemId/seat", handlers.Seat.BookSeat)
		itemRoutes.DELETE("/:itemId/seat", handlers.Seat.UnbookSeat)
		itemRoutes.POST("/:itemId/seat/verify", handlers.Seat.VerifyCode)
		itemRoutes.POST("/:itemId/presence", handlers.Seat.PresencePing)

		// Owner-only controls
		itemRoutes.POST("/:itemId/preview", handlers.Seat.StartPreview)
		itemRoutes.POST("/:itemId/call", handlers.Seat.StartCall)
	}

	// Bid lookup by transaction ID
	router.GET("/bids/:txId", handlers.Bid.GetBid)

	// User routes
	userRoutes := router.Group("/user")
	{
		userRoutes.GET("/:userId/balance", handlers.Wallet.GetBalance)
		userRoutes.POST("/:userId/recharge", handlers.Settlement.Recharge)
	}

	// Payment provider callbacks
	router.POST("/payments/:paymentId/effects", handlers.Settlement.ApplyEffects)
	router.POST("/payments/:paymentId/fail", handlers.Settlement.FailPayment)

	// Audit ledger
	ledgerRoutes := router.Group("/ledger")
	{
		ledgerRoutes.GET("", handlers.Ledger.Export)
		ledgerRoutes.GET("/verify", handlers.Ledger.Verify)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	// Apply middlewares in the correct order
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
}

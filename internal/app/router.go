package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"go.uber.org/zap"

	"github.com/hindih/gett-gpt-proxy/internal/handler"
	"github.com/hindih/gett-gpt-proxy/internal/middleware"
	"github.com/hindih/gett-gpt-proxy/internal/redis"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	GatewayHandler   *handler.GatewayHandler
	IdempotencyStore redis.IdempotencyStoreInterface
	NewRelicApp      *newrelic.Application
	Logger           *zap.Logger
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Gateway routes. Idempotency replay applies only to the booking
	// route: /auth must re-authenticate on every call, so its responses
	// are never stored or replayed.
	router.POST("/auth", deps.GatewayHandler.Authenticate)
	if deps.IdempotencyStore != nil {
		router.POST("/book_ride", middleware.IdempotencyMiddleware(deps.IdempotencyStore), deps.GatewayHandler.BookRide)
	} else {
		router.POST("/book_ride", deps.GatewayHandler.BookRide)
	}
	router.GET("/order_status/:order_id", deps.GatewayHandler.OrderStatus)

	return router
}

package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/api/handlers"
	"github.com/jafarshop/storefront/internal/auth"
	"github.com/jafarshop/storefront/internal/cart"
	"github.com/jafarshop/storefront/internal/checkout"
	"github.com/jafarshop/storefront/internal/config"
)

// NewRouter creates and configures the Gin router
func NewRouter(
	cfg *config.Config,
	session auth.Session,
	cartStore cart.Cart,
	submitter *checkout.Submitter,
	logger *zap.Logger,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	sessions := handlers.NewSessions()

	// API v1 routes
	v1 := router.Group("/v1")
	{
		v1.POST("/checkout", handlers.HandleStartCheckout(session, cartStore, sessions, logger))
		v1.GET("/checkout/:id", handlers.HandleGetCheckout(cartStore, sessions, logger))
		v1.PATCH("/checkout/:id/fields", handlers.HandleUpdateField(cartStore, sessions, logger))
		v1.POST("/checkout/:id/advance", handlers.HandleAdvance(cartStore, sessions, logger))
		v1.POST("/checkout/:id/back", handlers.HandleBack(cartStore, sessions, logger))
		v1.POST("/checkout/:id/submit", handlers.HandleSubmit(cartStore, sessions, submitter, logger))
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}

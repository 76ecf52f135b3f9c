package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alpenhof/shipdesk/internal/api/handlers"
	"github.com/alpenhof/shipdesk/internal/config"
	"github.com/alpenhof/shipdesk/internal/shipment"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, store *shipment.Store, logger *zap.Logger) *gin.Engine {
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

	api := router.Group("/api")
	{
		api.GET("/products", handlers.HandleListProducts(store))
		api.GET("/clients", handlers.HandleSearchClients(store))

		draft := api.Group("/shipment")
		{
			draft.GET("", handlers.HandleGetShipment(store))
			draft.PUT("/product", handlers.HandleSelectProduct(store))
			draft.PUT("/price", handlers.HandleSetPrice(store))
			draft.POST("/volume/increment", handlers.HandleIncrementVolume(store))
			draft.POST("/volume/decrement", handlers.HandleDecrementVolume(store))
			draft.POST("/products", handlers.HandleAddProduct(store))
			draft.DELETE("/products/:index", handlers.HandleRemoveProduct(store))
			draft.PUT("/client", handlers.HandleSelectClient(store))
			draft.PUT("/invoice", handlers.HandleUpdateInvoice(store))
			draft.GET("/invoice/status-options", handlers.HandleInvoiceStatusOptions())
			draft.POST("/save", handlers.HandleSaveShipment(store))
			draft.POST("/new", handlers.HandleNewShipment(store))
		}
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

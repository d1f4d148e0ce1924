package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"edge-header-policy/internal/middleware"
	"edge-header-policy/internal/services"
)

// ServiceName is reported by the health endpoint
const ServiceName = "edge-header-policy"

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	HeaderPolicy services.HeaderPolicyService
	Logger       logrus.FieldLogger

	RequestsPerSecond float64
	Burst             int
	MaxBodyBytes      int64
}

// NewRouter builds a gin engine with middleware and routes installed
func NewRouter(config *RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	SetupMiddleware(router, config)
	SetupRoutes(router, config)

	return router
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	eventHandler := NewEventHandler(config.HeaderPolicy)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   ServiceName,
			"timestamp": time.Now().UTC(),
		})
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/events", eventHandler.ProcessEvent)
		v1.POST("/responses", eventHandler.ProcessExchange)
		v1.GET("/policy", eventHandler.EvaluatePolicy)
	}
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine, config *RouterConfig) {
	logger := config.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())

	if config.MaxBodyBytes > 0 {
		router.Use(middleware.RequestSizeLimit(config.MaxBodyBytes))
	}
	router.Use(middleware.ContentTypeValidation("application/json"))

	if config.RequestsPerSecond > 0 && config.Burst > 0 {
		router.Use(middleware.RateLimiter(logger, config.RequestsPerSecond, config.Burst))
	}

	router.Use(middleware.StructuredLogger(logger))
	router.Use(middleware.EnhancedErrorHandler(logger))
}

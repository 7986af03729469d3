package router

import (
	"net/http"

	"farm-gateway/internal/adapter/gin/handler"
	"farm-gateway/internal/adapter/gin/middleware"
	"farm-gateway/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Handlers groups the route handlers mounted by the gateway.
type Handlers struct {
	User    *handler.UserHandler
	Predict *handler.PredictHandler
	Weather *handler.WeatherHandler
}

// SetupRouter configures and returns a Gin router with all routes and
// middleware. redisClient may be nil; the rate limiter is skipped then.
func SetupRouter(cfg *config.Config, h Handlers, redisClient *redis.Client, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware, order matters: recovery first, CORS before any route
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.CORS.Origins, log))
	router.Use(middleware.RateLimiter(redisClient, middleware.RateLimiterConfig{
		Enabled:           cfg.RateLimit.Enabled,
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		WindowSeconds:     cfg.RateLimit.WindowSeconds,
	}, log))

	// Liveness endpoint
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "farm gateway is running")
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "farm-gateway",
		})
	})

	users := router.Group("/user")
	{
		users.GET("", h.User.Lookup)
		users.POST("", h.User.Create)
	}

	router.POST("/predict", h.Predict.Predict)

	// Weather group is unprefixed
	router.GET("/weather", h.Weather.Current)

	return router
}

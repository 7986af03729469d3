package di

import (
	"fmt"
	"time"

	"farm-gateway/cmd/api/infrastructure"
	"farm-gateway/internal/adapter/cache"
	ginhandler "farm-gateway/internal/adapter/gin/handler"
	ginrouter "farm-gateway/internal/adapter/gin/router"
	"farm-gateway/internal/adapter/upstream"
	"farm-gateway/internal/config"
	"farm-gateway/internal/usecase/predict"
	"farm-gateway/internal/usecase/user"
	"farm-gateway/internal/usecase/weather"
	redisclient "farm-gateway/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	RedisClient *redisclient.Client
	UserUC      user.Usecase
	PredictUC   predict.Usecase
	WeatherUC   weather.Usecase
	Router      *gin.Engine
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	timeout := time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second

	// Initialize the optional Redis client
	var rdb *redisclient.Client
	if cfg.Redis.Enabled {
		var err error
		rdb, err = infrastructure.NewRedisClient(cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
	}

	// Initialize the three backing-service clients
	identityClient := upstream.NewIdentityClient(cfg.Upstream.IdentityBaseURL, timeout, l)
	inferenceClient := upstream.NewInferenceClient(cfg.Upstream.InferenceBaseURL, timeout, l)
	weatherClient := upstream.NewWeatherClient(cfg.Upstream.WeatherBaseURL, cfg.Upstream.WeatherAPIKey, timeout, l)

	// Initialize the optional weather cache
	var weatherCache cache.WeatherCache
	if cfg.Cache.WeatherEnabled && rdb != nil {
		weatherCache = cache.NewRedisWeatherCache(
			rdb.Client,
			time.Duration(cfg.Cache.WeatherTTLSeconds)*time.Second,
			l,
		)
	}

	// Initialize use cases
	userUC := user.New(identityClient, l)
	predictUC := predict.New(inferenceClient, cfg.Predict.MaxImageBytes, l)
	weatherUC := weather.New(weatherClient, weatherCache, l)

	// Initialize handlers and router
	handlers := ginrouter.Handlers{
		User:    ginhandler.NewUserHandler(userUC, l),
		Predict: ginhandler.NewPredictHandler(predictUC, cfg.Predict.MaxImageBytes, l),
		Weather: ginhandler.NewWeatherHandler(weatherUC, l),
	}

	router := ginrouter.SetupRouter(cfg, handlers, redisForLimiter(rdb), l)

	return &Container{
		Config:      cfg,
		Logger:      l,
		RedisClient: rdb,
		UserUC:      userUC,
		PredictUC:   predictUC,
		WeatherUC:   weatherUC,
		Router:      router,
	}, nil
}

// redisForLimiter unwraps the raw client, tolerating a disabled Redis.
func redisForLimiter(rdb *redisclient.Client) *goredis.Client {
	if rdb == nil {
		return nil
	}
	return rdb.Client
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}
	return nil
}

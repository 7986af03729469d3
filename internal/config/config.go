package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the gateway
type Config struct {
	App       AppConfig
	CORS      CORSConfig
	Upstream  UpstreamConfig
	Predict   PredictConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Logger    LoggerConfig
}

// AppConfig holds configuration for the HTTP listener
type AppConfig struct {
	Port                   string `mapstructure:"PORT"`
	ShutdownTimeoutSeconds int    `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS"`
}

// CORSConfig holds the allowed-origin list applied to every request
type CORSConfig struct {
	Origins []string `mapstructure:"CORS_ORIGINS"`
}

// UpstreamConfig holds the endpoints of the three backing services
type UpstreamConfig struct {
	IdentityBaseURL  string `mapstructure:"IDENTITY_BASE_URL"`
	InferenceBaseURL string `mapstructure:"INFERENCE_BASE_URL"`
	WeatherBaseURL   string `mapstructure:"WEATHER_BASE_URL"`
	WeatherAPIKey    string `mapstructure:"WEATHER_API_KEY"`
	TimeoutSeconds   int    `mapstructure:"UPSTREAM_TIMEOUT_SECONDS"`
}

// PredictConfig holds limits for the image prediction route
type PredictConfig struct {
	MaxImageBytes int64 `mapstructure:"PREDICT_MAX_IMAGE_BYTES"`
}

// RedisConfig holds Redis connection settings. Redis is optional: when
// disabled the rate limiter and weather cache are switched off.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"REDIS_ENABLED"`
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
	PoolSize int    `mapstructure:"REDIS_POOL_SIZE"`
}

// RateLimitConfig holds configuration for the per-client rate limiter
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"RATE_LIMIT_ENABLED"`
	RequestsPerSecond float64 `mapstructure:"RATE_LIMIT_RPS"`
	WindowSeconds     int     `mapstructure:"RATE_LIMIT_WINDOW_SECONDS"`
}

// CacheConfig holds configuration for the optional weather cache
type CacheConfig struct {
	WeatherEnabled    bool `mapstructure:"WEATHER_CACHE_ENABLED"`
	WeatherTTLSeconds int  `mapstructure:"WEATHER_CACHE_TTL_SECONDS"`
}

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level          string `mapstructure:"LOG_LEVEL"`
	Format         string `mapstructure:"LOG_FORMAT"`
	OutputPath     string `mapstructure:"LOG_OUTPUT_PATH"`
	EnableSampling bool   `mapstructure:"LOG_ENABLE_SAMPLING"`
	ServiceName    string `mapstructure:"SERVICE_NAME"`
	ServiceVersion string `mapstructure:"SERVICE_VERSION"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (*Config, error) {
	// Set defaults first
	setDefaults()

	viper.AddConfigPath(path)
	viper.SetConfigName("app") // Look for app.env
	viper.SetConfigType("env")

	viper.AutomaticEnv() // Read from environment variables

	// Try to read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if we have env vars
	}

	var config Config

	// Manually populate config from viper
	config.App.Port = viper.GetString("PORT")
	config.App.ShutdownTimeoutSeconds = viper.GetInt("SHUTDOWN_TIMEOUT_SECONDS")

	config.CORS.Origins = splitOrigins(viper.GetString("CORS_ORIGINS"))

	config.Upstream.IdentityBaseURL = viper.GetString("IDENTITY_BASE_URL")
	config.Upstream.InferenceBaseURL = viper.GetString("INFERENCE_BASE_URL")
	config.Upstream.WeatherBaseURL = viper.GetString("WEATHER_BASE_URL")
	config.Upstream.WeatherAPIKey = viper.GetString("WEATHER_API_KEY")
	config.Upstream.TimeoutSeconds = viper.GetInt("UPSTREAM_TIMEOUT_SECONDS")

	config.Predict.MaxImageBytes = viper.GetInt64("PREDICT_MAX_IMAGE_BYTES")

	config.Redis.Enabled = viper.GetBool("REDIS_ENABLED")
	config.Redis.Host = viper.GetString("REDIS_HOST")
	config.Redis.Port = viper.GetString("REDIS_PORT")
	config.Redis.Password = viper.GetString("REDIS_PASSWORD")
	config.Redis.DB = viper.GetInt("REDIS_DB")
	config.Redis.PoolSize = viper.GetInt("REDIS_POOL_SIZE")

	config.RateLimit.Enabled = viper.GetBool("RATE_LIMIT_ENABLED")
	config.RateLimit.RequestsPerSecond = viper.GetFloat64("RATE_LIMIT_RPS")
	config.RateLimit.WindowSeconds = viper.GetInt("RATE_LIMIT_WINDOW_SECONDS")

	config.Cache.WeatherEnabled = viper.GetBool("WEATHER_CACHE_ENABLED")
	config.Cache.WeatherTTLSeconds = viper.GetInt("WEATHER_CACHE_TTL_SECONDS")

	config.Logger.Level = viper.GetString("LOG_LEVEL")
	config.Logger.Format = viper.GetString("LOG_FORMAT")
	config.Logger.OutputPath = viper.GetString("LOG_OUTPUT_PATH")
	config.Logger.EnableSampling = viper.GetBool("LOG_ENABLE_SAMPLING")
	config.Logger.ServiceName = viper.GetString("SERVICE_NAME")
	config.Logger.ServiceVersion = viper.GetString("SERVICE_VERSION")

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)

	// Single local development origin unless overridden
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173")

	viper.SetDefault("IDENTITY_BASE_URL", "http://localhost:8081")
	viper.SetDefault("INFERENCE_BASE_URL", "http://localhost:8082")
	viper.SetDefault("WEATHER_BASE_URL", "http://localhost:8083")
	viper.SetDefault("WEATHER_API_KEY", "")
	viper.SetDefault("UPSTREAM_TIMEOUT_SECONDS", 5)

	viper.SetDefault("PREDICT_MAX_IMAGE_BYTES", 10<<20)

	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_POOL_SIZE", 10)

	viper.SetDefault("RATE_LIMIT_ENABLED", false)
	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)

	viper.SetDefault("WEATHER_CACHE_ENABLED", false)
	viper.SetDefault("WEATHER_CACHE_TTL_SECONDS", 120)

	// Logger defaults
	env := viper.GetString("APP_ENV")
	if env == "production" {
		viper.SetDefault("LOG_LEVEL", "info")
		viper.SetDefault("LOG_FORMAT", "json")
		viper.SetDefault("LOG_ENABLE_SAMPLING", true)
	} else {
		viper.SetDefault("LOG_LEVEL", "debug")
		viper.SetDefault("LOG_FORMAT", "console")
		viper.SetDefault("LOG_ENABLE_SAMPLING", false)
	}
	viper.SetDefault("LOG_OUTPUT_PATH", "stdout")
	viper.SetDefault("SERVICE_NAME", "farm-gateway")
	viper.SetDefault("SERVICE_VERSION", "1.0.0")
}

// splitOrigins parses a comma-separated origin list, dropping empty entries.
func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// Validate checks that the loaded configuration is usable.
func (c *Config) Validate() error {
	if c.App.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if len(c.CORS.Origins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must contain at least one origin")
	}
	if c.Upstream.TimeoutSeconds <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT_SECONDS must be positive")
	}
	if c.Predict.MaxImageBytes <= 0 {
		return fmt.Errorf("PREDICT_MAX_IMAGE_BYTES must be positive")
	}
	if c.Redis.Enabled && c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST must be set when Redis is enabled")
	}
	if c.RateLimit.Enabled && !c.Redis.Enabled {
		return fmt.Errorf("rate limiting requires Redis to be enabled")
	}
	if c.Cache.WeatherEnabled && !c.Redis.Enabled {
		return fmt.Errorf("weather caching requires Redis to be enabled")
	}
	return nil
}

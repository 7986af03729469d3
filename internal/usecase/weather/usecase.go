package weather

import (
	"context"

	"go.uber.org/zap"

	"farm-gateway/internal/adapter/cache"
	domain "farm-gateway/internal/domain/weather"
	apperrors "farm-gateway/pkg/errors"
)

// Provider defines the interface for the external weather data source.
type Provider interface {
	Current(ctx context.Context, lat, lon float64) (*domain.Report, error)
}

// Request represents a current-weather query.
type Request struct {
	Lat float64
	Lon float64
}

// Usecase defines the interface for weather operations.
type Usecase interface {
	Current(ctx context.Context, in Request) (*domain.Report, error)
}

// Service implements the weather business logic. Coordinates are range-checked
// before any outbound call; the optional cache is consulted first when
// configured.
type Service struct {
	provider Provider
	cache    cache.WeatherCache // nil disables caching
	log      *zap.Logger
}

// New creates a new weather service. Pass a nil cache to disable caching.
func New(provider Provider, c cache.WeatherCache, log *zap.Logger) *Service {
	return &Service{provider: provider, cache: c, log: log}
}

// Current returns the normalized current-conditions record for a coordinate
// pair. No provider call is made for an out-of-range pair.
func (s *Service) Current(ctx context.Context, in Request) (*domain.Report, error) {
	if !domain.InRange(in.Lat, in.Lon) {
		s.log.Warn("weather request with out-of-range coordinates",
			zap.Float64("lat", in.Lat),
			zap.Float64("lon", in.Lon),
		)
		return nil, apperrors.NewBadRequestError("coordinates",
			"latitude must be in [-90, 90] and longitude in [-180, 180]")
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, in.Lat, in.Lon)
		if err != nil {
			s.log.Warn("weather cache get failed, falling back to provider", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	report, err := s.provider.Current(ctx, in.Lat, in.Lon)
	if err != nil {
		s.log.Error("weather provider call failed",
			zap.Float64("lat", in.Lat),
			zap.Float64("lon", in.Lon),
			zap.Error(err),
		)
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, in.Lat, in.Lon, report); err != nil {
			s.log.Warn("failed to cache weather report", zap.Error(err))
		}
	}

	return report, nil
}

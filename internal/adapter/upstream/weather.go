package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	domain "farm-gateway/internal/domain/weather"
	apperrors "farm-gateway/pkg/errors"

	"go.uber.org/zap"
)

// WeatherClient fetches current conditions from the external weather
// provider and normalizes them into the gateway's report shape.
type WeatherClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	timeout time.Duration
	log     *zap.Logger
}

// NewWeatherClient creates a new weather provider client.
func NewWeatherClient(baseURL, apiKey string, timeout time.Duration, log *zap.Logger) *WeatherClient {
	return &WeatherClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{},
		timeout: timeout,
		log:     log,
	}
}

// weatherPayload is the provider's wire shape.
type weatherPayload struct {
	Temp      float64 `json:"temp"`
	Humidity  float64 `json:"humidity"`
	WindSpeed float64 `json:"wind_speed"`
	Condition string  `json:"condition"`
	Forecast  []struct {
		Timestamp int64   `json:"ts"`
		Temp      float64 `json:"temp"`
		Condition string  `json:"condition"`
	} `json:"forecast"`
}

// Current fetches the current conditions for a coordinate pair. Callers are
// responsible for range-checking the coordinates before calling.
func (c *WeatherClient) Current(ctx context.Context, lat, lon float64) (*domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	if c.apiKey != "" {
		query.Set("appid", c.apiKey)
	}

	endpoint := c.baseURL + "/current?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build weather request", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("weather provider unreachable",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Error(err),
		)
		return nil, apperrors.NewUpstreamError("weather", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("weather provider returned unexpected status", zap.Int("status", resp.StatusCode))
		return nil, apperrors.NewUpstreamError("weather", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var payload weatherPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewUpstreamError("weather", fmt.Errorf("malformed response: %w", err))
	}

	report := &domain.Report{
		Temperature: payload.Temp,
		Humidity:    payload.Humidity,
		WindSpeed:   payload.WindSpeed,
		Condition:   payload.Condition,
	}
	for _, f := range payload.Forecast {
		report.Forecast = append(report.Forecast, domain.ForecastEntry{
			Timestamp:   time.Unix(f.Timestamp, 0).UTC(),
			Temperature: f.Temp,
			Condition:   f.Condition,
		})
	}
	return report, nil
}

package handler

import (
	"net/http"
	"strconv"
	"time"

	"farm-gateway/internal/usecase/weather"
	apperrors "farm-gateway/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WeatherHandler handles HTTP requests for weather lookups
type WeatherHandler struct {
	uc  weather.Usecase
	log *zap.Logger
}

// NewWeatherHandler creates a new WeatherHandler instance
func NewWeatherHandler(uc weather.Usecase, log *zap.Logger) *WeatherHandler {
	return &WeatherHandler{
		uc:  uc,
		log: log,
	}
}

// ForecastEntryResponse represents a single forecast point
type ForecastEntryResponse struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
	Condition   string    `json:"condition"`
}

// WeatherResponse represents the normalized weather record
type WeatherResponse struct {
	Temperature float64                 `json:"temperature"`
	Humidity    float64                 `json:"humidity,omitempty"`
	WindSpeed   float64                 `json:"windSpeed,omitempty"`
	Condition   string                  `json:"condition"`
	Forecast    []ForecastEntryResponse `json:"forecast,omitempty"`
}

// Current handles GET /weather?lat=&lon=. Both coordinates must be present
// and numeric; no provider call happens otherwise.
func (h *WeatherHandler) Current(c *gin.Context) {
	lat, ok := h.parseCoordinate(c, "lat")
	if !ok {
		return
	}
	lon, ok := h.parseCoordinate(c, "lon")
	if !ok {
		return
	}

	report, err := h.uc.Current(c.Request.Context(), weather.Request{Lat: lat, Lon: lon})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	resp := WeatherResponse{
		Temperature: report.Temperature,
		Humidity:    report.Humidity,
		WindSpeed:   report.WindSpeed,
		Condition:   report.Condition,
	}
	for _, f := range report.Forecast {
		resp.Forecast = append(resp.Forecast, ForecastEntryResponse{
			Timestamp:   f.Timestamp,
			Temperature: f.Temperature,
			Condition:   f.Condition,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// parseCoordinate reads one coordinate query parameter, writing a
// bad-request envelope when it is missing or not numeric.
func (h *WeatherHandler) parseCoordinate(c *gin.Context, name string) (float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   string(apperrors.KindBadRequest),
			Message: name + " query parameter is required",
		})
		return 0, false
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		h.log.Warn("non-numeric coordinate", zap.String(name, raw))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   string(apperrors.KindBadRequest),
			Message: name + " must be a number",
		})
		return 0, false
	}

	return value, true
}

package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "farm-gateway/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newWeatherTest(t *testing.T, apiKey string, handler http.HandlerFunc) *WeatherClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewWeatherClient(srv.URL, apiKey, 2*time.Second, zaptest.NewLogger(t))
}

func TestWeatherCurrentNormalizesProviderPayload(t *testing.T) {
	client := newWeatherTest(t, "secret", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/current", r.URL.Path)
		assert.Equal(t, "51.5", r.URL.Query().Get("lat"))
		assert.Equal(t, "-0.09", r.URL.Query().Get("lon"))
		assert.Equal(t, "secret", r.URL.Query().Get("appid"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"temp": 18,
			"humidity": 62,
			"wind_speed": 4.2,
			"condition": "cloudy",
			"forecast": [{"ts": 1735689600, "temp": 16, "condition": "rain"}]
		}`))
	})

	report, err := client.Current(context.Background(), 51.5, -0.09)
	require.NoError(t, err)

	assert.Equal(t, 18.0, report.Temperature)
	assert.Equal(t, 62.0, report.Humidity)
	assert.Equal(t, 4.2, report.WindSpeed)
	assert.Equal(t, "cloudy", report.Condition)
	require.Len(t, report.Forecast, 1)
	assert.Equal(t, "rain", report.Forecast[0].Condition)
	assert.Equal(t, time.Unix(1735689600, 0).UTC(), report.Forecast[0].Timestamp)
}

func TestWeatherCurrentOmitsAPIKeyWhenUnset(t *testing.T) {
	client := newWeatherTest(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("appid"))
		w.Write([]byte(`{"temp": 10, "condition": "sunny"}`))
	})

	report, err := client.Current(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "sunny", report.Condition)
	assert.Empty(t, report.Forecast)
}

func TestWeatherCurrentProviderFailures(t *testing.T) {
	t.Run("provider error status", func(t *testing.T) {
		client := newWeatherTest(t, "", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := client.Current(context.Background(), 51.5, -0.09)
		var upstream *apperrors.UpstreamError
		require.ErrorAs(t, err, &upstream)
		assert.Equal(t, "weather", upstream.Service)
	})

	t.Run("provider timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		t.Cleanup(srv.Close)
		client := NewWeatherClient(srv.URL, "", 100*time.Millisecond, zaptest.NewLogger(t))

		_, err := client.Current(context.Background(), 51.5, -0.09)
		var upstream *apperrors.UpstreamError
		assert.ErrorAs(t, err, &upstream)
	})

	t.Run("malformed payload", func(t *testing.T) {
		client := newWeatherTest(t, "", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		})

		_, err := client.Current(context.Background(), 51.5, -0.09)
		var upstream *apperrors.UpstreamError
		assert.ErrorAs(t, err, &upstream)
	})
}

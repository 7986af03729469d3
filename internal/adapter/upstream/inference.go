package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	domain "farm-gateway/internal/domain/prediction"
	apperrors "farm-gateway/pkg/errors"

	"go.uber.org/zap"
)

// InferenceClient forwards image payloads to the crop-health inference
// service and translates its response into the gateway's prediction shape.
// Single best-effort attempt per request; failures map to UpstreamError.
type InferenceClient struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     *zap.Logger
}

// NewInferenceClient creates a new inference service client.
func NewInferenceClient(baseURL string, timeout time.Duration, log *zap.Logger) *InferenceClient {
	return &InferenceClient{
		baseURL: baseURL,
		http:    &http.Client{},
		timeout: timeout,
		log:     log,
	}
}

// predictionPayload is the inference service's wire shape.
type predictionPayload struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Health     *struct {
		Healthy  float64 `json:"healthy"`
		Diseased float64 `json:"diseased"`
	} `json:"health"`
}

// Classify sends an image to the inference service and returns the
// structured prediction.
func (c *InferenceClient) Classify(ctx context.Context, image []byte, contentType string) (*domain.Prediction, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + "/predict"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(image))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build inference request", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("inference service unreachable", zap.Error(err))
		return nil, apperrors.NewUpstreamError("inference", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("inference service returned unexpected status", zap.Int("status", resp.StatusCode))
		return nil, apperrors.NewUpstreamError("inference", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var payload predictionPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewUpstreamError("inference", fmt.Errorf("malformed response: %w", err))
	}

	pred := &domain.Prediction{
		Label:      payload.Label,
		Confidence: payload.Confidence,
	}
	if payload.Health != nil {
		pred.Health = &domain.Health{
			HealthyPct:  payload.Health.Healthy,
			DiseasedPct: payload.Health.Diseased,
		}
	}
	return pred, nil
}

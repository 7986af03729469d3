package predict

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	domain "farm-gateway/internal/domain/prediction"
	apperrors "farm-gateway/pkg/errors"
)

// Classifier defines the interface for the external image-inference service.
type Classifier interface {
	Classify(ctx context.Context, image []byte, contentType string) (*domain.Prediction, error)
}

// Request represents an image prediction request.
type Request struct {
	Image       []byte
	ContentType string
}

// Response represents the prediction envelope returned to the caller.
type Response struct {
	Label      string
	Confidence float64
	Health     *domain.Health
}

// Usecase defines the interface for prediction operations.
type Usecase interface {
	Predict(ctx context.Context, in Request) (*Response, error)
}

// Service implements the prediction business logic: payload checks happen
// locally, then the image is handed off to the inference service as a single
// best-effort attempt.
type Service struct {
	classifier    Classifier
	maxImageBytes int64
	log           *zap.Logger
}

// New creates a new prediction service.
func New(classifier Classifier, maxImageBytes int64, log *zap.Logger) *Service {
	return &Service{
		classifier:    classifier,
		maxImageBytes: maxImageBytes,
		log:           log,
	}
}

// Predict validates the payload and forwards it to the inference service.
// Oversized and non-image payloads are rejected before the classifier is
// invoked.
func (s *Service) Predict(ctx context.Context, in Request) (*Response, error) {
	if len(in.Image) == 0 {
		s.log.Warn("predict rejected empty payload")
		return nil, apperrors.NewBadRequestError("image", "image payload is required")
	}

	if int64(len(in.Image)) > s.maxImageBytes {
		s.log.Warn("predict rejected oversized payload",
			zap.Int("size", len(in.Image)),
			zap.Int64("max", s.maxImageBytes),
		)
		return nil, apperrors.NewPayloadTooLargeError(s.maxImageBytes)
	}

	contentType := in.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(in.Image)
	}
	if !strings.HasPrefix(contentType, "image/") {
		s.log.Warn("predict rejected non-image payload", zap.String("content_type", contentType))
		return nil, apperrors.NewBadRequestError("image", "payload must be an image")
	}

	pred, err := s.classifier.Classify(ctx, in.Image, contentType)
	if err != nil {
		s.log.Error("inference call failed", zap.Error(err))
		return nil, err
	}

	return &Response{
		Label:      pred.Label,
		Confidence: pred.Confidence,
		Health:     pred.Health,
	}, nil
}

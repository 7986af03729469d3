package handler

import (
	"io"
	"net/http"
	"strings"

	"farm-gateway/internal/usecase/predict"
	apperrors "farm-gateway/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PredictHandler handles HTTP requests for image predictions
type PredictHandler struct {
	uc            predict.Usecase
	maxImageBytes int64
	log           *zap.Logger
}

// NewPredictHandler creates a new PredictHandler instance
func NewPredictHandler(uc predict.Usecase, maxImageBytes int64, log *zap.Logger) *PredictHandler {
	return &PredictHandler{
		uc:            uc,
		maxImageBytes: maxImageBytes,
		log:           log,
	}
}

// HealthResponse represents the healthy/diseased split for an image
type HealthResponse struct {
	Healthy  float64 `json:"healthy"`
	Diseased float64 `json:"diseased"`
}

// PredictionResponse represents the prediction envelope
type PredictionResponse struct {
	Label      string          `json:"label"`
	Confidence float64         `json:"confidence"`
	Health     *HealthResponse `json:"health,omitempty"`
}

// Predict handles POST /predict. The image arrives either as a multipart
// form field named "image" or as the raw request body.
func (h *PredictHandler) Predict(c *gin.Context) {
	image, contentType, err := h.readImage(c)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	resp, err := h.uc.Predict(c.Request.Context(), predict.Request{
		Image:       image,
		ContentType: contentType,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	out := PredictionResponse{
		Label:      resp.Label,
		Confidence: resp.Confidence,
	}
	if resp.Health != nil {
		out.Health = &HealthResponse{
			Healthy:  resp.Health.HealthyPct,
			Diseased: resp.Health.DiseasedPct,
		}
	}

	c.JSON(http.StatusOK, out)
}

// readImage extracts the image payload. Reads are capped one byte past the
// configured maximum so the usecase can distinguish "too large" from "at the
// limit" without buffering an unbounded body.
func (h *PredictHandler) readImage(c *gin.Context) ([]byte, string, error) {
	contentType := c.ContentType()

	if strings.HasPrefix(contentType, "multipart/form-data") {
		file, header, err := c.Request.FormFile("image")
		if err != nil {
			h.log.Warn("predict request missing image field", zap.Error(err))
			return nil, "", apperrors.NewBadRequestError("image", "multipart field 'image' is required")
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, h.maxImageBytes+1))
		if err != nil {
			return nil, "", apperrors.NewBadRequestError("image", "failed to read image payload")
		}
		return data, header.Header.Get("Content-Type"), nil
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, h.maxImageBytes+1))
	if err != nil {
		return nil, "", apperrors.NewBadRequestError("image", "failed to read request body")
	}
	return data, contentType, nil
}

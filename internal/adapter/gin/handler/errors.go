package handler

import (
	"errors"
	"net/http"

	apperrors "farm-gateway/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse represents the uniform error envelope. The error field is a
// machine-readable kind; frontends branch on it, not on the message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// writeError converts a usecase error into the uniform JSON error envelope.
// Upstream failures are reported with an opaque message so backing-service
// internals never reach the browser.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	var kinder apperrors.Kinder
	if !errors.As(err, &kinder) {
		log.Error("unclassified handler error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   string(apperrors.KindInternal),
			Message: "An internal error occurred",
		})
		return
	}

	message := err.Error()
	if kinder.Kind() == apperrors.KindUpstream {
		// Opaque message: the wrapped cause stays in the logs
		message = "a backing service is currently unavailable"
	}

	c.JSON(kinder.HTTPStatus(), ErrorResponse{
		Error:   string(kinder.Kind()),
		Message: message,
	})
}

// internal/common/errors/handler.go
package errors

import (
	"errors"
	"net/http"
	"time"
)

// Logger is the minimal logging surface the error handler needs.
type Logger interface {
	Error(msg string, fields map[string]interface{})
}

// Handler normalizes arbitrary errors into StandardError values and maps
// them onto HTTP responses.
type Handler struct {
	logger Logger
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Normalize ensures we always have a StandardError.
func (h *Handler) Normalize(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternalError,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// HTTPStatus maps an error code to the status the API surfaces.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInputValidationFailed, ErrCodeInvalidURLFormat:
		return http.StatusBadRequest
	case ErrCodeSessionNotFound:
		return http.StatusNotFound
	case ErrCodeSessionLoadFailed, ErrCodeSessionSaveFailed:
		return http.StatusServiceUnavailable
	case ErrCodeExtractionTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Log records a normalized error with its code and retryability.
func (h *Handler) Log(context string, err error) *StandardError {
	stdErr := h.Normalize(err)
	h.logger.Error(context, map[string]interface{}{
		"errorCode": string(stdErr.Code),
		"details":   stdErr.Details,
		"retryable": stdErr.Retryable,
	})
	return stdErr
}

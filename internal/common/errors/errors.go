// Package errors provides standardized error handling for the onboarding
// chatbot service.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidURLFormat      ErrorCode = "INVALID_URL_FORMAT"
	ErrCodeExtractionFailed      ErrorCode = "EXTRACTION_FAILED"
	ErrCodeExtractionTimeout     ErrorCode = "EXTRACTION_TIMEOUT"
	ErrCodeExtractionEmptyResult ErrorCode = "EXTRACTION_EMPTY_RESULT"
	ErrCodeUnknownInterviewStep  ErrorCode = "UNKNOWN_INTERVIEW_STEP"

	ErrCodeSessionLoadFailed ErrorCode = "SESSION_LOAD_FAILED"
	ErrCodeSessionSaveFailed ErrorCode = "SESSION_SAVE_FAILED"
	ErrCodeSessionNotFound   ErrorCode = "SESSION_NOT_FOUND"

	ErrCodeInputValidationFailed ErrorCode = "INPUT_VALIDATION_FAILED"
	ErrCodeInternalError         ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewInvalidURLFormatError creates a non-retryable URL validation error.
func NewInvalidURLFormatError(url string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidURLFormat,
		Message:   "URL failed structural validation",
		Details:   fmt.Sprintf("url: %s", url),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewExtractionFailedError creates a retryable extraction error carrying the
// collaborator's error string.
func NewExtractionFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeExtractionFailed,
		Message:   "Profile extraction failed",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewExtractionTimeoutError creates a retryable extraction timeout error.
func NewExtractionTimeoutError(url string) *StandardError {
	return &StandardError{
		Code:      ErrCodeExtractionTimeout,
		Message:   "Profile extraction timed out",
		Details:   fmt.Sprintf("url: %s", url),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewExtractionEmptyResultError marks a nameless or empty candidate, which
// counts as an extraction failure.
func NewExtractionEmptyResultError(url string) *StandardError {
	return &StandardError{
		Code:      ErrCodeExtractionEmptyResult,
		Message:   "Extraction returned an empty profile",
		Details:   fmt.Sprintf("url: %s", url),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownInterviewStepError marks internal state corruption: an
// unrecognized interview step. This is a state-machine defect, not user
// error.
func NewUnknownInterviewStepError(step string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownInterviewStep,
		Message:   "Unrecognized interview step",
		Details:   fmt.Sprintf("currentQuestion: %s", step),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionLoadFailedError creates a retryable session store error.
func NewSessionLoadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionLoadFailed,
		Message:   "Failed to load conversation state",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionSaveFailedError creates a retryable session store error.
func NewSessionSaveFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionSaveFailed,
		Message:   "Failed to persist conversation state",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInputValidationFailedError creates a non-retryable request validation
// error.
func NewInputValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInputValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternalError,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

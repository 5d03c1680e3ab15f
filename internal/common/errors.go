package common

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Ingestion error taxonomy. Every error is terminal for a single ingestion
// call; nothing is retried internally.
var (
	ErrNoFileUploaded        = errors.New("no file uploaded")
	ErrUnsupportedFormat     = errors.New("unsupported file format")
	ErrExtractionFailed      = errors.New("text extraction failed")
	ErrNoExtractableText     = errors.New("no extractable text found in file")
	ErrMissingCredential     = errors.New("api key is not configured")
	ErrUpstream              = errors.New("upstream request failed")
	ErrUpstreamTimeout       = errors.New("upstream request timed out")
	ErrEmptyUpstreamResponse = errors.New("upstream returned an empty response")
	ErrMalformedUpstreamJSON = errors.New("upstream returned malformed json")
)

// NewAppError builds an AppError wrapping cause.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus maps a pipeline error to the status class the caller should
// see: 4xx when the fault is attributable to the input, 5xx when it lies
// with the system or an upstream dependency.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNoFileUploaded),
		errors.Is(err, ErrUnsupportedFormat),
		errors.Is(err, ErrNoExtractableText):
		return http.StatusBadRequest
	case errors.Is(err, ErrUpstream), errors.Is(err, ErrUpstreamTimeout):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

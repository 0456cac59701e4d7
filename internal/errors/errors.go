// Package errors defines custom error types for better error handling and debugging.
// APIError carries a type classification that the HTTP layer maps to a status code.
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/amaumene/torrentfind/pkg/torrentsearch/models"
)

// APIError represents errors returned by the HTTP API
type APIError struct {
	Type    string
	Message string
	Cause   error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// Error type constants
const (
	ErrorTypeConfigurationInvalid = "CONFIGURATION_INVALID"
	ErrorTypeInvalidQuery         = "INVALID_QUERY"
	ErrorTypeUnknownProvider      = "UNKNOWN_PROVIDER"
	ErrorTypeUpstreamFailure      = "UPSTREAM_FAILURE"
	ErrorTypeTimeout              = "TIMEOUT"
	ErrorTypeInternal             = "INTERNAL"
)

// NewAPIError creates a new APIError
func NewAPIError(errorType, message string, cause error) *APIError {
	return &APIError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NewConfigurationError creates a configuration-related error
func NewConfigurationError(message string, cause error) *APIError {
	return NewAPIError(ErrorTypeConfigurationInvalid, message, cause)
}

// NewInvalidQueryError creates an error for a rejected search term
func NewInvalidQueryError(message string) *APIError {
	return NewAPIError(ErrorTypeInvalidQuery, message, nil)
}

// NewTimeoutError creates a timeout error
func NewTimeoutError(operation string, cause error) *APIError {
	return NewAPIError(ErrorTypeTimeout, fmt.Sprintf("Operation timeout: %s", operation), cause)
}

// FromSearchError classifies an error returned by the search service.
func FromSearchError(err error) *APIError {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}

	var perr *models.ProviderError
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return NewTimeoutError("search", err)
	case stderrors.As(err, &perr) && perr.Kind == models.ErrorKindUnknownProvider:
		return NewAPIError(ErrorTypeUnknownProvider, perr.Message, err)
	case stderrors.As(err, &perr) && perr.Kind == models.ErrorKindUpstream:
		return NewAPIError(ErrorTypeUpstreamFailure, fmt.Sprintf("provider %s failed", perr.Provider), err)
	default:
		return NewAPIError(ErrorTypeInternal, "internal error", err)
	}
}

// HTTPStatus returns the response status for an error type
func (e *APIError) HTTPStatus() int {
	switch e.Type {
	case ErrorTypeInvalidQuery:
		return http.StatusBadRequest
	case ErrorTypeUnknownProvider:
		return http.StatusNotFound
	case ErrorTypeUpstreamFailure:
		return http.StatusBadGateway
	case ErrorTypeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

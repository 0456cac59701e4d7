package models

import (
	"errors"
	"fmt"
)

// Error kinds
const (
	ErrorKindUpstream        = "UPSTREAM"
	ErrorKindUnknownProvider = "UNKNOWN_PROVIDER"
)

// ProviderError represents a failed provider call
type ProviderError struct {
	Kind     string
	Provider ProviderKind
	Message  string
	Cause    error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s [%s]: %s (caused by: %v)", e.Kind, e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Kind, e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// NewUpstreamError wraps a transport or parse failure from a raw client
func NewUpstreamError(provider ProviderKind, cause error) *ProviderError {
	return &ProviderError{
		Kind:     ErrorKindUpstream,
		Provider: provider,
		Message:  "upstream request failed",
		Cause:    cause,
	}
}

// NewUnknownProviderError reports a provider kind with no registered adapter
func NewUnknownProviderError(provider ProviderKind) *ProviderError {
	return &ProviderError{
		Kind:     ErrorKindUnknownProvider,
		Provider: provider,
		Message:  fmt.Sprintf("provider %s not found", provider),
	}
}

// IsUpstream reports whether err is an upstream ProviderError
func IsUpstream(err error) bool {
	var perr *ProviderError
	return errors.As(err, &perr) && perr.Kind == ErrorKindUpstream
}

// IsUnknownProvider reports whether err is an unknown-provider ProviderError
func IsUnknownProvider(err error) bool {
	var perr *ProviderError
	return errors.As(err, &perr) && perr.Kind == ErrorKindUnknownProvider
}

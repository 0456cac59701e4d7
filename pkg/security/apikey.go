// Package security validates and compares the API key guarding the HTTP API.
package security

import (
	"crypto/subtle"
	"regexp"
	"strings"
)

var (
	validKeyPattern  = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	unsafeKeyPattern = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
)

// APIKeyValidator checks key format and compares keys in constant time
type APIKeyValidator struct {
	minLength int
	maxLength int
}

func NewAPIKeyValidator() *APIKeyValidator {
	return &APIKeyValidator{
		minLength: 8,
		maxLength: 128,
	}
}

// ValidateAPIKey validates API key format and length
func (v *APIKeyValidator) ValidateAPIKey(apiKey string) bool {
	if len(apiKey) < v.minLength || len(apiKey) > v.maxLength {
		return false
	}
	return validKeyPattern.MatchString(apiKey)
}

// SanitizeAPIKey trims whitespace and strips characters unsafe in headers
func (v *APIKeyValidator) SanitizeAPIKey(apiKey string) string {
	return unsafeKeyPattern.ReplaceAllString(strings.TrimSpace(apiKey), "")
}

// MaskAPIKey hides all but the first and last three characters
func (v *APIKeyValidator) MaskAPIKey(apiKey string) string {
	if len(apiKey) == 0 {
		return "[empty]"
	}
	if len(apiKey) <= 8 {
		return "[***]"
	}
	return apiKey[:3] + "..." + apiKey[len(apiKey)-3:]
}

// SecureCompare reports whether two keys are equal in constant time
func (v *APIKeyValidator) SecureCompare(key1, key2 string) bool {
	return subtle.ConstantTimeCompare([]byte(key1), []byte(key2)) == 1
}

// Package constants defines timeout values used throughout the application.
package constants

import "time"

// Timeout constants for various operations
const (
	// Upstream HTTP client timeout
	HTTPTimeout = 30 * time.Second

	// Deadline for a whole search request, fan-out included
	RequestTimeout = 45 * time.Second

	// Grace period for in-flight requests on shutdown
	ShutdownTimeout = 10 * time.Second

	// HTTP server header read timeout
	ReadHeaderTimeout = 10 * time.Second
)

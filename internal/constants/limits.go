// Package constants defines numerical limits.
package constants

// Limits for request validation and logging
const (
	// Longest search term accepted by the HTTP API
	MaxQueryLength = 256

	// Number of merged results to log at debug level
	MaxResultsToLog = 5

	// Upper bound for concurrent 1337x detail page fetches
	MaxDetailConcurrency = 16
)

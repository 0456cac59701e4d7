// Package constants defines application-wide constants and default values.
package constants

const (
	// Application metadata
	AppName    = "torrentfind"
	AppVersion = "1.0.0"

	// Default configuration values
	DefaultPort      = "5000"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"

	// Rate limiting, per provider client
	ProviderRateLimit = 5 // requests per second
	ProviderRateBurst = 2 // burst capacity
)

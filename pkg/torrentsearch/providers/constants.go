// Package providers contains the raw provider clients and the adapters that
// normalize their responses into torrent records.
package providers

import "time"

// Default upstream locations and limits
const (
	DefaultYTSBaseURL         = "https://yts.mx"
	DefaultLeetxBaseURL       = "https://1337x.to"
	DefaultApiBayBaseURL      = "https://apibay.org"
	DefaultTorrentsCSVBaseURL = "https://torrents-csv.com"

	// DefaultYTSLimit is the page size requested from list_movies
	DefaultYTSLimit = 50
	// DefaultTorrentsCSVSize is the page size requested from torrents-csv
	DefaultTorrentsCSVSize = 100
	// DefaultLeetxDetailConcurrency bounds parallel 1337x detail page fetches
	DefaultLeetxDetailConcurrency = 4

	defaultTimeout = 30 * time.Second
)

// Rate limiting, requests per second and burst
const (
	defaultRateLimit = 5
	defaultRateBurst = 2
)

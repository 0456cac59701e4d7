package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/amaumene/torrentfind/pkg/httputil"
	"github.com/amaumene/torrentfind/pkg/logger"
	"github.com/amaumene/torrentfind/pkg/ratelimiter"
	"github.com/amaumene/torrentfind/pkg/torrentsearch/models"
)

const torrentsCSVSearchEndpoint = "/service/search"

// TorrentsCSVClient queries the torrents-csv search service.
type TorrentsCSVClient struct {
	baseURL     string
	size        int
	httpClient  *http.Client
	rateLimiter ratelimiter.RateLimiter
	logger      logger.Logger
}

type torrentsCSVResponse struct {
	Torrents []torrentsCSVTorrent `json:"torrents"`
	Next     int64                `json:"next"`
}

type torrentsCSVTorrent struct {
	RowID       int64  `json:"rowid"`
	InfoHash    string `json:"infohash"`
	Name        string `json:"name"`
	SizeBytes   int64  `json:"size_bytes"`
	CreatedUnix int64  `json:"created_unix"`
	Seeders     *int64 `json:"seeders"`
	Leechers    *int64 `json:"leechers"`
	Completed   *int64 `json:"completed"`
}

func NewTorrentsCSVClient(baseURL string, size int, httpClient *http.Client, log logger.Logger) *TorrentsCSVClient {
	if baseURL == "" {
		baseURL = DefaultTorrentsCSVBaseURL
	}
	if size <= 0 {
		size = DefaultTorrentsCSVSize
	}
	if httpClient == nil {
		httpClient = httputil.NewHTTPClient(defaultTimeout)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &TorrentsCSVClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		size:        size,
		httpClient:  httpClient,
		rateLimiter: ratelimiter.NewTokenBucket(defaultRateBurst, defaultRateLimit),
		logger:      log,
	}
}

func (c *TorrentsCSVClient) buildAPIURL(term string) string {
	return fmt.Sprintf("%s%s?q=%s&size=%d", c.baseURL, torrentsCSVSearchEndpoint, url.QueryEscape(term), c.size)
}

// SearchEntries returns the first page of matches for term.
func (c *TorrentsCSVClient) SearchEntries(ctx context.Context, term string) ([]models.FreeTextEntry, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	apiURL := c.buildAPIURL(term)
	c.logger.Debugf("[TORRENTSCSV] API call - URL: %s", apiURL)

	resp, err := httputil.Get(ctx, c.httpClient, apiURL)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	var response torrentsCSVResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	entries := make([]models.FreeTextEntry, 0, len(response.Torrents))
	for _, t := range response.Torrents {
		entry := models.FreeTextEntry{
			Name:     t.Name,
			Seeders:  optionalCount(t.Seeders),
			Leechers: optionalCount(t.Leechers),
		}
		if magnet, err := MagnetURI(t.InfoHash, t.Name); err == nil {
			entry.Magnet = models.String(magnet)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Ping checks that the site answers.
func (c *TorrentsCSVClient) Ping(ctx context.Context) error {
	return ping(ctx, c.httpClient, c.rateLimiter, c.baseURL+"/")
}

// SetRateLimiter replaces the default request pacing.
func (c *TorrentsCSVClient) SetRateLimiter(rl ratelimiter.RateLimiter) {
	if rl != nil {
		c.rateLimiter = rl
	}
}

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

const (
	apibaySearchEndpoint = "/q.php"
	apibayVideoCategory  = "video"
	apibayNoResults      = "No results returned"
	apibayZeroHash       = "0000000000000000000000000000000000000000"
)

// ApiBayClient queries the apibay JSON API.
type ApiBayClient struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter ratelimiter.RateLimiter
	logger      logger.Logger
}

// apibayTorrent mirrors the API, which encodes every number as a string.
type apibayTorrent struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	InfoHash string `json:"info_hash"`
	Seeders  string `json:"seeders"`
	Leechers string `json:"leechers"`
	Size     string `json:"size"`
	Category string `json:"category"`
	IMDB     string `json:"imdb"`
}

func NewApiBayClient(baseURL string, httpClient *http.Client, log logger.Logger) *ApiBayClient {
	if baseURL == "" {
		baseURL = DefaultApiBayBaseURL
	}
	if httpClient == nil {
		httpClient = httputil.NewHTTPClient(defaultTimeout)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ApiBayClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  httpClient,
		rateLimiter: ratelimiter.NewTokenBucket(defaultRateBurst, defaultRateLimit),
		logger:      log,
	}
}

func (c *ApiBayClient) buildAPIURL(term string) string {
	return fmt.Sprintf("%s%s?q=%s&cat=%s",
		c.baseURL, apibaySearchEndpoint, url.QueryEscape(term), apibayVideoCategory)
}

// SearchEntries returns the video torrents apibay reports for term.
func (c *ApiBayClient) SearchEntries(ctx context.Context, term string) ([]models.FreeTextEntry, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	apiURL := c.buildAPIURL(term)
	c.logger.Debugf("[APIBAY] API call - URL: %s", apiURL)

	resp, err := httputil.Get(ctx, c.httpClient, apiURL)
	if err != nil {
		return nil, fmt.Errorf("failed to search ApiBay: %w", err)
	}
	defer resp.Body.Close()

	var torrents []apibayTorrent
	if err := json.NewDecoder(resp.Body).Decode(&torrents); err != nil {
		return nil, fmt.Errorf("failed to decode ApiBay response: %w", err)
	}

	entries := make([]models.FreeTextEntry, 0, len(torrents))
	for _, t := range torrents {
		// the API answers an empty search with a single placeholder row
		if t.ID == "0" || t.InfoHash == apibayZeroHash || t.Name == apibayNoResults {
			continue
		}
		entries = append(entries, c.toEntry(t))
	}
	return entries, nil
}

func (c *ApiBayClient) toEntry(t apibayTorrent) models.FreeTextEntry {
	entry := models.FreeTextEntry{
		Name:     t.Name,
		Seeders:  parseCount(t.Seeders),
		Leechers: parseCount(t.Leechers),
	}
	if magnet, err := MagnetURI(t.InfoHash, t.Name); err == nil {
		entry.Magnet = models.String(magnet)
	} else {
		c.logger.Debugf("[APIBAY] invalid info hash for %q: %v", t.Name, err)
	}
	return entry
}

// Ping checks that the site answers.
func (c *ApiBayClient) Ping(ctx context.Context) error {
	return ping(ctx, c.httpClient, c.rateLimiter, c.baseURL+"/")
}

// SetRateLimiter replaces the default request pacing.
func (c *ApiBayClient) SetRateLimiter(rl ratelimiter.RateLimiter) {
	if rl != nil {
		c.rateLimiter = rl
	}
}

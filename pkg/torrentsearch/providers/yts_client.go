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

const ytsListEndpoint = "/api/v2/list_movies.json"

// YTSClient talks to the YTS list_movies API.
type YTSClient struct {
	baseURL     string
	limit       int
	httpClient  *http.Client
	rateLimiter ratelimiter.RateLimiter
	logger      logger.Logger
}

type ytsResponse struct {
	Status        string `json:"status"`
	StatusMessage string `json:"status_message"`
	Data          struct {
		MovieCount int        `json:"movie_count"`
		Movies     []ytsMovie `json:"movies"`
	} `json:"data"`
}

type ytsMovie struct {
	ID       int          `json:"id"`
	ImdbCode string       `json:"imdb_code"`
	Title    string       `json:"title"`
	Year     int          `json:"year"`
	Torrents []ytsTorrent `json:"torrents"`
}

type ytsTorrent struct {
	Hash      string `json:"hash"`
	Quality   string `json:"quality"`
	Type      string `json:"type"`
	Seeds     *int64 `json:"seeds"`
	Peers     *int64 `json:"peers"`
	SizeBytes int64  `json:"size_bytes"`
}

func NewYTSClient(baseURL string, limit int, httpClient *http.Client, log logger.Logger) *YTSClient {
	if baseURL == "" {
		baseURL = DefaultYTSBaseURL
	}
	if limit <= 0 {
		limit = DefaultYTSLimit
	}
	if httpClient == nil {
		httpClient = httputil.NewHTTPClient(defaultTimeout)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &YTSClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		limit:       limit,
		httpClient:  httpClient,
		rateLimiter: ratelimiter.NewTokenBucket(defaultRateBurst, defaultRateLimit),
		logger:      log,
	}
}

// QueryTerm applies the YTS convention of joining words with '+'.
func QueryTerm(term string) string {
	words := strings.Fields(term)
	for i, w := range words {
		words[i] = url.QueryEscape(w)
	}
	return strings.Join(words, "+")
}

func (c *YTSClient) buildURL(term string) string {
	return fmt.Sprintf("%s%s?query_term=%s&limit=%d", c.baseURL, ytsListEndpoint, QueryTerm(term), c.limit)
}

// ListMovies returns every movie the API reports for term.
func (c *YTSClient) ListMovies(ctx context.Context, term string) ([]models.MovieListing, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	apiURL := c.buildURL(term)
	c.logger.Debugf("[YTS] API call - URL: %s", apiURL)

	resp, err := httputil.Get(ctx, c.httpClient, apiURL)
	if err != nil {
		return nil, fmt.Errorf("failed to search YTS: %w", err)
	}
	defer resp.Body.Close()

	var response ytsResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode YTS response: %w", err)
	}

	if response.Status != "ok" {
		return nil, fmt.Errorf("YTS API error: %s", response.StatusMessage)
	}

	listings := make([]models.MovieListing, 0, len(response.Data.Movies))
	for _, movie := range response.Data.Movies {
		listings = append(listings, convertYTSMovie(movie))
	}

	c.logger.Debugf("[YTS] API call completed - %d movies for query: %s", len(listings), term)
	return listings, nil
}

func convertYTSMovie(movie ytsMovie) models.MovieListing {
	variants := make([]models.TorrentVariant, 0, len(movie.Torrents))
	for _, t := range movie.Torrents {
		variants = append(variants, models.TorrentVariant{
			Hash:      t.Hash,
			Quality:   t.Quality,
			Type:      t.Type,
			Seeds:     countOrZero(t.Seeds),
			Peers:     optionalCount(t.Peers),
			SizeBytes: t.SizeBytes,
		})
	}

	return models.MovieListing{
		ID:       movie.ImdbCode,
		Title:    movie.Title,
		Year:     movie.Year,
		Torrents: variants,
	}
}

// Ping checks that the site answers.
func (c *YTSClient) Ping(ctx context.Context) error {
	return ping(ctx, c.httpClient, c.rateLimiter, c.baseURL+"/")
}

// SetRateLimiter replaces the default request pacing.
func (c *YTSClient) SetRateLimiter(rl ratelimiter.RateLimiter) {
	if rl != nil {
		c.rateLimiter = rl
	}
}

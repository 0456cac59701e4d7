package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/amaumene/torrentfind/pkg/httputil"
	"github.com/amaumene/torrentfind/pkg/logger"
	"github.com/amaumene/torrentfind/pkg/ratelimiter"
	"github.com/amaumene/torrentfind/pkg/torrentsearch/models"
)

// LeetxClient scrapes 1337x search and detail pages.
//
// The search page carries name, seeds and leeches; the magnet only appears on
// each torrent's detail page. A detail page that fails to load leaves the
// entry without a magnet rather than failing the search.
type LeetxClient struct {
	baseURL     string
	concurrency int
	httpClient  *http.Client
	rateLimiter ratelimiter.RateLimiter
	logger      logger.Logger
}

type leetxRow struct {
	entry     models.FreeTextEntry
	detailURL string
}

func NewLeetxClient(baseURL string, concurrency int, httpClient *http.Client, log logger.Logger) *LeetxClient {
	if baseURL == "" {
		baseURL = DefaultLeetxBaseURL
	}
	if concurrency <= 0 {
		concurrency = DefaultLeetxDetailConcurrency
	}
	if httpClient == nil {
		httpClient = httputil.NewHTTPClient(defaultTimeout)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &LeetxClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		concurrency: concurrency,
		httpClient:  httpClient,
		rateLimiter: ratelimiter.NewTokenBucket(defaultRateBurst, defaultRateLimit),
		logger:      log,
	}
}

func (c *LeetxClient) buildSearchURL(term string) string {
	return fmt.Sprintf("%s/search/%s/1/", c.baseURL, url.PathEscape(term))
}

// SearchEntries returns the first result page for term.
func (c *LeetxClient) SearchEntries(ctx context.Context, term string) ([]models.FreeTextEntry, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	searchURL := c.buildSearchURL(term)
	c.logger.Debugf("[1337x] search page - URL: %s", searchURL)

	doc, err := c.fetchDocument(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("failed to search 1337x: %w", err)
	}

	rows := c.parseSearchRows(doc)
	if err := c.fillMagnets(ctx, rows); err != nil {
		return nil, err
	}

	entries := make([]models.FreeTextEntry, len(rows))
	for i, row := range rows {
		entries[i] = row.entry
	}
	return entries, nil
}

func (c *LeetxClient) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	resp, err := httputil.Get(ctx, c.httpClient, pageURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return doc, nil
}

func (c *LeetxClient) parseSearchRows(doc *goquery.Document) []leetxRow {
	rows := make([]leetxRow, 0)

	doc.Find(".table-list tbody tr").Each(func(i int, s *goquery.Selection) {
		// first anchor in the name cell is the category icon
		titleLink := s.Find("td.name a").Last()
		name := strings.TrimSpace(titleLink.Text())

		row := leetxRow{
			entry: models.FreeTextEntry{
				Name:     name,
				Seeders:  parseCount(s.Find("td.seeds").Text()),
				Leechers: parseCount(s.Find("td.leeches").Text()),
			},
		}
		if href, ok := titleLink.Attr("href"); ok && href != "" {
			row.detailURL = c.resolveURL(href)
		}
		rows = append(rows, row)
	})

	return rows
}

func (c *LeetxClient) resolveURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return c.baseURL + "/" + strings.TrimLeft(href, "/")
}

// fillMagnets fetches detail pages with bounded concurrency.
func (c *LeetxClient) fillMagnets(ctx context.Context, rows []leetxRow) error {
	var g errgroup.Group
	g.SetLimit(c.concurrency)

	var mu sync.Mutex
	failed := 0

	for i := range rows {
		if rows[i].detailURL == "" {
			continue
		}
		g.Go(func() error {
			magnet, err := c.fetchMagnet(ctx, rows[i].detailURL)
			if err != nil || magnet == "" {
				mu.Lock()
				failed++
				mu.Unlock()
				c.logger.Debugf("[1337x] no magnet for %s: %v", rows[i].detailURL, err)
				return nil
			}
			rows[i].entry.Magnet = models.String(magnet)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	if failed > 0 {
		c.logger.Warnf("[1337x] %d of %d detail pages without magnet", failed, len(rows))
	}
	return nil
}

func (c *LeetxClient) fetchMagnet(ctx context.Context, detailURL string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", err
	}

	doc, err := c.fetchDocument(ctx, detailURL)
	if err != nil {
		return "", err
	}

	var magnet string
	doc.Find("a[href^='magnet:']").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if href, ok := s.Attr("href"); ok {
			magnet = strings.TrimSpace(href)
			return false
		}
		return true
	})
	return magnet, nil
}

// Ping checks that the site answers.
func (c *LeetxClient) Ping(ctx context.Context) error {
	return ping(ctx, c.httpClient, c.rateLimiter, c.baseURL+"/")
}

// SetRateLimiter replaces the default request pacing. Detail page requests
// are paced by the same limiter as the search page.
func (c *LeetxClient) SetRateLimiter(rl ratelimiter.RateLimiter) {
	if rl != nil {
		c.rateLimiter = rl
	}
}

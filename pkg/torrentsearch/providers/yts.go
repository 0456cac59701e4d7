package providers

import (
	"context"
	"strings"

	"github.com/amaumene/torrentfind/pkg/logger"
	"github.com/amaumene/torrentfind/pkg/torrentsearch/models"
	"github.com/amaumene/torrentfind/pkg/torrentsearch/resolver"
)

// YTSAdapter normalizes movie listings from an identifier-matching index.
// Only the first listing whose ID equals the query's match key contributes
// records; everything else the index returned is discarded.
type YTSAdapter struct {
	client      MovieClient
	magnetLinks bool
	logger      logger.Logger
}

// NewYTSAdapter creates an adapter over client. When magnetLinks is set,
// record identifiers are magnet URIs instead of bare info hashes.
func NewYTSAdapter(client MovieClient, magnetLinks bool, log logger.Logger) *YTSAdapter {
	if log == nil {
		log = logger.Nop()
	}
	return &YTSAdapter{
		client:      client,
		magnetLinks: magnetLinks,
		logger:      log,
	}
}

func (a *YTSAdapter) Kind() models.ProviderKind {
	return models.ProviderYTS
}

func (a *YTSAdapter) Health(ctx context.Context) error {
	return healthOf(ctx, a.client)
}

// Fetch queries the index and returns the variants of the matching listing.
// No matching listing is an empty success, not an error.
func (a *YTSAdapter) Fetch(ctx context.Context, query models.ProviderQuery) ([]models.TorrentRecord, error) {
	listings, err := a.client.ListMovies(ctx, query.Term)
	if err != nil {
		return nil, models.NewUpstreamError(models.ProviderYTS, err)
	}

	key := query.MatchKey()
	listing := selectListing(listings, key)
	if listing == nil {
		a.logger.Debugf("[YTS] no listing matches %q among %d results", key, len(listings))
		return []models.TorrentRecord{}, nil
	}

	records := make([]models.TorrentRecord, 0, len(listing.Torrents))
	for _, variant := range listing.Torrents {
		record := a.toRecord(listing, variant)
		if !record.Identifiable() {
			a.logger.Debugf("[YTS] dropping unidentifiable variant of %s", listing.ID)
			continue
		}
		records = append(records, record)
	}

	a.logger.Infof("[YTS] %s matched %q with %d torrents", listing.ID, listing.Title, len(records))
	return records, nil
}

// selectListing returns the first listing whose ID equals key exactly.
func selectListing(listings []models.MovieListing, key string) *models.MovieListing {
	for i := range listings {
		if listings[i].ID == key {
			return &listings[i]
		}
	}
	return nil
}

func (a *YTSAdapter) toRecord(listing *models.MovieListing, variant models.TorrentVariant) models.TorrentRecord {
	return models.TorrentRecord{
		Identifier:   a.identifier(listing, variant),
		DisplayName:  strings.TrimSpace(listing.Title + " " + variant.Quality),
		SeederCount:  variant.Seeds,
		LeecherCount: resolver.ResolveLeecherCount(variant.Seeds, variant.Peers),
		InfoHash:     NormalizeHash(variant.Hash),
		Category:     variant.Quality,
		Source:       models.ProviderYTS,
	}
}

func (a *YTSAdapter) identifier(listing *models.MovieListing, variant models.TorrentVariant) string {
	if !a.magnetLinks || variant.Hash == "" {
		return variant.Hash
	}

	uri, err := MagnetURI(variant.Hash, listing.Title)
	if err != nil {
		a.logger.Debugf("[YTS] keeping raw hash for %s: %v", listing.ID, err)
		return variant.Hash
	}
	return uri
}

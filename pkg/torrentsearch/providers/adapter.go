package providers

import (
	"context"

	"github.com/amaumene/torrentfind/pkg/torrentsearch/models"
)

// Adapter converts one provider's raw response into torrent records.
type Adapter interface {
	Kind() models.ProviderKind
	Fetch(ctx context.Context, query models.ProviderQuery) ([]models.TorrentRecord, error)
}

// MovieClient queries an identifier-matching index for movie listings.
type MovieClient interface {
	ListMovies(ctx context.Context, term string) ([]models.MovieListing, error)
}

// EntryClient queries a free-text index for torrent-granular entries.
type EntryClient interface {
	SearchEntries(ctx context.Context, term string) ([]models.FreeTextEntry, error)
}

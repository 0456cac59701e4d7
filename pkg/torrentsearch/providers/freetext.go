package providers

import (
	"context"

	"github.com/amaumene/torrentfind/pkg/logger"
	"github.com/amaumene/torrentfind/pkg/torrentsearch/models"
	"github.com/amaumene/torrentfind/pkg/torrentsearch/resolver"
	"github.com/cehbz/torrentname"
)

// FreeTextAdapter maps torrent-granular entries one to one onto records.
// The provider's own relevance filtering is trusted as is.
type FreeTextAdapter struct {
	kind   models.ProviderKind
	client EntryClient
	logger logger.Logger
}

func NewFreeTextAdapter(kind models.ProviderKind, client EntryClient, log logger.Logger) *FreeTextAdapter {
	if log == nil {
		log = logger.Nop()
	}
	return &FreeTextAdapter{
		kind:   kind,
		client: client,
		logger: log,
	}
}

func (a *FreeTextAdapter) Kind() models.ProviderKind {
	return a.kind
}

func (a *FreeTextAdapter) Health(ctx context.Context) error {
	return healthOf(ctx, a.client)
}

// Fetch passes the term through verbatim and converts every entry.
// Entries with neither a magnet nor a name are dropped.
func (a *FreeTextAdapter) Fetch(ctx context.Context, query models.ProviderQuery) ([]models.TorrentRecord, error) {
	entries, err := a.client.SearchEntries(ctx, query.Term)
	if err != nil {
		return nil, models.NewUpstreamError(a.kind, err)
	}

	records := make([]models.TorrentRecord, 0, len(entries))
	dropped := 0
	for _, entry := range entries {
		record := a.toRecord(entry)
		if !record.Identifiable() {
			dropped++
			continue
		}
		records = append(records, record)
	}

	if dropped > 0 {
		a.logger.Debugf("[%s] dropped %d unidentifiable entries", a.kind, dropped)
	}
	a.logger.Infof("[%s] %d torrents for query: %s", a.kind, len(records), query.Term)

	return records, nil
}

func (a *FreeTextAdapter) toRecord(entry models.FreeTextEntry) models.TorrentRecord {
	identifier := ""
	if entry.Magnet != nil {
		identifier = *entry.Magnet
	}

	return models.TorrentRecord{
		Identifier:   identifier,
		DisplayName:  entry.Name,
		SeederCount:  resolver.SeedersOrZero(entry.Seeders),
		LeecherCount: resolver.ReportedLeechers(entry.Leechers),
		InfoHash:     InfoHashOf(identifier),
		Category:     resolutionOf(entry.Name),
		Source:       a.kind,
	}
}

// resolutionOf parses a release name for its resolution tag.
func resolutionOf(name string) string {
	if name == "" {
		return ""
	}
	parsed := torrentname.Parse(name)
	if parsed == nil {
		return ""
	}
	return parsed.Resolution
}

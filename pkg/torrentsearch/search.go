// Package torrentsearch dispatches torrent searches to provider adapters.
package torrentsearch

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/amaumene/torrentfind/pkg/logger"
	"github.com/amaumene/torrentfind/pkg/torrentsearch/models"
	"github.com/amaumene/torrentfind/pkg/torrentsearch/providers"
	"github.com/amaumene/torrentfind/pkg/torrentsearch/sorter"
)

// Outcome is the result of one provider within a fan-out search.
type Outcome struct {
	Records []models.TorrentRecord
	Err     error
}

// TorrentSearch routes a query to the adapter registered for a provider kind.
// It holds no per-search state and is safe for concurrent use once all
// providers are registered.
type TorrentSearch struct {
	adapters map[models.ProviderKind]providers.Adapter
	sorter   *sorter.TorrentSorter
	logger   logger.Logger
}

// New creates a TorrentSearch with the given adapters registered.
func New(log logger.Logger, adapters ...providers.Adapter) *TorrentSearch {
	if log == nil {
		log = logger.Nop()
	}
	ts := &TorrentSearch{
		adapters: make(map[models.ProviderKind]providers.Adapter),
		sorter:   sorter.NewTorrentSorter(),
		logger:   log,
	}
	for _, a := range adapters {
		ts.RegisterProvider(a)
	}
	return ts
}

// RegisterProvider adds or replaces the adapter for its provider kind.
func (ts *TorrentSearch) RegisterProvider(adapter providers.Adapter) {
	ts.adapters[adapter.Kind()] = adapter
}

// Providers returns the registered provider kinds in canonical order.
func (ts *TorrentSearch) Providers() []models.ProviderKind {
	kinds := make([]models.ProviderKind, 0, len(ts.adapters))
	for _, k := range models.AllProviders {
		if _, ok := ts.adapters[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Search runs exactly one adapter call for kind. Records are returned in the
// adapter's order.
func (ts *TorrentSearch) Search(ctx context.Context, kind models.ProviderKind, term string) ([]models.TorrentRecord, error) {
	return ts.SearchQuery(ctx, kind, models.NewQuery(term))
}

// SearchQuery is Search with an explicit match identifier.
func (ts *TorrentSearch) SearchQuery(ctx context.Context, kind models.ProviderKind, query models.ProviderQuery) ([]models.TorrentRecord, error) {
	adapter, exists := ts.adapters[kind]
	if !exists {
		return nil, models.NewUnknownProviderError(kind)
	}

	ts.logger.Debugf("[SEARCH] %s query: %q", kind, query.Term)
	records, err := adapter.Fetch(ctx, query)
	if err != nil {
		ts.logger.Warnf("[SEARCH] %s failed: %v", kind, err)
		return nil, err
	}
	return records, nil
}

// SearchAll queries each kind concurrently. No kinds means every registered
// provider. A failing provider only affects its own outcome.
func (ts *TorrentSearch) SearchAll(ctx context.Context, term string, kinds ...models.ProviderKind) map[models.ProviderKind]Outcome {
	if len(kinds) == 0 {
		kinds = ts.Providers()
	}

	outcomes := make(map[models.ProviderKind]Outcome, len(kinds))
	var mu sync.Mutex
	var g errgroup.Group

	for _, kind := range kinds {
		g.Go(func() error {
			records, err := ts.Search(ctx, kind, term)

			mu.Lock()
			outcomes[kind] = Outcome{Records: records, Err: err}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// Merge flattens the successful outcomes into one list ordered by seeders.
// Providers are visited in canonical order so ties are deterministic.
func (ts *TorrentSearch) Merge(outcomes map[models.ProviderKind]Outcome) []models.TorrentRecord {
	kinds := make([]models.ProviderKind, 0, len(outcomes))
	for k := range outcomes {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		return providerRank(kinds[i]) < providerRank(kinds[j])
	})

	merged := make([]models.TorrentRecord, 0)
	for _, k := range kinds {
		if outcomes[k].Err != nil {
			continue
		}
		merged = append(merged, outcomes[k].Records...)
	}
	return ts.sorter.SortBySeeders(merged)
}

// Health probes every registered provider concurrently. A nil value means
// the provider answered or cannot be probed.
func (ts *TorrentSearch) Health(ctx context.Context) map[models.ProviderKind]error {
	kinds := ts.Providers()
	results := make(map[models.ProviderKind]error, len(kinds))
	var mu sync.Mutex
	var g errgroup.Group

	for _, kind := range kinds {
		checker, ok := ts.adapters[kind].(providers.HealthChecker)
		if !ok {
			results[kind] = nil
			continue
		}
		g.Go(func() error {
			err := checker.Health(ctx)
			if err != nil {
				ts.logger.Warnf("[SEARCH] %s health check failed: %v", kind, err)
			}

			mu.Lock()
			results[kind] = err
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// GetProviderErrors extracts the failed providers of a fan-out search.
func GetProviderErrors(outcomes map[models.ProviderKind]Outcome) map[models.ProviderKind]error {
	errs := make(map[models.ProviderKind]error)
	for k, o := range outcomes {
		if o.Err != nil {
			errs[k] = o.Err
		}
	}
	return errs
}

func providerRank(kind models.ProviderKind) int {
	for i, k := range models.AllProviders {
		if k == kind {
			return i
		}
	}
	return len(models.AllProviders)
}

package torrentsearch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaumene/torrentfind/pkg/torrentsearch/models"
	"github.com/amaumene/torrentfind/pkg/torrentsearch/providers"
)

type stubAdapter struct {
	kind    models.ProviderKind
	records []models.TorrentRecord
	err     error
	delay   time.Duration
	calls   atomic.Int32
}

func (s *stubAdapter) Kind() models.ProviderKind { return s.kind }

func (s *stubAdapter) Fetch(ctx context.Context, query models.ProviderQuery) ([]models.TorrentRecord, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, models.NewUpstreamError(s.kind, s.err)
	}
	return s.records, nil
}

func record(name string, seeders uint32, source models.ProviderKind) models.TorrentRecord {
	return models.TorrentRecord{Identifier: name, DisplayName: name, SeederCount: seeders, LeecherCount: -1, Source: source}
}

func TestSearch_DispatchesToOneAdapter(t *testing.T) {
	yts := &stubAdapter{kind: models.ProviderYTS, records: []models.TorrentRecord{record("a", 1, models.ProviderYTS)}}
	leetx := &stubAdapter{kind: models.ProviderLeetx}
	ts := New(nil, yts, leetx)

	records, err := ts.Search(context.Background(), models.ProviderYTS, "tt1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int32(1), yts.calls.Load())
	assert.Equal(t, int32(0), leetx.calls.Load())
}

func TestSearch_PreservesAdapterOrder(t *testing.T) {
	adapter := &stubAdapter{kind: models.ProviderLeetx, records: []models.TorrentRecord{
		record("low", 1, models.ProviderLeetx),
		record("high", 99, models.ProviderLeetx),
	}}
	ts := New(nil, adapter)

	records, err := ts.Search(context.Background(), models.ProviderLeetx, "x")
	require.NoError(t, err)
	assert.Equal(t, "low", records[0].DisplayName)
}

func TestSearch_UnknownProvider(t *testing.T) {
	ts := New(nil, &stubAdapter{kind: models.ProviderYTS})

	_, err := ts.Search(context.Background(), models.ProviderApiBay, "x")
	require.Error(t, err)
	assert.True(t, models.IsUnknownProvider(err))

	_, err = ts.Search(context.Background(), models.ProviderKind("nope"), "x")
	assert.True(t, models.IsUnknownProvider(err))
}

func TestSearch_UpstreamErrorNotRetried(t *testing.T) {
	adapter := &stubAdapter{kind: models.ProviderYTS, err: errors.New("boom")}
	ts := New(nil, adapter)

	_, err := ts.Search(context.Background(), models.ProviderYTS, "tt1")
	require.Error(t, err)
	assert.True(t, models.IsUpstream(err))
	assert.Equal(t, int32(1), adapter.calls.Load())
}

func TestProviders_CanonicalOrder(t *testing.T) {
	ts := New(nil,
		&stubAdapter{kind: models.ProviderTorrentsCSV},
		&stubAdapter{kind: models.ProviderYTS},
		&stubAdapter{kind: models.ProviderLeetx},
	)
	assert.Equal(t, []models.ProviderKind{models.ProviderYTS, models.ProviderLeetx, models.ProviderTorrentsCSV}, ts.Providers())
}

func TestSearchAll_IndependentOutcomes(t *testing.T) {
	yts := &stubAdapter{
		kind:    models.ProviderYTS,
		records: []models.TorrentRecord{record("yts-1", 10, models.ProviderYTS)},
		delay:   10 * time.Millisecond,
	}
	leetx := &stubAdapter{kind: models.ProviderLeetx, err: errors.New("blocked")}
	apibay := &stubAdapter{
		kind:    models.ProviderApiBay,
		records: []models.TorrentRecord{record("bay-1", 50, models.ProviderApiBay), record("bay-2", 5, models.ProviderApiBay)},
	}
	ts := New(nil, yts, leetx, apibay)

	outcomes := ts.SearchAll(context.Background(), "the matrix")
	require.Len(t, outcomes, 3)

	assert.NoError(t, outcomes[models.ProviderYTS].Err)
	assert.Len(t, outcomes[models.ProviderYTS].Records, 1)
	assert.True(t, models.IsUpstream(outcomes[models.ProviderLeetx].Err))
	assert.NoError(t, outcomes[models.ProviderApiBay].Err)
	assert.Len(t, outcomes[models.ProviderApiBay].Records, 2)

	errs := GetProviderErrors(outcomes)
	require.Len(t, errs, 1)
	assert.Contains(t, errs, models.ProviderLeetx)

	merged := ts.Merge(outcomes)
	require.Len(t, merged, 3)
	assert.Equal(t, "bay-1", merged[0].DisplayName)
	assert.Equal(t, "yts-1", merged[1].DisplayName)
	assert.Equal(t, "bay-2", merged[2].DisplayName)
}

func TestSearchAll_SubsetAndUnknown(t *testing.T) {
	yts := &stubAdapter{kind: models.ProviderYTS}
	leetx := &stubAdapter{kind: models.ProviderLeetx}
	ts := New(nil, yts, leetx)

	outcomes := ts.SearchAll(context.Background(), "x", models.ProviderLeetx, models.ProviderApiBay)
	require.Len(t, outcomes, 2)
	assert.NoError(t, outcomes[models.ProviderLeetx].Err)
	assert.True(t, models.IsUnknownProvider(outcomes[models.ProviderApiBay].Err))
	assert.Equal(t, int32(0), yts.calls.Load())
}

func TestSearchAll_ContextCancellation(t *testing.T) {
	slow := &stubAdapter{kind: models.ProviderYTS, delay: time.Second}
	ts := New(nil, slow)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	outcomes := ts.SearchAll(ctx, "x")
	assert.ErrorIs(t, outcomes[models.ProviderYTS].Err, context.DeadlineExceeded)
}

func TestSearchQuery_UsesMatchID(t *testing.T) {
	client := &fixedMovieClient{listings: []models.MovieListing{
		{ID: "tt1", Title: "One", Torrents: []models.TorrentVariant{{Hash: "h1", Quality: "720p"}}},
		{ID: "tt2", Title: "Two", Torrents: []models.TorrentVariant{{Hash: "h2", Quality: "1080p"}}},
	}}
	ts := New(nil, providers.NewYTSAdapter(client, false, nil))

	records, err := ts.SearchQuery(context.Background(), models.ProviderYTS, models.ProviderQuery{Term: "some title", MatchID: "tt2"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "h2", records[0].Identifier)
}

type fixedMovieClient struct {
	listings []models.MovieListing
}

func (f *fixedMovieClient) ListMovies(ctx context.Context, term string) ([]models.MovieListing, error) {
	return f.listings, nil
}

type checkedAdapter struct {
	stubAdapter
	healthErr error
}

func (c *checkedAdapter) Health(ctx context.Context) error { return c.healthErr }

func TestHealth_ReportsEachProvider(t *testing.T) {
	ts := New(nil,
		&checkedAdapter{stubAdapter: stubAdapter{kind: models.ProviderYTS}},
		&checkedAdapter{stubAdapter: stubAdapter{kind: models.ProviderApiBay}, healthErr: errors.New("down")},
		&stubAdapter{kind: models.ProviderLeetx},
	)

	results := ts.Health(context.Background())
	require.Len(t, results, 3)
	assert.NoError(t, results[models.ProviderYTS])
	assert.EqualError(t, results[models.ProviderApiBay], "down")
	assert.NoError(t, results[models.ProviderLeetx])
}

package sorter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaumene/torrentfind/pkg/torrentsearch/models"
)

func TestSortBySeeders(t *testing.T) {
	records := []models.TorrentRecord{
		{DisplayName: "low", SeederCount: 1},
		{DisplayName: "high", SeederCount: 500},
		{DisplayName: "tie-a", SeederCount: 20},
		{DisplayName: "tie-b", SeederCount: 20},
	}

	sorted := NewTorrentSorter().SortBySeeders(records)

	names := make([]string, len(sorted))
	for i, r := range sorted {
		names[i] = r.DisplayName
	}
	assert.Equal(t, []string{"high", "tie-a", "tie-b", "low"}, names)
}

func TestFilterByMinSeeders(t *testing.T) {
	records := []models.TorrentRecord{
		{DisplayName: "a", SeederCount: 0},
		{DisplayName: "b", SeederCount: 5},
		{DisplayName: "c", SeederCount: 10},
	}

	filtered := NewTorrentSorter().FilterByMinSeeders(records, 5)
	require.Len(t, filtered, 2)
	assert.Equal(t, "b", filtered[0].DisplayName)
	assert.Empty(t, NewTorrentSorter().FilterByMinSeeders(nil, 1))
}

func TestConfidenceOfEmptyName(t *testing.T) {
	assert.Equal(t, 0, NewTorrentSorter().Confidence(models.TorrentRecord{}))
}

func TestGetSortedWithDebugInfo(t *testing.T) {
	records := []models.TorrentRecord{
		{DisplayName: "The.Matrix.1999.720p.WEB-DL", SeederCount: 3, LeecherCount: -1, Source: models.ProviderLeetx},
		{DisplayName: "The.Matrix.1999.1080p.BluRay.x264", SeederCount: 30, LeecherCount: 4, Source: models.ProviderYTS},
	}

	sorted, info := NewTorrentSorter().GetSortedWithDebugInfo(records)
	require.Len(t, info, 2)
	assert.Equal(t, uint32(30), sorted[0].SeederCount)
	assert.True(t, strings.HasPrefix(info[0], "1. [yts] 30/4"))
	assert.True(t, strings.HasPrefix(info[1], "2. [1337x] 3/-1"))
}

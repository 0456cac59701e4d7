package sorter

import (
	"fmt"
	"sort"

	"github.com/amaumene/torrentfind/pkg/torrentsearch/models"
	"github.com/cehbz/torrentname"
)

type TorrentSorter struct{}

func NewTorrentSorter() *TorrentSorter {
	return &TorrentSorter{}
}

// SortBySeeders orders records by seeder count, highest first. Ties keep
// their input order.
func (ts *TorrentSorter) SortBySeeders(records []models.TorrentRecord) []models.TorrentRecord {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SeederCount > records[j].SeederCount
	})
	return records
}

// Confidence returns how well a display name parses as a release name.
func (ts *TorrentSorter) Confidence(record models.TorrentRecord) int {
	if record.DisplayName == "" {
		return 0
	}
	parsed := torrentname.Parse(record.DisplayName)
	if parsed == nil {
		return 0
	}
	return int(parsed.Confidence)
}

func (ts *TorrentSorter) FilterByMinSeeders(records []models.TorrentRecord, minSeeders uint32) []models.TorrentRecord {
	filtered := make([]models.TorrentRecord, 0, len(records))
	for _, record := range records {
		if record.SeederCount >= minSeeders {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// GetSortedWithDebugInfo returns sorted records with one summary line each
func (ts *TorrentSorter) GetSortedWithDebugInfo(records []models.TorrentRecord) ([]models.TorrentRecord, []string) {
	sorted := ts.SortBySeeders(records)
	debugInfo := make([]string, 0, len(sorted))

	for i, r := range sorted {
		debugInfo = append(debugInfo, fmt.Sprintf("%d. [%s] %d/%d (%d%%) - %s",
			i+1,
			r.Source,
			r.SeederCount,
			r.LeecherCount,
			ts.Confidence(r),
			r.DisplayName))
	}

	return sorted, debugInfo
}
